package types

import "errors"

// Domain errors shared across engine components
var (
	// ErrFuzzyUnavailable indicates the fuzzy index has not been built yet;
	// callers fall back to manual scoring
	ErrFuzzyUnavailable = errors.New("fuzzy index unavailable")

	// ErrEmptyQuery indicates a search was requested with an empty query
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptySymbolName indicates a lookup was requested with an empty symbol name
	ErrEmptySymbolName = errors.New("symbol name cannot be empty")
)
