package searcher

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tbrandt/codescout-mcp/internal/engine"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// DefaultMaxResults is applied when a request does not set a result limit
const DefaultMaxResults = 100

// Options narrows a symbol search
type Options struct {
	// Type keeps only symbols of this kind when set
	Type types.SymbolKind
	// Language keeps only symbols of this language when set
	Language string
	// MaxResults caps the result list (default DefaultMaxResults)
	MaxResults int
}

// Searcher answers symbol queries against an engine's index
type Searcher struct {
	engine *engine.Engine
}

// New creates a Searcher over the given engine
func New(eng *engine.Engine) *Searcher {
	return &Searcher{engine: eng}
}

// SearchSymbols fuzzy-ranks indexed symbol names against a query. The index
// is refreshed first if stale. If the fuzzy index is unavailable or errors,
// the search degrades to manual scoring rather than failing.
func (s *Searcher) SearchSymbols(ctx context.Context, query string, opts Options) (*types.SymbolSearchResult, error) {
	start := time.Now()

	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	if _, err := s.engine.BuildIndex(ctx, false); err != nil {
		return nil, err
	}

	symbols, err := s.fuzzySearch(query, opts)
	if err != nil {
		symbols = s.manualSearch(query, opts)
	}

	return &types.SymbolSearchResult{
		Query:        query,
		Symbols:      symbols,
		TotalResults: len(symbols),
		SearchTime:   time.Since(start),
	}, nil
}

// fuzzySearch filters indexed symbols to fuzzy-matched names and orders them
// by the fuzzy engine's relevance rank
func (s *Searcher) fuzzySearch(query string, opts Options) ([]types.CodeSymbol, error) {
	names, err := s.engine.FuzzyFind(query)
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(names))
	for i, name := range names {
		rank[name] = i
	}

	var matched []types.CodeSymbol
	for _, sym := range s.engine.Symbols() {
		if !matchesFilters(sym, opts) {
			continue
		}
		if _, ok := rank[sym.Name]; !ok {
			continue
		}
		matched = append(matched, sym)
		if len(matched) >= opts.MaxResults {
			break
		}
	}

	// Stable sort on fuzzy rank; names missing from the rank map sort last
	sort.SliceStable(matched, func(i, j int) bool {
		return rankOf(rank, matched[i].Name) < rankOf(rank, matched[j].Name)
	})

	return matched, nil
}

// manualSearch is the fallback scoring path used when the fuzzy index is
// unavailable. Candidates are over-collected at twice the limit before
// sorting by score.
func (s *Searcher) manualSearch(query string, opts Options) []types.CodeSymbol {
	type scored struct {
		sym   types.CodeSymbol
		score int
	}

	var candidates []scored
	for _, sym := range s.engine.Symbols() {
		if !matchesFilters(sym, opts) {
			continue
		}
		score := ManualScore(query, sym.Name)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{sym, score})
		if len(candidates) >= opts.MaxResults*2 {
			break
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > opts.MaxResults {
		candidates = candidates[:opts.MaxResults]
	}

	symbols := make([]types.CodeSymbol, len(candidates))
	for i, c := range candidates {
		symbols[i] = c.sym
	}
	return symbols
}

// ManualScore rates how well a symbol name matches a query without the
// fuzzy index. Zero means no match.
func ManualScore(query, name string) int {
	q := strings.ToLower(query)
	n := strings.ToLower(name)

	switch {
	case q == n:
		return 100
	case strings.HasPrefix(n, q):
		return 80
	case strings.Contains(n, q):
		return 60
	case q == capitalInitials(name):
		return 40
	}

	if isSubsequence(q, n) {
		return 20 * len(q)
	}
	return 0
}

// capitalInitials lowers the first character plus every capital of a name:
// getFileContent -> "gfc"
func capitalInitials(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// isSubsequence reports whether all characters of q appear in s in order
func isSubsequence(q, s string) bool {
	j := 0
	for i := 0; i < len(s) && j < len(q); i++ {
		if s[i] == q[j] {
			j++
		}
	}
	return j == len(q)
}

func matchesFilters(sym types.CodeSymbol, opts Options) bool {
	if opts.Type != "" && sym.Type != opts.Type {
		return false
	}
	if opts.Language != "" && sym.Language != opts.Language {
		return false
	}
	return true
}

func rankOf(rank map[string]int, name string) int {
	if r, ok := rank[name]; ok {
		return r
	}
	return int(^uint(0) >> 1) // unranked names sort last
}
