// Package searcher implements symbol search over the engine's index.
//
// SearchSymbols ranks indexed symbol names against a query using the
// engine's fuzzy index, falling back to a manual scoring heuristic when the
// fuzzy index is unavailable or errors. FindReferences scans source files
// for usage sites of an exact symbol name, classifying each match as a
// definition, import, type annotation, or plain usage. SemanticSearch
// composes the two.
//
// # Ranking
//
// Fuzzy results keep the fuzzy engine's relevance order: symbols are sorted
// by the rank of their name in the fuzzy match list, with unranked names
// last. Manual fallback scores are:
//
//	exact match       100
//	prefix match       80
//	substring match    60
//	capital initials   40
//	subsequence        20 per matched character
//
// Candidates are over-collected at twice the result limit before sorting,
// approximating global ranking without scanning the corpus twice.
package searcher
