// Package fuzzy implements the searchable symbol-name index. Matching runs
// in two stages: a cheap subsequence pre-filter over lowercased names and
// camel-case acronyms, then similarity scoring via go-edlib. The scoring
// algorithm is chosen by corpus size: Jaro-Winkler below the large-corpus
// threshold, plain Jaro above it (faster, no prefix bonus).
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

const (
	// largeCorpusThreshold is the distinct-name count above which the index
	// switches to the throughput-oriented algorithm
	largeCorpusThreshold = 20000

	// minSimilarity is the score floor below which candidates are dropped
	minSimilarity = 0.3

	// maxMatches caps the number of names a single Find returns
	maxMatches = 500
)

// Index is a read-only fuzzy-search structure over a fixed set of symbol
// names. It is rebuilt from scratch whenever the symbol index changes.
type Index struct {
	names    []string
	lowered  []string
	acronyms []string
	algo     edlib.Algorithm
}

// NewIndex builds an index over the given distinct symbol names
func NewIndex(names []string) *Index {
	ix := &Index{
		names:    names,
		lowered:  make([]string, len(names)),
		acronyms: make([]string, len(names)),
	}
	for i, name := range names {
		ix.lowered[i] = strings.ToLower(name)
		ix.acronyms[i] = acronymOf(name)
	}

	ix.algo = edlib.JaroWinkler
	if len(names) > largeCorpusThreshold {
		ix.algo = edlib.Jaro
	}

	return ix
}

// Size returns the number of distinct names in the corpus
func (ix *Index) Size() int {
	return len(ix.names)
}

// Find returns the names matching the query, best match first
func (ix *Index) Find(query string) ([]string, error) {
	q := strings.ToLower(query)
	if q == "" {
		return nil, nil
	}

	type scored struct {
		name  string
		score float64
	}

	var matches []scored
	for i, lowered := range ix.lowered {
		if q != ix.acronyms[i] && !isSubsequence(q, lowered) {
			continue
		}

		var score float64
		switch {
		case q == lowered:
			score = 1.0
		case q == ix.acronyms[i]:
			score = 0.95
		default:
			sim, err := edlib.StringsSimilarity(q, lowered, ix.algo)
			if err != nil {
				return nil, err
			}
			score = float64(sim)
		}

		if score >= minSimilarity {
			matches = append(matches, scored{ix.names[i], score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names, nil
}

// acronymOf extracts the lowercased initials of a name's capitalized or
// separator-delimited segments: getFileContent -> "gfc", snake_case -> "sc"
func acronymOf(name string) string {
	var b strings.Builder
	prevBoundary := true
	prevLower := false

	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '$':
			prevBoundary = true
			prevLower = false
			continue
		case prevBoundary, unicode.IsUpper(r) && prevLower:
			b.WriteRune(unicode.ToLower(r))
		}
		prevBoundary = false
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}

	return b.String()
}

// isSubsequence reports whether all characters of q appear in s in order
func isSubsequence(q, s string) bool {
	if len(q) > len(s) {
		return false
	}
	j := 0
	for i := 0; i < len(s) && j < len(q); i++ {
		if s[i] == q[j] {
			j++
		}
	}
	return j == len(q)
}
