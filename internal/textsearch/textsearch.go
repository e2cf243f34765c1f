package textsearch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// DefaultMaxResults is applied when a request does not set a result limit
const DefaultMaxResults = 100

// recencyWindow is the bucket boundary for recency ranking: files modified
// within this window sort before older files
const recencyWindow = 24 * time.Hour

// Options narrows a text search
type Options struct {
	// FileGlob restricts matches to files whose root-relative path matches
	// the glob. Brace alternatives ({a,b}) are expanded before use.
	FileGlob string
	// IsRegex treats the pattern as a regular expression instead of a literal
	IsRegex bool
	// MaxResults caps the result list (default DefaultMaxResults)
	MaxResults int
}

// strategy is one tier of the search cascade
type strategy interface {
	name() string
	available(ctx context.Context) bool
	search(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error)
}

// Searcher drives the tier cascade for one project root
type Searcher struct {
	root       string
	strategies []strategy

	// compiled pattern memoization for the in-process tier
	regexCache map[string]*regexp.Regexp
}

// New creates a text searcher rooted at the given project directory
func New(root string) *Searcher {
	runner := execRunner{}
	s := &Searcher{
		root:       root,
		regexCache: make(map[string]*regexp.Regexp),
	}
	s.strategies = []strategy{
		&gitGrepStrategy{root: root, runner: runner},
		&externalGrepStrategy{root: root, runner: runner},
		&nativeStrategy{root: root, searcher: s},
	}
	return s
}

// Search runs the pattern through the tier cascade and returns matches
// ordered by file recency. An invalid regex pattern is a caller-visible
// error; a tier failure silently falls through to the next tier. Only when
// every tier fails does Search return an error.
func (s *Searcher) Search(ctx context.Context, pattern string, opts Options) ([]types.TextMatch, error) {
	if pattern == "" {
		return nil, types.ErrEmptyQuery
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	if opts.IsRegex {
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
	}

	var globs []string
	if opts.FileGlob != "" {
		globs = ExpandBraces(opts.FileGlob)
	}

	var tierErrs []error
	for _, st := range s.strategies {
		if !st.available(ctx) {
			continue
		}
		matches, err := st.search(ctx, pattern, globs, opts.IsRegex, opts.MaxResults)
		if err != nil {
			tierErrs = append(tierErrs, fmt.Errorf("%s: %w", st.name(), err))
			continue
		}
		return s.rankByRecency(matches), nil
	}

	return nil, fmt.Errorf("all search strategies failed for pattern %q: %w", pattern, errors.Join(tierErrs...))
}

// ExpandBraces expands a single {a,b,c} alternative group into one pattern
// per alternative. Patterns without braces expand to themselves. Multiple
// groups are expanded recursively, leftmost first.
func ExpandBraces(pattern string) []string {
	open := strings.Index(pattern, "{")
	if open < 0 {
		return []string{pattern}
	}
	end := strings.Index(pattern[open:], "}")
	if end < 0 {
		return []string{pattern}
	}
	end += open

	prefix := pattern[:open]
	suffix := pattern[end+1:]

	var expanded []string
	for _, alt := range strings.Split(pattern[open+1:end], ",") {
		expanded = append(expanded, ExpandBraces(prefix+alt+suffix)...)
	}
	return expanded
}

// rankByRecency orders matches so files modified within the last 24 hours
// come first, newest first within each bucket. Ties keep the order the
// search tier produced. Files whose stat fails are treated as maximally old.
func (s *Searcher) rankByRecency(matches []types.TextMatch) []types.TextMatch {
	if len(matches) == 0 {
		return matches
	}

	modTimes := make(map[string]time.Time)
	for _, m := range matches {
		if _, seen := modTimes[m.FilePath]; seen {
			continue
		}
		info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(m.FilePath)))
		if err != nil {
			modTimes[m.FilePath] = time.Time{}
			continue
		}
		modTimes[m.FilePath] = info.ModTime()
	}

	cutoff := time.Now().Add(-recencyWindow)
	sort.SliceStable(matches, func(i, j int) bool {
		ti, tj := modTimes[matches[i].FilePath], modTimes[matches[j].FilePath]
		ri, rj := ti.After(cutoff), tj.After(cutoff)
		if ri != rj {
			return ri
		}
		return ti.After(tj)
	})

	return matches
}

// compileSearchRegex compiles (and memoizes) the case-insensitive pattern
// used by the in-process tier
func (s *Searcher) compileSearchRegex(pattern string, isRegex bool) (*regexp.Regexp, error) {
	expr := pattern
	if !isRegex {
		expr = regexp.QuoteMeta(pattern)
	}
	expr = "(?i)" + expr

	if re, ok := s.regexCache[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	s.regexCache[expr] = re
	return re, nil
}
