// Package ignore implements directory exclusion for indexing: a fixed
// built-in deny list plus gitignore-style custom patterns loaded from the
// project root.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Ignore file names read from the project root. Lines from both files are
// combined into one pattern list.
const (
	GitIgnoreFile  = ".gitignore"
	ToolIgnoreFile = ".codescoutignore"
)

// denyDirs is the built-in directory deny list applied during indexing and
// reference scanning regardless of custom patterns.
var denyDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"out":          {},
	"target":       {},
	"coverage":     {},
	".nyc_output":  {},
	"__pycache__":  {},
}

// DeniedDirs returns a copy of the built-in directory deny list
func DeniedDirs() map[string]struct{} {
	dirs := make(map[string]struct{}, len(denyDirs))
	for dir := range denyDirs {
		dirs[dir] = struct{}{}
	}
	return dirs
}

// IsDeniedDir reports whether a directory name matches the built-in deny
// list. Hidden directories are always denied.
func IsDeniedDir(name string) bool {
	if name != "." && strings.HasPrefix(name, ".") {
		return true
	}
	_, denied := denyDirs[name]
	return denied
}

// Loader reads custom ignore patterns from the project root. Loading happens
// at most once per Loader; read errors are swallowed and treated as "no
// additional patterns".
type Loader struct {
	root string

	once     sync.Once
	patterns []string
}

// NewLoader creates a Loader rooted at the given project directory
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Patterns returns the loaded custom patterns, reading the ignore files on
// first call
func (l *Loader) Patterns() []string {
	l.once.Do(func() {
		for _, name := range []string{GitIgnoreFile, ToolIgnoreFile} {
			l.patterns = append(l.patterns, readPatternFile(filepath.Join(l.root, name))...)
		}
	})
	return l.patterns
}

// ExcludeDir reports whether a directory should be skipped during indexing.
// A directory is excluded if its name is on the built-in deny list or if its
// name or root-relative path matches any loaded custom pattern.
func (l *Loader) ExcludeDir(name, relPath string) bool {
	if IsDeniedDir(name) {
		return true
	}

	relPath = filepath.ToSlash(relPath)
	for _, pat := range l.Patterns() {
		pat = strings.TrimSuffix(pat, "/")
		if pat == "" {
			continue
		}
		// Invalid patterns never match; errors are intentionally dropped
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, relPath); ok {
			return true
		}
	}
	return false
}

// readPatternFile reads one ignore file, returning one pattern per
// non-empty, non-comment line. A missing or unreadable file yields nil.
func readPatternFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
