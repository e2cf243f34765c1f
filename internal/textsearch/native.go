package textsearch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tbrandt/codescout-mcp/internal/ignore"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// binaryExts are file extensions the in-process tier never opens
var binaryExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".o": {}, ".a": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {}, ".class": {}, ".jar": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wasm": {},
}

// errNativeStop aborts the walk once the result limit is reached
var errNativeStop = errors.New("native search stopped")

// nativeStrategy is the always-available pure in-process scan
type nativeStrategy struct {
	root     string
	searcher *Searcher
}

func (n *nativeStrategy) name() string { return "in-process scan" }

func (n *nativeStrategy) available(ctx context.Context) bool { return true }

func (n *nativeStrategy) search(ctx context.Context, pattern string, globs []string, isRegex bool, max int) ([]types.TextMatch, error) {
	re, err := n.searcher.compileSearchRegex(pattern, isRegex)
	if err != nil {
		return nil, err
	}

	var matches []types.TextMatch
	walkErr := filepath.WalkDir(n.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		if d.IsDir() {
			if path != n.root && ignore.IsDeniedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, binary := binaryExts[strings.ToLower(filepath.Ext(path))]; binary {
			return nil
		}

		rel, relErr := filepath.Rel(n.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !matchesAnyGlob(rel, globs) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		for lineNo, line := range strings.Split(string(data), "\n") {
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			matches = append(matches, types.TextMatch{
				FilePath: rel,
				Line:     lineNo + 1,
				Column:   loc[0] + 1,
				Content:  line,
			})
			if len(matches) >= max {
				return errNativeStop
			}
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errNativeStop) {
		return matches, walkErr
	}

	return matches, nil
}

// matchesAnyGlob reports whether the root-relative path matches at least one
// glob. No globs means every file matches. A bare-filename glob (no slash)
// is matched against the basename so "*.ts" works anywhere in the tree.
func matchesAnyGlob(rel string, globs []string) bool {
	if len(globs) == 0 {
		return true
	}
	for _, glob := range globs {
		target := rel
		if !strings.Contains(glob, "/") {
			target = filepath.Base(rel)
		}
		if ok, _ := doublestar.Match(glob, target); ok {
			return true
		}
	}
	return false
}
