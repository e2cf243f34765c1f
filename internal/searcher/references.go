package searcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tbrandt/codescout-mcp/internal/ignore"
	"github.com/tbrandt/codescout-mcp/internal/parser"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// errStopWalk aborts the reference walk once enough matches are collected
var errStopWalk = errors.New("reference walk stopped")

// FindReferences scans indexable files for word-boundary occurrences of an
// exact symbol name and classifies each usage site. The scan walks the tree
// independently of the cached index and applies only the built-in directory
// exclusions, not custom ignore patterns.
func (s *Searcher) FindReferences(ctx context.Context, symbolName string, maxResults int) ([]types.CodeReference, error) {
	if symbolName == "" {
		return nil, types.ErrEmptySymbolName
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	wordRe, err := regexp.Compile(`\b` + regexp.QuoteMeta(symbolName) + `\b`)
	if err != nil {
		return nil, err
	}
	defRe := regexp.MustCompile(`\b(?:function|class|const|let|var|func|def)\s+` + regexp.QuoteMeta(symbolName) + `\b`)

	root := s.engine.Root()
	var refs []types.CodeReference

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
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
			if path != root && ignore.IsDeniedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := parser.LanguageForPath(path); !ok {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		for lineNo, line := range strings.Split(string(data), "\n") {
			loc := wordRe.FindStringIndex(line)
			if loc == nil {
				continue
			}
			refs = append(refs, types.CodeReference{
				Symbol:        symbolName,
				FilePath:      rel,
				Line:          lineNo + 1,
				Column:        loc[0] + 1,
				Context:       strings.TrimSpace(line),
				ReferenceType: classifyReference(line, symbolName, defRe),
			})
			if len(refs) >= maxResults {
				return errStopWalk
			}
		}
		return nil
	})
	if walkErr != nil && walkErr != errStopWalk {
		return refs, walkErr
	}

	return refs, nil
}

// classifyReference decides what kind of usage a matching line represents.
// Import lines win over declarations, declarations over type annotations,
// and anything else is a plain usage.
func classifyReference(line, symbolName string, defRe *regexp.Regexp) types.ReferenceType {
	if isImportLine(line) {
		return types.RefImport
	}
	if defRe.MatchString(line) {
		return types.RefDefinition
	}
	if strings.Contains(line, ":") {
		return types.RefType
	}
	return types.RefUsage
}

// isImportLine reports whether a line contains an import-like keyword
func isImportLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "import ") ||
		strings.HasPrefix(trimmed, "import{") ||
		strings.HasPrefix(trimmed, "from ") ||
		strings.HasPrefix(trimmed, "use ") ||
		strings.Contains(line, "require(")
}
