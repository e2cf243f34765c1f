package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tbrandt/codescout-mcp/internal/parser"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// definitionKinds are the symbol kinds a go-to-definition lookup considers
var definitionKinds = map[types.SymbolKind]struct{}{
	types.KindFunction: {},
	types.KindClass:    {},
	types.KindVariable: {},
}

// FindDefinition returns the first indexed definition-like symbol with the
// given name. When contextFile is set, that file's symbols are searched
// first. A nil result with nil error means no definition was found; that is
// a normal outcome, not a failure.
func (e *Engine) FindDefinition(ctx context.Context, symbolName, contextFile string) (*types.CodeSymbol, error) {
	if symbolName == "" {
		return nil, types.ErrEmptySymbolName
	}

	if _, err := e.BuildIndex(ctx, false); err != nil {
		return nil, err
	}

	if contextFile != "" {
		for _, sym := range e.FileSymbols(contextFile) {
			if sym.Name == symbolName {
				if _, ok := definitionKinds[sym.Type]; ok {
					return &sym, nil
				}
			}
		}
	}

	for _, sym := range e.Symbols() {
		if sym.Name != symbolName {
			continue
		}
		if _, ok := definitionKinds[sym.Type]; ok {
			return &sym, nil
		}
	}

	return nil, nil
}

// FileOutline parses a file directly and returns its symbol list. The file
// does not need to be indexed: outlines work for excluded and unindexed
// files too, reading from disk and bypassing the content cache.
func (e *Engine) FileOutline(path string) ([]types.CodeSymbol, error) {
	abs := e.absPath(path)

	lang, ok := parser.LanguageForPath(abs)
	if !ok {
		return nil, fmt.Errorf("unsupported file type for outline: %s", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s for outline: %w", path, err)
	}

	rel, relErr := filepath.Rel(e.root, abs)
	if relErr != nil {
		rel = path
	}

	symbols := e.parser.Parse(filepath.ToSlash(rel), string(data), lang)
	if symbols == nil {
		symbols = []types.CodeSymbol{}
	}
	return symbols, nil
}
