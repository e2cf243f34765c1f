package searcher

import (
	"context"
	"fmt"

	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// SearchType selects what a semantic search returns
type SearchType string

const (
	SearchDefinition     SearchType = "definition"
	SearchUsage          SearchType = "usage"
	SearchImplementation SearchType = "implementation"
	SearchAll            SearchType = "all"
)

// DefaultSemanticMaxResults is the semantic search result cap when unset
const DefaultSemanticMaxResults = 50

// referenceFanout is how many top symbol matches get a reference scan
const referenceFanout = 5

// semanticKinds maps each search type to the symbol kinds it keeps.
// A nil entry keeps everything; an empty entry discards all symbols.
var semanticKinds = map[SearchType][]types.SymbolKind{
	SearchDefinition:     {types.KindFunction, types.KindClass, types.KindInterface},
	SearchUsage:          {},
	SearchImplementation: {types.KindFunction, types.KindMethod, types.KindClass},
	SearchAll:            nil,
}

// SemanticSearch composes symbol search with reference finding. Symbol
// search runs unfiltered by kind; for usage-oriented searches the top
// matched symbols additionally get a reference scan, and the symbol list is
// then narrowed to the kinds relevant to the search type.
func (s *Searcher) SemanticSearch(ctx context.Context, query string, searchType SearchType, language string, maxResults int) (*types.SemanticSearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultSemanticMaxResults
	}

	kinds, ok := semanticKinds[searchType]
	if !ok {
		return nil, fmt.Errorf("invalid search type: %s", searchType)
	}

	symResult, err := s.SearchSymbols(ctx, query, Options{
		Language:   language,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	result := &types.SemanticSearchResult{
		Query:      query,
		SearchType: string(searchType),
		References: []types.CodeReference{},
	}

	if searchType == SearchUsage || searchType == SearchAll {
		for _, name := range topNames(symResult.Symbols, referenceFanout) {
			refs, refErr := s.FindReferences(ctx, name, maxResults)
			if refErr != nil {
				return nil, refErr
			}
			result.References = append(result.References, refs...)
		}
	}

	result.Symbols = filterKinds(symResult.Symbols, kinds)
	return result, nil
}

// topNames returns the first n distinct symbol names in ranked order
func topNames(symbols []types.CodeSymbol, n int) []string {
	seen := make(map[string]struct{}, n)
	var names []string
	for _, sym := range symbols {
		if _, dup := seen[sym.Name]; dup {
			continue
		}
		seen[sym.Name] = struct{}{}
		names = append(names, sym.Name)
		if len(names) >= n {
			break
		}
	}
	return names
}

// filterKinds keeps symbols whose kind is in the allow list. A nil list
// keeps everything; an empty list keeps nothing.
func filterKinds(symbols []types.CodeSymbol, kinds []types.SymbolKind) []types.CodeSymbol {
	if kinds == nil {
		return symbols
	}

	allowed := make(map[types.SymbolKind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}

	kept := make([]types.CodeSymbol, 0, len(symbols))
	for _, sym := range symbols {
		if _, ok := allowed[sym.Type]; ok {
			kept = append(kept, sym)
		}
	}
	return kept
}
