package types

import "time"

// SymbolSearchResult contains the outcome of a fuzzy symbol search
type SymbolSearchResult struct {
	Query        string        `json:"query"`
	Symbols      []CodeSymbol  `json:"symbols"`
	TotalResults int           `json:"totalResults"`
	SearchTime   time.Duration `json:"searchTime"`
}

// TextMatch represents a single line match from a text search.
// FilePath is relative to the index root.
type TextMatch struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Content  string `json:"content"`
}

// SemanticSearchResult combines symbol matches with reference sites
type SemanticSearchResult struct {
	Query      string          `json:"query"`
	SearchType string          `json:"searchType"`
	Symbols    []CodeSymbol    `json:"symbols"`
	References []CodeReference `json:"references"`
}

// IndexStats reports the current state of the in-memory index
type IndexStats struct {
	TotalFiles        int                `json:"totalFiles"`
	TotalSymbols      int                `json:"totalSymbols"`
	LanguageBreakdown map[string]int     `json:"languageBreakdown"`
	SymbolBreakdown   map[SymbolKind]int `json:"symbolBreakdown"`
	FuzzyCorpusSize   int                `json:"fuzzyCorpusSize"`
	CacheAge          time.Duration      `json:"cacheAge"`
}
