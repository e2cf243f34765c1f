package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var symbolKindValues = []string{
	"function", "class", "method", "variable", "constant",
	"interface", "type", "enum", "import", "export",
}

// searchSymbolsTool returns the tool definition for search_symbols
func searchSymbolsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_symbols",
		Description: "Fuzzy-search indexed code symbols by name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Symbol name or fragment to search for (fuzzy, camel-initials like 'gfc' work)",
				},
				"symbolType": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one symbol kind",
					"enum":        symbolKindValues,
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one language (e.g. 'typescript', 'go')",
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     100,
					"minimum":     1,
				},
			},
			Required: []string{"query"},
		},
	}
}

// findDefinitionTool returns the tool definition for find_definition
func findDefinitionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_definition",
		Description: "Locate the definition of a symbol by exact name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbolName": map[string]interface{}{
					"type":        "string",
					"description": "Exact symbol name to look up",
				},
				"contextFile": map[string]interface{}{
					"type":        "string",
					"description": "File to search first, when the caller knows where the symbol is used",
				},
			},
			Required: []string{"symbolName"},
		},
	}
}

// findReferencesTool returns the tool definition for find_references
func findReferencesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_references",
		Description: "Find usage sites of a symbol across the project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbolName": map[string]interface{}{
					"type":        "string",
					"description": "Exact symbol name to find references for",
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of references to return",
					"default":     100,
					"minimum":     1,
				},
			},
			Required: []string{"symbolName"},
		},
	}
}

// semanticSearchTool returns the tool definition for semantic_search
func semanticSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "semantic_search",
		Description: "Search symbols and their usage sites in one call",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Symbol name or fragment to search for",
				},
				"searchType": map[string]interface{}{
					"type":        "string",
					"description": "What to return: definitions, usages, implementations, or everything",
					"enum":        []string{"definition", "usage", "implementation", "all"},
					"default":     "all",
				},
				"language": map[string]interface{}{
					"type":        "string",
					"description": "Restrict results to one language",
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     50,
					"minimum":     1,
				},
			},
			Required: []string{"query"},
		},
	}
}

// fileOutlineTool returns the tool definition for file_outline
func fileOutlineTool() mcp.Tool {
	return mcp.Tool{
		Name:        "file_outline",
		Description: "List the symbols declared in one file, indexed or not",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"filePath": map[string]interface{}{
					"type":        "string",
					"description": "File to outline, absolute or relative to the project root",
				},
			},
			Required: []string{"filePath"},
		},
	}
}

// textSearchTool returns the tool definition for text_search
func textSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "text_search",
		Description: "Full-text or regex search across the project tree",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pattern": map[string]interface{}{
					"type":        "string",
					"description": "Text or regular expression to search for",
				},
				"fileGlob": map[string]interface{}{
					"type":        "string",
					"description": "Glob restricting which files are searched (brace alternatives like '*.{ts,tsx}' supported)",
				},
				"isRegex": map[string]interface{}{
					"type":        "boolean",
					"description": "Treat the pattern as a regular expression",
					"default":     false,
				},
				"maxResults": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return",
					"default":     100,
					"minimum":     1,
				},
			},
			Required: []string{"pattern"},
		},
	}
}

// indexStatsTool returns the tool definition for index_stats
func indexStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_stats",
		Description: "Report index size, language breakdown, and cache age",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// clearCacheTool returns the tool definition for clear_cache
func clearCacheTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_cache",
		Description: "Discard the in-memory index and all caches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
