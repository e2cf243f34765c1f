package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tbrandt/codescout-mcp/internal/searcher"
	"github.com/tbrandt/codescout-mcp/internal/textsearch"
	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeSearchFailed  = -32001 // All search strategies failed
	ErrorCodeOutlineFailed = -32002 // Outline target unreadable
	ErrorCodeEmptyQuery    = -32004 // Query parameter is empty
)

// handleSearchSymbols handles the search_symbols tool invocation
func (s *Server) handleSearchSymbols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	opts := searcher.Options{
		Type:       types.SymbolKind(getStringDefault(args, "symbolType", "")),
		Language:   getStringDefault(args, "language", ""),
		MaxResults: getIntDefault(args, "maxResults", searcher.DefaultMaxResults),
	}

	if opts.Type != "" {
		probe := types.CodeSymbol{Type: opts.Type}
		if err := probe.ValidateType(); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid symbolType", map[string]interface{}{
				"param": "symbolType",
				"value": string(opts.Type),
			})
		}
	}

	result, err := s.searcher.SearchSymbols(ctx, query, opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "symbol search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":        result.Query,
		"symbols":      result.Symbols,
		"totalResults": result.TotalResults,
		"searchTimeMs": result.SearchTime.Milliseconds(),
	})), nil
}

// handleFindDefinition handles the find_definition tool invocation
func (s *Server) handleFindDefinition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	symbolName, ok := args["symbolName"].(string)
	if !ok || symbolName == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "symbolName parameter is required", map[string]interface{}{
			"param":  "symbolName",
			"reason": "missing or empty",
		})
	}

	contextFile := getStringDefault(args, "contextFile", "")

	symbol, err := s.engine.FindDefinition(ctx, symbolName, contextFile)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "definition lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// A missing definition is a normal outcome, not an error
	response := map[string]interface{}{
		"symbolName": symbolName,
		"found":      symbol != nil,
	}
	if symbol != nil {
		response["symbol"] = symbol
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleFindReferences handles the find_references tool invocation
func (s *Server) handleFindReferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	symbolName, ok := args["symbolName"].(string)
	if !ok || symbolName == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "symbolName parameter is required", map[string]interface{}{
			"param":  "symbolName",
			"reason": "missing or empty",
		})
	}

	maxResults := getIntDefault(args, "maxResults", searcher.DefaultMaxResults)

	references, err := s.searcher.FindReferences(ctx, symbolName, maxResults)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "reference search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"symbol":          symbolName,
		"totalReferences": len(references),
		"references":      references,
	})), nil
}

// handleSemanticSearch handles the semantic_search tool invocation
func (s *Server) handleSemanticSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	searchType := searcher.SearchType(getStringDefault(args, "searchType", string(searcher.SearchAll)))
	switch searchType {
	case searcher.SearchDefinition, searcher.SearchUsage, searcher.SearchImplementation, searcher.SearchAll:
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid searchType", map[string]interface{}{
			"param": "searchType",
			"value": string(searchType),
		})
	}

	language := getStringDefault(args, "language", "")
	maxResults := getIntDefault(args, "maxResults", searcher.DefaultSemanticMaxResults)

	result, err := s.searcher.SemanticSearch(ctx, query, searchType, language, maxResults)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "semantic search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"query":      result.Query,
		"searchType": result.SearchType,
		"symbols":    result.Symbols,
		"references": result.References,
	})), nil
}

// handleFileOutline handles the file_outline tool invocation
func (s *Server) handleFileOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	filePath, ok := args["filePath"].(string)
	if !ok || filePath == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "filePath parameter is required", map[string]interface{}{
			"param":  "filePath",
			"reason": "missing or empty",
		})
	}

	symbols, err := s.engine.FileOutline(filePath)
	if err != nil {
		return nil, newMCPError(ErrorCodeOutlineFailed, "file outline failed", map[string]interface{}{
			"filePath": filePath,
			"error":    err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"filePath":     filePath,
		"totalSymbols": len(symbols),
		"symbols":      symbols,
	})), nil
}

// handleTextSearch handles the text_search tool invocation
func (s *Server) handleTextSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	pattern, ok := args["pattern"].(string)
	if !ok || pattern == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "pattern parameter is required", map[string]interface{}{
			"param":  "pattern",
			"reason": "missing or empty",
		})
	}

	opts := textsearch.Options{
		FileGlob:   getStringDefault(args, "fileGlob", ""),
		IsRegex:    getBoolDefault(args, "isRegex", false),
		MaxResults: getIntDefault(args, "maxResults", textsearch.DefaultMaxResults),
	}

	matches, err := s.textSearch.Search(ctx, pattern, opts)
	if err != nil {
		return nil, newMCPError(ErrorCodeSearchFailed, "text search failed", map[string]interface{}{
			"pattern": pattern,
			"error":   err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"pattern":      pattern,
		"totalMatches": len(matches),
		"matches":      matches,
	})), nil
}

// handleIndexStats handles the index_stats tool invocation
func (s *Server) handleIndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.engine.BuildIndex(ctx, false); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "index build failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	stats := s.engine.Stats()
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"totalFiles":        stats.TotalFiles,
		"totalSymbols":      stats.TotalSymbols,
		"languageBreakdown": stats.LanguageBreakdown,
		"symbolBreakdown":   stats.SymbolBreakdown,
		"fuzzyCorpusSize":   stats.FuzzyCorpusSize,
		"cacheAgeMs":        stats.CacheAge.Milliseconds(),
	})), nil
}

// handleClearCache handles the clear_cache tool invocation
func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engine.ClearCache()
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"cleared": true,
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
