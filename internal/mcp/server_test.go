package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	files := map[string]string{
		"src/a.ts": "export function getFileContent(path) {\n  return null\n}\n",
		"src/b.ts": "import {getFileContent} from './a'\n\nconst data = getFileContent('x')\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(content), 0644))
	}

	server, err := NewServer(root, nil)
	require.NoError(t, err)
	return server
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// decodeResult unpacks the JSON text payload every tool handler returns
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "tool results are text content")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func requireMCPError(t *testing.T, err error, code int) *MCPError {
	t.Helper()
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code)
	return mcpErr
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t)

	assert.NotNil(t, server.mcp, "MCP server should be initialized")
	assert.NotNil(t, server.engine, "Engine should be initialized")
	assert.NotNil(t, server.searcher, "Searcher should be initialized")
	assert.NotNil(t, server.textSearch, "Text searcher should be initialized")
}

func TestHandleSearchSymbols(t *testing.T) {
	server := newTestServer(t)

	t.Run("returns ranked symbols", func(t *testing.T) {
		result, err := server.handleSearchSymbols(context.Background(), callRequest(map[string]interface{}{
			"query": "getFileContent",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, "getFileContent", payload["query"])
		symbols, ok := payload["symbols"].([]interface{})
		require.True(t, ok)
		require.NotEmpty(t, symbols)

		top, ok := symbols[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "getFileContent", top["name"])
		assert.Equal(t, "src/a.ts", top["filePath"])
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		_, err := server.handleSearchSymbols(context.Background(), callRequest(map[string]interface{}{
			"query": "",
		}))
		requireMCPError(t, err, ErrorCodeEmptyQuery)
	})

	t.Run("invalid symbolType is rejected", func(t *testing.T) {
		_, err := server.handleSearchSymbols(context.Background(), callRequest(map[string]interface{}{
			"query":      "get",
			"symbolType": "gadget",
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("non-map arguments are rejected", func(t *testing.T) {
		_, err := server.handleSearchSymbols(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: "not a map"},
		})
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleFindDefinition(t *testing.T) {
	server := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		result, err := server.handleFindDefinition(context.Background(), callRequest(map[string]interface{}{
			"symbolName": "getFileContent",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, true, payload["found"])

		symbol, ok := payload["symbol"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "src/a.ts", symbol["filePath"])
	})

	t.Run("missing definition is a normal result", func(t *testing.T) {
		result, err := server.handleFindDefinition(context.Background(), callRequest(map[string]interface{}{
			"symbolName": "nonexistentSymbol",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, false, payload["found"])
		assert.NotContains(t, payload, "symbol")
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		_, err := server.handleFindDefinition(context.Background(), callRequest(map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleFindReferences(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleFindReferences(context.Background(), callRequest(map[string]interface{}{
		"symbolName": "getFileContent",
	}))
	require.NoError(t, err)

	payload := decodeResult(t, result)
	assert.Equal(t, "getFileContent", payload["symbol"])
	assert.GreaterOrEqual(t, payload["totalReferences"], float64(3), "definition, import, and usage")
}

func TestHandleSemanticSearch(t *testing.T) {
	server := newTestServer(t)

	t.Run("defaults to all", func(t *testing.T) {
		result, err := server.handleSemanticSearch(context.Background(), callRequest(map[string]interface{}{
			"query": "getFileContent",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, "all", payload["searchType"])
	})

	t.Run("invalid searchType is rejected", func(t *testing.T) {
		_, err := server.handleSemanticSearch(context.Background(), callRequest(map[string]interface{}{
			"query":      "getFileContent",
			"searchType": "bogus",
		}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})

	t.Run("engine failures are internal errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := server.handleSemanticSearch(ctx, callRequest(map[string]interface{}{
			"query": "getFileContent",
		}))
		requireMCPError(t, err, ErrorCodeInternalError)
	})
}

func TestHandleFileOutline(t *testing.T) {
	server := newTestServer(t)

	t.Run("lists symbols in source order", func(t *testing.T) {
		result, err := server.handleFileOutline(context.Background(), callRequest(map[string]interface{}{
			"filePath": "src/a.ts",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, "src/a.ts", payload["filePath"])
		assert.Equal(t, float64(1), payload["totalSymbols"])
	})

	t.Run("unreadable file is an outline error", func(t *testing.T) {
		_, err := server.handleFileOutline(context.Background(), callRequest(map[string]interface{}{
			"filePath": "src/missing.ts",
		}))
		mcpErr := requireMCPError(t, err, ErrorCodeOutlineFailed)
		data, ok := mcpErr.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "src/missing.ts", data["filePath"])
	})
}

func TestHandleTextSearch(t *testing.T) {
	server := newTestServer(t)

	t.Run("finds matches", func(t *testing.T) {
		result, err := server.handleTextSearch(context.Background(), callRequest(map[string]interface{}{
			"pattern":  "getFileContent",
			"fileGlob": "*.ts",
		}))
		require.NoError(t, err)

		payload := decodeResult(t, result)
		assert.Equal(t, "getFileContent", payload["pattern"])
		assert.GreaterOrEqual(t, payload["totalMatches"], float64(1))
	})

	t.Run("invalid regex is a search failure", func(t *testing.T) {
		_, err := server.handleTextSearch(context.Background(), callRequest(map[string]interface{}{
			"pattern": "[unclosed",
			"isRegex": true,
		}))
		requireMCPError(t, err, ErrorCodeSearchFailed)
	})

	t.Run("missing pattern is rejected", func(t *testing.T) {
		_, err := server.handleTextSearch(context.Background(), callRequest(map[string]interface{}{}))
		requireMCPError(t, err, ErrorCodeInvalidParams)
	})
}

func TestHandleIndexStats(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleIndexStats(context.Background(), callRequest(nil))
	require.NoError(t, err)

	payload := decodeResult(t, result)
	assert.Equal(t, float64(2), payload["totalFiles"])
	assert.GreaterOrEqual(t, payload["totalSymbols"], float64(2))

	languages, ok := payload["languageBreakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, languages, "typescript")
}

func TestHandleClearCache(t *testing.T) {
	server := newTestServer(t)

	// Build first so clearing has something to discard
	_, err := server.handleIndexStats(context.Background(), callRequest(nil))
	require.NoError(t, err)

	result, err := server.handleClearCache(context.Background(), callRequest(nil))
	require.NoError(t, err)

	payload := decodeResult(t, result)
	assert.Equal(t, true, payload["cleared"])
}

func TestParameterHelpers(t *testing.T) {
	args := map[string]interface{}{
		"str":   "value",
		"num":   float64(7),
		"whole": 3,
		"flag":  true,
	}

	assert.Equal(t, "value", getStringDefault(args, "str", "d"))
	assert.Equal(t, "d", getStringDefault(args, "absent", "d"))
	assert.Equal(t, 7, getIntDefault(args, "num", 0))
	assert.Equal(t, 3, getIntDefault(args, "whole", 0))
	assert.Equal(t, 9, getIntDefault(args, "absent", 9))
	assert.True(t, getBoolDefault(args, "flag", false))
	assert.False(t, getBoolDefault(args, "absent", false))
}
