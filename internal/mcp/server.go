package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/tbrandt/codescout-mcp/internal/engine"
	"github.com/tbrandt/codescout-mcp/internal/searcher"
	"github.com/tbrandt/codescout-mcp/internal/textsearch"
)

const (
	// ServerName is the MCP server name
	ServerName = "codescout-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the engine and its search layers.
// One server owns one engine instance rooted at a single project directory.
type Server struct {
	mcp        *server.MCPServer
	engine     *engine.Engine
	searcher   *searcher.Searcher
	textSearch *textsearch.Searcher
}

// NewServer creates a new MCP server for the given project root
func NewServer(root string, logger *slog.Logger) (*Server, error) {
	eng, err := engine.New(root, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:        mcpServer,
		engine:     eng,
		searcher:   searcher.New(eng),
		textSearch: textsearch.New(eng.Root()),
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchSymbolsTool(), s.handleSearchSymbols)
	s.mcp.AddTool(findDefinitionTool(), s.handleFindDefinition)
	s.mcp.AddTool(findReferencesTool(), s.handleFindReferences)
	s.mcp.AddTool(semanticSearchTool(), s.handleSemanticSearch)
	s.mcp.AddTool(fileOutlineTool(), s.handleFileOutline)
	s.mcp.AddTool(textSearchTool(), s.handleTextSearch)
	s.mcp.AddTool(indexStatsTool(), s.handleIndexStats)
	s.mcp.AddTool(clearCacheTool(), s.handleClearCache)
}
