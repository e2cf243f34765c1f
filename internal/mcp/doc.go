// Package mcp exposes the CodeScout engine as MCP tools over stdio.
//
// One server owns one engine instance rooted at a single project directory.
// Eight tools are registered:
//
//	search_symbols    fuzzy symbol search with kind/language filters
//	find_definition   go-to-definition by exact name
//	find_references   usage sites of a symbol, classified by kind
//	semantic_search   symbol search composed with reference finding
//	file_outline      symbols of one file, indexed or not
//	text_search       three-tier full-text/regex search
//	index_stats       index size, breakdowns, and cache age
//	clear_cache       discard all in-memory structures
//
// Tool definitions live in schemas.go and handlers in tools.go. Handlers
// validate parameters, delegate to the engine or search layers, and return
// results as indented JSON text. Failures are reported as MCPError values
// with JSON-RPC style codes; the mcp-go framework handles encoding.
package mcp
