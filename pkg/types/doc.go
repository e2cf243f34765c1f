// Package types provides shared type definitions for the CodeScout MCP server.
//
// This package defines the domain types used across CodeScout components:
// code symbols, code references, search results, and index statistics.
//
// # Core Types
//
// CodeSymbol represents a named code entity (function, class, variable, etc.)
// extracted from source via lexical parsing:
//
//	symbol := types.CodeSymbol{
//	    Name:     "getFileContent",
//	    Type:     types.KindFunction,
//	    Language: "typescript",
//	    FilePath: "src/fs/reader.ts",
//	    Line:     42,
//	    Column:   10,
//	}
//
// CodeReference represents a usage site of a symbol found by scanning source
// text. References are produced per search call and never cached:
//
//	ref := types.CodeReference{
//	    Symbol:        "getFileContent",
//	    FilePath:      "src/tools/read.ts",
//	    Line:          17,
//	    ReferenceType: types.RefUsage,
//	}
//
// # Validation
//
// Symbol and reference types implement validation methods to ensure data
// integrity before results are handed to the tool layer:
//
//	if err := symbol.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
