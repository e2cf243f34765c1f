package types

import "errors"

// SymbolKind represents the kind of code entity a symbol names
type SymbolKind string

const (
	KindFunction  SymbolKind = "function"
	KindClass     SymbolKind = "class"
	KindMethod    SymbolKind = "method"
	KindVariable  SymbolKind = "variable"
	KindConstant  SymbolKind = "constant"
	KindInterface SymbolKind = "interface"
	KindType      SymbolKind = "type"
	KindEnum      SymbolKind = "enum"
	KindImport    SymbolKind = "import"
	KindExport    SymbolKind = "export"
)

// CodeSymbol represents a named code entity with a file location.
// Identity is structural: multiple symbols may share a name across files.
type CodeSymbol struct {
	// Identification
	Name     string     `json:"name"`
	Type     SymbolKind `json:"type"`
	Language string     `json:"language"`

	// Location. FilePath is relative to the index root.
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`

	// Context is the trimmed source line the symbol was found on
	Context string `json:"context"`
}

// ValidateType checks if the symbol kind is one of the closed enum values
func (s *CodeSymbol) ValidateType() error {
	switch s.Type {
	case KindFunction, KindClass, KindMethod, KindVariable, KindConstant,
		KindInterface, KindType, KindEnum, KindImport, KindExport:
		return nil
	default:
		return errors.New("invalid symbol kind")
	}
}

// Validate performs comprehensive validation of the symbol
func (s *CodeSymbol) Validate() error {
	if s.Name == "" {
		return errors.New("symbol name is required")
	}

	if err := s.ValidateType(); err != nil {
		return err
	}

	if s.FilePath == "" {
		return errors.New("symbol file path is required")
	}

	if s.Line <= 0 {
		return errors.New("invalid position: line number must be positive")
	}

	return nil
}
