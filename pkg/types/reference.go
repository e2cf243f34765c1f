package types

import "errors"

// ReferenceType classifies how a symbol is used at a reference site
type ReferenceType string

const (
	RefDefinition ReferenceType = "definition"
	RefUsage      ReferenceType = "usage"
	RefImport     ReferenceType = "import"
	RefType       ReferenceType = "type"
)

// CodeReference represents a single usage site of a symbol.
// References are produced transiently per search call and never cached.
type CodeReference struct {
	Symbol        string        `json:"symbol"`
	FilePath      string        `json:"filePath"`
	Line          int           `json:"line"`
	Column        int           `json:"column"`
	Context       string        `json:"context"`
	ReferenceType ReferenceType `json:"referenceType"`
}

// ValidateReferenceType checks if the reference type is one of the closed enum values
func (r *CodeReference) ValidateReferenceType() error {
	switch r.ReferenceType {
	case RefDefinition, RefUsage, RefImport, RefType:
		return nil
	default:
		return errors.New("invalid reference type")
	}
}

// Validate performs comprehensive validation of the reference
func (r *CodeReference) Validate() error {
	if r.Symbol == "" {
		return errors.New("reference symbol is required")
	}

	if r.FilePath == "" {
		return errors.New("reference file path is required")
	}

	if r.Line <= 0 {
		return errors.New("invalid position: line number must be positive")
	}

	return r.ValidateReferenceType()
}
