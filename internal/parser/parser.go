// Package parser extracts code symbols from source text using per-language
// lexical patterns. It builds no AST: extraction is line-oriented and
// regex-based, trading precision for speed and language breadth.
package parser

import (
	"regexp"
	"strings"

	"github.com/tbrandt/codescout-mcp/pkg/types"
)

// symbolPattern matches one declaration form for a language. The name is
// taken from the first capture group that matched.
type symbolPattern struct {
	re   *regexp.Regexp
	kind types.SymbolKind
}

// jsKeywords are identifiers the method-call pattern must never treat as a
// method name
var jsKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {},
	"return": {}, "function": {}, "new": {}, "typeof": {}, "await": {},
	"else": {}, "do": {}, "try": {}, "throw": {},
}

var tsPatterns = []symbolPattern{
	{regexp.MustCompile(`^\s*import\s+.*?from\s+['"]([^'"]+)['"]`), types.KindImport},
	{regexp.MustCompile(`^\s*export\s+default\s+([A-Za-z_$][\w$]*)\s*;?\s*$`), types.KindExport},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`), types.KindFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`), types.KindClass},
	{regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_$][\w$]*)`), types.KindInterface},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+)?enum\s+([A-Za-z_$][\w$]*)`), types.KindEnum},
	{regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$][\w$]*)\s*[=<]`), types.KindType},
	{regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$][\w$]*)`), types.KindConstant},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:let|var)\s+([A-Za-z_$][\w$]*)`), types.KindVariable},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|readonly|async|override)\s+)*([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*(?::[^{;]+)?\{`), types.KindMethod},
}

var goPatterns = []symbolPattern{
	{regexp.MustCompile(`^func\s+\([^)]+\)\s+([A-Za-z_]\w*)`), types.KindMethod},
	{regexp.MustCompile(`^func\s+([A-Za-z_]\w*)`), types.KindFunction},
	{regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+struct\b`), types.KindClass},
	{regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+interface\b`), types.KindInterface},
	{regexp.MustCompile(`^type\s+([A-Za-z_]\w*)`), types.KindType},
	{regexp.MustCompile(`^\s*const\s+([A-Za-z_]\w*)`), types.KindConstant},
	{regexp.MustCompile(`^\s*var\s+([A-Za-z_]\w*)`), types.KindVariable},
	{regexp.MustCompile(`^\s*import\s+(?:\w+\s+)?"([^"]+)"`), types.KindImport},
}

var pyPatterns = []symbolPattern{
	{regexp.MustCompile(`^\s+def\s+([A-Za-z_]\w*)`), types.KindMethod},
	{regexp.MustCompile(`^(?:async\s+)?def\s+([A-Za-z_]\w*)`), types.KindFunction},
	{regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`), types.KindClass},
	{regexp.MustCompile(`^\s*from\s+(\S+)\s+import\b`), types.KindImport},
	{regexp.MustCompile(`^\s*import\s+([\w.]+)`), types.KindImport},
	{regexp.MustCompile(`^([A-Z][A-Z0-9_]*)\s*=`), types.KindConstant},
}

var rustPatterns = []symbolPattern{
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+([A-Za-z_]\w*)`), types.KindFunction},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?struct\s+([A-Za-z_]\w*)`), types.KindClass},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?trait\s+([A-Za-z_]\w*)`), types.KindInterface},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?enum\s+([A-Za-z_]\w*)`), types.KindEnum},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?type\s+([A-Za-z_]\w*)`), types.KindType},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?const\s+([A-Za-z_]\w*)`), types.KindConstant},
	{regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?static\s+([A-Za-z_]\w*)`), types.KindVariable},
	{regexp.MustCompile(`^\s*use\s+([\w:]+)`), types.KindImport},
}

var javaPatterns = []symbolPattern{
	{regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)`), types.KindImport},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*class\s+([A-Za-z_]\w*)`), types.KindClass},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*interface\s+([A-Za-z_]\w*)`), types.KindInterface},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final)\s+)*enum\s+([A-Za-z_]\w*)`), types.KindEnum},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected)\s+)+(?:static\s+)?final\s+[\w<>\[\].]+\s+([A-Z][A-Z0-9_]*)\s*=`), types.KindConstant},
	{regexp.MustCompile(`^\s*(?:(?:public|private|protected)\s+)+(?:(?:static|final|abstract|synchronized)\s+)*[\w<>\[\].]+\s+([A-Za-z_]\w*)\s*\(`), types.KindMethod},
}

var patternsByLanguage = map[string][]symbolPattern{
	"typescript": tsPatterns,
	"javascript": tsPatterns,
	"go":         goPatterns,
	"python":     pyPatterns,
	"rust":       rustPatterns,
	"java":       javaPatterns,
}

// Parser extracts symbols from source content using lexical patterns
type Parser struct{}

// New creates a new Parser instance
func New() *Parser {
	return &Parser{}
}

// Parse extracts the symbols of a single file. FilePath is recorded on each
// symbol verbatim (callers pass index-root-relative paths). Lines that match
// no declaration pattern produce no symbols; a file with no matches returns
// an empty slice.
func (p *Parser) Parse(filePath, content, language string) []types.CodeSymbol {
	patterns, ok := patternsByLanguage[language]
	if !ok {
		return nil
	}

	var symbols []types.CodeSymbol
	for lineNo, line := range strings.Split(content, "\n") {
		for _, pat := range patterns {
			loc := pat.re.FindStringSubmatchIndex(line)
			if loc == nil || loc[2] < 0 {
				continue
			}
			name := line[loc[2]:loc[3]]
			if pat.kind == types.KindMethod {
				if _, keyword := jsKeywords[name]; keyword {
					continue
				}
			}
			symbols = append(symbols, types.CodeSymbol{
				Name:     name,
				Type:     pat.kind,
				Language: language,
				FilePath: filePath,
				Line:     lineNo + 1,
				Column:   loc[2] + 1,
				Context:  strings.TrimSpace(line),
			})
			break // first matching pattern wins per line
		}
	}

	return symbols
}
