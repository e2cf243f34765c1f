package parser

import (
	"path/filepath"
	"strings"
)

// languageByExt maps file extensions to the language name used throughout
// the index. Only extensions present here are considered indexable.
var languageByExt = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".go":   "go",
	".py":   "python",
	".rs":   "rust",
	".java": "java",
}

// LanguageForPath infers the language for a file path from its extension.
// The second return value is false for unknown extensions.
func LanguageForPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := languageByExt[ext]
	return lang, ok
}

// Extensions returns the set of indexable file extensions
func Extensions() []string {
	exts := make([]string, 0, len(languageByExt))
	for ext := range languageByExt {
		exts = append(exts, ext)
	}
	return exts
}
