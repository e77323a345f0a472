package language

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// extensionToLanguage maps lowercased file extensions to parser-level
// language identifiers. Headers default to C; a .h file that is really C++
// still parses, since both share the c_and_cpp structural config.
var extensionToLanguage = map[string]string{
	".py":  "python",
	".pyi": "python",
	".pyx": "python",
	".pxi": "python",

	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",

	".java": "java",

	".c":   "c",
	".h":   "c",
	".cpp": "cpp",
	".cc":  "cpp",
	".cxx": "cpp",
	".c++": "cpp",
	".hpp": "cpp",
	".hxx": "cpp",
	".h++": "cpp",

	".cs": "c_sharp",
	".rs": "rust",
	".go": "go",
}

// enryToLanguage maps enry canonical language names onto the supported
// parser-level identifiers, for files whose extension is not in the table.
var enryToLanguage = map[string]string{
	"Python":     "python",
	"JavaScript": "javascript",
	"TypeScript": "typescript",
	"Java":       "java",
	"C":          "c",
	"C++":        "cpp",
	"C#":         "c_sharp",
	"Rust":       "rust",
	"Go":         "go",
}

// Detect returns the parser-level language identifier for a file path, or ""
// when the file is not in any supported language. The extension table is
// authoritative; enry's filename-based detection serves as a fallback for
// uncommon extensions.
func Detect(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionToLanguage[ext]; ok {
		return lang
	}

	if detected, ok := enry.GetLanguageByExtension(filepath.Base(path)); ok {
		return enryToLanguage[detected]
	}

	return ""
}

// GrammarFor returns the tree-sitter grammar name for a file in the given
// parser-level language. Plain typescript grammars cannot parse JSX, so .tsx
// files use the tsx grammar while still reporting language "typescript".
func GrammarFor(path, parserLanguage string) string {
	if parserLanguage == "typescript" && strings.EqualFold(filepath.Ext(path), ".tsx") {
		return "tsx"
	}

	return parserLanguage
}
