// Package uast loads tree-sitter grammars and extracts function and method
// spans from parsed syntax trees.
package uast

import (
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/c"
	"github.com/alexaandru/go-sitter-forest/c_sharp"
	"github.com/alexaandru/go-sitter-forest/cpp"
	golang "github.com/alexaandru/go-sitter-forest/go"
	"github.com/alexaandru/go-sitter-forest/java"
	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/python"
	"github.com/alexaandru/go-sitter-forest/rust"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// grammarFuncs maps grammar names to their tree-sitter GetLanguage functions.
// tsx is a separate grammar: plain typescript cannot parse JSX syntax.
var grammarFuncs = map[string]func() unsafe.Pointer{
	"c":          c.GetLanguage,
	"c_sharp":    c_sharp.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"go":         golang.GetLanguage,
	"java":       java.GetLanguage,
	"javascript": javascript.GetLanguage,
	"python":     python.GetLanguage,
	"rust":       rust.GetLanguage,
	"tsx":        tsx.GetLanguage,
	"typescript": typescript.GetLanguage,
}

var grammarCache sync.Map

// GetLanguage returns the tree-sitter Language for the given grammar name,
// or nil if not supported.
func GetLanguage(name string) *sitter.Language {
	if cached, ok := grammarCache.Load(name); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang
		}
	}

	fn, ok := grammarFuncs[name]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	grammarCache.Store(name, lang)

	return lang
}

// SupportedGrammars lists the grammar names with a registered language
// function.
func SupportedGrammars() []string {
	names := make([]string, 0, len(grammarFuncs))
	for name := range grammarFuncs {
		names = append(names, name)
	}

	return names
}
