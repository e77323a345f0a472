package uast

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/nasheedyasin/diffscope/pkg/language"
)

// Sentinel errors for parser operations.
var (
	ErrLanguageNotAvailable = errors.New("tree-sitter language not available")

	errNoRootNode = errors.New("no root node")
	errPoolType   = errors.New("pool returned unexpected type")
)

// FunctionSpan is the location of one function or method definition in a
// single version of a file. Lines are 1-based and inclusive on both ends.
type FunctionSpan struct {
	Name      string
	ClassName string
	Separator string
	StartByte uint
	EndByte   uint
	StartLine int
	EndLine   int
}

// QualifiedName returns ClassName<sep>Name for methods, or Name for
// free functions.
func (s FunctionSpan) QualifiedName() string {
	if s.ClassName != "" {
		return s.ClassName + s.Separator + s.Name
	}

	return s.Name
}

// Parser extracts function spans from source text in one grammar. It is safe
// for concurrent use; tree-sitter parser instances are pooled since each one
// is single-threaded.
type Parser struct {
	grammar string
	config  *language.Config
	pool    sync.Pool
}

// NewParser builds a Parser for the named grammar using the given structural
// config. Returns ErrLanguageNotAvailable when the grammar is not compiled
// in.
func NewParser(grammar string, config *language.Config) (*Parser, error) {
	lang := GetLanguage(grammar)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotAvailable, grammar)
	}

	parser := &Parser{grammar: grammar, config: config}
	parser.pool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(lang)

			return tsParser
		},
	}

	return parser, nil
}

// Grammar returns the grammar name this parser was built with.
func (p *Parser) Grammar() string { return p.grammar }

// ExtractFunctions parses content and returns every function and method
// definition with its enclosing-class context. Definitions nested inside
// another function body are not reported separately; a method of a nested
// class is qualified by the innermost class name only.
func (p *Parser) ExtractFunctions(ctx context.Context, content []byte) ([]FunctionSpan, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", p.grammar, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	var spans []FunctionSpan
	p.collect(root, content, "", &spans)

	return spans, nil
}

func (p *Parser) collect(node sitter.Node, content []byte, className string, out *[]FunctionSpan) {
	kind := node.Type()

	switch {
	case p.config.FunctionNodeKinds[kind]:
		// Anonymous definitions have no identifier and are skipped.
		if name := identifierIn(node, content, p.config.IdentifierNodeKind); name != "" {
			*out = append(*out, FunctionSpan{
				Name:      name,
				ClassName: className,
				Separator: p.config.QualifiedNameSeparator,
				StartByte: node.StartByte(),
				EndByte:   node.EndByte(),
				StartLine: int(node.StartPoint().Row) + 1,
				EndLine:   int(node.EndPoint().Row) + 1,
			})
		}
	case p.config.ClassNodeKinds[kind]:
		inner := identifierIn(node, content, p.config.IdentifierNodeKind)
		for idx := range node.NamedChildCount() {
			p.collect(node.NamedChild(idx), content, inner, out)
		}
	default:
		for idx := range node.NamedChildCount() {
			p.collect(node.NamedChild(idx), content, className, out)
		}
	}
}

// identifierIn prefers a direct child of the identifier kind; some grammars
// nest the name deeper (C declarators), so a depth-first search is the
// fallback.
func identifierIn(node sitter.Node, content []byte, kind string) string {
	for idx := range node.NamedChildCount() {
		child := node.NamedChild(idx)
		if child.Type() == kind {
			return string(content[child.StartByte():child.EndByte()])
		}
	}

	found := findDescendantOfKind(node, kind)
	if found.IsNull() {
		return ""
	}

	return string(content[found.StartByte():found.EndByte()])
}

func findDescendantOfKind(node sitter.Node, kind string) sitter.Node {
	if node.Type() == kind {
		return node
	}

	for idx := range node.NamedChildCount() {
		found := findDescendantOfKind(node.NamedChild(idx), kind)
		if !found.IsNull() {
			return found
		}
	}

	return sitter.Node{}
}
