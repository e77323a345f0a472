package uast_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/pkg/language"
	"github.com/nasheedyasin/diffscope/pkg/uast"
)

func newParser(t *testing.T, grammar, lang string) *uast.Parser {
	t.Helper()

	cfg := language.ConfigFor(lang)
	require.NotNil(t, cfg)

	parser, err := uast.NewParser(grammar, cfg)
	require.NoError(t, err)

	return parser
}

func names(spans []uast.FunctionSpan) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.QualifiedName())
	}

	return out
}

func TestNewParserUnknownGrammar(t *testing.T) {
	t.Parallel()

	_, err := uast.NewParser("fortran", language.ConfigFor("python"))
	require.ErrorIs(t, err, uast.ErrLanguageNotAvailable)
}

func TestExtractFunctionsPython(t *testing.T) {
	t.Parallel()

	src := []byte(`def top(a):
    def inner():
        return 1
    return inner()


class Greeter:
    def greet(self):
        return "hi"
`)

	parser := newParser(t, "python", "python")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	// inner is nested inside top's body and is not reported separately.
	assert.Equal(t, []string{"top", "Greeter.greet"}, names(spans))

	require.Len(t, spans, 2)
	assert.Equal(t, 1, spans[0].StartLine)
	assert.Equal(t, 4, spans[0].EndLine)
	assert.Equal(t, "greet", spans[1].Name)
	assert.Equal(t, "Greeter", spans[1].ClassName)
	assert.Equal(t, 8, spans[1].StartLine)
	assert.Equal(t, 9, spans[1].EndLine)
}

func TestExtractFunctionsPythonNestedClass(t *testing.T) {
	t.Parallel()

	src := []byte(`class Outer:
    class Inner:
        def m(self):
            return 1

    def direct(self):
        return 2
`)

	parser := newParser(t, "python", "python")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	// A method of a nested class is qualified by the innermost class only.
	assert.Equal(t, []string{"Inner.m", "Outer.direct"}, names(spans))
}

func TestExtractFunctionsNoDefinitions(t *testing.T) {
	t.Parallel()

	parser := newParser(t, "python", "python")

	spans, err := parser.ExtractFunctions(context.Background(), []byte("x = 1\n"))
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestExtractFunctionsGo(t *testing.T) {
	t.Parallel()

	src := []byte(`package main

func Add(a, b int) int {
	return a + b
}
`)

	parser := newParser(t, "go", "go")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, "Add", spans[0].Name)
	assert.Empty(t, spans[0].ClassName)
	assert.Equal(t, 3, spans[0].StartLine)
	assert.Equal(t, 5, spans[0].EndLine)

	body := string(src[spans[0].StartByte:spans[0].EndByte])
	assert.Contains(t, body, "func Add")
	assert.Contains(t, body, "return a + b")
}

func TestExtractFunctionsJava(t *testing.T) {
	t.Parallel()

	src := []byte(`class Calculator {
    int add(int a, int b) {
        return a + b;
    }
}
`)

	parser := newParser(t, "java", "java")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, "Calculator.add", spans[0].QualifiedName())
}

func TestExtractFunctionsC(t *testing.T) {
	t.Parallel()

	src := []byte(`int add(int a, int b) {
    return a + b;
}
`)

	parser := newParser(t, "c", "c")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	// The name lives inside the declarator, found by the descendant search.
	require.Len(t, spans, 1)
	assert.Equal(t, "add", spans[0].Name)
	assert.Equal(t, 1, spans[0].StartLine)
	assert.Equal(t, 3, spans[0].EndLine)
}

func TestExtractFunctionsRust(t *testing.T) {
	t.Parallel()

	src := []byte(`fn double(x: i32) -> i32 {
    x * 2
}
`)

	parser := newParser(t, "rust", "rust")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, "double", spans[0].Name)
}

func TestExtractFunctionsTypeScript(t *testing.T) {
	t.Parallel()

	src := []byte(`function greet(name: string): string {
  return name;
}
`)

	parser := newParser(t, "typescript", "typescript")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, "greet", spans[0].Name)
}

func TestExtractFunctionsTSX(t *testing.T) {
	t.Parallel()

	src := []byte(`function render(x: number) {
  return <div>{x}</div>;
}
`)

	// JSX needs the tsx grammar; the structural config stays typescript's.
	parser := newParser(t, "tsx", "typescript")

	spans, err := parser.ExtractFunctions(context.Background(), src)
	require.NoError(t, err)

	require.Len(t, spans, 1)
	assert.Equal(t, "render", spans[0].Name)
}

func TestSupportedGrammars(t *testing.T) {
	t.Parallel()

	grammars := uast.SupportedGrammars()

	for _, want := range []string{"c", "c_sharp", "cpp", "go", "java", "javascript", "python", "rust", "tsx", "typescript"} {
		assert.Contains(t, grammars, want)
	}
}
