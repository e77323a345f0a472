package funcdiff_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/pkg/diffrange"
	"github.com/nasheedyasin/diffscope/pkg/funcdiff"
	"github.com/nasheedyasin/diffscope/pkg/language"
	"github.com/nasheedyasin/diffscope/pkg/uast"
)

func pythonParser(t *testing.T) *uast.Parser {
	t.Helper()

	parser, err := uast.NewParser("python", language.ConfigFor("python"))
	require.NoError(t, err)

	return parser
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	span := uast.FunctionSpan{StartLine: 5, EndLine: 10}

	tests := []struct {
		name   string
		ranges []diffrange.Range
		want   bool
	}{
		{name: "inside", ranges: []diffrange.Range{{Start: 6, End: 8}}, want: true},
		{name: "touching start", ranges: []diffrange.Range{{Start: 1, End: 5}}, want: true},
		{name: "touching end", ranges: []diffrange.Range{{Start: 10, End: 12}}, want: true},
		{name: "covering", ranges: []diffrange.Range{{Start: 1, End: 20}}, want: true},
		{name: "before", ranges: []diffrange.Range{{Start: 1, End: 4}}, want: false},
		{name: "after", ranges: []diffrange.Range{{Start: 11, End: 12}}, want: false},
		{name: "none", ranges: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, funcdiff.Overlaps(span, tt.ranges))
		})
	}
}

func TestFromFileDiffModifiedFunction(t *testing.T) {
	t.Parallel()

	preText := `def foo(x):
    return x


def bar(y):
    return y
`
	postText := `def foo(x):
    return x + 1


def bar(y):
    return y
`
	fileDiff := "--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -1,3 +1,3 @@\n" +
		" def foo(x):\n" +
		"-    return x\n" +
		"+    return x + 1\n" +
		" \n"

	records, err := funcdiff.FromFileDiff(context.Background(), pythonParser(t), preText, postText, fileDiff)
	require.NoError(t, err)

	// bar is outside the changed range and yields no record.
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "foo", rec.FuncName)
	assert.Contains(t, rec.Diff, "--- a/app.py")
	assert.Contains(t, rec.Diff, "+++ b/app.py")
	assert.Contains(t, rec.Diff, "-    return x")
	assert.Contains(t, rec.Diff, "+    return x + 1")
	assert.Contains(t, rec.Diff, " def foo(x):")
	assert.Equal(t, 1, rec.LinesAdded)
	assert.Equal(t, 1, rec.LinesDeleted)
}

func TestFromFileDiffDeletedFunction(t *testing.T) {
	t.Parallel()

	preText := `def foo(x):
    return x


def bar(y):
    return y
`
	postText := `def foo(x):
    return x
`
	fileDiff := "--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -3,4 +2,0 @@\n" +
		"-\n" +
		"-\n" +
		"-def bar(y):\n" +
		"-    return y\n"

	records, err := funcdiff.FromFileDiff(context.Background(), pythonParser(t), preText, postText, fileDiff)
	require.NoError(t, err)

	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "bar", rec.FuncName)
	assert.Contains(t, rec.Diff, "-def bar(y):")
	assert.Contains(t, rec.Diff, "-    return y")
	assert.NotContains(t, rec.Diff, "+def")
	assert.Equal(t, 0, rec.LinesAdded)
	assert.Equal(t, 2, rec.LinesDeleted)
}

func TestFromFileDiffAddedFunction(t *testing.T) {
	t.Parallel()

	preText := `def foo(x):
    return x
`
	postText := `def foo(x):
    return x


def baz(z):
    return z
`
	fileDiff := "--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -2,1 +2,5 @@\n" +
		"     return x\n" +
		"+\n" +
		"+\n" +
		"+def baz(z):\n" +
		"+    return z\n"

	records, err := funcdiff.FromFileDiff(context.Background(), pythonParser(t), preText, postText, fileDiff)
	require.NoError(t, err)

	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "baz", rec.FuncName)
	assert.Contains(t, rec.Diff, "+def baz(z):")
	assert.Equal(t, 2, rec.LinesAdded)
	assert.Equal(t, 0, rec.LinesDeleted)
}

func TestFromFileDiffRenamedFunction(t *testing.T) {
	t.Parallel()

	preText := `def old_name(x):
    return x
`
	postText := `def new_name(x):
    return x
`
	fileDiff := "--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-def old_name(x):\n" +
		"+def new_name(x):\n"

	records, err := funcdiff.FromFileDiff(context.Background(), pythonParser(t), preText, postText, fileDiff)
	require.NoError(t, err)

	// A rename is a deletion of the old name plus an addition of the new one.
	require.Len(t, records, 2)
	assert.Equal(t, "old_name", records[0].FuncName)
	assert.Equal(t, "new_name", records[1].FuncName)
}

func TestFromFileDiffIdenticalFunctionDropped(t *testing.T) {
	t.Parallel()

	text := `def foo(x):
    return x
`
	// The hunk claims a change in foo's range, but the function text is
	// identical on both sides; the empty synthesized diff drops the record.
	fileDiff := "--- a/app.py\n" +
		"+++ b/app.py\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-def foo(x):\n" +
		"+def foo(x):\n"

	records, err := funcdiff.FromFileDiff(context.Background(), pythonParser(t), text, text, fileDiff)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSynthesizeIdenticalTextsYieldEmpty(t *testing.T) {
	t.Parallel()

	diff, err := funcdiff.Synthesize("same\n", "same\n", "a/f.py", "b/f.py")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestSynthesizeShowsFullFunctionContext(t *testing.T) {
	t.Parallel()

	pre := "line1\nline2\nline3\nline4\nline5\n"
	post := "line1\nline2\nCHANGED\nline4\nline5\n"

	diff, err := funcdiff.Synthesize(pre, post, "a/f.py", "b/f.py")
	require.NoError(t, err)

	// Context is wide enough to include every line of both versions.
	for _, line := range []string{" line1", " line2", "-line3", "+CHANGED", " line4", " line5"} {
		assert.Contains(t, diff, line)
	}
}

func TestSynthesizeRoundTrip(t *testing.T) {
	t.Parallel()

	pre := "def f(a):\n    x = a\n    return x\n"
	post := "def f(a):\n    x = a + 1\n    y = x\n    return y\n"

	diff, err := funcdiff.Synthesize(pre, post, "a/app.py", "b/app.py")
	require.NoError(t, err)

	// Re-applying the synthesized diff to the pre-image reproduces the
	// post-image exactly.
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	require.NoError(t, err)
	require.Len(t, files, 1)

	var out bytes.Buffer

	require.NoError(t, gitdiff.Apply(&out, strings.NewReader(pre), files[0]))
	assert.Equal(t, post, out.String())
}

func TestSynthesizeAgainstEmpty(t *testing.T) {
	t.Parallel()

	diff, err := funcdiff.Synthesize("def gone():\n    pass\n", "", "a/f.py", "/dev/null")
	require.NoError(t, err)

	assert.Contains(t, diff, "--- a/f.py")
	assert.Contains(t, diff, "+++ /dev/null")
	assert.Contains(t, diff, "-def gone():")
	assert.Contains(t, diff, "-    pass")
}
