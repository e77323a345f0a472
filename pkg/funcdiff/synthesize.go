package funcdiff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// splitKeepEnds splits text into lines that retain their trailing newline.
// A final line without a newline is kept as-is; empty text yields no lines.
func splitKeepEnds(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Synthesize produces a unified diff between two function texts with enough
// context to always show both functions in full. Identical texts yield an
// empty string.
func Synthesize(preText, postText, aPath, bPath string) (string, error) {
	preLines := splitKeepEnds(preText)
	postLines := splitKeepEnds(postText)

	context := len(preLines)
	if len(postLines) > context {
		context = len(postLines)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        preLines,
		B:        postLines,
		FromFile: aPath,
		ToFile:   bPath,
		Context:  context,
	})
	if err != nil {
		return "", fmt.Errorf("synthesize function diff: %w", err)
	}

	return diff, nil
}
