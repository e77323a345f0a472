// Package diffrange derives changed line ranges and header paths from
// unified diff text.
package diffrange

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// DevNull is the header path used for the missing side of an added or
// deleted file.
const DevNull = "/dev/null"

// Range is an inclusive 1-based line range.
type Range struct {
	Start int
	End   int
}

// Ranges holds the changed line ranges of one file diff, separated by side.
// Source ranges address the pre-image, target ranges the post-image. Ranges
// are derived from hunk headers only; context lines inside a hunk count as
// changed.
type Ranges struct {
	Source []Range
	Target []Range
}

// Parse extracts the changed line ranges from a single-file unified diff.
// A hunk contributes a source range only when its pre-image side is
// non-empty, and a target range only when its post-image side is non-empty,
// so pure additions and pure deletions yield one-sided ranges.
func Parse(unifiedDiff string) (Ranges, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(unifiedDiff))
	if err != nil {
		return Ranges{}, fmt.Errorf("parse unified diff: %w", err)
	}

	if len(files) == 0 {
		return Ranges{}, nil
	}

	var ranges Ranges
	for _, frag := range files[0].TextFragments {
		if frag.OldLines > 0 {
			start := int(frag.OldPosition)
			ranges.Source = append(ranges.Source, Range{Start: start, End: start + int(frag.OldLines) - 1})
		}

		if frag.NewLines > 0 {
			start := int(frag.NewPosition)
			ranges.Target = append(ranges.Target, Range{Start: start, End: start + int(frag.NewLines) - 1})
		}
	}

	return ranges, nil
}

// HeaderPaths returns the ---/+++ names of a single-file unified diff
// verbatim, with DevNull standing in for a missing header. The names are
// read from the header lines directly: go-gitdiff resolves both sides of a
// traditional header to the +++ name, which would misreport the pre-image.
func HeaderPaths(unifiedDiff string) (aPath, bPath string) {
	aPath, bPath = DevNull, DevNull

	for _, line := range strings.Split(unifiedDiff, "\n") {
		switch {
		case strings.HasPrefix(line, "--- "):
			aPath = headerName(line[len("--- "):])
		case strings.HasPrefix(line, "+++ "):
			bPath = headerName(line[len("+++ "):])
		case strings.HasPrefix(line, "@@"):
			// Headers precede the first hunk.
			return aPath, bPath
		}
	}

	return aPath, bPath
}

// headerName strips the optional timestamp after the file name.
func headerName(rest string) string {
	name, _, _ := strings.Cut(rest, "\t")

	return strings.TrimRight(name, "\r")
}
