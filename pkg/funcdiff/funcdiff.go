// Package funcdiff matches function spans against changed line ranges and
// synthesizes per-function unified diffs with full-function context.
package funcdiff

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/nasheedyasin/diffscope/pkg/diffrange"
	"github.com/nasheedyasin/diffscope/pkg/uast"
)

// Record is one per-function diff extracted from a file-level change.
type Record struct {
	FuncName     string `json:"func_name"`
	Diff         string `json:"contextualized_changes"`
	FilePath     string `json:"file_path"`
	FileLanguage string `json:"file_language"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

// Overlaps reports whether a function span intersects any changed range.
// Both sides are inclusive and 1-based, so a single shared line counts.
func Overlaps(span uast.FunctionSpan, ranges []diffrange.Range) bool {
	for _, r := range ranges {
		if span.StartLine <= r.End && span.EndLine >= r.Start {
			return true
		}
	}

	return false
}

// FromFileDiff extracts per-function diff records from one changed file.
// Pre-image functions overlapping source ranges are matched to post-image
// functions by qualified name (a deleted function diffs against empty text);
// post-image functions with no pre-image namesake that overlap target ranges
// are reported as additions. Records whose synthesized diff is empty are
// dropped. FilePath and FileLanguage are left for the caller to fill.
func FromFileDiff(ctx context.Context, parser *uast.Parser, preText, postText, fileUnifiedDiff string) ([]Record, error) {
	preFuncs, err := parser.ExtractFunctions(ctx, []byte(preText))
	if err != nil {
		return nil, fmt.Errorf("extract pre-image functions: %w", err)
	}

	postFuncs, err := parser.ExtractFunctions(ctx, []byte(postText))
	if err != nil {
		return nil, fmt.Errorf("extract post-image functions: %w", err)
	}

	ranges, err := diffrange.Parse(fileUnifiedDiff)
	if err != nil {
		return nil, err
	}

	aPath, bPath := diffrange.HeaderPaths(fileUnifiedDiff)

	postByName := make(map[string]uast.FunctionSpan, len(postFuncs))
	for _, fn := range postFuncs {
		postByName[fn.QualifiedName()] = fn
	}

	var records []Record

	for _, preFunc := range preFuncs {
		if !Overlaps(preFunc, ranges.Source) {
			continue
		}

		preFuncText := preText[preFunc.StartByte:preFunc.EndByte]

		postFuncText := ""
		if postFunc, ok := postByName[preFunc.QualifiedName()]; ok {
			postFuncText = postText[postFunc.StartByte:postFunc.EndByte]
		}

		diff, err := Synthesize(preFuncText, postFuncText, aPath, bPath)
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(diff) == "" {
			continue
		}

		added, deleted := lineStats(preFuncText, postFuncText)
		records = append(records, Record{
			FuncName:     preFunc.QualifiedName(),
			Diff:         diff,
			LinesAdded:   added,
			LinesDeleted: deleted,
		})
	}

	preNames := make(map[string]bool, len(preFuncs))
	for _, fn := range preFuncs {
		preNames[fn.QualifiedName()] = true
	}

	for _, postFunc := range postFuncs {
		if preNames[postFunc.QualifiedName()] || !Overlaps(postFunc, ranges.Target) {
			continue
		}

		postFuncText := postText[postFunc.StartByte:postFunc.EndByte]

		diff, err := Synthesize("", postFuncText, aPath, bPath)
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(diff) == "" {
			continue
		}

		added, deleted := lineStats("", postFuncText)
		records = append(records, Record{
			FuncName:     postFunc.QualifiedName(),
			Diff:         diff,
			LinesAdded:   added,
			LinesDeleted: deleted,
		})
	}

	return records, nil
}

// lineStats counts added and deleted lines between two texts using a
// line-granular diff.
func lineStats(preText, postText string) (added, deleted int) {
	if preText == postText {
		return 0, 0
	}

	dmp := diffmatchpatch.New()
	src, dst, _ := dmp.DiffLinesToRunes(preText, postText)

	for _, d := range dmp.DiffMainRunes(src, dst, false) {
		lines := len([]rune(d.Text))

		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += lines
		case diffmatchpatch.DiffDelete:
			deleted += lines
		case diffmatchpatch.DiffEqual:
		}
	}

	return added, deleted
}
