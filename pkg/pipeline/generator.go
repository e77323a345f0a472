// Package pipeline orchestrates per-commit function-diff extraction: it
// resolves the commit, filters changed files, lazily builds parsers for the
// languages present, and collects per-function diff records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nasheedyasin/diffscope/pkg/funcdiff"
	"github.com/nasheedyasin/diffscope/pkg/gitlib"
	"github.com/nasheedyasin/diffscope/pkg/language"
	"github.com/nasheedyasin/diffscope/pkg/uast"
)

// Sentinel result conditions, distinguishable from git lookup errors with
// errors.Is.
var (
	// ErrNoFunctionDiffs means extraction completed but produced no records.
	ErrNoFunctionDiffs = errors.New("no function diffs found")

	// ErrNoInterestingCommit means the history scan exhausted its depth
	// without finding a commit that touches interesting code.
	ErrNoInterestingCommit = errors.New("no interesting commit found within scan depth")
)

// Generator extracts per-function unified diffs from commits of one
// repository. Parsers are built lazily per grammar and reused across
// commits.
type Generator struct {
	repo     *gitlib.Repository
	acquired *gitlib.Acquired
	matcher  *language.Matcher
	parsers  map[string]*uast.Parser
}

// NewGenerator builds a Generator over an already opened repository. The
// caller retains ownership of the repository handle.
func NewGenerator(repo *gitlib.Repository) (*Generator, error) {
	matcher, err := language.NewMatcher()
	if err != nil {
		return nil, err
	}

	return &Generator{
		repo:    repo,
		matcher: matcher,
		parsers: make(map[string]*uast.Parser),
	}, nil
}

// Open builds a Generator over the repository at path.
func Open(path string) (*Generator, error) {
	repo, err := gitlib.OpenRepository(path)
	if err != nil {
		return nil, err
	}

	gen, err := NewGenerator(repo)
	if err != nil {
		repo.Free()

		return nil, err
	}

	// The generator owns the handle it opened.
	gen.acquired = &gitlib.Acquired{Repo: repo}

	return gen, nil
}

// AcquireGenerator clones or reuses slug from host (cached under cacheDir
// when non-empty) and builds a Generator over it. Close releases the clone
// per the acquisition rules: ephemeral clones are removed, cached working
// copies are kept.
func AcquireGenerator(slug, host, cacheDir string) (*Generator, error) {
	acquired, err := gitlib.Acquire(slug, host, cacheDir)
	if err != nil {
		return nil, err
	}

	gen, err := NewGenerator(acquired.Repo)
	if err != nil {
		acquired.Close()

		return nil, err
	}

	gen.acquired = acquired

	return gen, nil
}

// RepoPath returns the working directory of the underlying repository.
func (g *Generator) RepoPath() string {
	return g.repo.Path()
}

// Close releases resources held by the generator.
func (g *Generator) Close() {
	if g.acquired != nil {
		g.acquired.Close()
		g.acquired = nil
		g.repo = nil
	}
}

// Extract returns per-function diff records for the commit named by
// commitRef. With scanDepth > 0 the first-parent history is scanned for the
// nearest commit touching interesting code before extraction. Per-file
// failures are logged and skipped. A commit with no file diffs yields an
// empty result; a run that processed files but produced no records returns
// ErrNoFunctionDiffs.
func (g *Generator) Extract(ctx context.Context, commitRef string, scanDepth int) ([]funcdiff.Record, error) {
	commit, err := g.repo.RevparseCommit(commitRef)
	if err != nil {
		return nil, err
	}
	defer commit.Free()

	if scanDepth > 0 {
		interesting, scanErr := g.interestingCommit(commit, scanDepth)
		if scanErr != nil {
			return nil, scanErr
		}
		defer interesting.Free()

		commit = interesting
	}

	fileDiffs, err := gitlib.ChangedFilesWithDiffs(g.repo, commit)
	if err != nil {
		return nil, err
	}

	// A commit that diffs to nothing (a root commit has no parent to diff
	// against) is an empty result, not a failure.
	if len(fileDiffs) == 0 {
		return nil, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	defer parent.Free()

	var records []funcdiff.Record

	for _, fd := range fileDiffs {
		fileRecords, fileErr := g.extractFile(ctx, parent, commit, fd)
		if fileErr != nil {
			slog.Warn("could not process file", "path", fd.Path, "error", fileErr)

			continue
		}

		records = append(records, fileRecords...)
	}

	if len(records) == 0 {
		return nil, ErrNoFunctionDiffs
	}

	return records, nil
}

// CommitHeadline returns the summary line and author signature of the
// commit named by commitRef.
func (g *Generator) CommitHeadline(commitRef string) (string, gitlib.Signature, error) {
	commit, err := g.repo.RevparseCommit(commitRef)
	if err != nil {
		return "", gitlib.Signature{}, err
	}
	defer commit.Free()

	return commit.Summary(), commit.Author(), nil
}

// CommitStats returns whole-commit line stats for the commit named by
// commitRef, relative to its first parent.
func (g *Generator) CommitStats(commitRef string) (gitlib.CommitStats, error) {
	commit, err := g.repo.RevparseCommit(commitRef)
	if err != nil {
		return gitlib.CommitStats{}, err
	}
	defer commit.Free()

	return gitlib.StatsForCommit(g.repo, commit)
}

// extractFile produces the function-diff records of one changed file, or
// nil when the file is not interesting source in a supported language.
func (g *Generator) extractFile(ctx context.Context, parent, commit *gitlib.Commit, fd gitlib.FileDiff) ([]funcdiff.Record, error) {
	lang := language.Detect(fd.Path)
	if lang == "" {
		return nil, nil
	}

	cfg := language.ConfigFor(lang)
	if cfg == nil || g.matcher.Ignored(fd.Path, cfg.Name) {
		return nil, nil
	}

	parser, err := g.parserFor(fd.Path, lang, cfg)
	if err != nil {
		if errors.Is(err, uast.ErrLanguageNotAvailable) {
			slog.Warn("parser not available, skipping file", "path", fd.Path, "language", lang)

			return nil, nil
		}

		return nil, err
	}

	if strings.TrimSpace(fd.UnifiedDiff) == "" {
		return nil, nil
	}

	preText, err := gitlib.FileAtCommit(g.repo, parent, fd.Path)
	if err != nil {
		return nil, err
	}

	postText, err := gitlib.FileAtCommit(g.repo, commit, fd.Path)
	if err != nil {
		return nil, err
	}

	records, err := funcdiff.FromFileDiff(ctx, parser, preText, postText, fd.UnifiedDiff)
	if err != nil {
		return nil, fmt.Errorf("extract function diffs: %w", err)
	}

	for i := range records {
		records[i].FilePath = fd.Path
		records[i].FileLanguage = lang
	}

	return records, nil
}

// parserFor returns the cached parser for a file's grammar, building it on
// first use.
func (g *Generator) parserFor(path, lang string, cfg *language.Config) (*uast.Parser, error) {
	grammar := language.GrammarFor(path, lang)

	if parser, ok := g.parsers[grammar]; ok {
		return parser, nil
	}

	parser, err := uast.NewParser(grammar, cfg)
	if err != nil {
		return nil, err
	}

	g.parsers[grammar] = parser

	return parser, nil
}
