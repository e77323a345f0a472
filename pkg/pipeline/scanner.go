package pipeline

import (
	"github.com/nasheedyasin/diffscope/pkg/gitlib"
	"github.com/nasheedyasin/diffscope/pkg/language"
)

// interestingCommit walks the first-parent chain starting at start, up to
// depth commits, and returns the first commit whose changed files include
// interesting code. The returned commit may be start itself; intermediate
// commits are freed.
func (g *Generator) interestingCommit(start *gitlib.Commit, depth int) (*gitlib.Commit, error) {
	current := start

	release := func() {
		if current != start {
			current.Free()
		}
	}

	for checked := 0; checked < depth; checked++ {
		files, err := gitlib.ChangedFiles(g.repo, current)
		if err != nil {
			release()

			return nil, err
		}

		if g.isInteresting(files) {
			return current, nil
		}

		if current.NumParents() == 0 {
			break
		}

		parent, err := current.Parent(0)
		if err != nil {
			release()

			return nil, err
		}

		release()
		current = parent
	}

	release()

	return nil, ErrNoInterestingCommit
}

// isInteresting reports whether any changed file survives its language's
// ignore rules. Files in unknown languages are screened with the default
// table rather than dismissed outright.
func (g *Generator) isInteresting(changedFiles []string) bool {
	for _, path := range changedFiles {
		lang := language.Detect(path)
		if lang == "" {
			if !g.matcher.Ignored(path, language.DefaultIgnoreConfig) {
				return true
			}

			continue
		}

		cfg := language.ConfigFor(lang)
		if cfg != nil && !g.matcher.Ignored(path, cfg.Name) {
			return true
		}
	}

	return false
}
