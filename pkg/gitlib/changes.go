package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/src-d/enry/v2"
)

// FileDiff pairs a changed file path with the unified diff text of that
// file, headers included.
type FileDiff struct {
	Path        string
	UnifiedDiff string
}

// ChangedFiles returns the paths touched by a commit relative to its first
// parent, in diff iteration order without duplicates. For a root commit
// every tracked file counts as changed.
func ChangedFiles(repo *Repository, commit *Commit) ([]string, error) {
	if commit.NumParents() == 0 {
		return allTrackedFiles(repo, commit)
	}

	diff, err := firstParentDiff(repo, commit)
	if err != nil {
		return nil, err
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, numDeltas)
	paths := make([]string, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			continue
		}

		path := delta.OldFile.Path
		if path == "" {
			path = delta.NewFile.Path
		}

		if path == "" || seen[path] {
			continue
		}

		seen[path] = true
		paths = append(paths, path)
	}

	return paths, nil
}

// ChangedFilesWithDiffs returns one unified diff per file changed by the
// commit relative to its first parent, prefixed with explicit ---/+++
// headers (using /dev/null for the missing side of adds and deletes).
// Binary files and files without text hunks are skipped. Root commits have
// no parent to diff against and yield nothing.
func ChangedFilesWithDiffs(repo *Repository, commit *Commit) ([]FileDiff, error) {
	if commit.NumParents() == 0 {
		return nil, nil
	}

	diff, err := firstParentDiff(repo, commit)
	if err != nil {
		return nil, err
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, err
	}

	fileDiffs := make([]FileDiff, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			continue
		}

		if delta.Flags&git2go.DiffFlagBinary != 0 {
			continue
		}

		patchText, patchErr := diff.PatchText(i)
		if patchErr != nil {
			continue
		}

		hunks := hunkText(patchText)
		if hunks == "" {
			continue
		}

		path := delta.NewFile.Path
		if delta.Status == git2go.DeltaDeleted {
			path = delta.OldFile.Path
		}

		if path == "" {
			continue
		}

		fileDiffs = append(fileDiffs, FileDiff{
			Path:        path,
			UnifiedDiff: diffHeader(delta) + hunks,
		})
	}

	return fileDiffs, nil
}

// FileAtCommit returns the text of a file as of a commit. Missing paths and
// binary content yield the empty string; the caller treats both the same as
// an absent pre- or post-image.
func FileAtCommit(repo *Repository, commit *Commit, path string) (string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return "", err
	}
	defer tree.Free()

	entry, err := tree.EntryByPath(path)
	if err != nil {
		return "", nil
	}

	blob, err := repo.LookupBlob(entry.Hash())
	if err != nil {
		return "", err
	}
	defer blob.Free()

	contents := blob.Contents()
	if enry.IsBinary(contents) {
		return "", nil
	}

	return string(contents), nil
}

// CommitStats summarizes a commit's diff against its first parent.
type CommitStats struct {
	FilesChanged int
	Insertions   int
	Deletions    int
}

// StatsForCommit returns whole-commit line stats relative to the first
// parent.
func StatsForCommit(repo *Repository, commit *Commit) (CommitStats, error) {
	diff, err := firstParentDiff(repo, commit)
	if err != nil {
		return CommitStats{}, err
	}
	defer diff.Free()

	stats, err := diff.Stats()
	if err != nil {
		return CommitStats{}, err
	}
	defer stats.Free()

	return CommitStats{
		FilesChanged: stats.FilesChanged(),
		Insertions:   stats.Insertions(),
		Deletions:    stats.Deletions(),
	}, nil
}

// firstParentDiff diffs a commit's tree against its first parent's tree.
func firstParentDiff(repo *Repository, commit *Commit) (*Diff, error) {
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	defer parent.Free()

	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	defer parentTree.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	defer tree.Free()

	return repo.DiffTreeToTree(parentTree, tree)
}

// diffHeader builds the ---/+++ lines for a delta.
func diffHeader(delta DiffDelta) string {
	aLine := "--- /dev/null"
	if delta.Status != git2go.DeltaAdded && delta.OldFile.Path != "" {
		aLine = "--- a/" + delta.OldFile.Path
	}

	bLine := "+++ /dev/null"
	if delta.Status != git2go.DeltaDeleted && delta.NewFile.Path != "" {
		bLine = "+++ b/" + delta.NewFile.Path
	}

	return aLine + "\n" + bLine + "\n"
}

// hunkText strips the git patch preamble, returning everything from the
// first hunk header on.
func hunkText(patchText string) string {
	idx := strings.Index(patchText, "\n@@")
	if idx >= 0 {
		return patchText[idx+1:]
	}

	if strings.HasPrefix(patchText, "@@") {
		return patchText
	}

	return ""
}

// allTrackedFiles lists every blob path in the commit's tree.
func allTrackedFiles(repo *Repository, commit *Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}
	defer tree.Free()

	var paths []string

	err = walkTree(repo, tree, "", func(path string, entry *TreeEntry) error {
		if entry.IsBlob() {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk commit tree: %w", err)
	}

	return paths, nil
}

// walkTree recursively walks a tree and calls the callback for each entry.
func walkTree(repo *Repository, tree *Tree, prefix string, cb func(path string, entry *TreeEntry) error) error {
	count := tree.EntryCount()

	for i := range count {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		if err := processTreeEntry(repo, entry, prefix, cb); err != nil {
			return err
		}
	}

	return nil
}

func processTreeEntry(repo *Repository, entry *TreeEntry, prefix string, cb func(path string, entry *TreeEntry) error) error {
	path := entry.Name()
	if prefix != "" {
		path = prefix + "/" + path
	}

	if entry.IsBlob() {
		return cb(path, entry)
	}

	if entry.Type() != git2go.ObjectTree {
		return nil
	}

	subtree, err := repo.LookupTree(entry.Hash())
	if err != nil {
		return nil // Skip entries we can't look up.
	}
	defer subtree.Free()

	return walkTree(repo, subtree, path, cb)
}
