package gitlib

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// InitTestRepo creates an empty non-bare repository at path. Intended for
// test fixtures.
func InitTestRepo(path string) (*Repository, error) {
	repo, err := git2go.InitRepository(path, false)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// CommitFiles writes the given files into the worktree, stages them, and
// commits on HEAD, returning the new commit's hash. Intended for test
// fixtures.
func CommitFiles(repo *Repository, message string, files map[string]string) (Hash, error) {
	idx, err := repo.Native().Index()
	if err != nil {
		return Hash{}, fmt.Errorf("get index: %w", err)
	}
	defer idx.Free()

	for name, content := range files {
		full := filepath.Join(repo.Path(), name)
		if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return Hash{}, fmt.Errorf("create dirs for %s: %w", name, err)
		}

		if err = os.WriteFile(full, []byte(content), 0o644); err != nil {
			return Hash{}, fmt.Errorf("write %s: %w", name, err)
		}

		if err = idx.AddByPath(name); err != nil {
			return Hash{}, fmt.Errorf("stage %s: %w", name, err)
		}
	}

	return commitIndex(repo, idx, message)
}

// RemoveFiles deletes the given files from the worktree and index and
// commits the removal. Intended for test fixtures.
func RemoveFiles(repo *Repository, message string, names ...string) (Hash, error) {
	idx, err := repo.Native().Index()
	if err != nil {
		return Hash{}, fmt.Errorf("get index: %w", err)
	}
	defer idx.Free()

	for _, name := range names {
		if err = os.Remove(filepath.Join(repo.Path(), name)); err != nil {
			return Hash{}, fmt.Errorf("remove %s: %w", name, err)
		}

		if err = idx.RemoveByPath(name); err != nil {
			return Hash{}, fmt.Errorf("unstage %s: %w", name, err)
		}
	}

	return commitIndex(repo, idx, message)
}

func commitIndex(repo *Repository, idx *git2go.Index, message string) (Hash, error) {
	treeOid, err := idx.WriteTree()
	if err != nil {
		return Hash{}, fmt.Errorf("write tree: %w", err)
	}

	if err = idx.Write(); err != nil {
		return Hash{}, fmt.Errorf("write index: %w", err)
	}

	tree, err := repo.Native().LookupTree(treeOid)
	if err != nil {
		return Hash{}, fmt.Errorf("lookup tree: %w", err)
	}
	defer tree.Free()

	sig := &git2go.Signature{Name: "test", Email: "test@example.com", When: time.Now()}

	var parents []*git2go.Commit

	if head, headErr := repo.Native().Head(); headErr == nil {
		parent, lookupErr := repo.Native().LookupCommit(head.Target())
		head.Free()

		if lookupErr != nil {
			return Hash{}, fmt.Errorf("lookup head commit: %w", lookupErr)
		}

		defer parent.Free()
		parents = append(parents, parent)
	}

	oid, err := repo.Native().CreateCommit("HEAD", sig, sig, message, tree, parents...)
	if err != nil {
		return Hash{}, fmt.Errorf("create commit: %w", err)
	}

	return HashFromOid(oid), nil
}
