package gitlib

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Sentinel errors for repository acquisition.
var (
	ErrUnsupportedHost = errors.New("unsupported git host")
	ErrInvalidSlug     = errors.New("repository slug must be owner/name")
)

// hostURLs maps supported hosting providers to their base URLs.
var hostURLs = map[string]string{
	"github": "https://github.com",
	"gitlab": "https://gitlab.com",
}

// Acquired is a repository obtained by Acquire, either a persistent cache
// entry or an ephemeral clone.
type Acquired struct {
	Repo *Repository

	// tempRoot is set only for ephemeral clones; Close removes it. Cached
	// working copies are never deleted on teardown.
	tempRoot string
}

// Close frees the repository handle and removes the backing directory when
// the clone was ephemeral.
func (a *Acquired) Close() {
	if a.Repo != nil {
		a.Repo.Free()
		a.Repo = nil
	}

	if a.tempRoot != "" {
		_ = os.RemoveAll(a.tempRoot)
		a.tempRoot = ""
	}
}

// CacheKey returns the directory name a repository occupies inside the
// cache: host--owner--name.
func CacheKey(slug, host string) (string, error) {
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}

	return host + "--" + owner + "--" + name, nil
}

// Acquire makes a repository available locally. With a cache directory the
// working copy is cloned there once and refreshed on later calls; any cache
// failure falls back to a throwaway temp clone that Close removes.
func Acquire(slug, host, cacheDir string) (*Acquired, error) {
	baseURL, ok := hostURLs[host]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHost, host)
	}

	// A malformed slug is an input error, not a clone failure.
	if _, err := CacheKey(slug, host); err != nil {
		return nil, err
	}

	url := baseURL + "/" + slug + ".git"

	if cacheDir != "" {
		acquired, err := acquireCached(url, slug, host, cacheDir)
		if err == nil {
			return acquired, nil
		}

		slog.Warn("repository cache unavailable, using temporary clone", "slug", slug, "error", err)
	}

	return acquireEphemeral(url)
}

func acquireCached(url, slug, host, cacheDir string) (*Acquired, error) {
	key, err := CacheKey(slug, host)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	path := filepath.Join(cacheDir, key)

	if _, statErr := os.Stat(path); statErr == nil {
		repo, openErr := OpenRepository(path)
		if openErr == nil {
			refreshCached(repo, slug)

			return &Acquired{Repo: repo}, nil
		}

		// Whatever occupies the cache slot is not a usable repository.
		slog.Warn("removing invalid cached repository", "path", path, "error", openErr)

		if rmErr := os.RemoveAll(path); rmErr != nil {
			return nil, fmt.Errorf("remove invalid cache entry: %w", rmErr)
		}
	}

	repo, err := Clone(url, path)
	if err != nil {
		return nil, err
	}

	return &Acquired{Repo: repo}, nil
}

// refreshCached fetches origin and checks out the remote default branch.
// Failures leave the cached working copy as-is; stale is still usable.
func refreshCached(repo *Repository, slug string) {
	remote, err := repo.Native().Remotes.Lookup("origin")
	if err != nil {
		slog.Warn("cached repository has no origin remote, using as-is", "slug", slug, "error", err)

		return
	}
	defer remote.Free()

	if err = remote.Fetch(nil, nil, ""); err != nil {
		slog.Warn("could not fetch latest changes, using cached repository as-is", "slug", slug, "error", err)

		return
	}

	for _, name := range []string{"origin/main", "origin/master"} {
		branch, lookupErr := repo.Native().LookupBranch(name, git2go.BranchRemote)
		if lookupErr != nil {
			continue
		}

		target := branch.Target()
		branch.Free()

		if checkoutErr := checkoutDetached(repo, target); checkoutErr != nil {
			slog.Warn("could not check out default branch", "slug", slug, "branch", name, "error", checkoutErr)
		}

		return
	}

	slog.Warn("could not determine default branch, using repository as-is", "slug", slug)
}

func checkoutDetached(repo *Repository, target *git2go.Oid) error {
	if err := repo.Native().SetHeadDetached(target); err != nil {
		return fmt.Errorf("set head: %w", err)
	}

	err := repo.Native().CheckoutHead(&git2go.CheckoutOptions{Strategy: git2go.CheckoutForce})
	if err != nil {
		return fmt.Errorf("checkout head: %w", err)
	}

	return nil
}

func acquireEphemeral(url string) (*Acquired, error) {
	tempRoot, err := os.MkdirTemp("", "diffscope-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	repo, err := Clone(url, filepath.Join(tempRoot, "repo"))
	if err != nil {
		_ = os.RemoveAll(tempRoot)

		return nil, err
	}

	return &Acquired{Repo: repo, tempRoot: tempRoot}, nil
}
