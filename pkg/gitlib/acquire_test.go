package gitlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/pkg/gitlib"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	key, err := gitlib.CacheKey("octocat/hello-world", "github")
	require.NoError(t, err)
	assert.Equal(t, "github--octocat--hello-world", key)

	key, err = gitlib.CacheKey("group/project", "gitlab")
	require.NoError(t, err)
	assert.Equal(t, "gitlab--group--project", key)
}

func TestCacheKeyInvalidSlug(t *testing.T) {
	t.Parallel()

	for _, slug := range []string{"", "noslash", "/name", "owner/"} {
		_, err := gitlib.CacheKey(slug, "github")
		assert.ErrorIs(t, err, gitlib.ErrInvalidSlug, "slug %q", slug)
	}
}

func TestAcquireUnsupportedHost(t *testing.T) {
	t.Parallel()

	_, err := gitlib.Acquire("owner/name", "bitbucket", "")
	require.ErrorIs(t, err, gitlib.ErrUnsupportedHost)
}

func TestAcquireInvalidSlug(t *testing.T) {
	t.Parallel()

	// Rejected before any clone is attempted, cached or not.
	_, err := gitlib.Acquire("noslash", "github", "")
	require.ErrorIs(t, err, gitlib.ErrInvalidSlug)

	_, err = gitlib.Acquire("noslash", "github", t.TempDir())
	require.ErrorIs(t, err, gitlib.ErrInvalidSlug)
}

func TestAcquiredCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	repo, err := gitlib.InitTestRepo(t.TempDir())
	require.NoError(t, err)

	acquired := &gitlib.Acquired{Repo: repo}
	acquired.Close()
	acquired.Close()

	assert.Nil(t, acquired.Repo)
}
