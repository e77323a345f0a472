package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err) // explicit path must exist

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultHost, cfg.Repo.Host)
	assert.Equal(t, config.DefaultScanDepth, cfg.Extract.ScanDepth)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Log.Format)
	assert.Empty(t, cfg.Repo.CacheDir)
	assert.Empty(t, cfg.Diag.Addr)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffscope.yaml")

	content := `repo:
  cache_dir: /var/cache/diffscope
  host: gitlab
extract:
  scan_depth: 5
log:
  level: debug
  format: json
diag:
  addr: "127.0.0.1:9090"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/cache/diffscope", cfg.Repo.CacheDir)
	assert.Equal(t, "gitlab", cfg.Repo.Host)
	assert.Equal(t, 5, cfg.Extract.ScanDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9090", cfg.Diag.Addr)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DIFFSCOPE_REPO_HOST", "gitlab")
	t.Setenv("DIFFSCOPE_EXTRACT_SCAN_DEPTH", "7")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gitlab", cfg.Repo.Host)
	assert.Equal(t, 7, cfg.Extract.ScanDepth)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo:\n  host: sourcehut\n"), 0o644))

	_, err := config.LoadConfig(path)
	require.ErrorIs(t, err, config.ErrInvalidHost)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() config.Config {
		return config.Config{
			Repo:    config.RepoConfig{Host: "github"},
			Extract: config.ExtractConfig{ScanDepth: 0},
			Log:     config.LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*config.Config) {}, wantErr: nil},
		{name: "bad host", mutate: func(c *config.Config) { c.Repo.Host = "sourcehut" }, wantErr: config.ErrInvalidHost},
		{name: "negative depth", mutate: func(c *config.Config) { c.Extract.ScanDepth = -1 }, wantErr: config.ErrInvalidScanDepth},
		{name: "bad level", mutate: func(c *config.Config) { c.Log.Level = "trace" }, wantErr: config.ErrInvalidLogLevel},
		{name: "bad format", mutate: func(c *config.Config) { c.Log.Format = "xml" }, wantErr: config.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestScaffold(t *testing.T) {
	t.Parallel()

	out, err := config.Scaffold()
	require.NoError(t, err)

	assert.Contains(t, out, "repo:")
	assert.Contains(t, out, "host: github")
	assert.Contains(t, out, "scan_depth: 0")
	assert.Contains(t, out, "level: info")
	assert.Contains(t, out, "format: text")
}
