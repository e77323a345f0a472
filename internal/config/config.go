// Package config loads diffscope configuration from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration struct for diffscope.
// Field tags use mapstructure for viper unmarshalling and yaml for the
// config-init scaffold.
type Config struct {
	Repo    RepoConfig    `mapstructure:"repo"    yaml:"repo"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Log     LogConfig     `mapstructure:"log"     yaml:"log"`
	Diag    DiagConfig    `mapstructure:"diag"    yaml:"diag"`
}

// RepoConfig holds repository acquisition settings.
type RepoConfig struct {
	// CacheDir is the directory for persistent repository working copies.
	// Empty means every acquisition uses a throwaway temp clone.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`

	// Host is the default hosting provider for repository slugs.
	Host string `mapstructure:"host" yaml:"host"`
}

// ExtractConfig holds extraction settings.
type ExtractConfig struct {
	// ScanDepth is the default number of first-parent commits to scan for
	// an interesting commit. Zero disables scanning.
	ScanDepth int `mapstructure:"scan_depth" yaml:"scan_depth"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DiagConfig holds diagnostics endpoint settings for server mode.
type DiagConfig struct {
	// Addr is the listen address for /healthz, /readyz, and /metrics.
	// Empty disables the diagnostics server.
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidHost indicates an unknown hosting provider.
	ErrInvalidHost = errors.New("repo.host must be github or gitlab")
	// ErrInvalidScanDepth indicates a negative scan depth.
	ErrInvalidScanDepth = errors.New("extract.scan_depth must be non-negative")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be debug, info, warn, or error")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("log.format must be text or json")
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Repo.Host != "github" && c.Repo.Host != "gitlab" {
		return ErrInvalidHost
	}

	if c.Extract.ScanDepth < 0 {
		return ErrInvalidScanDepth
	}

	if !validLogLevels[c.Log.Level] {
		return ErrInvalidLogLevel
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Scaffold renders the default configuration as YAML, suitable for writing
// a starter config file.
func Scaffold() (string, error) {
	out, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshal default config: %w", err)
	}

	return string(out), nil
}
