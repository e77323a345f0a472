package language

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnoreConfig is the ignore table used for files whose language
// cannot be detected.
const DefaultIgnoreConfig = "python"

// Matcher answers whether a repository-relative path is noise (docs, tests,
// build output, metadata) under a given structural config's ignore rules.
// Patterns are validated once at construction; matching never errors.
type Matcher struct {
	dirPatterns  map[string][]string
	filePatterns map[string][]string
}

// NewMatcher compiles the built-in ignore tables, validating every pattern.
func NewMatcher() (*Matcher, error) {
	for _, table := range []map[string][]string{dirIgnorePatterns, fileIgnorePatterns} {
		for name, patterns := range table {
			for _, p := range patterns {
				if !doublestar.ValidatePattern(p) {
					return nil, fmt.Errorf("invalid ignore pattern %q for %s", p, name)
				}
			}
		}
	}

	return &Matcher{dirPatterns: dirIgnorePatterns, filePatterns: fileIgnorePatterns}, nil
}

// Ignored reports whether the file at filepath should be excluded from
// processing under the named config's rules. Configs without ignore tables
// (csharp) exclude nothing.
func (m *Matcher) Ignored(filepath, configName string) bool {
	normalized := strings.ReplaceAll(filepath, `\`, "/")

	for _, pattern := range m.dirPatterns[configName] {
		if ok, _ := doublestar.Match(pattern, normalized); ok {
			return true
		}
		// A pattern like "docs/**" must also catch the directory itself,
		// so every parent prefix is checked with a trailing slash.
		parts := strings.Split(normalized, "/")
		for i := range parts {
			partial := strings.Join(parts[:i+1], "/") + "/"
			if ok, _ := doublestar.Match(pattern, partial); ok {
				return true
			}
		}
	}

	base := path.Base(normalized)
	for _, pattern := range m.filePatterns[configName] {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, normalized); ok {
			return true
		}
	}

	return false
}

// IgnoredForLanguage resolves a parser-level language to its structural
// config before matching, falling back to the default table for unknown
// languages.
func (m *Matcher) IgnoredForLanguage(filepath, parserLanguage string) bool {
	cfg := ConfigFor(parserLanguage)
	if cfg == nil {
		return m.Ignored(filepath, DefaultIgnoreConfig)
	}

	return m.Ignored(filepath, cfg.Name)
}
