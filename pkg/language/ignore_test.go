package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasheedyasin/diffscope/pkg/language"
)

func newMatcher(t *testing.T) *language.Matcher {
	t.Helper()

	matcher, err := language.NewMatcher()
	require.NoError(t, err)

	return matcher
}

func TestIgnored(t *testing.T) {
	t.Parallel()

	matcher := newMatcher(t)

	tests := []struct {
		name   string
		path   string
		config string
		want   bool
	}{
		{name: "python test dir", path: "tests/test_app.py", config: "python", want: true},
		{name: "python nested test dir", path: "pkg/tests/test_app.py", config: "python", want: true},
		{name: "python suffixed test dir", path: "unittests/helper.py", config: "python", want: true},
		{name: "python nested suffixed test dir", path: "src/unittests/helper.py", config: "python", want: true},
		{name: "python nested suffixed testing dir", path: "a/b/mytesting/run.py", config: "python", want: true},
		{name: "python docs", path: "docs/conf.py", config: "python", want: true},
		{name: "python dunder init", path: "mylib/sub/__init__.py", config: "python", want: true},
		{name: "python setup", path: "setup.py", config: "python", want: true},
		{name: "python readme", path: "README.md", config: "python", want: true},
		{name: "python source", path: "mylib/core.py", config: "python", want: false},

		{name: "js node modules", path: "node_modules/lodash/index.js", config: "javascript", want: true},
		{name: "js dunder tests", path: "__tests__/app.test.js", config: "javascript", want: true},
		{name: "js nested suffixed test dir", path: "packages/apptests/index.js", config: "javascript", want: true},
		{name: "js package json", path: "package.json", config: "javascript", want: true},
		{name: "js source", path: "src/router.js", config: "javascript", want: false},

		{name: "java target", path: "target/classes/Main.java", config: "java", want: true},
		{name: "java pom", path: "pom.xml", config: "java", want: true},
		{name: "java source", path: "src/main/java/App.java", config: "java", want: false},

		{name: "c build dir", path: "build/gen.c", config: "c_and_cpp", want: true},
		{name: "c cmakelists", path: "src/CMakeLists.txt", config: "c_and_cpp", want: true},
		{name: "c source", path: "src/engine.cpp", config: "c_and_cpp", want: false},

		{name: "rust target", path: "target/debug/build.rs", config: "rust", want: true},
		{name: "rust cargo", path: "Cargo.toml", config: "rust", want: true},
		{name: "rust source", path: "src/lib.rs", config: "rust", want: false},

		{name: "go test file", path: "server_test.go", config: "go", want: true},
		{name: "go nested test file", path: "internal/server_test.go", config: "go", want: true},
		{name: "go vendor", path: "vendor/lib/a.go", config: "go", want: true},
		{name: "go module file", path: "go.mod", config: "go", want: true},
		{name: "go source", path: "internal/server.go", config: "go", want: false},

		// csharp has no ignore tables; nothing is excluded.
		{name: "csharp docs", path: "docs/Example.cs", config: "csharp", want: false},
		{name: "csharp tests", path: "tests/AppTest.cs", config: "csharp", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, matcher.Ignored(tt.path, tt.config))
		})
	}
}

func TestIgnoredNormalizesBackslashes(t *testing.T) {
	t.Parallel()

	matcher := newMatcher(t)

	assert.True(t, matcher.Ignored(`tests\test_app.py`, "python"))
	assert.False(t, matcher.Ignored(`mylib\core.py`, "python"))
}

func TestIgnoredForLanguage(t *testing.T) {
	t.Parallel()

	matcher := newMatcher(t)

	// Known languages resolve to their own config.
	assert.True(t, matcher.IgnoredForLanguage("vendor/lib/a.go", "go"))
	assert.False(t, matcher.IgnoredForLanguage("docs/Example.cs", "c_sharp"))

	// Unknown languages fall back to the default table.
	assert.True(t, matcher.IgnoredForLanguage("tests/fixture.xyz", "unknown"))
	assert.False(t, matcher.IgnoredForLanguage("lib/code.xyz", "unknown"))
}

func TestIgnoredIsIdempotent(t *testing.T) {
	t.Parallel()

	matcher := newMatcher(t)

	for range 3 {
		assert.True(t, matcher.Ignored("tests/test_app.py", "python"))
		assert.False(t, matcher.Ignored("mylib/core.py", "python"))
	}
}
