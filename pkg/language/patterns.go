package language

// dirIgnorePatterns are gitignore-style patterns for directories that rarely
// hold interesting source (docs, tests, build output, vendored deps), keyed
// by structural config name. Configs without an entry (csharp) ignore nothing
// at the directory level.
var dirIgnorePatterns = map[string][]string{
	"python": {
		"docs/**",
		"doc/**",
		"documentation/**",
		"**/docs/**",
		"**/doc/**",
		"**/documentation/**",

		".github/**",
		".gitlab/**",
		".circleci/**",
		"ci/**",
		"**/ci/**",

		"tests/**",
		"test/**",
		"testing/**",
		"*tests/**",
		"*test/**",
		"*testing/**",
		"*/tests/**",
		"*/test/**",
		"**/tests/**",
		"**/test/**",
		"**/testing/**",
		// fnmatch lets * cross path separators, so *tests/** also catches
		// src/unittests/helper.py; the segment-scoped globs need explicit
		// any-depth companions for that.
		"**/*tests/**",
		"**/*test/**",
		"**/*testing/**",

		"__pycache__/**",
		"**/__pycache__/**",
		"*.pyc",
		"**/*.pyc",

		"examples/**",
		"example/**",
		"samples/**",
		"sample/**",
		"demos/**",
		"demo/**",
		"tutorials/**",
		"tutorial/**",
		"guides/**",
		"guide/**",
		"**/examples/**",
		"**/example/**",
		"**/demos/**",
		"**/demo/**",

		"assets/**",
		"static/**",
		"media/**",
		"images/**",
		"img/**",
		"pictures/**",
		"resources/**",
		"**/assets/**",
		"**/static/**",
		"**/media/**",
		"**/images/**",

		"build/**",
		"dist/**",
		"packaging/**",
		"deploy/**",
		"deployment/**",
		"infrastructure/**",
		"infra/**",
		"docker/**",
		"**/build/**",
		"**/dist/**",

		"fixtures/**",
		"data/**",
		"benchmarks/**",
		"benchmark/**",
		"performance/**",
		"perf/**",
		"sandbox/**",
		"playground/**",
		"templates/**",
		"template/**",
		"**/fixtures/**",
		"**/benchmarks/**",
		"**/templates/**",
	},
	"javascript": {
		"node_modules/**",
		"**/node_modules/**",

		"docs/**",
		"doc/**",
		"documentation/**",
		"**/docs/**",
		"**/doc/**",
		"**/documentation/**",

		".github/**",
		".gitlab/**",
		".circleci/**",
		"ci/**",
		"**/ci/**",

		"tests/**",
		"test/**",
		"testing/**",
		"*tests/**",
		"*test/**",
		"*/tests/**",
		"*/test/**",
		"**/tests/**",
		"**/test/**",
		"**/testing/**",
		"**/*tests/**",
		"**/*test/**",
		"__tests__/**",
		"**/__tests__/**",

		"build/**",
		"dist/**",
		"out/**",
		".next/**",
		".nuxt/**",
		"**/build/**",
		"**/dist/**",

		"examples/**",
		"example/**",
		"demos/**",
		"demo/**",
		"**/examples/**",
		"**/demos/**",

		"assets/**",
		"static/**",
		"public/**",
		"**/assets/**",
		"**/static/**",

		"coverage/**",
		".nyc_output/**",
		".cache/**",
		"**/coverage/**",
	},
	"java": {
		"target/**",
		"build/**",
		"out/**",
		"**/target/**",
		"**/build/**",

		"docs/**",
		"doc/**",
		"javadoc/**",
		"**/docs/**",
		"**/javadoc/**",

		"test/**",
		"tests/**",
		"testing/**",
		"**/test/**",
		"**/tests/**",
		"**/testing/**",

		".idea/**",
		".eclipse/**",
		".vscode/**",

		"examples/**",
		"example/**",
		"**/examples/**",
	},
	"c_and_cpp": {
		"build/**",
		"cmake-build-*/**",
		"out/**",
		"bin/**",
		"obj/**",
		".vs/**",
		".vscode/**",
		".idea/**",
		"CMakeFiles/**",
		".deps/**",
		".libs/**",
		"autom4te.cache/**",
		"config/**",
		"**/build/**",
		"**/bin/**",
		"**/obj/**",

		"doc/**",
		"docs/**",
		"**/doc/**",
		"**/docs/**",

		"test/**",
		"tests/**",
		"**/test/**",
		"**/tests/**",
		"gtest/**",
		"googletest/**",
		"catch2/**",

		"deps/**",
		"vcpkg/**",
		"conan/**",
		"**/deps/**",
	},
	"rust": {
		"target/**",
		"**/target/**",

		"docs/**",
		"doc/**",
		"**/docs/**",
		"**/doc/**",

		"tests/**",
		"**/tests/**",

		"examples/**",
		"**/examples/**",
	},
	"go": {
		"bin/**",
		"pkg/**",
		"**/bin/**",
		"**/pkg/**",

		"docs/**",
		"doc/**",
		"**/docs/**",
		"**/doc/**",

		"*_test.go",
		"**/*_test.go",

		"vendor/**",
		"**/vendor/**",
	},
}

// fileIgnorePatterns match against the base name or the full path, keyed by
// structural config name. They cover metadata, config, docs, and generated
// artifacts that carry a source-like extension or no extension at all.
var fileIgnorePatterns = map[string][]string{
	"python": {
		"__init__.py",
		"__about__.py",
		"__version__.py",
		"setup.py",
		"create_version_file.py",
		"conftest.py",
		"version.py",

		"*.md",
		"*.mdx",
		"*.rst",
		"*.txt",
		"README*",
		"CHANGELOG*",
		"HISTORY*",
		"NEWS*",

		"*.ini",
		"*.cfg",
		"*.conf",
		"*.toml",
		"*.json",
		"*.xml",
		"*.yml",
		"*.yaml",
		"*.env*",
		"*.template",
		"*.properties",
		"*.hcl",
		"*.in",

		"*.lock",
		"Pipfile*",
		"poetry.lock",
		"requirements*.txt",

		"*.log",
		"*.csv",
		"*.tsv",
		"*.dat",
		"*.sql",

		"*.png",
		"*.jpg",
		"*.jpeg",
		"*.gif",
		"*.svg",
		"*.ico",
		"*.bmp",
		"*.tiff",
		"*.webp",
		"*.pdf",
		"*.doc",
		"*.docx",

		"*.zip",
		"*.tar",
		"*.gz",
		"*.tgz",
		"*.rar",
		"*.7z",

		"*.bat",
		"*.sh",
		"*.ps1",

		"*.bin",
		"*.exe",
		"*.dll",
		"*.so",
		"*.dylib",

		"VERSION",
		"AUTHORS",
		"LICENSE*",
		"COPYING*",
		"NOTICE*",
		"Makefile*",
		"Dockerfile*",
		"Procfile*",
		".gitignore",
		".gitattributes",
		".editorconfig",
		".pylintrc",
		".pycodestyle",
		".pep8",
		".bandit",
		".coveragerc",
		".flake8",
		".dockerignore",
	},
	"javascript": {
		"package.json",
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",

		"*.md",
		"*.mdx",
		"*.txt",
		"README*",
		"CHANGELOG*",

		"*.json",
		"*.config.js",
		"*.config.ts",
		".eslintrc*",
		".prettierrc*",
		"babel.config.*",
		"webpack.config.*",
		"rollup.config.*",
		"vite.config.*",
		"tsconfig*.json",

		"*.env*",

		"Dockerfile*",
		"Makefile*",
		".gitignore",
		".gitattributes",
		".editorconfig",
	},
	"java": {
		"pom.xml",
		"build.gradle",
		"build.gradle.kts",
		"gradle.properties",
		"settings.gradle",
		"*.sig",
		"*.exe",
		"*.default",
		"*.release",

		"*.md",
		"*.txt",
		"README*",
		"CHANGELOG*",

		"*.xml",
		"*.properties",
		"*.yml",
		"*.yaml",
		"*.json",

		"*.iml",
		".project",
		".classpath",

		"LICENSE*",
		"NOTICE*",
		".gitignore",
	},
	"c_and_cpp": {
		"Makefile*",
		"*.make",
		"*.ninja",
		"*.cmake",
		"CMakeCache.txt",
		"CMakeLists.txt",
		"*.vcxproj",
		"*.vcxproj.filters",
		"*.sln",
		"*.user",
		"*.suo",
		"configure",
		"config.h",
		"config.status",
		"config.log",
		"*.m4",
		"aclocal.m4",

		"*.o",
		"*.obj",
		"*.a",
		"*.lib",
		"*.so",
		"*.dll",
		"*.dylib",
		"*.exe",
		"*.out",
		"*.app",
		"*.pdb",
		"*.gch",
		"*.pch",

		"*.md",
		"*.txt",
		"*.pdf",
		"README*",
		"CHANGELOG*",

		"*.config",
		"*.ini",
		"*.json",
		"*.xml",
		"*.yaml",
		"*.yml",

		"LICENSE*",
		".gitignore",
		".clang-format",
		".clang-tidy",
	},
	"rust": {
		"Cargo.toml",
		"Cargo.lock",

		"*.md",
		"*.txt",
		"README*",
		"CHANGELOG*",

		"*.toml",
		"*.json",
		"*.yaml",
		"*.yml",

		"LICENSE*",
		".gitignore",
	},
	"go": {
		"go.mod",
		"go.sum",

		"*.md",
		"*.txt",
		"README*",
		"CHANGELOG*",

		"*.json",
		"*.yaml",
		"*.yml",
		"*.toml",

		"LICENSE*",
		".gitignore",
		"Makefile*",
	},
}
