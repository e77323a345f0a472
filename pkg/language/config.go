// Package language holds the per-language structural configuration used to
// locate function and class definitions in tree-sitter syntax trees, the
// extension-based language registry, and the ignore-pattern filter that
// separates interesting source files from docs, tests, and build artifacts.
package language

// Config describes how a language's syntax tree encodes functions and
// classes. One immutable value exists per supported config; callers must
// treat instances as read-only.
type Config struct {
	// Name is the config identifier (e.g. "python", "c_and_cpp").
	Name string

	// FunctionNodeKinds are the AST node kinds that denote a function or
	// method definition.
	FunctionNodeKinds map[string]bool

	// ClassNodeKinds are the AST node kinds that denote a class or type
	// definition whose name qualifies member functions.
	ClassNodeKinds map[string]bool

	// IdentifierNodeKind is the node kind carrying a definition's name.
	IdentifierNodeKind string

	// QualifiedNameSeparator joins a class name and a member name
	// (e.g. "." for Python, "::" for C++).
	QualifiedNameSeparator string
}

func kinds(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}

	return m
}

// structuralConfigs is the closed set of structural configs, built once at
// package init. Several parser languages share a config (typescript reuses
// javascript, c and cpp share c_and_cpp).
var structuralConfigs = map[string]*Config{
	"python": {
		Name:                   "python",
		FunctionNodeKinds:      kinds("function_definition", "async_function_definition"),
		ClassNodeKinds:         kinds("class_definition"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: ".",
	},
	"javascript": {
		Name:                   "javascript",
		FunctionNodeKinds:      kinds("function_declaration", "function_expression", "arrow_function", "method_definition"),
		ClassNodeKinds:         kinds("class_declaration"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: ".",
	},
	"java": {
		Name:                   "java",
		FunctionNodeKinds:      kinds("method_declaration", "constructor_declaration"),
		ClassNodeKinds:         kinds("class_declaration", "interface_declaration"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: ".",
	},
	"c_and_cpp": {
		Name:                   "c_and_cpp",
		FunctionNodeKinds:      kinds("function_definition", "function_declarator"),
		ClassNodeKinds:         kinds("class_specifier", "struct_specifier"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: "::",
	},
	"csharp": {
		Name:                   "csharp",
		FunctionNodeKinds:      kinds("method_declaration", "constructor_declaration"),
		ClassNodeKinds:         kinds("class_declaration", "interface_declaration", "struct_declaration"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: ".",
	},
	"rust": {
		Name:                   "rust",
		FunctionNodeKinds:      kinds("function_item"),
		ClassNodeKinds:         kinds("struct_item", "enum_item", "impl_item"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: "::",
	},
	"go": {
		Name:                   "go",
		FunctionNodeKinds:      kinds("function_declaration", "method_declaration"),
		ClassNodeKinds:         kinds("type_declaration"),
		IdentifierNodeKind:     "identifier",
		QualifiedNameSeparator: ".",
	},
}

// configForParserLanguage normalizes parser-level language identifiers onto
// the smaller set of structural configs.
var configForParserLanguage = map[string]string{
	"python":     "python",
	"javascript": "javascript",
	"typescript": "javascript",
	"java":       "java",
	"c":          "c_and_cpp",
	"cpp":        "c_and_cpp",
	"c_sharp":    "csharp",
	"rust":       "rust",
	"go":         "go",
}

// ConfigFor returns the structural config for a parser-level language
// identifier, or nil if the language has no config.
func ConfigFor(parserLanguage string) *Config {
	name, ok := configForParserLanguage[parserLanguage]
	if !ok {
		return nil
	}

	return structuralConfigs[name]
}
