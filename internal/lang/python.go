package lang

import "strings"

// Python is the fully-featured profile: docstrings, self-parameters, and
// PEP 8 import grouping.
var Python = &Profile{
	Name:       "python",
	Extensions: []string{".py", ".pyi"},

	ModuleKinds:   set("module"),
	FunctionKinds: set("function_definition"),
	ClassKinds:    set("class_definition"),
	ImportKinds:   set("import_statement", "import_from_statement", "future_import_statement"),

	DecisionKinds: set(
		"if_statement", "elif_clause", "while_statement", "for_statement",
		"except_clause", "with_statement", "conditional_expression", "case_clause",
	),
	NestingKinds: set(
		"if_statement", "for_statement", "while_statement",
		"with_statement", "try_statement", "match_statement",
	),

	IdentifierKinds: set("identifier"),
	LiteralKinds: set(
		"string", "concatenated_string", "integer", "float",
		"true", "false", "none", "ellipsis",
	),

	BoolOpKinds:   set("boolean_operator"),
	BoolOperators: set("and", "or"),

	HasDocstrings:  true,
	DocstringKinds: set("string", "concatenated_string"),
	SelfParams:     set("self", "cls"),

	FunctionNaming: ConventionSnakeCase,
	ClassNaming:    ConventionPascalCase,

	stdlibModules: set(
		"__future__",
		"abc", "argparse", "ast", "asyncio", "base64", "collections",
		"configparser", "contextlib", "copy", "csv", "dataclasses",
		"datetime", "email", "enum", "functools", "glob", "hashlib",
		"heapq", "html", "http", "io", "itertools", "json", "logging",
		"math", "operator", "os", "pathlib", "pickle", "queue", "random",
		"re", "shutil", "socket", "sqlite3", "string", "struct",
		"subprocess", "sys", "tempfile", "threading", "time", "typing",
		"unittest", "urllib", "uuid", "warnings", "xml",
	),
}

func init() { register(Python) }

// ImportGroup classifies one Python import statement into an import group.
// Relative imports are local; known standard-library roots are stdlib;
// everything else is third-party.
func (p *Profile) ImportGroup(stmt string) string {
	if p.Name != "python" {
		return goImportGroup(stmt)
	}
	text := strings.TrimSpace(stmt)
	module := ""
	switch {
	case strings.HasPrefix(text, "from "):
		rest := strings.TrimPrefix(text, "from ")
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			module = rest[:i]
		} else {
			module = rest
		}
	case strings.HasPrefix(text, "import "):
		rest := strings.TrimPrefix(text, "import ")
		if i := strings.IndexAny(rest, " ,\t"); i >= 0 {
			module = rest[:i]
		} else {
			module = rest
		}
	}
	if strings.HasPrefix(module, ".") {
		return GroupLocal
	}
	root := module
	if i := strings.Index(root, "."); i >= 0 {
		root = root[:i]
	}
	if p.stdlibModules[root] {
		return GroupStdlib
	}
	return GroupThirdParty
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
