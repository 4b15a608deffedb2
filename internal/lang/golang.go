package lang

import "strings"

// Go exercises the multi-profile path: no docstrings, receiver outside the
// parameter list, MixedCaps naming.
var Go = &Profile{
	Name:       "go",
	Extensions: []string{".go"},

	ModuleKinds:   set("source_file"),
	FunctionKinds: set("function_declaration", "method_declaration", "func_literal"),
	ClassKinds:    set("type_spec"),
	ImportKinds:   set("import_declaration"),

	DecisionKinds: set(
		"if_statement", "for_statement",
		"expression_case", "type_case", "communication_case",
	),
	NestingKinds: set(
		"if_statement", "for_statement",
		"expression_switch_statement", "type_switch_statement", "select_statement",
	),

	IdentifierKinds: set("identifier", "field_identifier", "type_identifier", "package_identifier"),
	LiteralKinds: set(
		"interpreted_string_literal", "raw_string_literal",
		"int_literal", "float_literal", "imaginary_literal", "rune_literal",
		"true", "false", "nil", "iota",
	),

	BoolOpKinds:   set("binary_expression"),
	BoolOperators: set("&&", "||"),

	HasDocstrings: false,
	SelfParams:    set(), // receiver lives outside the parameter list

	FunctionNaming: ConventionMixedCaps,
	ClassNaming:    ConventionMixedCaps,
}

func init() { register(Go) }

// goImportGroup groups one Go import declaration. Paths whose first
// segment contains a dot are third-party; the rest are stdlib. A
// declaration mixing both is grouped by its first path.
func goImportGroup(stmt string) string {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "import")
		line = strings.TrimSpace(line)
		start := strings.IndexByte(line, '"')
		if start < 0 {
			continue
		}
		end := strings.IndexByte(line[start+1:], '"')
		if end < 0 {
			continue
		}
		path := line[start+1 : start+1+end]
		seg := path
		if i := strings.Index(seg, "/"); i >= 0 {
			seg = seg[:i]
		}
		if strings.Contains(seg, ".") {
			return GroupThirdParty
		}
		return GroupStdlib
	}
	return GroupStdlib
}
