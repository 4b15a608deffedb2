package analyzer

import (
	"sort"
	"strings"

	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

type importStmt struct {
	text  string // verbatim statement text, whole lines
	group string
}

// importBlock finds the leading run of top-level import statements. The
// block ends at the first non-import statement or comment; later scattered
// imports are left alone, reordering them could change execution order.
func importBlock(unit *types.SourceUnit, profile *lang.Profile) (stmts []importStmt, blockRange types.ByteRange, ok bool) {
	if unit.Root == nil {
		return nil, types.ByteRange{}, false
	}
	firstLine, lastLine := 0, 0
	for _, c := range unit.Root.Children {
		if c.Kind != types.KindImport {
			if len(stmts) > 0 {
				break
			}
			// The module prologue may precede the block: comments, a
			// module docstring, Go's package clause.
			if c.RawKind == "comment" || c.RawKind == "package_clause" || isDocstringStmt(c, profile) {
				continue
			}
			break
		}
		text := unit.Slice(types.ByteRange{
			Start: unit.LineStart(c.Start.Line),
			End:   unit.LineEnd(c.End.Line),
		})
		stmts = append(stmts, importStmt{text: text, group: profile.ImportGroup(text)})
		if firstLine == 0 {
			firstLine = c.Start.Line
		}
		lastLine = c.End.Line
	}
	if len(stmts) == 0 {
		return nil, types.ByteRange{}, false
	}
	blockRange = types.ByteRange{Start: unit.LineStart(firstLine), End: unit.LineEnd(lastLine)}
	return stmts, blockRange, true
}

func isDocstringStmt(n *types.Node, profile *lang.Profile) bool {
	return profile.HasDocstrings &&
		n.RawKind == "expression_statement" &&
		len(n.Children) == 1 &&
		profile.DocstringKinds[n.Children[0].RawKind]
}

// ImportRewrite computes the canonical form of the leading import block:
// statements grouped in configured order, sorted within each group, one
// blank line between groups, each statement's own text untouched. The
// returned range addresses the current block; ok is false when the unit
// has no leading import block.
func ImportRewrite(unit *types.SourceUnit, cfg *config.Config, profile *lang.Profile) (types.ByteRange, string, bool) {
	stmts, blockRange, ok := importBlock(unit, profile)
	if !ok {
		return types.ByteRange{}, "", false
	}

	grouped := make([][]string, len(cfg.ImportGroups)+1)
	for _, s := range stmts {
		rank := cfg.GroupRank(s.group)
		grouped[rank] = append(grouped[rank], s.text)
	}

	var sections []string
	for _, g := range grouped {
		if len(g) == 0 {
			continue
		}
		sort.Strings(g)
		sections = append(sections, strings.Join(g, "\n"))
	}
	return blockRange, strings.Join(sections, "\n\n"), true
}

// checkImports yields the import-order issue when the leading block differs
// from its canonical rewrite. Comparing against the rewrite keeps the rule
// idempotent: a fixed file reports nothing.
func checkImports(unit *types.SourceUnit, cfg *config.Config, profile *lang.Profile) []types.Issue {
	blockRange, rewrite, ok := ImportRewrite(unit, cfg, profile)
	if !ok || unit.Slice(blockRange) == rewrite {
		return nil
	}
	pos := unit.Position(blockRange.Start)
	return []types.Issue{{
		Rule:        RuleImportOrder,
		Severity:    types.SeveritySuggestion,
		Line:        pos.Line,
		Column:      pos.Column,
		EndLine:     unit.Position(blockRange.End).Line,
		Message:     "imports are not grouped and sorted",
		Suggestion:  "regroup imports: " + strings.Join(cfg.ImportGroups, ", "),
		AutoFixable: true,
	}}
}
