// Package refactor turns auto-fixable issues into concrete text edits and
// applies them. Planning and applying are split so callers can inspect,
// filter, or persist edits before any text changes; the core never writes
// files.
package refactor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carpsesdema/refactorkit/internal/analyzer"
	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// PlanResult carries the edits the planner produced and the issues it
// declined, each with a reason.
type PlanResult struct {
	Edits   []types.TextEdit    `json:"edits"`
	Skipped []types.SkippedEdit `json:"skipped,omitempty"`
}

// Plan maps auto-fixable issues to text edits against the unit's current
// snapshot. One issue yields at most one edit; edits that would overlap an
// earlier-planned one are skipped, never silently merged. Issues whose
// rules have no mechanical fix are ignored.
func Plan(unit *types.SourceUnit, issues []types.Issue, cfg *config.Config) PlanResult {
	var res PlanResult
	for _, issue := range issues {
		if !issue.AutoFixable {
			continue
		}
		edit, reason := planOne(unit, issue, cfg)
		if reason != "" {
			res.Skipped = append(res.Skipped, types.SkippedEdit{
				Edit:   types.TextEdit{Rule: issue.Rule, Line: issue.Line},
				Reason: reason,
			})
			continue
		}
		res.Edits = append(res.Edits, edit)
	}

	// Reject overlaps up front so Apply sees a clean batch. Sorting makes
	// the survivor deterministic regardless of issue order; at equal start
	// the enclosing edit comes first, so a contained edit (a whitespace
	// strip inside a blank-run collapse) is the one that gets dropped.
	sort.SliceStable(res.Edits, func(i, j int) bool {
		a, b := res.Edits[i], res.Edits[j]
		if a.Range.Start != b.Range.Start {
			return a.Range.Start < b.Range.Start
		}
		return a.Range.End > b.Range.End
	})
	kept := res.Edits[:0]
	for _, e := range res.Edits {
		if len(kept) > 0 {
			last := kept[len(kept)-1]
			if last.Range.Overlaps(e.Range) || (e.Range.Empty() && last.Range.End > e.Range.Start) {
				res.Skipped = append(res.Skipped, types.SkippedEdit{
					Edit:   e,
					Reason: fmt.Sprintf("overlaps %s edit at %s", last.Rule, last.Range),
				})
				continue
			}
		}
		kept = append(kept, e)
	}
	res.Edits = kept
	return res
}

func planOne(unit *types.SourceUnit, issue types.Issue, cfg *config.Config) (types.TextEdit, string) {
	switch issue.Rule {
	case analyzer.RuleTrailingWhitespace:
		return planTrailingWhitespace(unit, issue)
	case analyzer.RuleMultipleBlankLines:
		return planBlankLines(unit, issue)
	case analyzer.RuleImportOrder:
		return planImportOrder(unit, issue, cfg)
	case analyzer.RuleMissingDocstring:
		return planDocstring(unit, issue)
	default:
		return types.TextEdit{}, fmt.Sprintf("no mechanical fix for rule %q", issue.Rule)
	}
}

func planTrailingWhitespace(unit *types.SourceUnit, issue types.Issue) (types.TextEdit, string) {
	line := unit.Line(issue.Line)
	trimmed := strings.TrimRight(line, " \t")
	if trimmed == line {
		return types.TextEdit{}, "line has no trailing whitespace"
	}
	end := unit.LineEnd(issue.Line)
	return types.TextEdit{
		Range: types.ByteRange{Start: end - (len(line) - len(trimmed)), End: end},
		Rule:  issue.Rule,
		Line:  issue.Line,
	}, ""
}

// planBlankLines collapses the whole blank run around the issue line down
// to two lines by deleting the third and following blanks.
func planBlankLines(unit *types.SourceUnit, issue types.Issue) (types.TextEdit, string) {
	blank := func(line int) bool {
		return line >= 1 && line <= unit.LineCount() && strings.TrimSpace(unit.Line(line)) == ""
	}
	if !blank(issue.Line) {
		return types.TextEdit{}, "line is not blank"
	}
	first, last := issue.Line, issue.Line
	for blank(first - 1) {
		first--
	}
	for blank(last + 1) {
		last++
	}
	if last-first+1 <= 2 {
		return types.TextEdit{}, "run is already at most 2 blank lines"
	}
	return types.TextEdit{
		Range: types.ByteRange{
			Start: unit.LineStart(first + 2),
			End:   unit.LineStart(last + 1),
		},
		Rule: issue.Rule,
		Line: issue.Line,
	}, ""
}

func planImportOrder(unit *types.SourceUnit, issue types.Issue, cfg *config.Config) (types.TextEdit, string) {
	profile := lang.ByName(unit.Language)
	if profile == nil {
		return types.TextEdit{}, "unknown language"
	}
	blockRange, rewrite, ok := analyzer.ImportRewrite(unit, cfg, profile)
	if !ok {
		return types.TextEdit{}, "no leading import block"
	}
	if unit.Slice(blockRange) == rewrite {
		return types.TextEdit{}, "imports already canonical"
	}
	return types.TextEdit{
		Range:       blockRange,
		Replacement: rewrite,
		Rule:        issue.Rule,
		Line:        issue.Line,
	}, ""
}

// planDocstring inserts a synthesized docstring as the first body
// statement of the definition starting at the issue line.
func planDocstring(unit *types.SourceUnit, issue types.Issue) (types.TextEdit, string) {
	def := findDefAt(unit.Root, issue.Line)
	if def == nil || def.Body == nil || len(def.Body.Children) == 0 {
		return types.TextEdit{}, "no definition body at issue line"
	}
	first := def.Body.Children[0]
	if first.Start.Line <= def.Start.Line {
		return types.TextEdit{}, "single-line definition"
	}

	text := fmt.Sprintf(`"""Execute %s operation."""`, def.Name)
	if def.Kind == types.KindClass {
		text = fmt.Sprintf(`"""A %s class."""`, def.Name)
	}
	// Reuse the body's own leading whitespace so tab-indented files stay
	// tab-indented.
	indent := unit.Slice(types.ByteRange{Start: unit.LineStart(first.Start.Line), End: first.Range.Start})
	return types.TextEdit{
		Range:       types.ByteRange{Start: unit.LineStart(first.Start.Line), End: unit.LineStart(first.Start.Line)},
		Replacement: indent + text + "\n",
		Rule:        issue.Rule,
		Line:        issue.Line,
	}, ""
}

func findDefAt(root *types.Node, line int) *types.Node {
	var found *types.Node
	root.Visit(func(n *types.Node) bool {
		if n.Kind == types.KindFunction || n.Kind == types.KindClass {
			if n.Start.Line == line {
				found = n
				return false
			}
		}
		return found == nil
	})
	return found
}
