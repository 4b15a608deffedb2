package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// Rule identifiers. The set is closed: the planner and display layers key
// off these exact strings.
const (
	RuleSyntax             = "syntax"
	RuleLargeFunction      = "large-function"
	RuleLargeClass         = "large-class"
	RuleLongParameterList  = "long-parameter-list"
	RuleDeepNesting        = "deep-nesting"
	RuleHighComplexity     = "high-complexity"
	RuleMissingDocstring   = "missing-docstring"
	RuleNamingConvention   = "naming-convention"
	RuleLineTooLong        = "line-too-long"
	RuleTrailingWhitespace = "trailing-whitespace"
	RuleMultipleBlankLines = "multiple-blank-lines"
	RuleImportOrder        = "import-order"
	RuleDuplicateCode      = "duplicate-code"
)

// checkScopes runs the tree-based rules over collected metrics. Each rule
// is independent: it inspects one scope and yields zero or one Issue.
func checkScopes(scopes []types.Scope, cfg *config.Config, profile *lang.Profile) []types.Issue {
	var issues []types.Issue
	for _, s := range scopes {
		issues = append(issues, scopeIssues(s, cfg, profile)...)
	}
	return issues
}

func scopeIssues(s types.Scope, cfg *config.Config, profile *lang.Profile) []types.Issue {
	var issues []types.Issue
	at := func(rule string, sev types.Severity, msg, suggestion string, fixable bool) {
		issues = append(issues, types.Issue{
			Rule:        rule,
			Severity:    sev,
			Line:        s.StartLine,
			Column:      s.Node.Start.Column,
			EndLine:     s.EndLine,
			Message:     msg,
			Suggestion:  suggestion,
			AutoFixable: fixable,
		})
	}

	label := s.Kind.String()
	if s.IsMethod {
		label = "method"
	}

	if s.Kind == types.KindFunction {
		if s.LineCount > cfg.MaxFunctionLines {
			at(RuleLargeFunction, types.SeverityWarning,
				fmt.Sprintf("%s %q has %d lines (max %d)", label, s.Name, s.LineCount, cfg.MaxFunctionLines),
				"extract cohesive blocks into helper functions", false)
		}
		if s.ParamCount >= cfg.MaxParams {
			at(RuleLongParameterList, types.SeverityWarning,
				fmt.Sprintf("%s %q takes %d parameters (threshold %d)", label, s.Name, s.ParamCount, cfg.MaxParams),
				"group related parameters into a single object", false)
		}
		if s.MaxNesting > cfg.MaxNesting {
			at(RuleDeepNesting, types.SeverityWarning,
				fmt.Sprintf("%s %q nests %d levels deep (max %d)", label, s.Name, s.MaxNesting, cfg.MaxNesting),
				"use early returns or extract the inner blocks", false)
		}
		if s.Complexity > cfg.MaxComplexity {
			at(RuleHighComplexity, types.SeverityWarning,
				fmt.Sprintf("%s %q has cyclomatic complexity %d (max %d)", label, s.Name, s.Complexity, cfg.MaxComplexity),
				"split the branching logic into smaller functions", false)
		}
	} else if s.LineCount > cfg.MaxClassLines {
		at(RuleLargeClass, types.SeverityWarning,
			fmt.Sprintf("class %q has %d lines (max %d)", s.Name, s.LineCount, cfg.MaxClassLines),
			"split responsibilities across smaller classes", false)
	}

	if profile.HasDocstrings && !s.HasDocstring && s.Name != "" {
		at(RuleMissingDocstring, types.SeveritySuggestion,
			fmt.Sprintf("%s %q has no docstring", label, s.Name),
			fmt.Sprintf("add a docstring describing what %q does", s.Name), true)
	}

	convention := conventionFor(s, cfg, profile)
	if s.Name != "" && !lang.MatchesConvention(s.Name, convention) {
		at(RuleNamingConvention, types.SeveritySuggestion,
			fmt.Sprintf("%s %q does not follow %s", label, s.Name, convention),
			fmt.Sprintf("rename to %q", lang.SuggestRename(s.Name, convention)), false)
	}

	return issues
}

func conventionFor(s types.Scope, cfg *config.Config, profile *lang.Profile) string {
	if s.Kind == types.KindClass {
		return profile.ClassNaming
	}
	if cfg.NamingConvention != "" {
		return cfg.NamingConvention
	}
	return profile.FunctionNaming
}

// checkText runs the raw-line rules. These never touch the structural
// tree, so they still apply when parsing produced a degenerate unit.
func checkText(unit *types.SourceUnit, cfg *config.Config) []types.Issue {
	var issues []types.Issue
	blanks := 0
	for i := 1; i <= unit.LineCount(); i++ {
		line := unit.Line(i)

		if n := utf8.RuneCountInString(line); n > cfg.MaxLineLength {
			issues = append(issues, types.Issue{
				Rule:       RuleLineTooLong,
				Severity:   types.SeveritySuggestion,
				Line:       i,
				Column:     cfg.MaxLineLength,
				Message:    fmt.Sprintf("line is %d characters (max %d)", n, cfg.MaxLineLength),
				Suggestion: "wrap or shorten the line",
			})
		}

		if trimmed := strings.TrimRight(line, " \t"); trimmed != line {
			issues = append(issues, types.Issue{
				Rule:        RuleTrailingWhitespace,
				Severity:    types.SeveritySuggestion,
				Line:        i,
				Column:      len(trimmed),
				Message:     "line has trailing whitespace",
				Suggestion:  "strip the trailing whitespace",
				AutoFixable: true,
			})
		}

		if strings.TrimSpace(line) == "" {
			blanks++
			// One issue per run, raised where the run becomes excessive.
			if blanks == 3 {
				issues = append(issues, types.Issue{
					Rule:        RuleMultipleBlankLines,
					Severity:    types.SeveritySuggestion,
					Line:        i,
					Message:     "more than 2 consecutive blank lines",
					Suggestion:  "collapse to at most 2 blank lines",
					AutoFixable: true,
				})
			}
		} else {
			blanks = 0
		}
	}
	return issues
}
