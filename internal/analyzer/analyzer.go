// Package analyzer derives issues, metrics, duplicate clusters, and split
// plans from parsed source units. Every pass is synchronous and pure:
// results depend only on the text snapshot and the configuration passed in.
package analyzer

import (
	"errors"

	"github.com/carpsesdema/refactorkit/internal/config"
	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/parser"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// Analyzer is the analysis entry point. It is stateless apart from the
// pooled parsers and safe for concurrent use.
type Analyzer struct {
	parser *parser.Parser
}

func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Analyze parses text as path's language and runs every rule over it.
// Malformed input is not an error: parse failure yields a degenerate unit
// and a single syntax Issue. The only failure it returns is an invalid
// configuration.
func (a *Analyzer) Analyze(path string, text []byte, cfg *config.Config) (*types.SourceUnit, []types.Issue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	unit, err := a.parser.ParseFile(path, text)
	if err != nil {
		var pe *rkerrors.ParseError
		if errors.As(err, &pe) {
			unit = types.NewSourceUnit(path, "", text, nil)
			return unit, []types.Issue{{
				Rule:     RuleSyntax,
				Severity: types.SeverityError,
				Line:     pe.Line,
				Column:   pe.Column,
				Message:  pe.Message,
			}}, nil
		}
		return nil, nil, err
	}
	return unit, a.CheckUnit(unit, cfg), nil
}

// CheckUnit runs every rule family over an already-parsed unit and returns
// the findings sorted by (line, column, rule).
func (a *Analyzer) CheckUnit(unit *types.SourceUnit, cfg *config.Config) []types.Issue {
	var issues []types.Issue
	if profile := lang.ByName(unit.Language); profile != nil && unit.Root != nil {
		scopes := CollectMetrics(unit, profile)
		issues = append(issues, checkScopes(scopes, cfg, profile)...)
		issues = append(issues, checkImports(unit, cfg, profile)...)
		issues = append(issues, duplicateIssues(FindDuplicates(unit, cfg))...)
	}
	issues = append(issues, checkText(unit, cfg)...)
	types.SortIssues(issues)
	return issues
}
