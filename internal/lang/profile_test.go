package lang

import (
	"testing"

	"github.com/carpsesdema/refactorkit/internal/types"
)

func TestByExtension(t *testing.T) {
	if p := ByExtension(".py"); p != Python {
		t.Fatalf("ByExtension(.py) = %v, want python profile", p)
	}
	if p := ByExtension(".go"); p != Go {
		t.Fatalf("ByExtension(.go) = %v, want go profile", p)
	}
	if p := ByExtension(".rb"); p != nil {
		t.Fatalf("ByExtension(.rb) = %v, want nil", p)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		profile *Profile
		raw     string
		want    types.NodeKind
	}{
		{Python, "module", types.KindModule},
		{Python, "function_definition", types.KindFunction},
		{Python, "class_definition", types.KindClass},
		{Python, "import_from_statement", types.KindImport},
		{Python, "if_statement", types.KindStatement},
		{Python, "boolean_operator", types.KindExpression},
		{Python, "identifier", types.KindIdentifier},
		{Python, "string", types.KindLiteral},
		{Python, "block", types.KindOther},
		{Go, "source_file", types.KindModule},
		{Go, "method_declaration", types.KindFunction},
		{Go, "type_spec", types.KindClass},
		{Go, "import_declaration", types.KindImport},
		{Go, "binary_expression", types.KindExpression},
	}
	for _, tc := range cases {
		if got := tc.profile.Classify(tc.raw); got != tc.want {
			t.Errorf("%s.Classify(%q) = %v, want %v", tc.profile.Name, tc.raw, got, tc.want)
		}
	}
}

func TestPythonImportGroup(t *testing.T) {
	cases := []struct {
		stmt string
		want string
	}{
		{"import os", GroupStdlib},
		{"from __future__ import annotations", GroupStdlib},
		{"import os.path", GroupStdlib},
		{"from collections import OrderedDict", GroupStdlib},
		{"import requests", GroupThirdParty},
		{"from numpy.linalg import norm", GroupThirdParty},
		{"from . import helpers", GroupLocal},
		{"from .models import User", GroupLocal},
		{"from ..core import engine", GroupLocal},
	}
	for _, tc := range cases {
		if got := Python.ImportGroup(tc.stmt); got != tc.want {
			t.Errorf("ImportGroup(%q) = %q, want %q", tc.stmt, got, tc.want)
		}
	}
}

func TestGoImportGroup(t *testing.T) {
	if got := Go.ImportGroup(`import "fmt"`); got != GroupStdlib {
		t.Errorf("fmt grouped as %q", got)
	}
	if got := Go.ImportGroup(`import "github.com/urfave/cli/v2"`); got != GroupThirdParty {
		t.Errorf("github import grouped as %q", got)
	}
}

func TestMatchesConvention(t *testing.T) {
	cases := []struct {
		name, convention string
		want             bool
	}{
		{"do_work", ConventionSnakeCase, true},
		{"_private_helper", ConventionSnakeCase, true},
		{"doWork", ConventionSnakeCase, false},
		{"doWork", ConventionCamelCase, true},
		{"DoWork", ConventionCamelCase, false},
		{"DoWork", ConventionPascalCase, true},
		{"HTTPServer", ConventionPascalCase, true},
		{"do_work", ConventionMixedCaps, false},
		{"DoWork", ConventionMixedCaps, true},
		{"anything", "no-such-convention", true},
	}
	for _, tc := range cases {
		if got := MatchesConvention(tc.name, tc.convention); got != tc.want {
			t.Errorf("MatchesConvention(%q, %q) = %v, want %v", tc.name, tc.convention, got, tc.want)
		}
	}
}

func TestSuggestRename(t *testing.T) {
	cases := []struct {
		name, convention, want string
	}{
		{"doWorkFast", ConventionSnakeCase, "do_work_fast"},
		{"DoWorkFast", ConventionSnakeCase, "do_work_fast"},
		{"do_work_fast", ConventionPascalCase, "DoWorkFast"},
		{"do_work_fast", ConventionCamelCase, "doWorkFast"},
		{"already_fine", "no-such-convention", "already_fine"},
	}
	for _, tc := range cases {
		if got := SuggestRename(tc.name, tc.convention); got != tc.want {
			t.Errorf("SuggestRename(%q, %q) = %q, want %q", tc.name, tc.convention, got, tc.want)
		}
	}
}
