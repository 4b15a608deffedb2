package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

func pyProfile(t *testing.T) *lang.Profile {
	t.Helper()
	p := lang.ByName("python")
	require.NotNil(t, p)
	return p
}

func goProfile(t *testing.T) *lang.Profile {
	t.Helper()
	p := lang.ByName("go")
	require.NotNil(t, p)
	return p
}

func analyzePy(t *testing.T, src string, cfg *config.Config) (*types.SourceUnit, []types.Issue) {
	t.Helper()
	unit, issues, err := New().Analyze("test.py", []byte(src), cfg)
	require.NoError(t, err)
	return unit, issues
}

func rulesOf(issues []types.Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Rule
	}
	return out
}

// A 60-line function with 7 parameters and nesting depth 5 trips exactly
// the three structural warnings under default thresholds.
func TestOversizedFunctionScenario(t *testing.T) {
	var b strings.Builder
	b.WriteString("def stress_many_things(a1, a2, a3, a4, a5, a6, a7):\n")
	b.WriteString("    \"\"\"Exercise every structural limit at once.\"\"\"\n")
	b.WriteString("    if a1:\n")
	b.WriteString("        if a2:\n")
	b.WriteString("            if a3:\n")
	b.WriteString("                if a4:\n")
	b.WriteString("                    if a5:\n")
	b.WriteString("                        a6 = a7\n")
	for i := 0; i < 52; i++ {
		fmt.Fprintf(&b, "    v%d = %d\n", i, i)
	}

	_, issues := analyzePy(t, b.String(), config.Default())
	assert.Equal(t, []string{"deep-nesting", "large-function", "long-parameter-list"}, rulesOf(issues))
	for _, issue := range issues {
		assert.Equal(t, types.SeverityWarning, issue.Severity)
		assert.Equal(t, 1, issue.Line)
	}
}

func TestComplexityCount(t *testing.T) {
	src := `def decide(a, b):
    """Choose a path."""
    if a:
        return 1
    for i in b:
        if i and a:
            return 2
    return 3
`
	unit, _ := analyzePy(t, src, config.Default())
	scopes := CollectMetrics(unit, pyProfile(t))
	require.Len(t, scopes, 1)
	// 1 + if + for + if + and
	assert.Equal(t, 5, scopes[0].Complexity)
}

// Adding a branch never lowers complexity.
func TestComplexityMonotonic(t *testing.T) {
	base := "def f(a):\n    \"\"\"D.\"\"\"\n    if a:\n        return 1\n    return 0\n"
	grown := "def f(a):\n    \"\"\"D.\"\"\"\n    if a:\n        return 1\n    if not a:\n        return 2\n    return 0\n"

	unitA, _ := analyzePy(t, base, config.Default())
	unitB, _ := analyzePy(t, grown, config.Default())
	cxA := CollectMetrics(unitA, pyProfile(t))[0].Complexity
	cxB := CollectMetrics(unitB, pyProfile(t))[0].Complexity
	assert.Greater(t, cxB, cxA)
}

func TestNestingExcludesInnerFunctions(t *testing.T) {
	src := `def outer(x):
    """D."""
    if x:
        def inner(y):
            if y:
                if y > 1:
                    if y > 2:
                        return y
        return inner
    return None
`
	unit, _ := analyzePy(t, src, config.Default())
	byName := map[string]types.Scope{}
	for _, s := range CollectMetrics(unit, pyProfile(t)) {
		byName[s.Name] = s
	}
	assert.Equal(t, 1, byName["outer"].MaxNesting)
	assert.Equal(t, 3, byName["inner"].MaxNesting)
}

func TestMethodParamsExcludeSelf(t *testing.T) {
	src := `class Widget:
    """D."""

    def resize(self, w, h):
        """D."""
        return (w, h)
`
	unit, _ := analyzePy(t, src, config.Default())
	for _, s := range CollectMetrics(unit, pyProfile(t)) {
		if s.Name == "resize" {
			assert.True(t, s.IsMethod)
			assert.Equal(t, 2, s.ParamCount)
			assert.Equal(t, []string{"w", "h"}, s.Params)
			return
		}
	}
	t.Fatal("resize scope not found")
}

func TestMissingDocstring(t *testing.T) {
	_, issues := analyzePy(t, "def quiet():\n    return 1\n", config.Default())
	require.Len(t, issues, 1)
	assert.Equal(t, RuleMissingDocstring, issues[0].Rule)
	assert.True(t, issues[0].AutoFixable)
}

func TestNamingConvention(t *testing.T) {
	_, issues := analyzePy(t, "def DoThings():\n    \"\"\"D.\"\"\"\n    return 1\n", config.Default())
	require.Len(t, issues, 1)
	assert.Equal(t, RuleNamingConvention, issues[0].Rule)
	assert.Contains(t, issues[0].Suggestion, "do_things")
}

func TestSyntaxErrorYieldsSingleIssue(t *testing.T) {
	unit, issues := analyzePy(t, "def broken(:\n    pass\n", config.Default())
	require.Len(t, issues, 1)
	assert.Equal(t, RuleSyntax, issues[0].Rule)
	assert.Equal(t, types.SeverityError, issues[0].Severity)
	assert.Nil(t, unit.Root)
}

func TestInvalidConfigIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.MaxNesting = -1
	_, _, err := New().Analyze("test.py", []byte("x = 1\n"), cfg)
	require.Error(t, err)
}

func TestTextRules(t *testing.T) {
	src := "x = 1   \n" +
		"y = \"" + strings.Repeat("a", 130) + "\"\n" +
		"\n\n\n\n" +
		"z = 3\n"
	_, issues := analyzePy(t, src, config.Default())
	assert.Equal(t, []string{RuleTrailingWhitespace, RuleLineTooLong, RuleMultipleBlankLines}, rulesOf(issues))
	assert.Equal(t, 5, issues[2].Line, "blank-run issue sits on the third blank line")
}

func TestBlankRunReportedOnce(t *testing.T) {
	src := "a = 1\n\n\n\n\n\n\nb = 2\n"
	_, issues := analyzePy(t, src, config.Default())
	count := 0
	for _, is := range issues {
		if is.Rule == RuleMultipleBlankLines {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestImportOrderDetection(t *testing.T) {
	src := `import sys
import requests
import os


def main():
    """D."""
    return 0
`
	unit, issues := analyzePy(t, src, config.Default())
	require.Equal(t, []string{RuleImportOrder}, rulesOf(issues))
	assert.True(t, issues[0].AutoFixable)

	_, rewrite, ok := ImportRewrite(unit, config.Default(), pyProfile(t))
	require.True(t, ok)
	assert.Equal(t, "import os\nimport sys\n\nimport requests", rewrite)
}

func TestGoImportOrder(t *testing.T) {
	src := `package main

import "sort"
import "github.com/urfave/cli/v2"
import "fmt"

func main() {}
`
	unit, issues, err := New().Analyze("tool.go", []byte(src), config.Default())
	require.NoError(t, err)
	require.Equal(t, []string{RuleImportOrder}, rulesOf(issues))

	_, rewrite, ok := ImportRewrite(unit, config.Default(), goProfile(t))
	require.True(t, ok)
	assert.Equal(t, "import \"fmt\"\nimport \"sort\"\n\nimport \"github.com/urfave/cli/v2\"", rewrite)
}

func TestImportOrderCleanFileSilent(t *testing.T) {
	src := `import os
import sys

import requests


def main():
    """D."""
    return 0
`
	_, issues := analyzePy(t, src, config.Default())
	assert.Empty(t, issues)
}

func TestScatteredImportsLeftAlone(t *testing.T) {
	src := `import sys


def main():
    """D."""
    return 0


import os
`
	unit, _ := analyzePy(t, src, config.Default())
	blockRange, _, ok := ImportRewrite(unit, config.Default(), pyProfile(t))
	require.True(t, ok)
	assert.Equal(t, "import sys", unit.Slice(blockRange), "block stops before the first non-import")
}

func TestDuplicateCluster(t *testing.T) {
	src := `def first_sum(values):
    """D."""
    total = 0
    count = 0
    for v in values:
        total += v
        count += 1
    return total


def second_sum(items):
    """D."""
    acc = 0
    n = 0
    for it in items:
        acc += it
        n += 1
    return acc
`
	unit, issues := analyzePy(t, src, config.Default())
	clusters := FindDuplicates(unit, config.Default())
	require.Len(t, clusters, 1)
	require.Len(t, clusters[0].Members, 2)
	assert.Equal(t, "first_sum", clusters[0].Members[0].Name)
	assert.Equal(t, "second_sum", clusters[0].Members[1].Name)
	assert.Greater(t, clusters[0].Similarity, 0.0)
	assert.LessOrEqual(t, clusters[0].Similarity, 1.0)

	assert.Contains(t, rulesOf(issues), RuleDuplicateCode)
}

func TestShortBodiesNotDuplicates(t *testing.T) {
	src := `def get_a(self):
    """D."""
    return self.a


def get_b(self):
    """D."""
    return self.b
`
	unit, _ := analyzePy(t, src, config.Default())
	assert.Empty(t, FindDuplicates(unit, config.Default()))
}

func TestPlanSplit(t *testing.T) {
	src := `def alpha():
    """D."""
    x = beta()
    y = gamma()
    return x + y


def beta():
    """D."""
    v = 1
    w = 2
    return v + w


def gamma():
    """D."""
    v = 3
    w = 4
    return v + w
`
	cfg := config.Default()
	cfg.LargeFileThreshold = 10
	unit, _, err := New().Analyze("big.py", []byte(src), cfg)
	require.NoError(t, err)

	plan := PlanSplit(unit, cfg)
	require.NotNil(t, plan)
	assert.Equal(t, 10, plan.Threshold)
	require.Len(t, plan.Buckets, 2)
	assert.Equal(t, "big_part1", plan.Buckets[0].Name)
	assert.Equal(t, []string{"alpha", "beta"}, plan.Buckets[0].Definitions)
	assert.Equal(t, []string{"gamma"}, plan.Buckets[1].Definitions)

	require.Len(t, plan.CrossEdges, 1)
	assert.Equal(t, "alpha", plan.CrossEdges[0].From)
	assert.Equal(t, "gamma", plan.CrossEdges[0].To)
	assert.NotEqual(t, plan.CrossEdges[0].FromBucket, plan.CrossEdges[0].ToBucket)

	for _, b := range plan.Buckets {
		assert.LessOrEqual(t, b.Lines, cfg.LargeFileThreshold)
	}
}

func TestPlanSplitUnderThreshold(t *testing.T) {
	unit, _ := analyzePy(t, "def tiny():\n    \"\"\"D.\"\"\"\n    return 1\n", config.Default())
	assert.Nil(t, PlanSplit(unit, config.Default()))
}

func TestGoAnalysis(t *testing.T) {
	src := `package main

func Check(a, b, c bool) bool {
	if a && b {
		return true
	}
	return c
}
`
	unit, issues, err := New().Analyze("check.go", []byte(src), config.Default())
	require.NoError(t, err)
	assert.Empty(t, issues, "idiomatic Go file is clean")

	scopes := CollectMetrics(unit, goProfile(t))
	require.Len(t, scopes, 1)
	// 1 + if + &&
	assert.Equal(t, 3, scopes[0].Complexity)
}
