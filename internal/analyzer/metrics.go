package analyzer

import (
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// CollectMetrics derives a Scope for every function and class in the unit.
// The pass is pure: it reads the tree and text, writes nothing back, and
// yields identical results on identical input.
//
// Complexity and nesting are scoped strictly: a nested function or class
// contributes nothing to its enclosing scope's numbers, it gets a Scope of
// its own.
func CollectMetrics(unit *types.SourceUnit, profile *lang.Profile) []types.Scope {
	var scopes []types.Scope
	var walk func(n *types.Node, inClass bool)
	walk = func(n *types.Node, inClass bool) {
		for _, c := range n.Children {
			switch c.Kind {
			case types.KindFunction:
				scopes = append(scopes, functionScope(c, inClass, profile))
				walk(c, false)
			case types.KindClass:
				scopes = append(scopes, classScope(c, profile))
				walk(c, true)
			default:
				walk(c, inClass)
			}
		}
	}
	walk(unit.Root, false)
	return scopes
}

func functionScope(n *types.Node, isMethod bool, profile *lang.Profile) types.Scope {
	s := types.Scope{
		Node:         n,
		Name:         n.Name,
		Kind:         types.KindFunction,
		IsMethod:     isMethod,
		StartLine:    n.Start.Line,
		EndLine:      n.End.Line,
		LineCount:    n.LineCount(),
		Complexity:   complexity(n, profile),
		MaxNesting:   nestingDepth(n.Body, 0, profile),
		HasDocstring: hasDocstring(n, profile),
		Params:       append([]string(nil), n.Params...),
	}
	if isMethod && len(s.Params) > 0 && profile.SelfParams[s.Params[0]] {
		s.Params = s.Params[1:]
	}
	s.ParamCount = len(s.Params)
	return s
}

func classScope(n *types.Node, profile *lang.Profile) types.Scope {
	return types.Scope{
		Node:         n,
		Name:         n.Name,
		Kind:         types.KindClass,
		StartLine:    n.Start.Line,
		EndLine:      n.End.Line,
		LineCount:    n.LineCount(),
		HasDocstring: hasDocstring(n, profile),
	}
}

// complexity is the cyclomatic count for one function: one for the entry
// path, plus one per branching construct and per short-circuit boolean
// operator in its body.
func complexity(fn *types.Node, profile *lang.Profile) int {
	cx := 1
	if fn.Body == nil {
		return cx
	}
	fn.Body.Visit(func(n *types.Node) bool {
		if n != fn.Body && (n.Kind == types.KindFunction || n.Kind == types.KindClass) {
			return false
		}
		if profile.DecisionKinds[n.RawKind] || n.BoolOp {
			cx++
		}
		return true
	})
	return cx
}

func nestingDepth(n *types.Node, depth int, profile *lang.Profile) int {
	if n == nil {
		return depth
	}
	max := depth
	for _, c := range n.Children {
		if c.Kind == types.KindFunction || c.Kind == types.KindClass {
			continue
		}
		next := depth
		if profile.NestingKinds[c.RawKind] {
			next++
		}
		if d := nestingDepth(c, next, profile); d > max {
			max = d
		}
	}
	return max
}

// hasDocstring reports whether the first statement of the definition body
// is a bare string-literal expression. Languages without docstrings always
// report false.
func hasDocstring(n *types.Node, profile *lang.Profile) bool {
	if !profile.HasDocstrings || n.Body == nil || len(n.Body.Children) == 0 {
		return false
	}
	first := n.Body.Children[0]
	if first.RawKind != "expression_statement" || len(first.Children) != 1 {
		return false
	}
	return profile.DocstringKinds[first.Children[0].RawKind]
}
