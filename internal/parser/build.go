package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// converter lowers a tree-sitter tree into the immutable structural Node
// tree. Only named grammar nodes are kept; anonymous tokens carry no
// structure the metric passes need.
type converter struct {
	text    []byte
	profile *lang.Profile
}

func (c *converter) build(n *tree_sitter.Node) *types.Node {
	kind := n.Kind()
	start, end := n.StartPosition(), n.EndPosition()
	node := &types.Node{
		Kind:    c.profile.Classify(kind),
		RawKind: kind,
		Range:   types.ByteRange{Start: int(n.StartByte()), End: int(n.EndByte())},
		Start:   types.Point{Line: int(start.Row) + 1, Column: int(start.Column)},
		End:     types.Point{Line: int(end.Row) + 1, Column: int(end.Column)},
	}

	if node.Kind == types.KindFunction || node.Kind == types.KindClass {
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			node.Name = c.slice(nameNode)
		}
	}
	if node.Kind == types.KindFunction {
		node.Params = c.paramNames(n)
	}
	if c.profile.BoolOpKinds[kind] {
		if op := n.ChildByFieldName("operator"); op != nil && c.profile.BoolOperators[c.slice(op)] {
			node.BoolOp = true
		}
	}

	var bodyStart, bodyEnd int
	if body := n.ChildByFieldName("body"); body != nil {
		bodyStart, bodyEnd = int(body.StartByte()), int(body.EndByte())
	}

	count := n.NamedChildCount()
	if count > 0 {
		node.Children = make([]*types.Node, 0, count)
	}
	for i := uint(0); i < count; i++ {
		child := c.build(n.NamedChild(i))
		node.Children = append(node.Children, child)
		if bodyEnd > 0 && child.Range.Start == bodyStart && child.Range.End == bodyEnd {
			node.Body = child
		}
	}
	return node
}

func (c *converter) slice(n *tree_sitter.Node) string {
	return string(c.text[n.StartByte():n.EndByte()])
}

// paramNames extracts declared parameter names in order. Entries without
// an identifier (bare separators like Python's "*" and "/") contribute
// nothing.
func (c *converter) paramNames(fn *tree_sitter.Node) []string {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < params.NamedChildCount(); i++ {
		names = c.appendParamNames(params.NamedChild(i), names)
	}
	return names
}

func (c *converter) appendParamNames(p *tree_sitter.Node, names []string) []string {
	kind := p.Kind()
	if kind == "identifier" {
		return append(names, c.slice(p))
	}

	// Go groups several names under one declaration ("a, b int"); each
	// direct identifier child is a distinct parameter. A type-only
	// declaration ("func(int)") still declares one parameter.
	if kind == "parameter_declaration" || kind == "variadic_parameter_declaration" {
		found := false
		for i := uint(0); i < p.NamedChildCount(); i++ {
			child := p.NamedChild(i)
			if child.Kind() == "identifier" {
				names = append(names, c.slice(child))
				found = true
			}
		}
		if !found {
			names = append(names, "_")
		}
		return names
	}

	if name := p.ChildByFieldName("name"); name != nil {
		return append(names, c.slice(name))
	}
	if name := c.firstIdentifier(p); name != "" {
		return append(names, name)
	}
	return names
}

func (c *converter) firstIdentifier(n *tree_sitter.Node) string {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "identifier" {
			return c.slice(child)
		}
		if name := c.firstIdentifier(child); name != "" {
			return name
		}
	}
	return ""
}
