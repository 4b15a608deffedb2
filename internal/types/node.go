package types

import "strings"

// NodeKind is the minimal structural classification needed for metrics.
// RawKind on the Node preserves the grammar-level node type for anything
// finer grained (fingerprinting, language-specific rules).
type NodeKind uint8

const (
	KindModule NodeKind = iota
	KindClass
	KindFunction
	KindImport
	KindStatement
	KindExpression
	KindIdentifier
	KindLiteral
	KindOther
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindImport:
		return "import"
	case KindStatement:
		return "statement"
	case KindExpression:
		return "expression"
	case KindIdentifier:
		return "identifier"
	case KindLiteral:
		return "literal"
	default:
		return "other"
	}
}

// Node is one element of the structural tree. The tree is immutable once
// built and is owned exclusively by its SourceUnit.
type Node struct {
	Kind    NodeKind
	RawKind string
	Name    string
	Range   ByteRange
	Start   Point
	End     Point

	// Params holds declared parameter names for function nodes,
	// including any self-like receiver (the metric collector strips it).
	Params []string

	// Body points at the child holding the definition body for
	// function and class nodes; nil otherwise.
	Body *Node

	// BoolOp marks short-circuit boolean combinators, which count as
	// decision points for cyclomatic complexity.
	BoolOp bool

	Children []*Node
}

// LineCount is the inclusive number of source lines the node spans.
func (n *Node) LineCount() int { return n.End.Line - n.Start.Line + 1 }

// Visit walks the subtree in preorder. Returning false from fn prunes the
// walk below the current node.
func (n *Node) Visit(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Visit(fn)
	}
}

// SourceUnit is one parsed source snapshot: the raw text, a line-offset
// index, and the structural tree. It is rebuilt whenever the text changes;
// issues and edits derived from one unit are invalid against any other.
type SourceUnit struct {
	Path     string
	Language string
	Text     []byte
	Root     *Node

	lineOffsets []int
	lines       []string
}

// NewSourceUnit builds a unit over text, computing the line index once.
func NewSourceUnit(path, language string, text []byte, root *Node) *SourceUnit {
	u := &SourceUnit{Path: path, Language: language, Text: text, Root: root}
	u.lineOffsets = append(u.lineOffsets, 0)
	for i, b := range text {
		if b == '\n' {
			u.lineOffsets = append(u.lineOffsets, i+1)
		}
	}
	u.lines = strings.Split(string(text), "\n")
	return u
}

// LineCount returns the number of lines in the unit. A trailing newline
// does not start a counted line.
func (u *SourceUnit) LineCount() int {
	n := len(u.lines)
	if n > 0 && u.lines[n-1] == "" && len(u.Text) > 0 {
		return n - 1
	}
	return n
}

// Lines returns the text split on newlines. The final empty element after
// a trailing newline is included; use LineCount for the logical count.
func (u *SourceUnit) Lines() []string { return u.lines }

// Line returns the 1-based line's text without its newline. Out-of-range
// lines return the empty string.
func (u *SourceUnit) Line(line int) string {
	if line < 1 || line > len(u.lines) {
		return ""
	}
	return u.lines[line-1]
}

// LineStart returns the byte offset where the 1-based line begins. Lines
// past the end map to len(Text), so [LineStart(a), LineStart(b)) spans
// whole lines even at EOF.
func (u *SourceUnit) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(u.lineOffsets) {
		return len(u.Text)
	}
	return u.lineOffsets[line-1]
}

// LineEnd returns the byte offset just past the 1-based line's content,
// excluding its newline.
func (u *SourceUnit) LineEnd(line int) int {
	end := u.LineStart(line) + len(u.Line(line))
	if end > len(u.Text) {
		end = len(u.Text)
	}
	return end
}

// Position maps a byte offset to a (line, column) point.
func (u *SourceUnit) Position(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > len(u.Text) {
		offset = len(u.Text)
	}
	lo, hi := 0, len(u.lineOffsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if u.lineOffsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Point{Line: lo + 1, Column: offset - u.lineOffsets[lo]}
}

// Slice returns the text covered by a byte range.
func (u *SourceUnit) Slice(r ByteRange) string {
	if r.Start < 0 || r.End > len(u.Text) || r.Start > r.End {
		return ""
	}
	return string(u.Text[r.Start:r.End])
}
