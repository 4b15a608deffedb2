// Package parser builds structural models from raw source text using
// tree-sitter. It performs no semantic resolution: the tree it produces is
// grammar-level structure sufficient for scope, line, and name extraction.
package parser

import (
	"fmt"
	"path/filepath"
	"sync"
	"unicode/utf8"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
	"github.com/carpsesdema/refactorkit/internal/lang"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// Parser turns source text into SourceUnits. Tree-sitter parser instances
// are not safe for concurrent use, so each language keeps a pool; a Parser
// may be shared freely across goroutines.
type Parser struct {
	pools map[string]*sync.Pool // keyed by profile name
}

// New creates a parser with pools for every supported language.
func New() *Parser {
	return &Parser{
		pools: map[string]*sync.Pool{
			lang.Python.Name: {New: func() any { return newTSParser(tree_sitter_python.Language()) }},
			lang.Go.Name:     {New: func() any { return newTSParser(tree_sitter_go.Language()) }},
		},
	}
}

func newTSParser(langPtr unsafe.Pointer) *tree_sitter.Parser {
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(tree_sitter.NewLanguage(langPtr)); err != nil {
		return nil
	}
	return p
}

// ParseFile builds a SourceUnit for path's contents, selecting the
// language by extension. It fails with *errors.ParseError on unsupported
// file types, undecodable bytes, or malformed syntax; parse failure is
// non-fatal to callers, which surface it as a single syntax Issue.
func (p *Parser) ParseFile(path string, text []byte) (*types.SourceUnit, error) {
	profile := lang.ByExtension(filepath.Ext(path))
	if profile == nil {
		return nil, rkerrors.NewParseError(path, 1, 0, fmt.Sprintf("unsupported file type %q", filepath.Ext(path)))
	}
	return p.ParseSource(path, text, profile)
}

// ParseSource builds a SourceUnit for text under an explicit profile.
func (p *Parser) ParseSource(path string, text []byte, profile *lang.Profile) (unit *types.SourceUnit, err error) {
	if !utf8.Valid(text) {
		return nil, rkerrors.NewParseError(path, 1, 0, "invalid encoding")
	}

	pool := p.pools[profile.Name]
	if pool == nil {
		return nil, rkerrors.NewParseError(path, 1, 0, fmt.Sprintf("no parser for language %q", profile.Name))
	}
	tsp, _ := pool.Get().(*tree_sitter.Parser)
	if tsp == nil {
		return nil, rkerrors.NewParseError(path, 1, 0, fmt.Sprintf("parser init failed for %q", profile.Name))
	}
	defer pool.Put(tsp)

	// The tree-sitter C library may mutate the input buffer via CGO;
	// parse a defensive copy so the snapshot stays immutable.
	buf := make([]byte, len(text))
	copy(buf, text)

	defer func() {
		if r := recover(); r != nil {
			unit = nil
			err = rkerrors.NewParseError(path, 1, 0, fmt.Sprintf("parser panic: %v", r))
		}
	}()

	tree := tsp.Parse(buf, nil)
	if tree == nil {
		return nil, rkerrors.NewParseError(path, 1, 0, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line, col, msg := locateSyntaxError(root)
		return nil, rkerrors.NewParseError(path, line, col, msg)
	}

	c := &converter{text: buf, profile: profile}
	return types.NewSourceUnit(path, profile.Name, text, c.build(root)), nil
}

// locateSyntaxError finds the first ERROR or MISSING node and describes it.
func locateSyntaxError(root *tree_sitter.Node) (line, col int, msg string) {
	var found *tree_sitter.Node
	var missing bool
	var walk func(n *tree_sitter.Node) bool
	walk = func(n *tree_sitter.Node) bool {
		if n.IsError() {
			found = n
			return true
		}
		if n.IsMissing() {
			found, missing = n, true
			return true
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if walk(n.Child(i)) {
				return true
			}
		}
		return false
	}
	walk(root)
	if found == nil {
		return 1, 0, "syntax error"
	}
	pos := found.StartPosition()
	line, col = int(pos.Row)+1, int(pos.Column)
	if missing {
		return line, col, fmt.Sprintf("syntax error: missing %s", found.Kind())
	}
	return line, col, "syntax error: unexpected token"
}
