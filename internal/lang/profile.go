// Package lang holds the per-language grammar tables the core needs:
// node-kind classification, decision and nesting kinds for metrics,
// naming conventions, and import grouping. Profiles are static data; the
// parser picks one by file extension.
package lang

import (
	"strings"

	"github.com/carpsesdema/refactorkit/internal/types"
)

// Import group names used by the import-order rule.
const (
	GroupStdlib     = "stdlib"
	GroupThirdParty = "third-party"
	GroupLocal      = "local"
)

// Profile describes one supported language's grammar surface.
type Profile struct {
	Name       string
	Extensions []string

	ModuleKinds   map[string]bool
	FunctionKinds map[string]bool
	ClassKinds    map[string]bool
	ImportKinds   map[string]bool

	// DecisionKinds add one to cyclomatic complexity each; NestingKinds
	// contribute to max nesting depth. The sets overlap but are counted
	// independently.
	DecisionKinds map[string]bool
	NestingKinds  map[string]bool

	IdentifierKinds map[string]bool
	LiteralKinds    map[string]bool

	// BoolOpKinds are grammar kinds that may be short-circuit
	// combinators; BoolOperators are the operator spellings that are.
	BoolOpKinds   map[string]bool
	BoolOperators map[string]bool

	// HasDocstrings enables the missing-docstring rule and its fix.
	HasDocstrings  bool
	DocstringKinds map[string]bool

	// SelfParams are implicit receiver names excluded from the
	// parameter count when the function is a method.
	SelfParams map[string]bool

	FunctionNaming string
	ClassNaming    string

	stdlibModules map[string]bool
}

// Classify maps a grammar node kind onto the minimal structural kind set.
func (p *Profile) Classify(rawKind string) types.NodeKind {
	switch {
	case p.FunctionKinds[rawKind]:
		return types.KindFunction
	case p.ClassKinds[rawKind]:
		return types.KindClass
	case p.ImportKinds[rawKind]:
		return types.KindImport
	case p.ModuleKinds[rawKind]:
		return types.KindModule
	case p.IdentifierKinds[rawKind]:
		return types.KindIdentifier
	case p.LiteralKinds[rawKind]:
		return types.KindLiteral
	case strings.HasSuffix(rawKind, "_statement") || strings.HasSuffix(rawKind, "_declaration") || strings.HasSuffix(rawKind, "_definition"):
		return types.KindStatement
	case strings.HasSuffix(rawKind, "_expression") || strings.HasSuffix(rawKind, "_operator"):
		return types.KindExpression
	default:
		return types.KindOther
	}
}

// registry maps extensions to profiles.
var registry = map[string]*Profile{}

func register(p *Profile) {
	for _, ext := range p.Extensions {
		registry[ext] = p
	}
}

// ByExtension returns the profile for a file extension (".py"), or nil if
// the language is unsupported.
func ByExtension(ext string) *Profile {
	return registry[strings.ToLower(ext)]
}

// ByName returns the profile by language name, or nil.
func ByName(name string) *Profile {
	for _, p := range registry {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Supported reports whether any profile claims the extension.
func Supported(ext string) bool {
	return ByExtension(ext) != nil
}
