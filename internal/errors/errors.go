// Package errors defines the typed failures the analysis core can produce.
// Every failure either becomes a user-visible Issue or an explicit error
// value; nothing is logged-and-ignored.
package errors

import (
	"fmt"

	"github.com/carpsesdema/refactorkit/internal/types"
)

// ParseError reports malformed or undecodable source. It is recovered
// locally by the analyzer: the caller sees a single syntax Issue and no
// further analysis runs for that file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

// NewParseError creates a parse error located at line/column in path.
func NewParseError(path string, line, column int, message string) *ParseError {
	return &ParseError{Path: path, Line: line, Column: column, Message: message}
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// EditConflictError reports two planned edits whose byte ranges overlap.
// Overlap is a hard precondition violation for strict validation; the
// graceful apply path records the same information per skipped edit.
type EditConflictError struct {
	First  types.TextEdit
	Second types.TextEdit
}

// NewEditConflictError creates a conflict naming the offending pair.
func NewEditConflictError(first, second types.TextEdit) *EditConflictError {
	return &EditConflictError{First: first, Second: second}
}

func (e *EditConflictError) Error() string {
	return fmt.Sprintf("edit conflict: %s edit %s overlaps %s edit %s",
		e.Second.Rule, e.Second.Range, e.First.Rule, e.First.Range)
}

// ConfigError reports an invalid configuration value. It is fatal to the
// call that received the configuration, and nothing else.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

// NewConfigError creates a config error for a field and its offending value.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Underlying: err}
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config error for %s (value %s): %v", e.Field, e.Value, e.Underlying)
	}
	return fmt.Sprintf("config error for %s: %v", e.Field, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
