package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Severity classifies how serious an Issue is.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeveritySuggestion
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the severity as its string form for CLI output.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Point is a position in source text. Lines are 1-based, columns are
// 0-based byte offsets within the line.
type Point struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ByteRange is a half-open [Start, End) span into a SourceUnit's text.
// An empty range (Start == End) denotes a pure insertion point.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the range.
func (r ByteRange) Len() int { return r.End - r.Start }

// Empty reports whether the range is a pure insertion point.
func (r ByteRange) Empty() bool { return r.Start == r.End }

// Overlaps reports whether two ranges share at least one byte. Touching
// ranges ([0,3) and [3,5)) do not overlap.
func (r ByteRange) Overlaps(o ByteRange) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r ByteRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Issue is one finding produced by an analysis pass. Issues are plain data:
// they carry no references into the structural tree, so callers may keep
// them after the SourceUnit they were derived from is gone. They are only
// meaningful against the exact text snapshot they were produced from.
type Issue struct {
	Rule        string   `json:"rule"`
	Severity    Severity `json:"severity"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	EndLine     int      `json:"end_line,omitempty"`
	Message     string   `json:"message"`
	Suggestion  string   `json:"suggestion,omitempty"`
	AutoFixable bool     `json:"auto_fixable"`
}

// SortIssues orders issues by (line, column, rule id) so the result set is
// deterministic regardless of rule evaluation order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})
}

// TextEdit is a byte-range replacement against one immutable source
// snapshot. The range always addresses the original text; applying any
// edit invalidates every other edit derived from the same snapshot.
type TextEdit struct {
	Range       ByteRange `json:"range"`
	Replacement string    `json:"replacement"`
	Rule        string    `json:"rule"`
	Line        int       `json:"line"`
}

// SkippedEdit records an edit that was not applied and why.
type SkippedEdit struct {
	Edit   TextEdit `json:"edit"`
	Reason string   `json:"reason"`
}

// FixResult is the outcome of applying a batch of edits to one snapshot.
type FixResult struct {
	NewText      string        `json:"new_text"`
	AppliedCount int           `json:"applied_count"`
	Skipped      []SkippedEdit `json:"skipped,omitempty"`
}
