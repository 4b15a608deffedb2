package refactor

import (
	"fmt"
	"sort"
	"strings"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
	"github.com/carpsesdema/refactorkit/internal/types"
)

func sortedEdits(edits []types.TextEdit) []types.TextEdit {
	out := append([]types.TextEdit(nil), edits...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Range.Start != out[j].Range.Start {
			return out[i].Range.Start < out[j].Range.Start
		}
		return out[i].Range.End < out[j].Range.End
	})
	return out
}

// Validate checks a batch of edits against the unit without applying
// anything. It returns *errors.EditConflictError for the first overlapping
// pair, or a plain error for an edit outside the text.
func Validate(unit *types.SourceUnit, edits []types.TextEdit) error {
	sorted := sortedEdits(edits)
	for i, e := range sorted {
		if e.Range.Start < 0 || e.Range.End > len(unit.Text) || e.Range.Start > e.Range.End {
			return fmt.Errorf("edit %s (%s) is outside the text", e.Range, e.Rule)
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Range.Overlaps(e.Range) || (e.Range.Empty() && prev.Range.End > e.Range.Start) {
				return rkerrors.NewEditConflictError(prev, e)
			}
		}
	}
	return nil
}

// Apply splices a batch of edits into the unit's snapshot in one pass.
// All ranges address the original text, so edits compose without offset
// bookkeeping. Conflicting or out-of-range edits are skipped and reported
// in the result rather than failing the batch; sorting first makes the
// outcome independent of the order the edits arrived in.
//
// The unit itself is untouched. Persisting NewText, and re-analyzing, is
// the caller's job.
func Apply(unit *types.SourceUnit, edits []types.TextEdit) (*types.FixResult, error) {
	if unit == nil {
		return nil, fmt.Errorf("nil source unit")
	}
	res := &types.FixResult{}
	var b strings.Builder
	b.Grow(len(unit.Text))

	cursor := 0
	for _, e := range sortedEdits(edits) {
		switch {
		case e.Range.Start < 0 || e.Range.End > len(unit.Text) || e.Range.Start > e.Range.End:
			res.Skipped = append(res.Skipped, types.SkippedEdit{Edit: e, Reason: "range outside text"})
			continue
		case e.Range.Start < cursor:
			res.Skipped = append(res.Skipped, types.SkippedEdit{Edit: e, Reason: "overlaps a preceding edit"})
			continue
		}
		b.Write(unit.Text[cursor:e.Range.Start])
		b.WriteString(e.Replacement)
		cursor = e.Range.End
		res.AppliedCount++
	}
	b.Write(unit.Text[cursor:])
	res.NewText = b.String()
	return res, nil
}
