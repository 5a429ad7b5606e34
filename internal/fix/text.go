package fix

import (
	"fmt"
	"sort"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
)

// ConflictError reports two overlapping edits. First starts no later than
// Second.
type ConflictError struct {
	First  diag.TextEdit
	Second diag.TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("fix: edit [%d,%d) overlaps edit [%d,%d)",
		e.Second.Span.Start, e.Second.Span.End, e.First.Span.Start, e.First.Span.End)
}

// GuardError reports an edit whose OldText does not match the source, or
// whose span lies outside it.
type GuardError struct {
	Edit   diag.TextEdit
	Actual string
}

func (e *GuardError) Error() string {
	if e.Actual == "" && e.Edit.OldText == "" {
		return fmt.Sprintf("fix: edit [%d,%d) is out of range", e.Edit.Span.Start, e.Edit.Span.End)
	}
	return fmt.Sprintf("fix: edit [%d,%d) expected %q, found %q",
		e.Edit.Span.Start, e.Edit.Span.End, e.Edit.OldText, e.Actual)
}

// ApplyText applies every edit of fixes to text and returns the patched
// copy. Edits are ordered by start offset (stable, so inserts at one offset
// keep their order); spans are half-open, so two inserts at one offset never
// conflict and an insert conflicts only with an edit strictly containing its
// offset. On error text is returned unchanged.
func ApplyText(text []byte, fixes []diag.Fix) ([]byte, error) {
	var edits []diag.TextEdit
	for _, f := range fixes {
		edits = append(edits, f.Edits...)
	}
	if len(edits) == 0 {
		return text, nil
	}
	for _, e := range edits {
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(text) {
			return text, &GuardError{Edit: e}
		}
		if e.OldText != "" {
			if actual := string(text[e.Span.Start:e.Span.End]); actual != e.OldText {
				return text, &GuardError{Edit: e, Actual: actual}
			}
		}
	}
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i].Span, edits[j].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		// вставка перед заменой с того же места
		return a.Empty() && !b.Empty()
	})
	if err := checkOverlaps(edits); err != nil {
		return text, err
	}

	out := make([]byte, 0, len(text))
	pos := uint32(0)
	for _, e := range edits {
		out = append(out, text[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	out = append(out, text[pos:]...)
	return out, nil
}

// checkOverlaps находит первую пересекающуюся пару в отсортированных правках.
func checkOverlaps(edits []diag.TextEdit) error {
	var widest *diag.TextEdit // непустая правка с наибольшим End
	for i := range edits {
		e := &edits[i]
		if widest != nil {
			w := widest.Span
			if e.Span.Empty() {
				if w.Start < e.Span.Start && e.Span.Start < w.End {
					return &ConflictError{First: *widest, Second: *e}
				}
			} else if e.Span.Start < w.End {
				return &ConflictError{First: *widest, Second: *e}
			}
		}
		if !e.Span.Empty() && (widest == nil || e.Span.End > widest.Span.End) {
			widest = e
		}
	}
	return nil
}
