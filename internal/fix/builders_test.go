package fix

import (
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func TestInsertTextCollapsesSpan(t *testing.T) {
	span := source.Span{File: 1, Start: 4, End: 9}
	f := InsertText("insert", span, "x")
	if len(f.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(f.Edits))
	}
	if got := f.Edits[0].Span; got.Start != 4 || got.End != 4 {
		t.Fatalf("expected empty span at 4, got %v", got)
	}
	if f.Applicability != diag.FixApplicabilityAlwaysSafe || f.Kind != diag.FixKindQuickFix {
		t.Fatalf("unexpected defaults: %v %v", f.Applicability, f.Kind)
	}
}

func TestDeleteSpanGuard(t *testing.T) {
	span := source.Span{File: 0, Start: 9, End: 10}
	f := DeleteSpan("Remove semicolon", span, ";")
	edit := f.Edits[0]
	if edit.NewText != "" {
		t.Errorf("expected empty NewText for deletion, got %q", edit.NewText)
	}
	if edit.OldText != ";" {
		t.Errorf("expected OldText ';', got %q", edit.OldText)
	}
}

func TestOptions(t *testing.T) {
	span := source.Span{Start: 0, End: 4}
	f := ReplaceSpan("Use undefined", span, "undefined", "null",
		WithID("no-null-keyword-0"),
		WithKind(diag.FixKindRefactor),
		WithApplicability(diag.FixApplicabilityManualReview),
		Preferred(),
		nil,
	)
	if f.ID != "no-null-keyword-0" {
		t.Errorf("ID = %q", f.ID)
	}
	if f.Kind != diag.FixKindRefactor {
		t.Errorf("Kind = %v", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilityManualReview {
		t.Errorf("Applicability = %v", f.Applicability)
	}
	if !f.IsPreferred {
		t.Error("expected preferred")
	}
}

func TestWrapWithProducesTwoInserts(t *testing.T) {
	text := []byte("a + b")
	span := source.Span{Start: 0, End: 5}
	f := WrapWith("parenthesize", span, "(", ")")
	if len(f.Edits) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(f.Edits))
	}
	got, err := ApplyText(text, []diag.Fix{f})
	if err != nil {
		t.Fatalf("ApplyText: %v", err)
	}
	if string(got) != "(a + b)" {
		t.Fatalf("got %q", got)
	}
	if f.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Fatalf("unexpected applicability %v", f.Applicability)
	}
}

func TestRewriteKeepsEditOrder(t *testing.T) {
	edits := []diag.TextEdit{
		{Span: source.Span{Start: 4, End: 5}, NewText: "y"},
		{Span: source.Span{Start: 0, End: 3}, NewText: "const"},
	}
	f := Rewrite("rewrite", edits)
	got, err := ApplyText([]byte("let x = 1"), []diag.Fix{f})
	if err != nil {
		t.Fatalf("ApplyText: %v", err)
	}
	if string(got) != "const y = 1" {
		t.Fatalf("got %q", got)
	}
}
