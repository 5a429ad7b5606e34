package diag

import (
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		b.Add(New(SevWarning, LintBOM, source.Span{Start: uint32(i)}, "x"))
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("Len=%d Dropped=%d", b.Len(), b.Dropped())
	}
	unlimited := NewBag(0)
	for range 100 {
		unlimited.Add(Diagnostic{})
	}
	if unlimited.Len() != 100 {
		t.Errorf("zero limit must be unlimited, got %d", unlimited.Len())
	}
}

func TestBagSortIsCanonical(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, LintNullKeyword, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, LintDoubleSpace, source.Span{File: 0, Start: 9, End: 10}, "a"))
	b.Add(New(SevError, LintNullKeyword, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, LintBOM, source.Span{File: 1, Start: 0, End: 0}, "c"))
	b.Sort()

	items := b.Items()
	if items[0].Primary.File != 0 {
		t.Errorf("file 0 must come first")
	}
	if items[1].Code != LintBOM {
		t.Errorf("expected start 0 next, got %s", items[1].Code.ID())
	}
	if items[2].Severity != SevError || items[3].Severity != SevWarning {
		t.Errorf("severity must be descending on equal spans")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LintStringLiteral, SevWarning, sp, "m", nil, nil)
	r.Report(LintStringLiteral, SevWarning, sp, "m", nil, nil)
	r.Report(LintStringLiteral, SevWarning, sp, "other", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		LintDuplicateSuper: "LNT3100",
		IOLoadFileError:    "IO4001",
		CfgUnknownRule:     "CFG5001",
		FixConflict:        "FIX6001",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
	if LintDuplicateSuper.Title() != "no-duplicate-super" {
		t.Errorf("rule codes must be titled by rule name, got %q", LintDuplicateSuper.Title())
	}
	if !LintBOM.IsLint() || LexBadNumber.IsLint() || !SynExpectType.IsSyntax() {
		t.Error("code range predicates are wrong")
	}
}
