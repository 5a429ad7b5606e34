package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 10}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must keep receiver, got %v", got)
	}
}

func TestSpanRelations(t *testing.T) {
	outer := Span{Start: 0, End: 10}
	inner := Span{Start: 3, End: 4}
	if !outer.Encloses(inner) || inner.Encloses(outer) {
		t.Error("Encloses is wrong")
	}
	if !outer.Overlaps(inner) {
		t.Error("expected overlap")
	}
	if (Span{Start: 0, End: 3}).Overlaps(Span{Start: 3, End: 5}) {
		t.Error("adjacent spans must not overlap")
	}
	if !outer.Contains(9) || outer.Contains(10) {
		t.Error("Contains must be half-open")
	}
}

func TestSpanBetween(t *testing.T) {
	a := Span{Start: 0, End: 3}
	b := Span{Start: 7, End: 9}
	if got := a.Between(b); got.Start != 3 || got.End != 7 {
		t.Errorf("Between = %v", got)
	}
	if got := b.Between(a); !got.Empty() {
		t.Errorf("reversed Between must be empty, got %v", got)
	}
	if z := b.ZeroideToEnd(); z.Start != 9 || !z.Empty() {
		t.Errorf("ZeroideToEnd = %v", z)
	}
}

func TestFileText(t *testing.T) {
	f := &File{Content: []byte("hello world")}
	if got := f.Text(Span{Start: 6, End: 11}); got != "world" {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 6, End: 100}); got != "world" {
		t.Errorf("clamped Text = %q", got)
	}
}
