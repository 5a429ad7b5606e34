package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	for _, w := range []string{"super", "for", "instanceof", "null", "enum"} {
		if _, ok := LookupKeyword(w); !ok {
			t.Errorf("%q must be a keyword", w)
		}
	}
	for _, w := range []string{"let", "of", "as", "type", "async", "interface", "Super"} {
		if _, ok := LookupKeyword(w); ok {
			t.Errorf("%q must stay an identifier", w)
		}
	}
}

func TestKindText(t *testing.T) {
	for k := punctBeg + 1; k < punctEnd; k++ {
		if k.Text() == "" {
			t.Errorf("punctuator %d has no spelling", k)
		}
	}
	if KwSuper.String() != "'super'" || Ident.String() != "Ident" {
		t.Errorf("unexpected String(): %s %s", KwSuper, Ident)
	}
	if !QQAssign.IsAssign() || EqEq.IsAssign() {
		t.Error("IsAssign is wrong")
	}
}
