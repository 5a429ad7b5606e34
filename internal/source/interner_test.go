package source

import "testing"

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("length")
	b := in.Intern("push")
	if a == b || a == NoStringID {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("length"); again != a {
		t.Errorf("re-intern gave %d, want %d", again, a)
	}
	if s := in.MustLookup(b); s != "push" {
		t.Errorf("Lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("expected miss for unknown id")
	}
	if id, ok := in.Find("push"); !ok || id != b {
		t.Error("Find failed")
	}
	if in.Len() != 3 {
		t.Errorf("Len = %d, want 3", in.Len())
	}
}

func TestInternerCopiesInput(t *testing.T) {
	in := NewInterner()
	buf := []byte("abc")
	id := in.Intern(string(buf[:2]))
	buf[0] = 'z'
	if s := in.MustLookup(id); s != "ab" {
		t.Errorf("interned string changed: %q", s)
	}
}
