package rules

import "testing"

func TestNoUnnecessaryTypeAssertion(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		opts  []string
		text  string // пусто: диагностик нет
		fixed string
	}{
		{name: "as", src: "let x = \"a\";\nx as string;", text: "x as string", fixed: "let x = \"a\";\nx;"},
		{name: "angle", src: "let x = \"a\";\n<string>x;", text: "<string>x", fixed: "let x = \"a\";\nx;"},
		{name: "parenthesized", src: "let x = \"a\";\n(x) as string;", text: "(x) as string", fixed: "let x = \"a\";\n(x);"},
		{name: "non-null", src: "function g(s: string) { s!; }", text: "s!", fixed: "function g(s: string) { s; }"},
		{name: "optional non-null", src: "function g(s?: string) { s!; }"},
		{name: "changes type", src: "let y: string | number = 1;\ny as string;"},
		{name: "literal", src: "const z = \"a\";\nz as \"a\";"},
		{name: "tuple", src: "const t: [string, number] = [\"a\", 1];\nt as [string, number];"},
		{name: "tuple-shaped object", src: "const o: {0: string, 1: number} = {0: \"a\", 1: 1};\no as {0: string, 1: number};"},
		{name: "ignored", src: "let x = \"a\";\nx as string;", opts: []string{"string"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lintWith(t, NoUnnecessaryTypeAssertion{}, tt.src, true, tt.opts...)
			if tt.text == "" {
				expectHits(t, tt.src, got.hits())
				return
			}
			expectHits(t, tt.src, got.hits(), hit{tt.text, msgUnnecessaryAssertion})
			if out := got.fixed(t); out != tt.fixed {
				t.Errorf("fixed:\n got  %q\n want %q", out, tt.fixed)
			}
		})
	}
}

func TestNoForInArray(t *testing.T) {
	bad := []string{
		"const xs = [1, 2];\nfor (const k in xs) {}",
		"const s = \"ab\";\nfor (const k in s) {}",
	}
	for _, src := range bad {
		got := lintWith(t, NoForInArray{}, src, true).hits()
		if len(got) != 1 || got[0].msg != msgForInArray {
			t.Errorf("%q: %v", src, got)
		}
	}
	good := "const o = { a: 1 };\nfor (const k in o) {}\nfor (const v of [1]) {}"
	expectHits(t, good, lintWith(t, NoForInArray{}, good, true).hits())
}
