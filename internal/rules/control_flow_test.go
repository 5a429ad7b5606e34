package rules

import "testing"

func ctor(body string) string {
	return "class A extends B { constructor() { " + body + " } }"
}

func TestNoDuplicateSuper(t *testing.T) {
	dup := func(text string) hit { return hit{text, msgDuplicateSuper} }
	runCases(t, NoDuplicateSuper{}, []ruleCase{
		{src: ctor("super(); super();"), want: []hit{dup("super(); super()")}},
		{src: ctor("while (x) { super(); }"), want: []hit{{"super()", msgSuperInLoop}}},
		{src: ctor("for (const a of b) { super(); break; }")},
		{src: ctor("switch (x) { case 1: super(); case 2: super(); break; }"), want: []hit{dup("super(); case 2: super()")}},
		{src: ctor("switch (x) { case 1: super(); break; case 2: super(); break; }")},
		{src: ctor("if (x) { super(); } else { super(); }")},
		{src: ctor("if (x) { super(); return; } super();")},
		{src: ctor("if (x) { super(); } super();"), want: []hit{dup("super(); } super()")}},
		{src: ctor("x ? super() : super();"), want: []hit{dup("super() : super()")}},
		{src: ctor("super(); class C extends D { constructor() { super(); } }")},
		{src: ctor("super(); const f = () => super.m();")},
		{src: "class A { m() { super.m(); super.m(); } }"},
	})
}

func TestPreferForOf(t *testing.T) {
	header := "for (let i = 0; i < arr.length; i++) "
	runCases(t, PreferForOf{}, []ruleCase{
		{src: header + "{ use(arr[i]); }", want: []hit{{header, msgPreferForOf}}},
		{src: "for (let i = 0; i < arr.length; i += 1) { arr[i].x(); }", want: []hit{{"for (let i = 0; i < arr.length; i += 1) ", msgPreferForOf}}},
		{src: "for (let i = 0; i < arr.length; i = 1 + i) {}", want: []hit{{"for (let i = 0; i < arr.length; i = 1 + i) ", msgPreferForOf}}},
		{src: header + "{ use(i); }"},
		{src: header + "{ arr[i] = 1; }"},
		{src: header + "{ arr[i]++; }"},
		{src: header + "{ [arr[i]] = pair; }"},
		{src: header + "{ delete arr[i]; }"},
		{src: header + "{ other[i]; }"},
		{src: "for (var i = 0; i < arr.length; i++) { arr[i]; }\ni;"},
		{src: "for (let i = 1; i < arr.length; i++) { arr[i]; }"},
		{src: "for (let i = 0; i <= arr.length; i++) { arr[i]; }"},
		{src: "for (let i = 0; i < arr.size; i++) { arr[i]; }"},
		{src: "for (let i = 0, j = 0; i < arr.length; i++) { arr[i]; }"},
		{src: "for (let i = 0; i < arr.length; i--) { arr[i]; }"},
	})
}
