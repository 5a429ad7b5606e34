package rules

import "testing"

func TestNoNullKeyword(t *testing.T) {
	runCases(t, NoNullKeyword{}, []ruleCase{
		{src: "let a = null;", want: []hit{{"null", msgNullKeyword}}},
		{src: "if (a == null) {}", want: []hit{{"null", msgNullKeyword}}},
		{src: "if (a !== null) {}"},
		{src: "let b: string | null;"},
	})

	got := lintSrc(t, NoNullKeyword{}, "if (a != null) {}\nf(null);")
	if out := got.fixed(t); out != "if (a != undefined) {}\nf(null);" {
		t.Fatalf("fixed: %q", out)
	}
}

func TestBooleanTrivia(t *testing.T) {
	runCases(t, BooleanTrivia{}, []ruleCase{
		{src: "f(true);", want: []hit{{"true", msgTagArgument}}},
		{src: "f(x, undefined);", want: []hit{{"undefined", msgTagArgument}}},
		{src: "f(/*flag*/ true);"},
		{src: "f(/*flag*/true);", want: []hit{{"true", msgTriviaSpacing}}},
		{src: "f(/*flag*/\n  true);"},
		{src: "f(// flag\n  true);", want: []hit{{"true", msgTagArgument}}},
		{src: "f(/*a*/ /*b*/ true);", want: []hit{{"true", msgTagArgument}}},
		{src: "f(1, \"s\", x);"},
		{src: "setVisible(false);"},
		{src: "getOption(null);"},
		{src: "x.assertOk(true);"},
		{src: "fn.call(null, true);"},
		{src: "o.m(true);", want: []hit{{"true", msgTagArgument}}},
	})
}

func TestDebugAssert(t *testing.T) {
	runCases(t, DebugAssert{}, []ruleCase{
		{src: "Debug.assert(x);"},
		{src: "Debug.assert(x, \"msg\");"},
		{src: "Debug.assert(x, msg);", want: []hit{{"msg", msgAssertSecondArg}}},
		{src: "Debug.assert(x, \"m\", () => \"more\");"},
		{src: "Debug.assert(x, \"m\", more);", want: []hit{{"more", msgAssertThirdArg}}},
		{src: "Debug.assert(x, 1, 2);", want: []hit{{"1", msgAssertSecondArg}, {"2", msgAssertThirdArg}}},
		{src: "Other.assert(x, msg);"},
	})
}

func TestNoConstruct(t *testing.T) {
	runCases(t, NoConstruct{}, []ruleCase{
		{src: "const s = new String(\"a\");", want: []hit{{"new String", msgConstruct}}},
		{src: "new Boolean(true); new Number(1);", want: []hit{{"new Boolean", msgConstruct}, {"new Number", msgConstruct}}},
		{src: "new Map(); String(1);"},
	})
}

func TestNoInOperator(t *testing.T) {
	runCases(t, NoInOperator{}, []ruleCase{
		{src: "if (\"a\" in o) {}", want: []hit{{"\"a\" in o", msgInOperator}}},
		{src: "for (const k in o) {}"},
	})
}

func TestNoIncrementDecrement(t *testing.T) {
	runCases(t, NoIncrementDecrement{}, []ruleCase{
		{src: "i++; --j;"},
		{src: "for (let i = 0; i < n; i++) {}"},
		{src: "for (;; i++, j--) {}"},
		{src: "x = i++;", want: []hit{{"i++", msgIncrementDecrement}}},
		{src: "f(++i);", want: []hit{{"++i", msgIncrementDecrement}}},
		{src: "a = 1, i++;", want: []hit{{"i++", msgIncrementDecrement}}},
	})
}

func TestNoStringLiteral(t *testing.T) {
	runCases(t, NoStringLiteral{}, []ruleCase{
		{src: "o[\"abc\"];", want: []hit{{"\"abc\"", msgStringLiteralAccess}}},
		{src: "o[\"a-b\"]; o[\"1a\"]; o[k]; o[0]; o.abc;"},
		{src: "o[\"a\\u0062\"];"},
	})

	fixes := map[string]string{
		"o[\"abc\"];":     "o.abc;",
		"(o)['abc'];":     "(o).abc;",
		"o?.[\"abc\"];":   "o?.abc;",
		"a.b[\"$c_1\"]();": "a.b.$c_1();",
	}
	for src, want := range fixes {
		if got := lintSrc(t, NoStringLiteral{}, src).fixed(t); got != want {
			t.Errorf("%q fixed to %q, want %q", src, got, want)
		}
	}
}
