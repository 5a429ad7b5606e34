package directive

import (
	"reflect"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lexer"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text  string
		kind  Kind
		rules []string
		ok    bool
	}{
		{text: "// tsrules-disable-line", kind: DisableLine, ok: true},
		{text: "// tsrules-disable-next-line no-null-keyword, no-in-operator", kind: DisableNextLine, rules: []string{"no-null-keyword", "no-in-operator"}, ok: true},
		{text: "/* tsrules-disable boolean-trivia -- legacy API */", kind: Disable, rules: []string{"boolean-trivia"}, ok: true},
		{text: "/*tsrules-enable*/", kind: Enable, ok: true},
		{text: "// tsrules-disablex"},
		{text: "// eslint-disable-line"},
		{text: "// plain"},
	}
	for _, tt := range tests {
		kind, rules, ok := Parse(tt.text)
		if ok != tt.ok || kind != tt.kind || !reflect.DeepEqual(rules, tt.rules) {
			t.Errorf("Parse(%q) = %v %v %v", tt.text, kind, rules, ok)
		}
	}
}

func scan(t *testing.T, src string) (*source.File, *Set) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("a.ts", []byte(src)))
	return f, Scan(f, lexer.Tokenize(f, lexer.Options{}).Comments)
}

func TestSuppresses(t *testing.T) {
	_, set := scan(t, `let a = null; // tsrules-disable-line no-null-keyword
// tsrules-disable-next-line
let b = null;
/* tsrules-disable no-in-operator */
x in y;
/* tsrules-enable no-in-operator */
x in y;
/* tsrules-disable */
f(true);
`)
	if len(set.Directives) != 5 {
		t.Fatalf("directives = %+v", set.Directives)
	}
	tests := []struct {
		rule string
		line uint32
		want bool
	}{
		{"no-null-keyword", 1, true},
		{"boolean-trivia", 1, false},
		{"no-null-keyword", 3, true},
		{"no-null-keyword", 4, false},
		{"no-in-operator", 5, true},
		{"no-in-operator", 7, false},
		{"boolean-trivia", 9, true},
		{"no-in-operator", 100, true},
	}
	for _, tt := range tests {
		if got := set.Suppresses(tt.rule, tt.line); got != tt.want {
			t.Errorf("Suppresses(%s, %d) = %v", tt.rule, tt.line, got)
		}
	}
	if unused := set.Unused(); len(unused) != 0 {
		t.Errorf("unused = %+v", unused)
	}
}

func TestFilter(t *testing.T) {
	f, set := scan(t, "let a = null; // tsrules-disable-line\nlet = ; // tsrules-disable-line\n// tsrules-disable-next-line no-in-operator\nlet b = null;\n")
	span := func(off uint32) source.Span { return source.Span{File: f.ID, Start: off, End: off + 1} }
	diags := []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.LintNullKeyword, span(8), "null"),
		diag.NewError(diag.SynExpectExpression, span(f.LineStart(2)+4), "expected expression"),
		diag.New(diag.SevWarning, diag.LintRuleFailure, span(0), "rule failed"),
		diag.New(diag.SevWarning, diag.LintNullKeyword, span(f.LineStart(4)+8), "null"),
	}
	kept, suppressed := set.Filter(f, diags)
	if suppressed != 1 || len(kept) != 3 {
		t.Fatalf("kept = %+v, suppressed = %d", kept, suppressed)
	}
	if kept[0].Code != diag.SynExpectExpression || kept[1].Code != diag.LintRuleFailure || kept[2].Code != diag.LintNullKeyword {
		t.Errorf("kept codes = %v %v %v", kept[0].Code, kept[1].Code, kept[2].Code)
	}

	unused := set.Unused()
	// директива на строке с синтаксической ошибкой ничего не подавила
	if len(unused) != 2 || unused[0].Line != 2 || unused[1].Line != 3 || unused[1].Kind != DisableNextLine {
		t.Errorf("unused = %+v", unused)
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	if s.Suppresses("x", 1) || s.Unused() != nil {
		t.Fatal("nil set suppresses")
	}
	in := []diag.Diagnostic{{Code: diag.LintNullKeyword}}
	if out, n := s.Filter(nil, in); n != 0 || len(out) != 1 {
		t.Fatal("nil set filtered")
	}
}
