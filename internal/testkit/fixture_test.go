package testkit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func TestFixtures(t *testing.T) {
	tests := []struct {
		file  string
		fixes bool
	}{
		{file: "syntax.txtar", fixes: true},
		{file: "lexical.txtar"},
		{file: "types.txtar"},
		{file: "config.txtar"},
		{file: "syntax_error.txtar"},
		{file: "directives.txtar"},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSuffix(tt.file, ".txtar"), func(t *testing.T) {
			path := filepath.Join("testdata", tt.file)
			if tt.fixes {
				RunWithFixes(t, path)
			} else {
				Run(t, path)
			}
		})
	}
}

func TestTypedFixtureBuildsModel(t *testing.T) {
	if res := Run(t, filepath.Join("testdata", "types.txtar")); !res.Typed {
		t.Error("types fixture ran without a semantic model")
	}
	if res := Run(t, filepath.Join("testdata", "config.txtar")); res.Typed {
		t.Error("config fixture disables the semantic model")
	}
}

func TestParseWant(t *testing.T) {
	tests := []struct {
		comment string
		want    []string
		err     bool
	}{
		{comment: "// plain comment"},
		{comment: `// want "a" ` + "`b.c`", want: []string{"a", "b.c"}},
		{comment: `// want "unterminated`, err: true},
		{comment: `// want "("`, err: true},
		{comment: "// want ", err: true},
	}
	for _, tt := range tests {
		got, err := parseWant(tt.comment)
		if (err != nil) != tt.err {
			t.Errorf("parseWant(%q) error = %v", tt.comment, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseWant(%q) = %v, want %v", tt.comment, got, tt.want)
			continue
		}
		for i := range got {
			if got[i].String() != tt.want[i] {
				t.Errorf("parseWant(%q)[%d] = %q", tt.comment, i, got[i])
			}
		}
	}
}

func TestCompare(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("let a = null;\nf(true);\n"))
	rel := func(p string) string { return p }
	wants, err := Expectations(fs, []source.FileID{id}, rel)
	if err != nil || len(wants) != 0 {
		t.Fatalf("wants = %v, err = %v", wants, err)
	}

	d := diag.New(diag.SevWarning, diag.LintNullKeyword, source.Span{File: id, Start: 8, End: 12}, "Use 'undefined' instead of 'null'")
	problems := Compare(fs, []diag.Diagnostic{d}, nil, rel)
	if len(problems) != 1 || !strings.Contains(problems[0], "unexpected diagnostic LNT3300") {
		t.Fatalf("problems = %v", problems)
	}

	fs = source.NewFileSet()
	id = fs.AddVirtual("b.ts", []byte("let a = null; // want \"no-null-keyword\" \"never\"\n"))
	wants, err = Expectations(fs, []source.FileID{id}, rel)
	if err != nil || len(wants) != 2 {
		t.Fatalf("wants = %v, err = %v", wants, err)
	}
	d.Primary.File = id
	problems = Compare(fs, []diag.Diagnostic{d}, wants, rel)
	if len(problems) != 1 || !strings.Contains(problems[0], `"never"`) {
		t.Fatalf("problems = %v", problems)
	}
}

func TestCheckSpanInvariants(t *testing.T) {
	srcs := []string{
		"let a = 1;",
		"class C extends B { constructor() { super(); } m(x: number): string { return `${x}`; } }",
		"for (let i = 0; i < xs.length; i++) { const v = xs[i]; }",
		"import { a as b } from \"m\"; export const c = <string>b;",
		"",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		f := fs.Get(fs.AddVirtual("x.ts", []byte(src)))
		res := parser.ParseFile(f, parser.Options{})
		if !res.OK() {
			t.Fatalf("%q does not parse", src)
		}
		if err := CheckSpanInvariants(res.Tree, f); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}

	if err := CheckSpanInvariants(nil, nil); err == nil {
		t.Error("nil tree accepted")
	}

	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("x.ts", []byte("let a = 1;")))
	res := parser.ParseFile(f, parser.Options{})
	// ломаем спан ребёнка корня
	stmt := res.Tree.List(res.Tree.Root)[0]
	res.Tree.Node(stmt).Span.End = 100
	if err := CheckSpanInvariants(res.Tree, f); err == nil {
		t.Error("out-of-parent span accepted")
	}
}
