package rules

import (
	"context"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/checker"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// hit is a reported diagnostic reduced to the text under its span.
type hit struct {
	text string
	msg  string
}

type linted struct {
	content []byte
	diags   []diag.Diagnostic
}

func (l linted) hits() []hit {
	out := make([]hit, 0, len(l.diags))
	for _, d := range l.diags {
		out = append(out, hit{text: string(l.content[d.Primary.Start:d.Primary.End]), msg: d.Message})
	}
	return out
}

// fixed applies the first fix of every diagnostic.
func (l linted) fixed(t *testing.T) string {
	t.Helper()
	var fixes []diag.Fix
	for _, d := range l.diags {
		if len(d.Fixes) > 0 {
			fixes = append(fixes, d.Fixes[0])
		}
	}
	out, err := fix.ApplyText(l.content, fixes)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return string(out)
}

// lintWith разбирает src и прогоняет одно правило; typed строит программу.
func lintWith(t *testing.T, r lint.Rule, src string, typed bool, opts ...string) linted {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	file := fs.Get(id)
	res := parser.ParseFile(file, parser.Options{})
	if !res.OK() {
		t.Fatalf("parse errors in %q", src)
	}
	scopes := scope.Analyze(res.Tree)
	var bridge semantic.Bridge
	if typed {
		prog, err := checker.Check(context.Background(), ".", nil,
			[]checker.Unit{{File: file, Tree: res.Tree, Scopes: scopes}})
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		bridge = semantic.NewBridge(prog, id)
	}
	out, err := lint.Run(context.Background(), lint.NewFile(res, scopes, bridge),
		[]lint.Enabled{{Rule: r, Severity: r.Meta().Severity, Options: opts}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Failures) > 0 {
		t.Fatalf("rule failures: %v", out.Failures)
	}
	return linted{content: file.Content, diags: out.Diagnostics}
}

func lintSrc(t *testing.T, r lint.Rule, src string, opts ...string) linted {
	t.Helper()
	return lintWith(t, r, src, false, opts...)
}

func expectHits(t *testing.T, src string, got []hit, want ...hit) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%q: got %d diagnostics %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: diagnostic %d = %+v, want %+v", src, i, got[i], want[i])
		}
	}
}

type ruleCase struct {
	src  string
	opts []string
	want []hit
}

func runCases(t *testing.T, r lint.Rule, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		expectHits(t, tc.src, lintSrc(t, r, tc.src, tc.opts...).hits(), tc.want...)
	}
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 16 {
		t.Fatalf("registered %d rules", reg.Len())
	}
	for _, r := range reg.Rules() {
		m := r.Meta()
		if m.Code.Title() != m.Name {
			t.Errorf("%s: code %s is titled %q", m.Name, m.Code.ID(), m.Code.Title())
		}
		if !m.Code.IsLint() {
			t.Errorf("%s: code %s outside the rule range", m.Name, m.Code.ID())
		}
		if m.Description == "" {
			t.Errorf("%s: no description", m.Name)
		}
	}
}

func TestTypedRulesSkippedWithoutProgram(t *testing.T) {
	for _, r := range []lint.Rule{NoUnnecessaryTypeAssertion{}, NoForInArray{}} {
		got := lintSrc(t, r, "let x = \"a\";\nx as string;\nfor (const k in [1]) {}")
		if len(got.diags) != 0 {
			t.Errorf("%s reported without a program: %v", r.Meta().Name, got.hits())
		}
	}
}
