package lint

import (
	"context"
	"strings"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

type funcRule struct {
	meta   Meta
	listen func(r *Registrar)
}

func (f funcRule) Meta() Meta          { return f.meta }
func (f funcRule) Listen(r *Registrar) { f.listen(r) }

func rule(name string, listen func(r *Registrar)) Enabled {
	return Enabled{
		Rule:     funcRule{meta: Meta{Name: name, Code: diag.LintInfo}, listen: listen},
		Severity: diag.SevWarning,
	}
}

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if !res.OK() {
		t.Fatalf("parse errors in %q", src)
	}
	return NewFile(res, nil, semantic.Bridge{})
}

func run(t *testing.T, file *File, rules ...Enabled) *Result {
	t.Helper()
	res, err := Run(context.Background(), file, rules)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func TestEnterExitOrder(t *testing.T) {
	file := parseFile(t, "a(b);")
	var log []string
	rec := func(tag string) Listener {
		return func(c *Context, n ast.NodeID) {
			log = append(log, tag+":"+c.Tree().Kind(n).String())
		}
	}
	first := rule("first", func(r *Registrar) {
		r.On(ast.CallExpression, rec("1in"))
		r.OnExit(ast.CallExpression, rec("1out"))
		r.On(ast.Identifier, rec("1id"))
	})
	second := rule("second", func(r *Registrar) {
		r.On(ast.CallExpression, rec("2in"))
		r.OnExit(ast.CallExpression, rec("2out"))
	})
	run(t, file, first, second)

	want := "1in:CallExpression 2in:CallExpression 1id:Identifier 1id:Identifier 1out:CallExpression 2out:CallExpression"
	if got := strings.Join(log, " "); got != want {
		t.Fatalf("order:\n got  %s\n want %s", got, want)
	}
}

func TestAncestorsAndParent(t *testing.T) {
	file := parseFile(t, "f(x.y);")
	var chain []string
	var parent ast.Kind
	r := rule("anc", func(r *Registrar) {
		r.On(ast.Identifier, func(c *Context, n ast.NodeID) {
			if c.Tree().Name(n) != "y" {
				return
			}
			for _, a := range c.Ancestors() {
				chain = append(chain, c.Tree().Kind(a).String())
			}
			parent = c.Tree().Kind(c.Parent())
			if c.Closest(ast.CallExpression) == ast.NoNodeID {
				t.Error("expected enclosing call")
			}
		})
	})
	run(t, file, r)
	want := "Program ExpressionStatement CallExpression MemberExpression"
	if got := strings.Join(chain, " "); got != want {
		t.Fatalf("ancestors: got %q want %q", got, want)
	}
	if parent != ast.MemberExpression {
		t.Fatalf("parent = %v", parent)
	}
}

func TestScopeCursor(t *testing.T) {
	file := parseFile(t, "let a = 1; function f(p) { return p + a; }")
	kinds := map[string]scope.Kind{}
	r := rule("scope", func(r *Registrar) {
		r.On(ast.Identifier, func(c *Context, n ast.NodeID) {
			s := c.Scopes().Scope(c.Scope())
			kinds[c.Tree().Name(n)+c.Tree().Kind(c.Parent()).String()] = s.Kind
		})
	})
	run(t, file, r)
	if k := kinds["aVariableDeclarator"]; k != scope.KindGlobal {
		t.Errorf("declaration of a in %v", k)
	}
	if k := kinds["pBinaryExpression"]; k != scope.KindFunction {
		t.Errorf("use of p in %v", k)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	file := parseFile(t, "a; b;")
	ring := trace.NewRingTracer(16, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)

	boom := rule("boom", func(r *Registrar) {
		r.On(ast.Identifier, func(c *Context, n ast.NodeID) {
			if c.Tree().Name(n) == "a" {
				panic("bad tree")
			}
		})
	})
	seen := 0
	counter := rule("counter", func(r *Registrar) {
		r.On(ast.Identifier, func(c *Context, n ast.NodeID) {
			seen++
			c.ReportNode(n, "ident")
		})
	})
	res, err := Run(ctx, file, []Enabled{boom, counter})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 2 || len(res.Diagnostics) != 2 {
		t.Fatalf("traversal stopped: seen=%d diags=%d", seen, len(res.Diagnostics))
	}
	if len(res.Failures) != 1 || res.Failures[0].Rule != "boom" || res.Failures[0].Value != "bad tree" {
		t.Fatalf("failures = %+v", res.Failures)
	}
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != trace.KindFailure {
		t.Fatalf("expected one failure event, got %+v", events)
	}
}

func TestListenPanicIsRecorded(t *testing.T) {
	file := parseFile(t, "a;")
	bad := rule("bad", func(r *Registrar) { panic("no") })
	res := run(t, file, bad)
	if len(res.Failures) != 1 || res.Failures[0].Rule != "bad" {
		t.Fatalf("failures = %+v", res.Failures)
	}
}

func TestTypeAwareRulesSkippedWithoutProgram(t *testing.T) {
	file := parseFile(t, "a;")
	called := false
	typed := Enabled{Rule: funcRule{
		meta:   Meta{Name: "typed", RequiresTypes: true},
		listen: func(r *Registrar) { called = true },
	}}
	res := run(t, file, typed)
	if called {
		t.Fatal("type-aware rule instantiated without a program")
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != "typed" {
		t.Fatalf("skipped = %v", res.Skipped)
	}
}

func TestReportsAreDeterministic(t *testing.T) {
	src := "let a = b; c(d, e); function f() { return g; }"
	collect := func() []diag.Diagnostic {
		file := parseFile(t, src)
		r := rule("idents", func(r *Registrar) {
			r.OnExit(ast.Identifier, func(c *Context, n ast.NodeID) {
				c.ReportNode(n, c.Text(n))
			})
		})
		return run(t, file, r).Diagnostics
	}
	a, b := collect(), collect()
	if len(a) != len(b) || len(a) == 0 {
		t.Fatalf("lengths %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Primary != b[i].Primary || a[i].Message != b[i].Message {
			t.Fatalf("diagnostic %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if i > 0 && a[i].Primary.Start < a[i-1].Primary.Start {
			t.Fatalf("diagnostics not in source order")
		}
	}
	if a[0].Severity != diag.SevWarning || a[0].Code != diag.LintInfo {
		t.Fatalf("unexpected severity/code %v %v", a[0].Severity, a[0].Code)
	}
}

func TestRegistry(t *testing.T) {
	a := funcRule{meta: Meta{Name: "b-rule"}}
	b := funcRule{meta: Meta{Name: "a-rule"}}
	reg, err := NewRegistry(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(a); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if got := reg.Names(); got[0] != "a-rule" || got[1] != "b-rule" {
		t.Fatalf("names %v", got)
	}
	if rules := reg.Rules(); rules[0].Meta().Name != "b-rule" {
		t.Fatal("registration order lost")
	}
	if _, ok := reg.Lookup("a-rule"); !ok {
		t.Fatal("lookup failed")
	}
	if got := Defaults(reg); len(got) != 2 {
		t.Fatalf("defaults %d", len(got))
	}
}
