package checker_test

import (
	"context"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/checker"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

type checked struct {
	prog  *checker.Program
	trees map[string]*ast.Tree
	ids   map[string]source.FileID
}

// check разбирает пары путь/исходник и проверяет их одной программой.
func check(t *testing.T, pairs ...string) *checked {
	t.Helper()
	fs := source.NewFileSet()
	out := &checked{trees: map[string]*ast.Tree{}, ids: map[string]source.FileID{}}
	var units []checker.Unit
	for i := 0; i+1 < len(pairs); i += 2 {
		id := fs.AddVirtual(pairs[i], []byte(pairs[i+1]))
		res := parser.ParseFile(fs.Get(id), parser.Options{})
		if !res.OK() {
			t.Fatalf("parse errors in %s", pairs[i])
		}
		units = append(units, checker.Unit{File: fs.Get(id), Tree: res.Tree})
		out.trees[pairs[i]] = res.Tree
		out.ids[pairs[i]] = id
	}
	prog, err := checker.Check(context.Background(), ".", nil, units)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	out.prog = prog
	return out
}

// find возвращает n-й узел вида kind в файле.
func (c *checked) find(t *testing.T, file string, kind ast.Kind, n int) ast.NodeID {
	t.Helper()
	tree := c.trees[file]
	var found ast.NodeID
	tree.Inspect(tree.Root, func(id ast.NodeID) bool {
		if found.IsValid() {
			return false
		}
		if tree.Kind(id) == kind {
			if n == 0 {
				found = id
				return false
			}
			n--
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("%s: no %s #%d", file, kind, n)
	}
	return found
}

// stmt возвращает выражение n-й инструкции верхнего уровня.
func (c *checked) stmt(t *testing.T, file string, n int) ast.NodeID {
	t.Helper()
	tree := c.trees[file]
	list := tree.List(tree.Root)
	if n >= len(list) || !tree.Is(list[n], ast.ExpressionStatement) {
		t.Fatalf("%s: statement %d is not an expression statement", file, n)
	}
	return tree.Child(list[n], 0)
}

func (c *checked) typeAt(t *testing.T, file string, node ast.NodeID) types.TypeID {
	t.Helper()
	id, ok := c.prog.TypeAt(c.ids[file], node)
	if !ok {
		t.Fatalf("%s: node %s has no type", file, c.trees[file].Kind(node))
	}
	return id
}

func (c *checked) typeString(t *testing.T, file string, node ast.NodeID) string {
	t.Helper()
	return c.prog.Types().TypeString(c.typeAt(t, file, node))
}

func TestLetWidensLiteral(t *testing.T) {
	c := check(t, "a.ts", "let x = \"a\";\nx as string;")
	as := c.find(t, "a.ts", ast.TSAsExpression, 0)
	inner := c.trees["a.ts"].Child(as, ast.AssertExpr)
	if c.typeAt(t, "a.ts", inner) != c.typeAt(t, "a.ts", as) {
		t.Fatalf("x = %s, x as string = %s", c.typeString(t, "a.ts", inner), c.typeString(t, "a.ts", as))
	}
}

func TestConstKeepsLiteral(t *testing.T) {
	c := check(t, "a.ts", "const x = \"a\";\nx;")
	if got := c.typeString(t, "a.ts", c.stmt(t, "a.ts", 1)); got != `"a"` {
		t.Fatalf("const x: %s", got)
	}
}

func TestExpressionTypes(t *testing.T) {
	tests := []struct {
		src  string
		stmt int
		want string
	}{
		{"const t: [string, number] = [\"a\", 1];\nt;", 1, "[string, number]"},
		{"const o = { a: 1, b: \"x\" };\no.a;", 1, "number"},
		{"function f() { return 1; }\nf();", 1, "number"},
		{"const xs = [1, 2];\nxs;", 1, "number[]"},
		{"const o = [1, \"a\"] as const;\no;", 1, `readonly [1, "a"]`},
		{"let n = 1 + 2;\nn;", 1, "number"},
		{"const s = `a${1}`;\ns;", 1, "string"},
		{"enum E { A, B }\nE.A;", 1, "E"},
		{"class A { x = 1; m(): string { return \"\"; } }\nconst a = new A();\na.x;", 2, "number"},
		{"class A { x = 1; m(): string { return \"\"; } }\nconst a = new A();\na.m();", 2, "string"},
		{"class B { y: boolean = true; }\nclass A extends B {}\nnew A().y;", 2, "boolean"},
		{"async function g() { return 1; }\ng();", 1, "Promise<number>"},
		{"const d = new Date();\nd;", 1, "Date"},
		{"typeof 1;", 0, "string"},
		{"!0;", 0, "boolean"},
		{"-1;", 0, "-1"},
	}
	for _, tt := range tests {
		c := check(t, "a.ts", tt.src)
		if got := c.typeString(t, "a.ts", c.stmt(t, "a.ts", tt.stmt)); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestForOfElement(t *testing.T) {
	c := check(t, "a.ts", "const xs = [1, 2];\nfor (const v of xs) { v; }\nfor (const k in xs) { k; }")
	tree := c.trees["a.ts"]
	v := tree.Child(c.find(t, "a.ts", ast.ExpressionStatement, 0), 0)
	if got := c.typeString(t, "a.ts", v); got != "number" {
		t.Fatalf("for-of element: %s", got)
	}
	k := tree.Child(c.find(t, "a.ts", ast.ExpressionStatement, 1), 0)
	if got := c.typeString(t, "a.ts", k); got != "string" {
		t.Fatalf("for-in key: %s", got)
	}
}

func TestInterfaceMerge(t *testing.T) {
	c := check(t, "a.ts", "interface P { a: string }\ninterface P { b: number }\nfunction use(p: P) { p.b; p.a; }")
	tree := c.trees["a.ts"]
	b := tree.Child(c.find(t, "a.ts", ast.ExpressionStatement, 0), 0)
	a := tree.Child(c.find(t, "a.ts", ast.ExpressionStatement, 1), 0)
	if got := c.typeString(t, "a.ts", b); got != "number" {
		t.Fatalf("p.b: %s", got)
	}
	if got := c.typeString(t, "a.ts", a); got != "string" {
		t.Fatalf("p.a: %s", got)
	}
}

func TestNonNullRemovesUndefined(t *testing.T) {
	c := check(t, "a.ts", "function g(s?: string) { s!; }")
	nn := c.find(t, "a.ts", ast.TSNonNullExpression, 0)
	inner := c.trees["a.ts"].Child(nn, ast.AssertExpr)
	in := c.prog.Types()
	outer := c.typeAt(t, "a.ts", nn)
	if outer == c.typeAt(t, "a.ts", inner) {
		t.Fatalf("s and s! share type %s", in.TypeString(outer))
	}
	if in.NonNullable(outer) != outer || in.TypeString(outer) != "string" {
		t.Fatalf("s! = %s", in.TypeString(outer))
	}
}

func TestCrossFileImports(t *testing.T) {
	c := check(t,
		"src/a.ts", "export const n: number = 1;\nexport default function make(): string { return \"\"; }",
		"src/b.ts", "import make, { n } from \"./a\";\nn;\nmake();",
		"src/c.ts", "export * from \"./a\";",
		"src/d.ts", "import { n as m } from \"./c\";\nm;",
	)
	if got := c.typeString(t, "src/b.ts", c.stmt(t, "src/b.ts", 1)); got != "number" {
		t.Fatalf("imported n: %s", got)
	}
	if got := c.typeString(t, "src/b.ts", c.stmt(t, "src/b.ts", 2)); got != "string" {
		t.Fatalf("default import call: %s", got)
	}
	if got := c.typeString(t, "src/d.ts", c.stmt(t, "src/d.ts", 1)); got != "number" {
		t.Fatalf("re-exported n: %s", got)
	}
}

func TestUnknownStaysAbsent(t *testing.T) {
	for _, src := range []string{
		"foo.bar;",
		"function id<T>(x: T): T { return x; }\nid(1);",
		"const e = [];\ne;",
	} {
		c := check(t, "a.ts", src)
		list := c.trees["a.ts"].List(c.trees["a.ts"].Root)
		node := c.trees["a.ts"].Child(list[len(list)-1], 0)
		if id, ok := c.prog.TypeAt(c.ids["a.ts"], node); ok {
			t.Errorf("%q: unexpected type %s", src, c.prog.Types().TypeString(id))
		}
	}
}

func TestTypeNodes(t *testing.T) {
	c := check(t, "a.ts", "type Pair = [string, number?];\nlet p: Pair;\nlet q: ReadonlyArray<string>;\nlet r: { a: string; b?: number };")
	in := c.prog.Types()
	pair := c.typeAt(t, "a.ts", c.find(t, "a.ts", ast.TSTupleType, 0))
	if got := in.TypeString(pair); got != "[string, number?]" {
		t.Fatalf("tuple: %s", got)
	}
	arr := c.typeAt(t, "a.ts", c.find(t, "a.ts", ast.TSTypeReference, 1))
	if got := in.TypeString(arr); got != "readonly string[]" || !in.IsArray(arr) {
		t.Fatalf("ReadonlyArray: %s", got)
	}
	lit := c.typeAt(t, "a.ts", c.find(t, "a.ts", ast.TSTypeLiteral, 0))
	if !in.IsObject(lit) || len(in.Properties(lit)) != 2 {
		t.Fatalf("type literal: %s", in.TypeString(lit))
	}
}

func TestCheckCanceled(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.ts", []byte("let x = 1;"))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := checker.Check(ctx, ".", nil, []checker.Unit{{File: fs.Get(id), Tree: res.Tree}}); err == nil {
		t.Fatal("expected context error")
	}
}
