package scope_test

import (
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func analyze(t *testing.T, src string) *scope.Manager {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	res := parser.ParseFile(fs.Get(id), parser.Options{})
	if !res.OK() {
		t.Fatalf("parse errors in %q", src)
	}
	return scope.Analyze(res.Tree)
}

// findIdent возвращает n-й (с нуля) идентификатор с именем name.
func findIdent(t *testing.T, m *scope.Manager, name string, n int) ast.NodeID {
	t.Helper()
	tree := m.Tree()
	var found ast.NodeID
	tree.Inspect(tree.Root, func(id ast.NodeID) bool {
		if found.IsValid() {
			return false
		}
		if tree.IsIdent(id, name) {
			if n == 0 {
				found = id
				return false
			}
			n--
		}
		return true
	})
	if !found.IsValid() {
		t.Fatalf("identifier %q not found", name)
	}
	return found
}

func TestRootKind(t *testing.T) {
	m := analyze(t, "let x = 1;")
	if k := m.Scope(m.Root()).Kind; k != scope.KindGlobal {
		t.Fatalf("script root = %s", k)
	}
	m = analyze(t, "import { a } from './a'; a;")
	if k := m.Scope(m.Root()).Kind; k != scope.KindModule {
		t.Fatalf("module root = %s", k)
	}
}

func TestVarHoistsToFunctionScope(t *testing.T) {
	m := analyze(t, "function f() { { var x = 1; let y = 2; } return x; }")
	def := findIdent(t, m, "x", 0)
	use := findIdent(t, m, "x", 1)
	b := m.BindingOf(def)
	if !b.IsValid() {
		t.Fatal("x has no binding")
	}
	if got := m.BindingOf(use); got != b {
		t.Fatalf("use resolves to %d, want %d", got, b)
	}
	if k := m.Scope(m.Binding(b).Scope).Kind; k != scope.KindFunction {
		t.Fatalf("var declared in %s scope", k)
	}
	y := m.BindingOf(findIdent(t, m, "y", 0))
	if k := m.Scope(m.Binding(y).Scope).Kind; k != scope.KindBlock {
		t.Fatalf("let declared in %s scope", k)
	}
}

func TestBlockScopedNameInvisibleOutside(t *testing.T) {
	m := analyze(t, "{ let y = 1; } y;")
	use := findIdent(t, m, "y", 1)
	if m.BindingOf(use).IsValid() {
		t.Fatal("y outside of block must be unresolved")
	}
	if len(m.Unresolved()) != 1 {
		t.Fatalf("unresolved = %d", len(m.Unresolved()))
	}
}

func TestForScopeAndReferences(t *testing.T) {
	src := "for (let i = 0; i < arr.length; i++) { arr[i]; }"
	m := analyze(t, src)
	tree := m.Tree()
	forNode := tree.List(tree.Root)[0]
	s, ok := m.Owned(forNode)
	if !ok || m.Scope(s).Kind != scope.KindFor {
		t.Fatal("for statement must own a for scope")
	}
	b := m.Lookup(m.ScopeAt(forNode), "i")
	if !b.IsValid() {
		t.Fatal("i not found from for scope")
	}
	refs := m.ReferencesOf(b)
	// инициализация, проверка, инкремент и arr[i]
	if len(refs) != 4 {
		t.Fatalf("got %d references to i, want 4", len(refs))
	}
	if !refs[0].Flags.Has(scope.RefInit) || !refs[0].IsWrite() {
		t.Errorf("first reference flags = %b, want write+init", refs[0].Flags)
	}
	if !refs[2].IsRead() || !refs[2].IsWrite() {
		t.Errorf("i++ flags = %b, want read+write", refs[2].Flags)
	}
	if refs[3].IsWrite() {
		t.Errorf("arr[i] must be a plain read")
	}
	for i := 1; i < len(refs); i++ {
		if tree.Span(refs[i-1].Ident).Start >= tree.Span(refs[i].Ident).Start {
			t.Fatal("references must be in source order")
		}
	}
}

func TestMemberPropertiesAndKeysAreNotReferences(t *testing.T) {
	m := analyze(t, "const o = { a: 1 }; o.a; o['a']; label: for (;;) { break label; }")
	for _, r := range m.Unresolved() {
		t.Errorf("unexpected unresolved reference %q", m.Tree().Name(r.Ident))
	}
	o := m.BindingOf(findIdent(t, m, "o", 0))
	if n := len(m.ReferencesOf(o)); n != 3 {
		t.Fatalf("o has %d references, want 3 (init + 2 reads)", n)
	}
}

func TestShorthandPropertyIsReference(t *testing.T) {
	m := analyze(t, "const a = 1; const o = { a };")
	a := m.BindingOf(findIdent(t, m, "a", 0))
	refs := m.ReferencesOf(a)
	if len(refs) != 2 || !refs[1].IsRead() {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestDestructuringAssignmentWrites(t *testing.T) {
	m := analyze(t, "let a, b; [a, b] = [b, a]; ({ a } = o);")
	a := m.BindingOf(findIdent(t, m, "a", 0))
	var writes, reads int
	for _, r := range m.ReferencesOf(a) {
		if r.IsWrite() {
			writes++
		}
		if r.IsRead() {
			reads++
		}
	}
	if writes != 2 || reads != 1 {
		t.Fatalf("a: writes=%d reads=%d, want 2 and 1", writes, reads)
	}
}

func TestFunctionDeclarationsAndParams(t *testing.T) {
	m := analyze(t, "g(); function g(p = q, { r }: T) { return p + r; } const q = 1;")
	g := findIdent(t, m, "g", 0)
	if !m.BindingOf(g).IsValid() {
		t.Fatal("hoisted function call must resolve")
	}
	p := m.BindingOf(findIdent(t, m, "p", 0))
	if k := m.Binding(p).Kind; k != scope.BindParam {
		t.Fatalf("p kind = %s", k)
	}
	if k := m.Scope(m.Binding(p).Scope).Kind; k != scope.KindFunction {
		t.Fatalf("params belong to %s scope", k)
	}
	r := m.BindingOf(findIdent(t, m, "r", 0))
	if !r.IsValid() || len(m.ReferencesOf(r)) != 1 {
		t.Fatal("destructured param must be declared and referenced once")
	}
	for _, ref := range m.Unresolved() {
		t.Errorf("unexpected unresolved %q", m.Tree().Name(ref.Ident))
	}
}

func TestTypePositionsAreSkipped(t *testing.T) {
	m := analyze(t, "interface Foo { x: Bar } type Baz = Foo; let v: Foo = w as Baz;")
	unresolved := m.Unresolved()
	if len(unresolved) != 1 || m.Tree().Name(unresolved[0].Ident) != "w" {
		t.Fatalf("only w must be unresolved, got %d", len(unresolved))
	}
	root := m.Root()
	if !m.LookupType(root, "Foo").IsValid() || m.Lookup(root, "Foo").IsValid() {
		t.Fatal("interfaces live in the type namespace only")
	}
}

func TestClassesAndEnums(t *testing.T) {
	m := analyze(t, "class A { m() { return A; } } enum E { X = 1, Y = X } const c = class B { n() { return B; } };")
	root := m.Root()
	for _, name := range []string{"A", "E"} {
		if !m.Lookup(root, name).IsValid() || !m.LookupType(root, name).IsValid() {
			t.Errorf("%s must be in both namespaces", name)
		}
	}
	if m.Lookup(root, "B").IsValid() {
		t.Fatal("class expression name must not leak")
	}
	b := m.BindingOf(findIdent(t, m, "B", 0))
	if len(m.ReferencesOf(b)) != 1 {
		t.Fatal("B must be visible inside its class")
	}
}

func TestCatchAndImports(t *testing.T) {
	m := analyze(t, "import d, { x as y } from 'm'; import * as ns from 'n'; try {} catch (e) { e; y; ns; d; }")
	for _, r := range m.Unresolved() {
		t.Errorf("unexpected unresolved %q", m.Tree().Name(r.Ident))
	}
	if m.Lookup(m.Root(), "x").IsValid() {
		t.Fatal("imported name must not be bound locally when renamed")
	}
	e := m.BindingOf(findIdent(t, m, "e", 0))
	if k := m.Binding(e).Kind; k != scope.BindCatch {
		t.Fatalf("e kind = %s", k)
	}
}

func TestRedeclarationExtendsBinding(t *testing.T) {
	m := analyze(t, "var x = 1; var x = 2;")
	b := m.BindingOf(findIdent(t, m, "x", 0))
	if m.BindingOf(findIdent(t, m, "x", 1)) != b {
		t.Fatal("both declarations must share one binding")
	}
	if len(m.Defs(b)) != 2 {
		t.Fatalf("defs = %d", len(m.Defs(b)))
	}
}
