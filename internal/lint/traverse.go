package lint

import (
	"fmt"
	"runtime/debug"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

type entry struct {
	ctx *Context
	fn  Listener
}

// Table maps node kinds to listeners in registration order.
type Table struct {
	enter map[ast.Kind][]entry
	exit  map[ast.Kind][]entry
	count int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		enter: make(map[ast.Kind][]entry),
		exit:  make(map[ast.Kind][]entry),
	}
}

func (t *Table) add(exit bool, kind ast.Kind, ctx *Context, fn Listener) {
	if fn == nil {
		return
	}
	if exit {
		t.exit[kind] = append(t.exit[kind], entry{ctx: ctx, fn: fn})
	} else {
		t.enter[kind] = append(t.enter[kind], entry{ctx: ctx, fn: fn})
	}
	t.count++
}

// bind направляет контексты всех слушателей на текущий обход.
func (t *Table) bind(w *walker) {
	for _, list := range [2]map[ast.Kind][]entry{t.enter, t.exit} {
		for _, entries := range list {
			for _, e := range entries {
				e.ctx.walk = w
			}
		}
	}
}

// Len returns the number of registered listeners.
func (t *Table) Len() int { return t.count }

// Failure is a recovered listener panic.
type Failure struct {
	Rule  string
	Node  ast.NodeID
	Kind  ast.Kind
	Exit  bool
	Value string
	Stack string
}

func (f Failure) String() string {
	phase := "enter"
	if f.Exit {
		phase = "exit"
	}
	return fmt.Sprintf("%s: %s %s #%d: %s", f.Rule, phase, f.Kind, f.Node, f.Value)
}

// walker: состояние одного обхода: стек предков, курсор области видимости, сбор результатов.
type walker struct {
	file    *File
	table   *Table
	tracer  trace.Tracer
	current ast.NodeID
	stack   []ast.NodeID
	scope   scope.ScopeID

	diags    []diag.Diagnostic
	failures []Failure
}

func newWalker(file *File, table *Table, tracer trace.Tracer) *walker {
	if tracer == nil {
		tracer = trace.Nop
	}
	w := &walker{file: file, table: table, tracer: tracer}
	if file.Scopes != nil {
		w.scope = file.Scopes.Root()
	}
	return w
}

func (w *walker) report(d diag.Diagnostic) {
	w.diags = append(w.diags, d)
}

// Traverse walks the tree of file once, depth first, children in key
// order. Enter listeners run before the children, exit listeners after.
// No node is mutated.
func Traverse(file *File, table *Table, tracer trace.Tracer) ([]diag.Diagnostic, []Failure) {
	w := newWalker(file, table, tracer)
	table.bind(w)
	if file.Tree != nil && file.Tree.Root.IsValid() {
		w.visit(file.Tree.Root)
	}
	return w.diags, w.failures
}

func (w *walker) visit(id ast.NodeID) {
	n := w.file.Tree.Node(id)
	if n == nil {
		return
	}
	saved := w.scope
	if w.file.Scopes != nil {
		if s, ok := w.file.Scopes.Owned(id); ok {
			w.scope = s
		}
	}

	w.dispatch(w.table.enter[n.Kind], id, false)
	w.stack = append(w.stack, id)
	n.Children(w.visit)
	w.stack = w.stack[:len(w.stack)-1]
	w.dispatch(w.table.exit[n.Kind], id, true)

	w.scope = saved
}

func (w *walker) dispatch(entries []entry, id ast.NodeID, exit bool) {
	for _, e := range entries {
		w.current = id
		w.invoke(e, id, exit)
	}
}

func (w *walker) invoke(e entry, id ast.NodeID, exit bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f := Failure{
			Rule:  e.ctx.meta.Name,
			Node:  id,
			Kind:  w.file.Tree.Kind(id),
			Exit:  exit,
			Value: fmt.Sprint(r),
			Stack: string(debug.Stack()),
		}
		w.failures = append(w.failures, f)
		trace.Failure(w.tracer, "rule-panic", f.String(), map[string]string{
			"rule": f.Rule,
			"file": w.path(),
		})
	}()
	e.fn(e.ctx, id)
}

func (w *walker) path() string {
	if w.file.Source == nil || w.file.Source.File == nil {
		return ""
	}
	return w.file.Source.File.Path
}
