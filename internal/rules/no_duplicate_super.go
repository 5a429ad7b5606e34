package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const (
	msgDuplicateSuper = "Multiple calls to 'super()' found. It must be called only once."
	msgSuperInLoop    = "'super()' called in a loop. It must be called only once."
)

// NoDuplicateSuper reports constructors that may call super() twice.
type NoDuplicateSuper struct{}

func (NoDuplicateSuper) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-duplicate-super",
		Code:        diag.LintDuplicateSuper,
		Description: "Ensures that 'super()' is not called more than once in a constructor.",
		Category:    lint.CategoryControlFlow,
		Severity:    diag.SevError,
	}
}

func (NoDuplicateSuper) Listen(r *lint.Registrar) {
	r.On(ast.MethodDefinition, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		if tree.Node(node).Op != "constructor" {
			return
		}
		fn := tree.Child(node, ast.MethodValue)
		body := tree.Child(fn, ast.FnBody)
		if !body.IsValid() {
			return
		}
		w := superWalker{c: c, tree: tree}
		w.node(body, fn)
	})
}

// outcome is the abstract result of a subtree: no call, a definite return
// or break, or a single call (call is set).
type outcome struct {
	term  terminal
	call  ast.NodeID
	broke bool // за вызовом следует break
}

type terminal uint8

const (
	noSuper terminal = iota
	returns
	breaks
)

func (o outcome) single() bool { return o.call.IsValid() }

// worse merges the outcomes of two exclusive branches.
func worse(a, b outcome) outcome {
	switch {
	case !a.single() && !b.single():
		if a.term < b.term {
			return b
		}
		return a
	case !a.single():
		return b
	case !b.single():
		return a
	case a.broke:
		return b
	}
	return a
}

type superWalker struct {
	c    *lint.Context
	tree *ast.Tree
}

func (w *superWalker) duplicate(first, second ast.NodeID) {
	start := w.tree.Span(first).Start
	end := w.tree.Span(second).End
	w.c.ReportRange(start, end, msgDuplicateSuper)
}

func (w *superWalker) node(id, parent ast.NodeID) outcome {
	kind := w.tree.Kind(id)
	if ast.IsLoop(kind) {
		body := w.sequence(id)
		if !body.single() {
			return outcome{}
		}
		if !body.broke {
			w.c.ReportNode(body.call, msgSuperInLoop)
		}
		body.broke = false
		return body
	}
	switch kind {
	case ast.ReturnStatement, ast.ThrowStatement:
		return outcome{term: returns}
	case ast.BreakStatement:
		return outcome{term: breaks}
	case ast.ClassDeclaration, ast.ClassExpression:
		return outcome{}
	case ast.Super:
		if w.tree.Is(parent, ast.CallExpression) && w.tree.Child(parent, ast.Callee) == id {
			return outcome{call: parent}
		}
		return outcome{}
	case ast.ConditionalExpression:
		test := w.child(id, ast.IfTest)
		cons := w.child(id, ast.IfConsequent)
		alt := w.child(id, ast.IfAlternate)
		// ветви исключают друг друга, но два вызова в них всё равно дубль
		if cons.single() && alt.single() {
			w.duplicate(cons.call, alt.call)
		}
		branches := worse(cons, alt)
		if test.single() && branches.single() {
			w.duplicate(test.call, branches.call)
		}
		return worse(test, branches)
	case ast.IfStatement:
		return worse(w.child(id, ast.IfConsequent), w.child(id, ast.IfAlternate))
	case ast.SwitchStatement:
		return w.switchCases(id)
	}
	return w.sequence(id)
}

// child walks the slot child of id; an absent child has no call.
func (w *superWalker) child(id ast.NodeID, slot int) outcome {
	c := w.tree.Child(id, slot)
	if !c.IsValid() {
		return outcome{}
	}
	return w.node(c, id)
}

// sequence merges the children of id in source order.
func (w *superWalker) sequence(id ast.NodeID) outcome {
	var seen outcome
	for _, c := range w.tree.Children(id) {
		got := w.node(c, id)
		switch {
		case got.single():
			if seen.single() && !seen.broke {
				w.duplicate(seen.call, got.call)
			}
			seen = got
			continue
		case got.term == breaks:
			if seen.single() {
				seen.broke = true
				return seen
			}
			return got
		case got.term == returns:
			return got
		}
	}
	return seen
}

func (w *superWalker) switchCases(id ast.NodeID) outcome {
	var found, open ast.NodeID
	for _, clause := range w.tree.List(id) {
		got := w.sequence(clause)
		switch {
		case got.single():
			if open.IsValid() {
				w.duplicate(open, got.call)
			}
			open = ast.NoNodeID
			if !got.broke {
				open = got.call
			}
			found = got.call
		case got.term == breaks:
			open = ast.NoNodeID
		case got.term == returns:
			return outcome{}
		}
	}
	return outcome{call: found}
}
