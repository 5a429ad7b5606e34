package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgPreferForOf = "Expected a 'for-of' loop instead of a 'for' loop with this simple iteration"

// PreferForOf reports index loops whose index only reads elements of the
// iterated array.
type PreferForOf struct{}

func (PreferForOf) Meta() lint.Meta {
	return lint.Meta{
		Name:        "prefer-for-of",
		Code:        diag.LintPreferForOf,
		Description: "Recommends a 'for-of' loop over a standard 'for' loop if the index is only used to access the array being iterated.",
		Category:    lint.CategoryControlFlow,
		Severity:    diag.SevWarning,
	}
}

func (PreferForOf) Listen(r *lint.Registrar) {
	r.On(ast.ForStatement, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		index, array, ok := loopHeader(tree, node)
		if !ok {
			return
		}
		binding := c.Scopes().BindingOf(index)
		if !binding.IsValid() {
			return
		}
		loop := tree.Span(node)
		initEnd := tree.Span(tree.Child(node, ast.ForInit)).End
		bodyStart := tree.Span(tree.Child(node, ast.ForBody)).Start
		arrayText := c.Text(array)
		for _, ref := range c.Scopes().ReferencesOf(binding) {
			at := tree.Span(ref.Ident).Start
			switch {
			case ref.Ident != index && at < initEnd:
				return
			case at >= loop.End:
				return
			case at >= bodyStart && !simpleIndexUse(c, ref.Ident, arrayText):
				return
			}
		}
		c.ReportRange(loop.Start, bodyStart, msgPreferForOf)
	})
}

// loopHeader matches `for (let i = 0; i < arr.length; i++)` and returns the
// index identifier and the array expression.
func loopHeader(tree *ast.Tree, loop ast.NodeID) (index, array ast.NodeID, ok bool) {
	init := tree.Child(loop, ast.ForInit)
	test := tree.Child(loop, ast.ForTest)
	update := tree.Child(loop, ast.ForUpdate)
	if !init.IsValid() || !test.IsValid() || !update.IsValid() {
		return 0, 0, false
	}
	if !tree.Is(init, ast.VariableDeclaration) || len(tree.List(init)) != 1 {
		return 0, 0, false
	}
	decl := tree.List(init)[0]
	index = tree.Child(decl, ast.DeclID)
	if !tree.Is(index, ast.Identifier) || !isNumber(tree, tree.Child(decl, ast.DeclInit), "0") {
		return 0, 0, false
	}
	name := tree.Name(index)
	if !isIncremented(tree, update, name) {
		return 0, 0, false
	}
	if !tree.Is(test, ast.BinaryExpression) || tree.Node(test).Op != "<" {
		return 0, 0, false
	}
	if !tree.IsIdent(tree.Child(test, ast.Left), name) {
		return 0, 0, false
	}
	length := tree.Child(test, ast.Right)
	if !tree.Is(length, ast.MemberExpression) || tree.Node(length).Flags.Has(ast.FlagComputed) {
		return 0, 0, false
	}
	if !tree.IsIdent(tree.Child(length, ast.PropertySlot), "length") {
		return 0, 0, false
	}
	return index, tree.Child(length, ast.ObjectSlot), true
}

// isIncremented matches i++, ++i, i += 1, i = i + 1 and i = 1 + i.
func isIncremented(tree *ast.Tree, node ast.NodeID, name string) bool {
	n := tree.Node(node)
	switch n.Kind {
	case ast.UpdateExpression:
		return n.Op == "++" && tree.IsIdent(n.Slots[ast.Operand], name)
	case ast.AssignmentExpression:
		if !tree.IsIdent(n.Slots[ast.Left], name) {
			return false
		}
		right := n.Slots[ast.Right]
		switch n.Op {
		case "+=":
			return isNumber(tree, right, "1")
		case "=":
			sum := tree.Node(right)
			if sum == nil || sum.Kind != ast.BinaryExpression || sum.Op != "+" {
				return false
			}
			l, r := sum.Slots[ast.Left], sum.Slots[ast.Right]
			return tree.IsIdent(l, name) && isNumber(tree, r, "1") ||
				isNumber(tree, l, "1") && tree.IsIdent(r, name)
		}
	}
	return false
}

// simpleIndexUse reports whether ident is used as arr[ident] for reading.
func simpleIndexUse(c *lint.Context, ident ast.NodeID, arrayText string) bool {
	tree := c.Tree()
	member := tree.Parent(ident)
	if !tree.Is(member, ast.MemberExpression) {
		return false
	}
	if isReassignmentTarget(tree, member) {
		return false
	}
	return c.Text(tree.Child(member, ast.ObjectSlot)) == arrayText
}

// isReassignmentTarget reports whether node is written to by its parent.
func isReassignmentTarget(tree *ast.Tree, node ast.NodeID) bool {
	parent := tree.Parent(node)
	p := tree.Node(parent)
	if p == nil {
		return false
	}
	switch p.Kind {
	case ast.UpdateExpression, ast.ArrayPattern, ast.RestElement:
		return true
	case ast.UnaryExpression:
		return p.Op == "delete"
	case ast.AssignmentExpression, ast.AssignmentPattern:
		return p.Slots[ast.Left] == node
	case ast.Property:
		return p.Slots[ast.PropertyValue] == node && tree.Is(p.Parent, ast.ObjectPattern)
	case ast.TSNonNullExpression, ast.TSAsExpression, ast.TSTypeAssertion, ast.TSSatisfiesExpression:
		return isReassignmentTarget(tree, parent)
	case ast.ForInStatement, ast.ForOfStatement:
		return p.Slots[ast.ForEachLeft] == node
	}
	return false
}
