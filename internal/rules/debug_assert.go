package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const (
	msgAssertSecondArg = "Second argument to 'Debug.assert' should be a string literal."
	msgAssertThirdArg  = "Third argument to 'Debug.assert' should be a string literal or arrow function."
)

// DebugAssert checks the message arguments of Debug.assert calls.
type DebugAssert struct{}

func (DebugAssert) Meta() lint.Meta {
	return lint.Meta{
		Name:        "debug-assert",
		Code:        diag.LintDebugAssert,
		Description: "Lint debug statements.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
	}
}

func (DebugAssert) Listen(r *lint.Registrar) {
	r.On(ast.CallExpression, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		callee := tree.Child(node, ast.Callee)
		if !tree.Is(callee, ast.MemberExpression) ||
			!tree.IsIdent(tree.Child(callee, ast.ObjectSlot), "Debug") ||
			!tree.IsIdent(tree.Child(callee, ast.PropertySlot), "assert") {
			return
		}
		args := tree.List(node)
		if len(args) < 2 {
			return
		}
		if !isStringLiteral(tree, args[1]) {
			c.ReportNode(args[1], msgAssertSecondArg)
		}
		if len(args) < 3 {
			return
		}
		if !isStringLiteral(tree, args[2]) && !tree.Is(args[2], ast.ArrowFunctionExpression) {
			c.ReportNode(args[2], msgAssertThirdArg)
		}
	})
}
