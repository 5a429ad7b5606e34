package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgIncrementDecrement = "Don't use '++' or '--' postfix operators outside statements or for loops."

// NoIncrementDecrement allows ++ and -- only as a statement of their own or
// in a for header.
type NoIncrementDecrement struct{}

func (NoIncrementDecrement) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-increment-decrement",
		Code:        diag.LintIncrementDecrement,
		Description: "Forbid prefix ++ and -- everywhere and postfix outside of loops or statements.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
	}
}

func (NoIncrementDecrement) Listen(r *lint.Registrar) {
	r.On(ast.UpdateExpression, func(c *lint.Context, node ast.NodeID) {
		stack := c.Ancestors()
		if len(stack) == 0 {
			return
		}
		tree := c.Tree()
		switch tree.Kind(stack[len(stack)-1]) {
		case ast.ExpressionStatement, ast.ForStatement:
			return
		case ast.SequenceExpression:
			if len(stack) > 1 && tree.Is(stack[len(stack)-2], ast.ForStatement) {
				return
			}
		}
		c.ReportNode(node, msgIncrementDecrement)
	})
}
