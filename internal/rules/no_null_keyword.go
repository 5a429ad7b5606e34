package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgNullKeyword = "Use 'undefined' instead of 'null'"

// NoNullKeyword forbids the null literal. Loose comparisons are fixed to
// undefined; strict comparisons are allowed.
type NoNullKeyword struct{}

func (NoNullKeyword) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-null-keyword",
		Code:        diag.LintNullKeyword,
		Description: "Forbids usage of the keyword 'null'.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
		Fixable:     true,
	}
}

func (NoNullKeyword) Listen(r *lint.Registrar) {
	r.On(ast.Literal, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		if tree.Node(node).Lit != ast.LitNull {
			return
		}
		parent := c.Parent()
		op := ""
		if tree.Is(parent, ast.BinaryExpression) {
			op = tree.Node(parent).Op
		}
		switch op {
		case "===", "!==":
		case "==", "!=":
			span := tree.Span(node)
			c.ReportNode(node, msgNullKeyword,
				fix.ReplaceSpan("Replace 'null' with 'undefined'", span, "undefined", "null"))
		default:
			c.ReportNode(node, msgNullKeyword)
		}
	})
}
