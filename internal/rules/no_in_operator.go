package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgInOperator = "Don't use the 'in' keyword - use 'hasProperty' to check for key presence instead"

// NoInOperator forbids the binary 'in' operator.
type NoInOperator struct{}

func (NoInOperator) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-in-operator",
		Code:        diag.LintInOperator,
		Description: "Forbids the 'in' keyword.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
	}
}

func (NoInOperator) Listen(r *lint.Registrar) {
	r.On(ast.BinaryExpression, func(c *lint.Context, node ast.NodeID) {
		if c.Tree().Node(node).Op == "in" {
			c.ReportNode(node, msgInOperator)
		}
	})
}
