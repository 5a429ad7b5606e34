package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgConstruct = "Forbidden constructor, use a literal or simple function call instead"

// NoConstruct forbids new Boolean, new String and new Number.
type NoConstruct struct{}

func (NoConstruct) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-construct",
		Code:        diag.LintConstruct,
		Description: "Disallow use of the constructors for Number, String, and Boolean.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
	}
}

func (NoConstruct) Listen(r *lint.Registrar) {
	r.On(ast.NewExpression, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		callee := tree.Child(node, ast.Callee)
		if !tree.Is(callee, ast.Identifier) {
			return
		}
		switch tree.Name(callee) {
		case "Boolean", "String", "Number":
			c.ReportRange(tree.Span(node).Start, tree.Span(callee).End, msgConstruct)
		}
	})
}
