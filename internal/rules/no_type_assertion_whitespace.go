package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgAssertionWhitespace = "Excess trailing whitespace found around type assertion."

// NoTypeAssertionWhitespace forbids whitespace between `<T>` and the
// asserted expression.
type NoTypeAssertionWhitespace struct{}

func (NoTypeAssertionWhitespace) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-type-assertion-whitespace",
		Code:        diag.LintTypeAssertionWhitespace,
		Description: "Disallows whitespace after the type in an angle-bracket type assertion.",
		Category:    lint.CategoryLexical,
		Severity:    diag.SevWarning,
	}
}

func (NoTypeAssertionWhitespace) Listen(r *lint.Registrar) {
	r.On(ast.TSTypeAssertion, func(c *lint.Context, node ast.NodeID) {
		tree, src := c.Tree(), c.Source()
		typeEnd := tree.Span(tree.Child(node, ast.AngleType)).End
		exprStart := tree.Span(tree.Child(node, ast.AngleExpr)).Start
		if exprStart <= typeEnd {
			return
		}
		if hasSpace(src.Slice(src.Span(typeEnd, exprStart))) {
			c.ReportRange(typeEnd+1, exprStart, msgAssertionWhitespace)
		}
	})
}
