package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const msgForInArray = "for-in loops over arrays are forbidden. Use for-of or array.forEach instead."

// NoForInArray reports for-in loops over arrays and strings.
type NoForInArray struct{}

func (NoForInArray) Meta() lint.Meta {
	return lint.Meta{
		Name:          "no-for-in-array",
		Code:          diag.LintForInArray,
		Description:   "Disallow iterating over an array with a for-in loop.",
		Category:      lint.CategoryTypes,
		Severity:      diag.SevError,
		RequiresTypes: true,
	}
}

func (NoForInArray) Listen(r *lint.Registrar) {
	r.On(ast.ForInStatement, func(c *lint.Context, node ast.NodeID) {
		types := c.Types()
		t, ok := types.TypeAt(c.Tree().Child(node, ast.ForEachRight))
		if !ok {
			return
		}
		if types.IsArray(t) || types.IsStringLike(t) {
			c.ReportNode(node, msgForInArray)
		}
	})
}
