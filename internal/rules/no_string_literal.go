package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

const msgStringLiteralAccess = "object access via string literals is disallowed"

// NoStringLiteral reports obj["name"] where obj.name would do.
type NoStringLiteral struct{}

func (NoStringLiteral) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-string-literal",
		Code:        diag.LintStringLiteral,
		Description: "Disallows unneeded string literal property accesses.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
		Fixable:     true,
	}
}

func (NoStringLiteral) Listen(r *lint.Registrar) {
	r.On(ast.MemberExpression, func(c *lint.Context, node ast.NodeID) {
		tree, src := c.Tree(), c.Source()
		if !tree.Node(node).Flags.Has(ast.FlagComputed) {
			return
		}
		prop := tree.Child(node, ast.PropertySlot)
		name, ok := stringValue(tree, prop)
		if !ok || !isIdentifierName(name) {
			return
		}
		lb := tokenBefore(src, tree.Span(prop).Start)
		if src.Token(lb).Kind != token.LBracket {
			c.ReportNode(prop, msgStringLiteralAccess)
			return
		}
		text := "." + name
		if src.Token(lb-1).Kind == token.QuestionDot {
			text = name
		}
		span := src.Span(src.Token(lb).Span.Start, tree.Span(node).End)
		c.ReportNode(prop, msgStringLiteralAccess,
			fix.ReplaceSpan("Use property access", span, text, src.Slice(span), fix.Preferred()))
	})
}
