package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

const msgUnnecessaryAssertion = "This assertion is unnecessary since it does not change the type of the expression."

// NoUnnecessaryTypeAssertion reports assertions whose target type equals the
// type of the asserted expression. Options list type texts to ignore.
type NoUnnecessaryTypeAssertion struct{}

func (NoUnnecessaryTypeAssertion) Meta() lint.Meta {
	return lint.Meta{
		Name:          "no-unnecessary-type-assertion",
		Code:          diag.LintUnnecessaryAssertion,
		Description:   "Warns if a type assertion does not change the type of an expression.",
		Category:      lint.CategoryTypes,
		Severity:      diag.SevWarning,
		RequiresTypes: true,
		Fixable:       true,
	}
}

func (NoUnnecessaryTypeAssertion) Listen(r *lint.Registrar) {
	ignore := make(map[string]bool, len(r.Options()))
	for _, o := range r.Options() {
		ignore[o] = true
	}
	cast := func(c *lint.Context, node ast.NodeID) {
		checkCast(c, node, ignore)
	}
	r.On(ast.TSAsExpression, cast)
	r.On(ast.TSTypeAssertion, cast)
	r.On(ast.TSNonNullExpression, checkNonNull)
}

func checkNonNull(c *lint.Context, node ast.NodeID) {
	tree, types := c.Tree(), c.Types()
	t, ok := types.TypeAt(tree.Child(node, ast.AssertExpr))
	if !ok || t != types.NonNullable(t) {
		return
	}
	src := c.Source()
	span := tree.Span(node)
	bang := src.LastToken(span)
	if bang < 0 {
		c.ReportNode(node, msgUnnecessaryAssertion)
		return
	}
	cut := src.Span(src.Token(bang-1).Span.End, span.End)
	c.ReportNode(node, msgUnnecessaryAssertion,
		fix.DeleteSpan("Remove unnecessary non-null assertion", cut, src.Slice(cut), fix.Preferred()))
}

func checkCast(c *lint.Context, node ast.NodeID, ignore map[string]bool) {
	tree, types := c.Tree(), c.Types()
	typeSlot, exprSlot := ast.AssertType, ast.AssertExpr
	if tree.Is(node, ast.TSTypeAssertion) {
		typeSlot, exprSlot = ast.AngleType, ast.AngleExpr
	}
	typeNode, expr := tree.Child(node, typeSlot), tree.Child(node, exprSlot)
	if ignore[c.Text(typeNode)] {
		return
	}
	castType, ok := types.TypeAt(node)
	if !ok {
		return
	}
	if types.IsLiteral(castType) || types.IsTuple(castType) ||
		types.IsObject(castType) && types.CouldBeTuple(castType) {
		return
	}
	uncast, ok := types.TypeAt(expr)
	if !ok || uncast != castType {
		return
	}
	cut, ok := castCut(c, node, typeNode)
	if !ok {
		c.ReportNode(node, msgUnnecessaryAssertion)
		return
	}
	c.ReportNode(node, msgUnnecessaryAssertion,
		fix.DeleteSpan("Remove unnecessary type assertion", cut, c.Source().Slice(cut), fix.Preferred()))
}

// castCut finds the text removed by the fix: `<T>` up to the expression, or
// ` as T` from the end of the expression. Spans exclude parentheses, so the
// cut is computed on tokens.
func castCut(c *lint.Context, node, typeNode ast.NodeID) (source.Span, bool) {
	src := c.Source()
	tree := c.Tree()
	whole := tree.Span(node)
	typeSpan := tree.Span(typeNode)
	if tree.Is(node, ast.TSTypeAssertion) {
		// закрывающая > идёт сразу за последним токеном типа
		gt := src.LastToken(typeSpan) + 1
		next := src.Token(gt + 1)
		if next.Span.Start <= whole.Start {
			return source.Span{}, false
		}
		return src.Span(whole.Start, next.Span.Start), true
	}
	kw := src.FirstToken(typeSpan) - 1
	if kw < 1 {
		return source.Span{}, false
	}
	start := src.Token(kw - 1).Span.End
	if start <= whole.Start {
		return source.Span{}, false
	}
	return src.Span(start, whole.End), true
}
