package rules

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const (
	optCheckCatch = "check-catch"
	optCheckElse  = "check-else"

	msgCatchSameLine = "'catch' should not be on the same line as the preceeding block's curly brace"
	msgElseSameLine  = "'else' should not be on the same line as the preceeding block's curly brace"
)

// NextLine requires 'else' and 'catch' to start a new line. Each check is
// enabled by its option; without options both run.
type NextLine struct{}

func (NextLine) Meta() lint.Meta {
	return lint.Meta{
		Name:        "next-line",
		Code:        diag.LintNextLine,
		Description: "Enforces 'catch' and 'else' on a new line after the closing brace.",
		Category:    lint.CategoryLexical,
		Severity:    diag.SevWarning,
		Options:     []string{optCheckCatch, optCheckElse},
	}
}

func (NextLine) Listen(r *lint.Registrar) {
	all := len(r.Options()) == 0
	if all || r.HasOption(optCheckElse) {
		r.On(ast.IfStatement, checkElse)
	}
	if all || r.HasOption(optCheckCatch) {
		r.On(ast.TryStatement, checkCatch)
	}
}

func checkElse(c *lint.Context, node ast.NodeID) {
	tree, src := c.Tree(), c.Source()
	if !tree.Child(node, ast.IfAlternate).IsValid() {
		return
	}
	thenEnd := tree.Span(tree.Child(node, ast.IfConsequent)).End
	kw := src.Token(src.TokenIndex(thenEnd))
	if kw.Span.Start < thenEnd || kw.Span.Empty() {
		return
	}
	if src.SameLine(thenEnd, kw.Span.Start) {
		c.Report(kw.Span, msgElseSameLine)
	}
}

func checkCatch(c *lint.Context, node ast.NodeID) {
	tree, src := c.Tree(), c.Source()
	handler := tree.Child(node, ast.TryHandler)
	if !handler.IsValid() {
		return
	}
	brace := src.LastToken(tree.Span(tree.Child(node, ast.TryBlock)))
	kw := src.FirstToken(tree.Span(handler))
	if brace < 0 || kw >= len(src.Tokens) {
		return
	}
	catch := src.Token(kw)
	if src.SameLine(src.Token(brace).Span.End, catch.Span.Start) {
		c.Report(catch.Span, msgCatchSameLine)
	}
}
