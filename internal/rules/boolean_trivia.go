package rules

import (
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

const (
	msgTagArgument   = "Tag argument with parameter name"
	msgTriviaSpacing = "There should be 1 space between an argument and its comment."
)

// BooleanTrivia requires true, false, null and undefined arguments to carry
// a /* name */ comment.
type BooleanTrivia struct{}

func (BooleanTrivia) Meta() lint.Meta {
	return lint.Meta{
		Name:        "boolean-trivia",
		Code:        diag.LintBooleanTrivia,
		Description: "Ensure boolean arguments passed to functions are tagged with their corresponding parameter names.",
		Category:    lint.CategorySyntax,
		Severity:    diag.SevWarning,
	}
}

func (BooleanTrivia) Listen(r *lint.Registrar) {
	r.On(ast.CallExpression, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		if ignoredCallee(c, tree.Child(node, ast.Callee)) {
			return
		}
		for _, arg := range tree.List(node) {
			checkTriviaArg(c, arg)
		}
	})
}

var (
	ignoredMethods   = []string{"apply", "call", "equal", "fail", "isTrue", "output", "stringify"}
	ignoredFunctions = []string{"contains", "createAnonymousType", "createImportSpecifier", "createProperty", "createSignature", "resolveName"}
)

func ignoredCallee(c *lint.Context, callee ast.NodeID) bool {
	tree := c.Tree()
	switch tree.Kind(callee) {
	case ast.MemberExpression:
		name := c.Text(tree.Child(callee, ast.PropertySlot))
		return strings.HasPrefix(name, "set") || strings.HasPrefix(name, "assert") || contains(ignoredMethods, name)
	case ast.Identifier:
		name := c.Text(callee)
		return strings.HasPrefix(name, "set") || strings.HasPrefix(name, "get") || contains(ignoredFunctions, name)
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isTriviaArg(tree *ast.Tree, arg ast.NodeID) bool {
	n := tree.Node(arg)
	switch n.Kind {
	case ast.Literal:
		return n.Lit == ast.LitBoolean || n.Lit == ast.LitNull
	case ast.Identifier:
		return tree.Name(arg) == "undefined"
	}
	return false
}

func checkTriviaArg(c *lint.Context, arg ast.NodeID) {
	tree, src := c.Tree(), c.Source()
	if !isTriviaArg(tree, arg) {
		return
	}
	span := tree.Span(arg)
	prev := src.Token(tokenBefore(src, span.Start))
	next := src.Token(src.TokenIndex(span.End))
	var comments []token.Trivia
	comments = append(comments, src.CommentsIn(span.End, next.Span.Start)...)
	comments = append(comments, src.CommentsIn(prev.Span.End, span.Start)...)
	if len(comments) != 1 || comments[0].Kind != token.TriviaBlockComment {
		c.ReportNode(arg, msgTagArgument)
		return
	}
	end := comments[0].Span.End
	if end+1 == span.Start {
		return
	}
	// комментарий после аргумента тоже считается неверным отступом
	if end > span.Start || !strings.Contains(src.Slice(src.Span(end, span.Start)), "\n") {
		c.ReportNode(arg, msgTriviaSpacing)
	}
}
