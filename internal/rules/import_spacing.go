package rules

import (
	"regexp"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

const (
	msgAddSpaceAfterImport      = "Add space after 'import'"
	msgTooManySpacesAfterImport = "Too many spaces after 'import'"
	msgAddSpaceAfterStar        = "Add space after '*'"
	msgTooManySpacesAfterStar   = "Too many spaces after '*'"
	msgAddSpaceAfterFrom        = "Add space after 'from'"
	msgTooManySpacesAfterFrom   = "Too many spaces after 'from'"
	msgAddSpaceBeforeFrom       = "Add space before 'from'"
	msgTooManySpacesBeforeFrom  = "Too many spaces before 'from'"
	msgImportLineBreak          = "Line breaks are not allowed in import declaration"
)

var (
	reFromNoSpaceAfter  = regexp.MustCompile(`from$`)
	reFromSpacesAfter   = regexp.MustCompile(`from\s{2,}$`)
	reFromSpacesBefore  = regexp.MustCompile(`^\s{2,}from`)
	reFromNoSpaceBefore = regexp.MustCompile(`^from`)
	reStarSpacesAfter   = regexp.MustCompile(`\*\s{2,}as`)
)

const importKeywordLen = uint32(len("import"))

// ImportSpacing checks single spaces around the parts of an import
// declaration and forbids line breaks inside it.
type ImportSpacing struct{}

func (ImportSpacing) Meta() lint.Meta {
	return lint.Meta{
		Name:        "import-spacing",
		Code:        diag.LintImportSpacing,
		Description: "Ensures proper spacing between import statement keywords.",
		Category:    lint.CategoryLexical,
		Severity:    diag.SevWarning,
	}
}

func (ImportSpacing) Listen(r *lint.Registrar) {
	r.On(ast.ImportDeclaration, func(c *lint.Context, node ast.NodeID) {
		tree := c.Tree()
		specs := tree.List(node)
		if len(specs) == 0 {
			checkSideEffectImport(c, node)
			return
		}
		checkImportClause(c, node)
		for _, spec := range specs {
			if tree.Is(spec, ast.ImportNamespaceSpecifier) {
				checkNamespaceImport(c, spec)
			}
		}
	})
}

func checkSideEffectImport(c *lint.Context, node ast.NodeID) {
	tree := c.Tree()
	start := tree.Span(node).Start
	moduleStart := tree.Span(tree.Child(node, ast.ImportSource)).Start
	switch {
	case start+importKeywordLen+1 < moduleStart:
		c.ReportRange(start, moduleStart, msgTooManySpacesAfterImport)
	case start+importKeywordLen == moduleStart:
		c.ReportRange(start, start+importKeywordLen, msgAddSpaceAfterImport)
	}
	if strings.Contains(c.Text(node), "\n") {
		c.ReportNode(node, msgImportLineBreak)
	}
}

func checkImportClause(c *lint.Context, node ast.NodeID) {
	tree, src := c.Tree(), c.Source()
	span := tree.Span(node)
	moduleStart := tree.Span(tree.Child(node, ast.ImportSource)).Start

	first := src.FirstToken(span)
	clauseStart := src.Token(first + 1).Span.Start
	// from стоит прямо перед строкой модуля, клауза кончается перед ним
	from := tokenBefore(src, moduleStart)
	if from <= first+1 || !src.Token(from).Is("from") {
		return
	}
	clauseEnd := src.Token(from - 1).Span.End

	keywordEnd := span.Start + importKeywordLen
	switch {
	case keywordEnd == clauseStart:
		c.ReportRange(span.Start, keywordEnd, msgAddSpaceAfterImport)
	case clauseStart > keywordEnd+1:
		c.ReportRange(span.Start, clauseStart, msgTooManySpacesAfterImport)
	}

	fromText := src.Slice(src.Span(clauseEnd, moduleStart))
	switch {
	case reFromNoSpaceAfter.MatchString(fromText):
		c.ReportRange(clauseEnd, moduleStart, msgAddSpaceAfterFrom)
	case reFromSpacesAfter.MatchString(fromText):
		c.ReportRange(clauseEnd, moduleStart, msgTooManySpacesAfterFrom)
	}
	switch {
	case reFromSpacesBefore.MatchString(fromText):
		c.ReportRange(clauseEnd, moduleStart, msgTooManySpacesBeforeFrom)
	case reFromNoSpaceBefore.MatchString(fromText):
		c.ReportRange(clauseEnd, moduleStart, msgAddSpaceBeforeFrom)
	}

	if strings.Contains(src.Slice(src.Span(span.Start, clauseStart)), "\n") {
		c.ReportRange(span.Start, clauseStart-1, msgImportLineBreak)
	}
	if strings.Contains(src.Slice(src.Span(clauseEnd, span.End)), "\n") {
		c.ReportRange(clauseEnd, span.End, msgImportLineBreak)
	}
}

func checkNamespaceImport(c *lint.Context, spec ast.NodeID) {
	text := c.Text(spec)
	switch {
	case strings.Contains(text, "*as"):
		c.ReportNode(spec, msgAddSpaceAfterStar)
	case reStarSpacesAfter.MatchString(text):
		c.ReportNode(spec, msgTooManySpacesAfterStar)
	case strings.Contains(text, "\n"):
		c.ReportNode(spec, msgImportLineBreak)
	}
}
