package rules

import (
	"bytes"

	"fortio.org/safecast"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

const msgDoubleSpace = "Use only one space."

// NoDoubleSpace reports a double space inside string, regexp and template
// literals. Each line is checked for its first candidate only.
type NoDoubleSpace struct{}

func (NoDoubleSpace) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-double-space",
		Code:        diag.LintDoubleSpace,
		Description: "Forbids double spaces in string and template literals.",
		Category:    lint.CategoryLexical,
		Severity:    diag.SevWarning,
	}
}

func (NoDoubleSpace) Listen(r *lint.Registrar) {
	var literals []source.Span
	r.On(ast.Literal, func(c *lint.Context, node ast.NodeID) {
		if lit := c.Tree().Node(node).Lit; lit == ast.LitString || lit == ast.LitRegExp {
			literals = append(literals, c.Tree().Span(node))
		}
	})
	collect := func(c *lint.Context, node ast.NodeID) {
		literals = append(literals, c.Tree().Span(node))
	}
	r.On(ast.TemplateElement, collect)
	r.On(ast.TemplateLiteral, collect)
	r.OnExit(ast.Program, func(c *lint.Context, _ ast.NodeID) {
		text := c.Source().Text()
		var offset int
		for _, line := range bytes.Split(text, []byte("\n")) {
			lineStart := offset
			offset += len(line) + 1
			at := doubleSpaceIndex(line)
			if at < 0 || bytes.Contains(line, []byte("@param")) {
				continue
			}
			pos, err := safecast.Conv[uint32](lineStart + at)
			if err != nil {
				return
			}
			if inside(literals, pos) {
				c.ReportRange(pos+1, pos+3, msgDoubleSpace)
			}
		}
	})
}

// doubleSpaceIndex returns the index of the character before the first
// exactly-two-space run after the indentation, -1 if there is none. A run
// after '/', '*', '.' or before '-', '!', '/', '=' is alignment and skipped.
func doubleSpaceIndex(line []byte) int {
	first := 0
	for first < len(line) && isSpace(line[first]) {
		first++
	}
	if first == len(line) {
		return -1
	}
	for i := first; i+3 < len(line); i++ {
		if doubleSpaceAt(line, i) {
			return i
		}
	}
	return -1
}

func doubleSpaceAt(line []byte, i int) bool {
	switch line[i] {
	case '/', '*', '.', ' ':
		return false
	}
	if line[i+1] != ' ' || line[i+2] != ' ' {
		return false
	}
	switch line[i+3] {
	case '-', '!', '/', '=', ' ':
		return false
	}
	return true
}

func inside(spans []source.Span, pos uint32) bool {
	for _, s := range spans {
		if s.Start <= pos && pos < s.End {
			return true
		}
	}
	return false
}
