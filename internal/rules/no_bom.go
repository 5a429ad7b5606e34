package rules

import (
	"bytes"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

const msgBOM = "This file has a BOM."

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NoBOM reports files starting with a byte order mark.
type NoBOM struct{}

func (NoBOM) Meta() lint.Meta {
	return lint.Meta{
		Name:        "no-bom",
		Code:        diag.LintBOM,
		Description: "Fails if the file starts with a BOM.",
		Category:    lint.CategoryLexical,
		Severity:    diag.SevWarning,
	}
}

func (NoBOM) Listen(r *lint.Registrar) {
	r.On(ast.Program, func(c *lint.Context, _ ast.NodeID) {
		src := c.Source()
		switch {
		case bytes.HasPrefix(src.Text(), utf8BOM):
			c.ReportRange(0, uint32(len(utf8BOM)), msgBOM)
		case src.File.Flags&source.FileHadBOM != 0:
			// BOM снят при перекодировании из UTF-16
			c.ReportRange(0, 0, msgBOM)
		}
	})
}
