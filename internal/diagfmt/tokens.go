package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// TokenOutput is one token of the tokenize JSON dump.
type TokenOutput struct {
	Kind          string      `json:"kind"`
	Text          string      `json:"text,omitempty"`
	Span          source.Span `json:"span"`
	Line          uint32      `json:"line"`
	Col           uint32      `json:"col"`
	NewlineBefore bool        `json:"newline_before,omitempty"`
	Comments      []string    `json:"comments,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	var out []string
	for _, tr := range tok.Leading {
		if tr.IsComment() {
			out = append(out, tr.Kind.String())
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-18s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.NewlineBefore {
			fmt.Fprint(w, " nl")
		}
		if comments := leadingKinds(tok); len(comments) > 0 {
			fmt.Fprintf(w, " (comments: %s)", strings.Join(comments, ", "))
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате; комментарии перед токеном
// попадают в comments текстом.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out := TokenOutput{
			Kind:          tok.Kind.String(),
			Text:          tok.Text,
			Span:          tok.Span,
			Line:          pos.Line,
			Col:           pos.Col,
			NewlineBefore: tok.NewlineBefore,
		}
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				out.Comments = append(out.Comments, tr.Text)
			}
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
