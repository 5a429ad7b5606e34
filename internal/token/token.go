package token

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
	// NewlineBefore is set when a line terminator separates the token from
	// the previous one (directly or inside a block comment).
	NewlineBefore bool
}

// IsLiteral reports whether the token is a numeric, string, regexp or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, RegExpLit, NoSubstTemplate, TemplateHead:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports identifiers and keywords; property names accept both.
func (t Token) IsWord() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// Is reports an identifier with the given spelling (contextual keyword check).
func (t Token) Is(word string) bool { return t.Kind == Ident && t.Text == word }
