package lexer

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// scanString: '...' или "..." с escape-последовательностями.
// Перевод строки без '\' завершает литерал с ошибкой.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for {
		if lx.cursor.EOF() {
			break
		}
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start)}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
			}
			lx.bumpRune()
			continue
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp}
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp}
}

// scanTemplate продолжает шаблон после '`' (head=true) или после '}' подстановки.
// Возвращает NoSubstTemplate/TemplateHead либо TemplateMiddle/TemplateTail.
func (lx *Lexer) scanTemplate(start Mark, head bool) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			kind := token.TemplateTail
			if head {
				kind = token.NoSubstTemplate
			}
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.BumpN(2)
			lx.braces = append(lx.braces, true)
			kind := token.TemplateMiddle
			if head {
				kind = token.TemplateHead
			}
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
		default:
			lx.bumpRune()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	kind := token.TemplateTail
	if head {
		kind = token.NoSubstTemplate
	}
	return token.Token{Kind: kind, Span: sp}
}

// scanRegExp: /body/flags; классы [...] могут содержать '/'.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.RegExpLit, Span: sp}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\n' || b == '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedRegExp, sp, "unterminated regular expression")
			return token.Token{Kind: token.RegExpLit, Span: sp}
		case b == '\\':
			lx.cursor.Bump()
			lx.bumpRune()
			continue
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.cursor.Bump()
			lx.eatIdentContinue() // флаги
			return token.Token{Kind: token.RegExpLit, Span: lx.cursor.SpanFrom(start)}
		}
		lx.bumpRune()
	}
}
