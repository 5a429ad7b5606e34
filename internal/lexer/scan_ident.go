package lexer

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if !lx.eatIdentStart() {
		return lx.unknownChar()
	}
	lx.eatIdentContinue()
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// #name: приватное поле класса
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if !lx.eatIdentStart() {
		lx.cursor.Reset(start)
		return lx.unknownChar()
	}
	lx.eatIdentContinue()
	return token.Token{Kind: token.PrivateName, Span: lx.cursor.SpanFrom(start)}
}

func (lx *Lexer) eatIdentStart() bool {
	if lx.cursor.EOF() {
		return false
	}
	if lx.cursor.Peek() == '\\' {
		return lx.eatUnicodeEscape()
	}
	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		return false
	}
	lx.bumpRune()
	return true
}

func (lx *Lexer) eatIdentContinue() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if isIdentContinueByte(b) {
				lx.cursor.Bump()
				continue
			}
			if b == '\\' && lx.eatUnicodeEscape() {
				continue
			}
			return
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}

// \uXXXX или \u{X...} внутри идентификатора
func (lx *Lexer) eatUnicodeEscape() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.EatString(`\u`) {
		return false
	}
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n > 0 && lx.cursor.Eat('}') {
			return true
		}
	} else {
		n := 0
		for n < 4 && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			n++
		}
		if n == 4 {
			return true
		}
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "invalid unicode escape in identifier")
	return true
}
