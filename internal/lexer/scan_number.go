package lexer

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// scanNumber: 123, 1_000, 1.5, .5, 1e-3, 0x1F, 0o17, 0b101, 10n
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.NumberLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.BumpN(2)
			lx.scanDigits(isHex)
			return lx.finishNumber(start, true)
		case 'o', 'O':
			lx.cursor.BumpN(2)
			lx.scanDigits(isOct)
			return lx.finishNumber(start, true)
		case 'b', 'B':
			lx.cursor.BumpN(2)
			lx.scanDigits(isBin)
			return lx.finishNumber(start, true)
		}
	}

	integer := true
	lx.scanDigits(isDec)
	if lx.cursor.Peek() == '.' {
		integer = false
		lx.cursor.Bump()
		lx.scanDigits(isDec)
	}
	if c := lx.cursor.Peek(); c == 'e' || c == 'E' {
		integer = false
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if c := lx.cursor.Peek(); c == '+' || c == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(mark)
			lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing exponent digits")
			return token.Token{Kind: kind, Span: lx.cursor.SpanFrom(start)}
		}
		lx.scanDigits(isDec)
	}
	return lx.finishNumber(start, integer)
}

func (lx *Lexer) finishNumber(start Mark, integer bool) token.Token {
	kind := token.NumberLit
	if integer && lx.cursor.Eat('n') {
		kind = token.BigIntLit
	}
	sp := lx.cursor.SpanFrom(start)
	// 3in / 3x: идентификатор вплотную к числу запрещён
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		lx.eatIdentContinue()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
	}
	return token.Token{Kind: kind, Span: sp}
}

func (lx *Lexer) scanDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if ok(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '_' && ok(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}
