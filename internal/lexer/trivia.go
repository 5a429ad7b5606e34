package lexer

import (
	"bytes"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, табы, NBSP и BOM коалесцируются в один TriviaSpace
//   - подряд идущие '\n' / '\r' коалесцируются в один TriviaNewline
//   - //... до конца строки -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности; незакрытый: репорт и обрезаем на EOF)
//   - #! в самом начале файла -> TriviaShebang
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	lx.newline = false

	if lx.cursor.Off == 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
			start := lx.cursor.Mark()
			lx.skipToLineEnd()
			lx.push(token.TriviaShebang, start)
		}
	}

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == '\n' || b == '\r' {
			for c := lx.cursor.Peek(); c == '\n' || c == '\r'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.newline = true
			lx.push(token.TriviaNewline, start)
			continue
		}

		if r, _ := lx.peekRune(); isSpaceRune(r) {
			for {
				r2, _ := lx.peekRune()
				if lx.cursor.EOF() || !isSpaceRune(r2) {
					break
				}
				lx.bumpRune()
			}
			lx.push(token.TriviaSpace, start)
			continue
		}

		if b == '/' && lx.scanCommentIntoHold() {
			continue
		}

		break
	}
}

func (lx *Lexer) push(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

func (lx *Lexer) skipToLineEnd() {
	for !lx.cursor.EOF() {
		if c := lx.cursor.Peek(); c == '\n' || c == '\r' {
			return
		}
		lx.cursor.Bump()
	}
}

// //... или /*...*/
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		lx.skipToLineEnd()
		lx.push(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.BumpN(2)
		closed := false
		for !lx.cursor.EOF() {
			if c0, c1, ok := lx.cursor.Peek2(); ok && c0 == '*' && c1 == '/' {
				lx.cursor.BumpN(2)
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		if bytes.IndexByte(lx.file.Content[sp.Start:sp.End], '\n') >= 0 {
			lx.newline = true
		}
		lx.push(token.TriviaBlockComment, start)
		return true
	}
	// это не комментарий: пусть сканируется как '/' или регулярка
	return false
}
