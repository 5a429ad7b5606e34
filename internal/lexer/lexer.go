package lexer

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	hold    []token.Trivia // накопленные leading trivia
	newline bool           // перевод строки среди hold
	prev    token.Kind     // последний значимый токен, для выбора regexp/деления
	braces  []bool         // стек '{': true: подстановка шаблона `${`
	errors  int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Errors returns the number of lexical errors reported so far.
func (lx *Lexer) Errors() int { return lx.errors }

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF; trivia в конце файла приклеиваются к EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return lx.finish(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = lx.scanTemplate(start, true)

	case ch == '}' && len(lx.braces) > 0 && lx.braces[len(lx.braces)-1]:
		lx.braces = lx.braces[:len(lx.braces)-1]
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = lx.scanTemplate(start, false)

	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegExp()

	case ch == '#':
		tok = lx.scanPrivateName()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	return lx.finish(tok)
}

func (lx *Lexer) finish(tok token.Token) token.Token {
	if len(lx.hold) > 0 {
		tok.Leading = append([]token.Trivia(nil), lx.hold...)
	}
	tok.NewlineBefore = lx.newline
	if tok.Text == "" && !tok.Span.Empty() {
		tok.Text = string(lx.file.Content[tok.Span.Start:tok.Span.End])
	}
	switch tok.Kind {
	case token.LBrace:
		lx.braces = append(lx.braces, false)
	case token.RBrace:
		if n := len(lx.braces); n > 0 {
			lx.braces = lx.braces[:n-1]
		}
	}
	if tok.Kind != token.EOF {
		lx.prev = tok.Kind
	}
	return tok
}

// regexAllowed решает, начинает ли '/' регулярное выражение.
// Регулярка допустима там, где ожидается выражение: после оператора,
// открывающей скобки или ключевого слова, не являющегося значением.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev {
	case token.Invalid:
		return true
	case token.Ident, token.PrivateName, token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegExpLit, token.NoSubstTemplate, token.TemplateTail,
		token.RParen, token.RBracket, token.RBrace, token.PlusPlus, token.MinusMinus,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse:
		return false
	}
	return true
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Result is the fully lexed file.
type Result struct {
	Tokens   []token.Token // значимые токены, последний: EOF
	Comments []token.Trivia
	Errors   int
}

// Tokenize lexes the whole file up front. The parser and the lexical rules
// share the resulting token stream.
func Tokenize(file *source.File, opts Options) Result {
	lx := New(file, opts)
	res := Result{Tokens: make([]token.Token, 0, len(file.Content)/4+1)}
	for {
		tok := lx.Next()
		for _, tr := range tok.Leading {
			if tr.IsComment() {
				res.Comments = append(res.Comments, tr)
			}
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	res.Errors = lx.errors
	return res
}

func (lx *Lexer) unknownChar() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp}
}
