package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

func (p *Parser) tok() token.Token {
	return p.toks[p.pos]
}

// peek возвращает токен через n позиций (EOF за концом).
func (p *Parser) peek(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) kind() token.Kind {
	return p.toks[p.pos].Kind
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

// atWord: текущий токен Ident с заданным текстом (контекстное слово).
func (p *Parser) atWord(w string) bool {
	return p.toks[p.pos].Is(w)
}

// advance: съедает текущий токен и обновляет lastEnd
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastEnd = tok.Span.End
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatWord(w string) bool {
	if p.atWord(w) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен, иначе ошибка и bailout.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	code := diag.SynUnexpectedToken
	switch k {
	case token.RParen:
		code = diag.SynUnclosedParen
	case token.RBrace:
		code = diag.SynUnclosedBrace
	case token.RBracket:
		code = diag.SynUnclosedBracket
	case token.Gt:
		code = diag.SynUnclosedAngle
	case token.Semicolon:
		code = diag.SynExpectSemicolon
	}
	p.failHere(code, "expected "+k.String()+", got "+describe(p.tok()))
	return token.Token{}
}

func (p *Parser) expectWord(w string) {
	if !p.eatWord(w) {
		p.failHere(diag.SynUnexpectedToken, "expected '"+w+"', got "+describe(p.tok()))
	}
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

// consumeSemicolon реализует автоматическую вставку ';'.
func (p *Parser) consumeSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok().NewlineBefore {
		return
	}
	p.failHere(diag.SynExpectSemicolon, "expected ';', got "+describe(p.tok()))
}

// canInsertSemicolon: можно ли здесь завершить инструкцию без ';'.
func (p *Parser) canInsertSemicolon() bool {
	return p.at(token.Semicolon) || p.at(token.RBrace) || p.at(token.EOF) || p.tok().NewlineBefore
}

// tryParse выполняет пробный разбор: при ошибке позиция откатывается и
// возвращается NoNodeID. Созданные узлы остаются в арене недостижимыми.
func (p *Parser) tryParse(fn func() ast.NodeID) (id ast.NodeID) {
	pos, last, noIn := p.pos, p.lastEnd, p.noIn
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.pos, p.lastEnd, p.noIn = pos, last, noIn
			id = ast.NoNodeID
		}
	}()
	return fn()
}

// lookahead проверяет условие без изменения позиции.
func (p *Parser) lookahead(fn func() bool) bool {
	pos, last := p.pos, p.lastEnd
	p.speculating++
	defer func() {
		p.speculating--
		p.pos, p.lastEnd = pos, last
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
		}
	}()
	return fn()
}

// greater склеивает подряд идущие '>' и '=' без пробелов в составной оператор.
// Возвращает текст оператора и число токенов.
func (p *Parser) greater() (string, int) {
	if !p.at(token.Gt) {
		return "", 0
	}
	op, n := ">", 1
	for {
		next := p.peek(n)
		if next.Span.Start != p.peek(n-1).Span.End {
			return op, n
		}
		switch {
		case next.Kind == token.Gt && (op == ">" || op == ">>"):
			op += ">"
			n++
		case next.Kind == token.Assign:
			return op + "=", n + 1
		case next.Kind == token.EqEq || next.Kind == token.EqEqEq:
			// `a >== b`: не оператор, оставляем '>'
			return op, n
		default:
			return op, n
		}
	}
}

// isBindingIdent: может ли токен быть именем привязки.
func isBindingIdent(tok token.Token) bool {
	return tok.Kind == token.Ident
}

// isPropertyName: имя свойства: слово, строка, число, [computed] или #private.
func isPropertyName(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.StringLit, token.NumberLit, token.BigIntLit, token.LBracket, token.PrivateName:
		return true
	}
	return tok.Kind.IsKeyword()
}

// speculate: как tryParse, но для разборов, которые возвращают несколько
// значений через замыкание.
func (p *Parser) speculate(fn func()) (ok bool) {
	pos, last, noIn := p.pos, p.lastEnd, p.noIn
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.pos, p.lastEnd, p.noIn = pos, last, noIn
			ok = false
		}
	}()
	fn()
	return true
}

// allowIn снимает запрет на `in` внутри скобок; возвращает функцию восстановления.
func (p *Parser) allowIn() func() {
	saved := p.noIn
	p.noIn = false
	return func() { p.noIn = saved }
}

// canStartExpression: может ли токен начинать выражение (для `await`).
func canStartExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.PrivateName, token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegExpLit, token.NoSubstTemplate, token.TemplateHead,
		token.LParen, token.LBracket, token.LBrace, token.Bang, token.Tilde,
		token.PlusPlus, token.MinusMinus,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse,
		token.KwFunction, token.KwClass, token.KwNew, token.KwTypeof, token.KwVoid,
		token.KwDelete, token.KwImport:
		return true
	}
	return false
}
