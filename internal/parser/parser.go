package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lexer"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

type Options struct {
	// MaxErrors ограничивает число синтаксических ошибок; 0: без лимита.
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result is a parsed file: the tree plus the token stream and comments the
// lexical rules work on.
type Result struct {
	File     *source.File
	Tree     *ast.Tree
	Tokens   []token.Token
	Comments []token.Trivia
	Errors   int
}

// OK reports whether the file parsed without errors.
func (r *Result) OK() bool { return r.Errors == 0 }

// Parser: состояние парсера на один файл
type Parser struct {
	file    *source.File
	toks    []token.Token
	pos     int
	tree    *ast.Tree
	opts    Options
	errors  int
	lastEnd uint32 // конец последнего съеденного токена

	speculating int  // >0: пробный разбор, ошибки не репортятся
	noIn        bool // внутри заголовка for: `in` не бинарный оператор
	inCtor      bool // параметры конструктора допускают модификаторы
}

// bailout прерывает разбор текущей конструкции; ловится в parseStatementListItem
// и в tryParse.
type bailout struct{}

// ParseFile lexes and parses one file.
func ParseFile(file *source.File, opts Options) *Result {
	lexed := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{
		file: file,
		toks: lexed.Tokens,
		tree: ast.NewTree(file.ID, uint(len(lexed.Tokens))),
		opts: opts,
	}
	p.errors = lexed.Errors
	p.parseProgram()
	p.tree.Link()
	return &Result{
		File:     file,
		Tree:     p.tree,
		Tokens:   lexed.Tokens,
		Comments: lexed.Comments,
		Errors:   p.errors,
	}
}

func (p *Parser) parseProgram() {
	var body []ast.NodeID
	for !p.at(token.EOF) {
		if p.enough() {
			break
		}
		if id := p.parseStatementListItem(); id.IsValid() {
			body = append(body, id)
		}
	}
	root := p.tree.New(ast.Program, p.file.Span())
	p.tree.Node(root).List = body
	p.tree.Root = root
}

// enough: достигнут ли лимит ошибок
func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && uint(p.errors) >= p.opts.MaxErrors
}

// fail репортит ошибку и прерывает разбор конструкции.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	if p.speculating == 0 {
		p.errors++
		if p.opts.Reporter != nil {
			p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
		}
	}
	panic(bailout{})
}

// failHere: ошибка на текущем токене.
func (p *Parser) failHere(code diag.Code, msg string) {
	p.fail(code, p.diagSpan(), msg)
}

// diagSpan: лучший span для диагностики: текущий токен или позиция после
// последнего съеденного, если мы на EOF.
func (p *Parser) diagSpan() source.Span {
	tok := p.tok()
	if tok.Kind == token.EOF {
		return source.Span{File: p.file.ID, Start: p.lastEnd, End: p.lastEnd}
	}
	return tok.Span
}

// recoverStatement ловит bailout и прокручивает токены до начала следующей инструкции.
func (p *Parser) recoverStatement(start int) {
	if p.pos == start {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.kind() {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth == 0 {
				if p.at(token.RBrace) {
					return
				}
			} else {
				depth--
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		if depth == 0 && p.tok().NewlineBefore && p.pos > start && isStatementStarter(p.kind()) {
			return
		}
		p.advance()
	}
}

func isStatementStarter(k token.Kind) bool {
	switch k {
	case token.KwVar, token.KwConst, token.KwFunction, token.KwClass, token.KwIf, token.KwFor,
		token.KwWhile, token.KwDo, token.KwReturn, token.KwSwitch, token.KwTry, token.KwThrow,
		token.KwImport, token.KwExport, token.KwEnum:
		return true
	}
	return false
}

// finish создаёт узел со span [start, lastEnd) и заданными слотами.
func (p *Parser) finish(kind ast.Kind, start uint32, slots ...ast.NodeID) ast.NodeID {
	id := p.tree.New(kind, p.spanFrom(start))
	n := p.tree.Node(id)
	copy(n.Slots[:], slots)
	return id
}

// finishList: как finish, но ещё и со списком детей.
func (p *Parser) finishList(kind ast.Kind, start uint32, list []ast.NodeID, slots ...ast.NodeID) ast.NodeID {
	id := p.finish(kind, start, slots...)
	p.tree.Node(id).List = list
	return id
}

func (p *Parser) spanFrom(start uint32) source.Span {
	end := p.lastEnd
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Parser) node(id ast.NodeID) *ast.Node {
	return p.tree.Node(id)
}

func (p *Parser) intern(s string) source.StringID {
	return p.tree.Strings.Intern(s)
}

// ident создаёт Identifier из текущего токена.
func (p *Parser) ident() ast.NodeID {
	tok := p.advance()
	id := p.tree.New(ast.Identifier, tok.Span)
	p.node(id).Name = p.intern(tok.Text)
	return id
}
