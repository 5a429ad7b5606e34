package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseStatementListItem разбирает одну инструкцию или объявление.
// Ошибка внутри инструкции не роняет весь файл: ловим bailout и прокручиваем.
func (p *Parser) parseStatementListItem() (id ast.NodeID) {
	start := p.pos
	if p.speculating > 0 {
		return p.parseStatement()
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.noIn, p.inCtor = false, false
			p.recoverStatement(start)
			id = ast.NoNodeID
		}
	}()
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.NodeID {
	tok := p.tok()
	start := tok.Span.Start

	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return p.finish(ast.EmptyStatement, start)
	case token.KwVar, token.KwConst:
		if tok.Kind == token.KwConst && p.peek(1).Kind == token.KwEnum {
			p.advance()
			return p.parseEnum(start, ast.FlagConst)
		}
		return p.parseVariableStatement(start, 0)
	case token.KwFunction:
		return p.parseFunction(ast.FunctionDeclaration, start, 0)
	case token.KwClass:
		return p.parseClass(ast.ClassDeclaration, start, 0)
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		p.advance()
		test := p.parseParenExpression()
		body := p.parseStatement()
		return p.finish(ast.WhileStatement, start, test, body)
	case token.KwDo:
		p.advance()
		body := p.parseStatement()
		p.expect(token.KwWhile)
		test := p.parseParenExpression()
		p.eat(token.Semicolon) // после do-while ';' всегда опционален
		return p.finish(ast.DoWhileStatement, start, body, test)
	case token.KwReturn, token.KwThrow:
		p.advance()
		var arg ast.NodeID
		if tok.Kind == token.KwThrow && p.tok().NewlineBefore {
			p.failHere(diag.SynExpectExpression, "line break not permitted after 'throw'")
		}
		if !p.canInsertSemicolon() {
			arg = p.parseExpression()
		}
		p.consumeSemicolon()
		kind := ast.ReturnStatement
		if tok.Kind == token.KwThrow {
			kind = ast.ThrowStatement
		}
		return p.finish(kind, start, arg)
	case token.KwBreak, token.KwContinue:
		p.advance()
		var label ast.NodeID
		if p.at(token.Ident) && !p.tok().NewlineBefore {
			label = p.ident()
		}
		p.consumeSemicolon()
		kind := ast.BreakStatement
		if tok.Kind == token.KwContinue {
			kind = ast.ContinueStatement
		}
		return p.finish(kind, start, label)
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwTry:
		return p.parseTry()
	case token.KwDebugger:
		p.advance()
		p.consumeSemicolon()
		return p.finish(ast.DebuggerStatement, start)
	case token.KwWith:
		p.failHere(diag.SynUnsupportedSyntax, "'with' statements are not supported")
	case token.KwImport:
		if next := p.peek(1).Kind; next != token.LParen && next != token.Dot {
			return p.parseImport()
		}
	case token.KwExport:
		return p.parseExport()
	case token.KwEnum:
		return p.parseEnum(start, 0)
	case token.Ident:
		if id, ok := p.parseContextualStatement(); ok {
			return id
		}
	}

	return p.parseExpressionStatement()
}

// parseContextualStatement распознаёт инструкции, начинающиеся с контекстного слова:
// let, async function, type, interface, declare, abstract class, метки.
func (p *Parser) parseContextualStatement() (ast.NodeID, bool) {
	tok := p.tok()
	next := p.peek(1)
	start := tok.Span.Start
	sameLine := !next.NewlineBefore

	switch tok.Text {
	case "let":
		if next.Kind == token.Ident || next.Kind == token.LBracket || next.Kind == token.LBrace {
			return p.parseVariableStatement(start, 0), true
		}
	case "async":
		if next.Kind == token.KwFunction && sameLine {
			p.advance()
			return p.parseFunction(ast.FunctionDeclaration, start, ast.FlagAsync), true
		}
	case "type":
		if next.Kind == token.Ident && sameLine {
			return p.parseTypeAlias(start, 0), true
		}
	case "interface":
		if next.Kind == token.Ident && sameLine {
			return p.parseInterface(start, 0), true
		}
	case "abstract":
		if next.Kind == token.KwClass && sameLine {
			p.advance()
			return p.parseClass(ast.ClassDeclaration, start, ast.FlagAbstract), true
		}
	case "declare":
		if sameLine && (next.Kind.IsKeyword() || next.Kind == token.Ident) && next.Kind != token.KwIn {
			return p.parseDeclare(start), true
		}
	case "namespace", "module", "global":
		if sameLine && (next.Kind == token.Ident || next.Kind == token.StringLit || next.Kind == token.LBrace) {
			p.failHere(diag.SynUnsupportedSyntax, "namespaces and ambient modules are not supported")
		}
	}
	if next.Kind == token.Colon {
		label := p.ident()
		p.advance()
		body := p.parseStatement()
		return p.finish(ast.LabeledStatement, start, label, body), true
	}
	return ast.NoNodeID, false
}

// parseDeclare: declare const/let/var/function/class/enum/type/interface
func (p *Parser) parseDeclare(start uint32) ast.NodeID {
	p.advance() // declare
	var id ast.NodeID
	tok := p.tok()
	switch {
	case tok.Kind == token.KwVar || tok.Kind == token.KwConst || tok.Is("let"):
		if tok.Kind == token.KwConst && p.peek(1).Kind == token.KwEnum {
			p.advance()
			return p.parseEnum(start, ast.FlagConst|ast.FlagDeclare)
		}
		id = p.parseVariableStatement(start, ast.FlagDeclare)
	case tok.Kind == token.KwFunction:
		id = p.parseFunction(ast.FunctionDeclaration, start, ast.FlagDeclare)
	case tok.Kind == token.KwClass:
		id = p.parseClass(ast.ClassDeclaration, start, ast.FlagDeclare)
	case tok.Is("abstract") && p.peek(1).Kind == token.KwClass:
		p.advance()
		id = p.parseClass(ast.ClassDeclaration, start, ast.FlagDeclare|ast.FlagAbstract)
	case tok.Kind == token.KwEnum:
		id = p.parseEnum(start, ast.FlagDeclare)
	case tok.Is("type"):
		id = p.parseTypeAlias(start, ast.FlagDeclare)
	case tok.Is("interface"):
		id = p.parseInterface(start, ast.FlagDeclare)
	default:
		p.failHere(diag.SynUnsupportedSyntax, "unsupported declaration after 'declare'")
	}
	return id
}

func (p *Parser) parseBlock() ast.NodeID {
	start := p.expect(token.LBrace).Span.Start
	var body []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if id := p.parseStatementListItem(); id.IsValid() {
			body = append(body, id)
		}
		if p.enough() {
			break
		}
	}
	p.expect(token.RBrace)
	return p.finishList(ast.BlockStatement, start, body)
}

func (p *Parser) parseExpressionStatement() ast.NodeID {
	start := p.tok().Span.Start
	expr := p.parseExpression()
	p.consumeSemicolon()
	return p.finish(ast.ExpressionStatement, start, expr)
}

func (p *Parser) parseParenExpression() ast.NodeID {
	p.expect(token.LParen)
	expr := p.parseExpression()
	p.expect(token.RParen)
	return expr
}

func (p *Parser) parseIf() ast.NodeID {
	start := p.advance().Span.Start
	test := p.parseParenExpression()
	cons := p.parseStatement()
	var alt ast.NodeID
	if p.eat(token.KwElse) {
		alt = p.parseStatement()
	}
	return p.finish(ast.IfStatement, start, test, cons, alt)
}

// parseFor: for(;;), for-in, for-of, for await-of
func (p *Parser) parseFor() ast.NodeID {
	start := p.advance().Span.Start
	p.eatWord("await")
	p.expect(token.LParen)

	var init ast.NodeID
	tok := p.tok()
	isDecl := tok.Kind == token.KwVar || tok.Kind == token.KwConst ||
		(tok.Is("let") && (p.peek(1).Kind == token.Ident || p.peek(1).Kind == token.LBracket || p.peek(1).Kind == token.LBrace))

	if !p.at(token.Semicolon) {
		p.noIn = true
		if isDecl {
			init = p.parseVariableDeclaration(tok.Span.Start, 0)
		} else {
			init = p.parseExpression()
		}
		p.noIn = false
	}

	if p.at(token.KwIn) || p.atWord("of") {
		kind := ast.ForInStatement
		if p.atWord("of") {
			kind = ast.ForOfStatement
		}
		if !isDecl {
			p.toAssignTarget(init)
		} else if len(p.node(init).List) != 1 {
			p.fail(diag.SynForBadHeader, p.tree.Span(init), "for-in/of requires a single declaration")
		}
		p.advance()
		var right ast.NodeID
		if kind == ast.ForOfStatement {
			right = p.parseAssignment()
		} else {
			right = p.parseExpression()
		}
		p.expect(token.RParen)
		body := p.parseStatement()
		return p.finish(kind, start, init, right, body)
	}

	p.expect(token.Semicolon)
	var test, update ast.NodeID
	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.at(token.RParen) {
		update = p.parseExpression()
	}
	p.expect(token.RParen)
	body := p.parseStatement()
	return p.finish(ast.ForStatement, start, init, test, update, body)
}

func (p *Parser) parseSwitch() ast.NodeID {
	start := p.advance().Span.Start
	disc := p.parseParenExpression()
	p.expect(token.LBrace)
	var cases []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		cstart := p.tok().Span.Start
		var test ast.NodeID
		if p.eat(token.KwCase) {
			test = p.parseExpression()
		} else {
			p.expect(token.KwDefault)
		}
		p.expect(token.Colon)
		var body []ast.NodeID
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			if id := p.parseStatementListItem(); id.IsValid() {
				body = append(body, id)
			}
			if p.enough() {
				break
			}
		}
		cases = append(cases, p.finishList(ast.SwitchCase, cstart, body, test))
	}
	p.expect(token.RBrace)
	return p.finishList(ast.SwitchStatement, start, cases, disc)
}

func (p *Parser) parseTry() ast.NodeID {
	start := p.advance().Span.Start
	block := p.parseBlock()
	var handler, finalizer ast.NodeID
	if p.at(token.KwCatch) {
		cstart := p.advance().Span.Start
		var param ast.NodeID
		if p.eat(token.LParen) {
			param = p.parseBindingTarget(true)
			p.expect(token.RParen)
		}
		body := p.parseBlock()
		handler = p.finish(ast.CatchClause, cstart, param, body)
	}
	if p.eat(token.KwFinally) {
		finalizer = p.parseBlock()
	}
	if !handler.IsValid() && !finalizer.IsValid() {
		p.failHere(diag.SynUnexpectedToken, "expected 'catch' or 'finally'")
	}
	return p.finish(ast.TryStatement, start, block, handler, finalizer)
}

// parseVariableStatement: var/let/const список ;
func (p *Parser) parseVariableStatement(start uint32, flags ast.Flags) ast.NodeID {
	id := p.parseVariableDeclaration(start, flags)
	p.consumeSemicolon()
	p.node(id).Span = p.spanFrom(start)
	return id
}

func (p *Parser) parseVariableDeclaration(start uint32, flags ast.Flags) ast.NodeID {
	kindTok := p.advance()
	var decls []ast.NodeID
	for {
		dstart := p.tok().Span.Start
		target := p.parseBindingTarget(true)
		var init ast.NodeID
		if p.eat(token.Assign) {
			init = p.parseAssignment()
		}
		decls = append(decls, p.finish(ast.VariableDeclarator, dstart, target, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	id := p.finishList(ast.VariableDeclaration, start, decls)
	n := p.node(id)
	n.Op = kindTok.Text
	n.Flags |= flags
	return id
}
