package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseFunction разбирает function-объявление или выражение; текущий токен: `function`.
// Тело может отсутствовать только у перегрузок и declare.
func (p *Parser) parseFunction(kind ast.Kind, start uint32, flags ast.Flags) ast.NodeID {
	p.expect(token.KwFunction)
	if p.at(token.Star) {
		p.failHere(diag.SynUnsupportedSyntax, "generator functions are not supported")
	}
	var name ast.NodeID
	if isBindingIdent(p.tok()) {
		name = p.ident()
	} else if kind == ast.FunctionDeclaration && !p.inDefaultExport() {
		// анонимная декларация допустима только в `export default function () {}`
		p.failHere(diag.SynExpectIdentifier, "expected function name")
	}
	id := p.parseFunctionRest(kind, start, name)
	p.node(id).Flags |= flags
	return id
}

// parseFunctionRest: <T>(params): R { body }
func (p *Parser) parseFunctionRest(kind ast.Kind, start uint32, name ast.NodeID) ast.NodeID {
	tp := p.parseTypeParamsOpt()
	params := p.parseParams()
	var ret ast.NodeID
	if p.eat(token.Colon) {
		ret = p.parseReturnType()
	}
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		// перегрузка или ambient-объявление
		p.consumeSemicolon()
	}
	return p.finishList(kind, start, params, name, tp, ret, body)
}

func (p *Parser) parseFunctionBody() ast.NodeID {
	ctor := p.inCtor
	p.inCtor = false
	defer func() { p.inCtor = ctor }()
	return p.parseBlock()
}

// parseParams разбирает список параметров в скобках.
func (p *Parser) parseParams() []ast.NodeID {
	p.expect(token.LParen)
	var params []ast.NodeID
	allowProps := p.inCtor
	p.inCtor = false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam(allowProps))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

var paramModifiers = map[string]ast.Flags{
	"public":    ast.FlagPublic,
	"private":   ast.FlagPrivate,
	"protected": ast.FlagProtected,
	"readonly":  ast.FlagReadonly,
	"override":  ast.FlagOverride,
}

func (p *Parser) parseParam(allowProps bool) ast.NodeID {
	start := p.tok().Span.Start
	var mods ast.Flags
	for {
		f, ok := paramModifiers[p.tok().Text]
		if !ok || p.kind() != token.Ident {
			break
		}
		next := p.peek(1)
		if !isBindingIdent(next) && next.Kind != token.LBrace && next.Kind != token.LBracket && next.Kind != token.KwThis {
			break
		}
		if !allowProps {
			p.failHere(diag.SynModifierNotAllowed, "parameter properties are only allowed in a constructor")
		}
		p.advance()
		mods |= f
	}

	var param ast.NodeID
	switch {
	case p.at(token.DotDotDot):
		param = p.parseRestElement(true)
	case p.at(token.KwThis):
		// this-параметр: `function f(this: Window)`
		tok := p.advance()
		param = p.tree.New(ast.Identifier, tok.Span)
		p.node(param).Name = p.intern("this")
		p.parseTypeAnnotationInto(param, start)
	default:
		param = p.parseBindingTarget(true)
		if p.eat(token.Assign) {
			def := p.parseAssignment()
			param = p.finish(ast.AssignmentPattern, start, param, def)
		}
	}
	if mods != 0 {
		param = p.finish(ast.TSParameterProperty, start, param)
		p.node(param).Flags |= mods
	}
	return param
}

// parseRestElement: ...target[: T]
func (p *Parser) parseRestElement(allowType bool) ast.NodeID {
	start := p.expect(token.DotDotDot).Span.Start
	arg := p.parseBindingPattern()
	var typ ast.NodeID
	if allowType && p.eat(token.Colon) {
		typ = p.parseType()
	}
	return p.finish(ast.RestElement, start, arg, typ)
}

// parseClass разбирает class-объявление или выражение; текущий токен: `class`.
func (p *Parser) parseClass(kind ast.Kind, start uint32, flags ast.Flags) ast.NodeID {
	p.expect(token.KwClass)
	var name ast.NodeID
	if isBindingIdent(p.tok()) && !p.atWord("implements") {
		name = p.ident()
	} else if kind == ast.ClassDeclaration && p.speculating == 0 && !p.inDefaultExport() {
		p.failHere(diag.SynExpectIdentifier, "expected class name")
	}
	tp := p.parseTypeParamsOpt()

	var super ast.NodeID
	if p.eat(token.KwExtends) {
		super = p.parseLeftHandSide(false)
		if p.at(token.Lt) {
			// аргументы типа базового класса в дереве не храним
			p.parseTypeArgs()
		}
	}
	var impls []ast.NodeID
	if p.eatWord("implements") {
		for {
			impls = append(impls, p.parseTypeReference())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	body := p.parseClassBody()
	id := p.finishList(kind, start, impls, name, tp, super, body)
	p.node(id).Flags |= flags
	return id
}

// inDefaultExport: объявление стоит сразу после `export default`.
func (p *Parser) inDefaultExport() bool {
	for i := p.pos - 1; i >= 0; i-- {
		t := p.toks[i]
		switch {
		case t.Kind == token.KwDefault:
			return true
		case t.Kind == token.KwFunction, t.Kind == token.KwClass, t.Is("async"), t.Is("abstract"):
			continue
		default:
			return false
		}
	}
	return false
}

func (p *Parser) parseClassBody() ast.NodeID {
	start := p.expect(token.LBrace).Span.Start
	var members []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(token.RBrace)
	return p.finishList(ast.ClassBody, start, members)
}

var memberModifiers = map[string]ast.Flags{
	"static":    ast.FlagStatic,
	"public":    ast.FlagPublic,
	"private":   ast.FlagPrivate,
	"protected": ast.FlagProtected,
	"readonly":  ast.FlagReadonly,
	"abstract":  ast.FlagAbstract,
	"override":  ast.FlagOverride,
	"declare":   ast.FlagDeclare,
	"async":     ast.FlagAsync,
}

// isModifierPosition: слово перед токеном next является модификатором,
// а не именем члена класса.
func isModifierPosition(next token.Token) bool {
	switch next.Kind {
	case token.LParen, token.Assign, token.Semicolon, token.Colon, token.Question,
		token.Bang, token.RBrace, token.Lt, token.EOF, token.Comma:
		return false
	}
	return isPropertyName(next) || next.Kind == token.Star
}

func (p *Parser) parseClassMember() ast.NodeID {
	start := p.tok().Span.Start
	var flags ast.Flags
	for p.kind() == token.Ident {
		f, ok := memberModifiers[p.tok().Text]
		if !ok || !isModifierPosition(p.peek(1)) {
			break
		}
		if f == ast.FlagAsync && p.peek(1).NewlineBefore {
			break
		}
		p.advance()
		flags |= f
	}
	if flags.Has(ast.FlagStatic) && p.at(token.LBrace) {
		p.failHere(diag.SynUnsupportedSyntax, "static blocks are not supported")
	}
	if p.at(token.At) {
		p.failHere(diag.SynUnsupportedSyntax, "decorators are not supported")
	}

	// индексная сигнатура: [key: string]: T
	if p.at(token.LBracket) && isBindingIdent(p.peek(1)) && p.peek(2).Kind == token.Colon {
		id := p.parseIndexSignature(start)
		p.node(id).Flags |= flags
		p.consumeSemicolon()
		p.node(id).Span = p.spanFrom(start)
		return id
	}

	op := "method"
	if (p.atWord("get") || p.atWord("set")) && isModifierPosition(p.peek(1)) {
		op = p.advance().Text
	}
	if p.at(token.Star) {
		p.failHere(diag.SynUnsupportedSyntax, "generator methods are not supported")
	}

	key, computed := p.parsePropertyKey()
	if computed {
		flags |= ast.FlagComputed
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	} else if p.at(token.Bang) && !p.tok().NewlineBefore {
		p.advance()
		flags |= ast.FlagDefinite
	}

	if p.at(token.LParen) || p.at(token.Lt) {
		if op == "method" && !computed && !flags.Has(ast.FlagStatic) && p.keyIs(key, "constructor") {
			op = "constructor"
			p.inCtor = true
		}
		vstart := p.tok().Span.Start
		value := p.parseFunctionRest(ast.FunctionExpression, vstart, ast.NoNodeID)
		p.inCtor = false
		p.node(value).Flags |= flags & ast.FlagAsync
		id := p.finish(ast.MethodDefinition, start, key, value)
		n := p.node(id)
		n.Flags |= flags
		n.Op = op
		return id
	}
	if op != "method" {
		p.failHere(diag.SynUnexpectedToken, "expected '(' after accessor name")
	}

	var typ, value ast.NodeID
	if p.eat(token.Colon) {
		typ = p.parseType()
	}
	if p.eat(token.Assign) {
		value = p.parseAssignment()
	}
	p.consumeSemicolon()
	id := p.finish(ast.PropertyDefinition, start, key, typ, value)
	p.node(id).Flags |= flags
	return id
}

// keyIs: ключ члена является идентификатором или строкой с текстом name.
func (p *Parser) keyIs(key ast.NodeID, name string) bool {
	n := p.node(key)
	switch n.Kind {
	case ast.Identifier:
		return p.tree.Name(key) == name
	case ast.Literal:
		return n.Lit == ast.LitString && len(n.Value) >= 2 && n.Value[1:len(n.Value)-1] == name
	}
	return false
}

// parsePropertyKey: имя, строка, число, #private или [computed].
func (p *Parser) parsePropertyKey() (ast.NodeID, bool) {
	tok := p.tok()
	switch {
	case tok.Kind == token.LBracket:
		p.advance()
		key := p.parseAssignment()
		p.expect(token.RBracket)
		return key, true
	case tok.Kind == token.PrivateName:
		p.advance()
		id := p.tree.New(ast.PrivateIdentifier, tok.Span)
		p.node(id).Name = p.intern(tok.Text[1:])
		return id, false
	case tok.Kind == token.StringLit || tok.Kind == token.NumberLit || tok.Kind == token.BigIntLit:
		return p.parseLiteral(), false
	case tok.IsWord():
		return p.ident(), false
	}
	p.failHere(diag.SynExpectIdentifier, "expected property name, got "+describe(tok))
	return ast.NoNodeID, false
}
