package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// keywordTypes: имена, которые в позиции типа дают TSKeywordType.
var keywordTypes = map[string]bool{
	"any": true, "unknown": true, "number": true, "string": true, "boolean": true,
	"bigint": true, "symbol": true, "object": true, "never": true, "undefined": true,
	"intrinsic": true,
}

// parseType разбирает тип, включая функциональные и условные.
func (p *Parser) parseType() ast.NodeID {
	if p.isStartOfFunctionType() {
		return p.parseFunctionType(ast.TSFunctionType)
	}
	if p.atWord("abstract") && p.peek(1).Kind == token.KwNew {
		p.advance()
		return p.parseFunctionType(ast.TSConstructorType)
	}
	if p.at(token.KwNew) {
		return p.parseFunctionType(ast.TSConstructorType)
	}

	start := p.tok().Span.Start
	check := p.parseUnionType()
	if !p.at(token.KwExtends) || p.tok().NewlineBefore {
		return check
	}
	p.advance()
	ext := p.parseUnionType()
	p.expect(token.Question)
	trueType := p.parseType()
	p.expect(token.Colon)
	falseType := p.parseType()
	return p.finish(ast.TSConditionalType, start, check, ext, trueType, falseType)
}

// isStartOfFunctionType: `<T>(...) =>` или `(...) =>`.
func (p *Parser) isStartOfFunctionType() bool {
	if p.at(token.Lt) {
		return true
	}
	if !p.at(token.LParen) {
		return false
	}
	return p.lookahead(func() bool {
		p.parseParams()
		return p.at(token.FatArrow)
	})
}

// parseFunctionType: [new] <T>(params) => R
func (p *Parser) parseFunctionType(kind ast.Kind) ast.NodeID {
	start := p.tok().Span.Start
	p.eat(token.KwNew)
	tp := p.parseTypeParamsOpt()
	params := p.parseParams()
	p.expect(token.FatArrow)
	ret := p.parseReturnType()
	return p.finishList(kind, start, params, tp, ret)
}

// parseReturnType допускает предикаты `x is T`, `asserts x`, `asserts x is T`.
func (p *Parser) parseReturnType() ast.NodeID {
	start := p.tok().Span.Start
	tok := p.tok()
	next := p.peek(1)
	asserts := tok.Is("asserts") && (next.Kind == token.Ident || next.Kind == token.KwThis) && !next.NewlineBefore
	if asserts {
		p.advance()
		tok, next = p.tok(), p.peek(1)
	}
	if (tok.Kind == token.Ident || tok.Kind == token.KwThis) && (asserts || next.Is("is")) && !next.NewlineBefore {
		var param ast.NodeID
		if tok.Kind == token.KwThis {
			p.advance()
			param = p.finish(ast.TSThisType, tok.Span.Start)
		} else {
			param = p.ident()
		}
		var typ ast.NodeID
		if p.eatWord("is") {
			typ = p.parseType()
		}
		id := p.finish(ast.TSTypePredicate, start, param, typ)
		if asserts {
			p.node(id).Op = "asserts"
		}
		return id
	}
	return p.parseType()
}

func (p *Parser) parseUnionType() ast.NodeID {
	return p.parseListType(ast.TSUnionType, token.Pipe, p.parseIntersectionType)
}

func (p *Parser) parseIntersectionType() ast.NodeID {
	return p.parseListType(ast.TSIntersectionType, token.Amp, p.parseTypeOperator)
}

// parseListType: [sep] T (sep T)*; одиночный тип не оборачивается.
func (p *Parser) parseListType(kind ast.Kind, sep token.Kind, elem func() ast.NodeID) ast.NodeID {
	start := p.tok().Span.Start
	leading := p.eat(sep)
	first := elem()
	if !p.at(sep) {
		if leading {
			p.node(first).Span.Start = start
		}
		return first
	}
	list := []ast.NodeID{first}
	for p.eat(sep) {
		list = append(list, elem())
	}
	return p.finishList(kind, start, list)
}

func (p *Parser) parseTypeOperator() ast.NodeID {
	tok := p.tok()
	start := tok.Span.Start
	switch {
	case tok.Is("keyof") || tok.Is("unique") || tok.Is("readonly"):
		if next := p.peek(1); next.Kind == token.RParen || next.Kind == token.Comma || next.Kind == token.Pipe {
			break // использование как имени типа
		}
		p.advance()
		operand := p.parseTypeOperator()
		id := p.finish(ast.TSTypeOperator, start, operand)
		p.node(id).Op = tok.Text
		return id
	case tok.Is("infer"):
		p.advance()
		ptok := p.tok()
		if !isBindingIdent(ptok) {
			p.failHere(diag.SynExpectIdentifier, "expected type parameter name after 'infer'")
		}
		p.advance()
		var constraint ast.NodeID
		if p.at(token.KwExtends) {
			// `infer U extends X ? ...`: extends относится к условному типу
			constraint = p.tryParse(func() ast.NodeID {
				p.advance()
				c := p.parseUnionType()
				if p.at(token.Question) {
					p.failHere(diag.SynUnexpectedToken, "conditional type")
				}
				return c
			})
		}
		param := p.finish(ast.TSTypeParameter, ptok.Span.Start, constraint)
		p.node(param).Name = p.intern(ptok.Text)
		return p.finish(ast.TSInferType, start, param)
	}
	return p.parsePostfixType()
}

// parsePostfixType: T[] и T[K]
func (p *Parser) parsePostfixType() ast.NodeID {
	start := p.tok().Span.Start
	typ := p.parsePrimaryType()
	for p.at(token.LBracket) && !p.tok().NewlineBefore {
		p.advance()
		if p.eat(token.RBracket) {
			typ = p.finish(ast.TSArrayType, start, typ)
			continue
		}
		index := p.parseType()
		p.expect(token.RBracket)
		typ = p.finish(ast.TSIndexedAccessType, start, typ, index)
	}
	return typ
}

func (p *Parser) parsePrimaryType() ast.NodeID {
	tok := p.tok()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		if keywordTypes[tok.Text] && p.peek(1).Kind != token.Dot {
			p.advance()
			id := p.finish(ast.TSKeywordType, start)
			p.node(id).Name = p.intern(tok.Text)
			return id
		}
		return p.parseTypeReference()
	case token.KwVoid, token.KwNull:
		p.advance()
		id := p.finish(ast.TSKeywordType, start)
		p.node(id).Name = p.intern(tok.Text)
		return id
	case token.KwThis:
		p.advance()
		return p.finish(ast.TSThisType, start)
	case token.StringLit, token.NumberLit, token.BigIntLit, token.KwTrue, token.KwFalse:
		lit := p.parseLiteral()
		return p.finish(ast.TSLiteralType, start, lit)
	case token.Minus:
		if k := p.peek(1).Kind; k == token.NumberLit || k == token.BigIntLit {
			p.advance()
			lit := p.parseLiteral()
			neg := p.finish(ast.UnaryExpression, start, lit)
			p.node(neg).Op = "-"
			p.node(neg).Flags |= ast.FlagPrefix
			return p.finish(ast.TSLiteralType, start, neg)
		}
	case token.NoSubstTemplate, token.TemplateHead:
		return p.finish(ast.TSLiteralType, start, p.parseTemplateType())
	case token.KwTypeof:
		p.advance()
		if p.at(token.KwImport) {
			p.failHere(diag.SynUnsupportedSyntax, "import types are not supported")
		}
		name := p.parseEntityName(true)
		return p.finish(ast.TSTypeQuery, start, name)
	case token.KwImport:
		p.failHere(diag.SynUnsupportedSyntax, "import types are not supported")
	case token.LParen:
		p.advance()
		typ := p.parseType()
		p.expect(token.RParen)
		p.node(typ).Flags |= ast.FlagParenthesized
		return typ
	case token.LBracket:
		return p.parseTupleType()
	case token.LBrace:
		if p.isStartOfMappedType() {
			return p.parseMappedType()
		}
		members := p.parseTypeMembers()
		return p.finishList(ast.TSTypeLiteral, start, members)
	}
	p.failHere(diag.SynExpectType, "expected type, got "+describe(tok))
	return ast.NoNodeID
}

// parseTemplateType: шаблонный литеральный тип; подстановки содержат типы.
func (p *Parser) parseTemplateType() ast.NodeID {
	start := p.tok().Span.Start
	list := []ast.NodeID{p.templateElement()}
	if p.toks[p.pos-1].Kind == token.NoSubstTemplate {
		return p.finishList(ast.TemplateLiteral, start, list)
	}
	for {
		list = append(list, p.parseType())
		switch p.kind() {
		case token.TemplateMiddle:
			list = append(list, p.templateElement())
			continue
		case token.TemplateTail:
			list = append(list, p.templateElement())
		default:
			p.failHere(diag.SynUnexpectedToken, "expected '}' to close template substitution")
		}
		break
	}
	return p.finishList(ast.TemplateLiteral, start, list)
}

// parseEntityName: A.B.C; в typeof допускаются ключевые слова после точки.
func (p *Parser) parseEntityName(allowThis bool) ast.NodeID {
	start := p.tok().Span.Start
	var name ast.NodeID
	switch {
	case p.at(token.Ident):
		name = p.ident()
	case allowThis && p.at(token.KwThis):
		tok := p.advance()
		name = p.tree.New(ast.Identifier, tok.Span)
		p.node(name).Name = p.intern("this")
	default:
		p.failHere(diag.SynExpectIdentifier, "expected type name, got "+describe(p.tok()))
	}
	for p.at(token.Dot) {
		p.advance()
		right := p.parseMemberName()
		name = p.finish(ast.TSQualifiedName, start, name, right)
	}
	return name
}

// parseTypeReference: Name[.Name]*[<Args>]
func (p *Parser) parseTypeReference() ast.NodeID {
	start := p.tok().Span.Start
	name := p.parseEntityName(false)
	var args []ast.NodeID
	if p.at(token.Lt) && !p.tok().NewlineBefore {
		args = p.parseTypeArgs()
	}
	return p.finishList(ast.TSTypeReference, start, args, name)
}

// parseTypeArgs: <A, B>; закрывающий '>' всегда отдельный токен.
func (p *Parser) parseTypeArgs() []ast.NodeID {
	p.expect(token.Lt)
	var args []ast.NodeID
	for !p.at(token.Gt) && !p.at(token.EOF) {
		args = append(args, p.parseType())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt)
	return args
}

func (p *Parser) parseTypeArgsNode() ast.NodeID {
	start := p.tok().Span.Start
	args := p.parseTypeArgs()
	return p.finishList(ast.TSTypeParameterInstantiation, start, args)
}

// parseTypeParamsOpt: <T extends C = D, const U>
func (p *Parser) parseTypeParamsOpt() ast.NodeID {
	if !p.at(token.Lt) {
		return ast.NoNodeID
	}
	start := p.advance().Span.Start
	var params []ast.NodeID
	for !p.at(token.Gt) && !p.at(token.EOF) {
		pstart := p.tok().Span.Start
		var flags ast.Flags
		if p.at(token.KwConst) {
			p.advance()
			flags |= ast.FlagConst
		}
		// модификаторы вариантности: <in T>, <out T>
		for (p.at(token.KwIn) || p.atWord("out")) && isBindingIdent(p.peek(1)) {
			p.advance()
		}
		tok := p.tok()
		if !isBindingIdent(tok) {
			p.failHere(diag.SynExpectIdentifier, "expected type parameter name, got "+describe(tok))
		}
		p.advance()
		var constraint, def ast.NodeID
		if p.eat(token.KwExtends) {
			constraint = p.parseType()
		}
		if p.eat(token.Assign) {
			def = p.parseType()
		}
		id := p.finish(ast.TSTypeParameter, pstart, constraint, def)
		n := p.node(id)
		n.Name = p.intern(tok.Text)
		n.Flags |= flags
		params = append(params, id)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt)
	return p.finishList(ast.TSTypeParameterDeclaration, start, params)
}

// parseTupleType: [A, B?, ...C, name: D]
func (p *Parser) parseTupleType() ast.NodeID {
	start := p.expect(token.LBracket).Span.Start
	var elems []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		estart := p.tok().Span.Start
		rest := p.eat(token.DotDotDot)
		// именованный элемент: метку в дереве не храним
		optional := false
		if p.tok().IsWord() {
			if next := p.peek(1); next.Kind == token.Colon {
				p.advance()
				p.advance()
			} else if next.Kind == token.Question && p.peek(2).Kind == token.Colon {
				p.advance()
				p.advance()
				p.advance()
				optional = true
			}
		}
		elem := p.parseType()
		if !optional && p.at(token.Question) {
			p.advance()
			optional = true
		}
		if optional {
			elem = p.finish(ast.TSOptionalType, estart, elem)
		}
		if rest {
			elem = p.finish(ast.TSRestType, estart, elem)
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	return p.finishList(ast.TSTupleType, start, elems)
}

func (p *Parser) isStartOfMappedType() bool {
	return p.lookahead(func() bool {
		p.advance() // {
		if p.at(token.Plus) || p.at(token.Minus) {
			p.advance()
			if !p.atWord("readonly") {
				return false
			}
		}
		p.eatWord("readonly")
		return p.eat(token.LBracket) && isBindingIdent(p.tok()) && p.peek(1).Kind == token.KwIn
	})
}

// parseMappedType: { readonly [K in T as N]?: V }
func (p *Parser) parseMappedType() ast.NodeID {
	start := p.expect(token.LBrace).Span.Start
	var flags ast.Flags
	if p.at(token.Plus) || p.at(token.Minus) {
		p.advance()
	}
	if p.eatWord("readonly") {
		flags |= ast.FlagReadonly
	}
	p.expect(token.LBracket)
	ptok := p.advance()
	p.expect(token.KwIn)
	constraint := p.parseType()
	param := p.finish(ast.TSTypeParameter, ptok.Span.Start, constraint)
	p.node(param).Name = p.intern(ptok.Text)
	var nameType ast.NodeID
	if p.eatWord("as") {
		nameType = p.parseType()
	}
	p.expect(token.RBracket)
	if p.at(token.Plus) || p.at(token.Minus) {
		p.advance()
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	}
	var typ ast.NodeID
	if p.eat(token.Colon) {
		typ = p.parseType()
	}
	p.eat(token.Semicolon)
	p.expect(token.RBrace)
	id := p.finish(ast.TSMappedType, start, param, nameType, typ)
	p.node(id).Flags |= flags
	return id
}

// parseTypeMembers: тело интерфейса или литерального типа в фигурных скобках.
func (p *Parser) parseTypeMembers() []ast.NodeID {
	p.expect(token.LBrace)
	var members []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		members = append(members, p.parseTypeMember())
		if !p.eat(token.Semicolon) && !p.eat(token.Comma) && !p.at(token.RBrace) && !p.tok().NewlineBefore {
			p.failHere(diag.SynExpectSemicolon, "expected ';' or ',' between type members, got "+describe(p.tok()))
		}
	}
	p.expect(token.RBrace)
	return members
}

func (p *Parser) parseTypeMember() ast.NodeID {
	start := p.tok().Span.Start
	if p.at(token.LParen) || p.at(token.Lt) {
		tp := p.parseTypeParamsOpt()
		params := p.parseParams()
		var ret ast.NodeID
		if p.eat(token.Colon) {
			ret = p.parseReturnType()
		}
		return p.finishList(ast.TSCallSignatureDeclaration, start, params, tp, ret)
	}
	if p.at(token.KwNew) && (p.peek(1).Kind == token.LParen || p.peek(1).Kind == token.Lt) {
		p.advance()
		tp := p.parseTypeParamsOpt()
		params := p.parseParams()
		var ret ast.NodeID
		if p.eat(token.Colon) {
			ret = p.parseReturnType()
		}
		return p.finishList(ast.TSConstructSignatureDeclaration, start, params, tp, ret)
	}

	var flags ast.Flags
	if p.atWord("readonly") && isModifierPosition(p.peek(1)) {
		p.advance()
		flags |= ast.FlagReadonly
	}
	if p.at(token.LBracket) && isBindingIdent(p.peek(1)) && p.peek(2).Kind == token.Colon {
		id := p.parseIndexSignature(start)
		p.node(id).Flags |= flags
		return id
	}
	op := ""
	if (p.atWord("get") || p.atWord("set")) && isModifierPosition(p.peek(1)) {
		op = p.advance().Text
	}
	key, computed := p.parsePropertyKey()
	if computed {
		flags |= ast.FlagComputed
	}
	if p.eat(token.Question) {
		flags |= ast.FlagOptional
	}
	var id ast.NodeID
	if p.at(token.LParen) || p.at(token.Lt) {
		tp := p.parseTypeParamsOpt()
		params := p.parseParams()
		var ret ast.NodeID
		if p.eat(token.Colon) {
			ret = p.parseReturnType()
		}
		id = p.finishList(ast.TSMethodSignature, start, params, key, tp, ret)
		if op == "" {
			op = "method"
		}
	} else {
		var typ ast.NodeID
		if p.eat(token.Colon) {
			typ = p.parseType()
		}
		id = p.finish(ast.TSPropertySignature, start, key, typ)
	}
	n := p.node(id)
	n.Flags |= flags
	n.Op = op
	return id
}

// parseIndexSignature: [key: K, ...]: T
func (p *Parser) parseIndexSignature(start uint32) ast.NodeID {
	p.expect(token.LBracket)
	var params []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		params = append(params, p.parseBindingTarget(true))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket)
	var typ ast.NodeID
	if p.eat(token.Colon) {
		typ = p.parseType()
	}
	return p.finishList(ast.TSIndexSignature, start, params, typ)
}
