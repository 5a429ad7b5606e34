package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.tok()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident:
		if tok.Text == "async" && p.peek(1).Kind == token.KwFunction && !p.peek(1).NewlineBefore {
			p.advance()
			id := p.parseFunction(ast.FunctionExpression, start, ast.FlagAsync)
			return id
		}
		return p.ident()
	case token.KwThis:
		p.advance()
		return p.finish(ast.ThisExpression, start)
	case token.KwSuper:
		p.advance()
		return p.finish(ast.Super, start)
	case token.KwNull, token.KwTrue, token.KwFalse,
		token.NumberLit, token.BigIntLit, token.StringLit, token.RegExpLit:
		return p.parseLiteral()
	case token.NoSubstTemplate, token.TemplateHead:
		return p.parseTemplate()
	case token.LParen:
		p.advance()
		restore := p.allowIn()
		expr := p.parseExpression()
		restore()
		p.expect(token.RParen)
		p.node(expr).Flags |= ast.FlagParenthesized
		return expr
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(ast.FunctionExpression, start, 0)
	case token.KwClass:
		return p.parseClass(ast.ClassExpression, start, 0)
	case token.KwImport:
		p.advance()
		if p.eat(token.Dot) {
			meta := p.tree.New(ast.Identifier, tok.Span)
			p.node(meta).Name = p.intern("import")
			if !p.atWord("meta") {
				p.failHere(diag.SynUnexpectedToken, "expected 'meta' after 'import.'")
			}
			prop := p.ident()
			return p.finish(ast.MetaProperty, start, meta, prop)
		}
		p.expect(token.LParen)
		restore := p.allowIn()
		src := p.parseAssignment()
		if p.eat(token.Comma) && !p.at(token.RParen) {
			p.parseAssignment() // import attributes в дереве не храним
			p.eat(token.Comma)
		}
		restore()
		p.expect(token.RParen)
		return p.finish(ast.ImportExpression, start, src)
	case token.PrivateName:
		// `#x in obj`
		p.advance()
		id := p.tree.New(ast.PrivateIdentifier, tok.Span)
		p.node(id).Name = p.intern(tok.Text[1:])
		return id
	case token.At:
		p.failHere(diag.SynUnsupportedSyntax, "decorators are not supported")
	case token.Lt:
		p.failHere(diag.SynUnsupportedSyntax, "JSX is not supported")
	}
	p.failHere(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoNodeID
}

// parseLiteral создаёт Literal из текущего токена; Value: исходный текст.
func (p *Parser) parseLiteral() ast.NodeID {
	tok := p.advance()
	id := p.tree.New(ast.Literal, tok.Span)
	n := p.node(id)
	n.Value = tok.Text
	switch tok.Kind {
	case token.StringLit:
		n.Lit = ast.LitString
	case token.NumberLit:
		n.Lit = ast.LitNumber
	case token.BigIntLit:
		n.Lit = ast.LitBigInt
	case token.RegExpLit:
		n.Lit = ast.LitRegExp
	case token.KwTrue, token.KwFalse:
		n.Lit = ast.LitBoolean
	case token.KwNull:
		n.Lit = ast.LitNull
	}
	return id
}

// parseTemplate: элементы и подстановки идут в List вперемешку.
func (p *Parser) parseTemplate() ast.NodeID {
	start := p.tok().Span.Start
	list := []ast.NodeID{p.templateElement()}
	if p.toks[p.pos-1].Kind == token.NoSubstTemplate {
		return p.finishList(ast.TemplateLiteral, start, list)
	}
	restore := p.allowIn()
	defer restore()
	for {
		list = append(list, p.parseExpression())
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

func (p *Parser) templateElement() ast.NodeID {
	tok := p.advance()
	id := p.tree.New(ast.TemplateElement, tok.Span)
	p.node(id).Value = tok.Text
	return id
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	start := p.expect(token.LBracket).Span.Start
	restore := p.allowIn()
	defer restore()
	var elems []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.NoNodeID)
			continue
		}
		if p.at(token.DotDotDot) {
			sstart := p.advance().Span.Start
			arg := p.parseAssignment()
			elems = append(elems, p.finish(ast.SpreadElement, sstart, arg))
		} else {
			elems = append(elems, p.parseAssignment())
		}
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBracket)
	return p.finishList(ast.ArrayExpression, start, elems)
}

func (p *Parser) parseObjectLiteral() ast.NodeID {
	start := p.expect(token.LBrace).Span.Start
	restore := p.allowIn()
	defer restore()
	var props []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			sstart := p.advance().Span.Start
			arg := p.parseAssignment()
			props = append(props, p.finish(ast.SpreadElement, sstart, arg))
		} else {
			props = append(props, p.parseObjectMember())
		}
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return p.finishList(ast.ObjectExpression, start, props)
}

func (p *Parser) parseObjectMember() ast.NodeID {
	start := p.tok().Span.Start
	var flags ast.Flags
	op := "init"
	if p.atWord("async") && isModifierPosition(p.peek(1)) && !p.peek(1).NewlineBefore {
		p.advance()
		flags |= ast.FlagAsync
	}
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

	var id ast.NodeID
	switch {
	case p.at(token.LParen) || p.at(token.Lt):
		vstart := p.tok().Span.Start
		value := p.parseFunctionRest(ast.FunctionExpression, vstart, ast.NoNodeID)
		p.node(value).Flags |= flags & ast.FlagAsync
		if op == "init" {
			flags |= ast.FlagMethod
		}
		id = p.finish(ast.Property, start, key, value)
	case op != "init" || flags.Has(ast.FlagAsync):
		p.failHere(diag.SynUnexpectedToken, "expected '(' after method name")
	case p.eat(token.Colon):
		value := p.parseAssignment()
		id = p.finish(ast.Property, start, key, value)
	default:
		if computed || p.node(key).Kind != ast.Identifier {
			p.failHere(diag.SynUnexpectedToken, "expected ':' after property name")
		}
		value := key
		if p.eat(token.Assign) {
			// `{ a = 1 }` допустим только как паттерн; toPattern перепишет его
			def := p.parseAssignment()
			value = p.finish(ast.AssignmentExpression, start, key, def)
			p.node(value).Op = "="
		}
		id = p.finish(ast.Property, start, ast.NoNodeID, value)
		flags |= ast.FlagShorthand
	}
	n := p.node(id)
	n.Flags |= flags &^ ast.FlagAsync
	n.Op = op
	return id
}
