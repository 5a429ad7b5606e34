package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseTypeAlias: type Name<T> = Type;
func (p *Parser) parseTypeAlias(start uint32, flags ast.Flags) ast.NodeID {
	p.expectWord("type")
	name := p.ident()
	tp := p.parseTypeParamsOpt()
	p.expect(token.Assign)
	typ := p.parseType()
	p.consumeSemicolon()
	id := p.finish(ast.TSTypeAliasDeclaration, start, name, tp, typ)
	p.node(id).Flags |= flags
	return id
}

// parseInterface: interface Name<T> extends A, B { members }
func (p *Parser) parseInterface(start uint32, flags ast.Flags) ast.NodeID {
	p.expectWord("interface")
	name := p.ident()
	tp := p.parseTypeParamsOpt()
	var extends []ast.NodeID
	if p.eat(token.KwExtends) {
		for {
			extends = append(extends, p.parseTypeReference())
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	bstart := p.tok().Span.Start
	members := p.parseTypeMembers()
	body := p.finishList(ast.TSInterfaceBody, bstart, members)
	id := p.finishList(ast.TSInterfaceDeclaration, start, extends, name, tp, body)
	p.node(id).Flags |= flags
	return id
}

// parseEnum: enum Name { A, B = 1, "c" }; текущий токен: `enum`.
func (p *Parser) parseEnum(start uint32, flags ast.Flags) ast.NodeID {
	p.expect(token.KwEnum)
	if !isBindingIdent(p.tok()) {
		p.failHere(diag.SynExpectIdentifier, "expected enum name, got "+describe(p.tok()))
	}
	name := p.ident()
	p.expect(token.LBrace)
	var members []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mstart := p.tok().Span.Start
		var key ast.NodeID
		switch tok := p.tok(); {
		case tok.Kind == token.StringLit:
			key = p.parseLiteral()
		case tok.IsWord():
			key = p.ident()
		default:
			p.failHere(diag.SynExpectIdentifier, "expected enum member name, got "+describe(tok))
		}
		var init ast.NodeID
		if p.eat(token.Assign) {
			init = p.parseAssignment()
		}
		members = append(members, p.finish(ast.TSEnumMember, mstart, key, init))
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	id := p.finishList(ast.TSEnumDeclaration, start, members, name)
	p.node(id).Flags |= flags
	return id
}
