package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseImport разбирает import-декларацию или `import x = require("m")`.
func (p *Parser) parseImport() ast.NodeID {
	start := p.expect(token.KwImport).Span.Start

	// import "side-effect";
	if p.at(token.StringLit) {
		src := p.parseLiteral()
		p.skipImportAttributes()
		p.consumeSemicolon()
		return p.finish(ast.ImportDeclaration, start, src)
	}

	var flags ast.Flags
	if p.atWord("type") {
		next := p.peek(1)
		typeIsName := next.Is("from") && p.peek(2).Kind == token.StringLit
		if !typeIsName && (next.Kind == token.Ident || next.Kind == token.LBrace || next.Kind == token.Star) {
			p.advance()
			flags |= ast.FlagTypeOnly
		}
	}

	var specs []ast.NodeID
	if isBindingIdent(p.tok()) {
		if p.peek(1).Kind == token.Assign {
			return p.parseImportEquals(start, flags)
		}
		sstart := p.tok().Span.Start
		local := p.ident()
		specs = append(specs, p.finish(ast.ImportDefaultSpecifier, sstart, local))
		if !p.eat(token.Comma) {
			return p.finishImport(start, specs, flags)
		}
	}
	switch {
	case p.at(token.Star):
		sstart := p.advance().Span.Start
		p.expectWord("as")
		local := p.ident()
		specs = append(specs, p.finish(ast.ImportNamespaceSpecifier, sstart, local))
	case p.at(token.LBrace):
		specs = append(specs, p.parseSpecifiers(ast.ImportSpecifier)...)
	default:
		p.failHere(diag.SynUnexpectedToken, "expected import clause, got "+describe(p.tok()))
	}
	return p.finishImport(start, specs, flags)
}

func (p *Parser) finishImport(start uint32, specs []ast.NodeID, flags ast.Flags) ast.NodeID {
	p.expectWord("from")
	src := p.parseModuleSource()
	p.skipImportAttributes()
	p.consumeSemicolon()
	id := p.finishList(ast.ImportDeclaration, start, specs, src)
	p.node(id).Flags |= flags
	return id
}

// parseImportEquals: import x = require("m") | import x = A.B
func (p *Parser) parseImportEquals(start uint32, flags ast.Flags) ast.NodeID {
	name := p.ident()
	p.expect(token.Assign)
	var ref ast.NodeID
	if p.atWord("require") && p.peek(1).Kind == token.LParen {
		rstart := p.advance().Span.Start
		p.expect(token.LParen)
		src := p.parseModuleSource()
		p.expect(token.RParen)
		ref = p.finish(ast.TSExternalModuleReference, rstart, src)
	} else {
		ref = p.parseEntityName(false)
	}
	p.consumeSemicolon()
	id := p.finish(ast.TSImportEqualsDeclaration, start, name, ref)
	p.node(id).Flags |= flags
	return id
}

func (p *Parser) parseModuleSource() ast.NodeID {
	if !p.at(token.StringLit) {
		p.failHere(diag.SynUnexpectedToken, "expected module specifier string, got "+describe(p.tok()))
	}
	return p.parseLiteral()
}

// skipImportAttributes пропускает `with { type: "json" }`; в дереве они не хранятся.
func (p *Parser) skipImportAttributes() {
	if (p.atWord("with") || p.at(token.KwWith) || p.atWord("assert")) && p.peek(1).Kind == token.LBrace && !p.tok().NewlineBefore {
		p.advance()
		p.parseObjectLiteral()
	}
}

// parseSpecifiers: { a, b as c, type d, "str" as e }
// Второй слот спецификатора пуст, если имена совпадают.
func (p *Parser) parseSpecifiers(kind ast.Kind) []ast.NodeID {
	p.expect(token.LBrace)
	var specs []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.tok().Span.Start
		var flags ast.Flags
		if p.atWord("type") {
			if next := p.peek(1); next.IsWord() || next.Kind == token.StringLit {
				if !(next.Is("as") && !p.peek(2).IsWord()) {
					p.advance()
					flags |= ast.FlagTypeOnly
				}
			}
		}
		first := p.parseModuleExportName()
		var second ast.NodeID
		if p.eatWord("as") {
			second = p.parseModuleExportName()
			if p.tree.Name(first) == p.tree.Name(second) && p.tree.Kind(first) == p.tree.Kind(second) &&
				p.tree.Kind(first) == ast.Identifier {
				second = ast.NoNodeID
			}
		}
		id := p.finish(kind, start, first, second)
		p.node(id).Flags |= flags
		specs = append(specs, id)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace)
	return specs
}

func (p *Parser) parseModuleExportName() ast.NodeID {
	tok := p.tok()
	switch {
	case tok.Kind == token.StringLit:
		return p.parseLiteral()
	case tok.IsWord():
		return p.ident()
	}
	p.failHere(diag.SynExpectIdentifier, "expected name, got "+describe(tok))
	return ast.NoNodeID
}

// parseExport разбирает все формы export.
func (p *Parser) parseExport() ast.NodeID {
	start := p.expect(token.KwExport).Span.Start

	switch {
	case p.at(token.KwDefault):
		p.advance()
		var decl ast.NodeID
		tok := p.tok()
		switch {
		case tok.Kind == token.KwFunction, tok.Kind == token.KwClass,
			tok.Is("async") && p.peek(1).Kind == token.KwFunction && !p.peek(1).NewlineBefore,
			tok.Is("abstract") && p.peek(1).Kind == token.KwClass,
			tok.Is("interface") && p.peek(1).Kind == token.Ident:
			decl = p.parseStatement()
		default:
			decl = p.parseAssignment()
			p.consumeSemicolon()
		}
		return p.finish(ast.ExportDefaultDeclaration, start, decl)

	case p.at(token.Assign):
		p.advance()
		expr := p.parseExpression()
		p.consumeSemicolon()
		return p.finish(ast.TSExportAssignment, start, expr)

	case p.atWord("as") && p.peek(1).Is("namespace"):
		p.failHere(diag.SynUnsupportedSyntax, "'export as namespace' is not supported")

	case p.at(token.Star) || (p.atWord("type") && p.peek(1).Kind == token.Star):
		var flags ast.Flags
		if p.eatWord("type") {
			flags |= ast.FlagTypeOnly
		}
		p.advance() // *
		var exported ast.NodeID
		if p.eatWord("as") {
			exported = p.parseModuleExportName()
		}
		p.expectWord("from")
		src := p.parseModuleSource()
		p.skipImportAttributes()
		p.consumeSemicolon()
		id := p.finish(ast.ExportAllDeclaration, start, exported, src)
		p.node(id).Flags |= flags
		return id

	case p.at(token.LBrace) || (p.atWord("type") && p.peek(1).Kind == token.LBrace):
		var flags ast.Flags
		if p.eatWord("type") {
			flags |= ast.FlagTypeOnly
		}
		specs := p.parseSpecifiers(ast.ExportSpecifier)
		var src ast.NodeID
		if p.eatWord("from") {
			src = p.parseModuleSource()
			p.skipImportAttributes()
		}
		p.consumeSemicolon()
		id := p.finishList(ast.ExportNamedDeclaration, start, specs, ast.NoNodeID, src)
		p.node(id).Flags |= flags
		return id
	}

	var decl ast.NodeID
	if p.at(token.KwImport) {
		decl = p.parseImport()
		if p.tree.Kind(decl) != ast.TSImportEqualsDeclaration {
			p.fail(diag.SynUnexpectedToken, p.tree.Span(decl), "expected declaration after 'export'")
		}
	} else {
		decl = p.parseStatement()
	}
	switch p.tree.Kind(decl) {
	case ast.VariableDeclaration, ast.FunctionDeclaration, ast.ClassDeclaration,
		ast.TSTypeAliasDeclaration, ast.TSInterfaceDeclaration, ast.TSEnumDeclaration,
		ast.TSImportEqualsDeclaration:
	default:
		p.fail(diag.SynUnexpectedToken, p.tree.Span(decl), "expected declaration after 'export'")
	}
	return p.finish(ast.ExportNamedDeclaration, start, decl)
}
