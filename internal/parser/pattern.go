package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseBindingTarget разбирает цель привязки; при allowType допускаются
// `?`, `!` и аннотация типа.
func (p *Parser) parseBindingTarget(allowType bool) ast.NodeID {
	start := p.tok().Span.Start
	target := p.parseBindingPattern()
	if !allowType {
		return target
	}
	n := p.node(target)
	if p.at(token.Question) && n.Kind == ast.Identifier {
		p.advance()
		n.Flags |= ast.FlagOptional
		n.Span = p.spanFrom(start)
	} else if p.at(token.Bang) && !p.tok().NewlineBefore && n.Kind == ast.Identifier {
		p.advance()
		n.Flags |= ast.FlagDefinite
		n.Span = p.spanFrom(start)
	}
	p.parseTypeAnnotationInto(target, start)
	return target
}

// parseTypeAnnotationInto кладёт `: T` в нулевой слот цели и растягивает её span.
func (p *Parser) parseTypeAnnotationInto(target ast.NodeID, start uint32) {
	if !p.eat(token.Colon) {
		return
	}
	typ := p.parseType()
	n := p.node(target)
	n.Slots[ast.PatternType] = typ
	n.Span = p.spanFrom(start)
}

// parseBindingPattern: идентификатор, [a, b] или {a, b: c}.
func (p *Parser) parseBindingPattern() ast.NodeID {
	switch tok := p.tok(); {
	case isBindingIdent(tok):
		return p.ident()
	case tok.Kind == token.LBracket:
		return p.parseArrayPattern()
	case tok.Kind == token.LBrace:
		return p.parseObjectPattern()
	default:
		p.failHere(diag.SynExpectIdentifier, "expected binding name, got "+describe(tok))
	}
	return ast.NoNodeID
}

// parseBindingElement: pattern [= default]
func (p *Parser) parseBindingElement() ast.NodeID {
	start := p.tok().Span.Start
	target := p.parseBindingPattern()
	if p.eat(token.Assign) {
		def := p.parseAssignment()
		return p.finish(ast.AssignmentPattern, start, target, def)
	}
	return target
}

func (p *Parser) parseArrayPattern() ast.NodeID {
	start := p.expect(token.LBracket).Span.Start
	var elems []ast.NodeID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.eat(token.Comma) {
			elems = append(elems, ast.NoNodeID)
			continue
		}
		if p.at(token.DotDotDot) {
			elems = append(elems, p.parseRestElement(false))
		} else {
			elems = append(elems, p.parseBindingElement())
		}
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBracket)
	return p.finishList(ast.ArrayPattern, start, elems)
}

func (p *Parser) parseObjectPattern() ast.NodeID {
	start := p.expect(token.LBrace).Span.Start
	var props []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pstart := p.tok().Span.Start
		if p.at(token.DotDotDot) {
			props = append(props, p.parseRestElement(false))
		} else {
			key, computed := p.parsePropertyKey()
			var prop ast.NodeID
			if p.eat(token.Colon) {
				value := p.parseBindingElement()
				prop = p.finish(ast.Property, pstart, key, value)
			} else {
				if computed || p.node(key).Kind != ast.Identifier {
					p.failHere(diag.SynUnexpectedToken, "expected ':' after property name")
				}
				value := key
				if p.eat(token.Assign) {
					def := p.parseAssignment()
					value = p.finish(ast.AssignmentPattern, pstart, key, def)
				}
				prop = p.finish(ast.Property, pstart, ast.NoNodeID, value)
				p.node(prop).Flags |= ast.FlagShorthand
			}
			if computed {
				p.node(prop).Flags |= ast.FlagComputed
			}
			p.node(prop).Op = "init"
			props = append(props, prop)
		}
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	return p.finishList(ast.ObjectPattern, start, props)
}

// toAssignTarget проверяет левую часть присваивания или for-in/of и
// переписывает литералы в паттерны.
func (p *Parser) toAssignTarget(id ast.NodeID) {
	n := p.node(id)
	switch n.Kind {
	case ast.VariableDeclaration:
		return
	case ast.ArrayExpression, ast.ObjectExpression:
		if n.Flags.Has(ast.FlagParenthesized) {
			break
		}
		p.toPattern(id)
		return
	}
	if !p.isSimpleTarget(id) {
		p.fail(diag.SynInvalidAssignment, n.Span, "invalid assignment target")
	}
}

// isSimpleTarget: идентификатор, обращение к члену или TS-обёртка над ними.
func (p *Parser) isSimpleTarget(id ast.NodeID) bool {
	n := p.node(id)
	switch n.Kind {
	case ast.Identifier, ast.MemberExpression:
		return true
	case ast.TSAsExpression, ast.TSSatisfiesExpression, ast.TSNonNullExpression:
		return p.isSimpleTarget(n.Slots[ast.AssertExpr])
	case ast.TSTypeAssertion:
		return p.isSimpleTarget(n.Slots[ast.AngleExpr])
	}
	return false
}

// toPattern переписывает выражение-литерал в паттерн на месте: виды узлов
// меняются, идентификаторы узлов сохраняются.
func (p *Parser) toPattern(id ast.NodeID) {
	if !id.IsValid() {
		return
	}
	n := p.node(id)
	switch n.Kind {
	case ast.Identifier, ast.MemberExpression, ast.ObjectPattern, ast.ArrayPattern:
	case ast.ArrayExpression:
		n.Kind = ast.ArrayPattern
		for i, el := range n.List {
			if !el.IsValid() {
				continue
			}
			if p.node(el).Kind == ast.SpreadElement && i != len(n.List)-1 {
				p.fail(diag.SynInvalidAssignment, p.tree.Span(el), "rest element must be last")
			}
			p.toPattern(el)
		}
	case ast.ObjectExpression:
		n.Kind = ast.ObjectPattern
		for _, prop := range n.List {
			pn := p.node(prop)
			switch {
			case pn.Kind == ast.SpreadElement:
				p.toPattern(prop)
			case pn.Kind == ast.Property && pn.Op == "init" && !pn.Flags.Has(ast.FlagMethod):
				p.toPattern(pn.Slots[ast.PropertyValue])
			default:
				p.fail(diag.SynInvalidAssignment, pn.Span, "invalid destructuring target")
			}
		}
	case ast.SpreadElement:
		n.Kind = ast.RestElement
		p.toPattern(n.Slots[ast.RestArg])
	case ast.AssignmentExpression:
		if n.Op != "=" {
			p.fail(diag.SynInvalidAssignment, n.Span, "invalid destructuring default")
		}
		n.Kind = ast.AssignmentPattern
		n.Op = ""
		p.toPattern(n.Slots[ast.Left])
	default:
		if !p.isSimpleTarget(id) {
			p.fail(diag.SynInvalidAssignment, n.Span, "invalid destructuring target")
		}
	}
}
