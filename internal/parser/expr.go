package parser

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// parseExpression: Expression (',' Expression)*
func (p *Parser) parseExpression() ast.NodeID {
	start := p.tok().Span.Start
	first := p.parseAssignment()
	if !p.at(token.Comma) {
		return first
	}
	list := []ast.NodeID{first}
	for p.eat(token.Comma) {
		list = append(list, p.parseAssignment())
	}
	return p.finishList(ast.SequenceExpression, start, list)
}

func (p *Parser) parseAssignment() ast.NodeID {
	if p.maybeArrow() {
		if id := p.tryArrow(); id.IsValid() {
			return id
		}
	}
	start := p.tok().Span.Start
	left := p.parseConditional()

	var op string
	ntok := 1
	switch {
	case p.kind().IsAssign():
		op = p.tok().Text
	case p.at(token.Gt):
		g, n := p.greater()
		if g == ">>=" || g == ">>>=" {
			op, ntok = g, n
		}
	}
	if op == "" {
		return left
	}
	if op == "=" {
		p.toAssignTarget(left)
	} else if !p.isSimpleTarget(left) {
		p.fail(diag.SynInvalidAssignment, p.tree.Span(left), "invalid assignment target")
	}
	for range ntok {
		p.advance()
	}
	right := p.parseAssignment()
	id := p.finish(ast.AssignmentExpression, start, left, right)
	p.node(id).Op = op
	return id
}

// maybeArrow: дешёвая проверка перед пробным разбором стрелочной функции.
func (p *Parser) maybeArrow() bool {
	tok := p.tok()
	switch tok.Kind {
	case token.LParen, token.Lt:
		return true
	case token.Ident:
		next := p.peek(1)
		if next.Kind == token.FatArrow {
			return true
		}
		return tok.Text == "async" && !next.NewlineBefore &&
			(next.Kind == token.LParen || next.Kind == token.Lt || (next.Kind == token.Ident && p.peek(2).Kind == token.FatArrow))
	}
	return false
}

// tryArrow пробует разобрать заголовок `(params): R =>`; тело разбирается
// уже без спекуляции, чтобы ошибки в нём не терялись.
func (p *Parser) tryArrow() ast.NodeID {
	start := p.tok().Span.Start
	var (
		flags   ast.Flags
		tp, ret ast.NodeID
		params  []ast.NodeID
	)
	ok := p.speculate(func() {
		if p.atWord("async") && p.peek(1).Kind != token.FatArrow {
			p.advance()
			flags |= ast.FlagAsync
		}
		if isBindingIdent(p.tok()) && p.peek(1).Kind == token.FatArrow {
			params = []ast.NodeID{p.ident()}
		} else {
			tp = p.parseTypeParamsOpt()
			params = p.parseParams()
			if p.eat(token.Colon) {
				ret = p.parseReturnType()
			}
		}
		if !p.at(token.FatArrow) || p.tok().NewlineBefore {
			p.failHere(diag.SynUnexpectedToken, "expected '=>'")
		}
	})
	if !ok {
		return ast.NoNodeID
	}
	p.advance() // =>
	var body ast.NodeID
	if p.at(token.LBrace) {
		body = p.parseFunctionBody()
	} else {
		body = p.parseAssignment()
		flags |= ast.FlagExpressionBody
	}
	id := p.finishList(ast.ArrowFunctionExpression, start, params, ast.NoNodeID, tp, ret, body)
	p.node(id).Flags |= flags
	return id
}

func (p *Parser) parseConditional() ast.NodeID {
	start := p.tok().Span.Start
	test := p.parseBinary(0)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	restore := p.allowIn()
	cons := p.parseAssignment()
	restore()
	p.expect(token.Colon)
	alt := p.parseAssignment()
	return p.finish(ast.ConditionalExpression, start, test, cons, alt)
}

// binaryOp возвращает текущий бинарный оператор, число его токенов и приоритет
// (0: не бинарный оператор).
func (p *Parser) binaryOp() (string, int, int) {
	tok := p.tok()
	switch tok.Kind {
	case token.QuestionQ:
		return tok.Text, 1, 1
	case token.OrOr:
		return tok.Text, 1, 2
	case token.AndAnd:
		return tok.Text, 1, 3
	case token.Pipe:
		return tok.Text, 1, 4
	case token.Caret:
		return tok.Text, 1, 5
	case token.Amp:
		return tok.Text, 1, 6
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return tok.Text, 1, 7
	case token.Lt, token.LtEq, token.KwInstanceof:
		return tok.Text, 1, 8
	case token.KwIn:
		if p.noIn {
			return "", 0, 0
		}
		return tok.Text, 1, 8
	case token.Gt:
		op, n := p.greater()
		switch op {
		case ">", ">=":
			return op, n, 8
		case ">>", ">>>":
			return op, n, 9
		}
		return "", 0, 0 // >>= и >>>=: присваивания
	case token.Shl:
		return tok.Text, 1, 9
	case token.Plus, token.Minus:
		return tok.Text, 1, 10
	case token.Star, token.Slash, token.Percent:
		return tok.Text, 1, 11
	case token.StarStar:
		return tok.Text, 1, 12
	case token.Ident:
		if (tok.Text == "as" || tok.Text == "satisfies") && !tok.NewlineBefore {
			return tok.Text, 1, 8
		}
	}
	return "", 0, 0
}

// parseBinary: разбор бинарных выражений подъёмом приоритетов.
func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	start := p.tok().Span.Start
	left := p.parseUnary()
	for {
		op, ntok, prec := p.binaryOp()
		if prec == 0 || prec <= minPrec {
			return left
		}
		if op == "as" || op == "satisfies" {
			p.advance()
			typ := p.parseAssertedType()
			kind := ast.TSAsExpression
			if op == "satisfies" {
				kind = ast.TSSatisfiesExpression
			}
			left = p.finish(kind, start, left, typ)
			continue
		}
		for range ntok {
			p.advance()
		}
		next := prec
		if op == "**" {
			next = prec - 1 // правоассоциативный
		}
		right := p.parseBinary(next)
		kind := ast.BinaryExpression
		if op == "&&" || op == "||" || op == "??" {
			kind = ast.LogicalExpression
		}
		left = p.finish(kind, start, left, right)
		p.node(left).Op = op
	}
}

// parseAssertedType: тип после `as`/`satisfies` или внутри `<T>x`; допускает `const`.
func (p *Parser) parseAssertedType() ast.NodeID {
	if p.at(token.KwConst) {
		tok := p.advance()
		name := p.tree.New(ast.Identifier, tok.Span)
		p.node(name).Name = p.intern("const")
		return p.finish(ast.TSTypeReference, tok.Span.Start, name)
	}
	return p.parseType()
}

func (p *Parser) parseUnary() ast.NodeID {
	tok := p.tok()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.KwTypeof, token.KwVoid, token.KwDelete:
		p.advance()
		arg := p.parseUnary()
		id := p.finish(ast.UnaryExpression, start, arg)
		n := p.node(id)
		n.Op = tok.Text
		n.Flags |= ast.FlagPrefix
		return id
	case token.PlusPlus, token.MinusMinus:
		p.advance()
		arg := p.parseUnary()
		if !p.isSimpleTarget(arg) {
			p.fail(diag.SynInvalidAssignment, p.tree.Span(arg), "invalid increment/decrement operand")
		}
		id := p.finish(ast.UpdateExpression, start, arg)
		n := p.node(id)
		n.Op = tok.Text
		n.Flags |= ast.FlagPrefix
		return id
	case token.Lt:
		// `<T>expr`; обобщённые стрелки уже отсеяны в parseAssignment
		p.advance()
		typ := p.parseAssertedType()
		p.expect(token.Gt)
		expr := p.parseUnary()
		return p.finish(ast.TSTypeAssertion, start, typ, expr)
	case token.Ident:
		if tok.Text == "await" && canStartExpression(p.peek(1)) && !p.peek(1).NewlineBefore {
			p.advance()
			arg := p.parseUnary()
			return p.finish(ast.AwaitExpression, start, arg)
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.NodeID {
	start := p.tok().Span.Start
	expr := p.parseLeftHandSide(true)
	if (p.at(token.PlusPlus) || p.at(token.MinusMinus)) && !p.tok().NewlineBefore {
		if !p.isSimpleTarget(expr) {
			p.fail(diag.SynInvalidAssignment, p.tree.Span(expr), "invalid increment/decrement operand")
		}
		op := p.advance().Text
		id := p.finish(ast.UpdateExpression, start, expr)
		p.node(id).Op = op
		return id
	}
	return expr
}

// parseLeftHandSide: new/primary и хвост из обращений к членам и вызовов.
func (p *Parser) parseLeftHandSide(allowCall bool) ast.NodeID {
	start := p.tok().Span.Start
	var expr ast.NodeID
	if p.at(token.KwNew) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	return p.parseCallTail(start, expr, allowCall)
}

func (p *Parser) parseNew() ast.NodeID {
	newTok := p.advance()
	start := newTok.Span.Start
	if p.eat(token.Dot) {
		meta := p.tree.New(ast.Identifier, newTok.Span)
		p.node(meta).Name = p.intern("new")
		if !p.atWord("target") {
			p.failHere(diag.SynUnexpectedToken, "expected 'target' after 'new.'")
		}
		prop := p.ident()
		return p.finish(ast.MetaProperty, start, meta, prop)
	}
	cstart := p.tok().Span.Start
	var callee ast.NodeID
	if p.at(token.KwNew) {
		callee = p.parseNew()
	} else {
		callee = p.parsePrimary()
	}
	callee = p.parseCallTail(cstart, callee, false)

	var typeArgs ast.NodeID
	if p.at(token.Lt) {
		typeArgs = p.tryParse(p.parseTypeArgsNode)
	}
	var args []ast.NodeID
	if p.at(token.LParen) {
		args = p.parseArguments()
	}
	return p.finishList(ast.NewExpression, start, args, callee, typeArgs)
}

// parseCallTail разбирает .x, ?.x, [x], (args), `tpl` и постфиксный `!`.
func (p *Parser) parseCallTail(start uint32, expr ast.NodeID, allowCall bool) ast.NodeID {
	for {
		tok := p.tok()
		switch {
		case tok.Kind == token.Dot:
			p.advance()
			prop := p.parseMemberName()
			expr = p.finish(ast.MemberExpression, start, expr, prop)
		case tok.Kind == token.QuestionDot:
			if !allowCall {
				p.failHere(diag.SynUnexpectedToken, "optional chain is not allowed in 'new' callee")
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				args := p.parseArguments()
				expr = p.finishList(ast.CallExpression, start, args, expr)
			case p.at(token.LBracket):
				expr = p.parseComputedMember(start, expr)
			default:
				prop := p.parseMemberName()
				expr = p.finish(ast.MemberExpression, start, expr, prop)
			}
			p.node(expr).Flags |= ast.FlagOptional
		case tok.Kind == token.LBracket:
			expr = p.parseComputedMember(start, expr)
		case tok.Kind == token.LParen && allowCall:
			args := p.parseArguments()
			expr = p.finishList(ast.CallExpression, start, args, expr)
		case tok.Kind == token.NoSubstTemplate || tok.Kind == token.TemplateHead:
			quasi := p.parseTemplate()
			expr = p.finish(ast.TaggedTemplateExpression, start, expr, quasi)
		case tok.Kind == token.Bang && !tok.NewlineBefore:
			p.advance()
			expr = p.finish(ast.TSNonNullExpression, start, expr)
		case tok.Kind == token.Lt && allowCall:
			// f<T>(x): аргументы типа принимаются, только если дальше идёт вызов
			typeArgs := p.tryParse(func() ast.NodeID {
				id := p.parseTypeArgsNode()
				if !p.at(token.LParen) {
					p.failHere(diag.SynUnexpectedToken, "expected '('")
				}
				return id
			})
			if !typeArgs.IsValid() {
				return expr
			}
			args := p.parseArguments()
			expr = p.finishList(ast.CallExpression, start, args, expr, typeArgs)
		default:
			return expr
		}
	}
}

func (p *Parser) parseComputedMember(start uint32, object ast.NodeID) ast.NodeID {
	p.expect(token.LBracket)
	restore := p.allowIn()
	prop := p.parseExpression()
	restore()
	p.expect(token.RBracket)
	id := p.finish(ast.MemberExpression, start, object, prop)
	p.node(id).Flags |= ast.FlagComputed
	return id
}

// parseMemberName: имя после точки: любое слово или #private.
func (p *Parser) parseMemberName() ast.NodeID {
	tok := p.tok()
	switch {
	case tok.Kind == token.PrivateName:
		p.advance()
		id := p.tree.New(ast.PrivateIdentifier, tok.Span)
		p.node(id).Name = p.intern(tok.Text[1:])
		return id
	case tok.IsWord():
		return p.ident()
	}
	p.failHere(diag.SynExpectIdentifier, "expected property name, got "+describe(tok))
	return ast.NoNodeID
}

func (p *Parser) parseArguments() []ast.NodeID {
	p.expect(token.LParen)
	defer p.allowIn()()
	var args []ast.NodeID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			start := p.advance().Span.Start
			arg := p.parseAssignment()
			args = append(args, p.finish(ast.SpreadElement, start, arg))
		} else {
			args = append(args, p.parseAssignment())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen)
	return args
}
