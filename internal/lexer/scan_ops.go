package lexer

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// operators упорядочены так, что внутри одного первого байта длинные идут раньше.
// '>' намеренно одиночный: `>>`, `>=`, `>>>=` собирает парсер.
var operators = map[byte][]struct {
	text string
	kind token.Kind
}{
	'{': {{"{", token.LBrace}},
	'}': {{"}", token.RBrace}},
	'(': {{"(", token.LParen}},
	')': {{")", token.RParen}},
	'[': {{"[", token.LBracket}},
	']': {{"]", token.RBracket}},
	';': {{";", token.Semicolon}},
	',': {{",", token.Comma}},
	'~': {{"~", token.Tilde}},
	'@': {{"@", token.At}},
	':': {{":", token.Colon}},
	'.': {{"...", token.DotDotDot}, {".", token.Dot}},
	'<': {{"<<=", token.ShlAssign}, {"<<", token.Shl}, {"<=", token.LtEq}, {"<", token.Lt}},
	'>': {{">", token.Gt}},
	'=': {{"===", token.EqEqEq}, {"==", token.EqEq}, {"=>", token.FatArrow}, {"=", token.Assign}},
	'!': {{"!==", token.BangEqEq}, {"!=", token.BangEq}, {"!", token.Bang}},
	'+': {{"++", token.PlusPlus}, {"+=", token.PlusAssign}, {"+", token.Plus}},
	'-': {{"--", token.MinusMinus}, {"-=", token.MinusAssign}, {"-", token.Minus}},
	'*': {{"**=", token.StarStarAsg}, {"**", token.StarStar}, {"*=", token.StarAssign}, {"*", token.Star}},
	'/': {{"/=", token.SlashAssign}, {"/", token.Slash}},
	'%': {{"%=", token.PercentAssig}, {"%", token.Percent}},
	'&': {{"&&=", token.AndAndAssign}, {"&&", token.AndAnd}, {"&=", token.AmpAssign}, {"&", token.Amp}},
	'|': {{"||=", token.OrOrAssign}, {"||", token.OrOr}, {"|=", token.PipeAssign}, {"|", token.Pipe}},
	'^': {{"^=", token.CaretAssign}, {"^", token.Caret}},
	'?': {{"??=", token.QQAssign}, {"??", token.QuestionQ}, {"?.", token.QuestionDot}, {"?", token.Question}},
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range operators[lx.cursor.Peek()] {
		if !lx.cursor.EatString(op.text) {
			continue
		}
		// a?.5:b: это тернарник с числом, а не optional chaining
		if op.kind == token.QuestionDot && isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(start)
			continue
		}
		return token.Token{Kind: op.kind, Span: lx.cursor.SpanFrom(start), Text: op.text}
	}
	return lx.unknownChar()
}
