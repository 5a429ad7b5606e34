package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident       // foo, а также контекстные слова: let, of, as, type, ...
	PrivateName // #foo
	NumberLit   // 1, 0x1f, 1e3
	BigIntLit   // 10n
	StringLit   // 'a', "a"
	RegExpLit   // /re/g

	NoSubstTemplate // `abc`
	TemplateHead    // `abc${
	TemplateMiddle  // }abc${
	TemplateTail    // }abc`

	keywordBeg
	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwEnum
	KwExport
	KwExtends
	KwFalse
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwNull
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTrue
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	keywordEnd

	punctBeg
	LBrace       // {
	RBrace       // }
	LParen       // (
	RParen       // )
	LBracket     // [
	RBracket     // ]
	Dot          // .
	DotDotDot    // ...
	Semicolon    // ;
	Comma        // ,
	Lt           // <
	Gt           // >
	LtEq         // <=
	EqEq         // ==
	BangEq       // !=
	EqEqEq       // ===
	BangEqEq     // !==
	Plus         // +
	Minus        // -
	Star         // *
	Slash        // /
	Percent      // %
	StarStar     // **
	PlusPlus     // ++
	MinusMinus   // --
	Shl          // <<
	Amp          // &
	Pipe         // |
	Caret        // ^
	Bang         // !
	Tilde        // ~
	AndAnd       // &&
	OrOr         // ||
	QuestionQ    // ??
	Question     // ?
	QuestionDot  // ?.
	Colon        // :
	Assign       // =
	PlusAssign   // +=
	MinusAssign  // -=
	StarAssign   // *=
	SlashAssign  // /=
	PercentAssig // %=
	StarStarAsg  // **=
	ShlAssign    // <<=
	AmpAssign    // &=
	PipeAssign   // |=
	CaretAssign  // ^=
	AndAndAssign // &&=
	OrOrAssign   // ||=
	QQAssign     // ??=
	FatArrow     // =>
	At           // @
	punctEnd
)

// Составные операторы на '>' лексер не склеивает: `a >> b` приходит как два Gt
// без trivia между ними, склейку делает парсер (см. parser.peekGreater).
// Так закрытие вложенных type arguments `A<B<C>>` не требует пересканирования.

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	PrivateName:     "PrivateName",
	NumberLit:       "NumberLit",
	BigIntLit:       "BigIntLit",
	StringLit:       "StringLit",
	RegExpLit:       "RegExpLit",
	NoSubstTemplate: "NoSubstTemplate",
	TemplateHead:    "TemplateHead",
	TemplateMiddle:  "TemplateMiddle",
	TemplateTail:    "TemplateTail",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if k.IsKeyword() || k.IsPunct() {
		return "'" + k.Text() + "'"
	}
	return "Kind(?)"
}

// IsKeyword reports reserved words. Contextual words are Ident.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsPunct reports punctuators and operators.
func (k Kind) IsPunct() bool { return k > punctBeg && k < punctEnd }

// IsTemplate reports any template literal piece.
func (k Kind) IsTemplate() bool { return k >= NoSubstTemplate && k <= TemplateTail }

// IsAssign reports `=` and every compound assignment.
func (k Kind) IsAssign() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssig, StarStarAsg,
		ShlAssign, AmpAssign, PipeAssign, CaretAssign, AndAndAssign, OrOrAssign, QQAssign:
		return true
	}
	return false
}

// Text returns the fixed spelling of keywords and punctuators.
func (k Kind) Text() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	return ""
}

var kindText = map[Kind]string{
	KwBreak: "break", KwCase: "case", KwCatch: "catch", KwClass: "class", KwConst: "const",
	KwContinue: "continue", KwDebugger: "debugger", KwDefault: "default", KwDelete: "delete",
	KwDo: "do", KwElse: "else", KwEnum: "enum", KwExport: "export", KwExtends: "extends",
	KwFalse: "false", KwFinally: "finally", KwFor: "for", KwFunction: "function", KwIf: "if",
	KwImport: "import", KwIn: "in", KwInstanceof: "instanceof", KwNew: "new", KwNull: "null",
	KwReturn: "return", KwSuper: "super", KwSwitch: "switch", KwThis: "this", KwThrow: "throw",
	KwTrue: "true", KwTry: "try", KwTypeof: "typeof", KwVar: "var", KwVoid: "void",
	KwWhile: "while", KwWith: "with",

	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Dot: ".", DotDotDot: "...", Semicolon: ";", Comma: ",", Lt: "<", Gt: ">", LtEq: "<=",
	EqEq: "==", BangEq: "!=", EqEqEq: "===", BangEqEq: "!==", Plus: "+", Minus: "-",
	Star: "*", Slash: "/", Percent: "%", StarStar: "**", PlusPlus: "++", MinusMinus: "--",
	Shl: "<<", Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~", AndAnd: "&&",
	OrOr: "||", QuestionQ: "??", Question: "?", QuestionDot: "?.", Colon: ":", Assign: "=",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=", PercentAssig: "%=",
	StarStarAsg: "**=", ShlAssign: "<<=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	AndAndAssign: "&&=", OrOrAssign: "||=", QQAssign: "??=", FatArrow: "=>", At: "@",
}
