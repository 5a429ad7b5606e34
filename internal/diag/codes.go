package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegExp       Code = 1006
	LexBadEscape                Code = 1007

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectExpression   Code = 2003
	SynExpectType         Code = 2004
	SynExpectSemicolon    Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnclosedAngle      Code = 2009
	SynInvalidAssignment  Code = 2010
	SynForBadHeader       Code = 2011
	SynUnsupportedSyntax  Code = 2012
	SynTooManyErrors      Code = 2013
	SynModifierNotAllowed Code = 2014

	// Правила линтера: Title совпадает с именем правила
	LintInfo                    Code = 3000
	LintRuleFailure             Code = 3001
	LintDuplicateSuper          Code = 3100
	LintPreferForOf             Code = 3101
	LintUnnecessaryAssertion    Code = 3102
	LintForInArray              Code = 3103
	LintDoubleSpace             Code = 3200
	LintImportSpacing           Code = 3201
	LintNextLine                Code = 3202
	LintTypeAssertionWhitespace Code = 3203
	LintBOM                     Code = 3204
	LintNullKeyword             Code = 3300
	LintBooleanTrivia           Code = 3301
	LintDebugAssert             Code = 3302
	LintConstruct               Code = 3303
	LintInOperator              Code = 3304
	LintIncrementDecrement      Code = 3305
	LintStringLiteral           Code = 3306

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Конфигурация
	CfgInfo          Code = 5000
	CfgUnknownRule   Code = 5001
	CfgBadSeverity   Code = 5002
	CfgBadOption     Code = 5003
	CfgSemanticError Code = 5004

	// Применение исправлений
	FixInfo     Code = 6000
	FixConflict Code = 6001
	FixStale    Code = 6002

	// Наблюдаемость
	ObsInfo    Code = 7000
	ObsTimings Code = 7001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid numeric literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegExp:       "Unterminated regular expression",
		LexBadEscape:                "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynExpectType:               "Expected type",
		SynExpectSemicolon:          "Expected semicolon",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynUnclosedAngle:            "Unclosed angle bracket",
		SynInvalidAssignment:        "Invalid assignment target",
		SynForBadHeader:             "Malformed for statement header",
		SynUnsupportedSyntax:        "Unsupported syntax",
		SynTooManyErrors:            "Too many syntax errors",
		SynModifierNotAllowed:       "Modifier not allowed here",
		LintInfo:                    "Lint information",
		LintRuleFailure:             "rule-failure",
		LintDuplicateSuper:          "no-duplicate-super",
		LintPreferForOf:             "prefer-for-of",
		LintUnnecessaryAssertion:    "no-unnecessary-type-assertion",
		LintForInArray:              "no-for-in-array",
		LintDoubleSpace:             "no-double-space",
		LintImportSpacing:           "import-spacing",
		LintNextLine:                "next-line",
		LintTypeAssertionWhitespace: "no-type-assertion-whitespace",
		LintBOM:                     "no-bom",
		LintNullKeyword:             "no-null-keyword",
		LintBooleanTrivia:           "boolean-trivia",
		LintDebugAssert:             "debug-assert",
		LintConstruct:               "no-construct",
		LintInOperator:              "no-in-operator",
		LintIncrementDecrement:      "no-increment-decrement",
		LintStringLiteral:           "no-string-literal",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOCacheError:                "Result cache error",
		CfgInfo:                     "Configuration information",
		CfgUnknownRule:              "Unknown rule in configuration",
		CfgBadSeverity:              "Invalid rule severity",
		CfgBadOption:                "Invalid rule option",
		CfgSemanticError:            "Semantic model unavailable",
		FixInfo:                     "Fix information",
		FixConflict:                 "Conflicting fixes",
		FixStale:                    "Fix does not match source",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLint reports whether the code belongs to the rule range.
func (c Code) IsLint() bool {
	return c >= LintInfo && c < 4000
}

// IsSyntax reports whether the code was produced by the lexer or parser.
func (c Code) IsSyntax() bool {
	return c >= LexInfo && c < LintInfo
}
