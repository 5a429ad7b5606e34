package ast

// Slot indices for kinds whose children are commonly accessed by name.
const (
	// ForStatement
	ForInit   = 0
	ForTest   = 1
	ForUpdate = 2
	ForBody   = 3

	// ForIn / ForOf
	ForEachLeft  = 0
	ForEachRight = 1
	ForEachBody  = 2

	// While (DoWhile хранит body в 0 и test в 1)
	WhileTest   = 0
	WhileBody   = 1
	DoWhileBody = 0
	DoWhileTest = 1

	// IfStatement / ConditionalExpression
	IfTest       = 0
	IfConsequent = 1
	IfAlternate  = 2

	// TryStatement / CatchClause
	TryBlock     = 0
	TryHandler   = 1
	TryFinalizer = 2
	CatchParam   = 0
	CatchBody    = 1

	// Function / Arrow / FunctionExpression
	FnID         = 0
	FnTypeParams = 1
	FnReturnType = 2
	FnBody       = 3

	// Class declaration / expression
	ClassID         = 0
	ClassTypeParams = 1
	ClassSuper      = 2
	ClassBodySlot   = 3

	// MethodDefinition / PropertyDefinition / Property
	MemberKey       = 0
	MethodValue     = 1
	PropertyValue   = 1
	PropDefType     = 1
	PropDefValue    = 2
	ParamPropTarget = 0

	// VariableDeclarator
	DeclID   = 0
	DeclInit = 1

	// Expressions
	Operand      = 0 // Unary / Update / Await / Spread / Return / Throw
	Left         = 0 // Binary / Logical / Assignment / AssignmentPattern
	Right        = 1
	Callee       = 0
	CallTypeArgs = 1
	ObjectSlot   = 0
	PropertySlot = 1
	AssertExpr   = 0 // TSAsExpression / TSSatisfies / TSNonNull
	AssertType   = 1
	// TSTypeAssertion: `<T>x`
	AngleType = 0
	AngleExpr = 1
	TagSlot   = 0
	QuasiSlot = 1

	// Identifier / patterns
	IdentType   = 0
	PatternType = 0
	RestArg     = 0
	RestType    = 1

	// Import / Export
	ImportSource     = 0
	ImportedName     = 0
	ImportLocal      = 1
	SpecLocal        = 0
	ExportDecl       = 0
	ExportFrom       = 1
	ExportAllName    = 0
	ExportAllSource  = 1
	ExportSpecLocal  = 0
	ExportSpecExport = 1

	// TS declarations
	AliasID         = 0
	AliasTypeParams = 1
	AliasType       = 2
	IfaceID         = 0
	IfaceTypeParams = 1
	IfaceBody       = 2
	EnumID          = 0
	EnumMemberID    = 0
	EnumMemberInit  = 1

	// Types
	RefName        = 0
	ElementType    = 0
	TypeParamConst = 0
	TypeParamDef   = 1
	SigKey         = 0
	SigType        = 1
	MethodSigTP    = 1
	MethodSigRet   = 2
	FnTypeTP       = 0
	FnTypeRet      = 1
	LiteralSlot    = 0
	IndexSigType   = 0

	// SwitchStatement / SwitchCase / Labeled
	SwitchDisc = 0
	CaseTest   = 0
	LabelSlot  = 0
	LabelBody  = 1
)
