package ast

// IsFunction reports function-like nodes that create a function scope.
func IsFunction(k Kind) bool {
	switch k {
	case FunctionDeclaration, FunctionExpression, ArrowFunctionExpression:
		return true
	}
	return false
}

// IsClass reports class declarations and expressions.
func IsClass(k Kind) bool {
	return k == ClassDeclaration || k == ClassExpression
}

// IsLoop reports iteration statements.
func IsLoop(k Kind) bool {
	switch k {
	case ForStatement, ForInStatement, ForOfStatement, WhileStatement, DoWhileStatement:
		return true
	}
	return false
}

// IsTypeNode reports nodes that belong to the type language.
func IsTypeNode(k Kind) bool {
	return k >= TSTypeReference && k <= TSTypeParameter
}

// IsTypeAssertion reports `x as T` and `<T>x`.
func IsTypeAssertion(k Kind) bool {
	return k == TSAsExpression || k == TSTypeAssertion
}

// IsPattern reports binding/assignment pattern nodes (Identifier excluded).
func IsPattern(k Kind) bool {
	switch k {
	case ObjectPattern, ArrayPattern, RestElement, AssignmentPattern:
		return true
	}
	return false
}

// IsStatement reports statement and declaration kinds.
func IsStatement(k Kind) bool {
	switch k {
	case ExpressionStatement, BlockStatement, EmptyStatement, DebuggerStatement,
		ReturnStatement, ThrowStatement, BreakStatement, ContinueStatement, LabeledStatement,
		IfStatement, SwitchStatement, WhileStatement, DoWhileStatement, ForStatement,
		ForInStatement, ForOfStatement, TryStatement, VariableDeclaration, FunctionDeclaration,
		ClassDeclaration, ImportDeclaration, ExportNamedDeclaration, ExportDefaultDeclaration,
		ExportAllDeclaration, TSExportAssignment, TSImportEqualsDeclaration,
		TSTypeAliasDeclaration, TSInterfaceDeclaration, TSEnumDeclaration:
		return true
	}
	return false
}

// IsExpression reports value-producing expression kinds.
func IsExpression(k Kind) bool {
	switch k {
	case Identifier, Literal, TemplateLiteral, TaggedTemplateExpression, ThisExpression,
		ArrayExpression, ObjectExpression, FunctionExpression, ArrowFunctionExpression,
		ClassExpression, UnaryExpression, UpdateExpression, BinaryExpression, LogicalExpression,
		AssignmentExpression, ConditionalExpression, CallExpression, NewExpression,
		MemberExpression, SequenceExpression, AwaitExpression, ImportExpression, MetaProperty,
		TSAsExpression, TSSatisfiesExpression, TSTypeAssertion, TSNonNullExpression:
		return true
	}
	return false
}
