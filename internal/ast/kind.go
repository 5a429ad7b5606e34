package ast

// Kind identifies the node type. Names follow ESTree / typescript-estree.
type Kind uint8

const (
	Invalid Kind = iota
	Program             // body
	ExpressionStatement // expression
	BlockStatement      // body
	EmptyStatement
	DebuggerStatement
	ReturnStatement           // argument
	ThrowStatement            // argument
	BreakStatement            // label
	ContinueStatement         // label
	LabeledStatement          // label, body
	IfStatement               // test, consequent, alternate
	SwitchStatement           // discriminant, cases
	SwitchCase                // test (нет у default), consequent
	WhileStatement            // test, body
	DoWhileStatement          // body, test
	ForStatement              // init, test, update, body
	ForInStatement            // left, right, body
	ForOfStatement            // left, right, body
	TryStatement              // block, handler, finalizer
	CatchClause               // param, body
	VariableDeclaration       // declarations; Op = var|let|const
	VariableDeclarator        // id, init
	FunctionDeclaration       // id, typeParameters, params, returnType, body
	ClassDeclaration          // id, typeParameters, superClass, implements, body
	ClassBody                 // members
	MethodDefinition          // key, value; Op = constructor|method|get|set
	PropertyDefinition        // key, typeAnnotation, value
	TSParameterProperty       // parameter
	TSIndexSignature          // parameters, typeAnnotation
	ImportDeclaration         // specifiers, source
	ImportSpecifier           // imported, local (нет при совпадении)
	ImportDefaultSpecifier    // local
	ImportNamespaceSpecifier  // local
	ExportNamedDeclaration    // declaration, specifiers, source
	ExportSpecifier           // local, exported (нет при совпадении)
	ExportDefaultDeclaration  // declaration
	ExportAllDeclaration      // exported, source
	TSExportAssignment        // expression
	TSImportEqualsDeclaration // id, moduleReference
	TSExternalModuleReference // expression
	TSTypeAliasDeclaration    // id, typeParameters, typeAnnotation
	TSInterfaceDeclaration    // id, typeParameters, extends, body
	TSInterfaceBody           // body
	TSEnumDeclaration         // id, members
	TSEnumMember              // id, initializer
	Identifier                // typeAnnotation (в параметрах и объявлениях)
	PrivateIdentifier
	Literal
	TemplateLiteral // quasis и expressions вперемешку, в порядке исходника
	TemplateElement
	TaggedTemplateExpression // tag, quasi
	ThisExpression
	Super
	ArrayExpression         // elements (NoNodeID для дыр)
	ObjectExpression        // properties
	Property                // key, value; у shorthand только value
	SpreadElement           // argument
	FunctionExpression      // id, typeParameters, params, returnType, body
	ArrowFunctionExpression // id (всегда нет), typeParameters, params, returnType, body
	ClassExpression         // id, typeParameters, superClass, implements, body
	UnaryExpression         // argument
	UpdateExpression        // argument
	BinaryExpression        // left, right
	LogicalExpression       // left, right
	AssignmentExpression    // left, right
	ConditionalExpression   // test, consequent, alternate
	CallExpression          // callee, typeArguments, arguments
	NewExpression           // callee, typeArguments, arguments
	MemberExpression        // object, property
	SequenceExpression      // expressions
	AwaitExpression         // argument
	ImportExpression        // source
	MetaProperty            // meta, property
	TSAsExpression          // expression, typeAnnotation
	TSSatisfiesExpression   // expression, typeAnnotation
	TSTypeAssertion         // typeAnnotation, expression
	TSNonNullExpression     // expression
	ObjectPattern           // properties, typeAnnotation
	ArrayPattern            // elements, typeAnnotation
	RestElement             // argument, typeAnnotation
	AssignmentPattern       // left, right
	TSTypeReference         // typeName, typeArguments
	TSQualifiedName         // left, right
	TSKeywordType
	TSThisType
	TSLiteralType                   // literal
	TSArrayType                     // elementType
	TSTupleType                     // elementTypes
	TSOptionalType                  // typeAnnotation
	TSRestType                      // typeAnnotation
	TSUnionType                     // types
	TSIntersectionType              // types
	TSFunctionType                  // typeParameters, params, returnType
	TSConstructorType               // typeParameters, params, returnType
	TSTypeLiteral                   // members
	TSPropertySignature             // key, typeAnnotation
	TSMethodSignature               // key, typeParameters, params, returnType
	TSCallSignatureDeclaration      // typeParameters, params, returnType
	TSConstructSignatureDeclaration // typeParameters, params, returnType
	TSTypeOperator                  // typeAnnotation; Op = keyof|readonly|unique
	TSIndexedAccessType             // objectType, indexType
	TSTypeQuery                     // exprName
	TSConditionalType               // checkType, extendsType, trueType, falseType
	TSInferType                     // typeParameter
	TSMappedType                    // typeParameter, nameType, typeAnnotation
	TSTypePredicate                 // parameterName, typeAnnotation
	TSTypeParameterDeclaration      // params
	TSTypeParameterInstantiation    // params
	TSTypeParameter                 // constraint, default
	kindCount
)

var kindNames = [...]string{
	Invalid:                         "Invalid",
	Program:                         "Program",
	ExpressionStatement:             "ExpressionStatement",
	BlockStatement:                  "BlockStatement",
	EmptyStatement:                  "EmptyStatement",
	DebuggerStatement:               "DebuggerStatement",
	ReturnStatement:                 "ReturnStatement",
	ThrowStatement:                  "ThrowStatement",
	BreakStatement:                  "BreakStatement",
	ContinueStatement:               "ContinueStatement",
	LabeledStatement:                "LabeledStatement",
	IfStatement:                     "IfStatement",
	SwitchStatement:                 "SwitchStatement",
	SwitchCase:                      "SwitchCase",
	WhileStatement:                  "WhileStatement",
	DoWhileStatement:                "DoWhileStatement",
	ForStatement:                    "ForStatement",
	ForInStatement:                  "ForInStatement",
	ForOfStatement:                  "ForOfStatement",
	TryStatement:                    "TryStatement",
	CatchClause:                     "CatchClause",
	VariableDeclaration:             "VariableDeclaration",
	VariableDeclarator:              "VariableDeclarator",
	FunctionDeclaration:             "FunctionDeclaration",
	ClassDeclaration:                "ClassDeclaration",
	ClassBody:                       "ClassBody",
	MethodDefinition:                "MethodDefinition",
	PropertyDefinition:              "PropertyDefinition",
	TSParameterProperty:             "TSParameterProperty",
	TSIndexSignature:                "TSIndexSignature",
	ImportDeclaration:               "ImportDeclaration",
	ImportSpecifier:                 "ImportSpecifier",
	ImportDefaultSpecifier:          "ImportDefaultSpecifier",
	ImportNamespaceSpecifier:        "ImportNamespaceSpecifier",
	ExportNamedDeclaration:          "ExportNamedDeclaration",
	ExportSpecifier:                 "ExportSpecifier",
	ExportDefaultDeclaration:        "ExportDefaultDeclaration",
	ExportAllDeclaration:            "ExportAllDeclaration",
	TSExportAssignment:              "TSExportAssignment",
	TSImportEqualsDeclaration:       "TSImportEqualsDeclaration",
	TSExternalModuleReference:       "TSExternalModuleReference",
	TSTypeAliasDeclaration:          "TSTypeAliasDeclaration",
	TSInterfaceDeclaration:          "TSInterfaceDeclaration",
	TSInterfaceBody:                 "TSInterfaceBody",
	TSEnumDeclaration:               "TSEnumDeclaration",
	TSEnumMember:                    "TSEnumMember",
	Identifier:                      "Identifier",
	PrivateIdentifier:               "PrivateIdentifier",
	Literal:                         "Literal",
	TemplateLiteral:                 "TemplateLiteral",
	TemplateElement:                 "TemplateElement",
	TaggedTemplateExpression:        "TaggedTemplateExpression",
	ThisExpression:                  "ThisExpression",
	Super:                           "Super",
	ArrayExpression:                 "ArrayExpression",
	ObjectExpression:                "ObjectExpression",
	Property:                        "Property",
	SpreadElement:                   "SpreadElement",
	FunctionExpression:              "FunctionExpression",
	ArrowFunctionExpression:         "ArrowFunctionExpression",
	ClassExpression:                 "ClassExpression",
	UnaryExpression:                 "UnaryExpression",
	UpdateExpression:                "UpdateExpression",
	BinaryExpression:                "BinaryExpression",
	LogicalExpression:               "LogicalExpression",
	AssignmentExpression:            "AssignmentExpression",
	ConditionalExpression:           "ConditionalExpression",
	CallExpression:                  "CallExpression",
	NewExpression:                   "NewExpression",
	MemberExpression:                "MemberExpression",
	SequenceExpression:              "SequenceExpression",
	AwaitExpression:                 "AwaitExpression",
	ImportExpression:                "ImportExpression",
	MetaProperty:                    "MetaProperty",
	TSAsExpression:                  "TSAsExpression",
	TSSatisfiesExpression:           "TSSatisfiesExpression",
	TSTypeAssertion:                 "TSTypeAssertion",
	TSNonNullExpression:             "TSNonNullExpression",
	ObjectPattern:                   "ObjectPattern",
	ArrayPattern:                    "ArrayPattern",
	RestElement:                     "RestElement",
	AssignmentPattern:               "AssignmentPattern",
	TSTypeReference:                 "TSTypeReference",
	TSQualifiedName:                 "TSQualifiedName",
	TSKeywordType:                   "TSKeywordType",
	TSThisType:                      "TSThisType",
	TSLiteralType:                   "TSLiteralType",
	TSArrayType:                     "TSArrayType",
	TSTupleType:                     "TSTupleType",
	TSOptionalType:                  "TSOptionalType",
	TSRestType:                      "TSRestType",
	TSUnionType:                     "TSUnionType",
	TSIntersectionType:              "TSIntersectionType",
	TSFunctionType:                  "TSFunctionType",
	TSConstructorType:               "TSConstructorType",
	TSTypeLiteral:                   "TSTypeLiteral",
	TSPropertySignature:             "TSPropertySignature",
	TSMethodSignature:               "TSMethodSignature",
	TSCallSignatureDeclaration:      "TSCallSignatureDeclaration",
	TSConstructSignatureDeclaration: "TSConstructSignatureDeclaration",
	TSTypeOperator:                  "TSTypeOperator",
	TSIndexedAccessType:             "TSIndexedAccessType",
	TSTypeQuery:                     "TSTypeQuery",
	TSConditionalType:               "TSConditionalType",
	TSInferType:                     "TSInferType",
	TSMappedType:                    "TSMappedType",
	TSTypePredicate:                 "TSTypePredicate",
	TSTypeParameterDeclaration:      "TSTypeParameterDeclaration",
	TSTypeParameterInstantiation:    "TSTypeParameterInstantiation",
	TSTypeParameter:                 "TSTypeParameter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindByName resolves an ESTree node type name.
func KindByName(name string) (Kind, bool) {
	for k := Kind(1); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// KindCount is the number of node kinds including Invalid.
const KindCount = int(kindCount)
