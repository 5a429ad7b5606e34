package ast

// Key addresses a child position: a slot index or the list.
type Key int8

// ListKey addresses Node.List.
const ListKey Key = -1

// keys задаёт порядок обхода детей; он совпадает с порядком в исходнике.
var keys = [kindCount][]Key{
	Program:                         {ListKey},
	ExpressionStatement:             {0},
	BlockStatement:                  {ListKey},
	ReturnStatement:                 {0},
	ThrowStatement:                  {0},
	BreakStatement:                  {0},
	ContinueStatement:               {0},
	LabeledStatement:                {0, 1},
	IfStatement:                     {0, 1, 2},
	SwitchStatement:                 {0, ListKey},
	SwitchCase:                      {0, ListKey},
	WhileStatement:                  {0, 1},
	DoWhileStatement:                {0, 1},
	ForStatement:                    {0, 1, 2, 3},
	ForInStatement:                  {0, 1, 2},
	ForOfStatement:                  {0, 1, 2},
	TryStatement:                    {0, 1, 2},
	CatchClause:                     {0, 1},
	VariableDeclaration:             {ListKey},
	VariableDeclarator:              {0, 1},
	FunctionDeclaration:             {0, 1, ListKey, 2, 3},
	ClassDeclaration:                {0, 1, 2, ListKey, 3},
	ClassBody:                       {ListKey},
	MethodDefinition:                {0, 1},
	PropertyDefinition:              {0, 1, 2},
	TSParameterProperty:             {0},
	TSIndexSignature:                {ListKey, 0},
	ImportDeclaration:               {ListKey, 0},
	ImportSpecifier:                 {0, 1},
	ImportDefaultSpecifier:          {0},
	ImportNamespaceSpecifier:        {0},
	ExportNamedDeclaration:          {0, ListKey, 1},
	ExportSpecifier:                 {0, 1},
	ExportDefaultDeclaration:        {0},
	ExportAllDeclaration:            {0, 1},
	TSExportAssignment:              {0},
	TSImportEqualsDeclaration:       {0, 1},
	TSExternalModuleReference:       {0},
	TSTypeAliasDeclaration:          {0, 1, 2},
	TSInterfaceDeclaration:          {0, 1, ListKey, 2},
	TSInterfaceBody:                 {ListKey},
	TSEnumDeclaration:               {0, ListKey},
	TSEnumMember:                    {0, 1},
	Identifier:                      {0},
	TemplateLiteral:                 {ListKey},
	TaggedTemplateExpression:        {0, 1},
	ArrayExpression:                 {ListKey},
	ObjectExpression:                {ListKey},
	Property:                        {0, 1},
	SpreadElement:                   {0},
	FunctionExpression:              {0, 1, ListKey, 2, 3},
	ArrowFunctionExpression:         {0, 1, ListKey, 2, 3},
	ClassExpression:                 {0, 1, 2, ListKey, 3},
	UnaryExpression:                 {0},
	UpdateExpression:                {0},
	BinaryExpression:                {0, 1},
	LogicalExpression:               {0, 1},
	AssignmentExpression:            {0, 1},
	ConditionalExpression:           {0, 1, 2},
	CallExpression:                  {0, 1, ListKey},
	NewExpression:                   {0, 1, ListKey},
	MemberExpression:                {0, 1},
	SequenceExpression:              {ListKey},
	AwaitExpression:                 {0},
	ImportExpression:                {0},
	MetaProperty:                    {0, 1},
	TSAsExpression:                  {0, 1},
	TSSatisfiesExpression:           {0, 1},
	TSTypeAssertion:                 {0, 1},
	TSNonNullExpression:             {0},
	ObjectPattern:                   {ListKey, 0},
	ArrayPattern:                    {ListKey, 0},
	RestElement:                     {0, 1},
	AssignmentPattern:               {0, 1},
	TSTypeReference:                 {0, ListKey},
	TSQualifiedName:                 {0, 1},
	TSLiteralType:                   {0},
	TSArrayType:                     {0},
	TSTupleType:                     {ListKey},
	TSOptionalType:                  {0},
	TSRestType:                      {0},
	TSUnionType:                     {ListKey},
	TSIntersectionType:              {ListKey},
	TSFunctionType:                  {0, ListKey, 1},
	TSConstructorType:               {0, ListKey, 1},
	TSTypeLiteral:                   {ListKey},
	TSPropertySignature:             {0, 1},
	TSMethodSignature:               {0, 1, ListKey, 2},
	TSCallSignatureDeclaration:      {0, ListKey, 1},
	TSConstructSignatureDeclaration: {0, ListKey, 1},
	TSTypeOperator:                  {0},
	TSIndexedAccessType:             {0, 1},
	TSTypeQuery:                     {0},
	TSConditionalType:               {0, 1, 2, 3},
	TSInferType:                     {0},
	TSMappedType:                    {0, 1, 2},
	TSTypePredicate:                 {0, 1},
	TSTypeParameterDeclaration:      {ListKey},
	TSTypeParameterInstantiation:    {ListKey},
	TSTypeParameter:                 {0, 1},
}

// Keys returns the traversal keys of kind in source order.
func Keys(kind Kind) []Key {
	if int(kind) >= len(keys) {
		return nil
	}
	return keys[kind]
}
