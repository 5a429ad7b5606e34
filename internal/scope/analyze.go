package scope

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
)

// Analyze builds the scope tree of tree in two passes: declarations first
// (so hoisted names are visible everywhere in their scope), then value
// references.
func Analyze(tree *ast.Tree) *Manager {
	m := newManager(tree)
	if !tree.Root.IsValid() {
		return m
	}
	kind := KindGlobal
	if isModule(tree) {
		kind = KindModule
	}
	m.root = m.newScope(kind, NoScopeID, tree.Root)
	a := &analyzer{m: m, tree: tree}
	a.declareChildren(tree.Root, m.root)
	a.resolveChildren(tree.Root, m.root)
	return m
}

func isModule(tree *ast.Tree) bool {
	for _, id := range tree.List(tree.Root) {
		switch tree.Kind(id) {
		case ast.ImportDeclaration, ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration,
			ast.ExportAllDeclaration, ast.TSExportAssignment:
			return true
		case ast.TSImportEqualsDeclaration:
			if tree.Is(tree.Child(id, 1), ast.TSExternalModuleReference) {
				return true
			}
		}
	}
	return false
}

type analyzer struct {
	m    *Manager
	tree *ast.Tree
}

// walkPattern calls ident for every bound identifier of a binding pattern
// and expr for default values and computed keys.
func (a *analyzer) walkPattern(pat ast.NodeID, ident, expr func(ast.NodeID)) {
	n := a.tree.Node(pat)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Identifier:
		ident(pat)
	case ast.TSParameterProperty:
		a.walkPattern(n.Slots[ast.ParamPropTarget], ident, expr)
	case ast.AssignmentPattern:
		a.walkPattern(n.Slots[ast.Left], ident, expr)
		expr(n.Slots[ast.Right])
	case ast.RestElement:
		a.walkPattern(n.Slots[ast.RestArg], ident, expr)
	case ast.ArrayPattern:
		for _, el := range n.List {
			a.walkPattern(el, ident, expr)
		}
	case ast.ObjectPattern:
		for _, prop := range n.List {
			pn := a.tree.Node(prop)
			if pn == nil {
				continue
			}
			if pn.Kind == ast.RestElement {
				a.walkPattern(prop, ident, expr)
				continue
			}
			if pn.Flags.Has(ast.FlagComputed) {
				expr(pn.Slots[ast.MemberKey])
			}
			a.walkPattern(pn.Slots[ast.PropertyValue], ident, expr)
		}
	default:
		// в присваиваниях цель может быть любым выражением: a.b, a[i]
		expr(pat)
	}
}

func bindingKindOf(op string) BindingKind {
	switch op {
	case "let":
		return BindLet
	case "const":
		return BindConst
	default:
		return BindVar
	}
}

// ===== проход 1: объявления =====

func (a *analyzer) declareChildren(node ast.NodeID, cur ScopeID) {
	if n := a.tree.Node(node); n != nil {
		n.Children(func(c ast.NodeID) { a.declare(c, cur) })
	}
}

func (a *analyzer) declare(node ast.NodeID, cur ScopeID) {
	n := a.tree.Node(node)
	if n == nil || ast.IsTypeNode(n.Kind) {
		return
	}
	switch n.Kind {
	case ast.FunctionDeclaration:
		if id := n.Slots[ast.FnID]; id.IsValid() {
			a.m.declare(cur, id, BindFunction, node)
		}
		a.declareFunction(node, cur)
		return
	case ast.FunctionExpression, ast.ArrowFunctionExpression:
		fn := a.declareFunction(node, cur)
		if id := n.Slots[ast.FnID]; id.IsValid() {
			a.m.declare(fn, id, BindFunction, node)
		}
		return
	case ast.ClassDeclaration, ast.ClassExpression:
		inner := a.m.newScope(KindClass, cur, node)
		if id := n.Slots[ast.ClassID]; id.IsValid() {
			target := cur
			if n.Kind == ast.ClassExpression {
				target = inner
			}
			a.m.declare(target, id, BindClass, node)
		}
		a.declare(n.Slots[ast.ClassSuper], inner)
		a.declareChildren(n.Slots[ast.ClassBodySlot], inner)
		return
	case ast.VariableDeclaration:
		kind := bindingKindOf(n.Op)
		target := cur
		if kind == BindVar {
			target = a.m.varScope(cur)
		}
		for _, d := range n.List {
			dn := a.tree.Node(d)
			if dn == nil {
				continue
			}
			a.walkPattern(dn.Slots[ast.DeclID],
				func(id ast.NodeID) { a.m.declare(target, id, kind, d) },
				func(e ast.NodeID) { a.declare(e, cur) })
			a.declare(dn.Slots[ast.DeclInit], cur)
		}
		return
	case ast.BlockStatement:
		if ast.IsFunction(a.tree.Kind(n.Parent)) {
			break
		}
		a.declareChildren(node, a.m.newScope(KindBlock, cur, node))
		return
	case ast.ForStatement, ast.ForInStatement, ast.ForOfStatement:
		a.declareChildren(node, a.m.newScope(KindFor, cur, node))
		return
	case ast.SwitchStatement:
		a.declareChildren(node, a.m.newScope(KindSwitch, cur, node))
		return
	case ast.CatchClause:
		s := a.m.newScope(KindCatch, cur, node)
		a.walkPattern(n.Slots[ast.CatchParam],
			func(id ast.NodeID) { a.m.declare(s, id, BindCatch, node) },
			func(e ast.NodeID) { a.declare(e, s) })
		a.declare(n.Slots[ast.CatchBody], s)
		return
	case ast.ImportDeclaration:
		for _, spec := range n.List {
			if local := importLocal(a.tree, spec); local.IsValid() {
				a.m.declare(a.m.root, local, BindImport, spec)
			}
		}
		return
	case ast.TSImportEqualsDeclaration:
		a.m.declare(cur, n.Slots[0], BindImport, node)
		return
	case ast.TSEnumDeclaration:
		a.m.declare(cur, n.Slots[ast.EnumID], BindEnum, node)
		for _, member := range n.List {
			a.declare(a.tree.Child(member, ast.EnumMemberInit), cur)
		}
		return
	case ast.TSTypeAliasDeclaration:
		a.m.declare(cur, n.Slots[ast.AliasID], BindTypeAlias, node)
		return
	case ast.TSInterfaceDeclaration:
		a.m.declare(cur, n.Slots[ast.IfaceID], BindInterface, node)
		return
	}
	a.declareChildren(node, cur)
}

// declareFunction создаёт область функции, объявляет параметры и обходит тело
// в той же области.
func (a *analyzer) declareFunction(node ast.NodeID, cur ScopeID) ScopeID {
	n := a.tree.Node(node)
	s := a.m.newScope(KindFunction, cur, node)
	for _, param := range n.List {
		a.walkPattern(param,
			func(id ast.NodeID) { a.m.declare(s, id, BindParam, param) },
			func(e ast.NodeID) { a.declare(e, s) })
	}
	if body := n.Slots[ast.FnBody]; body.IsValid() {
		if a.tree.Is(body, ast.BlockStatement) {
			a.declareChildren(body, s)
		} else {
			a.declare(body, s)
		}
	}
	return s
}

// importLocal returns the local name of an import specifier.
func importLocal(tree *ast.Tree, spec ast.NodeID) ast.NodeID {
	n := tree.Node(spec)
	if n == nil {
		return ast.NoNodeID
	}
	if n.Kind == ast.ImportSpecifier && n.Slots[ast.ImportLocal].IsValid() {
		return n.Slots[ast.ImportLocal]
	}
	return n.Slots[0]
}

// ===== проход 2: ссылки =====

func (a *analyzer) resolveChildren(node ast.NodeID, cur ScopeID) {
	if n := a.tree.Node(node); n != nil {
		n.Children(func(c ast.NodeID) { a.resolve(c, cur) })
	}
}

func (a *analyzer) resolve(node ast.NodeID, cur ScopeID) {
	n := a.tree.Node(node)
	if n == nil || ast.IsTypeNode(n.Kind) {
		return
	}
	if s, ok := a.m.owned[node]; ok {
		cur = s
	}
	switch n.Kind {
	case ast.Identifier:
		a.reference(node, cur, RefRead)
		return
	case ast.MemberExpression:
		a.resolve(n.Slots[ast.ObjectSlot], cur)
		if n.Flags.Has(ast.FlagComputed) {
			a.resolve(n.Slots[ast.PropertySlot], cur)
		}
		return
	case ast.Property, ast.MethodDefinition:
		if n.Flags.Has(ast.FlagComputed) {
			a.resolve(n.Slots[ast.MemberKey], cur)
		}
		a.resolve(n.Slots[ast.PropertyValue], cur)
		return
	case ast.PropertyDefinition:
		if n.Flags.Has(ast.FlagComputed) {
			a.resolve(n.Slots[ast.MemberKey], cur)
		}
		a.resolve(n.Slots[ast.PropDefValue], cur)
		return
	case ast.TSEnumMember:
		a.resolve(n.Slots[ast.EnumMemberInit], cur)
		return
	case ast.LabeledStatement:
		a.resolve(n.Slots[ast.LabelBody], cur)
		return
	case ast.BreakStatement, ast.ContinueStatement, ast.MetaProperty, ast.ImportDeclaration,
		ast.TSImportEqualsDeclaration, ast.TSTypeAliasDeclaration, ast.TSInterfaceDeclaration,
		ast.TSIndexSignature, ast.ExportAllDeclaration:
		return
	case ast.ExportNamedDeclaration:
		a.resolve(n.Slots[ast.ExportDecl], cur)
		if n.Slots[ast.ExportFrom].IsValid() {
			return // реэкспорт не ссылается на локальные имена
		}
		for _, spec := range n.List {
			a.reference(a.tree.Child(spec, ast.ExportSpecLocal), cur, RefRead)
		}
		return
	case ast.AssignmentExpression:
		flags := RefWrite
		if n.Op != "=" {
			flags |= RefRead
		}
		a.target(n.Slots[ast.Left], cur, flags)
		a.resolve(n.Slots[ast.Right], cur)
		return
	case ast.UpdateExpression:
		a.target(n.Slots[ast.Operand], cur, RefRead|RefWrite)
		return
	case ast.ForInStatement, ast.ForOfStatement:
		left := n.Slots[ast.ForEachLeft]
		if a.tree.Is(left, ast.VariableDeclaration) {
			for _, d := range a.tree.List(left) {
				a.bind(a.tree.Child(d, ast.DeclID), cur, true)
			}
		} else {
			a.target(left, cur, RefWrite)
		}
		a.resolve(n.Slots[ast.ForEachRight], cur)
		a.resolve(n.Slots[ast.ForEachBody], cur)
		return
	case ast.VariableDeclarator:
		init := n.Slots[ast.DeclInit]
		a.bind(n.Slots[ast.DeclID], cur, init.IsValid())
		a.resolve(init, cur)
		return
	case ast.CatchClause:
		a.bind(n.Slots[ast.CatchParam], cur, false)
		a.resolve(n.Slots[ast.CatchBody], cur)
		return
	case ast.ClassDeclaration, ast.ClassExpression:
		a.resolve(n.Slots[ast.ClassSuper], cur)
		a.resolve(n.Slots[ast.ClassBodySlot], cur)
		return
	case ast.FunctionDeclaration, ast.FunctionExpression, ast.ArrowFunctionExpression:
		for _, param := range n.List {
			a.bind(param, cur, false)
		}
		a.resolve(n.Slots[ast.FnBody], cur)
		return
	case ast.TSAsExpression, ast.TSSatisfiesExpression, ast.TSNonNullExpression:
		a.resolve(n.Slots[ast.AssertExpr], cur)
		return
	case ast.TSTypeAssertion:
		a.resolve(n.Slots[ast.AngleExpr], cur)
		return
	case ast.CallExpression, ast.NewExpression:
		a.resolve(n.Slots[ast.Callee], cur)
		for _, arg := range n.List {
			a.resolve(arg, cur)
		}
		return
	}
	a.resolveChildren(node, cur)
}

// bind обходит объявляемый паттерн: идентификаторы получают ссылку-запись,
// если есть инициализатор; значения по умолчанию: тоже запись.
func (a *analyzer) bind(pat ast.NodeID, cur ScopeID, init bool) {
	n := a.tree.Node(pat)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Identifier:
		if init {
			a.m.addRef(pat, cur, a.m.defs[pat], RefWrite|RefInit)
		}
	case ast.AssignmentPattern:
		a.bind(n.Slots[ast.Left], cur, true)
		a.resolve(n.Slots[ast.Right], cur)
	default:
		a.walkPattern(pat,
			func(id ast.NodeID) { a.bind(id, cur, init) },
			func(e ast.NodeID) { a.resolve(e, cur) })
	}
}

// target обрабатывает левую часть присваивания.
func (a *analyzer) target(node ast.NodeID, cur ScopeID, flags RefFlags) {
	n := a.tree.Node(node)
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Identifier:
		a.reference(node, cur, flags)
	case ast.TSAsExpression, ast.TSSatisfiesExpression, ast.TSNonNullExpression:
		a.target(n.Slots[ast.AssertExpr], cur, flags)
	case ast.TSTypeAssertion:
		a.target(n.Slots[ast.AngleExpr], cur, flags)
	case ast.ObjectPattern, ast.ArrayPattern, ast.RestElement, ast.AssignmentPattern:
		a.walkPattern(node,
			func(id ast.NodeID) { a.reference(id, cur, RefWrite) },
			func(e ast.NodeID) {
				if ast.IsPattern(a.tree.Kind(e)) || a.tree.Is(e, ast.MemberExpression) {
					a.target(e, cur, RefWrite)
					return
				}
				a.resolve(e, cur)
			})
	default:
		a.resolve(node, cur)
	}
}

func (a *analyzer) reference(ident ast.NodeID, from ScopeID, flags RefFlags) {
	if !a.tree.Is(ident, ast.Identifier) {
		a.resolve(ident, from)
		return
	}
	if _, isDef := a.m.defs[ident]; isDef {
		return
	}
	name := a.tree.Name(ident)
	if name == "" {
		return
	}
	a.m.addRef(ident, from, a.m.Lookup(from, name), flags)
}
