package checker

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// bindingType: тип значения, которое связывает binding.
func (c *checker) bindingType(f *fileState, b scope.BindingID) types.TypeID {
	binding := f.scopes.Binding(b)
	if binding == nil {
		return types.NoTypeID
	}
	return cached(f.bindings, b, func() types.TypeID {
		switch binding.Kind {
		case scope.BindVar, scope.BindLet, scope.BindConst, scope.BindParam:
			if len(binding.Defs) == 0 {
				return types.NoTypeID
			}
			return c.patternType(f, binding.Defs[0])
		case scope.BindFunction:
			return c.functionType(f, binding.Decl)
		case scope.BindClass:
			return c.classStatic(f, binding.Decl)
		case scope.BindEnum:
			return c.enumStatic(f, binding.Decl)
		case scope.BindImport:
			target, ok := c.resolveImport(f, binding)
			if !ok {
				return types.NoTypeID
			}
			if target.binding.IsValid() {
				return c.bindingType(target.f, target.binding)
			}
			return c.exprType(target.f, target.expr)
		}
		return types.NoTypeID
	})
}

// declType: тип, записываемый за узлом объявления.
func (c *checker) declType(f *fileState, node ast.NodeID) types.TypeID {
	tree := f.tree
	n := tree.Node(node)
	switch n.Kind {
	case ast.VariableDeclarator:
		if tree.Is(n.Slots[ast.DeclID], ast.Identifier) {
			return c.patternType(f, n.Slots[ast.DeclID])
		}
	case ast.PropertyDefinition:
		return c.propertyDefType(f, node)
	case ast.MethodDefinition:
		return c.functionType(f, n.Slots[ast.MethodValue])
	case ast.FunctionDeclaration:
		return c.functionType(f, node)
	case ast.ClassDeclaration:
		return c.classInstance(f, node)
	case ast.TSEnumDeclaration:
		return c.enumType(f, node)
	case ast.TSInterfaceDeclaration, ast.TSTypeAliasDeclaration:
		id := n.Slots[0]
		b := f.scopes.BindingOf(id)
		if !b.IsValid() {
			return types.NoTypeID
		}
		return c.namedType(f, b, nil)
	}
	return types.NoTypeID
}

// annotation: узел аннотации типа у цели связывания.
func annotation(tree *ast.Tree, pat ast.NodeID) ast.NodeID {
	n := tree.Node(pat)
	if n == nil {
		return ast.NoNodeID
	}
	switch n.Kind {
	case ast.Identifier:
		return n.Slots[ast.IdentType]
	case ast.ObjectPattern, ast.ArrayPattern:
		return n.Slots[ast.PatternType]
	case ast.RestElement:
		return n.Slots[ast.RestType]
	}
	return ast.NoNodeID
}

// patternType вычисляет тип, попадающий в цель pat: аннотация либо тип
// инициализатора, разобранный по пути деструктуризации.
func (c *checker) patternType(f *fileState, pat ast.NodeID) types.TypeID {
	return cached(f.patterns, pat, func() types.TypeID { return c.computePatternType(f, pat) })
}

func (c *checker) computePatternType(f *fileState, pat ast.NodeID) types.TypeID {
	tree := f.tree
	if ann := annotation(tree, pat); ann.IsValid() {
		t := c.typeOf(f, ann)
		if t != types.NoTypeID && tree.Node(pat).Flags.Has(ast.FlagOptional) {
			t = c.in.Union(t, c.b.Undefined)
		}
		return t
	}
	parentID := tree.Parent(pat)
	parent := tree.Node(parentID)
	if parent == nil {
		return types.NoTypeID
	}
	switch parent.Kind {
	case ast.VariableDeclarator:
		if parent.Slots[ast.DeclID] != pat {
			return types.NoTypeID
		}
		decl := tree.Node(parent.Parent)
		if loop := tree.Node(decl.Parent); loop != nil && tree.Child(decl.Parent, ast.ForEachLeft) == parent.Parent {
			switch loop.Kind {
			case ast.ForInStatement:
				return c.b.String
			case ast.ForOfStatement:
				return c.in.ElementType(c.exprType(f, loop.Slots[ast.ForEachRight]))
			}
		}
		init := parent.Slots[ast.DeclInit]
		t := c.exprType(f, init)
		if decl.Op == "const" || !isFreshLiteral(tree, init) {
			return t
		}
		return c.in.Widen(t)
	case ast.AssignmentPattern:
		if parent.Slots[ast.Left] != pat {
			return types.NoTypeID
		}
		if t := c.patternType(f, parentID); t != types.NoTypeID {
			return c.in.NonNullable(t)
		}
		return c.in.Widen(c.exprType(f, parent.Slots[ast.Right]))
	case ast.Property:
		obj := parent.Parent
		if !tree.Is(obj, ast.ObjectPattern) {
			return types.NoTypeID
		}
		name, ok := c.patternKey(tree, parentID)
		src := c.patternType(f, obj)
		if !ok || src == types.NoTypeID {
			return types.NoTypeID
		}
		if p, ok := c.in.Property(src, name); ok {
			return p.Type
		}
	case ast.ArrayPattern:
		src := c.patternType(f, parentID)
		if src == types.NoTypeID {
			return types.NoTypeID
		}
		if info, ok := c.in.TupleInfo(src); ok {
			for i, el := range parent.List {
				if el != pat {
					continue
				}
				if i < len(info.Elems) {
					return info.Elems[i]
				}
				if info.Rest != types.NoTypeID {
					return info.Rest
				}
				return c.b.Undefined
			}
			return types.NoTypeID
		}
		return c.in.ElementType(src)
	}
	// параметры без аннотации, catch и rest-элементы не типизируются
	return types.NoTypeID
}

// patternKey: имя свойства в объектном шаблоне.
func (c *checker) patternKey(tree *ast.Tree, prop ast.NodeID) (string, bool) {
	n := tree.Node(prop)
	if key := n.Slots[ast.MemberKey]; key.IsValid() {
		return propertyName(tree, key, n.Flags.Has(ast.FlagComputed))
	}
	value := n.Slots[ast.PropertyValue]
	if tree.Is(value, ast.AssignmentPattern) {
		value = tree.Child(value, ast.Left)
	}
	if tree.Is(value, ast.Identifier) {
		return tree.Name(value), true
	}
	return "", false
}

// isFreshLiteral: выражение даёт «свежий» литеральный тип, который
// расширяется в изменяемой позиции.
func isFreshLiteral(tree *ast.Tree, id ast.NodeID) bool {
	n := tree.Node(id)
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.Literal, ast.TemplateLiteral, ast.ArrayExpression, ast.ObjectExpression,
		ast.UnaryExpression, ast.BinaryExpression:
		return true
	case ast.ConditionalExpression:
		return isFreshLiteral(tree, n.Slots[ast.IfConsequent]) || isFreshLiteral(tree, n.Slots[ast.IfAlternate])
	case ast.LogicalExpression:
		return isFreshLiteral(tree, n.Slots[ast.Left]) || isFreshLiteral(tree, n.Slots[ast.Right])
	case ast.Identifier:
		// ссылка на const без аннотации хранит расширяемый литерал
		return !tree.IsIdent(id, "undefined")
	}
	return false
}

// ===== функции =====

// functionType: тип функции, стрелки или метода по узлу функции.
func (c *checker) functionType(f *fileState, fn ast.NodeID) types.TypeID {
	n := f.tree.Node(fn)
	if n == nil || !ast.IsFunction(n.Kind) {
		return types.NoTypeID
	}
	return cached(f.exprs, fn, func() types.TypeID {
		return c.signatureType(f, fn, n.List, n.Slots[ast.FnTypeParams], n.Slots[ast.FnReturnType], true)
	})
}

// signatureType строит функциональный тип по параметрам и результату.
// Для функций с телом результат без аннотации выводится из return.
func (c *checker) signatureType(f *fileState, node ast.NodeID, params []ast.NodeID, tp, ret ast.NodeID, withBody bool) types.TypeID {
	tree := f.tree
	info := types.FnInfo{Params: make([]types.Param, 0, len(params))}
	for _, param := range tree.List(tp) {
		info.TypeParams = append(info.TypeParams, c.in.TypeParam(tree.Name(param), f.origin(param)))
	}
	for _, param := range params {
		if tree.IsIdent(param, "this") {
			continue
		}
		info.Params = append(info.Params, c.parameter(f, param))
	}
	switch {
	case ret.IsValid():
		info.Result = c.typeOf(f, ret)
	case withBody:
		info.Result = c.inferResult(f, node)
	default:
		info.Result = c.b.Any
	}
	n := tree.Node(node)
	if n.Flags.Has(ast.FlagAsync) && !ret.IsValid() && info.Result != types.NoTypeID {
		info.Result = c.in.Ref("Promise", info.Result)
	}
	if n.Flags.Has(ast.FlagGenerator) {
		info.Result = types.NoTypeID
	}
	return c.in.Function(f.origin(node), info)
}

func (c *checker) parameter(f *fileState, param ast.NodeID) types.Param {
	tree := f.tree
	n := tree.Node(param)
	if n.Kind == ast.TSParameterProperty {
		param = n.Slots[ast.ParamPropTarget]
		n = tree.Node(param)
	}
	p := types.Param{Type: c.b.Any}
	target := param
	switch n.Kind {
	case ast.AssignmentPattern:
		p.Optional = true
		target = n.Slots[ast.Left]
	case ast.RestElement:
		p.Rest = true
		target = n.Slots[ast.RestArg]
		p.Type = c.in.Intern(types.MakeArray(c.b.Any, false))
	case ast.Identifier:
		p.Optional = n.Flags.Has(ast.FlagOptional)
	}
	if tree.Is(target, ast.Identifier) {
		p.Name = tree.Name(target)
	}
	if ann := annotation(tree, param); ann.IsValid() {
		if t := c.typeOf(f, ann); t != types.NoTypeID {
			p.Type = t
		}
	} else if ann := annotation(tree, target); ann.IsValid() {
		if t := c.typeOf(f, ann); t != types.NoTypeID {
			p.Type = t
		}
	} else if n.Kind == ast.AssignmentPattern {
		if t := c.exprType(f, n.Slots[ast.Right]); t != types.NoTypeID {
			p.Type = c.in.Widen(t)
		}
	}
	return p
}

// inferResult выводит тип результата из тела функции.
func (c *checker) inferResult(f *fileState, fn ast.NodeID) types.TypeID {
	tree := f.tree
	n := tree.Node(fn)
	body := n.Slots[ast.FnBody]
	if !body.IsValid() {
		return c.b.Any
	}
	if n.Flags.Has(ast.FlagExpressionBody) {
		return c.in.Widen(c.exprType(f, body))
	}
	var results []types.TypeID
	missing := false
	tree.Inspect(body, func(id ast.NodeID) bool {
		k := tree.Kind(id)
		if ast.IsFunction(k) || ast.IsClass(k) {
			return false
		}
		if k != ast.ReturnStatement {
			return true
		}
		arg := tree.Child(id, ast.Operand)
		if !arg.IsValid() {
			results = append(results, c.b.Undefined)
			return false
		}
		t := c.exprType(f, arg)
		if t == types.NoTypeID {
			missing = true
		}
		results = append(results, c.in.Widen(t))
		return false
	})
	if missing {
		return types.NoTypeID
	}
	if len(results) == 0 {
		return c.b.Void
	}
	return c.in.Union(results...)
}

// ===== классы =====

func (c *checker) className(f *fileState, decl ast.NodeID) string {
	if id := f.tree.Child(decl, ast.ClassID); id.IsValid() {
		return f.tree.Name(id)
	}
	return ""
}

// classInstance: тип экземпляра класса.
func (c *checker) classInstance(f *fileState, decl ast.NodeID) types.TypeID {
	id, created := c.in.Declare(types.ObjectClass, c.className(f, decl), f.origin(decl))
	if created {
		c.in.SetMembers(id, c.classMembers(f, decl, false, id))
	}
	return id
}

// classStatic: тип конструктора класса (typeof C).
func (c *checker) classStatic(f *fileState, decl ast.NodeID) types.TypeID {
	id, created := c.in.Declare(types.ObjectStatic, c.className(f, decl), f.origin(decl)+"#static")
	if created {
		c.in.SetMembers(id, c.classMembers(f, decl, true, c.classInstance(f, decl)))
	}
	return id
}

// superClass: объявление базового класса, если extends ссылается на
// класс этого же проекта.
func (c *checker) superClass(f *fileState, decl ast.NodeID) (*fileState, ast.NodeID) {
	super := f.tree.Child(decl, ast.ClassSuper)
	if !f.tree.Is(super, ast.Identifier) {
		return nil, ast.NoNodeID
	}
	b := f.scopes.BindingOf(super)
	for hops := 0; hops < 8; hops++ {
		binding := f.scopes.Binding(b)
		if binding == nil {
			return nil, ast.NoNodeID
		}
		switch binding.Kind {
		case scope.BindClass:
			return f, binding.Decl
		case scope.BindImport:
			target, ok := c.resolveImport(f, binding)
			if !ok || !target.binding.IsValid() {
				return nil, ast.NoNodeID
			}
			f, b = target.f, target.binding
		default:
			return nil, ast.NoNodeID
		}
	}
	return nil, ast.NoNodeID
}

func (c *checker) classMembers(f *fileState, decl ast.NodeID, static bool, instance types.TypeID) types.ObjectInfo {
	tree := f.tree
	var info types.ObjectInfo
	var ctor ast.NodeID
	for _, m := range tree.List(tree.Child(decl, ast.ClassBodySlot)) {
		mn := tree.Node(m)
		if mn == nil {
			continue
		}
		if mn.Kind == ast.MethodDefinition && mn.Op == "constructor" {
			ctor = mn.Slots[ast.MethodValue]
			if !static {
				c.parameterProperties(f, ctor, &info)
			}
			continue
		}
		if mn.Flags.Has(ast.FlagStatic) != static {
			continue
		}
		switch mn.Kind {
		case ast.PropertyDefinition:
			name, ok := propertyName(tree, mn.Slots[ast.MemberKey], mn.Flags.Has(ast.FlagComputed))
			if !ok {
				continue
			}
			t := c.propertyDefType(f, m)
			if t == types.NoTypeID {
				t = c.b.Any
			}
			info.Props = appendProp(info.Props, types.Property{
				Name: name, Type: t, Optional: mn.Flags.Has(ast.FlagOptional), Readonly: mn.Flags.Has(ast.FlagReadonly),
			})
		case ast.MethodDefinition:
			name, ok := propertyName(tree, mn.Slots[ast.MemberKey], mn.Flags.Has(ast.FlagComputed))
			if !ok {
				continue
			}
			fn := c.functionType(f, mn.Slots[ast.MethodValue])
			t := fn
			switch mn.Op {
			case "get":
				if fi, ok := c.in.FnInfo(fn); ok {
					t = fi.Result
				}
			case "set":
				if fi, ok := c.in.FnInfo(fn); ok && len(fi.Params) == 1 {
					t = fi.Params[0].Type
				}
			}
			if t == types.NoTypeID {
				t = c.b.Any
			}
			info.Props = appendProp(info.Props, types.Property{Name: name, Type: t, Optional: mn.Flags.Has(ast.FlagOptional)})
		case ast.TSIndexSignature:
			t := c.typeOf(f, mn.Slots[ast.IndexSigType])
			if len(mn.List) == 1 && c.typeOf(f, tree.Child(mn.List[0], ast.IdentType)) == c.b.Number {
				info.NumberIndex = t
			} else {
				info.StringIndex = t
			}
		}
	}
	superFile, super := c.superClass(f, decl)
	if static {
		params := []types.Param(nil)
		if ctor.IsValid() {
			if fi, ok := c.in.FnInfo(c.functionType(f, ctor)); ok {
				params = fi.Params
			}
		} else if super.IsValid() {
			if si, ok := c.in.ObjectInfo(c.classStatic(superFile, super)); ok {
				if fi, ok := c.in.FnInfo(si.Construct); ok {
					params = fi.Params
				}
			}
		}
		info.Construct = c.in.Function(f.origin(decl)+"#new", types.FnInfo{Params: params, Result: instance})
	}
	if super.IsValid() {
		inherited := c.classInstance(superFile, super)
		if static {
			inherited = c.classStatic(superFile, super)
		}
		if si, ok := c.in.ObjectInfo(inherited); ok {
			for _, p := range si.Props {
				if _, own := findProp(info.Props, p.Name); !own {
					info.Props = append(info.Props, p)
				}
			}
			if info.StringIndex == types.NoTypeID {
				info.StringIndex = si.StringIndex
			}
			if info.NumberIndex == types.NoTypeID {
				info.NumberIndex = si.NumberIndex
			}
		}
	}
	return info
}

func findProp(props []types.Property, name string) (types.Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return types.Property{}, false
}

// parameterProperties добавляет `constructor(private x: T)` в члены экземпляра.
func (c *checker) parameterProperties(f *fileState, ctor ast.NodeID, info *types.ObjectInfo) {
	tree := f.tree
	for _, param := range tree.List(ctor) {
		if !tree.Is(param, ast.TSParameterProperty) {
			continue
		}
		p := c.parameter(f, param)
		if p.Name == "" {
			continue
		}
		info.Props = appendProp(info.Props, types.Property{
			Name: p.Name, Type: p.Type, Optional: p.Optional, Readonly: tree.Node(param).Flags.Has(ast.FlagReadonly),
		})
	}
}

// propertyDefType: аннотация поля класса либо расширенный тип инициализатора.
func (c *checker) propertyDefType(f *fileState, prop ast.NodeID) types.TypeID {
	n := f.tree.Node(prop)
	if ann := n.Slots[ast.PropDefType]; ann.IsValid() {
		return c.typeOf(f, ann)
	}
	value := n.Slots[ast.PropDefValue]
	if !value.IsValid() {
		return types.NoTypeID
	}
	t := c.exprType(f, value)
	if n.Flags.Has(ast.FlagReadonly) || !isFreshLiteral(f.tree, value) {
		return t
	}
	return c.in.Widen(t)
}

// enclosingClassInstance: тип this внутри класса.
func (c *checker) enclosingClassInstance(f *fileState, node ast.NodeID) types.TypeID {
	decl := f.tree.Ancestor(node, ast.ClassDeclaration, ast.ClassExpression)
	if !decl.IsValid() {
		return types.NoTypeID
	}
	return c.classInstance(f, decl)
}

// ===== интерфейсы и enum =====

// interfaceType объединяет все объявления интерфейса с одним именем.
func (c *checker) interfaceType(f *fileState, b scope.BindingID) types.TypeID {
	binding := f.scopes.Binding(b)
	id, created := c.in.Declare(types.ObjectInterface, binding.Name, f.origin(binding.Decl))
	if !created {
		return id
	}
	tree := f.tree
	var members []ast.NodeID
	var extends []ast.NodeID
	for _, def := range binding.Defs {
		decl := tree.Parent(def)
		if !tree.Is(decl, ast.TSInterfaceDeclaration) {
			continue
		}
		members = append(members, tree.List(tree.Child(decl, ast.IfaceBody))...)
		extends = append(extends, tree.List(decl)...)
	}
	info := c.typeMembers(f, members)
	for _, ext := range extends {
		base := c.typeOf(f, ext)
		bi, ok := c.in.ObjectInfo(base)
		if !ok {
			continue
		}
		for _, p := range bi.Props {
			if _, own := findProp(info.Props, p.Name); !own {
				info.Props = append(info.Props, p)
			}
		}
		if info.StringIndex == types.NoTypeID {
			info.StringIndex = bi.StringIndex
		}
		if info.NumberIndex == types.NoTypeID {
			info.NumberIndex = bi.NumberIndex
		}
		if info.Call == types.NoTypeID {
			info.Call = bi.Call
		}
	}
	c.in.SetMembers(id, info)
	return id
}

// enumType: тип значений enum.
func (c *checker) enumType(f *fileState, decl ast.NodeID) types.TypeID {
	name := f.tree.Name(f.tree.Child(decl, ast.EnumID))
	id, created := c.in.Declare(types.ObjectEnum, name, f.origin(decl))
	if created {
		c.in.SetMembers(id, types.ObjectInfo{})
	}
	return id
}

// enumStatic: объект enum: по члену на каждое имя.
func (c *checker) enumStatic(f *fileState, decl ast.NodeID) types.TypeID {
	tree := f.tree
	name := tree.Name(tree.Child(decl, ast.EnumID))
	id, created := c.in.Declare(types.ObjectStatic, name, f.origin(decl)+"#static")
	if !created {
		return id
	}
	value := c.enumType(f, decl)
	info := types.ObjectInfo{NumberIndex: c.b.String}
	for _, m := range tree.List(decl) {
		key, ok := propertyName(tree, tree.Child(m, ast.EnumMemberID), false)
		if !ok {
			continue
		}
		info.Props = appendProp(info.Props, types.Property{Name: key, Type: value, Readonly: true})
	}
	c.in.SetMembers(id, info)
	return id
}
