package checker

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// typeOf resolves a type node.
func (c *checker) typeOf(f *fileState, node ast.NodeID) types.TypeID {
	if !node.IsValid() {
		return types.NoTypeID
	}
	return cached(f.typeNodes, node, func() types.TypeID { return c.computeTypeNode(f, node) })
}

func (c *checker) keywordType(name string) types.TypeID {
	switch name {
	case "any":
		return c.b.Any
	case "unknown":
		return c.b.Unknown
	case "number":
		return c.b.Number
	case "string":
		return c.b.String
	case "boolean":
		return c.b.Boolean
	case "bigint":
		return c.b.BigInt
	case "symbol":
		return c.b.Symbol
	case "object":
		return c.b.NonPrimitive
	case "never":
		return c.b.Never
	case "undefined":
		return c.b.Undefined
	case "void":
		return c.b.Void
	case "null":
		return c.b.Null
	}
	return types.NoTypeID
}

func (c *checker) computeTypeNode(f *fileState, node ast.NodeID) types.TypeID {
	tree := f.tree
	n := tree.Node(node)
	switch n.Kind {
	case ast.TSKeywordType:
		return c.keywordType(tree.Name(node))
	case ast.TSThisType:
		return c.enclosingClassInstance(f, node)
	case ast.TSLiteralType:
		return c.literalType(f, n.Slots[ast.LiteralSlot])
	case ast.TSArrayType:
		elem := c.typeOf(f, n.Slots[ast.ElementType])
		if elem == types.NoTypeID {
			return types.NoTypeID
		}
		return c.in.Intern(types.MakeArray(elem, false))
	case ast.TSTypeOperator:
		return c.typeOperator(f, n)
	case ast.TSTupleType:
		return c.tupleType(f, n, false)
	case ast.TSUnionType, ast.TSIntersectionType:
		members := make([]types.TypeID, 0, len(n.List))
		for _, m := range n.List {
			t := c.typeOf(f, m)
			if t == types.NoTypeID {
				return types.NoTypeID
			}
			members = append(members, t)
		}
		if n.Kind == ast.TSUnionType {
			return c.in.Union(members...)
		}
		return c.in.Intersection(members...)
	case ast.TSFunctionType, ast.TSConstructorType:
		return c.signatureType(f, node, n.List, n.Slots[ast.FnTypeTP], n.Slots[ast.FnTypeRet], false)
	case ast.TSTypeLiteral:
		id, created := c.in.Declare(types.ObjectAnonymous, "", f.origin(node))
		if created {
			c.in.SetMembers(id, c.typeMembers(f, n.List))
		}
		return id
	case ast.TSTypeReference:
		return c.typeReference(f, node)
	case ast.TSTypeQuery:
		name := n.Slots[0]
		if tree.Is(name, ast.Identifier) {
			return c.identType(f, name)
		}
		return types.NoTypeID
	case ast.TSIndexedAccessType:
		obj := c.typeOf(f, n.Slots[0])
		index := c.typeOf(f, n.Slots[1])
		info, ok := c.in.LiteralInfo(index)
		if obj == types.NoTypeID || !ok {
			return types.NoTypeID
		}
		if p, ok := c.in.Property(obj, info.Value); ok {
			return p.Type
		}
		return types.NoTypeID
	case ast.TSOptionalType:
		return c.typeOf(f, n.Slots[0])
	case ast.TSTypePredicate:
		if n.Op == "asserts" {
			return c.b.Void
		}
		return c.b.Boolean
	}
	// условные, отображаемые и infer-типы не вычисляются
	return types.NoTypeID
}

func (c *checker) typeOperator(f *fileState, n *ast.Node) types.TypeID {
	switch n.Op {
	case "readonly":
		operand := f.tree.Node(n.Slots[0])
		if operand == nil {
			return types.NoTypeID
		}
		switch operand.Kind {
		case ast.TSArrayType:
			elem := c.typeOf(f, operand.Slots[ast.ElementType])
			if elem == types.NoTypeID {
				return types.NoTypeID
			}
			return c.in.Intern(types.MakeArray(elem, true))
		case ast.TSTupleType:
			return c.tupleType(f, operand, true)
		}
		return c.typeOf(f, n.Slots[0])
	case "unique":
		return c.b.Symbol
	}
	return types.NoTypeID // keyof
}

func (c *checker) tupleType(f *fileState, n *ast.Node, readonly bool) types.TypeID {
	info := types.TupleInfo{Readonly: readonly}
	for _, el := range n.List {
		en := f.tree.Node(el)
		if en == nil {
			return types.NoTypeID
		}
		optional := en.Kind == ast.TSOptionalType
		if en.Kind == ast.TSRestType {
			rest := c.typeOf(f, en.Slots[0])
			elem := c.in.ElementType(rest)
			if elem == types.NoTypeID || !c.in.IsArray(rest) {
				return types.NoTypeID
			}
			info.Rest = elem
			continue
		}
		t := c.typeOf(f, el)
		if t == types.NoTypeID || info.Rest != types.NoTypeID {
			return types.NoTypeID
		}
		info.Elems = append(info.Elems, t)
		info.Optional = append(info.Optional, optional)
	}
	return c.in.Tuple(info)
}

// literalType: тип литерального узла (в позиции типа или константного выражения).
func (c *checker) literalType(f *fileState, lit ast.NodeID) types.TypeID {
	n := f.tree.Node(lit)
	if n == nil {
		return types.NoTypeID
	}
	switch n.Kind {
	case ast.Literal:
		switch n.Lit {
		case ast.LitString:
			return c.in.Literal(types.KindString, cookString(n.Value))
		case ast.LitNumber:
			if text, ok := numberText(n.Value); ok {
				return c.in.Literal(types.KindNumber, text)
			}
		case ast.LitBigInt:
			if text, ok := bigintText(n.Value); ok {
				return c.in.Literal(types.KindBigInt, text)
			}
		case ast.LitBoolean:
			return c.in.BooleanLiteral(n.Value == "true")
		case ast.LitNull:
			return c.b.Null
		}
	case ast.UnaryExpression:
		arg := f.tree.Node(n.Slots[ast.Operand])
		if n.Op != "-" || arg == nil || arg.Kind != ast.Literal {
			return types.NoTypeID
		}
		switch arg.Lit {
		case ast.LitNumber:
			if text, ok := numberText(arg.Value); ok {
				if text != "0" {
					text = "-" + text
				}
				return c.in.Literal(types.KindNumber, text)
			}
		case ast.LitBigInt:
			if text, ok := bigintText(arg.Value); ok {
				return c.in.Literal(types.KindBigInt, "-"+text)
			}
		}
	case ast.TemplateLiteral:
		if len(n.List) == 1 {
			return c.in.Literal(types.KindString, templateText(f.tree.Node(n.List[0]).Value))
		}
		return c.b.String
	}
	return types.NoTypeID
}

// templateText: текст шаблона без подстановок: `abc` -> abc.
func templateText(raw string) string {
	if len(raw) >= 2 {
		return cookString("\"" + raw[1:len(raw)-1] + "\"")
	}
	return ""
}

// typeMembers собирает члены интерфейса или литерала типа.
func (c *checker) typeMembers(f *fileState, members []ast.NodeID) types.ObjectInfo {
	var info types.ObjectInfo
	tree := f.tree
	for _, m := range members {
		mn := tree.Node(m)
		if mn == nil {
			continue
		}
		switch mn.Kind {
		case ast.TSPropertySignature:
			name, ok := propertyName(tree, mn.Slots[ast.SigKey], mn.Flags.Has(ast.FlagComputed))
			if !ok {
				continue
			}
			t := c.typeOf(f, mn.Slots[ast.SigType])
			if mn.Slots[ast.SigType].IsValid() && t == types.NoTypeID {
				continue
			}
			if t == types.NoTypeID {
				t = c.b.Any
			}
			optional := mn.Flags.Has(ast.FlagOptional)
			if optional {
				t = c.in.Union(t, c.b.Undefined)
			}
			info.Props = appendProp(info.Props, types.Property{
				Name: name, Type: t, Optional: optional, Readonly: mn.Flags.Has(ast.FlagReadonly),
			})
		case ast.TSMethodSignature:
			name, ok := propertyName(tree, mn.Slots[ast.SigKey], mn.Flags.Has(ast.FlagComputed))
			if !ok {
				continue
			}
			var t types.TypeID
			switch mn.Op {
			case "get":
				t = c.typeOf(f, mn.Slots[ast.MethodSigRet])
			case "set":
				t = c.paramsType(f, mn.List)
			default:
				t = c.signatureType(f, m, mn.List, mn.Slots[ast.MethodSigTP], mn.Slots[ast.MethodSigRet], false)
			}
			if t == types.NoTypeID {
				continue
			}
			info.Props = appendProp(info.Props, types.Property{Name: name, Type: t, Optional: mn.Flags.Has(ast.FlagOptional)})
		case ast.TSIndexSignature:
			t := c.typeOf(f, mn.Slots[ast.IndexSigType])
			if len(mn.List) == 1 {
				key := c.typeOf(f, tree.Child(mn.List[0], ast.IdentType))
				if key == c.b.Number {
					info.NumberIndex = t
				} else {
					info.StringIndex = t
				}
			}
		case ast.TSCallSignatureDeclaration:
			info.Call = c.signatureType(f, m, mn.List, mn.Slots[0], mn.Slots[1], false)
		case ast.TSConstructSignatureDeclaration:
			info.Construct = c.signatureType(f, m, mn.List, mn.Slots[0], mn.Slots[1], false)
		}
	}
	return info
}

// paramsType: тип единственного параметра сеттера.
func (c *checker) paramsType(f *fileState, params []ast.NodeID) types.TypeID {
	if len(params) != 1 {
		return types.NoTypeID
	}
	return c.typeOf(f, f.tree.Child(params[0], ast.IdentType))
}

func appendProp(props []types.Property, p types.Property) []types.Property {
	for i := range props {
		if props[i].Name == p.Name {
			props[i] = p
			return props
		}
	}
	return append(props, p)
}

// propertyName: статическое имя ключа: идентификатор, строка или число.
func propertyName(tree *ast.Tree, key ast.NodeID, computed bool) (string, bool) {
	n := tree.Node(key)
	if n == nil {
		return "", false
	}
	switch {
	case n.Kind == ast.Identifier && !computed:
		return tree.Name(key), true
	case n.Kind == ast.PrivateIdentifier:
		return "#" + tree.Name(key), true
	case n.Kind == ast.Literal && n.Lit == ast.LitString:
		return cookString(n.Value), true
	case n.Kind == ast.Literal && n.Lit == ast.LitNumber:
		return numberText(n.Value)
	}
	return "", false
}

// typeReference разрешает имя типа: параметр типа, объявление в области
// видимости, импорт или встроенное имя.
func (c *checker) typeReference(f *fileState, node ast.NodeID) types.TypeID {
	tree := f.tree
	n := tree.Node(node)
	nameNode := n.Slots[ast.RefName]
	if !tree.Is(nameNode, ast.Identifier) {
		return c.qualifiedType(f, nameNode)
	}
	name := tree.Name(nameNode)
	args := make([]types.TypeID, 0, len(n.List))
	for _, a := range n.List {
		t := c.typeOf(f, a)
		if t == types.NoTypeID {
			return types.NoTypeID
		}
		args = append(args, t)
	}
	if tp := c.typeParam(f, node, name); tp != types.NoTypeID {
		return tp
	}
	if b := f.scopes.LookupType(f.scopes.ScopeAt(node), name); b.IsValid() {
		return c.namedType(f, b, args)
	}
	switch name {
	case "Array", "ReadonlyArray":
		if len(args) != 1 {
			return types.NoTypeID
		}
		return c.in.Intern(types.MakeArray(args[0], name == "ReadonlyArray"))
	case "const":
		return types.NoTypeID // `as const` разбирается в exprType
	}
	return c.in.Ref(name, args...)
}

// qualifiedType: E.A у enum даёт тип enum.
func (c *checker) qualifiedType(f *fileState, name ast.NodeID) types.TypeID {
	tree := f.tree
	left := tree.Child(name, 0)
	if !tree.Is(left, ast.Identifier) {
		return types.NoTypeID
	}
	b := f.scopes.LookupType(f.scopes.ScopeAt(name), tree.Name(left))
	if binding := f.scopes.Binding(b); binding != nil && binding.Kind == scope.BindEnum {
		return c.namedType(f, b, nil)
	}
	return types.NoTypeID
}

// typeParam ищет объявление параметра типа среди предков узла.
func (c *checker) typeParam(f *fileState, node ast.NodeID, name string) types.TypeID {
	tree := f.tree
	for p := tree.Parent(node); p.IsValid(); p = tree.Parent(p) {
		pn := tree.Node(p)
		var decl ast.NodeID
		switch pn.Kind {
		case ast.FunctionDeclaration, ast.FunctionExpression, ast.ArrowFunctionExpression:
			decl = pn.Slots[ast.FnTypeParams]
		case ast.ClassDeclaration, ast.ClassExpression:
			decl = pn.Slots[ast.ClassTypeParams]
		case ast.TSTypeAliasDeclaration:
			decl = pn.Slots[ast.AliasTypeParams]
		case ast.TSInterfaceDeclaration:
			decl = pn.Slots[ast.IfaceTypeParams]
		case ast.TSMethodSignature:
			decl = pn.Slots[ast.MethodSigTP]
		case ast.TSFunctionType, ast.TSConstructorType, ast.TSCallSignatureDeclaration, ast.TSConstructSignatureDeclaration:
			decl = pn.Slots[ast.FnTypeTP]
		case ast.TSMappedType:
			if param := pn.Slots[0]; tree.Name(param) == name {
				return c.in.TypeParam(name, f.origin(param))
			}
		case ast.TSConditionalType:
			if tp := c.inferParam(f, pn.Slots[1], name); tp != types.NoTypeID {
				return tp
			}
		}
		for _, param := range tree.List(decl) {
			if tree.Name(param) == name {
				return c.in.TypeParam(name, f.origin(param))
			}
		}
	}
	return types.NoTypeID
}

func (c *checker) inferParam(f *fileState, ext ast.NodeID, name string) types.TypeID {
	var found types.TypeID
	f.tree.Inspect(ext, func(id ast.NodeID) bool {
		if found != types.NoTypeID {
			return false
		}
		if f.tree.Is(id, ast.TSTypeParameter) && f.tree.Name(id) == name && f.tree.Is(f.tree.Parent(id), ast.TSInferType) {
			found = c.in.TypeParam(name, f.origin(id))
		}
		return true
	})
	return found
}

// namedType: тип, на который ссылается binding в пространстве типов.
func (c *checker) namedType(f *fileState, b scope.BindingID, args []types.TypeID) types.TypeID {
	binding := f.scopes.Binding(b)
	if binding == nil {
		return types.NoTypeID
	}
	switch binding.Kind {
	case scope.BindInterface:
		decl := binding.Decl
		if len(args) > 0 || f.tree.Child(decl, ast.IfaceTypeParams).IsValid() {
			return c.in.Instance(f.origin(decl), binding.Name, args...)
		}
		return c.interfaceType(f, b)
	case scope.BindTypeAlias:
		decl := binding.Decl
		if len(args) > 0 || f.tree.Child(decl, ast.AliasTypeParams).IsValid() {
			return c.in.Instance(f.origin(decl), binding.Name, args...)
		}
		return c.typeOf(f, f.tree.Child(decl, ast.AliasType))
	case scope.BindClass:
		decl := binding.Decl
		if len(args) > 0 || f.tree.Child(decl, ast.ClassTypeParams).IsValid() {
			return c.in.Instance(f.origin(decl), binding.Name, args...)
		}
		return c.classInstance(f, decl)
	case scope.BindEnum:
		return c.enumType(f, binding.Decl)
	case scope.BindImport:
		if target, ok := c.resolveImport(f, binding); ok && target.binding.IsValid() {
			return c.namedType(target.f, target.binding, args)
		}
	}
	return types.NoTypeID
}
