package checker

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// builtinConstructors: глобальные классы без параметров типа; `new X()`
// даёт ссылочный тип X.
var builtinConstructors = map[string]bool{
	"Date": true, "Error": true, "TypeError": true, "RangeError": true, "SyntaxError": true,
	"ReferenceError": true, "EvalError": true, "URIError": true, "RegExp": true,
	"Object": true, "URL": true, "URLSearchParams": true, "AbortController": true,
	"ArrayBuffer": true, "Uint8Array": true, "Int32Array": true, "Float64Array": true,
}

// exprType: тип выражения или NoTypeID, если он не выводится.
func (c *checker) exprType(f *fileState, id ast.NodeID) types.TypeID {
	n := f.tree.Node(id)
	if n == nil {
		return types.NoTypeID
	}
	if ast.IsFunction(n.Kind) {
		return c.functionType(f, id)
	}
	return cached(f.exprs, id, func() types.TypeID { return c.computeExpr(f, id, n) })
}

func (c *checker) computeExpr(f *fileState, id ast.NodeID, n *ast.Node) types.TypeID {
	switch n.Kind {
	case ast.Literal:
		if n.Lit == ast.LitRegExp {
			return c.in.Ref("RegExp")
		}
		return c.literalType(f, id)
	case ast.TemplateLiteral:
		return c.literalType(f, id)
	case ast.Identifier:
		return c.identType(f, id)
	case ast.ThisExpression:
		return c.thisType(f, id)
	case ast.ArrayExpression:
		return c.arrayType(f, n)
	case ast.ObjectExpression:
		return c.objectType(f, id, n, false)
	case ast.ClassExpression, ast.ClassDeclaration:
		return c.classStatic(f, id)
	case ast.UnaryExpression:
		return c.unaryType(f, id, n)
	case ast.UpdateExpression:
		if c.in.Kind(c.exprType(f, n.Slots[ast.Operand])) == types.KindBigInt {
			return c.b.BigInt
		}
		return c.b.Number
	case ast.BinaryExpression:
		return c.binaryType(f, n)
	case ast.LogicalExpression:
		left, right := c.exprType(f, n.Slots[ast.Left]), c.exprType(f, n.Slots[ast.Right])
		if left == types.NoTypeID || right == types.NoTypeID {
			return types.NoTypeID
		}
		switch {
		case n.Op == "??":
			return c.in.Union(c.in.NonNullable(left), right)
		case left == right:
			return left
		}
		return types.NoTypeID
	case ast.AssignmentExpression:
		if n.Op == "=" {
			return c.exprType(f, n.Slots[ast.Right])
		}
		return types.NoTypeID
	case ast.ConditionalExpression:
		a, b := c.exprType(f, n.Slots[ast.IfConsequent]), c.exprType(f, n.Slots[ast.IfAlternate])
		if a == types.NoTypeID || b == types.NoTypeID {
			return types.NoTypeID
		}
		return c.in.Union(a, b)
	case ast.CallExpression:
		return c.callType(f, n)
	case ast.NewExpression:
		return c.newType(f, n)
	case ast.MemberExpression:
		return c.memberType(f, n)
	case ast.SequenceExpression:
		if len(n.List) == 0 {
			return types.NoTypeID
		}
		return c.exprType(f, n.List[len(n.List)-1])
	case ast.AwaitExpression:
		t := c.exprType(f, n.Slots[ast.Operand])
		if info, ok := c.in.RefInfo(t); ok && info.Name == "Promise" && len(info.Args) == 1 {
			return info.Args[0]
		}
		return t
	case ast.TSAsExpression:
		return c.assertedType(f, n.Slots[ast.AssertExpr], n.Slots[ast.AssertType])
	case ast.TSTypeAssertion:
		return c.assertedType(f, n.Slots[ast.AngleExpr], n.Slots[ast.AngleType])
	case ast.TSSatisfiesExpression:
		return c.exprType(f, n.Slots[ast.AssertExpr])
	case ast.TSNonNullExpression:
		return c.in.NonNullable(c.exprType(f, n.Slots[ast.AssertExpr]))
	case ast.FunctionDeclaration:
		return c.functionType(f, id)
	}
	// tagged templates, import(), new.target и super не типизируются
	return types.NoTypeID
}

// identType: тип ссылки на имя. Сужение по потоку управления не учитывается.
func (c *checker) identType(f *fileState, ident ast.NodeID) types.TypeID {
	if b := f.scopes.BindingOf(ident); b.IsValid() {
		return c.bindingType(f, b)
	}
	switch f.tree.Name(ident) {
	case "undefined":
		return c.b.Undefined
	case "NaN", "Infinity":
		return c.b.Number
	}
	return types.NoTypeID
}

// thisType: тип this в методе, поле или конструкторе класса.
func (c *checker) thisType(f *fileState, node ast.NodeID) types.TypeID {
	tree := f.tree
	for p := tree.Parent(node); p.IsValid(); p = tree.Parent(p) {
		switch tree.Kind(p) {
		case ast.ArrowFunctionExpression:
			continue
		case ast.FunctionExpression:
			member := tree.Node(tree.Parent(p))
			if member == nil || member.Kind != ast.MethodDefinition {
				return types.NoTypeID
			}
			return c.memberThis(f, tree.Parent(p), member.Flags.Has(ast.FlagStatic))
		case ast.FunctionDeclaration:
			return types.NoTypeID
		case ast.PropertyDefinition:
			return c.memberThis(f, p, tree.Node(p).Flags.Has(ast.FlagStatic))
		}
	}
	return types.NoTypeID
}

func (c *checker) memberThis(f *fileState, member ast.NodeID, static bool) types.TypeID {
	decl := f.tree.Ancestor(member, ast.ClassDeclaration, ast.ClassExpression)
	if !decl.IsValid() {
		return types.NoTypeID
	}
	if static {
		return c.classStatic(f, decl)
	}
	return c.classInstance(f, decl)
}

// arrayType: T[] с объединением расширенных типов элементов.
func (c *checker) arrayType(f *fileState, n *ast.Node) types.TypeID {
	if len(n.List) == 0 {
		return types.NoTypeID
	}
	elems := make([]types.TypeID, 0, len(n.List))
	for _, el := range n.List {
		var t types.TypeID
		switch {
		case !el.IsValid():
			t = c.b.Undefined
		case f.tree.Is(el, ast.SpreadElement):
			t = c.in.ElementType(c.exprType(f, f.tree.Child(el, ast.Operand)))
		default:
			t = c.in.Widen(c.exprType(f, el))
		}
		if t == types.NoTypeID {
			return types.NoTypeID
		}
		elems = append(elems, t)
	}
	return c.in.Intern(types.MakeArray(c.in.Union(elems...), false))
}

// objectType: анонимный тип объектного литерала. Под `as const` свойства
// readonly и сохраняют литеральные типы.
func (c *checker) objectType(f *fileState, id ast.NodeID, n *ast.Node, asConst bool) types.TypeID {
	tree := f.tree
	origin := f.origin(id)
	if asConst {
		origin += "#const"
	}
	obj, created := c.in.Declare(types.ObjectAnonymous, "", origin)
	if !created {
		return obj
	}
	var info types.ObjectInfo
	for _, prop := range n.List {
		pn := tree.Node(prop)
		if pn == nil {
			continue
		}
		if pn.Kind == ast.SpreadElement {
			for _, p := range c.in.Properties(c.exprType(f, pn.Slots[ast.Operand])) {
				info.Props = appendProp(info.Props, p)
			}
			continue
		}
		if pn.Kind != ast.Property {
			continue
		}
		name, ok := c.patternKey(tree, prop)
		if !ok {
			continue
		}
		value := pn.Slots[ast.PropertyValue]
		var t types.TypeID
		switch {
		case pn.Op == "get":
			if fi, ok := c.in.FnInfo(c.exprType(f, value)); ok {
				t = fi.Result
			}
		case pn.Op == "set":
			if fi, ok := c.in.FnInfo(c.exprType(f, value)); ok && len(fi.Params) == 1 {
				t = fi.Params[0].Type
			}
		case asConst:
			t = c.constType(f, value)
		default:
			t = c.in.Widen(c.exprType(f, value))
		}
		if t == types.NoTypeID {
			t = c.b.Any
		}
		info.Props = appendProp(info.Props, types.Property{Name: name, Type: t, Readonly: asConst})
	}
	c.in.SetMembers(obj, info)
	return obj
}

// constType: тип выражения под `as const`.
func (c *checker) constType(f *fileState, id ast.NodeID) types.TypeID {
	tree := f.tree
	n := tree.Node(id)
	if n == nil {
		return types.NoTypeID
	}
	switch n.Kind {
	case ast.Literal, ast.TemplateLiteral, ast.UnaryExpression:
		if t := c.literalType(f, id); t != types.NoTypeID {
			return t
		}
	case ast.ArrayExpression:
		info := types.TupleInfo{Readonly: true}
		for _, el := range n.List {
			if !el.IsValid() || tree.Is(el, ast.SpreadElement) {
				return types.NoTypeID
			}
			t := c.constType(f, el)
			if t == types.NoTypeID {
				return types.NoTypeID
			}
			info.Elems = append(info.Elems, t)
			info.Optional = append(info.Optional, false)
		}
		return c.in.Tuple(info)
	case ast.ObjectExpression:
		return c.objectType(f, id, n, true)
	}
	return c.exprType(f, id)
}

// assertedType: тип утверждения `x as T` / `<T>x`.
func (c *checker) assertedType(f *fileState, expr, typ ast.NodeID) types.TypeID {
	tree := f.tree
	if tree.Is(typ, ast.TSTypeReference) && tree.IsIdent(tree.Child(typ, ast.RefName), "const") {
		return c.constType(f, expr)
	}
	return c.typeOf(f, typ)
}

func (c *checker) unaryType(f *fileState, id ast.NodeID, n *ast.Node) types.TypeID {
	switch n.Op {
	case "!", "delete":
		return c.b.Boolean
	case "typeof":
		return c.b.String
	case "void":
		return c.b.Undefined
	case "-":
		if t := c.literalType(f, id); t != types.NoTypeID {
			return t
		}
		fallthrough
	case "+", "~":
		if n.Op != "+" && c.in.Kind(c.exprType(f, n.Slots[ast.Operand])) == types.KindBigInt {
			return c.b.BigInt
		}
		return c.b.Number
	}
	return types.NoTypeID
}

func (c *checker) binaryType(f *fileState, n *ast.Node) types.TypeID {
	switch n.Op {
	case "==", "!=", "===", "!==", "<", ">", "<=", ">=", "in", "instanceof":
		return c.b.Boolean
	}
	left := c.in.Widen(c.exprType(f, n.Slots[ast.Left]))
	right := c.in.Widen(c.exprType(f, n.Slots[ast.Right]))
	lk, rk := c.in.Kind(left), c.in.Kind(right)
	if n.Op == "+" {
		switch {
		case lk == types.KindString || rk == types.KindString:
			return c.b.String
		case lk == types.KindNumber && rk == types.KindNumber:
			return c.b.Number
		case lk == types.KindBigInt && rk == types.KindBigInt:
			return c.b.BigInt
		}
		return types.NoTypeID
	}
	if lk == types.KindBigInt && rk == types.KindBigInt {
		return c.b.BigInt
	}
	return c.b.Number
}

// signatureOf: функциональный тип, который вызывается у значения типа t.
func (c *checker) signatureOf(t types.TypeID, construct bool) (types.FnInfo, bool) {
	if fi, ok := c.in.FnInfo(t); ok && !construct {
		return fi, true
	}
	info, ok := c.in.ObjectInfo(t)
	if !ok {
		return types.FnInfo{}, false
	}
	sig := info.Call
	if construct {
		sig = info.Construct
	}
	return c.in.FnInfo(sig)
}

func (c *checker) callType(f *fileState, n *ast.Node) types.TypeID {
	callee := n.Slots[ast.Callee]
	if f.tree.Is(callee, ast.Super) || f.tree.Is(callee, ast.ImportExpression) {
		return types.NoTypeID
	}
	fi, ok := c.signatureOf(c.exprType(f, callee), false)
	// обобщённые сигнатуры не инстанцируются
	if !ok || len(fi.TypeParams) > 0 || fi.Result == types.NoTypeID {
		return types.NoTypeID
	}
	if n.Flags.Has(ast.FlagOptional) {
		return c.in.Union(fi.Result, c.b.Undefined)
	}
	return fi.Result
}

func (c *checker) newType(f *fileState, n *ast.Node) types.TypeID {
	tree := f.tree
	callee := n.Slots[ast.Callee]
	if tree.Is(callee, ast.Identifier) && !f.scopes.BindingOf(callee).IsValid() {
		name := tree.Name(callee)
		if builtinConstructors[name] {
			return c.in.Ref(name)
		}
		if args := tree.List(n.Slots[ast.CallTypeArgs]); len(args) > 0 {
			ids := make([]types.TypeID, 0, len(args))
			for _, a := range args {
				t := c.typeOf(f, a)
				if t == types.NoTypeID {
					return types.NoTypeID
				}
				ids = append(ids, t)
			}
			return c.in.Ref(name, ids...)
		}
		return types.NoTypeID
	}
	fi, ok := c.signatureOf(c.exprType(f, callee), true)
	if !ok || fi.Result == types.NoTypeID {
		return types.NoTypeID
	}
	return fi.Result
}

func (c *checker) memberType(f *fileState, n *ast.Node) types.TypeID {
	tree := f.tree
	obj := c.exprType(f, n.Slots[ast.ObjectSlot])
	if obj == types.NoTypeID {
		return types.NoTypeID
	}
	prop := n.Slots[ast.PropertySlot]
	var t types.TypeID
	if n.Flags.Has(ast.FlagComputed) {
		t = c.indexType(f, obj, prop)
	} else {
		name := tree.Name(prop)
		if tree.Is(prop, ast.PrivateIdentifier) {
			name = "#" + name
		}
		if p, ok := c.in.Property(obj, name); ok {
			t = p.Type
		}
	}
	if t == types.NoTypeID {
		return types.NoTypeID
	}
	if n.Flags.Has(ast.FlagOptional) {
		return c.in.Union(t, c.b.Undefined)
	}
	return t
}

// indexType: тип `obj[key]`.
func (c *checker) indexType(f *fileState, obj types.TypeID, key ast.NodeID) types.TypeID {
	kt := c.exprType(f, key)
	if info, ok := c.in.LiteralInfo(kt); ok && info.Base != types.KindBoolean {
		if p, ok := c.in.Property(obj, info.Value); ok {
			return p.Type
		}
	}
	numeric := c.in.Kind(c.in.Widen(kt)) == types.KindNumber
	switch c.in.Kind(obj) {
	case types.KindArray:
		if numeric {
			return c.in.ElementType(obj)
		}
	case types.KindObject:
		oi, _ := c.in.ObjectInfo(obj)
		if numeric && oi.NumberIndex != types.NoTypeID {
			return oi.NumberIndex
		}
		return oi.StringIndex
	case types.KindString:
		if numeric {
			return c.b.String
		}
	}
	return types.NoTypeID
}
