package scope

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Kind enumerates scope categories.
type Kind uint8

const (
	KindInvalid  Kind = iota
	KindGlobal        // script without imports/exports
	KindModule        // file with imports or exports
	KindFunction      // functions and arrows, parameters included
	KindBlock         // { ... } that is not a function body
	KindFor           // for / for-in / for-of header
	KindCatch         // catch (e)
	KindSwitch        // switch cases
	KindClass         // class body; holds the name of a class expression
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindModule:
		return "module"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	case KindFor:
		return "for"
	case KindCatch:
		return "catch"
	case KindSwitch:
		return "switch"
	case KindClass:
		return "class"
	default:
		return "invalid"
	}
}

// IsVarScope reports whether `var` declarations hoist to this scope.
func (k Kind) IsVarScope() bool {
	return k == KindGlobal || k == KindModule || k == KindFunction
}

// Scope is one lexical scope. Values and types live in separate
// namespaces; classes and enums appear in both.
type Scope struct {
	Kind     Kind
	Parent   ScopeID
	Owner    ast.NodeID
	Span     source.Span
	Names    map[string]BindingID
	Types    map[string]BindingID
	Bindings []BindingID
	Children []ScopeID
}

// BindingKind says how a name was declared.
type BindingKind uint8

const (
	BindInvalid BindingKind = iota
	BindVar
	BindLet
	BindConst
	BindFunction
	BindClass
	BindParam
	BindCatch
	BindImport
	BindEnum
	BindTypeAlias
	BindInterface
)

func (k BindingKind) String() string {
	switch k {
	case BindVar:
		return "var"
	case BindLet:
		return "let"
	case BindConst:
		return "const"
	case BindFunction:
		return "function"
	case BindClass:
		return "class"
	case BindParam:
		return "param"
	case BindCatch:
		return "catch"
	case BindImport:
		return "import"
	case BindEnum:
		return "enum"
	case BindTypeAlias:
		return "type"
	case BindInterface:
		return "interface"
	default:
		return "invalid"
	}
}

// IsType reports whether the binding belongs to the type namespace only.
func (k BindingKind) IsType() bool {
	return k == BindTypeAlias || k == BindInterface
}

// Binding is a declared name. Defs are the defining identifiers, Decl is
// the declaring construct of the first definition (VariableDeclarator,
// FunctionDeclaration, parameter root, import specifier, ...).
type Binding struct {
	Name  string
	Kind  BindingKind
	Scope ScopeID
	Decl  ast.NodeID
	Defs  []ast.NodeID
	Refs  []RefID
}

// RefFlags describe how a reference uses its binding.
type RefFlags uint8

const (
	RefRead RefFlags = 1 << iota
	RefWrite
	RefInit // запись при объявлении: let x = 1, for (const x of xs)
)

func (f RefFlags) Has(flag RefFlags) bool { return f&flag != 0 }

// Reference is one use of a name in value position.
type Reference struct {
	Ident   ast.NodeID
	From    ScopeID
	Binding BindingID
	Flags   RefFlags
}

// Resolved reports whether the reference found its declaration.
func (r Reference) Resolved() bool { return r.Binding.IsValid() }

// IsRead reports read references.
func (r Reference) IsRead() bool { return r.Flags.Has(RefRead) }

// IsWrite reports write references, initializers included.
func (r Reference) IsWrite() bool { return r.Flags.Has(RefWrite) }
