package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnknown
	KindNever
	KindVoid
	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindSymbol
	KindNonPrimitive // object
	KindLiteral
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindObject
	KindFunction
	KindRef       // именованный тип без структуры: Promise<T>, HTMLElement
	KindTypeParam // параметр типа T
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindVoid:
		return "void"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindNonPrimitive:
		return "object"
	case KindLiteral:
		return "literal"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindObject:
		return "object-type"
	case KindFunction:
		return "function"
	case KindRef:
		return "ref"
	case KindTypeParam:
		return "type-param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports keyword types that carry no payload.
func (k Kind) IsPrimitive() bool {
	return k >= KindAny && k <= KindNonPrimitive
}

// Flags carries per-descriptor attributes.
type Flags uint8

const (
	FlagReadonly Flags = 1 << iota // readonly T[]
)

// Type is a compact descriptor for any supported type. Composite kinds keep
// their structure in side tables addressed by Payload.
type Type struct {
	Kind    Kind
	Elem    TypeID // для массивов
	Flags   Flags
	Payload uint32
}

// MakeArray describes T[] (or readonly T[]).
func MakeArray(elem TypeID, readonly bool) Type {
	t := Type{Kind: KindArray, Elem: elem}
	if readonly {
		t.Flags |= FlagReadonly
	}
	return t
}
