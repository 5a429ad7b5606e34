package ast

// NodeID indexes a node inside Tree.Nodes. The zero value means "absent".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// Flags carries boolean node attributes; meaning depends on Kind.
type Flags uint32

const (
	FlagComputed      Flags = 1 << iota // a[b], { [k]: v }
	FlagPrefix                          // ++x
	FlagOptional                        // a?.b, f?.(), x?: T
	FlagShorthand                       // { a }
	FlagMethod                          // { m() {} }
	FlagStatic                          // static m() {}
	FlagAsync                           // async function
	FlagDeclare                         // declare const x
	FlagAbstract                        // abstract m(): void
	FlagReadonly                        // readonly x
	FlagPublic                          // public x
	FlagPrivate                         // private x
	FlagProtected                       // protected x
	FlagOverride                        // override m()
	FlagTypeOnly                        // import type / export type
	FlagExpressionBody                  // x => x + 1
	FlagParenthesized                   // (expr)
	FlagConst                           // const enum, as const
	FlagGenerator                       // function* (пока только флаг)
	FlagDefinite                        // x!: T
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// LitKind classifies Literal nodes.
type LitKind uint8

const (
	LitNone LitKind = iota
	LitString
	LitNumber
	LitBigInt
	LitBoolean
	LitNull
	LitRegExp
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitNumber:
		return "number"
	case LitBigInt:
		return "bigint"
	case LitBoolean:
		return "boolean"
	case LitNull:
		return "null"
	case LitRegExp:
		return "regexp"
	}
	return "none"
}
