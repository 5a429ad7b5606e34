// Package semantic is the read-only bridge between rules and the typed
// semantic model of a project.
package semantic

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// Model is a checked program. *checker.Program implements it.
type Model interface {
	Types() *types.Interner
	TypeAt(file source.FileID, node ast.NodeID) (types.TypeID, bool)
	Covers(file source.FileID) bool
}

// Bridge answers type queries for one file. The zero Bridge (no model)
// answers "absent" to everything.
type Bridge struct {
	model Model
	file  source.FileID
}

// NewBridge binds model to file. A nil model yields an unavailable bridge.
func NewBridge(model Model, file source.FileID) Bridge {
	return Bridge{model: model, file: file}
}

// ProgramAvailable reports whether the file is part of a checked program.
func (b Bridge) ProgramAvailable() bool {
	return b.model != nil && b.model.Covers(b.file)
}

// TypeAt returns the type of node, if the model knows it.
func (b Bridge) TypeAt(node ast.NodeID) (types.TypeID, bool) {
	if !b.ProgramAvailable() {
		return types.NoTypeID, false
	}
	return b.model.TypeAt(b.file, node)
}

// Interner returns the interner of the model, nil without one.
func (b Bridge) Interner() *types.Interner {
	if b.model == nil {
		return nil
	}
	return b.model.Types()
}

func (b Bridge) NonNullable(t types.TypeID) types.TypeID {
	if in := b.Interner(); in != nil {
		return in.NonNullable(t)
	}
	return types.NoTypeID
}

func (b Bridge) Properties(t types.TypeID) []types.Property {
	if in := b.Interner(); in != nil {
		return in.Properties(t)
	}
	return nil
}

func (b Bridge) IsLiteral(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsLiteral(t)
}

func (b Bridge) IsTuple(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsTuple(t)
}

func (b Bridge) IsObject(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsObject(t)
}

// CouldBeTuple reports object types shaped like tuples ("0".."n-1" keys).
func (b Bridge) CouldBeTuple(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.CouldBeTuple(t)
}

func (b Bridge) IsArray(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsArray(t)
}

func (b Bridge) IsArrayLike(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsArrayLike(t)
}

func (b Bridge) IsStringLike(t types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsStringLike(t)
}

func (b Bridge) IsAssignable(src, dst types.TypeID) bool {
	in := b.Interner()
	return in != nil && in.IsAssignable(src, dst)
}

// TypeString renders t for messages and option matching.
func (b Bridge) TypeString(t types.TypeID) string {
	if in := b.Interner(); in != nil {
		return in.TypeString(t)
	}
	return ""
}
