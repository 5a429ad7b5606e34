// Package checker is the semantic-model provider: a small whole-program
// type checker over the syntax trees of one project. It computes the type
// of every expression and declaration it understands and leaves the rest
// absent, so that type-aware rules skip what cannot be decided instead of
// guessing.
package checker

import (
	"context"
	"fmt"
	"sync/atomic"

	"fortio.org/safecast"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/types"
)

// Unit is one parsed file handed to the checker.
type Unit struct {
	File   *source.File
	Tree   *ast.Tree
	Scopes *scope.Manager
}

// SemKind classifies semantic nodes.
type SemKind uint8

const (
	SemExpression SemKind = iota + 1
	SemDeclaration
	SemType
)

func (k SemKind) String() string {
	switch k {
	case SemExpression:
		return "expr"
	case SemDeclaration:
		return "decl"
	case SemType:
		return "type"
	}
	return "invalid"
}

// SemID indexes a semantic node of one file. Zero means absent.
type SemID uint32

// SemNode is the checker's node for one syntax node that carries a type.
type SemNode struct {
	Syntax ast.NodeID
	Kind   SemKind
	Type   types.TypeID
}

// Program is the checked project. It is read-only after Check returns and
// safe for concurrent queries.
type Program struct {
	root  string
	types *types.Interner
	files map[source.FileID]*fileState
}

// Root returns the project root the program was built for.
func (p *Program) Root() string { return p.root }

// Types returns the interner owning every TypeID of the program.
func (p *Program) Types() *types.Interner { return p.types }

// Covers reports whether file is part of the program.
func (p *Program) Covers(file source.FileID) bool {
	_, ok := p.files[file]
	return ok
}

// Files returns the number of checked files.
func (p *Program) Files() int { return len(p.files) }

// Node returns the semantic node of a syntax node.
func (p *Program) Node(file source.FileID, node ast.NodeID) (SemNode, bool) {
	f, ok := p.files[file]
	if !ok {
		return SemNode{}, false
	}
	id, ok := f.table[node]
	if !ok {
		return SemNode{}, false
	}
	return f.nodes[id], true
}

// TypeAt returns the type of a syntax node, if known.
func (p *Program) TypeAt(file source.FileID, node ast.NodeID) (types.TypeID, bool) {
	sem, ok := p.Node(file, node)
	if !ok {
		return types.NoTypeID, false
	}
	return sem.Type, true
}

// SemNodes returns the number of semantic nodes of file.
func (p *Program) SemNodes(file source.FileID) int {
	if f, ok := p.files[file]; ok {
		return len(f.nodes) - 1
	}
	return 0
}

type memo struct {
	t    types.TypeID
	busy bool
}

// cached вычисляет значение один раз; повторный вход во время вычисления
// (рекурсивный тип) даёт «нет типа».
func cached[K comparable](m map[K]memo, key K, compute func() types.TypeID) types.TypeID {
	if v, ok := m[key]; ok {
		if v.busy {
			return types.NoTypeID
		}
		return v.t
	}
	m[key] = memo{busy: true}
	t := compute()
	m[key] = memo{t: t}
	return t
}

type fileState struct {
	id     source.FileID
	file   *source.File
	tree   *ast.Tree
	scopes *scope.Manager

	exprs     map[ast.NodeID]memo
	typeNodes map[ast.NodeID]memo
	bindings  map[scope.BindingID]memo
	patterns  map[ast.NodeID]memo
	gen       uint64

	nodes []SemNode
	table map[ast.NodeID]SemID
}

// generation отделяет номинальные типы разных запусков Check над одним
// интернером: тот же NodeID после перечитывания файла: другое объявление.
var generation atomic.Uint64

type checker struct {
	in     *types.Interner
	b      types.Builtins
	files  map[source.FileID]*fileState
	byPath map[string]*fileState
}

// Check type-checks units as one program. The interner may be shared with
// other programs; it is only ever extended.
func Check(ctx context.Context, root string, in *types.Interner, units []Unit) (*Program, error) {
	if in == nil {
		in = types.NewInterner()
	}
	c := &checker{
		in:     in,
		b:      in.Builtins(),
		files:  make(map[source.FileID]*fileState, len(units)),
		byPath: make(map[string]*fileState, len(units)),
	}
	gen := generation.Add(1)
	ordered := make([]*fileState, 0, len(units))
	for _, u := range units {
		if u.File == nil || u.Tree == nil {
			return nil, fmt.Errorf("checker: unit without file or tree")
		}
		scopes := u.Scopes
		if scopes == nil {
			scopes = scope.Analyze(u.Tree)
		}
		f := &fileState{
			id:        u.File.ID,
			file:      u.File,
			tree:      u.Tree,
			scopes:    scopes,
			exprs:     make(map[ast.NodeID]memo),
			typeNodes: make(map[ast.NodeID]memo),
			bindings:  make(map[scope.BindingID]memo),
			patterns:  make(map[ast.NodeID]memo),
			gen:       gen,
			nodes:     make([]SemNode, 1), // 0: нет узла
			table:     make(map[ast.NodeID]SemID),
		}
		c.files[f.id] = f
		c.byPath[modulePath(u.File.Path)] = f
		ordered = append(ordered, f)
	}
	for _, f := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.checkFile(f)
	}
	return &Program{root: root, types: in, files: c.files}, nil
}

// checkFile заполняет таблицу семантических узлов файла.
func (c *checker) checkFile(f *fileState) {
	tree := f.tree
	tree.Inspect(tree.Root, func(id ast.NodeID) bool {
		k := tree.Kind(id)
		switch {
		case ast.IsTypeNode(k):
			c.record(f, id, SemType, c.typeOf(f, id))
			return true
		case k == ast.Identifier && f.scopes.IsDef(id):
			c.record(f, id, SemDeclaration, c.bindingType(f, f.scopes.BindingOf(id)))
			return true
		case ast.IsExpression(k):
			if isNonReferenceIdent(tree, id) {
				return true
			}
			c.record(f, id, SemExpression, c.exprType(f, id))
			return true
		}
		switch k {
		case ast.VariableDeclarator, ast.PropertyDefinition, ast.TSEnumDeclaration,
			ast.TSInterfaceDeclaration, ast.TSTypeAliasDeclaration, ast.FunctionDeclaration,
			ast.ClassDeclaration, ast.MethodDefinition:
			c.record(f, id, SemDeclaration, c.declType(f, id))
		}
		return true
	})
}

func (c *checker) record(f *fileState, node ast.NodeID, kind SemKind, t types.TypeID) {
	if t == types.NoTypeID {
		return
	}
	n, err := safecast.Conv[uint32](len(f.nodes))
	if err != nil {
		panic(fmt.Errorf("semantic nodes overflow: %w", err))
	}
	f.nodes = append(f.nodes, SemNode{Syntax: node, Kind: kind, Type: t})
	f.table[node] = SemID(n)
}

// isNonReferenceIdent: идентификатор в позиции имени: свойство, ключ, метка.
func isNonReferenceIdent(tree *ast.Tree, id ast.NodeID) bool {
	if !tree.Is(id, ast.Identifier) {
		return false
	}
	parent := tree.Node(tree.Parent(id))
	if parent == nil {
		return false
	}
	if ast.IsTypeNode(parent.Kind) {
		return true
	}
	switch parent.Kind {
	case ast.MemberExpression:
		return parent.Slots[ast.PropertySlot] == id && !parent.Flags.Has(ast.FlagComputed)
	case ast.Property, ast.MethodDefinition, ast.PropertyDefinition, ast.TSPropertySignature,
		ast.TSMethodSignature, ast.TSEnumMember:
		return parent.Slots[ast.MemberKey] == id && !parent.Flags.Has(ast.FlagComputed)
	case ast.LabeledStatement, ast.BreakStatement, ast.ContinueStatement, ast.MetaProperty,
		ast.ImportSpecifier, ast.ExportSpecifier, ast.TSQualifiedName:
		return true
	}
	return false
}

// origin: уникальный ключ места объявления для номинальных типов.
func (f *fileState) origin(node ast.NodeID) string {
	return fmt.Sprintf("%d:%d/%d", f.gen, f.id, node)
}
