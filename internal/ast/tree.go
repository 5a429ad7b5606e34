package ast

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Tree owns every node of one file. Nodes never reference each other by
// pointer; Parent is an index and is filled by Link.
type Tree struct {
	File    source.FileID
	Nodes   *Arena[Node]
	Strings *source.Interner
	Root    NodeID
}

// NewTree creates an empty tree for file.
func NewTree(file source.FileID, capHint uint) *Tree {
	return &Tree{
		File:    file,
		Nodes:   NewArena[Node](capHint),
		Strings: source.NewInterner(),
	}
}

// New allocates a node of the given kind.
func (t *Tree) New(kind Kind, span source.Span) NodeID {
	return NodeID(t.Nodes.Allocate(Node{Kind: kind, Span: span}))
}

// Node returns the node for id, or nil for NoNodeID.
func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return Invalid
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{File: t.File}
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Child returns the child in slot i of id.
func (t *Tree) Child(id NodeID, slot int) NodeID {
	if n := t.Node(id); n != nil {
		return n.Slots[slot]
	}
	return NoNodeID
}

// List returns the list children of id (holes included).
func (t *Tree) List(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.List
	}
	return nil
}

// Children returns the present children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	n.Children(func(c NodeID) { out = append(out, c) })
	return out
}

// Name returns the identifier text of id.
func (t *Tree) Name(id NodeID) string {
	n := t.Node(id)
	if n == nil || n.Name == source.NoStringID {
		return ""
	}
	return t.Strings.MustLookup(n.Name)
}

// Is reports whether id is a node of kind.
func (t *Tree) Is(id NodeID, kind Kind) bool {
	return t.Kind(id) == kind
}

// IsIdent reports whether id is an Identifier with the given name.
func (t *Tree) IsIdent(id NodeID, name string) bool {
	return t.Kind(id) == Identifier && t.Name(id) == name
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	return int(t.Nodes.Len())
}

// Link fills Parent for every node reachable from Root.
func (t *Tree) Link() {
	if !t.Root.IsValid() {
		return
	}
	stack := []NodeID{t.Root}
	t.Node(t.Root).Parent = NoNodeID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		t.Node(id).Children(func(c NodeID) {
			t.Node(c).Parent = id
			stack = append(stack, c)
		})
	}
}

// Inspect walks the subtree rooted at id in depth-first source order. If
// fn returns false the children of that node are skipped.
func (t *Tree) Inspect(id NodeID, fn func(NodeID) bool) {
	n := t.Node(id)
	if n == nil || !fn(id) {
		return
	}
	n.Children(func(c NodeID) { t.Inspect(c, fn) })
}

// Ancestor returns the closest ancestor of id whose kind is one of kinds.
func (t *Tree) Ancestor(id NodeID, kinds ...Kind) NodeID {
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		k := t.Kind(p)
		for _, want := range kinds {
			if k == want {
				return p
			}
		}
	}
	return NoNodeID
}
