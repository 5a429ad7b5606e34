package ast

import (
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Node is one syntax tree node. Children are addressed through Slots and
// List; which positions a kind uses is described by Keys(kind) and by the
// slot constants in slots.go.
type Node struct {
	Kind   Kind
	Flags  Flags
	Lit    LitKind
	Span   source.Span
	Parent NodeID
	Slots  [4]NodeID
	List   []NodeID
	// Name: имя идентификатора, параметра типа или ключевого типа
	Name source.StringID
	// Op: оператор, вид объявления (var/let/const) или вид метода
	Op string
	// Value: исходный текст литерала или элемента шаблона
	Value string
}

// Slot returns the child in slot i.
func (n *Node) Slot(i int) NodeID {
	return n.Slots[i]
}

// Children calls fn for every present child in source order.
func (n *Node) Children(fn func(NodeID)) {
	for _, k := range Keys(n.Kind) {
		if k == ListKey {
			for _, id := range n.List {
				if id.IsValid() {
					fn(id)
				}
			}
			continue
		}
		if id := n.Slots[k]; id.IsValid() {
			fn(id)
		}
	}
}
