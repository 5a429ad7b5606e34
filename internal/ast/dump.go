package ast

import (
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// Sexpr renders the subtree rooted at id as an s-expression:
// (Kind[ name|value][:op] children...). Holes in lists print as "_".
func (t *Tree) Sexpr(id NodeID) string {
	var b strings.Builder
	t.sexpr(&b, id)
	return b.String()
}

func (t *Tree) sexpr(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		b.WriteByte('_')
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	switch {
	case n.Name != source.NoStringID:
		b.WriteByte(' ')
		b.WriteString(t.Strings.MustLookup(n.Name))
	case n.Value != "":
		b.WriteByte(' ')
		b.WriteString(n.Value)
	}
	if n.Op != "" && n.Op != "init" && n.Op != "method" {
		b.WriteByte(':')
		b.WriteString(n.Op)
	}
	for _, k := range Keys(n.Kind) {
		if k == ListKey {
			for _, c := range n.List {
				b.WriteByte(' ')
				t.sexpr(b, c)
			}
			continue
		}
		if c := n.Slots[k]; c.IsValid() {
			b.WriteByte(' ')
			t.sexpr(b, c)
		}
	}
	b.WriteByte(')')
}

// Dump writes an indented outline of the subtree with byte spans, one node per line.
func (t *Tree) Dump(id NodeID) string {
	var b strings.Builder
	t.dump(&b, id, 0)
	return b.String()
}

func (t *Tree) dump(b *strings.Builder, id NodeID, depth int) {
	n := t.Node(id)
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind.String())
	if n.Name != source.NoStringID {
		b.WriteString(" " + t.Strings.MustLookup(n.Name))
	} else if n.Value != "" && len(n.Value) <= 40 {
		b.WriteString(" " + n.Value)
	}
	if n.Op != "" {
		b.WriteString(" op=" + n.Op)
	}
	b.WriteString(" [" + n.Span.String() + "]\n")
	n.Children(func(c NodeID) { t.dump(b, c, depth+1) })
}
