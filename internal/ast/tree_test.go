package ast

import (
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

// buildFor строит дерево для `for (i; j; k) {}` вручную
func buildFor(t *Tree) (forID, init, test, update, body NodeID) {
	init = t.New(Identifier, sp(5, 6))
	test = t.New(Identifier, sp(8, 9))
	update = t.New(Identifier, sp(11, 12))
	body = t.New(BlockStatement, sp(14, 16))
	forID = t.New(ForStatement, sp(0, 16))
	n := t.Node(forID)
	n.Slots[ForInit], n.Slots[ForTest], n.Slots[ForUpdate], n.Slots[ForBody] = init, test, update, body
	root := t.New(Program, sp(0, 16))
	t.Node(root).List = []NodeID{forID}
	t.Root = root
	t.Link()
	return
}

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must be reserved")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("unexpected allocation %d", id)
	}
	if a.Get(5) != nil {
		t.Error("out of range must be nil")
	}
}

func TestLinkAndChildrenOrder(t *testing.T) {
	tr := NewTree(0, 8)
	forID, init, test, update, body := buildFor(tr)

	want := []NodeID{init, test, update, body}
	got := tr.Children(forID)
	if len(got) != len(want) {
		t.Fatalf("children = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %d, want %d", i, got[i], want[i])
		}
		if tr.Parent(want[i]) != forID {
			t.Errorf("parent of %d not linked", want[i])
		}
	}
	if tr.Ancestor(body, ForStatement) != forID {
		t.Error("Ancestor failed")
	}
}

func TestInspectSkipsSubtree(t *testing.T) {
	tr := NewTree(0, 8)
	forID, _, _, _, _ := buildFor(tr)
	var seen []Kind
	tr.Inspect(tr.Root, func(id NodeID) bool {
		seen = append(seen, tr.Kind(id))
		return id != forID
	})
	if len(seen) != 2 || seen[1] != ForStatement {
		t.Errorf("unexpected walk %v", seen)
	}
}

func TestEveryKindHasName(t *testing.T) {
	for k := Kind(1); k < kindCount; k++ {
		if k.String() == "" {
			t.Errorf("kind %d has no name", k)
		}
		if back, ok := KindByName(k.String()); !ok || back != k {
			t.Errorf("KindByName(%s) failed", k)
		}
	}
}

func TestKeysAreValidSlots(t *testing.T) {
	for k := Kind(1); k < kindCount; k++ {
		seen := map[Key]bool{}
		for _, key := range Keys(k) {
			if key != ListKey && (key < 0 || key > 3) {
				t.Errorf("%s: bad key %d", k, key)
			}
			if seen[key] {
				t.Errorf("%s: duplicate key %d", k, key)
			}
			seen[key] = true
		}
	}
}
