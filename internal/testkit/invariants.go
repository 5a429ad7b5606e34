package testkit

import (
	"fmt"
	"testing"

	"fortio.org/safecast"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) the root span points at sf and lies within its content
// 2) every node span is ordered (Start <= End) and contained in its parent's span
// 3) every child links back to the node it was reached from
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.Node(tree.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", root.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.Start > root.Span.End || root.Span.End > lenContent {
		return fmt.Errorf("root span %v outside content of %d bytes", root.Span, lenContent)
	}
	return checkNode(tree, tree.Root, sf.ID)
}

func checkNode(tree *ast.Tree, id ast.NodeID, file source.FileID) error {
	sp := tree.Span(id)
	if sp.Start > sp.End {
		return fmt.Errorf("%s: inverted span %v", tree.Kind(id), sp)
	}
	if sp.File != file {
		return fmt.Errorf("%s: span file mismatch: got=%d want=%d", tree.Kind(id), sp.File, file)
	}
	for _, child := range tree.Children(id) {
		cs := tree.Span(child)
		if cs.Start < sp.Start || cs.End > sp.End {
			return fmt.Errorf("%s span %v is outside parent %s span %v", tree.Kind(child), cs, tree.Kind(id), sp)
		}
		if p := tree.Parent(child); p != id {
			return fmt.Errorf("%s at %v: parent link %d, reached from %d", tree.Kind(child), cs, p, id)
		}
		if err := checkNode(tree, child, file); err != nil {
			return err
		}
	}
	return nil
}

func checkParsedSpans(t *testing.T, sf *source.File, name string) {
	t.Helper()
	res := parser.ParseFile(sf, parser.Options{})
	if !res.OK() {
		return
	}
	if err := CheckSpanInvariants(res.Tree, sf); err != nil {
		t.Errorf("%s: %v", name, err)
	}
}
