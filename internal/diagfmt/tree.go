package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// NodeOutput is one node of the parse JSON dump.
type NodeOutput struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name,omitempty"`
	Op       string       `json:"op,omitempty"`
	Value    string       `json:"value,omitempty"`
	Span     source.Span  `json:"span"`
	Line     uint32       `json:"line"`
	Col      uint32       `json:"col"`
	Children []NodeOutput `json:"children,omitempty"`
}

// FormatTreePretty пишет дерево с отступами, по узлу на строку.
func FormatTreePretty(w io.Writer, tree *ast.Tree, root ast.NodeID) error {
	_, err := io.WriteString(w, tree.Dump(root))
	return err
}

// FormatTreeSexpr пишет дерево одной s-expression.
func FormatTreeSexpr(w io.Writer, tree *ast.Tree, root ast.NodeID) error {
	_, err := io.WriteString(w, tree.Sexpr(root)+"\n")
	return err
}

// FormatTreeJSON пишет дерево вложенными объектами.
func FormatTreeJSON(w io.Writer, tree *ast.Tree, root ast.NodeID, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildNode(tree, root, fs))
}

func buildNode(tree *ast.Tree, id ast.NodeID, fs *source.FileSet) NodeOutput {
	n := tree.Node(id)
	pos, _ := fs.Resolve(n.Span)
	out := NodeOutput{
		Kind:  n.Kind.String(),
		Name:  tree.Name(id),
		Op:    n.Op,
		Value: n.Value,
		Span:  n.Span,
		Line:  pos.Line,
		Col:   pos.Col,
	}
	for _, c := range tree.Children(id) {
		out.Children = append(out.Children, buildNode(tree, c, fs))
	}
	return out
}
