package rules

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/ast"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
)

// isNumber reports whether node is a number literal whose value equals want.
func isNumber(tree *ast.Tree, node ast.NodeID, want string) bool {
	n := tree.Node(node)
	if n == nil || n.Kind != ast.Literal || n.Lit != ast.LitNumber {
		return false
	}
	got, ok := numberValue(n.Value)
	if !ok {
		return false
	}
	w, _ := numberValue(want)
	return got == w
}

// numberValue evaluates a numeric literal as written in source.
func numberValue(raw string) (float64, bool) {
	if i, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return float64(i), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	return f, err == nil
}

// stringValue returns the value of a string literal without escapes. The
// second result is false for other nodes and for literals with escapes.
func stringValue(tree *ast.Tree, node ast.NodeID) (string, bool) {
	n := tree.Node(node)
	if n == nil || n.Kind != ast.Literal || n.Lit != ast.LitString || len(n.Value) < 2 {
		return "", false
	}
	body := n.Value[1 : len(n.Value)-1]
	if strings.ContainsRune(body, '\\') {
		return "", false
	}
	return body, true
}

func isStringLiteral(tree *ast.Tree, node ast.NodeID) bool {
	return tree.Is(node, ast.Literal) && tree.Node(node).Lit == ast.LitString
}

// isIdentifierName reports whether s can follow a dot in a property access.
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) || r == '\u200c' || r == '\u200d') {
			continue
		}
		return false
	}
	return true
}

// tokenBefore returns the index of the last token ending at or before off.
func tokenBefore(src *lint.Source, off uint32) int {
	return src.TokenIndex(off) - 1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func hasSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if isSpace(s[i]) {
			return true
		}
	}
	return false
}
