package lint

import (
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

func TestSourceTokenLookup(t *testing.T) {
	file := parseFile(t, "let x = /* c */ 1;\nfoo();")
	src := file.Source

	i, ok := src.TokenAt(4)
	if !ok || src.Token(i).Text != "x" {
		t.Fatalf("TokenAt(4) = %v %v", src.Token(i), ok)
	}
	if _, ok := src.TokenAt(5); ok {
		t.Fatal("TokenAt inside whitespace")
	}
	if i := src.TokenIndex(5); src.Token(i).Kind != token.Assign {
		t.Fatalf("TokenIndex(5) = %v", src.Token(i))
	}

	toks := src.TokensIn(src.Span(0, 18))
	if len(toks) != 5 || toks[4].Kind != token.Semicolon {
		t.Fatalf("TokensIn = %v", toks)
	}
	if c := src.CommentsIn(0, 18); len(c) != 1 || c[0].Text != "/* c */" {
		t.Fatalf("CommentsIn = %v", c)
	}
	if src.SameLine(0, 20) {
		t.Fatal("offsets on different lines")
	}
	if src.Token(-1).Kind != token.EOF || src.Token(len(src.Tokens)).Kind != token.EOF {
		t.Fatal("out of range tokens must be EOF")
	}
}
