package fuzz

import (
	"context"
	"testing"
	"time"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lexer"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/rules"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/testkit"
)

// parseTimeout is the longest a single input may take to parse.
const parseTimeout = 5 * time.Second

func virtualFile(input []byte) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("fuzz.ts", input))
}

func FuzzLexerSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file := virtualFile(clampInput(input))
		res := lexer.Tokenize(file, lexer.Options{})
		if len(res.Tokens) == 0 {
			t.Fatal("token stream lacks EOF")
		}
		size := uint32(len(file.Content)) // #nosec G115 -- вход ограничен maxFuzzInput
		var prevEnd uint32
		for i, tok := range res.Tokens {
			if tok.Span.Start > tok.Span.End || tok.Span.End > size {
				t.Fatalf("token %d %v has span %d..%d outside 0..%d", i, tok.Kind, tok.Span.Start, tok.Span.End, size)
			}
			if tok.Span.Start < prevEnd {
				t.Fatalf("token %d %v overlaps the previous one", i, tok.Kind)
			}
			prevEnd = tok.Span.End
		}
	})
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("function f( { let x = (a, b => { c"))
	f.Add([]byte("class { constructor( ) { super(super(super())) }"))
	f.Add([]byte("a ? b : c ? d : (e) => f ? g : h"))
	f.Add([]byte("let x: Array<Array<number>>= y;"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			bag := diag.NewBag(128)
			_ = parser.ParseFile(virtualFile(input), parser.Options{MaxErrors: 128, Reporter: diag.BagReporter{Bag: bag}})
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang: more than %v on %d bytes: %q", parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzLintPipeline runs every rule on inputs that parse. Rules must not
// fail, and each fix must apply on its own.
func FuzzLintPipeline(f *testing.F) {
	addCorpusSeeds(f)
	reg, err := rules.NewRegistry()
	if err != nil {
		f.Fatal(err)
	}
	enabled := lint.Defaults(reg)

	f.Fuzz(func(t *testing.T, input []byte) {
		file := virtualFile(clampInput(input))
		parsed := parser.ParseFile(file, parser.Options{MaxErrors: 16})
		if !parsed.OK() {
			return
		}
		if err := testkit.CheckSpanInvariants(parsed.Tree, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
		lf := lint.NewFile(parsed, scope.Analyze(parsed.Tree), semantic.NewBridge(nil, file.ID))
		res, err := lint.Run(context.Background(), lf, enabled)
		if err != nil {
			t.Fatal(err)
		}
		for _, failure := range res.Failures {
			t.Errorf("rule failure: %s", failure)
		}
		for _, d := range res.Diagnostics {
			for _, fx := range d.Fixes {
				if _, err := fix.ApplyText(file.Content, []diag.Fix{fx}); err != nil {
					t.Errorf("%s fix %q: %v", d.Code.Title(), fx.Title, err)
				}
			}
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
