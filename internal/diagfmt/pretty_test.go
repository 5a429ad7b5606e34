package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ts", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.ts"},
		{"Relative path", PathModeRelative, "src/test.ts"},
		{"Basename only", PathModeBasename, "test.ts:1:9:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("let a = 1;\nlet b = null;\nlet c = 3;\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.LintNullKeyword,
		source.Span{File: fileID, Start: 19, End: 23}, "Use 'undefined' instead of 'null'."))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "a.ts:2:9: WARNING LNT3300:") || !strings.HasSuffix(lines[0], "[no-null-keyword]") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], "        ^~~~") {
		t.Errorf("underline = %q", lines[2])
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	for _, want := range []string{"1 | let a = 1;", "2 | let b = null;", "3 | let c = 3;"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("context missing %q:\n%s", want, buf.String())
		}
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("if (a == null) {}\n")
	fileID := fs.AddVirtual("test.ts", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 9, End: 13}
	d := diag.New(diag.SevWarning, diag.LintNullKeyword, primary, "Use 'undefined' instead of 'null'.")
	d = d.WithNote(source.Span{File: fileID, Start: 4, End: 5}, "compared here")
	d = d.WithFixSuggestion(fix.ReplaceSpan("Replace 'null' with 'undefined'", primary, "undefined", "null",
		fix.WithID("null-001"), fix.Preferred()))
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()
	for _, want := range []string{
		"note: test.ts:1:5: compared here",
		"fix #1: Replace 'null' with 'undefined'",
		"preferred",
		"id=null-001",
		"apply=\"undefined\"",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const r = o[\"abc\"]; // access")
	fileID := fs.AddVirtual("example.ts", content)

	bag := diag.NewBag(2)
	span := source.Span{File: fileID, Start: 11, End: 18}
	d := diag.New(diag.SevWarning, diag.LintStringLiteral, span, "object access via string literals is disallowed")
	d = d.WithFix("Use property access", diag.TextEdit{Span: span, NewText: ".abc"})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowPreview: true})
	output := buf.String()
	for _, want := range []string{
		"preview:",
		"- const r = o[\"abc\"]; // access",
		"+ const r = o.abc; // access",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("x in y;\nx in y;\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.LintInOperator, source.Span{File: fileID, Start: 0, End: 6}, "m"))
	bag.Add(diag.New(diag.SevWarning, diag.LintInOperator, source.Span{File: fileID, Start: 8, End: 14}, "m"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "1 more diagnostics not shown") {
		t.Errorf("missing dropped line:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.ts", []byte("x"))
	bag := diag.NewBag(0)
	sp := source.Span{File: fileID, Start: 0, End: 1}
	bag.Add(diag.New(diag.SevError, diag.LintInOperator, sp, "a"))
	bag.Add(diag.New(diag.SevWarning, diag.LintBOM, sp, "b"))
	bag.Add(diag.New(diag.SevWarning, diag.LintConstruct, sp, "c"))

	var buf bytes.Buffer
	Summary(&buf, bag, 2, false)
	if got := buf.String(); got != "1 error, 2 warnings in 2 files\n" {
		t.Errorf("Summary = %q", got)
	}
}

func TestClipLine(t *testing.T) {
	if got := clipLine("abcdef", 0); got != "abcdef" {
		t.Errorf("no width: %q", got)
	}
	if got := clipLine("abcdef", 4); got != "abc…" {
		t.Errorf("clipped: %q", got)
	}
}
