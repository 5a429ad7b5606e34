package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func loadTemp(t *testing.T, fs *source.FileSet, name, content string) (source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return id, path
}

func nullDiag(file source.FileID, start uint32, app diag.FixApplicability) diag.Diagnostic {
	span := source.Span{File: file, Start: start, End: start + 4}
	return diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintNullKeyword,
		Message:  "Use 'undefined' instead of 'null'",
		Primary:  span,
		Fixes: []diag.Fix{
			ReplaceSpan("Replace with undefined", span, "undefined", "null", WithApplicability(app)),
		},
	}
}

func TestGatherCandidatesSkipsDuplicateFixIDs(t *testing.T) {
	span := source.Span{File: 0, Start: 0, End: 0}
	diagnostics := []diag.Diagnostic{{
		Code:    diag.LintNullKeyword,
		Primary: span,
		Fixes: []diag.Fix{
			{ID: "fix-duplicate", Title: "first", Edits: []diag.TextEdit{{Span: span, NewText: ";"}}},
			{ID: "fix-duplicate", Title: "again", Edits: []diag.TextEdit{{Span: span, NewText: ";"}}},
			{ID: "empty", Title: "nothing"},
		},
	}}

	candidates, skips := gatherCandidates(diagnostics)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skipped fixes, got %d", len(skips))
	}
	if skips[0].Reason != "duplicate fix id" {
		t.Fatalf("expected duplicate fix reason, got %q", skips[0].Reason)
	}
	if skips[1].Reason != "fix has no edits" {
		t.Fatalf("expected no edits reason, got %q", skips[1].Reason)
	}
}

func TestGatherCandidatesSynthesizesID(t *testing.T) {
	d := nullDiag(3, 8, diag.FixApplicabilityAlwaysSafe)
	candidates, _ := gatherCandidates([]diag.Diagnostic{d})
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if want := "LNT3300-3-8-0"; candidates[0].fix.ID != want {
		t.Fatalf("ID = %q, want %q", candidates[0].fix.ID, want)
	}
}

func TestApplyAllWritesFile(t *testing.T) {
	fs := source.NewFileSet()
	id, path := loadTemp(t, fs, "a.ts", "let a = null;\nlet b = null;\n")
	diagnostics := []diag.Diagnostic{
		nullDiag(id, 22, diag.FixApplicabilityAlwaysSafe),
		nullDiag(id, 8, diag.FixApplicabilityAlwaysSafe),
		nullDiag(id, 8, diag.FixApplicabilityManualReview),
	}
	diagnostics[2].Fixes[0].ID = "manual"

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("expected 2 applied, got %d", len(res.Applied))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].ID != "manual" {
		t.Fatalf("unexpected skips %+v", res.Skipped)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "let a = undefined;\nlet b = undefined;\n"; string(data) != want {
		t.Fatalf("file = %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode changed to %v", info.Mode())
	}
}

func TestApplyOncePicksFirstSafe(t *testing.T) {
	fs := source.NewFileSet()
	id, path := loadTemp(t, fs, "a.ts", "let a = null;\nlet b = null;\n")
	diagnostics := []diag.Diagnostic{
		nullDiag(id, 8, diag.FixApplicabilityManualReview),
		nullDiag(id, 22, diag.FixApplicabilityAlwaysSafe),
	}
	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("expected 1 applied, got %d", len(res.Applied))
	}
	data, _ := os.ReadFile(path)
	if want := "let a = null;\nlet b = undefined;\n"; string(data) != want {
		t.Fatalf("file = %q", data)
	}
}

func TestApplyByIDNotFound(t *testing.T) {
	fs := source.NewFileSet()
	id, _ := loadTemp(t, fs, "a.ts", "let a = null;")
	_, err := Apply(fs, []diag.Diagnostic{nullDiag(id, 8, diag.FixApplicabilityAlwaysSafe)},
		ApplyOptions{Mode: ApplyModeID, TargetID: "missing"})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
}

func TestApplyConflictAbortsFile(t *testing.T) {
	fs := source.NewFileSet()
	id, path := loadTemp(t, fs, "a.ts", "let a = null;")
	other := nullDiag(id, 8, diag.FixApplicabilityAlwaysSafe)
	other.Fixes[0] = ReplaceSpan("other", source.Span{File: id, Start: 10, End: 13}, "", "", WithID("other"))
	diagnostics := []diag.Diagnostic{nullDiag(id, 8, diag.FixApplicabilityAlwaysSafe), other}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected ErrNoFixes, got %v", err)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(res.Conflicts))
	}
	if len(res.Conflicts[0].FixIDs) != 2 {
		t.Fatalf("conflict fix ids %v", res.Conflicts[0].FixIDs)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "let a = null;" {
		t.Fatalf("file written despite conflict: %q", data)
	}
}

func TestApplyDryRunOnVirtualFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("stdin.ts", []byte("f(null)"))
	d := nullDiag(id, 2, diag.FixApplicabilityAlwaysSafe)

	if _, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll}); !errors.Is(err, ErrNoFixes) {
		t.Fatalf("expected virtual file to be skipped, got %v", err)
	}

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(res.FileChanges) != 1 || string(res.FileChanges[0].Content) != "f(undefined)" {
		t.Fatalf("unexpected changes %+v", res.FileChanges)
	}
}
