package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diagfmt"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/rules"
)

func TestReadUIMode(t *testing.T) {
	tests := map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff}
	for in, want := range tests {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
	if !shouldUseTUI(uiModeOn, "json") || shouldUseTUI(uiModeOff, "pretty") {
		t.Error("explicit ui modes ignored")
	}
}

func TestReadColorMode(t *testing.T) {
	if on, err := readColorMode("on", nil); err != nil || !on {
		t.Errorf("on = %v, %v", on, err)
	}
	if on, err := readColorMode("off", nil); err != nil || on {
		t.Errorf("off = %v, %v", on, err)
	}
	if on, err := readColorMode("auto", nil); err != nil || on {
		t.Errorf("auto without stream = %v, %v", on, err)
	}
	if _, err := readColorMode("rainbow", nil); err == nil {
		t.Error("expected error")
	}
}

func TestSelectApplyMode(t *testing.T) {
	tests := []struct {
		all, once bool
		id        string
		want      fix.ApplyMode
		err       bool
	}{
		{want: fix.ApplyModeOnce},
		{once: true, want: fix.ApplyModeOnce},
		{all: true, want: fix.ApplyModeAll},
		{id: "x", want: fix.ApplyModeID},
		{all: true, once: true, err: true},
		{all: true, id: "x", err: true},
	}
	for _, tt := range tests {
		got, err := selectApplyMode(tt.all, tt.once, tt.id, false)
		if (err != nil) != tt.err {
			t.Errorf("%+v: err = %v", tt, err)
			continue
		}
		if err == nil && (got.Mode != tt.want || got.TargetID != tt.id) {
			t.Errorf("%+v: got %+v", tt, got)
		}
	}
}

func lintTemp(t *testing.T, src string) *driver.Result {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := driver.Lint(context.Background(), nil, driver.Options{Config: config.Default(dir)})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestWriteDiagnosticsFormats(t *testing.T) {
	res := lintTemp(t, "if (a != null) {}\n")

	var short bytes.Buffer
	if err := writeDiagnostics(&short, res, outputOptions{format: "short", pathMode: diagfmt.PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(short.String(), "LNT3300") {
		t.Errorf("short output:\n%s", short.String())
	}

	var js bytes.Buffer
	if err := writeDiagnostics(&js, res, outputOptions{format: "json", suggest: true}); err != nil {
		t.Fatal(err)
	}
	var payload diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(js.Bytes(), &payload); err != nil {
		t.Fatalf("json: %v\n%s", err, js.String())
	}
	if payload.RunID != res.RunID || payload.Count == 0 {
		t.Errorf("payload run_id=%q count=%d", payload.RunID, payload.Count)
	}

	var sarif bytes.Buffer
	if err := writeDiagnostics(&sarif, res, outputOptions{format: "sarif", args: []string{"."}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sarif.String(), `"tsrules"`) || !strings.Contains(sarif.String(), "no-null-keyword") {
		t.Errorf("sarif output:\n%s", sarif.String())
	}

	var pretty bytes.Buffer
	if err := writeDiagnostics(&pretty, res, outputOptions{format: "pretty"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), "1 file") {
		t.Errorf("pretty output lacks summary:\n%s", pretty.String())
	}

	if err := writeDiagnostics(&pretty, res, outputOptions{format: "xml"}); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestLintExitCode(t *testing.T) {
	if code := lintExitCode(lintTemp(t, "let a = null;\n")); code != 0 {
		t.Errorf("warnings only: exit %d", code)
	}
	if code := lintExitCode(lintTemp(t, "let = ;\n")); code != 1 {
		t.Errorf("syntax error: exit %d", code)
	}
}

func TestHandleApplyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := handleApplyResult(&buf, nil, fix.ErrNoFixes, false, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No applicable fixes found.") {
		t.Errorf("output: %q", buf.String())
	}

	buf.Reset()
	res := &fix.ApplyResult{
		Applied:     []fix.AppliedFix{{ID: "f1", Title: "Replace 'null' with 'undefined'", PrimaryPath: "a.ts", EditCount: 1}},
		FileChanges: []fix.FileChange{{Path: "a.ts", EditCount: 1, Content: []byte("x != undefined;\n")}},
	}
	if err := handleApplyResult(&buf, res, nil, true, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Applied 1 fix(es):") || !strings.Contains(out, "== a.ts (1 edits) ==\nx != undefined;\n") {
		t.Errorf("output:\n%s", out)
	}

	boom := errors.New("boom")
	if err := handleApplyResult(&buf, &fix.ApplyResult{}, boom, false, true); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}

func TestRulesListing(t *testing.T) {
	reg, err := rules.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	infos := collectRuleInfos(reg)
	if len(infos) != reg.Len() {
		t.Fatalf("infos = %d, registry = %d", len(infos), reg.Len())
	}
	var buf bytes.Buffer
	if err := renderRulesPretty(&buf, infos); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"RULE", "no-null-keyword", "LNT3300", "no-unnecessary-type-assertion"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("listing lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestRenderVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionInfo{Version: "1.2.3"}, versionOptions{showHash: true}); err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "tsrules" || payload.Version != "1.2.3" || payload.GitCommit != "unknown" {
		t.Errorf("payload = %+v", payload)
	}

	buf.Reset()
	renderVersionPretty(&buf, versionInfo{Version: "1.2.3"}, versionOptions{})
	if !strings.HasPrefix(buf.String(), "tsrules 1.2.3 - ") {
		t.Errorf("pretty = %q", buf.String())
	}
}
