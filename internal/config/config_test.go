package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsrules.toml")
	writeFile(t, path, `
[project]
root = "src"
include = ["ts", ".tsx"]

[semantic]
enabled = false

[rules.no-null-keyword]
severity = "error"

[rules.next-line]
options = ["check-else"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != filepath.Join(dir, "src") {
		t.Errorf("root = %q", cfg.Root)
	}
	if len(cfg.Include) != 2 || cfg.Include[0] != ".ts" || cfg.Include[1] != ".tsx" {
		t.Errorf("include = %v", cfg.Include)
	}
	if cfg.Semantic {
		t.Error("semantic should be disabled")
	}
	if cfg.Rules["no-null-keyword"].Severity != "error" {
		t.Errorf("rules = %v", cfg.Rules)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsrules.yaml")
	writeFile(t, path, "rules:\n  no-in-operator:\n    severity: off\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Semantic {
		t.Error("semantic should default to enabled")
	}
	if !cfg.Rules["no-in-operator"].Off() {
		t.Errorf("rules = %v", cfg.Rules)
	}
	if cfg.Root != dir {
		t.Errorf("root = %q", cfg.Root)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"tsrules.toml": "[rules.no-bom]\nseverity = \"loud\"\n",
		"bad.toml":     "[project\n",
		"abs.toml":     "[project]\nroot = \"/abs\"\n",
		"extra.toml":   "[project]\nroots = \"src\"\n",
		"tsrules.yml":  "rules: [1, 2\n",
		"keys.yaml":    "projekt:\n  root: a\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		writeFile(t, path, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestFindWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tsrules.yml"), "")
	writeFile(t, filepath.Join(dir, "tsrules.toml"), "")
	deep := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Find(deep)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != filepath.Join(dir, "tsrules.toml") {
		t.Errorf("Find = %q", got)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	dir := t.TempDir()
	if found, err := Find(dir); err == nil {
		t.Skipf("config file %s above the temp dir", found)
	}
	file := filepath.Join(dir, "main.ts")
	writeFile(t, file, "let a = 1;\n")
	cfg, err := Discover(file)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" || cfg.Root != dir || !cfg.Semantic {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestIncludes(t *testing.T) {
	cfg := Default(".")
	for path, want := range map[string]bool{
		"a.ts":     true,
		"b.TSX":    true,
		"c.mjs":    true,
		"lib.d.ts": false,
		"d.json":   false,
		"Makefile": false,
	} {
		if got := cfg.Includes(path); got != want {
			t.Errorf("Includes(%q) = %v", path, got)
		}
	}
}

func TestEnable(t *testing.T) {
	reg, err := rules.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default(".")
	cfg.Rules = map[string]RuleConfig{
		"no-bom":          {Severity: "off"},
		"no-null-keyword": {Severity: "error"},
		"next-line":       {Options: []string{"check-catch"}},
	}
	enabled, err := cfg.Enable(reg)
	if err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if len(enabled) != reg.Len()-1 {
		t.Fatalf("enabled %d of %d", len(enabled), reg.Len())
	}
	for _, en := range enabled {
		switch en.Rule.Meta().Name {
		case "no-bom":
			t.Error("no-bom is off")
		case "no-null-keyword":
			if en.Severity != diag.SevError {
				t.Errorf("no-null-keyword severity = %v", en.Severity)
			}
		case "next-line":
			if len(en.Options) != 1 || en.Options[0] != "check-catch" {
				t.Errorf("next-line options = %v", en.Options)
			}
		}
	}

	cfg.Rules = map[string]RuleConfig{"no-such-rule": {}}
	if _, err := cfg.Enable(reg); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("unknown rule: %v", err)
	}
	cfg.Rules = map[string]RuleConfig{"next-line": {Options: []string{"check-finally"}}}
	if _, err := cfg.Enable(reg); err == nil {
		t.Error("unknown option accepted")
	}
}

func TestDigest(t *testing.T) {
	a := Default(".")
	b := Default("/other")
	if a.Digest() != b.Digest() {
		t.Error("root must not affect the digest")
	}
	b.Rules["no-bom"] = RuleConfig{Severity: "off"}
	if a.Digest() == b.Digest() {
		t.Error("rule change must affect the digest")
	}
	a.Rules["no-bom"] = RuleConfig{Severity: "OFF "}
	if a.Digest() != b.Digest() {
		t.Error("severity case must not affect the digest")
	}
	if Combine(a.Digest()) == Combine(a.Digest(), b.Digest()) {
		t.Error("Combine ignores deps")
	}
}
