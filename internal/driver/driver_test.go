package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code.ID())
	}
	return out
}

// fingerprint ignores file IDs, which differ between runs.
func fingerprint(fs *source.FileSet, diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		path := ""
		if f := fs.Get(d.Primary.File); f != nil {
			path = filepath.Base(f.Path)
		}
		out = append(out, fmt.Sprintf("%s %s %d-%d %s fixes=%d", path, d.Code.ID(), d.Primary.Start, d.Primary.End, d.Message, len(d.Fixes)))
	}
	return out
}

func TestListFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ts":                  "",
		"src/b.tsx":             "",
		"src/c.js":              "",
		"src/types.d.ts":        "",
		"src/readme.md":         "",
		"node_modules/lib/x.ts": "",
		".cache/y.ts":           "",
		"dist/z.js":             "",
	})
	cfg := config.Default(dir)
	got, err := ListFiles([]string{dir, filepath.Join(dir, "a.ts")}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, p := range got {
		r, _ := filepath.Rel(dir, p)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"a.ts", "src/b.tsx", "src/c.js"}
	if !slices.Equal(rel, want) {
		t.Fatalf("ListFiles = %v, want %v", rel, want)
	}

	// явно названный файл берётся без фильтра
	got, err = ListFiles([]string{filepath.Join(dir, "src", "readme.md")}, cfg)
	if err != nil || len(got) != 1 {
		t.Fatalf("explicit target: %v, %v", got, err)
	}

	if _, err := ListFiles([]string{filepath.Join(dir, "missing")}, cfg); err == nil {
		t.Fatal("expected error for a missing target")
	}
}

func TestLintDirectory(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ts": "let a = null;\n",
		"b.ts": "if (\"k\" in o) {}\n",
		"c.ts": "const ok = 1;\n",
	})
	res, err := Lint(context.Background(), []string{dir}, Options{Config: config.Default(dir), Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %d", len(res.Files))
	}
	if res.RunID == "" {
		t.Error("run id not set")
	}
	all := codes(res.Diagnostics())
	if !slices.Contains(codes(res.Files[0].Diagnostics), diag.LintNullKeyword.ID()) {
		t.Errorf("a.ts: %v", codes(res.Files[0].Diagnostics))
	}
	if !slices.Contains(codes(res.Files[1].Diagnostics), diag.LintInOperator.ID()) {
		t.Errorf("b.ts: %v", codes(res.Files[1].Diagnostics))
	}
	if len(res.Files[2].Diagnostics) != 0 {
		t.Errorf("c.ts: %v", codes(res.Files[2].Diagnostics))
	}
	if res.Bag.Len() != len(all) {
		t.Errorf("bag has %d items, run has %d", res.Bag.Len(), len(all))
	}
	if !res.Typed {
		t.Error("semantic model expected with default config")
	}
}

func TestLintParseErrorSkipsRules(t *testing.T) {
	dir := writeTree(t, map[string]string{"bad.ts": "let a = null;\nlet = ;\n"})
	res, err := Lint(context.Background(), []string{dir}, Options{Config: config.Default(dir)})
	if err != nil {
		t.Fatal(err)
	}
	diags := res.Diagnostics()
	if len(diags) == 0 {
		t.Fatal("expected syntax diagnostics")
	}
	for _, d := range diags {
		if !d.Code.IsSyntax() {
			t.Errorf("unexpected %s: %s", d.Code.ID(), d.Message)
		}
	}
}

func TestLintWithoutSemantic(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "let x = \"a\";\nx as string;\n"})
	cfg := config.Default(dir)

	res, err := Lint(context.Background(), nil, Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(codes(res.Diagnostics()), diag.LintUnnecessaryAssertion.ID()) {
		t.Fatalf("typed run: %v", codes(res.Diagnostics()))
	}

	cfg.Semantic = false
	res, err = Lint(context.Background(), nil, Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.Typed {
		t.Error("model built with semantic disabled")
	}
	if slices.Contains(codes(res.Diagnostics()), diag.LintUnnecessaryAssertion.ID()) {
		t.Error("type-aware rule ran without a model")
	}
	if !slices.Contains(res.Files[0].Skipped, diag.LintUnnecessaryAssertion.Title()) {
		t.Errorf("skipped = %v", res.Files[0].Skipped)
	}
}

func TestLintMaxDiagnostics(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "f(null); g(null); h(null);\n"})
	res, err := Lint(context.Background(), nil, Options{Config: config.Default(dir), MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 || res.Bag.Dropped() == 0 {
		t.Fatalf("bag len=%d dropped=%d", res.Bag.Len(), res.Bag.Dropped())
	}
	if len(res.Diagnostics()) < 3 {
		t.Errorf("Diagnostics() must ignore the limit: %d", len(res.Diagnostics()))
	}
}

func TestLintCache(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ts": "let a = null;\n",
		"b.ts": "if (a != null) {}\n",
	})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: config.Default(dir), Cache: cache, Version: "test"}

	first, err := Lint(context.Background(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CachedFiles() != 0 {
		t.Fatalf("cold run cached %d files", first.CachedFiles())
	}
	second, err := Lint(context.Background(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CachedFiles() != len(second.Files) {
		t.Fatalf("warm run cached %d of %d", second.CachedFiles(), len(second.Files))
	}
	a := fingerprint(first.FileSet, first.Diagnostics())
	b := fingerprint(second.FileSet, second.Diagnostics())
	if !slices.Equal(a, b) {
		t.Fatalf("cached diagnostics differ:\n%v\n%v", a, b)
	}

	// новая версия инструмента инвалидирует кеш
	opts.Version = "other"
	third, err := Lint(context.Background(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CachedFiles() != 0 {
		t.Errorf("version change kept %d cached files", third.CachedFiles())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(config.Digest{1}, config.Digest{2}, "v", config.Digest{})
	d := diag.New(diag.SevWarning, diag.LintNullKeyword, source.Span{File: 7, Start: 8, End: 12}, "Use 'undefined' instead of 'null'").
		WithNote(source.Span{File: 7, Start: 0, End: 1}, "n")
	if err := cache.Put(key, &LintPayload{Path: "a.ts", Diagnostics: []diag.Diagnostic{d}}); err != nil {
		t.Fatal(err)
	}

	var got LintPayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	diags := rebind(got.Diagnostics, 3)
	if len(diags) != 1 || diags[0].Primary != (source.Span{File: 3, Start: 8, End: 12}) || diags[0].Notes[0].Span.File != 3 {
		t.Fatalf("rebind: %+v", diags)
	}

	other := CacheKey(config.Digest{1}, config.Digest{2}, "w", config.Digest{})
	if ok, err := cache.Get(other, &got); ok || err != nil {
		t.Fatalf("miss expected: ok=%v err=%v", ok, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &got); ok {
		t.Error("entry survived DropAll")
	}
}

func TestFixDryRun(t *testing.T) {
	src := "if (a != null) {}\n"
	dir := writeTree(t, map[string]string{"a.ts": src})
	path := filepath.Join(dir, "a.ts")

	res, err := Fix(context.Background(), nil, Options{Config: config.Default(dir)}, fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Apply.FileChanges) != 1 {
		t.Fatalf("changes = %+v", res.Apply.FileChanges)
	}
	if got := string(res.Apply.FileChanges[0].Content); got != "if (a != undefined) {}\n" {
		t.Errorf("patched content = %q", got)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src {
		t.Error("dry run modified the file")
	}
	if _, ok := findPhase(res.Lint, "fix"); !ok {
		t.Error("fix phase not timed")
	}
}

func TestFixWritesFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "if (a != null) {}\n"})
	if _, err := Fix(context.Background(), nil, Options{Config: config.Default(dir)}, fix.ApplyOptions{Mode: fix.ApplyModeAll}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "if (a != undefined) {}\n" {
		t.Errorf("file = %q", data)
	}
}

func TestFixNothingToApply(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "const ok = 1;\n"})
	res, err := Fix(context.Background(), nil, Options{Config: config.Default(dir)}, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v", err)
	}
	if res == nil || res.Lint == nil {
		t.Fatal("lint result must accompany ErrNoFixes")
	}
}

func findPhase(res *Result, name string) (float64, bool) {
	for _, p := range res.Timer.Report().Phases {
		if p.Name == name {
			return p.DurationMS, true
		}
	}
	return 0, false
}

func TestTimingDiagnostic(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "let a = null;\n"})
	res, err := Lint(context.Background(), nil, Options{Config: config.Default(dir), MaxDiagnostics: 1, RunID: "run-1"})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := TimingDiagnostic(res)
	if !ok {
		t.Fatal("no timing diagnostic")
	}
	if d.Code != diag.ObsTimings || d.Severity != diag.SevInfo || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	var payload struct {
		RunID  string `json:"run_id"`
		Files  int    `json:"files"`
		Phases []struct {
			Name string `json:"name"`
		} `json:"phases"`
		Slowest []struct {
			File string `json:"file"`
		} `json:"slowest"`
	}
	if err := json.Unmarshal([]byte(d.Notes[0].Msg), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.RunID != "run-1" || payload.Files != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if len(payload.Slowest) != 1 || filepath.Base(payload.Slowest[0].File) != "a.ts" {
		t.Errorf("slowest = %+v", payload.Slowest)
	}
	var names []string
	for _, p := range payload.Phases {
		names = append(names, p.Name)
	}
	for _, want := range []string{"discover", "load", "parse", "lint"} {
		if !slices.Contains(names, want) {
			t.Errorf("phase %q missing in %v", want, names)
		}
	}

	before := res.Bag.Len()
	AppendTimings(res)
	if res.Bag.Len() != before+1 {
		t.Errorf("AppendTimings must bypass the limit: %d -> %d", before, res.Bag.Len())
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestProgressEvents(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ts":   "let a = null;\n",
		"bad.ts": "let = ;\n",
	})
	sink := &recordingSink{}
	if _, err := Lint(context.Background(), nil, Options{Config: config.Default(dir), Progress: sink}); err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, ev := range sink.events {
		seen[filepath.Base(ev.File)+"/"+string(ev.Stage)+"/"+string(ev.Status)] = true
	}
	for _, want := range []string{"a.ts/load/queued", "a.ts/lint/done", "bad.ts/parse/error"} {
		if !seen[want] {
			t.Errorf("missing event %s in %v", want, keys(seen))
		}
	}
}

func keys(m map[string]bool) string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return strings.Join(out, ", ")
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.ts": "let a = 1; // c\n"})
	path := filepath.Join(dir, "a.ts")

	tok, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tok.Tokens) == 0 || tok.Bag.Len() != 0 {
		t.Fatalf("tokens=%d diags=%d", len(tok.Tokens), tok.Bag.Len())
	}

	parsed, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Parsed.OK() {
		t.Fatalf("parse errors: %v", codes(parsed.Bag.Items()))
	}

	if _, err := Parse(filepath.Join(dir, "missing.ts"), 0); err == nil {
		t.Error("expected load error")
	}
}
