// Package testkit runs lint fixtures stored as txtar archives.
//
// Every source file of an archive may carry expectations in line comments:
//
//	let a = null; // want "Use 'undefined' instead of 'null'"
//
// Each quoted string is a regular expression that must match the message,
// the code or the rule name of one diagnostic reported on that line. An
// archive member named "<file>.golden" holds the expected content of <file>
// after every fix is applied. A tsrules.toml or tsrules.yaml member
// configures the run.
package testkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/driver"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lexer"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

const goldenSuffix = ".golden"

// Fixture is an archive extracted into a temporary directory.
type Fixture struct {
	Name    string
	Dir     string
	Comment string
	// Golden maps a member name to its expected content after fixes.
	Golden map[string][]byte
}

// Expectation is one quoted pattern of a want comment.
type Expectation struct {
	File    string
	Line    uint32
	Pattern *regexp.Regexp
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s:%d: %q", e.File, e.Line, e.Pattern.String())
}

// Extract writes the members of the archive at path into a fresh temporary
// directory. Golden members are kept in memory only.
func Extract(t testing.TB, path string) *Fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fx := &Fixture{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Dir:     t.TempDir(),
		Comment: strings.TrimSpace(string(ar.Comment)),
		Golden:  make(map[string][]byte),
	}
	for _, f := range ar.Files {
		if name, ok := strings.CutSuffix(f.Name, goldenSuffix); ok {
			fx.Golden[name] = f.Data
			continue
		}
		dst := filepath.Join(fx.Dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			t.Fatalf("extract %s: %v", f.Name, err)
		}
		if err := os.WriteFile(dst, f.Data, 0o600); err != nil {
			t.Fatalf("extract %s: %v", f.Name, err)
		}
	}
	return fx
}

// Config loads the archive's config member, or the defaults rooted at the
// fixture directory.
func (f *Fixture) Config() (*config.Config, error) {
	path, err := config.Find(f.Dir)
	if errors.Is(err, config.ErrNotFound) || (err == nil && filepath.Dir(path) != f.Dir) {
		return config.Default(f.Dir), nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// Rel returns path relative to the fixture directory, slash separated.
func (f *Fixture) Rel(path string) string {
	rel, err := filepath.Rel(f.Dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// Expectations collects the want comments of every loaded file.
func Expectations(fs *source.FileSet, files []source.FileID, rel func(string) string) ([]Expectation, error) {
	var out []Expectation
	for _, id := range files {
		f := fs.Get(id)
		if f == nil {
			continue
		}
		lexed := lexer.Tokenize(f, lexer.Options{})
		for _, c := range lexed.Comments {
			if c.Kind != token.TriviaLineComment {
				continue
			}
			patterns, err := parseWant(c.Text)
			if err != nil {
				pos := f.Position(c.Span.Start)
				return nil, fmt.Errorf("%s:%d: %w", rel(f.Path), pos.Line, err)
			}
			line := f.LineOf(c.Span.Start)
			for _, p := range patterns {
				out = append(out, Expectation{File: rel(f.Path), Line: line, Pattern: p})
			}
		}
	}
	return out, nil
}

// parseWant extracts the patterns of a "// want ..." comment; other
// comments yield nothing.
func parseWant(comment string) ([]*regexp.Regexp, error) {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if text == "want" {
		return nil, errors.New("want comment without patterns")
	}
	rest, ok := strings.CutPrefix(text, "want ")
	if !ok {
		return nil, nil
	}
	var out []*regexp.Regexp
	for rest = strings.TrimSpace(rest); rest != ""; rest = strings.TrimSpace(rest) {
		lit, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return nil, fmt.Errorf("bad want pattern %q: %w", rest, err)
		}
		rest = rest[len(lit):]
		s, err := strconv.Unquote(lit)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("want pattern %q: %w", s, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Run lints the fixture at path and reports every diagnostic without a
// matching expectation, and every expectation left unmatched.
func Run(t *testing.T, path string) *driver.Result {
	t.Helper()
	fx := Extract(t, path)
	return run(t, fx)
}

// RunWithFixes is Run followed by applying every fix and comparing the
// patched files with the golden members.
func RunWithFixes(t *testing.T, path string) *driver.Result {
	t.Helper()
	fx := Extract(t, path)
	res := run(t, fx)
	if res != nil {
		checkGolden(t, fx, res)
	}
	return res
}

func run(t *testing.T, fx *Fixture) *driver.Result {
	t.Helper()
	cfg, err := fx.Config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	res, err := driver.Lint(context.Background(), []string{fx.Dir}, driver.Options{Config: cfg, Jobs: 1})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	ids := make([]source.FileID, 0, len(res.Files))
	for _, f := range res.Files {
		ids = append(ids, f.FileID)
	}
	wants, err := Expectations(res.FileSet, ids, fx.Rel)
	if err != nil {
		t.Fatal(err)
	}
	for _, msg := range Compare(res.FileSet, res.Diagnostics(), wants, fx.Rel) {
		t.Error(msg)
	}
	for _, f := range res.Files {
		if len(f.Diagnostics) > 0 && f.Diagnostics[0].Code.IsSyntax() {
			continue
		}
		if sf := res.FileSet.Get(f.FileID); sf != nil {
			checkParsedSpans(t, sf, fx.Rel(f.Path))
		}
	}
	return res
}

// Compare matches diagnostics against expectations and returns one message
// per mismatch.
func Compare(fs *source.FileSet, diags []diag.Diagnostic, wants []Expectation, rel func(string) string) []string {
	used := make([]bool, len(wants))
	var problems []string
	for _, d := range diags {
		f := fs.Get(d.Primary.File)
		if f == nil {
			problems = append(problems, fmt.Sprintf("diagnostic without file: %s %s", d.Code.ID(), d.Message))
			continue
		}
		name := rel(f.Path)
		line := f.LineOf(d.Primary.Start)
		matched := false
		for i, w := range wants {
			if used[i] || w.File != name || w.Line != line {
				continue
			}
			if w.Pattern.MatchString(d.Message) || w.Pattern.MatchString(d.Code.ID()) || (d.Code.IsLint() && w.Pattern.MatchString(d.Code.Title())) {
				used[i] = true
				matched = true
				break
			}
		}
		if !matched {
			problems = append(problems, fmt.Sprintf("%s:%d: unexpected diagnostic %s: %s", name, line, d.Code.ID(), d.Message))
		}
	}
	for i, w := range wants {
		if !used[i] {
			problems = append(problems, fmt.Sprintf("%s: no diagnostic matched", w))
		}
	}
	return problems
}

func checkGolden(t *testing.T, fx *Fixture, res *driver.Result) {
	t.Helper()
	changed := map[string][]byte{}
	applied, err := fix.Apply(res.FileSet, res.Diagnostics(), fix.ApplyOptions{Mode: fix.ApplyModeAll, DryRun: true})
	switch {
	case errors.Is(err, fix.ErrNoFixes):
	case err != nil:
		t.Fatalf("apply fixes: %v", err)
	default:
		for _, c := range applied.FileChanges {
			changed[fx.Rel(c.Path)] = c.Content
		}
		for _, c := range applied.Conflicts {
			t.Errorf("fix conflict in %s", fx.Rel(c.Path))
		}
	}

	names := make([]string, 0, len(fx.Golden))
	for name := range fx.Golden {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		got, ok := changed[name]
		if !ok {
			data, err := os.ReadFile(filepath.Join(fx.Dir, filepath.FromSlash(name)))
			if err != nil {
				t.Errorf("golden %s: %v", name, err)
				continue
			}
			got = data
		}
		if want := fx.Golden[name]; !bytes.Equal(got, want) {
			t.Errorf("%s after fixes:\n--- got ---\n%s--- want ---\n%s", name, got, want)
		}
		delete(changed, name)
	}
	for name := range changed {
		t.Errorf("%s changed by fixes but has no golden member", name)
	}
}
