// Package directive reads the comments that switch rules off for part of a
// file:
//
//	// tsrules-disable-line no-null-keyword
//	// tsrules-disable-next-line
//	/* tsrules-disable no-in-operator, boolean-trivia */ ... /* tsrules-enable */
//
// A directive without rule names covers every rule.
package directive

import (
	"sort"
	"strings"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/token"
)

// Prefix starts every directive.
const Prefix = "tsrules-"

type Kind uint8

const (
	DisableLine Kind = iota + 1
	DisableNextLine
	Disable
	Enable
)

var kindNames = map[string]Kind{
	"disable-line":      DisableLine,
	"disable-next-line": DisableNextLine,
	"disable":           Disable,
	"enable":            Enable,
}

func (k Kind) String() string {
	for name, kk := range kindNames {
		if kk == k {
			return Prefix + name
		}
	}
	return "directive(?)"
}

// Directive is one parsed directive comment.
type Directive struct {
	Kind  Kind
	Rules []string // empty means all rules
	Span  source.Span
	Line  uint32
}

func (d *Directive) covers(rule string) bool {
	if len(d.Rules) == 0 {
		return true
	}
	for _, r := range d.Rules {
		if r == rule {
			return true
		}
	}
	return false
}

// region is a line range where rule is off; rule "" is every rule.
// end is zero while the region is open to the end of the file.
type region struct {
	rule       string
	start, end uint32
	from       int // index of the opening directive
}

// Set holds the directives of one file.
type Set struct {
	Directives []Directive
	regions    []region
	used       []bool
}

// Parse reads a comment. ok is false for ordinary comments.
func Parse(text string) (kind Kind, rules []string, ok bool) {
	body, isBlock := strings.CutPrefix(text, "/*")
	if isBlock {
		body = strings.TrimSuffix(body, "*/")
	} else {
		body = strings.TrimPrefix(text, "//")
	}
	body = strings.TrimSpace(body)
	rest, found := strings.CutPrefix(body, Prefix)
	if !found {
		return 0, nil, false
	}
	name, args, _ := strings.Cut(rest, " ")
	kind, ok = kindNames[name]
	if !ok {
		return 0, nil, false
	}
	// "-- reason" в конце директивы игнорируется
	args, _, _ = strings.Cut(args, "--")
	for _, f := range strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		rules = append(rules, f)
	}
	return kind, rules, true
}

// Scan collects the directives among comments of file.
func Scan(file *source.File, comments []token.Trivia) *Set {
	s := &Set{}
	open := map[string]int{} // rule -> index into regions of the open region
	for _, c := range comments {
		if c.Kind != token.TriviaLineComment && c.Kind != token.TriviaBlockComment {
			continue
		}
		kind, rules, ok := Parse(c.Text)
		if !ok {
			continue
		}
		idx := len(s.Directives)
		line := file.LineOf(c.Span.Start)
		s.Directives = append(s.Directives, Directive{Kind: kind, Rules: rules, Span: c.Span, Line: line})
		names := rules
		if len(names) == 0 {
			names = []string{""}
		}
		for _, rule := range names {
			switch kind {
			case DisableLine:
				s.regions = append(s.regions, region{rule: rule, start: line, end: line, from: idx})
			case DisableNextLine:
				s.regions = append(s.regions, region{rule: rule, start: line + 1, end: line + 1, from: idx})
			case Disable:
				if _, already := open[rule]; already {
					continue
				}
				open[rule] = len(s.regions)
				s.regions = append(s.regions, region{rule: rule, start: line, from: idx})
			case Enable:
				if rule == "" {
					for r, i := range open {
						s.regions[i].end = line
						delete(open, r)
					}
					continue
				}
				if i, ok := open[rule]; ok {
					s.regions[i].end = line
					delete(open, rule)
				}
			}
		}
	}
	s.used = make([]bool, len(s.Directives))
	return s
}

// Suppresses reports whether rule is off on line, and marks the directive
// responsible as used.
func (s *Set) Suppresses(rule string, line uint32) bool {
	if s == nil {
		return false
	}
	for _, r := range s.regions {
		if r.rule != "" && r.rule != rule {
			continue
		}
		if line < r.start || (r.end != 0 && line > r.end) {
			continue
		}
		s.used[r.from] = true
		return true
	}
	return false
}

// Filter drops the lint diagnostics of file that a directive switches off.
// Syntax errors and rule failures are never dropped.
func (s *Set) Filter(file *source.File, diags []diag.Diagnostic) (kept []diag.Diagnostic, suppressed int) {
	if s == nil || len(s.Directives) == 0 {
		return diags, 0
	}
	kept = make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Code.IsLint() && d.Code != diag.LintRuleFailure && s.Suppresses(d.Code.Title(), file.LineOf(d.Primary.Start)) {
			suppressed++
			continue
		}
		kept = append(kept, d)
	}
	return kept, suppressed
}

// Unused returns the disabling directives that suppressed nothing, in
// source order. Enable directives are never reported.
func (s *Set) Unused() []Directive {
	if s == nil {
		return nil
	}
	var out []Directive
	for i, d := range s.Directives {
		if d.Kind != Enable && !s.used[i] {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}
