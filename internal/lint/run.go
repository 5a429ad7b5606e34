package lint

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

// Enabled is a rule switched on for a run with its effective settings.
type Enabled struct {
	Rule     Rule
	Severity diag.Severity
	Options  []string
}

// Defaults enables every rule of reg with its default severity.
func Defaults(reg *Registry) []Enabled {
	out := make([]Enabled, 0, reg.Len())
	for _, r := range reg.Rules() {
		out = append(out, Enabled{Rule: r, Severity: r.Meta().Severity})
	}
	return out
}

// Result is the outcome of linting one file.
type Result struct {
	Diagnostics []diag.Diagnostic
	Failures    []Failure
	// Skipped lists type-aware rules not run because no program covers the file.
	Skipped []string
}

// Run instantiates the listeners of rules for file and traverses it once.
// Diagnostics come back in canonical order.
func Run(ctx context.Context, file *File, rules []Enabled) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "lint", trace.CurrentSpan(ctx).SpanID)

	res := &Result{}
	table := NewTable()
	contexts := make([]*Context, 0, len(rules))
	for _, en := range rules {
		meta := en.Rule.Meta()
		if meta.RequiresTypes && !file.Types.ProgramAvailable() {
			res.Skipped = append(res.Skipped, meta.Name)
			continue
		}
		c := &Context{file: file, meta: meta, severity: en.Severity, options: en.Options}
		if f, ok := listen(en.Rule, &Registrar{table: table, ctx: c}); !ok {
			res.Failures = append(res.Failures, f)
			trace.Failure(tracer, "rule-listen", f.String(), map[string]string{"rule": meta.Name})
			continue
		}
		contexts = append(contexts, c)
	}

	diags, failures := Traverse(file, table, tracer)
	res.Diagnostics = diags
	res.Failures = append(res.Failures, failures...)
	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		return diag.Less(&res.Diagnostics[i], &res.Diagnostics[j])
	})

	if tracer.Level().ShouldEmit(trace.ScopeRule) {
		for _, c := range contexts {
			trace.Point(tracer, trace.ScopeRule, c.meta.Name, "", map[string]string{
				"reports": strconv.Itoa(c.reports),
			})
		}
	}
	span.WithExtra("listeners", strconv.Itoa(table.Len())).
		WithExtra("diagnostics", strconv.Itoa(len(res.Diagnostics))).
		End("")
	return res, nil
}

// listen вызывает Listen правила; паника при регистрации тоже отказ правила.
func listen(r Rule, reg *Registrar) (f Failure, ok bool) {
	defer func() {
		if v := recover(); v != nil {
			f = Failure{Rule: reg.ctx.meta.Name, Value: fmt.Sprint(v)}
			ok = false
		}
	}()
	r.Listen(reg)
	return Failure{}, true
}
