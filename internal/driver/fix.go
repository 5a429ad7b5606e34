package driver

import (
	"context"
	"errors"
	"strconv"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/fix"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

// FixResult pairs the lint run with the fixes applied on top of it.
type FixResult struct {
	Lint  *Result
	Apply *fix.ApplyResult
}

// Fix lints targets and applies the selected fixes. Every diagnostic of the
// run is considered, including ones past the MaxDiagnostics limit.
// fix.ErrNoFixes is returned together with the result when nothing applied.
func Fix(ctx context.Context, targets []string, opts Options, apply fix.ApplyOptions) (*FixResult, error) {
	res, err := Lint(ctx, targets, opts)
	if err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "fix", trace.CurrentSpan(ctx).SpanID)
	emit(opts.Progress, Event{Stage: StageFix, Status: StatusWorking})

	idx := res.Timer.Begin("fix")
	applied, err := fix.Apply(res.FileSet, res.Diagnostics(), apply)
	res.Timer.End(idx, "")

	out := &FixResult{Lint: res, Apply: applied}
	if applied != nil {
		span.WithExtra("applied", strconv.Itoa(len(applied.Applied))).
			WithExtra("conflicts", strconv.Itoa(len(applied.Conflicts)))
	}
	switch {
	case err == nil:
		span.End("")
		emit(opts.Progress, Event{Stage: StageFix, Status: StatusDone})
	case errors.Is(err, fix.ErrNoFixes):
		span.End("no fixes")
		emit(opts.Progress, Event{Stage: StageFix, Status: StatusDone})
	default:
		span.End("failed")
		emit(opts.Progress, Event{Stage: StageFix, Status: StatusError, Err: err})
	}
	return out, err
}
