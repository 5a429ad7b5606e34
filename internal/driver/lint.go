package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/checker"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/config"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/diag"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/directive"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/lint"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/observ"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/parser"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/rules"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/scope"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/semantic"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/source"
	"github.com/uniqueiniquity/eslint-plugin-typescript/internal/trace"
)

// Options configures a lint run.
type Options struct {
	// Config is the effective configuration; nil means discover it from the
	// first target.
	Config *config.Config
	// Registry defaults to the built-in rules.
	Registry       *lint.Registry
	Jobs           int
	MaxDiagnostics int
	// Cache enables the on-disk result cache.
	Cache *DiskCache
	// Semantic shares built models between runs; a fresh cache is used when nil.
	Semantic *semantic.Cache
	Version  string
	Progress ProgressSink
	RunID    string
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	// Skipped lists type-aware rules that did not run for the file.
	Skipped  []string
	Cached   bool
	Failures int

	// Suppressed counts diagnostics dropped by tsrules-disable comments.
	Suppressed int
}

// Result aggregates a lint run.
type Result struct {
	RunID   string
	Config  *config.Config
	FileSet *source.FileSet
	// Bag holds the sorted diagnostics of all files, cut at MaxDiagnostics.
	Bag     *diag.Bag
	Files   []FileResult
	Timer   *observ.Timer
	Enabled []lint.Enabled
	// Typed reports whether a semantic model was available.
	Typed bool
}

// Diagnostics returns every diagnostic of the run in canonical order,
// regardless of the MaxDiagnostics limit.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	sort.SliceStable(out, func(i, j int) bool { return diag.Less(&out[i], &out[j]) })
	return out
}

// CachedFiles counts files answered from the disk cache.
func (r *Result) CachedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Cached {
			n++
		}
	}
	return n
}

type fileTask struct {
	path    string
	id      source.FileID
	loadErr error
	key     config.Digest
	parsed  *parser.Result
	scopes  *scope.Manager
	out     FileResult
	done    bool
}

// Lint discovers the files under targets, parses them in parallel, builds
// the semantic model once when a type-aware rule is enabled and lints every
// file that parsed cleanly.
func Lint(ctx context.Context, targets []string, opts Options) (*Result, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "lint", trace.CurrentSpan(ctx).SpanID).
		WithExtra("run_id", runID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	detail := "failed"
	defer func() { span.End(detail) }()

	cfg := opts.Config
	if cfg == nil {
		start := "."
		if len(targets) > 0 {
			start = targets[0]
		}
		var err error
		if cfg, err = config.Discover(start); err != nil {
			return nil, err
		}
	}
	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = rules.NewRegistry(); err != nil {
			return nil, err
		}
	}
	enabled, err := cfg.Enable(reg)
	if err != nil {
		return nil, err
	}
	typed := cfg.Semantic && needsTypes(enabled)

	timer := observ.NewTimer()
	phase := timer.Begin("discover")
	paths, err := ListFiles(targets, cfg)
	if err != nil {
		return nil, err
	}
	timer.End(phase, strconv.Itoa(len(paths))+" files")

	fs := source.NewFileSetWithBase(cfg.Root)
	tasks := make([]*fileTask, len(paths))
	phase = timer.Begin("load")
	for i, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		t := &fileTask{path: path}
		t.id, t.loadErr = fs.Load(path)
		if t.loadErr != nil {
			// пустая запись, чтобы диагностике было к чему привязаться
			t.id = fs.Add(path, nil, source.FileVirtual)
		}
		tasks[i] = t
	}
	timer.End(phase, "")

	if opts.Cache != nil {
		phase = timer.Begin("cache")
		hits := lookupCache(ctx, tasks, fs, cfg, typed, opts)
		timer.End(phase, fmt.Sprintf("%d hits", hits))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	phase = timer.Begin("parse")
	if err := parseAll(ctx, tasks, fs, jobs, opts.Progress); err != nil {
		return nil, err
	}
	timer.End(phase, "")

	var model semantic.Model
	if typed {
		phase = timer.Begin("semantic")
		model = buildModel(ctx, tasks, cfg, opts)
		timer.End(phase, "")
	}

	phase = timer.Begin("lint")
	if err := lintAll(ctx, tasks, enabled, model, jobs, opts.Progress, timer); err != nil {
		return nil, err
	}
	timer.End(phase, "")

	// без модели результат типовых правил неполон, такой запуск не кешируем
	if opts.Cache != nil && (!typed || model != nil) {
		storeCache(ctx, tasks, opts.Cache)
	}

	res := &Result{
		RunID:   runID,
		Config:  cfg,
		FileSet: fs,
		Files:   make([]FileResult, len(tasks)),
		Timer:   timer,
		Enabled: enabled,
		Typed:   model != nil,
	}
	for i, t := range tasks {
		res.Files[i] = t.out
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, d := range res.Diagnostics() {
		bag.Add(d)
	}
	bag.Dedup()
	res.Bag = bag

	detail = fmt.Sprintf("%d files, %d diagnostics", len(tasks), bag.Len()+bag.Dropped())
	return res, nil
}

func needsTypes(enabled []lint.Enabled) bool {
	for _, en := range enabled {
		if en.Rule.Meta().RequiresTypes {
			return true
		}
	}
	return false
}

func loadFailure(t *fileTask) diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{File: t.id}, "failed to load "+t.path+": "+t.loadErr.Error())
}

// parseAll разбирает файлы, не найденные в кеше, параллельно.
// Results are indexed per task, so no mutex is needed.
func parseAll(ctx context.Context, tasks []*fileTask, fs *source.FileSet, jobs int, sink ProgressSink) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(tasks))))
	for _, t := range tasks {
		if t.done {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			t.out.Path = t.path
			t.out.FileID = t.id
			if t.loadErr != nil {
				t.out.Diagnostics = []diag.Diagnostic{loadFailure(t)}
				t.done = true
				emit(sink, Event{File: t.path, Stage: StageLoad, Status: StatusError, Err: t.loadErr})
				return nil
			}
			emit(sink, Event{File: t.path, Stage: StageParse, Status: StatusWorking})
			bag := diag.NewBag(0)
			res := parser.ParseFile(fs.Get(t.id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
			if !res.OK() {
				// неразобранный файл не попадает в обход правил
				bag.Sort()
				t.out.Diagnostics = bag.Items()
				t.done = true
				emit(sink, Event{File: t.path, Stage: StageParse, Status: StatusError, Elapsed: time.Since(started)})
				return nil
			}
			t.parsed = res
			t.scopes = scope.Analyze(res.Tree)
			return nil
		})
	}
	return g.Wait()
}

func buildModel(ctx context.Context, tasks []*fileTask, cfg *config.Config, opts Options) semantic.Model {
	units := make([]checker.Unit, 0, len(tasks))
	for _, t := range tasks {
		if t.parsed != nil {
			units = append(units, checker.Unit{File: t.parsed.File, Tree: t.parsed.Tree, Scopes: t.scopes})
		}
	}
	if len(units) == 0 {
		return nil
	}
	emit(opts.Progress, Event{Stage: StageSemantic, Status: StatusWorking})
	cache := opts.Semantic
	if cache == nil {
		cache = semantic.NewCache()
	}
	started := time.Now()
	model, err := cache.Get(ctx, cfg.Root, func(ctx context.Context, root string) (semantic.Model, error) {
		prog, err := checker.Check(ctx, root, nil, units)
		if err != nil {
			return nil, err
		}
		return prog, nil
	})
	if err != nil {
		// без модели типовые правила просто пропускаются
		trace.Failure(trace.FromContext(ctx), "semantic", err.Error(), map[string]string{"root": cfg.Root})
		first := units[0]
		d := diag.New(diag.SevWarning, diag.CfgSemanticError, source.Span{File: first.File.ID},
			"semantic model unavailable, type-aware rules skipped: "+err.Error())
		for _, t := range tasks {
			if t.parsed != nil && t.id == first.File.ID {
				t.out.Diagnostics = append(t.out.Diagnostics, d)
			}
		}
		emit(opts.Progress, Event{Stage: StageSemantic, Status: StatusError, Err: err})
		return nil
	}
	emit(opts.Progress, Event{Stage: StageSemantic, Status: StatusDone, Elapsed: time.Since(started)})
	return model
}

func lintAll(ctx context.Context, tasks []*fileTask, enabled []lint.Enabled, model semantic.Model, jobs int, sink ProgressSink, timer *observ.Timer) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(tasks))))
	for _, t := range tasks {
		if t.done || t.parsed == nil {
			continue
		}
		g.Go(func() error {
			started := time.Now()
			emit(sink, Event{File: t.path, Stage: StageLint, Status: StatusWorking})
			file := lint.NewFile(t.parsed, t.scopes, semantic.NewBridge(model, t.id))
			res, err := lint.Run(gctx, file, enabled)
			if err != nil {
				return fmt.Errorf("lint %s: %w", t.path, err)
			}
			directives := directive.Scan(t.parsed.File, t.parsed.Comments)
			diags, suppressed := directives.Filter(t.parsed.File, res.Diagnostics)
			t.out.Diagnostics = append(t.out.Diagnostics, diags...)
			t.out.Suppressed = suppressed
			if unused := directives.Unused(); len(unused) > 0 {
				trace.Point(trace.FromContext(gctx), trace.ScopeFile, "unused-directives", t.path,
					map[string]string{"count": strconv.Itoa(len(unused))})
			}
			t.out.Skipped = res.Skipped
			t.out.Failures = len(res.Failures)
			for _, f := range res.Failures {
				t.out.Diagnostics = append(t.out.Diagnostics, failureDiagnostic(file, f))
			}
			t.done = true
			status := StatusDone
			if len(res.Failures) > 0 {
				status = StatusError
			}
			elapsed := time.Since(started)
			timer.Sample("lint", t.path, elapsed)
			emit(sink, Event{File: t.path, Stage: StageLint, Status: status, Elapsed: elapsed})
			return nil
		})
	}
	return g.Wait()
}

func failureDiagnostic(file *lint.File, f lint.Failure) diag.Diagnostic {
	span := source.Span{File: file.Source.File.ID}
	if f.Node.IsValid() {
		span = file.Tree.Span(f.Node)
	}
	return diag.New(diag.SevWarning, diag.LintRuleFailure, span, "rule "+f.Rule+" failed: "+f.Value)
}

func cacheKeys(tasks []*fileTask, fs *source.FileSet, cfg *config.Config, typed bool, version string) {
	var project config.Digest
	if typed {
		// типовые правила зависят от всех файлов проекта
		hashes := make([]config.Digest, 0, len(tasks))
		for _, t := range tasks {
			if t.loadErr == nil {
				hashes = append(hashes, config.Digest(fs.Get(t.id).Hash))
			}
		}
		project = config.Combine(config.Digest{}, hashes...)
	}
	cfgDigest := cfg.Digest()
	for _, t := range tasks {
		if t.loadErr == nil {
			t.key = CacheKey(config.Digest(fs.Get(t.id).Hash), cfgDigest, version, project)
		}
	}
}

func lookupCache(ctx context.Context, tasks []*fileTask, fs *source.FileSet, cfg *config.Config, typed bool, opts Options) int {
	tracer := trace.FromContext(ctx)
	cacheKeys(tasks, fs, cfg, typed, opts.Version)
	hits := 0
	for _, t := range tasks {
		if t.loadErr != nil {
			continue
		}
		var payload LintPayload
		ok, err := opts.Cache.Get(t.key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", "read failed", map[string]string{"path": t.path, "error": err.Error()})
			continue
		}
		if !ok {
			continue
		}
		t.out = FileResult{
			Path:        t.path,
			FileID:      t.id,
			Diagnostics: rebind(payload.Diagnostics, t.id),
			Skipped:     payload.Skipped,
			Cached:      true,
		}
		t.done = true
		hits++
		emit(opts.Progress, Event{File: t.path, Stage: StageLint, Status: StatusCached})
	}
	trace.Point(tracer, trace.ScopePass, "cache", "lookup", map[string]string{"hits": strconv.Itoa(hits)})
	return hits
}

// storeCache записывает результаты файлов, прошедших разбор или линтинг в этом запуске.
// Ошибки записи не прерывают запуск: кеш лишь ускоряет повторный.
func storeCache(ctx context.Context, tasks []*fileTask, cache *DiskCache) {
	tracer := trace.FromContext(ctx)
	var errs []error
	for _, t := range tasks {
		if t.out.Cached || t.loadErr != nil || t.out.Failures > 0 {
			continue
		}
		payload := &LintPayload{Path: t.path, Diagnostics: t.out.Diagnostics, Skipped: t.out.Skipped}
		if err := cache.Put(t.key, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		trace.Point(tracer, trace.ScopePass, "cache", "write failed", map[string]string{"error": err.Error()})
	}
}
