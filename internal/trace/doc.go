// Package trace provides a tracing subsystem for tsrules.
//
// The trace package records lint phases, per-file work and rule failures to
// help diagnose slow projects and misbehaving rules.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tsrules lint --trace=- --trace-level=detail src/
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer, dumped when a run fails
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failure dumps
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything including rule events
//
// # Scopes
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopePass: Phases (discover, parse, semantic, lint, fix)
//   - ScopeFile: Per-file processing
//   - ScopeRule: Rule listener events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
