// Package trace records where theoremc spends its time.
//
// Spans mark the driver run, each pass (discover, load, validate, mangle)
// and, at higher levels, every file and document. Enable it from the CLI:
//
//	theoremc check --trace=- --trace-level=phase theorems/
//
// # Tracers
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes each event as it happens
//   - RingTracer: keeps the most recent events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: ring only, dumped when a run fails
//   - LevelPhase: driver and pass spans
//   - LevelDetail: plus one span per file
//   - LevelDebug: plus one span per document
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "validate")
//	defer span.End("")
package trace
