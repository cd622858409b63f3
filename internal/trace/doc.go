// Package trace records what the athena pipeline is doing: driver commands,
// the lex/parse/eval passes, per-file work in batch mode and, at the most
// verbose level, every evaluated AST node.
//
// # Usage
//
//	athena eval --trace=- --trace-level=detail -e "deriv(x^2, x)"
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a crash
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level admits every scope up to its own granularity:
//
//   - LevelError, LevelPhase: ScopeDriver and ScopePass
//   - LevelDetail: adds ScopeFile
//   - LevelDebug: adds ScopeNode
//
// LevelError always uses the ring: nothing is written unless the process
// crashes and the ring is dumped.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
