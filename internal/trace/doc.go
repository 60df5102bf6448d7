// Package trace is the logging and tracing layer of depsort.
//
// Events are spans (begin/end pairs) and points. A driver span wraps a whole
// run, a pass span each manifest, and module-scoped events report details
// such as cache hits.
//
// # Usage
//
//	depsort --trace=- --trace-level=detail -w
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: only points reported as errors
//   - LevelPhase: driver and per-manifest spans
//   - LevelDetail: plus per-manifest details
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "manifest", parentID)
//	defer span.End("")
package trace
