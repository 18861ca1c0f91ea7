// Package trace records where the argon frontend spends its time.
//
// A Tracer receives begin/end events for nested spans. Scopes order events
// from coarse to fine (driver, pass, module, node) and the configured Level
// decides how deep tracing goes:
//
//	t, _ := trace.New(trace.Config{Level: trace.LevelDetail, Mode: trace.ModeStream})
//	ctx = trace.WithTracer(ctx, t)
//	sp := trace.FromContext(ctx).Begin(trace.ScopePass, "infer", 0)
//	defer sp.End("")
//
// Stream tracers write text or NDJSON immediately; ring tracers keep the last
// events in memory so they can be dumped after a failure.
package trace
