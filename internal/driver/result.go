package driver

import (
	"argon/internal/astcache"
	"argon/internal/diag"
	"argon/internal/infer"
	"argon/internal/observ"
	"argon/internal/source"
)

// Result holds everything one Check produced. Modules are ordered by path.
type Result struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	Modules []*ModuleResult
	Cache   astcache.Stats
	// Timings is set when Options.EnableTimings is on.
	Timings *observ.Report
}

func (r *Result) HasErrors() bool {
	return r != nil && r.Bag.HasErrors()
}

// Module returns the result for an absolute path.
func (r *Result) Module(path string) *ModuleResult {
	for _, m := range r.Modules {
		if m.Path == path {
			return m
		}
	}
	return nil
}

// Funcs lists every typed function across modules.
func (r *Result) Funcs() []*infer.Function {
	var out []*infer.Function
	for _, m := range r.Modules {
		out = append(out, m.Funcs...)
	}
	return out
}
