package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"argon/internal/ast"
	"argon/internal/astcache"
	"argon/internal/codedb"
	"argon/internal/diag"
	"argon/internal/infer"
	"argon/internal/observ"
	"argon/internal/parser"
	"argon/internal/resolved"
	"argon/internal/source"
	"argon/internal/trace"
)

// Check runs one compilation pass over paths inside a single transaction.
// Problems in the sources become diagnostics; the error return is reserved
// for failures of the driver itself.
func (d *Driver) Check(ctx context.Context, paths ...string) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "driver.check")
	defer span.End("")

	var timer *observ.Timer
	if d.opts.EnableTimings {
		timer = observ.NewTimer()
	}

	abs, err := normalizePaths(paths)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(d.opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(bag)

	txn := d.db.Begin()
	defer d.db.End(txn)

	res := &Result{FileSet: d.files, Bag: bag}
	before := d.cache.Stats()
	for _, p := range abs {
		mark := bag.Len()
		mr := d.checkModule(ctx, p, txn, bag, rep, timer)
		res.Modules = append(res.Modules, mr)
		d.opts.OnPhase.module(p, hasError(bag.Items()[mark:]))
	}
	res.Cache = d.cache.Stats()

	if timer != nil {
		timer.Note("parse", fmt.Sprintf("parsed=%d disk=%d hits=%d",
			res.Cache.Parses-before.Parses, res.Cache.DiskHits-before.DiskHits, res.Cache.Hits-before.Hits))
		report := timer.Report()
		res.Timings = &report
	}

	bag.Dedup()
	bag.Sort()
	if res.Timings != nil {
		appendTimingDiagnostic(bag, timingPayload{Kind: "check", Paths: abs, TotalMS: res.Timings.TotalMS, Phases: res.Timings.Phases})
	}

	span.WithExtra("modules", fmt.Sprint(len(abs))).WithExtra("diags", fmt.Sprint(bag.Len()))
	return res, nil
}

// checkModule reports lexer diagnostics through rep and everything else
// straight into bag.
func (d *Driver) checkModule(ctx context.Context, p string, txn codedb.TransactionID, bag *diag.Bag, rep diag.Reporter, timer *observ.Timer) *ModuleResult {
	ctx, span := trace.Start(ctx, trace.ScopePass, "module")
	span.WithExtra("path", p)
	defer span.End("")

	mr := &ModuleResult{Path: p}

	endPhase := d.opts.OnPhase.phase("parse", p)
	stop := timer.Track("parse")
	entry, found, err := d.cache.GetEntry(ctx, p, txn)
	stop()
	endPhase()

	if err != nil {
		d.modules.Forget(p)
		var failure *astcache.ParseFailure
		if errors.As(err, &failure) {
			replay(rep, failure.Diagnostics)
		}
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			bag.Add(perr.Diagnostic())
			return mr
		}
		bag.Add(diag.NewError(diag.IOLoadFileError, d.placeholder(p), err.Error()))
		return mr
	}
	if !found {
		d.modules.Forget(p)
		bag.Add(diag.NewError(diag.IOFileNotFound, d.placeholder(p), "file not found: "+p))
		return mr
	}
	// лексер не останавливает разбор, его отчёты живут вместе с модулем
	replay(rep, entry.Diagnostics)
	mod := entry.Module
	mr.Module = mod

	if rec, ok := d.modules.Get(p, mod); ok {
		trace.Point(trace.FromContext(ctx), trace.ScopeModule, "module.reuse", p)
		mr.Resolved, mr.Funcs = rec.resolved, rec.funcs
		for _, dg := range rec.diags {
			bag.Add(dg)
		}
		return mr
	}

	var diags []diag.Diagnostic

	endPhase = d.opts.OnPhase.phase("resolve", p)
	stop = timer.Track("resolve")
	rm, rdiags := resolved.Lower(mod)
	stop()
	endPhase()
	diags = append(diags, rdiags...)
	mr.Resolved = rm

	endPhase = d.opts.OnPhase.phase("infer", p)
	stop = timer.Track("infer")
	mr.Funcs, diags = d.inferModule(ctx, rm, diags)
	stop()
	endPhase()

	for _, dg := range diags {
		bag.Add(dg)
	}
	d.modules.Put(p, checked{module: mod, resolved: rm, funcs: mr.Funcs, diags: diags})
	return mr
}

func (d *Driver) inferModule(ctx context.Context, rm *resolved.Module, diags []diag.Diagnostic) ([]*infer.Function, []diag.Diagnostic) {
	var funcs []*infer.Function
	for _, fn := range rm.Funcs {
		if fn.Invalid {
			continue
		}
		_, span := trace.Start(ctx, trace.ScopeNode, "infer.function")
		typed, errs := infer.CheckFunction(fn)
		span.WithExtra("name", fn.Name).WithExtra("errors", fmt.Sprint(len(errs)))
		if typed != nil {
			span.WithExtra("vars", fmt.Sprint(typed.Vars))
		}
		span.End("")

		for _, e := range errs {
			diags = append(diags, e.Diagnostic())
		}
		if typed != nil {
			funcs = append(funcs, typed)
		}
	}
	return funcs, diags
}

// placeholder returns a span in an empty version of p so diagnostics about a
// file that could not be read still name it. The version is registered once
// and reused while it stays the latest one.
func (d *Driver) placeholder(p string) source.Span {
	if f, ok := d.files.GetByPath(p); ok && f.Flags&source.FileVirtual != 0 && len(f.Content) == 0 {
		return source.Span{File: f.ID}
	}
	id := d.files.Add(p, nil, source.FileVirtual)
	return source.Span{File: id}
}

func replay(rep diag.Reporter, ds []diag.Diagnostic) {
	for _, dg := range ds {
		rep.Report(dg.Code, dg.Severity, dg.Primary, dg.Message, dg.Notes)
	}
}

func hasError(ds []diag.Diagnostic) bool {
	for _, dg := range ds {
		if dg.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func normalizePaths(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := source.AbsolutePath(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	sort.Strings(out)
	return out, nil
}

// ModuleResult is the outcome for one path. Module is nil when the file
// is missing or failed to parse.
type ModuleResult struct {
	Path     string
	Module   *ast.Module
	Resolved *resolved.Module
	Funcs    []*infer.Function
}

// Func returns the typed function called name, or nil.
func (m *ModuleResult) Func(name string) *infer.Function {
	for _, fn := range m.Funcs {
		if fn.Source.Name == name {
			return fn
		}
	}
	return nil
}
