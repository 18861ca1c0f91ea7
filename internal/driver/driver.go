// Package driver runs the frontend pipeline: read through the Ast Cache,
// resolve names, infer types and collect diagnostics.
package driver

import (
	"argon/internal/astcache"
	"argon/internal/codedb"
	"argon/internal/parser"
	"argon/internal/source"
)

// Options configures a Driver.
type Options struct {
	MaxDiagnostics int
	EnableTimings  bool
	// DiskCache is optional; nil keeps parsed modules in memory only.
	DiskCache *astcache.DiskCache
	// OnPhase receives phase boundaries of every Check.
	OnPhase PhaseObserver
}

// Driver owns the long-lived state shared by consecutive checks: the file
// set, the Ast Cache and the per-module result cache.
// Not safe for concurrent Check calls.
type Driver struct {
	db      *codedb.DB
	files   *source.FileSet
	parser  *parser.FileParser
	cache   *astcache.Cache
	modules *ModuleCache
	opts    Options
}

func New(db *codedb.DB, opts Options) *Driver {
	files := source.NewFileSet()
	fp := parser.NewFileParser(files)

	var cacheOpts []astcache.Option
	if opts.DiskCache != nil {
		cacheOpts = append(cacheOpts, astcache.WithDiskCache(opts.DiskCache))
	}
	return &Driver{
		db:      db,
		files:   files,
		parser:  fp,
		cache:   astcache.New(db, fp, cacheOpts...),
		modules: NewModuleCache(16),
		opts:    opts,
	}
}

func (d *Driver) FileSet() *source.FileSet { return d.files }

func (d *Driver) Cache() *astcache.Cache { return d.cache }

func (d *Driver) DB() *codedb.DB { return d.db }
