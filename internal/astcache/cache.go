// Package astcache keeps the most recently parsed syntax tree of every
// source path and refreshes it lazily against the source provider.
package astcache

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"argon/internal/ast"
	"argon/internal/codedb"
	"argon/internal/diag"
	"argon/internal/project"
	"argon/internal/source"
	"argon/internal/trace"

	"github.com/benbjohnson/immutable"
)

// SourceProvider supplies file contents and revisions.
type SourceProvider interface {
	GetRevision(path string) (codedb.Revision, bool)
	IsValid(path string, rev codedb.Revision) bool
	Fetch(path string, txn codedb.TransactionID) (*codedb.File, error)
}

// PinnedSource is implemented by providers that can tell which snapshot a
// transaction already holds without reading the file again.
type PinnedSource interface {
	Pinned(path string, txn codedb.TransactionID) (*codedb.File, bool)
}

// Parser turns file content into a module. Diagnostics that do not stop
// parsing (lexer errors) are returned alongside the module.
type Parser interface {
	Parse(path string, content []byte) (*ast.Module, []diag.Diagnostic, error)
}

// ParserFunc adapts a plain function to Parser.
type ParserFunc func(path string, content []byte) (*ast.Module, []diag.Diagnostic, error)

func (f ParserFunc) Parse(path string, content []byte) (*ast.Module, []diag.Diagnostic, error) {
	return f(path, content)
}

// ParseFailure is returned by Get when parsing fails. Diagnostics holds what
// the lexer reported before the failure.
type ParseFailure struct {
	Path        string
	Diagnostics []diag.Diagnostic
	Err         error
}

func (e *ParseFailure) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *ParseFailure) Unwrap() error { return e.Err }

// Registrar is implemented by parsers that can register a file version
// without parsing it. Disk cache hits need it to obtain a fresh FileID.
type Registrar interface {
	Register(path string, content []byte) source.FileID
}

// Entry is the cached state of one path. Entries are replaced, never mutated.
type Entry struct {
	Module *ast.Module
	// Diagnostics are the lexer reports of the parse that produced Module.
	Diagnostics  []diag.Diagnostic
	LastRevision codedb.Revision
	Digest       project.Digest
}

// Item is one (path, entry) pair returned by Entries.
type Item struct {
	Path  string
	Entry Entry
}

type Stats struct {
	Hits      int // запись оказалась актуальной
	Misses    int // пришлось читать файл
	Parses    int
	DiskHits  int
	Evictions int
}

// Cache is a read-through cache of parsed modules keyed by absolute path.
// One mutex serializes every check-and-refresh.
type Cache struct {
	mu     sync.Mutex
	src    SourceProvider
	parser Parser
	disk   *DiskCache
	index  *immutable.SortedMap // string -> *Entry
	stats  Stats
}

type Option func(*Cache)

// WithDiskCache enables the on-disk second level. It is used only when the
// parser also implements Registrar.
func WithDiskCache(dc *DiskCache) Option {
	return func(c *Cache) { c.disk = dc }
}

func New(src SourceProvider, parser Parser, opts ...Option) *Cache {
	c := &Cache{
		src:    src,
		parser: parser,
		index:  immutable.NewSortedMap(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRevision delegates to the source provider.
func (c *Cache) GetRevision(p string) (codedb.Revision, bool) {
	return c.src.GetRevision(cleanPath(p))
}

// Get refreshes the entry for p and returns its module. It returns nil, nil
// when the file does not exist.
func (c *Cache) Get(ctx context.Context, p string, txn codedb.TransactionID) (*ast.Module, error) {
	e, ok, err := c.GetEntry(ctx, p, txn)
	if err != nil || !ok {
		return nil, err
	}
	return e.Module, nil
}

// GetEntry is Get returning the whole entry, so callers can replay the
// diagnostics of a module they did not parse themselves. The entry is the
// one matching txn's snapshot of p.
func (c *Cache) GetEntry(ctx context.Context, p string, txn codedb.TransactionID) (Entry, bool, error) {
	p = cleanPath(p)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.refresh(ctx, p, txn)
	if err != nil || e == nil {
		return Entry{}, false, err
	}
	return *e, true, nil
}

// Entry returns the cached entry without refreshing it.
func (c *Cache) Entry(p string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookup(cleanPath(p))
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries lists cached entries ordered by path.
func (c *Cache) Entries() []Item {
	c.mu.Lock()
	idx := c.index
	c.mu.Unlock()

	out := make([]Item, 0, idx.Len())
	it := idx.Iterator()
	for !it.Done() {
		k, v := it.Next()
		out = append(out, Item{Path: k.(string), Entry: *v.(*Entry)})
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.Len()
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) lookup(p string) (*Entry, bool) {
	v, ok := c.index.Get(p)
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// refresh must be called with c.mu held. It returns the entry serving txn,
// or nil when the file is missing.
func (c *Cache) refresh(ctx context.Context, p string, txn codedb.TransactionID) (*Entry, error) {
	_, sp := trace.Start(ctx, trace.ScopeModule, "astcache.refresh")
	sp.WithExtra("path", p)
	result := "hit"
	defer func() { sp.WithExtra("result", result).End("") }()

	entry, cached := c.lookup(p)
	if cached && c.src.IsValid(p, entry.LastRevision) && c.snapshotMatches(p, txn, entry) {
		c.stats.Hits++
		return entry, nil
	}
	c.stats.Misses++

	file, err := c.src.Fetch(p, txn)
	if err != nil {
		result = "error"
		return nil, fmt.Errorf("astcache: %w", err)
	}
	if file == nil {
		result = "missing"
		if cached {
			c.index = c.index.Delete(p)
			c.stats.Evictions++
			result = "evicted"
		}
		return nil, nil
	}

	switch {
	case cached && file.Revision == entry.LastRevision:
		// транзакция всё ещё видит закреплённую версию
		result = "pinned"
		return entry, nil
	case cached && file.Revision < entry.LastRevision:
		// снимок транзакции старше записи: отдаём его, кэш не трогаем
		result = "snapshot"
		if file.Digest == entry.Digest {
			return &Entry{Module: entry.Module, Diagnostics: entry.Diagnostics, LastRevision: file.Revision, Digest: file.Digest}, nil
		}
		mod, diags, _, err := c.load(ctx, file)
		if err != nil {
			result = "error"
			return nil, err
		}
		return &Entry{Module: mod, Diagnostics: diags, LastRevision: file.Revision, Digest: file.Digest}, nil
	case cached && file.Digest == entry.Digest:
		result = "revalidated"
		return c.store(p, entry.Module, entry.Diagnostics, file), nil
	}

	mod, diags, fromDisk, err := c.load(ctx, file)
	if err != nil {
		result = "error"
		return nil, err
	}
	if fromDisk {
		result = "disk"
	} else {
		result = "parsed"
	}
	return c.store(p, mod, diags, file), nil
}

// snapshotMatches reports whether txn either has not read p yet or holds the
// revision the entry was built from.
func (c *Cache) snapshotMatches(p string, txn codedb.TransactionID, e *Entry) bool {
	ps, ok := c.src.(PinnedSource)
	if !ok {
		return true
	}
	f, pinned := ps.Pinned(p, txn)
	if !pinned {
		return true
	}
	return f != nil && f.Revision == e.LastRevision
}

func (c *Cache) store(p string, mod *ast.Module, diags []diag.Diagnostic, file *codedb.File) *Entry {
	e := &Entry{
		Module:       mod,
		Diagnostics:  diags,
		LastRevision: file.Revision,
		Digest:       file.Digest,
	}
	c.index = c.index.Set(p, e)
	return e
}

func (c *Cache) load(ctx context.Context, file *codedb.File) (*ast.Module, []diag.Diagnostic, bool, error) {
	reg, canRebind := c.parser.(Registrar)
	if c.disk != nil && canRebind {
		rec, ok, err := c.disk.Get(file.Digest)
		if err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeModule, "astcache.disk", err.Error())
		}
		if ok {
			id := reg.Register(file.Path, file.Content)
			rec.Module.Rebind(id)
			c.stats.DiskHits++
			return rec.Module, rebindDiagnostics(rec.Diagnostics, id), true, nil
		}
	}

	mod, diags, err := c.parser.Parse(file.Path, file.Content)
	if err != nil {
		return nil, nil, false, &ParseFailure{Path: file.Path, Diagnostics: diags, Err: err}
	}
	c.stats.Parses++

	if c.disk != nil && canRebind {
		if err := c.disk.Put(file.Digest, mod, diags); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeModule, "astcache.disk", err.Error())
		}
	}
	return mod, diags, false, nil
}

// rebindDiagnostics moves diagnostics loaded from disk onto file version id.
func rebindDiagnostics(ds []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	if len(ds) == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, len(ds))
	for i, d := range ds {
		d.Primary = d.Primary.WithFile(id)
		if len(d.Notes) > 0 {
			notes := make([]diag.Note, len(d.Notes))
			for j, n := range d.Notes {
				notes[j] = diag.Note{Span: n.Span.WithFile(id), Msg: n.Msg}
			}
			d.Notes = notes
		}
		out[i] = d
	}
	return out
}

func cleanPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
