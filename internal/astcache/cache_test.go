package astcache

import (
	"context"
	"errors"
	"os"
	"testing"

	"argon/internal/ast"
	"argon/internal/codedb"
	"argon/internal/diag"
	"argon/internal/parser"
	"argon/internal/source"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

type countingParser struct {
	*parser.FileParser
	calls int
}

func (p *countingParser) Parse(path string, content []byte) (*ast.Module, []diag.Diagnostic, error) {
	p.calls++
	return p.FileParser.Parse(path, content)
}

type fixture struct {
	fs     billy.Filesystem
	db     *codedb.DB
	files  *source.FileSet
	parser *countingParser
	cache  *Cache
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	fs := memfs.New()
	db := codedb.New(fs)
	files := source.NewFileSet()
	p := &countingParser{FileParser: parser.NewFileParser(files)}
	return &fixture{fs: fs, db: db, files: files, parser: p, cache: New(db, p, opts...)}
}

func (f *fixture) write(t *testing.T, p, content string) {
	t.Helper()
	if err := util.WriteFile(f.fs, p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func (f *fixture) get(t *testing.T, p string, txn codedb.TransactionID) *ast.Module {
	t.Helper()
	m, err := f.cache.Get(context.Background(), p, txn)
	if err != nil {
		t.Fatalf("Get(%s): %v", p, err)
	}
	return m
}

func TestGetIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/p/a.ar", "def id(x: i32) -> i32 { x }")

	m1 := f.get(t, "/p/a.ar", f.db.Begin())
	m2 := f.get(t, "/p/a.ar", f.db.Begin())
	if m1 == nil || m1 != m2 {
		t.Fatalf("expected the same module twice, got %p and %p", m1, m2)
	}
	if f.parser.calls != 1 {
		t.Fatalf("parser called %d times, want 1", f.parser.calls)
	}
	st := f.cache.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Parses != 1 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestChangedFileIsReparsed(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/a.ar", "def one() {}")
	m1 := f.get(t, "/a.ar", f.db.Begin())
	e1, _ := f.cache.Entry("/a.ar")

	f.write(t, "/a.ar", "def two() {}")
	m2 := f.get(t, "/a.ar", f.db.Begin())
	if m2 == m1 || m2.Func("two") == nil {
		t.Fatal("changed file must produce a new module")
	}
	e2, _ := f.cache.Entry("/a.ar")
	if e2.LastRevision <= e1.LastRevision || e2.Digest == e1.Digest {
		t.Fatalf("entry not replaced: %+v -> %+v", e1, e2)
	}
	if f.files.Get(m1.File) == nil || m1.File == m2.File {
		t.Fatal("each parsed version must keep its own file id")
	}
}

func TestMissingFile(t *testing.T) {
	f := newFixture(t)
	if m := f.get(t, "/none.ar", f.db.Begin()); m != nil {
		t.Fatal("missing file must yield no module")
	}
	if f.cache.Len() != 0 || f.parser.calls != 0 {
		t.Fatal("missing file must not be cached or parsed")
	}
}

func TestDeletedFileIsEvicted(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/gone.ar", "def a() {}")
	f.get(t, "/gone.ar", f.db.Begin())

	if err := f.fs.Remove("/gone.ar"); err != nil {
		t.Fatal(err)
	}
	if m := f.get(t, "/gone.ar", f.db.Begin()); m != nil {
		t.Fatal("deleted file must yield no module")
	}
	if _, ok := f.cache.Entry("/gone.ar"); ok {
		t.Fatal("entry must be evicted")
	}
	if st := f.cache.Stats(); st.Evictions != 1 {
		t.Fatalf("evictions = %d", st.Evictions)
	}
}

func TestRecreatedIdenticalFileIsNotReparsed(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/r.ar", "def a() {}")
	m1 := f.get(t, "/r.ar", f.db.Begin())
	e1, _ := f.cache.Entry("/r.ar")

	// ревизия меняется, содержимое нет
	if err := f.fs.Remove("/r.ar"); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.db.GetRevision("/r.ar"); ok {
		t.Fatal("expected missing")
	}
	f.write(t, "/r.ar", "def a() {}")

	m2 := f.get(t, "/r.ar", f.db.Begin())
	e2, _ := f.cache.Entry("/r.ar")
	if m2 != m1 || f.parser.calls != 1 {
		t.Fatal("identical content must reuse the module")
	}
	if e2.LastRevision == e1.LastRevision {
		t.Fatal("entry must record the new revision")
	}
}

func TestTransactionSeesPinnedVersion(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/t.ar", "def one() {}")
	txn := f.db.Begin()
	m1 := f.get(t, "/t.ar", txn)

	f.write(t, "/t.ar", "def two() {}")
	if m := f.get(t, "/t.ar", txn); m != m1 {
		t.Fatal("open transaction must keep its snapshot")
	}
	if f.parser.calls != 1 {
		t.Fatalf("parser called %d times", f.parser.calls)
	}

	if m := f.get(t, "/t.ar", f.db.Begin()); m.Func("two") == nil {
		t.Fatal("new transaction must see the change")
	}
}

func TestParseErrorsAreNotCached(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/bad.ar", "def broken( {")

	_, err := f.cache.Get(context.Background(), "/bad.ar", f.db.Begin())
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	var failure *ParseFailure
	if !errors.As(err, &failure) || failure.Path != "/bad.ar" {
		t.Fatalf("expected ParseFailure, got %v", err)
	}
	if f.cache.Len() != 0 {
		t.Fatal("failed parse must not create an entry")
	}

	f.write(t, "/bad.ar", "def fixed() {}")
	if m := f.get(t, "/bad.ar", f.db.Begin()); m.Func("fixed") == nil {
		t.Fatal("fixed file must parse")
	}
}

func TestParseErrorKeepsPreviousEntry(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/k.ar", "def ok() {}")
	f.get(t, "/k.ar", f.db.Begin())
	before, _ := f.cache.Entry("/k.ar")

	f.write(t, "/k.ar", "def ok( {")
	if _, err := f.cache.Get(context.Background(), "/k.ar", f.db.Begin()); err == nil {
		t.Fatal("expected parse error")
	}
	after, ok := f.cache.Entry("/k.ar")
	if !ok || after.Module != before.Module || after.LastRevision != before.LastRevision {
		t.Fatal("failed refresh must leave the entry untouched")
	}
}

func TestEntriesAreSorted(t *testing.T) {
	f := newFixture(t)
	for _, p := range []string{"/c.ar", "/a.ar", "/b.ar"} {
		f.write(t, p, "def f() {}")
		f.get(t, p, f.db.Begin())
	}
	items := f.cache.Entries()
	if len(items) != 3 {
		t.Fatalf("len = %d", len(items))
	}
	for i, want := range []string{"/a.ar", "/b.ar", "/c.ar"} {
		if items[i].Path != want {
			t.Fatalf("items[%d] = %s, want %s", i, items[i].Path, want)
		}
	}
}

func TestPathsAreCleaned(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/x/a.ar", "def f() {}")
	m1 := f.get(t, "/x/./a.ar", f.db.Begin())
	m2 := f.get(t, "/x/y/../a.ar", f.db.Begin())
	if m1 != m2 || f.cache.Len() != 1 {
		t.Fatal("equivalent paths must share one entry")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	const src = "export def add(a: i64, b: i64) -> i64 { a + (b * 2) }"

	first := newFixture(t, WithDiskCache(dc))
	first.write(t, "/m.ar", src)
	first.get(t, "/m.ar", first.db.Begin())
	if st := first.cache.Stats(); st.Parses != 1 || st.DiskHits != 0 {
		t.Fatalf("first run stats = %+v", st)
	}

	second := newFixture(t, WithDiskCache(dc))
	second.write(t, "/m.ar", src)
	m := second.get(t, "/m.ar", second.db.Begin())
	if second.parser.calls != 0 {
		t.Fatal("disk hit must skip parsing")
	}
	if st := second.cache.Stats(); st.DiskHits != 1 {
		t.Fatalf("second run stats = %+v", st)
	}
	fn := m.Func("add")
	if fn == nil || !fn.Exported || len(fn.Params) != 2 {
		t.Fatalf("decoded module is wrong: %+v", m)
	}
	file := second.files.Get(m.File)
	if file == nil || file.Path != "/m.ar" {
		t.Fatal("decoded module must be bound to a registered file")
	}
	if fn.Body.Exprs[0].Span.File != m.File {
		t.Fatal("expression spans must be rebound")
	}
}

func TestDiskCacheNeedsRegistrar(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := memfs.New()
	if err := util.WriteFile(fs, "/a.ar", []byte("def f() {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	db := codedb.New(fs)
	calls := 0
	plain := ParserFunc(func(path string, content []byte) (*ast.Module, []diag.Diagnostic, error) {
		calls++
		m, err := parser.ParseSource(string(content))
		return m, nil, err
	})
	c := New(db, plain, WithDiskCache(dc))
	if _, err := c.Get(context.Background(), "/a.ar", db.Begin()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	if _, ok, _ := dc.Get(c.Entries()[0].Entry.Digest); ok {
		t.Fatal("plain parsers must not populate the disk cache")
	}
}

func TestDiskCacheCorruptPayload(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t)
	f.write(t, "/a.ar", "def f() {}")
	f.get(t, "/a.ar", f.db.Begin())
	key := f.cache.Entries()[0].Entry.Digest

	if err := dc.Put(key, f.get(t, "/a.ar", f.db.Begin()), nil); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := dc.Get(key); !ok || err != nil {
		t.Fatalf("Get after Put = %v, %v", ok, err)
	}
	if err := os.WriteFile(dc.pathFor(key), []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := dc.Get(key); ok || err == nil {
		t.Fatal("corrupt payload must be a miss with an error")
	}
	if err := dc.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := dc.Get(key); ok || err != nil {
		t.Fatal("dropped cache must miss cleanly")
	}
}

func lexCodes(ds []diag.Diagnostic) []diag.Code {
	var out []diag.Code
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

func TestEntryKeepsLexerDiagnostics(t *testing.T) {
	f := newFixture(t)
	const src = "def f() -> i32 { 1 } /* open"
	f.write(t, "/l.ar", src)
	ctx := context.Background()

	e1, ok, err := f.cache.GetEntry(ctx, "/l.ar", f.db.Begin())
	if err != nil || !ok {
		t.Fatalf("GetEntry: %v %v", ok, err)
	}
	if got := lexCodes(e1.Diagnostics); len(got) != 1 || got[0] != diag.LexUnterminatedComment {
		t.Fatalf("diagnostics = %v", got)
	}

	// попадание в кэш
	e2, _, _ := f.cache.GetEntry(ctx, "/l.ar", f.db.Begin())
	if len(e2.Diagnostics) != 1 || f.parser.calls != 1 {
		t.Fatalf("hit lost diagnostics: %v", lexCodes(e2.Diagnostics))
	}

	// ревизия сменилась, содержимое то же
	if err := f.fs.Remove("/l.ar"); err != nil {
		t.Fatal(err)
	}
	f.db.GetRevision("/l.ar")
	f.write(t, "/l.ar", src)
	e3, _, _ := f.cache.GetEntry(ctx, "/l.ar", f.db.Begin())
	if len(e3.Diagnostics) != 1 || f.parser.calls != 1 || e3.LastRevision == e1.LastRevision {
		t.Fatalf("revalidation lost diagnostics: %v", lexCodes(e3.Diagnostics))
	}
}

func TestParseFailureKeepsLexerDiagnostics(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/e.ar", "def f() { 1 @ }")

	_, err := f.cache.Get(context.Background(), "/e.ar", f.db.Begin())
	var failure *ParseFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected ParseFailure, got %v", err)
	}
	if got := lexCodes(failure.Diagnostics); len(got) != 1 || got[0] != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestDiskCacheKeepsLexerDiagnostics(t *testing.T) {
	dc, err := OpenDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	const src = "def f() -> i32 { 1 }\n/* open"

	first := newFixture(t, WithDiskCache(dc))
	first.write(t, "/d.ar", src)
	first.get(t, "/d.ar", first.db.Begin())

	second := newFixture(t, WithDiskCache(dc))
	second.write(t, "/d.ar", src)
	e, ok, err := second.cache.GetEntry(context.Background(), "/d.ar", second.db.Begin())
	if err != nil || !ok || second.parser.calls != 0 {
		t.Fatalf("expected a disk hit: %v %v calls=%d", ok, err, second.parser.calls)
	}
	if len(e.Diagnostics) != 1 || e.Diagnostics[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("diagnostics = %v", lexCodes(e.Diagnostics))
	}
	d := e.Diagnostics[0]
	if d.Primary.File != e.Module.File {
		t.Fatal("diagnostic spans must be rebound to the new file version")
	}
	if start, _ := second.files.Resolve(d.Primary); start.Line != 2 || start.Col != 1 {
		t.Fatalf("diagnostic resolves to %+v", start)
	}
}

func TestOlderTransactionKeepsItsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.write(t, "/s.ar", "def one() {}")
	old := f.db.Begin()
	if m := f.get(t, "/s.ar", old); m.Func("one") == nil {
		t.Fatal("old transaction must see one")
	}

	f.write(t, "/s.ar", "def two() {}")
	fresh := f.db.Begin()
	newer := f.get(t, "/s.ar", fresh)
	if newer.Func("two") == nil {
		t.Fatal("new transaction must see two")
	}
	entry, _ := f.cache.Entry("/s.ar")

	// запись новее снимка старой транзакции
	if m := f.get(t, "/s.ar", old); m.Func("one") == nil || m.Func("two") != nil {
		t.Fatal("old transaction must keep seeing its own revision")
	}
	after, _ := f.cache.Entry("/s.ar")
	if after.Module != entry.Module || after.LastRevision != entry.LastRevision {
		t.Fatal("serving an older snapshot must not replace the entry")
	}
	if m := f.get(t, "/s.ar", fresh); m != newer {
		t.Fatal("new transaction must still hit the entry")
	}
}
