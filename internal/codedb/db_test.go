package codedb

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func write(t *testing.T, fs billy.Filesystem, p, content string) {
	t.Helper()
	if err := util.WriteFile(fs, p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
}

func TestRevisionTracksContent(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/src/a.ar", "def a() {}")

	r1, ok := db.GetRevision("/src/a.ar")
	if !ok {
		t.Fatal("expected revision for existing file")
	}
	if r2, _ := db.GetRevision("/src/a.ar"); r2 != r1 {
		t.Fatalf("unchanged file changed revision: %d -> %d", r1, r2)
	}
	if !db.IsValid("/src/a.ar", r1) {
		t.Fatal("revision must stay valid while content is unchanged")
	}

	write(t, fs, "/src/a.ar", "def a() {}")
	if !db.IsValid("/src/a.ar", r1) {
		t.Fatal("rewriting identical bytes must keep the revision")
	}

	write(t, fs, "/src/a.ar", "def b() {}")
	if db.IsValid("/src/a.ar", r1) {
		t.Fatal("changed content must invalidate the revision")
	}
	r3, _ := db.GetRevision("/src/a.ar")
	if r3 <= r1 {
		t.Fatalf("revision must grow: %d -> %d", r1, r3)
	}
}

func TestRevisionsAreGlobal(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/a.ar", "a")
	write(t, fs, "/b.ar", "b")
	ra, _ := db.GetRevision("/a.ar")
	rb, _ := db.GetRevision("/b.ar")
	if ra == rb {
		t.Fatal("distinct files must get distinct revisions")
	}
}

func TestMissingFile(t *testing.T) {
	db := New(memfs.New())
	if _, ok := db.GetRevision("/nope.ar"); ok {
		t.Fatal("missing file must have no revision")
	}
	if db.IsValid("/nope.ar", 0) {
		t.Fatal("missing file is never valid")
	}
	txn := db.Begin()
	f, err := db.Fetch("/nope.ar", txn)
	if err != nil || f != nil {
		t.Fatalf("Fetch missing = %v, %v", f, err)
	}
}

func TestTransactionPinsSnapshot(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/m.ar", "def one() {}")

	txn := db.Begin()
	f1, err := db.Fetch("/m.ar", txn)
	if err != nil {
		t.Fatal(err)
	}
	write(t, fs, "/m.ar", "def two() {}")

	f2, err := db.Fetch("/m.ar", txn)
	if err != nil {
		t.Fatal(err)
	}
	if f2 != f1 || string(f2.Content) != "def one() {}" {
		t.Fatalf("transaction must observe its first read, got %q", f2.Content)
	}

	other := db.Begin()
	f3, err := db.Fetch("/m.ar", other)
	if err != nil {
		t.Fatal(err)
	}
	if string(f3.Content) != "def two() {}" || f3.Revision <= f1.Revision {
		t.Fatalf("new transaction must see new content, got %q rev %d", f3.Content, f3.Revision)
	}
}

func TestTransactionPinsAbsence(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	txn := db.Begin()
	if f, _ := db.Fetch("/late.ar", txn); f != nil {
		t.Fatal("expected missing")
	}
	write(t, fs, "/late.ar", "x")
	if f, _ := db.Fetch("/late.ar", txn); f != nil {
		t.Fatal("absence must be pinned too")
	}
}

func TestUnknownTransaction(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/a.ar", "a")

	if _, err := db.Fetch("/a.ar", 42); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}
	txn := db.Begin()
	db.End(txn)
	if _, err := db.Fetch("/a.ar", txn); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("ended transaction must be rejected, got %v", err)
	}
}

func TestDeletedFileGetsNewRevisionOnReturn(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/d.ar", "same")
	r1, _ := db.GetRevision("/d.ar")

	if err := fs.Remove("/d.ar"); err != nil {
		t.Fatal(err)
	}
	if _, ok := db.GetRevision("/d.ar"); ok {
		t.Fatal("deleted file must have no revision")
	}
	write(t, fs, "/d.ar", "same")
	r2, ok := db.GetRevision("/d.ar")
	if !ok || r2 == r1 {
		t.Fatalf("recreated file must get a fresh revision: %d -> %d", r1, r2)
	}
}

func TestFetchNormalizes(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/crlf.ar", "\xEF\xBB\xBFdef a() {\r\n}\r\n")
	f, err := db.Fetch("/crlf.ar", db.Begin())
	if err != nil {
		t.Fatal(err)
	}
	if string(f.Content) != "def a() {\n}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags == 0 {
		t.Fatal("normalization flags must be recorded")
	}
}

func TestPathsAreCleaned(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/x/a.ar", "a")
	r1, ok1 := db.GetRevision("/x/./y/../a.ar")
	r2, ok2 := db.GetRevision("/x/a.ar")
	if !ok1 || !ok2 || r1 != r2 {
		t.Fatal("equivalent paths must share state")
	}
}

func TestPinned(t *testing.T) {
	fs := memfs.New()
	db := New(fs)
	write(t, fs, "/p.ar", "def a() {}")
	txn := db.Begin()

	if _, ok := db.Pinned("/p.ar", txn); ok {
		t.Fatal("nothing is pinned before the first fetch")
	}
	f, err := db.Fetch("/p.ar", txn)
	if err != nil {
		t.Fatal(err)
	}
	write(t, fs, "/p.ar", "def b() {}")
	if got, ok := db.Pinned("/./p.ar", txn); !ok || got != f {
		t.Fatal("pinned snapshot must be the first fetch")
	}

	_, _ = db.Fetch("/none.ar", txn)
	if got, ok := db.Pinned("/none.ar", txn); !ok || got != nil {
		t.Fatal("absence is pinned as nil")
	}

	db.End(txn)
	if _, ok := db.Pinned("/p.ar", txn); ok {
		t.Fatal("ended transaction pins nothing")
	}
}
