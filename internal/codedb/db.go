package codedb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"argon/internal/project"
	"argon/internal/source"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Revision is a monotonically increasing content version marker.
type Revision uint64

// TransactionID scopes reads to one snapshot.
type TransactionID uint64

// ErrUnknownTransaction is returned for reads under a transaction that was
// never begun or already ended.
var ErrUnknownTransaction = errors.New("unknown transaction")

// File is a snapshot of one path as seen by a transaction.
type File struct {
	Path     string
	Content  []byte // нормализованное содержимое
	Revision Revision
	Digest   project.Digest
	Flags    source.FileFlags
}

type observed struct {
	rev    Revision
	digest project.Digest
}

// DB serves files from a billy.Filesystem.
type DB struct {
	fs billy.Filesystem

	mu      sync.RWMutex
	rev     Revision
	files   map[string]observed
	txns    map[TransactionID]map[string]*File // nil *File - файл отсутствовал
	nextTxn TransactionID
}

// New wraps fs. Paths passed to DB methods are cleaned slash paths.
func New(fs billy.Filesystem) *DB {
	return &DB{
		fs:    fs,
		files: make(map[string]observed),
		txns:  make(map[TransactionID]map[string]*File),
	}
}

// OpenOS serves the real file system; absolute paths are used as-is.
func OpenOS() *DB {
	return New(osfs.New("/"))
}

// Filesystem exposes the underlying file system.
func (db *DB) Filesystem() billy.Filesystem { return db.fs }

// Begin opens a transaction.
func (db *DB) Begin() TransactionID {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.nextTxn++
	db.txns[db.nextTxn] = make(map[string]*File)
	return db.nextTxn
}

// End releases everything pinned by txn.
func (db *DB) End(txn TransactionID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.txns, txn)
}

// GetRevision returns the current revision of p, or false if p does not exist
// or cannot be read.
func (db *DB) GetRevision(p string) (Revision, bool) {
	f, err := db.observe(clean(p))
	if err != nil || f == nil {
		return 0, false
	}
	return f.Revision, true
}

// IsValid reports whether rev is still the current revision of p.
func (db *DB) IsValid(p string, rev Revision) bool {
	cur, ok := db.GetRevision(p)
	return ok && cur == rev
}

// Fetch returns the snapshot of p under txn; nil, nil when p does not exist.
// The first fetch of a path pins it for the rest of the transaction.
func (db *DB) Fetch(p string, txn TransactionID) (*File, error) {
	p = clean(p)

	db.mu.RLock()
	pinned, known := db.txns[txn]
	var (
		f      *File
		seenIn bool
	)
	if known {
		f, seenIn = pinned[p]
	}
	db.mu.RUnlock()

	if !known {
		return nil, fmt.Errorf("fetch %s: %w %d", p, ErrUnknownTransaction, txn)
	}
	if seenIn {
		return f, nil
	}

	f, err := db.observe(p)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	pinned, known = db.txns[txn]
	if !known {
		return nil, fmt.Errorf("fetch %s: %w %d", p, ErrUnknownTransaction, txn)
	}
	// другой вызов мог закрепить файл раньше
	if prev, ok := pinned[p]; ok {
		return prev, nil
	}
	pinned[p] = f
	return f, nil
}

// Pinned returns the snapshot txn already holds for p without reading the
// file. A nil *File with true means txn saw p missing.
func (db *DB) Pinned(p string, txn TransactionID) (*File, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	f, ok := db.txns[txn][clean(p)]
	return f, ok
}

// observe reads p from disk and assigns a revision; nil, nil if missing.
func (db *DB) observe(p string) (*File, error) {
	raw, err := readFile(db.fs, p)
	if errors.Is(err, os.ErrNotExist) {
		db.mu.Lock()
		delete(db.files, p)
		db.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}

	content, flags := source.Normalize(raw)
	digest := project.DigestOf(content)

	db.mu.Lock()
	defer db.mu.Unlock()
	st, ok := db.files[p]
	if !ok || st.digest != digest {
		db.rev++
		st = observed{rev: db.rev, digest: digest}
		db.files[p] = st
	}
	return &File{Path: p, Content: content, Revision: st.rev, Digest: digest, Flags: flags}, nil
}

func readFile(fs billy.Filesystem, p string) ([]byte, error) {
	fi, err := fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", p)
	}
	f, err := fs.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
