package astcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/project"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when diskPayload or ast layout changes.
const diskSchemaVersion uint16 = 2

// DiskCache stores parsed modules by content digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Record is what the disk cache keeps per content digest.
type Record struct {
	Module      *ast.Module       `msgpack:"module"`
	Diagnostics []diag.Diagnostic `msgpack:"diags,omitempty"`
}

type diskPayload struct {
	Schema uint16         `msgpack:"schema"`
	Digest project.Digest `msgpack:"digest"`
	Record Record         `msgpack:"record"`
}

// DefaultDir returns $XDG_CACHE_HOME/argon or ~/.cache/argon.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "argon"), nil
}

// OpenDiskCache creates dir if needed. An empty dir means DefaultDir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open disk cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "ast", fmt.Sprintf("v%d", diskSchemaVersion), key.String()+".mp")
}

// Put writes m and its lexer diagnostics under key, replacing any previous
// payload atomically.
func (c *DiskCache) Put(key project.Digest, m *ast.Module, diags []diag.Diagnostic) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&diskPayload{
		Schema: diskSchemaVersion,
		Digest: key,
		Record: Record{Module: m, Diagnostics: diags},
	}); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get returns the record stored under key. A missing or foreign payload is
// a miss; a corrupt one is a miss with an error.
func (c *DiskCache) Get(key project.Digest) (Record, bool, error) {
	if c == nil {
		return Record{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return Record{}, false, fmt.Errorf("decode %s: %w", f.Name(), err)
	}
	if payload.Schema != diskSchemaVersion || payload.Digest != key || payload.Record.Module == nil {
		return Record{}, false, nil
	}
	return payload.Record, true, nil
}

// DropAll removes every cached payload.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "ast"))
}
