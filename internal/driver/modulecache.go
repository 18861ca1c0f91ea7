package driver

import (
	"sync"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/infer"
	"argon/internal/resolved"
)

// checked is the outcome of resolving and inferring one parsed module.
type checked struct {
	module   *ast.Module
	resolved *resolved.Module
	funcs    []*infer.Function
	diags    []diag.Diagnostic
}

// ModuleCache remembers check results per path. A result is reused only
// while the Ast Cache keeps returning the very same module.
type ModuleCache struct {
	mu     sync.RWMutex
	byPath map[string]checked
	reused int
}

// NewModuleCache creates a ModuleCache with the given capacity hint.
func NewModuleCache(capHint int) *ModuleCache {
	return &ModuleCache{byPath: make(map[string]checked, capHint)}
}

// Get returns the result for path if it was computed from m.
func (c *ModuleCache) Get(path string, m *ast.Module) (checked, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.byPath[path]
	if !ok || rec.module != m {
		return checked{}, false
	}
	c.reused++
	return rec, true
}

func (c *ModuleCache) Put(path string, rec checked) {
	c.mu.Lock()
	c.byPath[path] = rec
	c.mu.Unlock()
}

// Forget drops path, e.g. after the file disappeared.
func (c *ModuleCache) Forget(path string) {
	c.mu.Lock()
	delete(c.byPath, path)
	c.mu.Unlock()
}

func (c *ModuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}

// Reused counts Get hits since creation.
func (c *ModuleCache) Reused() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reused
}
