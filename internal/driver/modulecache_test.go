package driver

import (
	"testing"

	"argon/internal/ast"
)

func TestModuleCacheHitMiss(t *testing.T) {
	c := NewModuleCache(4)
	m1 := &ast.Module{}
	m2 := &ast.Module{}

	c.Put("/m/x.ar", checked{module: m1})
	if _, ok := c.Get("/m/x.ar", m2); ok {
		t.Fatal("expected miss for another module value")
	}
	if _, ok := c.Get("/m/y.ar", m1); ok {
		t.Fatal("expected miss for unknown path")
	}
	rec, ok := c.Get("/m/x.ar", m1)
	if !ok || rec.module != m1 {
		t.Fatal("expected hit")
	}
	if c.Reused() != 1 {
		t.Fatalf("reused = %d, want 1", c.Reused())
	}

	c.Forget("/m/x.ar")
	if c.Len() != 0 {
		t.Fatalf("len = %d after forget", c.Len())
	}
}
