package resolved_test

import (
	"bytes"
	"strings"
	"testing"

	"argon/internal/diag"
	"argon/internal/parser"
	"argon/internal/resolved"
	"argon/internal/types"
)

func lower(t *testing.T, src string) (*resolved.Module, []diag.Diagnostic) {
	t.Helper()
	m, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return resolved.Lower(m)
}

func TestLowerIdentity(t *testing.T) {
	m, diags := lower(t, "export def id(x: i32) -> i32 { x }")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	fn := m.Func("id")
	if fn == nil {
		t.Fatal("id not lowered")
	}
	if !fn.Exported || fn.Invalid || fn.Result != types.I32 {
		t.Fatalf("bad function header: %+v", fn)
	}
	if len(fn.Params) != 1 || fn.Params[0].Local != 1 || fn.Params[0].Type != types.I32 {
		t.Fatalf("params = %+v", fn.Params)
	}
	last := fn.Body.Last()
	if last == nil || last.Kind != resolved.ExprLocal || last.Local != 1 {
		t.Fatalf("body = %+v", fn.Body.Exprs)
	}
}

func TestLowerVoidResult(t *testing.T) {
	m, _ := lower(t, "def noop() {}")
	fn := m.Func("noop")
	if fn.Result != types.Void || !fn.Body.IsEmpty() || fn.Body.Last() != nil {
		t.Fatalf("noop = %+v", fn)
	}
}

func TestLowerStripsGroups(t *testing.T) {
	m, diags := lower(t, "def f(a: i64, b: i64) -> i64 { ((a)) * (b + 1) }")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := resolved.FormatExpr(m.Func("f").Body.Last())
	if got != "(%1 * (%2 + 1))" {
		t.Fatalf("got %s", got)
	}
}

func TestLowerDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unresolved", "def f(a: i32) -> i32 { b }", diag.ResUnresolvedName},
		{"duplicate param", "def f(a: i32, a: i64) {}", diag.ResDuplicateParam},
		{"unknown param type", "def f(a: int) {}", diag.ResUnknownType},
		{"unknown result type", "def f() -> string {}", diag.ResUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, diags := lower(t, tt.src)
			if len(diags) != 1 || diags[0].Code != tt.code {
				t.Fatalf("diags = %+v, want one %s", diags, tt.code.ID())
			}
			if fn := m.Func("f"); fn == nil || !fn.Invalid {
				t.Fatal("function must be kept and marked invalid")
			}
		})
	}
}

func TestLowerDuplicateFunction(t *testing.T) {
	m, diags := lower(t, "def f() {}\ndef g() {}\ndef f(x: i32) {}")
	if len(diags) != 1 || diags[0].Code != diag.ResDuplicateFunction {
		t.Fatalf("diags = %+v", diags)
	}
	if len(diags[0].Notes) != 1 {
		t.Fatal("duplicate must point at the first declaration")
	}
	if len(m.Funcs) != 2 || len(m.Func("f").Params) != 0 {
		t.Fatal("the first declaration wins")
	}
	if m.Funcs[0].ID == m.Funcs[1].ID {
		t.Fatal("function ids must be distinct")
	}
}

func TestDump(t *testing.T) {
	m, _ := lower(t, "export def add(a: u32, b: u32) -> u32 { a + b; true }")
	var buf bytes.Buffer
	if err := resolved.Dump(&buf, m); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"export fn#1 add(%1 a: u32, %2 b: u32) -> u32", "(%1 + %2)", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
