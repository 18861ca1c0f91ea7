package types

import "testing"

func TestLookupAndString(t *testing.T) {
	for _, name := range []string{"i32", "i64", "u32", "u64", "f32", "f64", "bool"} {
		ty, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if ty.String() != name {
			t.Fatalf("%q round-trips to %q", name, ty.String())
		}
	}
	if _, ok := Lookup("int"); ok {
		t.Fatal("int is not a built-in")
	}
	if Void.String() != "void" {
		t.Fatalf("Void = %q", Void)
	}
}

func TestStructuralEquality(t *testing.T) {
	a, _ := Lookup("i32")
	if a != I32 {
		t.Fatal("looked-up i32 must equal I32")
	}
	if I32 == I64 || I32 == U32 || F32 == I32 {
		t.Fatal("distinct types compare equal")
	}
}

func TestOperatorAccepts(t *testing.T) {
	for _, op := range []BinaryOp{OpAdd, OpSub, OpMul, OpDiv} {
		for _, ty := range Numeric {
			if !op.Accepts(ty) {
				t.Errorf("%s must accept %s", op, ty)
			}
		}
		if op.Accepts(Bool) || op.Accepts(Void) {
			t.Errorf("%s must reject bool and void", op)
		}
	}
}

func TestFitsUint(t *testing.T) {
	tests := []struct {
		ty   Type
		v    uint64
		want bool
	}{
		{I32, 1<<31 - 1, true},
		{I32, 1 << 31, false},
		{U32, 1<<32 - 1, true},
		{U32, 1 << 32, false},
		{I64, 1<<63 - 1, true},
		{I64, 1 << 63, false},
		{U64, ^uint64(0), true},
		{F32, ^uint64(0), true},
		{Bool, 0, false},
	}
	for _, tt := range tests {
		if got := tt.ty.FitsUint(tt.v); got != tt.want {
			t.Errorf("%s.FitsUint(%d) = %v, want %v", tt.ty, tt.v, got, tt.want)
		}
	}
}
