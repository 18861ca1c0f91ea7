package infer

import (
	"fmt"

	"argon/internal/source"
	"argon/internal/types"
)

// VarID identifies a type variable inside one UnifyTable.
type VarID uint32

// VarClass restricts which concrete types a variable may be bound to.
type VarClass uint8

const (
	ClassAny VarClass = iota
	// ClassNumeric accepts every numeric type; integer literals start here.
	ClassNumeric
	// ClassFloat accepts f32 and f64; float literals start here.
	ClassFloat
)

func (c VarClass) String() string {
	switch c {
	case ClassNumeric:
		return "{integer}"
	case ClassFloat:
		return "{float}"
	}
	return "_"
}

// Accepts reports whether a variable of class c may be bound to t.
func (c VarClass) Accepts(t types.Type) bool {
	switch c {
	case ClassNumeric:
		return t.IsNumeric()
	case ClassFloat:
		return t.IsFloat()
	}
	return t.Kind != types.KindInvalid
}

// meet intersects two classes; ok is false when nothing satisfies both.
func meet(a, b VarClass) (VarClass, bool) {
	switch {
	case a == b:
		return a, true
	case a == ClassAny:
		return b, true
	case b == ClassAny:
		return a, true
	case a == ClassFloat || b == ClassFloat:
		// numeric ∩ float
		return ClassFloat, true
	}
	return ClassAny, false
}

// Concrete is a known type together with where it came from.
type Concrete struct {
	Type types.Type
	Span source.Span
	// Label marks synthetic types such as the implicit "void" of an empty block.
	Label string
}

type inferKind uint8

const (
	inferInvalid inferKind = iota
	inferVar
	inferResolved
)

// InferType is either a type variable or a resolved concrete type.
// The zero value is invalid.
type InferType struct {
	kind inferKind
	v    VarID
	c    Concrete
}

func Var(id VarID) InferType { return InferType{kind: inferVar, v: id} }

func Resolved(c Concrete) InferType { return InferType{kind: inferResolved, c: c} }

// ResolvedType wraps t without a source span.
func ResolvedType(t types.Type) InferType { return Resolved(Concrete{Type: t}) }

func (t InferType) IsValid() bool    { return t.kind != inferInvalid }
func (t InferType) IsVar() bool      { return t.kind == inferVar }
func (t InferType) IsResolved() bool { return t.kind == inferResolved }

// Var returns the variable id when t is a variable.
func (t InferType) Var() (VarID, bool) { return t.v, t.kind == inferVar }

// Concrete returns the concrete type when t is resolved.
func (t InferType) Concrete() (Concrete, bool) { return t.c, t.kind == inferResolved }

func (t InferType) String() string {
	switch t.kind {
	case inferVar:
		return fmt.Sprintf("?%d", t.v)
	case inferResolved:
		return t.c.Type.String()
	}
	return "<invalid>"
}

// Annotated pairs an IR node with its inferred type.
type Annotated[T any] struct {
	Node T
	Ty   InferType
}
