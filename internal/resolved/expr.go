package resolved

import (
	"argon/internal/source"
	"argon/internal/types"
)

// ExprKind enumerates resolved expression kinds.
type ExprKind uint8

const (
	// ExprInvalid stands in for an expression that failed to resolve.
	ExprInvalid ExprKind = iota
	ExprInt
	ExprFloat
	ExprBool
	// ExprLocal reads a parameter slot.
	ExprLocal
	ExprBinary
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprFloat:
		return "Float"
	case ExprBool:
		return "Bool"
	case ExprLocal:
		return "Local"
	case ExprBinary:
		return "Binary"
	}
	return "Invalid"
}

// Expr is a resolved expression node.
//
//	ExprInt    Text, Int
//	ExprFloat  Text, Float
//	ExprBool   Bool
//	ExprLocal  Text (source name), Local
//	ExprBinary Op, Left, Right
type Expr struct {
	Kind  ExprKind
	Span  source.Span
	Text  string
	Int   uint64
	Float float64
	Bool  bool
	Local LocalID
	Op    types.BinaryOp
	Left  *Expr
	Right *Expr
}

// Walk visits e and its operands in post-order.
func Walk(e *Expr, fn func(*Expr)) {
	if e == nil {
		return
	}
	Walk(e.Left, fn)
	Walk(e.Right, fn)
	fn(e)
}
