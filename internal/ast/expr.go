package ast

import "argon/internal/source"

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprInt
	ExprFloat
	ExprBool
	ExprIdent
	ExprBinary
	ExprGroup // (expr)
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprFloat:
		return "Float"
	case ExprBool:
		return "Bool"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprGroup:
		return "Group"
	}
	return "Invalid"
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota + 1
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// Expr is a tagged variant; only the fields relevant to Kind are set.
//
//	ExprInt    Text, Int
//	ExprFloat  Text, Float
//	ExprBool   Bool
//	ExprIdent  Text
//	ExprBinary Op, Left, Right
//	ExprGroup  Left
type Expr struct {
	Kind  ExprKind    `msgpack:"k"`
	Span  source.Span `msgpack:"s"`
	Text  string      `msgpack:"t,omitempty"`
	Int   uint64      `msgpack:"i,omitempty"`
	Float float64     `msgpack:"f,omitempty"`
	Bool  bool        `msgpack:"b,omitempty"`
	Op    BinaryOp    `msgpack:"op,omitempty"`
	Left  *Expr       `msgpack:"l,omitempty"`
	Right *Expr       `msgpack:"r,omitempty"`
}

func NewInt(text string, v uint64, sp source.Span) *Expr {
	return &Expr{Kind: ExprInt, Text: text, Int: v, Span: sp}
}

func NewFloat(text string, v float64, sp source.Span) *Expr {
	return &Expr{Kind: ExprFloat, Text: text, Float: v, Span: sp}
}

func NewBool(v bool, sp source.Span) *Expr {
	return &Expr{Kind: ExprBool, Bool: v, Span: sp}
}

func NewIdent(name string, sp source.Span) *Expr {
	return &Expr{Kind: ExprIdent, Text: name, Span: sp}
}

// NewBinary spans from the left operand to the right one.
func NewBinary(op BinaryOp, l, r *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Op: op, Left: l, Right: r, Span: l.Span.Cover(r.Span)}
}

func NewGroup(inner *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprGroup, Left: inner, Span: sp}
}
