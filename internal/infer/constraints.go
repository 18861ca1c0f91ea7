package infer

import (
	"fmt"
	"strings"

	"argon/internal/source"
)

// Constraint requires Left and Right to be the same type.
type Constraint struct {
	Left, Right InferType
	Span        source.Span
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s = %s", c.Left, c.Right)
}

// Constraints is an ordered sequence; order decides which error is found first.
type Constraints []Constraint

// Concat returns c followed by other.
func (c Constraints) Concat(other Constraints) Constraints {
	out := make(Constraints, 0, len(c)+len(other))
	out = append(out, c...)
	return append(out, other...)
}

func (c Constraints) String() string {
	parts := make([]string, len(c))
	for i, x := range c {
		parts[i] = x.String()
	}
	return strings.Join(parts, "; ")
}

// Constraints relates the block's variable to its last type, then lists
// the constraints of every expression in order.
func (b *Block) Constraints() Constraints {
	span := b.Node.Span
	if len(b.Exprs) > 0 {
		span = b.Exprs[len(b.Exprs)-1].Node.Span
	}
	cs := Constraints{{Left: b.LastTy(), Right: b.Ty, Span: span}}
	for _, e := range b.Exprs {
		cs = e.appendConstraints(cs)
	}
	return cs
}

// Constraints of a single expression tree.
func (e *Expr) Constraints() Constraints {
	return e.appendConstraints(nil)
}

func (e *Expr) appendConstraints(cs Constraints) Constraints {
	if e.Left == nil || e.Right == nil {
		// константы и переменные уже несут свой тип
		return cs
	}
	cs = append(cs,
		Constraint{Left: e.Left.Ty, Right: e.Right.Ty, Span: e.Node.Span},
		Constraint{Left: e.Ty, Right: e.Left.Ty, Span: e.Node.Span},
	)
	cs = e.Left.appendConstraints(cs)
	return e.Right.appendConstraints(cs)
}
