package infer

import (
	"argon/internal/resolved"
	"argon/internal/source"
	"argon/internal/types"
)

// Expr is an annotated expression. Binary expressions carry both operands.
type Expr struct {
	Annotated[*resolved.Expr]
	Left, Right *Expr
}

// Block is an annotated block; Ty is the block's own variable.
type Block struct {
	Annotated[resolved.Block]
	Exprs []*Expr
}

// LastTy is the type of the final expression, or a synthetic void for an
// empty block.
func (b *Block) LastTy() InferType {
	if len(b.Exprs) == 0 {
		end := b.Node.Span.End
		return Resolved(Concrete{
			Type:  types.Void,
			Span:  source.Span{File: b.Node.Span.File, Start: end, End: end},
			Label: "void",
		})
	}
	return b.Exprs[len(b.Exprs)-1].Ty
}

// AnnotateBlock annotates every expression of block, then gives the block
// one fresh variable.
func AnnotateBlock(block resolved.Block, table *UnifyTable, env TypeEnv) *Block {
	out := &Block{Exprs: make([]*Expr, 0, len(block.Exprs))}
	for _, e := range block.Exprs {
		out.Exprs = append(out.Exprs, AnnotateExpr(e, table, env))
	}
	out.Node = block
	out.Ty = Var(table.Fresh(block.Span))
	return out
}

// AnnotateExpr annotates e bottom-up.
func AnnotateExpr(e *resolved.Expr, table *UnifyTable, env TypeEnv) *Expr {
	out := &Expr{}
	out.Node = e

	switch e.Kind {
	case resolved.ExprInt:
		out.Ty = Var(table.FreshClass(ClassNumeric, e.Span))
	case resolved.ExprFloat:
		out.Ty = Var(table.FreshClass(ClassFloat, e.Span))
	case resolved.ExprBool:
		out.Ty = Resolved(Concrete{Type: types.Bool, Span: e.Span})
	case resolved.ExprLocal:
		if t, ok := env.Lookup(e.Local); ok {
			out.Ty = t
		} else {
			out.Ty = Var(table.Fresh(e.Span))
		}
	case resolved.ExprBinary:
		out.Left = AnnotateExpr(e.Left, table, env)
		out.Right = AnnotateExpr(e.Right, table, env)
		out.Ty = Var(table.Fresh(e.Span))
	default:
		// неразрешённое выражение
		out.Ty = Var(table.Fresh(e.Span))
	}
	return out
}
