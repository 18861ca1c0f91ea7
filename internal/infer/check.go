package infer

import (
	"argon/internal/resolved"
	"argon/internal/source"
	"argon/internal/types"
)

// Function is a fully typed function: every annotated node of Body is
// resolved to a concrete type.
type Function struct {
	Source *resolved.Function
	Params []types.Type
	Result types.Type
	Body   *Block
	// Vars is the number of type variables the pass allocated.
	Vars int
}

// TypeOf returns the concrete type behind a, or types.Invalid for a variable.
func TypeOf(a InferType) types.Type {
	c, ok := a.Concrete()
	if !ok {
		return types.Invalid
	}
	return c.Type
}

// Type returns the concrete type of e.
func (e *Expr) Type() types.Type { return TypeOf(e.Ty) }

// Type returns the concrete type of b.
func (b *Block) Type() types.Type { return TypeOf(b.Ty) }

// CheckFunction infers the body of fn against its declared signature.
// All errors of the pass are returned together; on error the result is nil.
func CheckFunction(fn *resolved.Function) (*Function, []*TypeError) {
	table := NewTable()
	env := NewTypeEnv()
	params := make([]types.Type, 0, len(fn.Params))
	for _, p := range fn.Params {
		env = env.Bind(p.Local, Resolved(Concrete{Type: p.Type, Span: p.TypeSpan}))
		params = append(params, p.Type)
	}

	body := AnnotateBlock(fn.Body, table, env)

	ret := Concrete{Type: fn.Result, Span: fn.ResultSpan}
	if ret.Span == (source.Span{}) {
		// без `-> type` функция возвращает void
		ret.Span = fn.NameSpan
		ret.Label = "void"
	}
	cs := body.Constraints()
	cs = append(cs, Constraint{Left: body.Ty, Right: Resolved(ret), Span: bodySpan(body)})

	if errs := table.Solve(cs); len(errs) > 0 {
		return nil, errs
	}

	ZonkBlock(table, body)
	if errs := validate(body); len(errs) > 0 {
		return nil, errs
	}
	return &Function{
		Source: fn,
		Params: params,
		Result: fn.Result,
		Body:   body,
		Vars:   table.Len(),
	}, nil
}

func bodySpan(b *Block) source.Span {
	if len(b.Exprs) > 0 {
		return b.Exprs[len(b.Exprs)-1].Node.Span
	}
	return b.Node.Span
}

// ZonkBlock replaces every type in b by what table knows about it.
func ZonkBlock(table *UnifyTable, b *Block) {
	b.Ty = table.Zonk(b.Ty)
	for _, e := range b.Exprs {
		zonkExpr(table, e)
	}
}

func zonkExpr(table *UnifyTable, e *Expr) {
	if e == nil {
		return
	}
	e.Ty = table.Zonk(e.Ty)
	zonkExpr(table, e.Left)
	zonkExpr(table, e.Right)
}

// validate checks what unification cannot express: operator domains and
// literal ranges.
func validate(b *Block) []*TypeError {
	var errs []*TypeError
	var walk func(e *Expr)
	walk = func(e *Expr) {
		if e == nil {
			return
		}
		walk(e.Left)
		walk(e.Right)
		switch e.Node.Kind {
		case resolved.ExprBinary:
			if t := e.Type(); !e.Node.Op.Accepts(t) {
				errs = append(errs, &TypeError{
					Kind:     ErrOperator,
					Left:     e.Ty,
					LeftDesc: t.String(),
					LeftSpan: e.Node.Span,
					Span:     e.Node.Span,
					Op:       e.Node.Op,
					Type:     t,
				})
			}
		case resolved.ExprInt:
			if t := e.Type(); !t.FitsUint(e.Node.Int) {
				errs = append(errs, &TypeError{
					Kind:     ErrRange,
					Left:     e.Ty,
					LeftDesc: t.String(),
					LeftSpan: e.Node.Span,
					Span:     e.Node.Span,
					Type:     t,
					Literal:  e.Node.Text,
				})
			}
		}
	}
	for _, e := range b.Exprs {
		walk(e)
	}
	return errs
}
