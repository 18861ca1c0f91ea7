package resolved

import (
	"fmt"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/types"
)

// Lower resolves names and declared types of an AST module.
// It performs minimal desugaring:
// - Removes ExprGroup (parentheses) by unwrapping
// - Replaces parameter names with local slots
//
// Functions with resolution errors are kept and marked Invalid; duplicate
// declarations after the first are dropped.
func Lower(m *ast.Module) (*Module, []diag.Diagnostic) {
	if m == nil {
		return nil, nil
	}
	l := &lowerer{
		module:   &Module{File: m.File},
		nextFnID: 1,
		seen:     make(map[string]*ast.Function, len(m.Funcs)),
	}
	for _, fn := range m.Funcs {
		l.lowerFunction(fn)
	}
	return l.module, l.diags
}

type lowerer struct {
	module   *Module
	diags    []diag.Diagnostic
	nextFnID FuncID
	seen     map[string]*ast.Function
}

// scope maps a name to its slot inside one function.
type scope map[string]LocalID

func (l *lowerer) report(d diag.Diagnostic) {
	l.diags = append(l.diags, d)
}

func (l *lowerer) lowerFunction(fn *ast.Function) {
	if prev, dup := l.seen[fn.Name]; dup {
		l.report(diag.NewError(diag.ResDuplicateFunction, fn.NameSpan,
			fmt.Sprintf("function %q is already declared", fn.Name)).
			WithNote(prev.NameSpan, "previous declaration here"))
		return
	}
	l.seen[fn.Name] = fn

	out := &Function{
		ID:       l.nextFnID,
		Name:     fn.Name,
		NameSpan: fn.NameSpan,
		Exported: fn.Exported,
		Result:   types.Void,
		Span:     fn.Span,
	}
	l.nextFnID++

	sc := make(scope, len(fn.Params))
	declared := make(map[string]int, len(fn.Params))
	for i, p := range fn.Params {
		local := LocalID(i + 1)
		ty, ok := l.lookupType(p.Type)
		if !ok {
			out.Invalid = true
		}
		if first, dup := declared[p.Name]; dup {
			l.report(diag.NewError(diag.ResDuplicateParam, p.Span,
				fmt.Sprintf("parameter %q is declared twice", p.Name)).
				WithNote(fn.Params[first].Span, "first declared here"))
			out.Invalid = true
		} else {
			declared[p.Name] = i
			sc[p.Name] = local
		}
		out.Params = append(out.Params, Param{
			Local:    local,
			Name:     p.Name,
			Type:     ty,
			Span:     p.Span,
			TypeSpan: p.Type.Span,
		})
	}

	if fn.Result != nil {
		ty, ok := l.lookupType(*fn.Result)
		if !ok {
			out.Invalid = true
		}
		out.Result = ty
		out.ResultSpan = fn.Result.Span
	}

	if fn.Body != nil {
		out.Body.Span = fn.Body.Span
		for _, e := range fn.Body.Exprs {
			re := l.lowerExpr(e, sc)
			if containsInvalid(re) {
				out.Invalid = true
			}
			out.Body.Exprs = append(out.Body.Exprs, re)
		}
	}
	l.module.Funcs = append(l.module.Funcs, out)
}

func (l *lowerer) lookupType(te ast.TypeExpr) (types.Type, bool) {
	ty, ok := types.Lookup(te.Name)
	if !ok {
		l.report(diag.NewError(diag.ResUnknownType, te.Span,
			fmt.Sprintf("unknown type %q", te.Name)))
		return types.Invalid, false
	}
	return ty, true
}

func (l *lowerer) lowerExpr(e *ast.Expr, sc scope) *Expr {
	// скобки исчезают
	for e != nil && e.Kind == ast.ExprGroup {
		e = e.Left
	}
	if e == nil {
		return &Expr{Kind: ExprInvalid}
	}

	switch e.Kind {
	case ast.ExprInt:
		return &Expr{Kind: ExprInt, Span: e.Span, Text: e.Text, Int: e.Int}
	case ast.ExprFloat:
		return &Expr{Kind: ExprFloat, Span: e.Span, Text: e.Text, Float: e.Float}
	case ast.ExprBool:
		return &Expr{Kind: ExprBool, Span: e.Span, Bool: e.Bool}
	case ast.ExprIdent:
		local, ok := sc[e.Text]
		if !ok {
			l.report(diag.NewError(diag.ResUnresolvedName, e.Span,
				fmt.Sprintf("cannot find %q in this scope", e.Text)))
			return &Expr{Kind: ExprInvalid, Span: e.Span, Text: e.Text}
		}
		return &Expr{Kind: ExprLocal, Span: e.Span, Text: e.Text, Local: local}
	case ast.ExprBinary:
		return &Expr{
			Kind:  ExprBinary,
			Span:  e.Span,
			Op:    lowerOp(e.Op),
			Left:  l.lowerExpr(e.Left, sc),
			Right: l.lowerExpr(e.Right, sc),
		}
	}
	return &Expr{Kind: ExprInvalid, Span: e.Span}
}

func lowerOp(op ast.BinaryOp) types.BinaryOp {
	switch op {
	case ast.OpAdd:
		return types.OpAdd
	case ast.OpSub:
		return types.OpSub
	case ast.OpMul:
		return types.OpMul
	case ast.OpDiv:
		return types.OpDiv
	}
	return types.OpInvalid
}

func containsInvalid(e *Expr) bool {
	bad := false
	Walk(e, func(x *Expr) {
		if x.Kind == ExprInvalid {
			bad = true
		}
	})
	return bad
}
