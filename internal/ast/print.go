package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree dump of m, used by `argon parse`.
func Fprint(w io.Writer, m *Module) error {
	p := printer{w: w}
	p.line(0, "Module (%d funcs)", len(m.Funcs))
	for _, f := range m.Funcs {
		p.fn(f)
	}
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", depth)}, args...)...)
}

func (p *printer) fn(f *Function) {
	ret := "void"
	if f.Result != nil {
		ret = f.Result.Name
	}
	vis := ""
	if f.Exported {
		vis = "export "
	}
	p.line(1, "%sdef %s -> %s @%d..%d", vis, f.Name, ret, f.Span.Start, f.Span.End)
	for _, prm := range f.Params {
		p.line(2, "param %s: %s", prm.Name, prm.Type.Name)
	}
	if f.Body == nil {
		return
	}
	p.line(2, "block (%d exprs)", len(f.Body.Exprs))
	for _, e := range f.Body.Exprs {
		p.expr(3, e)
	}
}

func (p *printer) expr(depth int, e *Expr) {
	switch e.Kind {
	case ExprInt, ExprFloat:
		p.line(depth, "%s %s", e.Kind, e.Text)
	case ExprBool:
		p.line(depth, "Bool %t", e.Bool)
	case ExprIdent:
		p.line(depth, "Ident %s", e.Text)
	case ExprBinary:
		p.line(depth, "Binary %s", e.Op)
		p.expr(depth+1, e.Left)
		p.expr(depth+1, e.Right)
	case ExprGroup:
		p.line(depth, "Group")
		p.expr(depth+1, e.Left)
	default:
		p.line(depth, "Invalid")
	}
}
