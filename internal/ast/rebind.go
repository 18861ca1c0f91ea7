package ast

import "argon/internal/source"

// Rebind moves every span of m to file id. Used when a module decoded from
// the disk cache is attached to a freshly registered file version.
func (m *Module) Rebind(id source.FileID) {
	if m == nil {
		return
	}
	m.File = id
	m.Span = m.Span.WithFile(id)
	for _, f := range m.Funcs {
		f.NameSpan = f.NameSpan.WithFile(id)
		f.Span = f.Span.WithFile(id)
		for i := range f.Params {
			f.Params[i].Span = f.Params[i].Span.WithFile(id)
			f.Params[i].Type.Span = f.Params[i].Type.Span.WithFile(id)
		}
		if f.Result != nil {
			f.Result.Span = f.Result.Span.WithFile(id)
		}
		if f.Body != nil {
			f.Body.Span = f.Body.Span.WithFile(id)
			for _, e := range f.Body.Exprs {
				rebindExpr(e, id)
			}
		}
	}
}

func rebindExpr(e *Expr, id source.FileID) {
	for e != nil {
		e.Span = e.Span.WithFile(id)
		rebindExpr(e.Right, id)
		e = e.Left
	}
}
