package ast

import "argon/internal/source"

// Module is one parsed source file.
type Module struct {
	File  source.FileID `msgpack:"file"`
	Funcs []*Function   `msgpack:"funcs"`
	Span  source.Span   `msgpack:"span"`
}

// Function is `[export] def name(params) [-> type] { ... }`.
type Function struct {
	Name     string      `msgpack:"name"`
	NameSpan source.Span `msgpack:"name_span"`
	Exported bool        `msgpack:"exported,omitempty"`
	Params   []Param     `msgpack:"params"`
	Result   *TypeExpr   `msgpack:"result,omitempty"` // nil - void
	Body     *Block      `msgpack:"body"`
	Span     source.Span `msgpack:"span"`
}

type Param struct {
	Name string      `msgpack:"name"`
	Span source.Span `msgpack:"span"`
	Type TypeExpr    `msgpack:"type"`
}

// TypeExpr is a type written in source. The name is checked by later passes.
type TypeExpr struct {
	Name string      `msgpack:"name"`
	Span source.Span `msgpack:"span"`
}

type Block struct {
	Exprs []*Expr     `msgpack:"exprs"`
	Span  source.Span `msgpack:"span"`
}

// Func returns the first function called name.
func (m *Module) Func(name string) *Function {
	if m == nil {
		return nil
	}
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Exports returns exported functions in source order.
func (m *Module) Exports() []*Function {
	var out []*Function
	for _, f := range m.Funcs {
		if f.Exported {
			out = append(out, f)
		}
	}
	return out
}
