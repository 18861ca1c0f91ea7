package resolved

import (
	"argon/internal/source"
	"argon/internal/types"
)

// Module is the resolved form of one source file.
type Module struct {
	File  source.FileID
	Funcs []*Function
}

// Func returns the function called name, or nil.
func (m *Module) Func(name string) *Function {
	if m == nil {
		return nil
	}
	for _, fn := range m.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Function is a resolved function declaration.
type Function struct {
	ID       FuncID
	Name     string
	NameSpan source.Span
	Exported bool
	Params   []Param
	// Result is types.Void when the declaration has no `-> type`.
	Result     types.Type
	ResultSpan source.Span
	Body       Block
	Span       source.Span
	// Invalid is set when resolution reported an error inside the function.
	Invalid bool
}

// Param binds one local slot to its declared type.
type Param struct {
	Local    LocalID
	Name     string
	Type     types.Type
	Span     source.Span
	TypeSpan source.Span
}

// Param returns the parameter bound to id.
func (f *Function) Param(id LocalID) (Param, bool) {
	for _, p := range f.Params {
		if p.Local == id {
			return p, true
		}
	}
	return Param{}, false
}

// Block is a sequence of expressions; its value is the last one.
type Block struct {
	Exprs []*Expr
	Span  source.Span
}

func (b Block) IsEmpty() bool { return len(b.Exprs) == 0 }

// Last returns the final expression or nil for an empty block.
func (b Block) Last() *Expr {
	if len(b.Exprs) == 0 {
		return nil
	}
	return b.Exprs[len(b.Exprs)-1]
}
