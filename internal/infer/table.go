package infer

import (
	"fmt"

	"argon/internal/source"

	"fortio.org/safecast"
)

type varRecord struct {
	parent VarID
	value  *Concrete // только у корня
	class  VarClass
	origin source.Span
}

// UnifyTable is a union-find arena of type variables. Every record's parent
// is itself or a lower id, so chains always terminate.
// One table belongs to one inference pass.
type UnifyTable struct {
	vars []varRecord
}

func NewTable() *UnifyTable {
	return &UnifyTable{}
}

// Len returns the number of allocated variables.
func (t *UnifyTable) Len() int { return len(t.vars) }

// Fresh allocates an unrestricted variable.
func (t *UnifyTable) Fresh(origin source.Span) VarID {
	return t.FreshClass(ClassAny, origin)
}

// FreshClass allocates a variable restricted to class.
func (t *UnifyTable) FreshClass(class VarClass, origin source.Span) VarID {
	id := varID(len(t.vars))
	t.vars = append(t.vars, varRecord{parent: id, class: class, origin: origin})
	return id
}

func varID(n int) VarID {
	id, err := safecast.Conv[VarID](n)
	if err != nil {
		panic(fmt.Errorf("type variable overflow: %w", err))
	}
	return id
}

// find returns the root of v, compressing the path behind it.
func (t *UnifyTable) find(v VarID) VarID {
	root := v
	for t.vars[root].parent != root {
		root = t.vars[root].parent
	}
	for v != root {
		next := t.vars[v].parent
		t.vars[v].parent = root
		v = next
	}
	return root
}

// Root returns the representative of v.
func (t *UnifyTable) Root(v VarID) VarID { return t.find(v) }

// Class returns the class of v's equivalence set.
func (t *UnifyTable) Class(v VarID) VarClass { return t.vars[t.find(v)].class }

// Origin returns the span v was allocated for.
func (t *UnifyTable) Origin(v VarID) source.Span { return t.vars[v].origin }

// Resolve follows v to its concrete type, if bound.
func (t *UnifyTable) Resolve(v VarID) (Concrete, bool) {
	rec := t.vars[t.find(v)]
	if rec.value == nil {
		return Concrete{}, false
	}
	return *rec.value, true
}

// shallow replaces a variable by its root or by the type bound to it.
func (t *UnifyTable) shallow(it InferType) InferType {
	v, ok := it.Var()
	if !ok {
		return it
	}
	root := t.find(v)
	if val := t.vars[root].value; val != nil {
		return Resolved(*val)
	}
	return Var(root)
}

// Zonk substitutes everything known about it; free variables stay variables.
func (t *UnifyTable) Zonk(it InferType) InferType {
	return t.shallow(it)
}

// Unify makes a and b the same type.
func (t *UnifyTable) Unify(a, b InferType) error {
	if !a.IsValid() || !b.IsValid() {
		return nil
	}
	a, b = t.shallow(a), t.shallow(b)

	av, aVar := a.Var()
	bv, bVar := b.Var()
	switch {
	case aVar && bVar:
		if av == bv {
			return nil
		}
		class, ok := meet(t.vars[av].class, t.vars[bv].class)
		if !ok {
			return t.mismatch(a, b)
		}
		lo, hi := av, bv
		if hi < lo {
			lo, hi = hi, lo
		}
		t.vars[hi].parent = lo
		t.vars[lo].class = class
		return nil

	case aVar:
		return t.bind(av, a, b)

	case bVar:
		return t.bind(bv, a, b)
	}

	ac, _ := a.Concrete()
	bc, _ := b.Concrete()
	if ac.Type != bc.Type {
		return t.mismatch(a, b)
	}
	return nil
}

// bind sets root v to the concrete side of (a, b); a and b keep their order
// for error reporting.
func (t *UnifyTable) bind(v VarID, a, b InferType) error {
	c, ok := a.Concrete()
	if !ok {
		c, _ = b.Concrete()
	}
	if !t.vars[v].class.Accepts(c.Type) {
		return t.mismatch(a, b)
	}
	t.vars[v].value = &c
	return nil
}

func (t *UnifyTable) mismatch(a, b InferType) *TypeError {
	return &TypeError{
		Kind:      ErrMismatch,
		Left:      a,
		Right:     b,
		LeftDesc:  t.describe(a),
		RightDesc: t.describe(b),
		LeftSpan:  t.spanOf(a),
		RightSpan: t.spanOf(b),
	}
}

func (t *UnifyTable) describe(it InferType) string {
	if v, ok := it.Var(); ok {
		return t.Class(v).String()
	}
	return it.String()
}

func (t *UnifyTable) spanOf(it InferType) source.Span {
	if v, ok := it.Var(); ok {
		return t.vars[v].origin
	}
	c, _ := it.Concrete()
	return c.Span
}

// Finalize reports one Ambiguous error per unbound equivalence class.
func (t *UnifyTable) Finalize() []*TypeError {
	var errs []*TypeError
	for i := range t.vars {
		id := varID(i)
		if t.find(id) != id || t.vars[id].value != nil {
			continue
		}
		errs = append(errs, &TypeError{
			Kind:     ErrAmbiguous,
			Left:     Var(id),
			LeftDesc: t.vars[id].class.String(),
			LeftSpan: t.vars[id].origin,
			Span:     t.vars[id].origin,
		})
	}
	return errs
}

// Solve unifies constraints in order, collecting every failure, then
// finalizes the table. Ambiguity is only reported when no mismatch occurred.
func (t *UnifyTable) Solve(cs Constraints) []*TypeError {
	var errs []*TypeError
	for _, c := range cs {
		if err := t.Unify(c.Left, c.Right); err != nil {
			te, ok := err.(*TypeError)
			if !ok {
				te = &TypeError{Kind: ErrMismatch, Left: c.Left, Right: c.Right}
			}
			te.Span = c.Span
			errs = append(errs, te)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return t.Finalize()
}
