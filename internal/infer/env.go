package infer

import (
	"argon/internal/resolved"

	"github.com/benbjohnson/immutable"
)

// TypeEnv maps local slots to their types. It is persistent: Bind returns
// a new environment and leaves the receiver untouched.
type TypeEnv struct {
	m *immutable.Map // int -> InferType
}

func NewTypeEnv() TypeEnv {
	return TypeEnv{m: immutable.NewMap(nil)}
}

func (e TypeEnv) Bind(id resolved.LocalID, t InferType) TypeEnv {
	if e.m == nil {
		e = NewTypeEnv()
	}
	return TypeEnv{m: e.m.Set(int(id), t)}
}

func (e TypeEnv) Lookup(id resolved.LocalID) (InferType, bool) {
	if e.m == nil {
		return InferType{}, false
	}
	v, ok := e.m.Get(int(id))
	if !ok {
		return InferType{}, false
	}
	return v.(InferType), true
}

func (e TypeEnv) Len() int {
	if e.m == nil {
		return 0
	}
	return e.m.Len()
}
