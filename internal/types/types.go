// Package types describes the concrete value types of argon.
package types

import "fmt"

// Kind enumerates supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt
	KindUint
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats in bits.
type Width uint8

const (
	WidthAny Width = 0
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a concrete type. Values are comparable; == is structural equality.
type Type struct {
	Kind  Kind  `msgpack:"k"`
	Width Width `msgpack:"w,omitempty"`
}

var (
	Invalid = Type{}
	Void    = Type{Kind: KindVoid}
	Bool    = Type{Kind: KindBool}
	I32     = Type{Kind: KindInt, Width: Width32}
	I64     = Type{Kind: KindInt, Width: Width64}
	U32     = Type{Kind: KindUint, Width: Width32}
	U64     = Type{Kind: KindUint, Width: Width64}
	F32     = Type{Kind: KindFloat, Width: Width32}
	F64     = Type{Kind: KindFloat, Width: Width64}
)

// Numeric lists every numeric type in declaration order.
var Numeric = []Type{I32, I64, U32, U64, F32, F64}

var builtinNames = map[string]Type{
	"i32":  I32,
	"i64":  I64,
	"u32":  U32,
	"u64":  U64,
	"f32":  F32,
	"f64":  F64,
	"bool": Bool,
}

// Lookup resolves a built-in type name.
func Lookup(name string) (Type, bool) {
	t, ok := builtinNames[name]
	return t, ok
}

func (t Type) String() string {
	switch t.Kind {
	case KindInt:
		return fmt.Sprintf("i%d", t.Width)
	case KindUint:
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	default:
		return t.Kind.String()
	}
}

func (t Type) IsNumeric() bool  { return t.Family()&FamilyNumeric != 0 }
func (t Type) IsIntegral() bool { return t.Family()&FamilyIntegral != 0 }
func (t Type) IsFloat() bool    { return t.Kind == KindFloat }

// FitsUint reports whether the non-negative literal v is representable in t.
// Floats accept everything; precision loss is not an error.
func (t Type) FitsUint(v uint64) bool {
	switch t.Kind {
	case KindInt:
		return v <= uint64(1)<<(t.Width-1)-1
	case KindUint:
		if t.Width == Width64 {
			return true
		}
		return v <= uint64(1)<<t.Width-1
	case KindFloat:
		return true
	}
	return false
}
