package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilySignedInt
	FamilyUnsignedInt
	FamilyFloat
)

const (
	FamilyIntegral = FamilySignedInt | FamilyUnsignedInt
	FamilyNumeric  = FamilyIntegral | FamilyFloat
)

// Family returns the family bit of t.
func (t Type) Family() FamilyMask {
	switch t.Kind {
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilySignedInt
	case KindUint:
		return FamilyUnsignedInt
	case KindFloat:
		return FamilyFloat
	}
	return FamilyNone
}

// BinaryOp enumerates arithmetic operators.
type BinaryOp uint8

const (
	OpInvalid BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// BinaryRule lists the operand family an operator accepts. Both operands
// and the result share one type.
type BinaryRule struct {
	Operands FamilyMask
}

var binaryRules = map[BinaryOp]BinaryRule{
	OpAdd: {Operands: FamilyNumeric},
	OpSub: {Operands: FamilyNumeric},
	OpMul: {Operands: FamilyNumeric},
	OpDiv: {Operands: FamilyNumeric},
}

// Accepts reports whether op is defined for operands of type t.
func (op BinaryOp) Accepts(t Type) bool {
	rule, ok := binaryRules[op]
	return ok && rule.Operands&t.Family() != 0
}
