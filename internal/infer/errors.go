package infer

import (
	"fmt"

	"argon/internal/diag"
	"argon/internal/source"
	"argon/internal/types"
)

type ErrorKind uint8

const (
	// ErrMismatch: two types that must be equal are not.
	ErrMismatch ErrorKind = iota
	// ErrAmbiguous: a variable is still free after solving.
	ErrAmbiguous
	// ErrOperator: an operator is applied to a type it is not defined for.
	ErrOperator
	// ErrRange: an integer literal does not fit its inferred type.
	ErrRange
)

func (k ErrorKind) String() string {
	switch k {
	case ErrMismatch:
		return "mismatch"
	case ErrAmbiguous:
		return "ambiguous"
	case ErrOperator:
		return "operator"
	case ErrRange:
		return "range"
	}
	return "unknown"
}

// TypeError describes one inference failure. Left and Right are the
// offending types as seen at the time of failure; the *Desc fields render
// them, using the variable class for free variables.
type TypeError struct {
	Kind      ErrorKind
	Left      InferType
	Right     InferType
	LeftDesc  string
	RightDesc string
	LeftSpan  source.Span
	RightSpan source.Span
	// Span is the node the failure is reported at.
	Span source.Span

	Op      types.BinaryOp // ErrOperator
	Type    types.Type     // ErrOperator, ErrRange
	Literal string         // ErrRange
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case ErrMismatch:
		return fmt.Sprintf("mismatched types: %s and %s", e.LeftDesc, e.RightDesc)
	case ErrAmbiguous:
		if e.LeftDesc != ClassAny.String() {
			return fmt.Sprintf("cannot infer the type of this %s value", e.LeftDesc)
		}
		return "cannot infer the type of this expression"
	case ErrOperator:
		return fmt.Sprintf("operator %s is not defined for %s", e.Op, e.Type)
	case ErrRange:
		return fmt.Sprintf("literal %s does not fit in %s", e.Literal, e.Type)
	}
	return "type error"
}

// Code maps the error to its diagnostic code.
func (e *TypeError) Code() diag.Code {
	switch e.Kind {
	case ErrMismatch:
		return diag.SemaTypeMismatch
	case ErrAmbiguous:
		return diag.SemaAmbiguousType
	case ErrOperator:
		return diag.SemaBadOperand
	case ErrRange:
		return diag.SemaLiteralRange
	}
	return diag.SemaInfo
}

// Diagnostic converts the error; mismatches get a note per side.
func (e *TypeError) Diagnostic() diag.Diagnostic {
	primary := e.Span
	if primary == (source.Span{}) {
		primary = e.LeftSpan
	}
	d := diag.NewError(e.Code(), primary, e.Error())
	if e.Kind == ErrMismatch {
		if !e.LeftSpan.Empty() && e.LeftSpan != primary {
			d = d.WithNote(e.LeftSpan, "this is "+e.LeftDesc)
		}
		if !e.RightSpan.Empty() && e.RightSpan != primary {
			d = d.WithNote(e.RightSpan, "this is "+e.RightDesc)
		}
	}
	return d
}
