package parser

import (
	"fmt"

	"argon/internal/diag"
	"argon/internal/source"
)

// Location is where parsing failed: a byte offset or the end of input.
type Location struct {
	eof    bool
	offset uint32
}

// Byte returns a location at byte offset n.
func Byte(n uint32) Location { return Location{offset: n} }

// EOF is the end-of-input location.
var EOF = Location{eof: true}

func (l Location) IsEOF() bool { return l.eof }

// Offset returns the byte offset; ok is false for EOF.
func (l Location) Offset() (uint32, bool) {
	return l.offset, !l.eof
}

func (l Location) String() string {
	if l.eof {
		return "EOF"
	}
	return fmt.Sprintf("Byte(%d)", l.offset)
}

// ParseError is the first syntax error of a file. Parsing stops there.
type ParseError struct {
	Location Location
	Span     source.Span
	Code     diag.Code
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Location, e.Message)
}

// Diagnostic converts the error for diag.Bag.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message)
}
