package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexBadNumber           Code = 1002
	LexUnterminatedComment Code = 1003

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005

	// Разрешение имён
	ResInfo              Code = 3000
	ResUnresolvedName    Code = 3001
	ResDuplicateParam    Code = 3002
	ResDuplicateFunction Code = 3003
	ResUnknownType       Code = 3004

	// Вывод типов
	SemaInfo          Code = 4000
	SemaTypeMismatch  Code = 4001
	SemaAmbiguousType Code = 4002
	SemaBadOperand    Code = 4003
	SemaLiteralRange  Code = 4004

	// Ввод-вывод
	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOFileNotFound  Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexUnknownChar:         "Unknown character",
		LexBadNumber:           "Malformed number literal",
		LexUnterminatedComment: "Unterminated block comment",
		SynInfo:                "Syntax information",
		SynUnexpectedToken:     "Unexpected token",
		SynUnexpectedEOF:       "Unexpected end of input",
		SynExpectIdentifier:    "Expected identifier",
		SynExpectType:          "Expected type",
		SynExpectExpression:    "Expected expression",
		ResInfo:                "Resolution information",
		ResUnresolvedName:      "Unresolved name",
		ResDuplicateParam:      "Duplicate parameter",
		ResDuplicateFunction:   "Duplicate function",
		ResUnknownType:         "Unknown type",
		SemaInfo:               "Semantic information",
		SemaTypeMismatch:       "Type mismatch",
		SemaAmbiguousType:      "Type cannot be inferred",
		SemaBadOperand:         "Operator not defined for type",
		SemaLiteralRange:       "Literal out of range",
		IOInfo:                 "I/O information",
		IOLoadFileError:        "I/O load file error",
		IOFileNotFound:         "File not found",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
