package token

import "argon/internal/source"

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDef, KwExport, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsBinaryOp reports whether the token is an arithmetic operator.
func (t Token) IsBinaryOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
