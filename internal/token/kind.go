package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit
	FloatLit

	KwDef
	KwExport
	KwTrue
	KwFalse

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	KwDef:     "KwDef",
	KwExport:  "KwExport",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Arrow:     "Arrow",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the user-facing spelling used in parse errors.
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case Invalid:
		return "invalid token"
	}
	if s, ok := spelling[k]; ok {
		return "`" + s + "`"
	}
	return k.String()
}
