package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"export": KwExport,
	"true":   KwTrue,
	"false":  KwFalse,
}

var spelling = map[Kind]string{
	KwDef:     "def",
	KwExport:  "export",
	KwTrue:    "true",
	KwFalse:   "false",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Colon:     ":",
	Semicolon: ";",
	Comma:     ",",
	Arrow:     "->",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
