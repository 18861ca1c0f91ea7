package lexer

import (
	"argon/internal/diag"
	"argon/internal/token"
)

var singleByteOps = [256]token.Kind{
	'+': token.Plus,
	'*': token.Star,
	'/': token.Slash,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := singleByteOps[b]
	if b == '-' {
		kind = token.Minus
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	}

	if kind == token.Invalid {
		// вернуть курсор и съесть руну целиком, чтобы span не резал UTF-8
		lx.cursor.Reset(start)
		r, sz := lx.peekRune()
		lx.bumpRune(sz)
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteRune(r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
