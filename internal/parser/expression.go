package parser

import (
	"strconv"
	"strings"

	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/token"
)

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:  ast.OpAdd,
	token.Minus: ast.OpSub,
	token.Star:  ast.OpMul,
	token.Slash: ast.OpDiv,
}

// precedence: 1 для + -, 2 для * /
func precedence(k token.Kind) int {
	switch k {
	case token.Plus, token.Minus:
		return 1
	case token.Star, token.Slash:
		return 2
	}
	return 0
}

func (p *Parser) parseExpr() (*ast.Expr, error) {
	return p.parseBinary(1)
}

// precedence climbing, все операторы левоассоциативны
func (p *Parser) parseBinary(minPrec int) (*ast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.lx.Peek().Kind
		prec := precedence(op)
		if prec < minPrec || prec == 0 {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinary(binaryOps[op], lhs, rhs)
	}
}

func (p *Parser) parsePrimary() (*ast.Expr, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := parseInt(tok.Text)
		if err != nil {
			return nil, &ParseError{
				Location: Byte(tok.Span.Start),
				Span:     tok.Span,
				Code:     diag.LexBadNumber,
				Message:  "integer literal `" + tok.Text + "` does not fit in 64 bits",
			}
		}
		return ast.NewInt(tok.Text, v, tok.Span), nil
	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			return nil, &ParseError{
				Location: Byte(tok.Span.Start),
				Span:     tok.Span,
				Code:     diag.LexBadNumber,
				Message:  "malformed float literal `" + tok.Text + "`",
			}
		}
		return ast.NewFloat(tok.Text, v, tok.Span), nil
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.NewBool(tok.Kind == token.KwTrue, tok.Span), nil
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok.Text, tok.Span), nil
	case token.LParen:
		open := p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, diag.SynUnexpectedToken, "`)`"); err != nil {
			return nil, err
		}
		return ast.NewGroup(inner, open.Span.Cover(p.lastSpan)), nil
	}
	return nil, p.unexpected(diag.SynExpectExpression, "expression")
}

func parseInt(text string) (uint64, error) {
	digits := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	return strconv.ParseUint(digits, base, 64)
}
