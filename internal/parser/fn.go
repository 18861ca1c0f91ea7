package parser

import (
	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/token"
)

// func := ["export"] "def" ident "(" params ")" ["->" type] block
func (p *Parser) parseFunction() (*ast.Function, error) {
	fn := &ast.Function{}
	start := p.lx.Peek().Span
	if p.eat(token.KwExport) {
		fn.Exported = true
	}
	if _, err := p.expect(token.KwDef, diag.SynUnexpectedToken, "`def`"); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "function name")
	if err != nil {
		return nil, err
	}
	fn.Name, fn.NameSpan = name.Text, name.Span

	if _, err := p.expect(token.LParen, diag.SynUnexpectedToken, "`(`"); err != nil {
		return nil, err
	}
	if fn.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynUnexpectedToken, "`)` or `,`"); err != nil {
		return nil, err
	}

	if p.eat(token.Arrow) {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn.Result = &ty
	}

	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	fn.Span = start.Cover(p.lastSpan)
	return fn, nil
}

// params := [param {"," param}]
func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.at(token.RParen) {
		return params, nil
	}
	for {
		name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, diag.SynExpectType, "`:` and parameter type"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Text, Span: name.Span, Type: ty})
		if !p.eat(token.Comma) {
			return params, nil
		}
	}
}

// type := ident. Имя проверяется резолвером.
func (p *Parser) parseType() (ast.TypeExpr, error) {
	tok, err := p.expect(token.Ident, diag.SynExpectType, "type")
	if err != nil {
		return ast.TypeExpr{}, err
	}
	return ast.TypeExpr{Name: tok.Text, Span: tok.Span}, nil
}

// block := "{" {expr [";"]} "}"
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(token.LBrace, diag.SynUnexpectedToken, "`{`")
	if err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.at(token.RBrace) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		block.Exprs = append(block.Exprs, e)
		p.eat(token.Semicolon)
	}
	p.advance()
	block.Span = open.Span.Cover(p.lastSpan)
	return block, nil
}
