package parser

import (
	"argon/internal/ast"
	"argon/internal/diag"
	"argon/internal/lexer"
	"argon/internal/source"
	"argon/internal/token"
)

type Options struct {
	// Reporter получает диагностики лексера; может быть nil.
	Reporter diag.Reporter
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile parses one registered file. The first syntax error aborts
// parsing and is returned as *ParseError.
func ParseFile(file *source.File, opts Options) (*ast.Module, error) {
	p := Parser{
		lx:   lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		file: file,
	}
	return p.parseModule()
}

// ParseSource parses src as an anonymous in-memory file.
func ParseSource(src string) (*ast.Module, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return ParseFile(fs.Get(id), Options{})
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect - ожидаем конкретный токен, иначе ParseError на следующем токене.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(code, what)
}

// unexpected строит ошибку по текущему токену.
func (p *Parser) unexpected(code diag.Code, what string) *ParseError {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.EOF:
		sp := source.Span{File: p.file.ID, Start: p.lastSpan.End, End: p.lastSpan.End}
		return &ParseError{
			Location: EOF,
			Span:     sp,
			Code:     diag.SynUnexpectedEOF,
			Message:  "expected " + what + ", found end of input",
		}
	case token.Invalid:
		return &ParseError{
			Location: Byte(tok.Span.Start),
			Span:     tok.Span,
			Code:     diag.SynUnexpectedToken,
			Message:  "expected " + what + ", found invalid token `" + tok.Text + "`",
		}
	}
	return &ParseError{
		Location: Byte(tok.Span.Start),
		Span:     tok.Span,
		Code:     code,
		Message:  "expected " + what + ", found " + describe(tok),
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.FloatLit:
		return tok.Kind.Describe() + " `" + tok.Text + "`"
	}
	return tok.Kind.Describe()
}

// module := func* EOF
func (p *Parser) parseModule() (*ast.Module, error) {
	mod := &ast.Module{File: p.file.ID}
	start := p.lx.Peek().Span
	for !p.at(token.EOF) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		mod.Funcs = append(mod.Funcs, fn)
	}
	mod.Span = start.Cover(p.lx.Peek().Span)
	return mod, nil
}
