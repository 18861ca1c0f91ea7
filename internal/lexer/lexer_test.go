package lexer_test

import (
	"testing"

	"argon/internal/diag"
	"argon/internal/lexer"
	"argon/internal/source"
	"argon/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ar", []byte(input))
	bag := diag.NewBag(0)
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: bag}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexFunction(t *testing.T) {
	lx, bag := makeTestLexer("export def id(x: i32) -> i32 { x }")
	got := kinds(lx.All())
	want := []token.Kind{
		token.KwExport, token.KwDef, token.Ident, token.LParen, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Arrow, token.Ident, token.LBrace, token.Ident,
		token.RBrace, token.EOF,
	}
	if !equalKinds(got, want) {
		t.Fatalf("kinds = %v\nwant    %v", got, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexSpans(t *testing.T) {
	lx, _ := makeTestLexer("def plus(x: i32, y)")
	toks := lx.All()
	// def plus ( x : i32 , y )
	y := toks[7]
	if y.Text != "y" || y.Span.Start != 17 || y.Span.End != 18 {
		t.Fatalf("unexpected y token: %+v", y)
	}
	if toks[8].Kind != token.RParen || toks[8].Span.Start != 18 {
		t.Fatalf("unexpected rparen: %+v", toks[8])
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		text string
	}{
		{"42", token.IntLit, "42"},
		{"1_000", token.IntLit, "1_000"},
		{"0xFF", token.IntLit, "0xFF"},
		{"0b1010", token.IntLit, "0b1010"},
		{"0o17", token.IntLit, "0o17"},
		{"1.5", token.FloatLit, "1.5"},
		{"2e10", token.FloatLit, "2e10"},
		{"3.25E-2", token.FloatLit, "3.25E-2"},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.in)
		tok := lx.Next()
		if tok.Kind != tt.kind || tok.Text != tt.text {
			t.Errorf("%q: got %v %q", tt.in, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.in)
		}
		if lx.Next().Kind != token.EOF {
			t.Errorf("%q: expected EOF", tt.in)
		}
	}
}

func TestLexBadNumber(t *testing.T) {
	for _, in := range []string{"0x", "1e+"} {
		lx, bag := makeTestLexer(in)
		if tok := lx.Next(); tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", in, tok.Kind)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected one LexBadNumber diagnostic", in)
		}
	}
}

func TestLexTrivia(t *testing.T) {
	lx, _ := makeTestLexer("// head\n/* a /* nested */ b */  def")
	tok := lx.Next()
	if tok.Kind != token.KwDef {
		t.Fatalf("expected def, got %v", tok.Kind)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if len(tok.Leading) != len(want) {
		t.Fatalf("leading = %+v", tok.Leading)
	}
	for i, k := range want {
		if tok.Leading[i].Kind != k {
			t.Errorf("trivia[%d] = %v, want %v", i, tok.Leading[i].Kind, k)
		}
	}
}

func TestLexUnterminatedComment(t *testing.T) {
	lx, bag := makeTestLexer("/* never closed")
	if lx.Next().Kind != token.EOF {
		t.Fatal("expected EOF")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestLexUnknownChar(t *testing.T) {
	lx, bag := makeTestLexer("x # y")
	toks := lx.All()
	if toks[1].Kind != token.Invalid || toks[1].Span.Start != 2 || toks[1].Span.End != 3 {
		t.Fatalf("unexpected invalid token: %+v", toks[1])
	}
	if toks[2].Kind != token.Ident {
		t.Fatal("lexing must continue after an invalid character")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestLexNFCIdentifiers(t *testing.T) {
	lx, _ := makeTestLexer("cafe\u0301 caf\u00e9")
	a, b := lx.Next(), lx.Next()
	if a.Kind != token.Ident || b.Kind != token.Ident {
		t.Fatalf("kinds: %v %v", a.Kind, b.Kind)
	}
	if a.Text != b.Text {
		t.Fatalf("identifiers differ after NFC: %q vs %q", a.Text, b.Text)
	}
	if a.Span.End-a.Span.Start != 6 {
		t.Fatalf("span must cover original bytes, got %v", a.Span)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Text != "a" || lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatal("peek must not consume")
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatal("EOF must be sticky")
	}
}
