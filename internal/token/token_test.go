package token_test

import (
	"testing"

	"argon/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want token.Kind
		ok   bool
	}{
		{"def", token.KwDef, true},
		{"export", token.KwExport, true},
		{"true", token.KwTrue, true},
		{"false", token.KwFalse, true},
		{"Def", token.Invalid, false},
		{"i32", token.Invalid, false},
	}
	for _, tt := range tests {
		k, ok := token.LookupKeyword(tt.in)
		if ok != tt.ok || (ok && k != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v, %v", tt.in, k, ok)
		}
	}
}

func TestClassification(t *testing.T) {
	for _, k := range []token.Kind{token.Plus, token.Minus, token.Star, token.Slash} {
		if !(token.Token{Kind: k}).IsBinaryOp() {
			t.Errorf("%v must be a binary operator", k)
		}
	}
	if (token.Token{Kind: token.Arrow}).IsBinaryOp() {
		t.Error("Arrow is not a binary operator")
	}
	if !(token.Token{Kind: token.KwTrue}).IsLiteral() || !(token.Token{Kind: token.KwTrue}).IsKeyword() {
		t.Error("true is both keyword and literal")
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Error("Ident is not a literal")
	}
}

func TestDescribe(t *testing.T) {
	tests := map[token.Kind]string{
		token.EOF:    "end of input",
		token.RParen: "`)`",
		token.Arrow:  "`->`",
		token.Ident:  "identifier",
		token.KwDef:  "`def`",
	}
	for k, want := range tests {
		if got := k.Describe(); got != want {
			t.Errorf("%v.Describe() = %q, want %q", k, got, want)
		}
	}
}
