package token

import "testing"

func TestTokenEndAndLexeme(t *testing.T) {
	src := []byte("hello")
	tok := Token{Kind: Ident, Start: 0, Len: 5}
	if tok.End() != 5 {
		t.Errorf("End() = %d, want 5", tok.End())
	}
	if string(tok.Lexeme(src)) != "hello" {
		t.Errorf("Lexeme() = %q, want %q", tok.Lexeme(src), "hello")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Plus, Start: 3, Len: 1}
	want := "Plus[3:4]"
	if got := tok.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
