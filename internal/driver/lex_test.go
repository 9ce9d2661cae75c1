package driver

import (
	"errors"
	"testing"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/parsetab"
	"github.com/opal-lang/lanius/internal/token"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	ctx, err := NewInMemoryContext(table, parsetab.BuildBracketTables(), "", nil)
	if err != nil {
		t.Fatalf("NewInMemoryContext() error: %v", err)
	}
	return ctx
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gk := kindsOf(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d tokens %v, want %d kinds %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, gk[i], want[i])
		}
	}
}

// TestLexS1 through TestLexS6 and TestParseS7 are the spec's literal
// end-to-end scenarios (spec §8).
func TestLexS1(t *testing.T) {
	ctx := newTestContext(t)
	lexed, err := ctx.Lex([]byte("foo = 12 + bar/* x */(7) // c\n"), nil)
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	assertKinds(t, lexed.Tokens, []token.Kind{
		token.Ident, token.Assign, token.Int, token.Plus, token.Ident,
		token.CallLParen, token.Int, token.RParen,
	})
}

func TestLexS2(t *testing.T) {
	ctx := newTestContext(t)
	lexed, err := ctx.Lex([]byte("0x1F_00 + 0b1010 * 2.5e-1"), nil)
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	assertKinds(t, lexed.Tokens, []token.Kind{token.Int, token.Plus, token.Int, token.Star, token.Float})
}

func TestLexS3(t *testing.T) {
	ctx := newTestContext(t)
	lexed, err := ctx.Lex([]byte("a[0]"), nil)
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	assertKinds(t, lexed.Tokens, []token.Kind{token.Ident, token.IndexLBracket, token.Int, token.RBracket})
}

func TestLexS4(t *testing.T) {
	ctx := newTestContext(t)
	lexed, err := ctx.Lex([]byte("[1,2]"), nil)
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	assertKinds(t, lexed.Tokens, []token.Kind{token.ArrayLBracket, token.Int, token.Comma, token.Int, token.RBracket})
}

func TestLexS5(t *testing.T) {
	ctx := newTestContext(t)
	_, err := ctx.Lex([]byte(`s="hello`), nil)
	if err == nil {
		t.Fatal("expected LexUnterminated error")
	}
	if _, ok := err.(*LexUnterminatedError); !ok {
		t.Fatalf("error type = %T, want *LexUnterminatedError", err)
	}
}

func TestLexS6(t *testing.T) {
	ctx := newTestContext(t)
	_, err := ctx.Lex([]byte("a = 1 /* unterminated"), nil)
	if err == nil {
		t.Fatal("expected LexUnterminated error")
	}
	if _, ok := err.(*LexUnterminatedError); !ok {
		t.Fatalf("error type = %T, want *LexUnterminatedError", err)
	}
}

func TestParseS7(t *testing.T) {
	ctx := newTestContext(t)
	lexed, err := ctx.Lex([]byte("("), nil)
	if err != nil {
		t.Fatalf("Lex() error: %v", err)
	}
	result := ctx.Parse(kindsOf(lexed.Tokens), parsetab.Exact, true)
	if result.Valid.Valid {
		t.Error("valid = true, want false")
	}
	if result.Valid.FinalDepth != 1 {
		t.Errorf("final_depth = %d, want 1", result.Valid.FinalDepth)
	}
	if result.Valid.MinDepth != 0 {
		t.Errorf("min_depth = %d, want 0", result.Valid.MinDepth)
	}
}

// TestLexNegativeCorpus is ported from the original implementation's
// tests/neg_lex.rs (SPEC_FULL.md supplemented features): inputs that must
// fail with LexReject or LexUnterminated, not succeed or panic.
func TestLexNegativeCorpus(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"stray at-sign", "x @ y", ErrLexReject},
		{"stray backtick", "`", ErrLexReject},
		{"unterminated string", `"abc`, ErrLexUnterminated},
		{"unterminated char", "'a", ErrLexUnterminated},
		{"unterminated block comment", "/* abc", ErrLexUnterminated},
		{"backslash at eof inside string", `"abc\`, ErrLexUnterminated},
	}

	ctx := newTestContext(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ctx.Lex([]byte(c.src), nil)
			if err == nil {
				t.Fatalf("Lex(%q) succeeded, want error", c.src)
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("Lex(%q) error = %v, want wrapping %v", c.src, err, c.want)
			}
		})
	}
}

func TestLexInputTooLarge(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Config.MaxInputN = 4
	_, err := ctx.Lex([]byte("12345"), nil)
	if _, ok := err.(*InputTooLargeError); !ok {
		t.Fatalf("error type = %T, want *InputTooLargeError", err)
	}
}

func TestLexRejectHintEmptyForNonOperator(t *testing.T) {
	ctx := newTestContext(t)
	// '@' rejects outright; the two bytes starting there ("@ ") are not a
	// near miss for any known operator, so no hint should be attached.
	_, err := ctx.Lex([]byte("x @ y"), nil)
	re, ok := err.(*LexRejectError)
	if !ok {
		t.Fatalf("error type = %T, want *LexRejectError", err)
	}
	if re.Hint != "" {
		t.Errorf("Hint = %q, want empty for a non-operator reject", re.Hint)
	}
}
