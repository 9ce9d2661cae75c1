package parsetab

import (
	"testing"

	"github.com/opal-lang/lanius/internal/token"
)

func TestPairHeadersLengthIsNMinus1(t *testing.T) {
	tabs := BuildBracketTables()
	kinds := []token.Kind{token.LParen, token.Ident, token.RParen, token.EOF}
	headers := PairHeaders(kinds, tabs)
	if len(headers) != len(kinds)-1 {
		t.Fatalf("len(headers) = %d, want %d", len(headers), len(kinds)-1)
	}
}

func TestPairHeadersKeyedByFirstElement(t *testing.T) {
	tabs := BuildBracketTables()
	// (this=LParen, next=Ident) must push, matching Header(LParen, Ident)
	// directly: the action is keyed by "this", with "next" as lookahead
	// only (spec §4.J).
	kinds := []token.Kind{token.LParen, token.Ident}
	headers := PairHeaders(kinds, tabs)
	want := tabs.Header(token.LParen, token.Ident)
	if headers[0] != want {
		t.Errorf("headers[0] = %+v, want %+v", headers[0], want)
	}
}

func TestPairHeadersShortInputs(t *testing.T) {
	tabs := BuildBracketTables()
	if got := PairHeaders(nil, tabs); got != nil {
		t.Errorf("PairHeaders(nil) = %v, want nil", got)
	}
	if got := PairHeaders([]token.Kind{token.Ident}, tabs); got != nil {
		t.Errorf("PairHeaders(single) = %v, want nil (no adjacent pairs)", got)
	}
}
