package parsetab

import (
	"testing"

	"github.com/opal-lang/lanius/internal/token"
)

func TestBuildBracketTablesPushPop(t *testing.T) {
	tabs := BuildBracketTables()

	h := tabs.Header(token.LParen, token.RParen)
	if h.PushLen != 1 {
		t.Errorf("LParen PushLen = %d, want 1", h.PushLen)
	}
	if h.PopCount != 0 {
		t.Errorf("LParen PopCount = %d, want 0 (it's a push, not a pop)", h.PopCount)
	}

	h2 := tabs.Header(token.RParen, token.Ident)
	if h2.PushLen != 0 {
		t.Errorf("RParen PushLen = %d, want 0", h2.PushLen)
	}
	if h2.PopCount != 1 || token.Kind(h2.PopTag) != token.LParen {
		t.Errorf("RParen header = %+v, want PopCount=1 PopTag=LParen", h2)
	}
}

func TestBuildBracketTablesCanonicalizesRetaggedOpens(t *testing.T) {
	tabs := BuildBracketTables()
	plain := tabs.Header(token.LParen, token.EOF)
	call := tabs.Header(token.CallLParen, token.EOF)
	group := tabs.Header(token.GroupLParen, token.EOF)

	if call.PushLen != plain.PushLen || group.PushLen != plain.PushLen {
		t.Error("retagged LParen variants must push the same as plain LParen")
	}
}

func TestBuildBracketTablesNonBracketIsInert(t *testing.T) {
	tabs := BuildBracketTables()
	h := tabs.Header(token.Plus, token.Int)
	if h.PushLen != 0 || h.PopCount != 0 {
		t.Errorf("non-bracket kind header = %+v, want zero push/pop", h)
	}
}
