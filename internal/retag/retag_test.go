package retag

import (
	"testing"

	"github.com/opal-lang/lanius/internal/token"
)

func TestKindsGroupVsCall(t *testing.T) {
	// "(x)" : LParen has no preceding primary -> Group.
	got := Kinds([]token.Kind{token.LParen, token.Ident, token.RParen})
	want := []token.Kind{token.GroupLParen, token.Ident, token.RParen}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestKindsCallAfterIdent(t *testing.T) {
	// "f(x)" : LParen immediately follows an Ident -> Call.
	got := Kinds([]token.Kind{token.Ident, token.LParen, token.Ident, token.RParen})
	if got[1] != token.CallLParen {
		t.Errorf("got[1] = %s, want CallLParen", got[1])
	}
}

func TestKindsIndexVsArray(t *testing.T) {
	// "a[0]" : LBracket follows Ident -> Index.
	got := Kinds([]token.Kind{token.Ident, token.LBracket, token.Int, token.RBracket})
	if got[1] != token.IndexLBracket {
		t.Errorf("got[1] = %s, want IndexLBracket", got[1])
	}

	// "[0]" : LBracket at start -> Array.
	got2 := Kinds([]token.Kind{token.LBracket, token.Int, token.RBracket})
	if got2[0] != token.ArrayLBracket {
		t.Errorf("got2[0] = %s, want ArrayLBracket", got2[0])
	}
}

func TestKindsChainedCalls(t *testing.T) {
	// "f()()" : the first call's RParen ends a primary, so the second
	// LParen is also a Call.
	got := Kinds([]token.Kind{token.Ident, token.LParen, token.RParen, token.LParen, token.RParen})
	if got[1] != token.CallLParen {
		t.Errorf("got[1] = %s, want CallLParen", got[1])
	}
	if got[3] != token.CallLParen {
		t.Errorf("got[3] = %s, want CallLParen", got[3])
	}
}

func TestKindsLeavesOtherKindsAlone(t *testing.T) {
	got := Kinds([]token.Kind{token.Plus, token.Int, token.Semicolon})
	want := []token.Kind{token.Plus, token.Int, token.Semicolon}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
