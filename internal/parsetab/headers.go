package parsetab

import "github.com/opal-lang/lanius/internal/token"

// PairHeaders runs PassJ: for every adjacent token-kind pair (kinds[i],
// kinds[i+1]), look up the precomputed ActionHeader triggered by kinds[i]
// with kinds[i+1] as lookahead. For N kinds there are N-1 pairs (spec
// §4.J); callers that want the last real token's own action to fire (e.g.
// a trailing unmatched open-bracket) append token.EOF as a sentinel
// before calling PairHeaders, so every real token appears at least once in
// the "this" position of a pair.
func PairHeaders(kinds []token.Kind, t *PrecomputedParseTables) []ActionHeader {
	if len(kinds) < 2 {
		return nil
	}
	out := make([]ActionHeader, len(kinds)-1)
	for i := 0; i < len(kinds)-1; i++ {
		out[i] = t.Header(kinds[i], kinds[i+1])
	}
	return out
}
