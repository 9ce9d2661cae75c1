// Package retag implements component H: contextual rewriting of LParen and
// LBracket into their Call/Group and Index/Array variants, based solely on
// the previous kept token's kind (spec §4.H, §9 "LParen retag determinism").
package retag

import "github.com/opal-lang/lanius/internal/token"

// Kinds rewrites kinds in place (left to right, so it is safe to call on the
// dense compacted kind array directly) and returns it for chaining.
//
// The spec allows a parallel two-pass formulation where each element only
// reads its immediate predecessor in the dense array; a single sequential
// pass produces the identical result and is what this function does, since
// the array is already fully materialized by the time retag runs.
func Kinds(kinds []token.Kind) []token.Kind {
	prevEndsPrimary := false
	for i, k := range kinds {
		switch k {
		case token.LParen:
			if prevEndsPrimary {
				kinds[i] = token.CallLParen
			} else {
				kinds[i] = token.GroupLParen
			}
		case token.LBracket:
			if prevEndsPrimary {
				kinds[i] = token.IndexLBracket
			} else {
				kinds[i] = token.ArrayLBracket
			}
		}
		prevEndsPrimary = kinds[i].EndsPrimary()
	}
	return kinds
}
