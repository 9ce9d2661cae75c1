package lexpipe

import "github.com/opal-lang/lanius/internal/token"

// Materialize runs PassI: build the final (kind, start, len) token records
// from the dense ALL and KEPT arrays. A kept token's start is the end of
// the ALL-stream boundary immediately preceding its own (0 if it is the
// very first ALL boundary in the stream); its exclusive end is its own
// KEPT end position. This is the "recover start from the preceding ALL
// end, in one lookup" trick the AllIndex field exists for — no separate
// start-tracking array is needed for either the ALL or the KEPT stream.
func Materialize(all []AllEntry, kept []KeptEntry) []token.Token {
	out := make([]token.Token, len(kept))
	for k, ke := range kept {
		var start uint32
		if ke.AllIndex > 1 {
			start = all[ke.AllIndex-2].End
		}
		out[k] = token.Token{
			Kind:  ke.Kind,
			Start: start,
			Len:   ke.End - start,
		}
	}
	return out
}
