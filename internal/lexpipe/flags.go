package lexpipe

import (
	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/token"
)

// Flag bits for a single byte position, spec §3 "Flags-per-position".
type Flag uint32

const (
	Emit     Flag = 1 << 0
	EOF      Flag = 1 << 1
	KeepEmit Flag = 1 << 2
	KeepEOF  Flag = 1 << 3
)

// Boundary is a per-position classification result (component E, PassE):
// which boundaries close at this position and which kinds they carry. It
// is the Go-native equivalent of the spec's three parallel arrays
// (flags_packed, tok_types, end_excl_by_i): the same information, grouped
// per position instead of striped across three buffers, since there is no
// device memory-layout constraint to honor in a CPU simulation.
type Boundary struct {
	Flags    Flag
	EmitKind token.Kind // token.Invalid if Flags&Emit == 0
	EOFKind  token.Kind // token.Invalid if Flags&EOF == 0
}

// Classify runs PassE: for every position i, using prevState =
// fFinal[i-1] (or dfa.Start if i==0) and nextState = fFinal[i], determine
// whether a token boundary closes here and whether it is the final
// end-of-input boundary.
func Classify(src []byte, fFinal []dfa.State, t *dfa.Table) []Boundary {
	n := len(src)
	out := make([]Boundary, n)
	prev := dfa.Start
	for i := 0; i < n; i++ {
		next := fFinal[i]
		edge := t.Step(prev, src[i])

		var b Boundary
		b.EmitKind, b.EOFKind = token.Invalid, token.Invalid
		if edge.Emit {
			b.Flags |= Emit
			b.EmitKind = t.TokenMap[prev]
			if !b.EmitKind.IsSkip() {
				b.Flags |= KeepEmit
			}
		}
		if i == n-1 && t.Accepting(next) {
			b.Flags |= EOF
			b.EOFKind = t.TokenMap[next]
			if !b.EOFKind.IsSkip() {
				b.Flags |= KeepEOF
			}
		}
		out[i] = b
		prev = next
	}
	return out
}
