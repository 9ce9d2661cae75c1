// Package lexpipe implements the GPU-simulated half of the lexer pipeline:
// the boundary classifier (E), the pair-sum scan wrapper (F), the
// compaction kernels (G), the retag kernel (H, delegated to
// internal/retag), and token materialization (I) — everything between the
// DFA scan (internal/scan + internal/dfa) and the final token stream.
package lexpipe

import "github.com/opal-lang/lanius/internal/dfa"

// stateFunc is a dense state->state map, the scan element type for
// component D: it represents phi_b, the (emit-stripped) transition
// function for one byte, or the composition of a prefix of such functions.
// Emit is deliberately not carried here; the boundary classifier (E)
// re-derives it by indexing the DFA table directly with prev_state and the
// byte at that position, exactly as spec §4.E specifies.
type stateFunc []dfa.State

func identityFunc(n int) stateFunc {
	f := make(stateFunc, n)
	for s := range f {
		f[s] = dfa.State(s)
	}
	return f
}

// composeFunc returns "f then g": result(s) = g(f(s)).
func composeFunc(f, g stateFunc) stateFunc {
	out := make(stateFunc, len(f))
	for s, mid := range f {
		out[s] = g[mid]
	}
	return out
}

// byteFuncs precomputes, for every byte value, the dense transition
// function phi_b derived from t, so the scan's per-position elements are
// cheap slice lookups rather than 256-way branches.
func byteFuncs(t *dfa.Table) [256]stateFunc {
	var funcs [256]stateFunc
	for b := 0; b < 256; b++ {
		f := make(stateFunc, t.NumStates)
		for s := 0; s < t.NumStates; s++ {
			f[s] = t.Next[s][b].Next
		}
		funcs[b] = f
	}
	return funcs
}
