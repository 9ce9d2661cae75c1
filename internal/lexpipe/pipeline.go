package lexpipe

import (
	"fmt"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/retag"
	"github.com/opal-lang/lanius/internal/scan"
	"github.com/opal-lang/lanius/internal/token"
)

// Result bundles every intermediate buffer the pipeline produces, mirroring
// the shared device buffers of spec §3/§5: callers that only want the
// final token stream can ignore everything but Tokens, while diagnostic
// tooling (component M's DumpState) can inspect each stage.
type Result struct {
	FFinal []dfa.State
	Bounds []Boundary
	SAll   []int
	SKept  []int
	All    []AllEntry
	Kept   []KeptEntry
	Tokens []token.Token
}

// RejectError is LexReject (spec §7): some byte's transition function
// composition reached the Reject sink before end of input.
type RejectError struct {
	Offset int
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("lexpipe: rejected at byte offset %d", e.Offset)
}

// UnterminatedError is LexUnterminated (spec §7): end of input was reached
// in a non-accepting, non-Reject state.
type UnterminatedError struct {
	State dfa.State
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("lexpipe: unterminated token at EOF (state %d)", e.State)
}

// Run executes passes D, E, F, G, H, I over src in the order spec §2's
// control-flow diagram names, using the hierarchical scan engine for D and
// F and goroutine-bounded scatter kernels for G, exactly as
// internal/scan and this package's Compact document. It mirrors the
// oracle's error taxonomy (internal/dfa.Oracle.Lex) so that testable
// property 1 (GPU ≡ oracle) holds on the error path too, not just on
// successfully lexed input.
func Run(src []byte, t *dfa.Table) (*Result, error) {
	r := &Result{}

	n := len(src)
	if n == 0 {
		return r, nil
	}

	// D: parallel prefix scan over per-byte transition functions.
	funcs := byteFuncs(t)
	elems := make([]stateFunc, n)
	for i, b := range src {
		elems[i] = funcs[b]
	}
	scanned := scan.Inclusive(elems, identityFunc(t.NumStates), composeFunc)
	fFinal := make([]dfa.State, n)
	for i, f := range scanned {
		fFinal[i] = f[dfa.Start]
	}
	r.FFinal = fFinal

	for i, s := range fFinal {
		if s == dfa.Reject {
			return r, &RejectError{Offset: i}
		}
	}
	if last := fFinal[n-1]; !t.Accepting(last) && last != dfa.Reject {
		return r, &UnterminatedError{State: last}
	}

	// E: boundary classification.
	r.Bounds = Classify(src, fFinal, t)

	// F: pair-sum scan over (ALL,KEPT) counters.
	r.SAll, r.SKept = SumAllKept(r.Bounds)

	// G: compaction into dense ALL/KEPT arrays.
	r.All, r.Kept = Compact(r.Bounds, r.SAll, r.SKept)

	// H: retag LParen/LBracket in place over the dense KEPT kind sequence.
	kinds := make([]token.Kind, len(r.Kept))
	for i, k := range r.Kept {
		kinds[i] = k.Kind
	}
	retag.Kinds(kinds)
	for i := range r.Kept {
		r.Kept[i].Kind = kinds[i]
	}

	// I: token materialization.
	r.Tokens = Materialize(r.All, r.Kept)

	return r, nil
}
