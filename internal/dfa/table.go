// Package dfa builds and serializes the streaming DFA transition table that
// drives the whole pipeline (spec §4.A) and provides the sequential CPU
// oracle (§4.B) used as a reference implementation and test fixture.
package dfa

import (
	"fmt"

	"github.com/opal-lang/lanius/internal/token"
)

// State is an element of the fixed state set Q. |Q| <= 128 in practice and
// fits in 15 bits, per spec §3.
type State int16

// Start is the DFA's initial state; Reject is its dedicated non-accepting
// sink, a fixed point under every byte.
const (
	Start  State = 0
	Reject State = 1
)

// Edge is the packed per-(byte,state) transition: next state plus the emit
// flag marking a maximal-munch token boundary closing before this byte is
// consumed.
type Edge struct {
	Next State
	Emit bool
}

// Table is the in-memory streaming DFA: a dense next[state][byte] transition
// grid plus a per-state token map. It is the runtime form produced by
// Builder.Build and consumed by both the CPU oracle and the GPU-simulated
// pipeline; Pack/Unpack (compact.go) convert it to and from the wire format
// in spec §4.A/§6.
type Table struct {
	NumStates int
	// Next is indexed [state][byte] for cache-friendly sequential scans over
	// a single state's row; Pack transposes it to the wire's [byte][state]
	// layout.
	Next     [][256]Edge
	TokenMap []token.Kind // token.Invalid for non-accepting states
}

// Accepting reports whether s maps to a real token kind.
func (t *Table) Accepting(s State) bool {
	return t.TokenMap[s] != token.Invalid
}

// Step applies one transition, returning the next state and whether this
// byte's edge closed a token.
func (t *Table) Step(s State, b byte) Edge {
	return t.Next[s][b]
}

func (t *Table) String() string {
	return fmt.Sprintf("dfa.Table{states=%d}", t.NumStates)
}
