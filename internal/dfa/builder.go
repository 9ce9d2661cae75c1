package dfa

import (
	"fmt"

	"github.com/opal-lang/lanius/internal/token"
)

// Builder assembles a streaming DFA one explicit edge at a time, then
// synthesizes the "emit-on-next-byte" edges for accepting states and the
// Reject fixed point, per spec §3/§9.
//
// Explicit edges are the grammar author's concern; this type only owns the
// mechanical closure described in §4.A. A concrete grammar for the toy
// C-like language lives in grammar.go.
type Builder struct {
	tokenMap []token.Kind
	edges    []map[byte]Edge // edges[state][byte] = explicit edge, if set
}

// NewBuilder returns a Builder pre-seeded with Start and Reject.
func NewBuilder() *Builder {
	b := &Builder{}
	s := b.NewState() // Start
	r := b.NewState() // Reject
	if s != Start || r != Reject {
		panic("dfa: Start/Reject state ids out of sync with builder")
	}
	return b
}

// NewState allocates a fresh non-accepting state.
func (b *Builder) NewState() State {
	b.tokenMap = append(b.tokenMap, token.Invalid)
	b.edges = append(b.edges, map[byte]Edge{})
	return State(len(b.tokenMap) - 1)
}

// Accept marks s as accepting with the given token kind.
func (b *Builder) Accept(s State, k token.Kind) {
	b.tokenMap[s] = k
}

// Edge records an explicit transition on a single byte.
func (b *Builder) Edge(s State, by byte, next State, emit bool) {
	b.edges[s][by] = Edge{Next: next, Emit: emit}
}

// EdgeRange records the same explicit transition for every byte in
// [lo,hi] inclusive; a convenience for character classes like digits or
// letters.
func (b *Builder) EdgeRange(s State, lo, hi byte, next State, emit bool) {
	for by := int(lo); by <= int(hi); by++ {
		b.Edge(s, byte(by), next, emit)
	}
}

// EdgeSet records the same explicit transition for each byte in set.
func (b *Builder) EdgeSet(s State, set []byte, next State, emit bool) {
	for _, by := range set {
		b.Edge(s, by, next, emit)
	}
}

// Build closes the table: accepting states fall back to Start's resolved
// row with emit=true on any byte without an explicit edge; non-accepting
// states (including Reject itself) fall back to a non-emitting self-loop
// into Reject. This is the invariant spec §3 calls the streaming-DFA
// contract and §9 calls the "emit-on-next-byte" trick.
func (b *Builder) Build() (*Table, error) {
	n := len(b.tokenMap)
	if n == 0 {
		return nil, fmt.Errorf("dfa: empty builder")
	}

	startRow := [256]Edge{}
	for by := 0; by < 256; by++ {
		if e, ok := b.edges[Start][byte(by)]; ok {
			startRow[by] = e
		} else {
			startRow[by] = Edge{Next: Reject, Emit: false}
		}
	}

	next := make([][256]Edge, n)
	next[Start] = startRow
	for s := 1; s < n; s++ {
		st := State(s)
		accepting := b.Accept0(st)
		for by := 0; by < 256; by++ {
			if e, ok := b.edges[s][byte(by)]; ok {
				next[s][by] = e
				continue
			}
			if accepting {
				next[s][by] = Edge{Next: startRow[by].Next, Emit: true}
			} else {
				next[s][by] = Edge{Next: Reject, Emit: false}
			}
		}
	}

	return &Table{
		NumStates: n,
		Next:      next,
		TokenMap:  append([]token.Kind(nil), b.tokenMap...),
	}, nil
}

// Accept0 reports whether s currently carries a token kind. Exported under
// this name (rather than shadowing Table.Accepting) because Builder has no
// finished Table yet.
func (b *Builder) Accept0(s State) bool {
	return b.tokenMap[s] != token.Invalid
}
