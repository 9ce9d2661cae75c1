package dfa

import (
	"fmt"

	"github.com/opal-lang/lanius/internal/token"
)

// emitBit marks the high bit of a packed 16-bit next_emit lane (spec §3/§4.A).
const emitBit = uint16(1) << 15

// invalidKind16 is the wire sentinel for token.Invalid in a packed token map.
const invalidKind16 = uint16(0xFFFF)

// Pack transposes Table into the wire's lane-major [byte][state] layout and
// packs each lane into 16 bits: low 15 bits next state, high bit emit.
func (t *Table) Pack() (nextEmit []uint16, tokenMap []uint16) {
	nextEmit = make([]uint16, 256*t.NumStates)
	for by := 0; by < 256; by++ {
		for s := 0; s < t.NumStates; s++ {
			e := t.Next[s][by]
			lane := uint16(e.Next) & 0x7FFF
			if e.Emit {
				lane |= emitBit
			}
			nextEmit[by*t.NumStates+s] = lane
		}
	}

	tokenMap = make([]uint16, t.NumStates)
	for s, k := range t.TokenMap {
		if k == token.Invalid {
			tokenMap[s] = invalidKind16
			continue
		}
		tokenMap[s] = uint16(k)
	}
	return nextEmit, tokenMap
}

// Unpack reconstructs a Table from the packed wire arrays produced by Pack,
// validating the lane count invariant from spec §4.A load-time checks.
func Unpack(nStates int, nextEmit, tokenMap []uint16) (*Table, error) {
	if len(nextEmit) != 256*nStates {
		return nil, fmt.Errorf("dfa: packed lane count %d != 256*%d", len(nextEmit), nStates)
	}
	if len(tokenMap) != nStates {
		return nil, fmt.Errorf("dfa: token map length %d != n_states %d", len(tokenMap), nStates)
	}

	next := make([][256]Edge, nStates)
	for by := 0; by < 256; by++ {
		for s := 0; s < nStates; s++ {
			lane := nextEmit[by*nStates+s]
			next[s][by] = Edge{
				Next: State(lane & 0x7FFF),
				Emit: lane&emitBit != 0,
			}
		}
	}

	km := make([]token.Kind, nStates)
	for s, v := range tokenMap {
		if v == invalidKind16 {
			km[s] = token.Invalid
		} else {
			km[s] = token.Kind(v)
		}
	}

	return &Table{NumStates: nStates, Next: next, TokenMap: km}, nil
}
