package dfa

import (
	"fmt"

	"github.com/opal-lang/lanius/internal/retag"
	"github.com/opal-lang/lanius/internal/token"
)

// RejectError is LexReject (spec §7): the DFA entered the Reject sink.
type RejectError struct {
	Offset int
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("dfa: rejected at byte offset %d", e.Offset)
}

// UnterminatedError is LexUnterminated (spec §7): EOF was reached in a
// non-accepting, non-Reject state (an open string/char/block comment).
type UnterminatedError struct {
	Offset int
	State  State
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("dfa: unterminated token starting before byte offset %d (state %d at EOF)", e.Offset, e.State)
}

// Oracle is the sequential reference implementation of the streaming DFA
// walk (spec §4.B): the ground truth that the GPU-simulated pipeline must
// match bit-for-bit (testable property 1).
type Oracle struct {
	Table *Table
}

// NewOracle binds a compiled Table to a sequential walker.
func NewOracle(t *Table) *Oracle {
	return &Oracle{Table: t}
}

// Lex walks src byte by byte and returns the KEPT, retagged token stream.
// Skip kinds (White, LineComment, BlockComment) are never included in the
// result, matching the GPU pipeline's KEPT output.
func (o *Oracle) Lex(src []byte) ([]token.Token, error) {
	var all []token.Token

	state := Start
	tokStart := 0
	n := len(src)

	for i := 0; i < n; i++ {
		e := o.Table.Step(state, src[i])
		if e.Emit {
			k := o.Table.TokenMap[state]
			all = append(all, token.Token{Kind: k, Start: uint32(tokStart), Len: uint32(i - tokStart)})
			tokStart = i
		}
		if e.Next == Reject {
			return nil, &RejectError{Offset: i}
		}
		state = e.Next
	}

	if n > 0 || state != Start {
		if o.Table.Accepting(state) {
			all = append(all, token.Token{Kind: o.Table.TokenMap[state], Start: uint32(tokStart), Len: uint32(n - tokStart)})
		} else if state != Reject {
			return nil, &UnterminatedError{Offset: tokStart, State: state}
		}
	}

	kept := all[:0:0]
	for _, t := range all {
		if !t.Kind.IsSkip() {
			kept = append(kept, t)
		}
	}

	kinds := make([]token.Kind, len(kept))
	for i, t := range kept {
		kinds[i] = t.Kind
	}
	retag.Kinds(kinds)
	for i := range kept {
		kept[i].Kind = kinds[i]
	}

	return kept, nil
}
