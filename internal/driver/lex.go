package driver

import (
	"github.com/opal-lang/lanius/internal/lexpipe"
	"github.com/opal-lang/lanius/internal/token"
)

// LexResult is what Lex returns on success: the kept token stream plus the
// full intermediate Result, for callers that want DumpState or
// RecountCompact without re-running the pipeline.
type LexResult struct {
	Tokens []token.Token
	Pipe   *lexpipe.Result
}

// Lex runs the single-call contract of spec §4.M: allocate per-call
// buffers sized to N, run passes D through I as one recorded sequence,
// and return the token stream (or an InputTooLarge/LexReject/
// LexUnterminated error). timer may be nil.
func (c *Context) Lex(src []byte, timer *PassTimer) (*LexResult, error) {
	if timer == nil {
		timer = NewPassTimer(false)
	}

	n := len(src)
	if n > c.Config.MaxInputN {
		return nil, &InputTooLargeError{N: n, Limit: c.Config.MaxInputN}
	}

	buffers := NewBuffers(n)
	c.Logger.Debug("lex: allocated buffers", "n", buffers.N, "nb_dfa", buffers.NBDFA, "nb_sum", buffers.NBSum)

	timer.Start("D-E-F-G-H-I")
	result, err := lexpipe.Run(src, c.DFA)
	timer.End()

	if err != nil {
		switch e := err.(type) {
		case *lexpipe.RejectError:
			c.Logger.Error("lex reject", "offset", e.Offset)
			return nil, newLexReject(src, e.Offset)
		case *lexpipe.UnterminatedError:
			c.Logger.Error("lex unterminated", "state", e.State)
			return nil, &LexUnterminatedError{State: e.State}
		default:
			return nil, &DeviceValidationError{Pass: "lexpipe.Run", Err: err}
		}
	}

	if !c.Config.Readback {
		return &LexResult{Pipe: result}, nil
	}
	return &LexResult{Tokens: result.Tokens, Pipe: result}, nil
}
