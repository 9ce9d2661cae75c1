package driver

import (
	"github.com/opal-lang/lanius/internal/parsetab"
	"github.com/opal-lang/lanius/internal/token"
)

// ParseResult bundles everything Parse reads back (spec §4.M: "reads back
// headers, packed streams, and validator outputs").
type ParseResult struct {
	Headers []parsetab.ActionHeader
	Packed  *parsetab.PackResult
	Valid   parsetab.ValidateResult
}

// Parse accepts an already-lexed kind sequence and runs PassJ/K/L (spec
// §4.M point "Parse call"). A synthetic token.EOF is appended to kinds
// before pair computation: with N real kinds there are only N-1 adjacent
// pairs, which would leave the last real token without a pair to trigger
// its own push/pop action (a lone unmatched "(" would never push).
// Appending EOF gives every real token exactly one pair in the "this"
// position, at the cost of one extra, otherwise-inert pair at the end.
func (c *Context) Parse(kinds []token.Kind, mode parsetab.CapacityMode, typedCheck bool) *ParseResult {
	withEOF := make([]token.Kind, len(kinds)+1)
	copy(withEOF, kinds)
	withEOF[len(kinds)] = token.EOF

	headers := parsetab.PairHeaders(withEOF, c.ParseTabs)
	if len(headers) == 0 {
		return &ParseResult{Valid: parsetab.ValidateResult{Valid: true}}
	}

	pairThis := make([]int, len(headers))
	pairNext := make([]int, len(headers))
	for i := range headers {
		pairThis[i] = int(withEOF[i])
		pairNext[i] = int(withEOF[i+1])
	}

	packed, err := parsetab.PackStreams(headers, c.ParseTabs, pairThis, pairNext, mode)
	if err != nil {
		// Every slice here is constructed from withEOF's own length, so a
		// mismatch can only mean an internal wiring bug, not bad input.
		panic(err)
	}

	valid := parsetab.Validate(packed.OutSC, headers, packed.ScOffsets, typedCheck)
	if !valid.Valid {
		c.Logger.Debug("parse imbalanced", "final_depth", valid.FinalDepth, "min_depth", valid.MinDepth)
	}

	return &ParseResult{Headers: headers, Packed: packed, Valid: valid}
}
