package driver

import "github.com/opal-lang/lanius/internal/scan"

// Buffers is the per-call record a real driver would size and allocate up
// front (spec §4.M point 2: "Allocate a per-call Buffers record sized to N
// and derived dimensions"). In this CPU simulation the Go runtime owns
// allocation for every intermediate slice, so Buffers carries only the
// derived dimensions themselves, kept around for diagnostics (DumpState)
// and so callers can see the block geometry a real dispatch would use.
type Buffers struct {
	N     int
	NBDFA int // ceil(N/256): dispatch width for the streaming-DFA scan passes
	NBSum int // ceil(N/256): dispatch width for the pair-sum scan passes
}

func ceilDiv(n, d int) int {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}

// NewBuffers computes the derived dimensions for an N-byte call.
func NewBuffers(n int) Buffers {
	return Buffers{N: n, NBDFA: ceilDiv(n, scan.BlockWidth), NBSum: ceilDiv(n, scan.BlockWidth)}
}
