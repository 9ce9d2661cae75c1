package parsetab

import "math"

// Unmatched marks an index in MatchForIndex that has no partner.
const Unmatched = math.MaxUint32

// ValidateResult is the bracket validator's output (spec §4.L / §7
// ParseImbalanced): even on failure, MatchForIndex, FinalDepth, and
// MinDepth remain meaningful diagnostics.
type ValidateResult struct {
	MatchForIndex []uint32
	FinalDepth    int
	MinDepth      int
	Valid         bool
}

// Validate runs PassL over the packed stack-change stream, walking it pair
// by pair via scOffsets/headers (so it works identically whether
// PackStreams used Exact or UpperBound capacity). Each pair contributes
// its header's PopCount pops (tagged PopTag) followed by its packed
// pushes; MatchForIndex is indexed over that combined sequence.
// typedCheck additionally requires a matched push/pop pair to carry the
// same bracket kind tag.
func Validate(outSC []SCElem, headers []ActionHeader, scOffsets []uint32, typedCheck bool) ValidateResult {
	var flat []SCElem
	for i, h := range headers {
		for j := uint32(0); j < h.PopCount; j++ {
			flat = append(flat, SCElem(h.PopTag|signBit))
		}
		flat = append(flat, outSC[scOffsets[i]:scOffsets[i]+h.PushLen]...)
	}

	match := make([]uint32, len(flat))
	for i := range match {
		match[i] = Unmatched
	}

	var stack []int // indices of unmatched pushes, in stack order
	depth, minDepth := 0, 0
	typedOK := true

	for i, e := range flat {
		if e.IsPush() {
			depth++
			stack = append(stack, i)
		} else {
			depth--
			if depth < minDepth {
				minDepth = depth
			}
			if len(stack) == 0 {
				continue // unmatched pop; leaves match[i] = Unmatched
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[top] = uint32(i)
			match[i] = uint32(top)
			if typedCheck && flat[top].Kind() != e.Kind() {
				typedOK = false
			}
		}
	}

	valid := depth == 0 && minDepth >= 0 && typedOK
	return ValidateResult{
		MatchForIndex: match,
		FinalDepth:    depth,
		MinDepth:      minDepth,
		Valid:         valid,
	}
}
