package parsetab

import (
	"fmt"
	"runtime"
	"sync"
)

// CapacityMode selects how PackStreams lays out each pair's slot in the
// output buffers (spec §4.K / §9 "upper-bound-capacity mode").
type CapacityMode int

const (
	// Exact sizes each pair's slot to its real length; offsets are an
	// exclusive prefix sum over per-pair lengths, so the output is densely
	// packed with no gaps.
	Exact CapacityMode = iota
	// UpperBound gives every pair a fixed-size slot of maxPerPair
	// elements, trading wasted space for offsets that don't depend on a
	// prefix-sum pass. Slots are never overflowed; the unused tail of a
	// slot is left zeroed and must not be read.
	UpperBound
)

// PackResult holds the packed output streams plus the offsets PassL needs
// to walk them pair by pair (not as one undifferentiated contiguous
// range, since UpperBound mode leaves gaps between pairs).
type PackResult struct {
	OutSC       []SCElem
	OutEmit     []EmitElem
	ScOffsets   []uint32 // one per pair: start index into OutSC
	EmitOffsets []uint32
	TotalSC     uint32 // sum of real per-pair push lengths, regardless of mode
	TotalEmit   uint32
}

// PackStreams runs PassK: for each pair i, copies
// t.ScSuperseq[t.ScOff(i):+t.ScLen(i)] into OutSC[ScOffsets[i]:] (and the
// analogous copy for emissions), using the capacity policy mode selects.
func PackStreams(headers []ActionHeader, t *PrecomputedParseTables, pairThis, pairNext []int, mode CapacityMode) (*PackResult, error) {
	// pairThis/pairNext are the (this,next) kind pair for each header,
	// needed to locate that pair's slice of the super-sequence tables.
	if len(pairThis) != len(headers) || len(pairNext) != len(headers) {
		return nil, fmt.Errorf("parsetab: pair kind slices must match headers length")
	}

	n := len(headers)
	scOffsets := make([]uint32, n)
	emitOffsets := make([]uint32, n)

	var totalSC, totalEmit uint32
	for _, h := range headers {
		totalSC += h.PushLen
		totalEmit += h.EmitLen
	}

	switch mode {
	case Exact:
		var sc, em uint32
		for i, h := range headers {
			scOffsets[i] = sc
			emitOffsets[i] = em
			sc += h.PushLen
			em += h.EmitLen
		}
	case UpperBound:
		maxPush, maxEmit := uint32(0), uint32(0)
		for _, h := range headers {
			if h.PushLen > maxPush {
				maxPush = h.PushLen
			}
			if h.EmitLen > maxEmit {
				maxEmit = h.EmitLen
			}
		}
		for i := range headers {
			scOffsets[i] = uint32(i) * maxPush
			emitOffsets[i] = uint32(i) * maxEmit
		}
	default:
		return nil, fmt.Errorf("parsetab: unknown capacity mode %d", mode)
	}

	var outSCLen, outEmitLen uint32
	if n > 0 {
		last := headers[n-1]
		outSCLen = scOffsets[n-1] + last.PushLen
		outEmitLen = emitOffsets[n-1] + last.EmitLen
	}

	r := &PackResult{
		OutSC:       make([]SCElem, outSCLen),
		OutEmit:     make([]EmitElem, outEmitLen),
		ScOffsets:   scOffsets,
		EmitOffsets: emitOffsets,
		TotalSC:     totalSC,
		TotalEmit:   totalEmit,
	}

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			idx := pairThis[i]*t.NKinds + pairNext[i]
			scSrc := t.ScSuperseq[t.ScOff[idx] : t.ScOff[idx]+t.ScLen[idx]]
			copy(r.OutSC[scOffsets[i]:scOffsets[i]+uint32(len(scSrc))], scSrc)

			ppSrc := t.PpSuperseq[t.PpOff[idx] : t.PpOff[idx]+t.PpLen[idx]]
			copy(r.OutEmit[emitOffsets[i]:emitOffsets[i]+uint32(len(ppSrc))], ppSrc)
		}()
	}
	wg.Wait()

	return r, nil
}
