package lexpipe

import (
	"runtime"
	"sync"

	"github.com/opal-lang/lanius/internal/token"
)

// AllEntry is one dense ALL-stream boundary: its exclusive end position.
type AllEntry struct {
	End uint32
}

// KeptEntry is one dense KEPT-stream boundary (component G_kept): its
// exclusive end position, kind, and the 1-based index of the
// corresponding ALL-stream boundary, used by PassI to recover the kept
// token's start offset from the ALL array.
type KeptEntry struct {
	End      uint32
	Kind     token.Kind
	AllIndex int
}

// Compact runs PassG_all and PassG_kept: two independent scatter kernels
// that turn the per-position boundary flags into dense arrays, using the
// prefix sums from SumAllKept to compute each boundary's destination slot
// without any cross-goroutine coordination (every goroutine only ever
// writes to indices its own prefix sum uniquely owns).
func Compact(bounds []Boundary, sAllFinal, sKeptFinal []int) (all []AllEntry, kept []KeptEntry) {
	n := len(bounds)
	if n == 0 {
		return nil, nil
	}

	totalAll := sAllFinal[n-1]
	totalKept := sKeptFinal[n-1]
	all = make([]AllEntry, totalAll)
	kept = make([]KeptEntry, totalKept)

	blockWidth := 4096
	nBlocks := (n + blockWidth - 1) / blockWidth
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	wg.Add(nBlocks)
	for blk := 0; blk < nBlocks; blk++ {
		lo := blk * blockWidth
		hi := lo + blockWidth
		if hi > n {
			hi = n
		}
		go func(lo, hi int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			for i := lo; i < hi; i++ {
				b := bounds[i]
				allExcl := 0
				if i > 0 {
					allExcl = sAllFinal[i-1]
				}
				keptExcl := 0
				if i > 0 {
					keptExcl = sKeptFinal[i-1]
				}

				// Ordering rule (spec §4.E policy, Open Question 1): EMIT
				// is written before EOF whenever both land at position i.
				slot := allExcl
				keptSlot := keptExcl
				allIdxEmit, allIdxEOF := -1, -1

				if b.Flags&Emit != 0 {
					all[slot] = AllEntry{End: uint32(i)}
					allIdxEmit = slot + 1 // 1-based
					slot++
				}
				if b.Flags&EOF != 0 {
					all[slot] = AllEntry{End: uint32(n)}
					allIdxEOF = slot + 1
					slot++
				}
				if b.Flags&KeepEmit != 0 {
					kept[keptSlot] = KeptEntry{End: uint32(i), Kind: b.EmitKind, AllIndex: allIdxEmit}
					keptSlot++
				}
				if b.Flags&KeepEOF != 0 {
					kept[keptSlot] = KeptEntry{End: uint32(n), Kind: b.EOFKind, AllIndex: allIdxEOF}
					keptSlot++
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	return all, kept
}
