package lexpipe

import "github.com/opal-lang/lanius/internal/scan"

// counter is the scan element for component F: the (ALL, KEPT) boundary
// counts at a position, combined by elementwise addition — the same
// three-pass hierarchical engine as component D, instantiated with a
// different Combine operator (spec §4.F: "Same three-stage pattern as
// §4.D but for the two counters").
type counter struct {
	All, Kept int
}

func addCounters(a, b counter) counter {
	return counter{All: a.All + b.All, Kept: a.Kept + b.Kept}
}

// SumAllKept runs PassF1-F3: an inclusive prefix sum of per-position
// (ALL,KEPT) boundary counts, returning sAllFinal and sKeptFinal.
func SumAllKept(bounds []Boundary) (sAllFinal, sKeptFinal []int) {
	n := len(bounds)
	if n == 0 {
		return nil, nil
	}
	elems := make([]counter, n)
	for i, b := range bounds {
		c := counter{}
		if b.Flags&Emit != 0 {
			c.All++
		}
		if b.Flags&EOF != 0 {
			c.All++
		}
		if b.Flags&KeepEmit != 0 {
			c.Kept++
		}
		if b.Flags&KeepEOF != 0 {
			c.Kept++
		}
		elems[i] = c
	}

	scanned := scan.Inclusive(elems, counter{}, addCounters)
	sAllFinal = make([]int, n)
	sKeptFinal = make([]int, n)
	for i, c := range scanned {
		sAllFinal[i] = c.All
		sKeptFinal[i] = c.Kept
	}
	return sAllFinal, sKeptFinal
}
