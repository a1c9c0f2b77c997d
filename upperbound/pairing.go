package upperbound

import (
	"sort"

	"github.com/grailbio/upperbound/interval"
)

// RegionPairing is an adjacency between unique regions Start and End of one
// chromosome.  The pairs returned by SupportedAdjacencies always have
// End == Start+1.
type RegionPairing struct {
	Start, End int
}

// readOverlap returns the overlap between region and a read of length
// readLen anchored at one end of a mate-pair joiner.
func readOverlap(region interval.Interval, readStart, readLen interval.PosType) interval.PosType {
	return region.Overlap(interval.Interval{Start: readStart, End: readStart + readLen})
}

// forwardPass sweeps the joiners by ascending start, returning joiner index
// -> the region the joiner leaves from.  A joiner is assigned region c when
// it starts at least minOverlap bases before the end of R[c] and reaches at
// least minOverlap bases into R[c+1].
func forwardPass(regions []interval.Interval, js *JoinerSet, minOverlap interval.PosType) map[int]int {
	n := len(regions)
	starts := make(map[int]int)
	cursor := 0
	for j, joiner := range js.Joiners {
		for cursor < n && regions[cursor].End-minOverlap < joiner.Start {
			cursor++
		}
		if cursor >= n-1 {
			// Every remaining joiner starts at or after this one.
			break
		}
		if joiner.End < regions[cursor+1].Start+minOverlap {
			continue
		}
		if js.Kind == MatePairJoiner && readOverlap(regions[cursor], joiner.Start, js.ReadLength) < minOverlap {
			continue
		}
		starts[j] = cursor
	}
	return starts
}

// reversePass is the mirror image of forwardPass: it sweeps the joiners by
// descending end, returning joiner index -> the region the joiner arrives
// at.
func reversePass(regions []interval.Interval, js *JoinerSet, minOverlap interval.PosType) map[int]int {
	ends := make(map[int]int)
	cursor := len(regions) - 1
	for _, j := range js.byEndDesc() {
		joiner := js.Joiners[j]
		for cursor >= 0 && joiner.End < regions[cursor].Start+minOverlap {
			cursor--
		}
		if cursor <= 0 {
			break
		}
		if regions[cursor-1].End-minOverlap < joiner.Start {
			continue
		}
		if js.Kind == MatePairJoiner && readOverlap(regions[cursor], joiner.End-js.ReadLength, js.ReadLength) < minOverlap {
			continue
		}
		ends[j] = cursor
	}
	return ends
}

// reconcile keeps the joiners confirmed by both sweeps, returning their
// (start region, end region) candidates in joiner order.
func reconcile(nJoiner int, starts, ends map[int]int) []RegionPairing {
	var cands []RegionPairing
	for j := 0; j < nJoiner; j++ {
		s, ok1 := starts[j]
		e, ok2 := ends[j]
		if !ok1 || !ok2 || e <= s {
			continue
		}
		cands = append(cands, RegionPairing{s, e})
	}
	return cands
}

// SupportedAdjacencies returns the adjacencies (i, i+1) between regions that
// at least minConnections joiners bridge, sorted by i.  regions must be
// sorted and disjoint.  A joiner spanning several regions supports every
// adjacency between its first and last region.
func SupportedAdjacencies(regions []interval.Interval, js *JoinerSet, minOverlap, minConnections int) []RegionPairing {
	if len(regions) < 2 || js == nil || len(js.Joiners) == 0 {
		return nil
	}
	mo := interval.PosType(minOverlap)
	cands := reconcile(len(js.Joiners), forwardPass(regions, js, mo), reversePass(regions, js, mo))

	support := make(map[int]int)
	for _, c := range cands {
		for i := c.Start; i < c.End; i++ {
			support[i]++
		}
	}
	var pairs []RegionPairing
	for i, n := range support {
		if n >= minConnections {
			pairs = append(pairs, RegionPairing{i, i + 1})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Start < pairs[j].Start })
	return pairs
}
