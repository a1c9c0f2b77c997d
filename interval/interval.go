package interval

import (
	"math"
	"sort"
)

// PosType is the coordinate type.  int32 should be wide enough for some time
// to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Interval is a 0-based half-open [Start, End) span on one chromosome.
type Interval struct {
	Start PosType
	End   PosType
}

// Len returns the number of positions covered by the interval, or 0 for an
// empty or inverted interval.
func (iv Interval) Len() PosType {
	if iv.End <= iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Overlap returns the number of positions shared by iv and other.
func (iv Interval) Overlap(other Interval) PosType {
	start := iv.Start
	if other.Start > start {
		start = other.Start
	}
	end := iv.End
	if other.End < end {
		end = other.End
	}
	if end <= start {
		return 0
	}
	return end - start
}

// Contains returns true iff other lies entirely within iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// ByRef groups intervals by reference (chromosome) name.
type ByRef map[string][]Interval

// Sort sorts ivs in place by (Start, End).
func Sort(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
}

// Merge returns the union of ivs as a sorted list of disjoint intervals.  An
// interval starting at most tolerance positions past the end of the current
// run is absorbed into it, so with tolerance 0 touching intervals are joined.
// Empty intervals are dropped.  ivs is not modified.
func Merge(ivs []Interval, tolerance PosType) []Interval {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.End > iv.Start {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	Sort(sorted)
	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if iv.Start <= cur.End+tolerance {
			if iv.End > cur.End {
				cur.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes every position covered by holes from base.  base must be
// sorted and disjoint (e.g. the output of Merge); holes may be in any order
// and may overlap each other.  A hole strictly inside a base interval splits
// it in two, a hole covering a base interval drops it, and a hole overlapping
// one edge trims that edge.
func Subtract(base, holes []Interval) []Interval {
	holes = Merge(holes, 0)
	result := make([]Interval, 0, len(base)+len(holes))
	h := 0
	for _, b := range base {
		if b.End <= b.Start {
			continue
		}
		for h < len(holes) && holes[h].End <= b.Start {
			h++
		}
		start := b.Start
		// Holes are disjoint and sorted, so they can be consumed left to right.
		// A hole extending past b.End stays current for the next base interval.
		for i := h; i < len(holes) && holes[i].Start < b.End; i++ {
			if holes[i].Start > start {
				result = append(result, Interval{start, holes[i].Start})
			}
			if holes[i].End > start {
				start = holes[i].End
			}
		}
		if start < b.End {
			result = append(result, Interval{start, b.End})
		}
	}
	return result
}

// TotalLen returns the summed length of ivs.  Overlapping intervals are
// counted once per occurrence; call Merge first for a union length.
func TotalLen(ivs []Interval) int64 {
	var total int64
	for _, iv := range ivs {
		total += int64(iv.Len())
	}
	return total
}

// IsSortedDisjoint returns true iff ivs is sorted by Start and no two
// intervals share a position.
func IsSortedDisjoint(ivs []Interval) bool {
	for i := 1; i < len(ivs); i++ {
		if ivs[i].Start < ivs[i-1].End {
			return false
		}
	}
	return true
}
