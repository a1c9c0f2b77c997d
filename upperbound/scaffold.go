package upperbound

import (
	"github.com/grailbio/upperbound/interval"
)

// ScaffoldRange is a run of consecutive unique regions emitted as one
// record.
type ScaffoldRange struct {
	// FirstRegion and LastRegion are the indices, inclusive, of the regions
	// in the scaffold.
	FirstRegion, LastRegion int
	// Interval spans from the start of the first region to the end of the
	// last.
	interval.Interval
}

// Scaffold groups regions into scaffolds using the supported adjacencies in
// pairs.  Every region belongs to exactly one scaffold; regions not in any
// pair form single-region scaffolds.  The result is sorted and disjoint.
func Scaffold(regions []interval.Interval, pairs []RegionPairing) []ScaffoldRange {
	// Adjacency (i, j) becomes index interval [i, j).  Touching index
	// intervals share a region, so merging them with zero tolerance chains
	// adjacencies into scaffolds.
	idx := make([]interval.Interval, len(pairs))
	for i, p := range pairs {
		idx[i] = interval.Interval{Start: interval.PosType(p.Start), End: interval.PosType(p.End)}
	}
	single := func(i int) ScaffoldRange {
		return ScaffoldRange{i, i, regions[i]}
	}

	result := make([]ScaffoldRange, 0, len(regions))
	next := 0
	for _, m := range interval.Merge(idx, 0) {
		first, last := int(m.Start), int(m.End)
		if first < next || last >= len(regions) {
			continue
		}
		for ; next < first; next++ {
			result = append(result, single(next))
		}
		result = append(result, ScaffoldRange{
			FirstRegion: first,
			LastRegion:  last,
			Interval:    interval.Interval{Start: regions[first].Start, End: regions[last].End},
		})
		next = last + 1
	}
	for ; next < len(regions); next++ {
		result = append(result, single(next))
	}
	return result
}
