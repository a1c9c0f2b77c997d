package upperbound

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/upperbound/interval"
)

// inBounds returns the intervals of ivs that lie within [0, length).  The
// rest are geometrically inconsistent with the chromosome and are dropped
// with a debug message.
func inBounds(chrom string, length interval.PosType, ivs []interval.Interval, what string) []interval.Interval {
	result := make([]interval.Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Start < 0 || iv.End > length || iv.Start >= iv.End {
			log.Debug.Printf("%s: skipping %s interval [%d, %d) outside [0, %d)", chrom, what, iv.Start, iv.End, length)
			continue
		}
		result = append(result, iv)
	}
	return result
}

// ExtractUniqueRegions returns the parts of [0, length) covered by neither a
// repeat nor an uncovered interval, sorted and disjoint.  Pass nil uncovered
// to skip the second subtraction (long-read mode).
func ExtractUniqueRegions(chrom string, length interval.PosType, repeats, uncovered []interval.Interval) []interval.Interval {
	whole := []interval.Interval{{Start: 0, End: length}}
	regions := interval.Subtract(whole, inBounds(chrom, length, repeats, "repeat"))
	if len(uncovered) == 0 {
		return regions
	}
	return interval.Subtract(regions, inBounds(chrom, length, uncovered, "uncovered"))
}
