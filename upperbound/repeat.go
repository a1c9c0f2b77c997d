package upperbound

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/upperbound/encoding/paf"
	"github.com/grailbio/upperbound/interval"
)

// RepeatCandidate is a coarse repeat reported by an external repeat finder.
type RepeatCandidate struct {
	Chrom string
	interval.Interval
}

// Entry returns the candidate's location.  Re-alignment hits are keyed by
// it.
func (c RepeatCandidate) Entry() interval.Entry {
	return interval.Entry{RefName: c.Chrom, Start0: c.Start, End: c.End}
}

// Name returns the samtools-style region string ("chr1:4001-4300") of the
// candidate.
func (c RepeatCandidate) Name() string {
	return c.Entry().RegionString()
}

// RepeatHit is one alignment of a candidate's sequence against the
// reference.
type RepeatHit struct {
	Chrom string
	interval.Interval
	// Matches is the number of matching bases in the alignment.
	Matches int
}

// CandidatesFromBED turns repeat-finder intervals into candidates, dropping
// those shorter than minLen.
func CandidatesFromBED(bed interval.ByRef, minLen int) map[string][]RepeatCandidate {
	cands := make(map[string][]RepeatCandidate, len(bed))
	for chrom, ivs := range bed {
		for _, iv := range ivs {
			if int(iv.Len()) < minLen {
				continue
			}
			cands[chrom] = append(cands[chrom], RepeatCandidate{chrom, iv})
		}
	}
	return cands
}

// HitsFromPAF groups re-alignment records by the candidate named by their
// query.  Query names are region strings ("chr1:4001-4300") numbered under
// conv; queries that do not parse as one, or name no range, are logged and
// skipped.
func HitsFromPAF(recs []paf.Record, conv interval.Convention) map[interval.Entry][]RepeatHit {
	groups := paf.GroupByQuery(recs)
	hits := make(map[interval.Entry][]RepeatHit, len(groups))
	for query, group := range groups {
		key, err := interval.ParseRegion(query, conv)
		if err == nil && key.End == interval.PosTypeMax-1 {
			err = errors.E(errors.Invalid, "no range in query name")
		}
		if err != nil {
			log.Error.Printf("upperbound: skipping %d repeat hit(s) of query %q: %v", len(group), query, err)
			continue
		}
		for _, rec := range group {
			if rec.TargetEnd > interval.PosTypeMax {
				continue
			}
			hits[key] = append(hits[key], RepeatHit{
				Chrom:    rec.TargetName,
				Interval: interval.Interval{Start: interval.PosType(rec.TargetStart), End: interval.PosType(rec.TargetEnd)},
				Matches:  rec.Matches,
			})
		}
	}
	return hits
}

// validateCandidate returns the copies of cand supported by hits, or nil if
// cand is not a genuine repeat.
//
// Hits matching at most threshold bases are dropped; these are mostly partial
// alignments at the candidate's own edges.  The rest are merged per
// chromosome, and merged copies spanning at least coverage*len(cand) are kept.
// A genuine repeat needs at least two copies, its own anchor included.
func validateCandidate(cand RepeatCandidate, hits []RepeatHit, threshold int, coverage float64) interval.ByRef {
	byChrom := make(map[string][]interval.Interval)
	nHit := 0
	for _, h := range hits {
		if h.Matches <= threshold {
			continue
		}
		byChrom[h.Chrom] = append(byChrom[h.Chrom], h.Interval)
		nHit++
	}
	if nHit < 2 {
		return nil
	}
	minCopyLen := interval.PosType(coverage * float64(cand.Len()))
	copies := make(interval.ByRef)
	nCopy := 0
	for chrom, ivs := range byChrom {
		for _, iv := range interval.Merge(ivs, 0) {
			if iv.Len() >= minCopyLen {
				copies[chrom] = append(copies[chrom], iv)
				nCopy++
			}
		}
	}
	if nCopy < 2 {
		return nil
	}
	return copies
}

// validateCandidates validates every candidate in cands, returning the raw
// (unmerged) copies grouped by the chromosome they lie on.
func validateCandidates(cands []RepeatCandidate, hits map[interval.Entry][]RepeatHit, threshold int, coverage float64) interval.ByRef {
	raw := make(interval.ByRef)
	nAccepted, nMissing := 0, 0
	for _, cand := range cands {
		if int(cand.Len()) < threshold {
			continue
		}
		candHits, ok := hits[cand.Entry()]
		if !ok {
			nMissing++
		}
		copies := validateCandidate(cand, candHits, threshold, coverage)
		if copies == nil {
			log.Debug.Printf("repeat candidate %s rejected", cand.Name())
			continue
		}
		nAccepted++
		for chrom, ivs := range copies {
			raw[chrom] = append(raw[chrom], ivs...)
		}
	}
	if nMissing > 0 {
		log.Error.Printf("upperbound: %d repeat candidate(s) on %s have no re-alignment hits; check the query-name convention",
			nMissing, cands[0].Chrom)
	}
	log.Debug.Printf("validated %d of %d repeat candidate(s)", nAccepted, len(cands))
	return raw
}

// collapseNearDuplicates keeps one representative of every group of copies
// whose endpoints are all within tolerance of each other.  Copies are visited
// by ascending end, longer first on ties, and the first copy of a group is
// its representative.
func collapseNearDuplicates(ivs []interval.Interval, tolerance interval.PosType) []interval.Interval {
	sorted := append([]interval.Interval(nil), ivs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].End != sorted[j].End {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Len() > sorted[j].Len()
	})
	var kept []interval.Interval
	for _, iv := range sorted {
		dup := false
		for k := len(kept) - 1; k >= 0 && kept[k].End >= iv.End-tolerance; k-- {
			if absPos(kept[k].Start-iv.Start) <= tolerance {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, iv)
		}
	}
	interval.Sort(kept)
	return kept
}

func absPos(x interval.PosType) interval.PosType {
	if x < 0 {
		return -x
	}
	return x
}

// finishRepeats turns the raw copies found on one chromosome into its
// validated repeat list.  Mate-pair mode keeps their union; long-read mode
// keeps one representative per near-duplicate group.
func finishRepeats(raw []interval.Interval, opts *Opts) []interval.Interval {
	if opts.Mode == LongRead {
		return collapseNearDuplicates(raw, interval.PosType(opts.RepeatMergeTolerance))
	}
	return interval.Merge(raw, 0)
}

// groupByChrom splits cands by chromosome, in order of first appearance.
func groupByChrom(cands []RepeatCandidate) [][]RepeatCandidate {
	var groups [][]RepeatCandidate
	index := make(map[string]int)
	for _, c := range cands {
		i, ok := index[c.Chrom]
		if !ok {
			i = len(groups)
			index[c.Chrom] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], c)
	}
	return groups
}

// ValidateRepeats filters repeat candidates down to genuine repeats and
// returns every copy of them, grouped by chromosome and sorted by start.
// hits maps RepeatCandidate.Entry() to the candidate's re-alignments; a
// candidate without hits is rejected.
//
// Candidates of different chromosomes are validated in parallel, at most
// opts.Parallelism chromosomes at a time.  The copies found are combined in
// candidate order, so the result does not depend on scheduling.
func ValidateRepeats(cands []RepeatCandidate, hits map[interval.Entry][]RepeatHit, threshold int, opts *Opts) (interval.ByRef, error) {
	groups := groupByChrom(cands)
	n := len(groups)
	perChrom := make([]interval.ByRef, n)
	if n > 0 {
		parallelism := chromParallelism(opts.Parallelism, n)
		err := traverse.Each(parallelism, func(jobIdx int) error {
			for i := jobIdx; i < n; i += parallelism {
				perChrom[i] = validateCandidates(groups[i], hits, threshold, opts.RepeatCoverageFraction)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	raw := make(interval.ByRef)
	for _, copies := range perChrom {
		for chrom, ivs := range copies {
			raw[chrom] = append(raw[chrom], ivs...)
		}
	}
	result := make(interval.ByRef, len(raw))
	for chrom, ivs := range raw {
		result[chrom] = finishRepeats(ivs, opts)
	}
	return result, nil
}
