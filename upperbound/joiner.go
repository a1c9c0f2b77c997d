package upperbound

import (
	"fmt"
	"sort"

	"github.com/grailbio/upperbound/interval"
)

// JoinerKind is the kind of read evidence a joiner was derived from.
type JoinerKind int

const (
	// MatePairJoiner spans the outer mapped coordinates of a read pair.
	MatePairJoiner JoinerKind = iota
	// LongReadJoiner is the mapped span of a single long read.
	LongReadJoiner
)

func (k JoinerKind) String() string {
	if k == LongReadJoiner {
		return "long-read"
	}
	return "mate-pair"
}

// Joiner is a read-derived interval used as evidence that the unique regions
// it overlaps belong to the same scaffold.
type Joiner struct {
	interval.Interval
}

// JoinerSet holds the joiners of one chromosome.
type JoinerSet struct {
	Kind JoinerKind
	// ReadLength is the representative read length of a mate-pair library.
	// Each end of a mate-pair joiner is assumed to be a read of this length.
	ReadLength interval.PosType
	// Joiners is sorted by (Start, End).
	Joiners []Joiner
}

// InsertWindow bounds the accepted span of a mate pair, inclusive.
type InsertWindow struct {
	Min, Max interval.PosType
}

// Contains returns true iff span is within the window.  The zero window
// accepts everything.
func (w InsertWindow) Contains(span interval.PosType) bool {
	if w.Max == 0 {
		return true
	}
	return span >= w.Min && span <= w.Max
}

// percentile returns the p-th percentile (0 <= p <= 100) of sorted by the
// nearest-rank method.
func percentile(sorted []interval.PosType, p int) interval.PosType {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// EstimateInsertWindow returns the 10th..90th percentile range of a sample
// of concordant mate-pair spans.
func EstimateInsertWindow(spans []interval.PosType) (InsertWindow, error) {
	if len(spans) == 0 {
		return InsertWindow{}, fmt.Errorf("upperbound.EstimateInsertWindow: no concordant pairs to sample")
	}
	sorted := append([]interval.PosType(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return InsertWindow{Min: percentile(sorted, 10), Max: percentile(sorted, 90)}, nil
}

// MedianReadLength returns the median of lengths, or 0 if it is empty.
func MedianReadLength(lengths []int) interval.PosType {
	if len(lengths) == 0 {
		return 0
	}
	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)
	return interval.PosType(sorted[len(sorted)/2])
}

// NewJoinerSet builds the joiners of one chromosome from read spans.  Spans
// of mate-pair joiners outside window are dropped; window is ignored for long
// reads.  spans is not modified.
func NewJoinerSet(kind JoinerKind, spans []interval.Interval, readLength interval.PosType, window InsertWindow) JoinerSet {
	js := JoinerSet{Kind: kind, ReadLength: readLength, Joiners: make([]Joiner, 0, len(spans))}
	for _, span := range spans {
		if span.Len() == 0 {
			continue
		}
		if kind == MatePairJoiner && !window.Contains(span.Len()) {
			continue
		}
		js.Joiners = append(js.Joiners, Joiner{span})
	}
	sort.SliceStable(js.Joiners, func(i, j int) bool {
		a, b := js.Joiners[i], js.Joiners[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return js
}

// byEndDesc returns the indices of js.Joiners ordered by descending End,
// then descending Start, for the reverse sweep.
func (js *JoinerSet) byEndDesc() []int {
	order := make([]int, len(js.Joiners))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := js.Joiners[order[i]], js.Joiners[order[j]]
		if a.End != b.End {
			return a.End > b.End
		}
		return a.Start > b.Start
	})
	return order
}
