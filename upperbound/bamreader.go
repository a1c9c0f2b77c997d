package upperbound

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/upperbound/interval"
)

// EvidenceStats counts the alignments seen by ReadAlignments.
type EvidenceStats struct {
	Records  int
	Filtered int
	// Unpaired is the number of mate-pair records whose mate was filtered or
	// absent.
	Unpaired int
}

// Evidence is the joiner input collected from one alignment file.
type Evidence struct {
	Kind JoinerKind
	// Spans holds the joiner spans of every chromosome, in file order.
	Spans interval.ByRef
	// ReadLength is the median sampled read length (mate-pair only).
	ReadLength interval.PosType
	// InsertSample holds the first Opts.InsertSampleSize pair spans
	// (mate-pair only).
	InsertSample []interval.PosType
	Stats        EvidenceStats
}

type recordReader interface {
	Read() (*sam.Record, error)
}

const excludedFlags = sam.Unmapped | sam.Secondary | sam.Supplementary | sam.Duplicate | sam.QCFail

func keepRecord(r *sam.Record, kind JoinerKind, minMapQ int) bool {
	if r.Ref == nil || r.Flags&excludedFlags != 0 || int(r.MapQ) < minMapQ {
		return false
	}
	if kind == MatePairJoiner {
		if r.Flags&(sam.Paired|sam.ProperPair) != sam.Paired|sam.ProperPair || r.Flags&sam.MateUnmapped != 0 {
			return false
		}
		if r.MateRef == nil || r.MateRef.ID() != r.Ref.ID() {
			return false
		}
	}
	return true
}

// collectEvidence reads every record of in.  Mate-pair ends are buffered
// by read name until both ends have been seen.
func collectEvidence(in recordReader, kind JoinerKind, opts *Opts) (*Evidence, error) {
	ev := &Evidence{Kind: kind, Spans: make(interval.ByRef)}
	pending := make(map[string]interval.Interval)
	var readLens []int
	for {
		r, err := in.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ev.Stats.Records++
		if !keepRecord(r, kind, opts.MinMapQ) {
			ev.Stats.Filtered++
			sam.PutInFreePool(r)
			continue
		}
		chrom := r.Ref.Name()
		span := interval.Interval{Start: interval.PosType(r.Start()), End: interval.PosType(r.End())}
		if kind == LongReadJoiner {
			ev.Spans[chrom] = append(ev.Spans[chrom], span)
			sam.PutInFreePool(r)
			continue
		}
		if len(readLens) < opts.InsertSampleSize {
			// SEQ may be omitted ("*"); fall back to the aligned length.
			readLen := r.Seq.Length
			if readLen == 0 {
				readLen = int(span.Len())
			}
			if readLen > 0 {
				readLens = append(readLens, readLen)
			}
		}
		key := chrom + "\t" + r.Name
		mate, ok := pending[key]
		sam.PutInFreePool(r)
		if !ok {
			pending[key] = span
			continue
		}
		delete(pending, key)
		if mate.Start < span.Start {
			span.Start = mate.Start
		}
		if mate.End > span.End {
			span.End = mate.End
		}
		ev.Spans[chrom] = append(ev.Spans[chrom], span)
		if len(ev.InsertSample) < opts.InsertSampleSize {
			ev.InsertSample = append(ev.InsertSample, span.Len())
		}
	}
	ev.Stats.Unpaired = len(pending)
	ev.ReadLength = MedianReadLength(readLens)
	return ev, nil
}

// ReadAlignments collects joiner spans from the BAM file at path.  Only
// primary, uniquely placed (MAPQ >= opts.MinMapQ) alignments are used; for
// mate pairs, both ends must be mapped as a proper pair on the same
// chromosome.
func ReadAlignments(ctx context.Context, path string, kind JoinerKind, opts *Opts) (ev *Evidence, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if ev, err = collectEvidence(reader, kind, opts); err != nil {
		return nil, err
	}
	log.Printf("%s: %d record(s), %d filtered, %d unpaired, joiners on %d chromosome(s)",
		path, ev.Stats.Records, ev.Stats.Filtered, ev.Stats.Unpaired, len(ev.Spans))
	return ev, nil
}

// InsertWindow returns the insert-size window to filter mate pairs with:
// the one configured in opts if set, otherwise one estimated from
// ev.InsertSample.  Long-read evidence has no window.
func (ev *Evidence) InsertWindow(opts *Opts) (InsertWindow, error) {
	if ev.Kind == LongReadJoiner {
		return InsertWindow{}, nil
	}
	if opts.InsertSizeMax > 0 {
		return InsertWindow{Min: interval.PosType(opts.InsertSizeMin), Max: interval.PosType(opts.InsertSizeMax)}, nil
	}
	return EstimateInsertWindow(ev.InsertSample)
}

// JoinerSets builds the per-chromosome joiner sets of ev.
func (ev *Evidence) JoinerSets(window InsertWindow) map[string]*JoinerSet {
	sets := make(map[string]*JoinerSet, len(ev.Spans))
	for chrom, spans := range ev.Spans {
		js := NewJoinerSet(ev.Kind, spans, ev.ReadLength, window)
		sets[chrom] = &js
	}
	return sets
}
