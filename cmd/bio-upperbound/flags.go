package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/upperbound/encoding/fasta"
	"github.com/grailbio/upperbound/encoding/paf"
	"github.com/grailbio/upperbound/interval"
	"github.com/grailbio/upperbound/upperbound"
)

// inputFlags are the flags shared by build and regions.
type inputFlags struct {
	ref             string
	repeats         string
	repeatsOneBased bool
	repeatHits      string
	hitsZeroBased   bool
	uncovered       string
	matePairs       string
	longReads       string
	joinersBED      string
	joinersKind     string
	readLength      int
	config          string

	// Threshold overrides; negative means unset.
	minOverlap      int
	minConnections  int
	minContigLength int
	minRepeatLength int
	insertSizeMin   int
	insertSizeMax   int
	minMapQ         int
	parallelism     int
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.ref, "ref", "", "Reference FASTA path (required)")
	fs.StringVar(&f.repeats, "repeats", "", "Repeat candidates BED path")
	fs.BoolVar(&f.repeatsOneBased, "repeats-one-based", false, "Interpret -repeats coordinates as one-based, closed")
	fs.StringVar(&f.repeatHits, "repeat-hits", "", "PAF path with the re-alignments of the repeat candidates")
	fs.BoolVar(&f.hitsZeroBased, "repeat-hits-zero-based", false, "Interpret -repeat-hits query names as zero-based, half-open regions")
	fs.StringVar(&f.uncovered, "uncovered", "", "Zero-coverage intervals BED path (mate-pair mode only)")
	fs.StringVar(&f.matePairs, "mate-pairs", "", "Mate-pair alignments BAM path")
	fs.StringVar(&f.longReads, "long-reads", "", "Long-read alignments BAM path")
	fs.StringVar(&f.joinersBED, "joiners-bed", "", "Joiner spans BED path, an alternative to -mate-pairs and -long-reads")
	fs.StringVar(&f.joinersKind, "joiners-kind", "long-read", "Kind of the -joiners-bed spans; 'mate-pair' or 'long-read'")
	fs.IntVar(&f.readLength, "read-length", 100, "Read length of the -joiners-bed mate pairs")
	fs.StringVar(&f.config, "config", "", "YAML parameter file overriding the default thresholds")

	fs.IntVar(&f.minOverlap, "min-overlap", -1, "Bases a joiner must overlap a region by")
	fs.IntVar(&f.minConnections, "min-connections", -1, "Joiners needed to merge two regions, for the selected evidence kind")
	fs.IntVar(&f.minContigLength, "min-contig-length", -1, "Records shorter than this are dropped")
	fs.IntVar(&f.minRepeatLength, "min-repeat-length", -1, "Matched bases a repeat copy must exceed; 0 derives it from the insert size")
	fs.IntVar(&f.insertSizeMin, "insert-size-min", -1, "Smallest accepted mate-pair span")
	fs.IntVar(&f.insertSizeMax, "insert-size-max", -1, "Largest accepted mate-pair span; 0 estimates the window from the alignments")
	fs.IntVar(&f.minMapQ, "min-mapq", -1, "Alignments below this mapping quality are ignored")
	fs.IntVar(&f.parallelism, "parallelism", -1, "Chromosomes processed at once; 0 uses all CPUs")
}

// mode returns the evidence mode selected by the flags.
func (f *inputFlags) mode() (upperbound.Mode, error) {
	var modes []upperbound.Mode
	if f.matePairs != "" {
		modes = append(modes, upperbound.MatePair)
	}
	if f.longReads != "" {
		modes = append(modes, upperbound.LongRead)
	}
	if f.joinersBED != "" {
		m := upperbound.ParseMode(f.joinersKind)
		if m == upperbound.ModeUnset {
			return m, errors.E(errors.Invalid, fmt.Sprintf("unknown -joiners-kind %q", f.joinersKind))
		}
		modes = append(modes, m)
	}
	if len(modes) != 1 {
		return upperbound.ModeUnset, errors.E(errors.Invalid, "exactly one of -mate-pairs, -long-reads or -joiners-bed is required")
	}
	return modes[0], nil
}

// opts returns the defaults, overlaid by the parameter file and then by the
// flags that were set.
func (f *inputFlags) opts(ctx context.Context) (upperbound.Opts, error) {
	opts := upperbound.DefaultOpts
	if f.config != "" {
		if err := loadConfig(ctx, f.config, &opts); err != nil {
			return opts, err
		}
	}
	var err error
	if opts.Mode, err = f.mode(); err != nil {
		return opts, err
	}
	override := func(dst *int, v int) {
		if v >= 0 {
			*dst = v
		}
	}
	override(&opts.MinOverlap, f.minOverlap)
	if opts.Mode == upperbound.LongRead {
		override(&opts.LongReadMinConnections, f.minConnections)
	} else {
		override(&opts.MatePairMinConnections, f.minConnections)
	}
	override(&opts.MinContigLength, f.minContigLength)
	override(&opts.MinRepeatLength, f.minRepeatLength)
	override(&opts.InsertSizeMin, f.insertSizeMin)
	override(&opts.InsertSizeMax, f.insertSizeMax)
	override(&opts.MinMapQ, f.minMapQ)
	override(&opts.Parallelism, f.parallelism)
	if f.hitsZeroBased {
		opts.RepeatHitsZeroBased = true
	}
	return opts, opts.Validate()
}

func loadReference(ctx context.Context, path string) ([]upperbound.Chromosome, error) {
	fa, err := fasta.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	var chroms []upperbound.Chromosome
	for _, name := range fa.SeqNames() {
		n, err := fa.Len(name)
		if err != nil {
			return nil, err
		}
		var seq string
		if n > 0 {
			if seq, err = fa.Get(name, 0, n); err != nil {
				return nil, err
			}
		}
		chroms = append(chroms, upperbound.Chromosome{Name: name, Seq: seq})
	}
	log.Printf("%s: loaded %d sequence(s)", path, len(chroms))
	return chroms, nil
}

// loadEvidence reads the joiner input selected by the flags.
func (f *inputFlags) loadEvidence(ctx context.Context, opts *upperbound.Opts) (*upperbound.Evidence, error) {
	kind := upperbound.MatePairJoiner
	if opts.Mode == upperbound.LongRead {
		kind = upperbound.LongReadJoiner
	}
	switch {
	case f.matePairs != "":
		return upperbound.ReadAlignments(ctx, f.matePairs, kind, opts)
	case f.longReads != "":
		return upperbound.ReadAlignments(ctx, f.longReads, kind, opts)
	}
	spans, err := interval.NewBEDFromPath(ctx, f.joinersBED, interval.NewBEDOpts{})
	if err != nil {
		return nil, err
	}
	ev := &upperbound.Evidence{Kind: kind, Spans: spans}
	if kind == upperbound.MatePairJoiner {
		if f.readLength <= 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("-read-length must be positive for mate-pair -joiners-bed, got %d", f.readLength))
		}
		ev.ReadLength = interval.PosType(f.readLength)
		for _, ivs := range spans {
			for _, iv := range ivs {
				if len(ev.InsertSample) == opts.InsertSampleSize {
					break
				}
				ev.InsertSample = append(ev.InsertSample, iv.Len())
			}
		}
	}
	return ev, nil
}

// load reads every input named by the flags.
func (f *inputFlags) load(ctx context.Context, opts *upperbound.Opts) (*upperbound.Input, error) {
	if f.ref == "" {
		return nil, errors.E(errors.Invalid, "-ref is required")
	}
	in := &upperbound.Input{}
	var err error
	if in.Reference, err = loadReference(ctx, f.ref); err != nil {
		return nil, err
	}
	if f.repeats != "" {
		bed, err := interval.NewBEDFromPath(ctx, f.repeats, interval.NewBEDOpts{OneBasedInput: f.repeatsOneBased})
		if err != nil {
			return nil, err
		}
		in.Candidates = flattenCandidates(upperbound.CandidatesFromBED(bed, 0), in.Reference)
	}
	if f.repeatHits != "" {
		recs, err := paf.ReadFromPath(ctx, f.repeatHits)
		if err != nil {
			return nil, err
		}
		in.Hits = upperbound.HitsFromPAF(recs, opts.HitConvention())
	}
	if f.uncovered != "" {
		if in.Uncovered, err = interval.NewBEDFromPath(ctx, f.uncovered, interval.NewBEDOpts{Union: true}); err != nil {
			return nil, err
		}
	}
	ev, err := f.loadEvidence(ctx, opts)
	if err != nil {
		return nil, err
	}
	if in.InsertWindow, err = ev.InsertWindow(opts); err != nil {
		// No pairs at all; every chromosome keeps its regions unmerged.
		log.Error.Printf("%v, insert sizes not filtered", err)
	}
	if ev.Kind == upperbound.MatePairJoiner {
		log.Printf("insert-size window [%d, %d], read length %d", in.InsertWindow.Min, in.InsertWindow.Max, ev.ReadLength)
	}
	in.Joiners = ev.JoinerSets(in.InsertWindow)
	return in, nil
}

// flattenCandidates lists the candidates in reference order, so that runs
// are reproducible.  Candidates on unknown chromosomes are dropped.
func flattenCandidates(byChrom map[string][]upperbound.RepeatCandidate, ref []upperbound.Chromosome) []upperbound.RepeatCandidate {
	var cands []upperbound.RepeatCandidate
	for _, c := range ref {
		cands = append(cands, byChrom[c.Name]...)
		delete(byChrom, c.Name)
	}
	for chrom, cs := range byChrom {
		log.Error.Printf("ignoring %d repeat candidate(s) on unknown reference %s", len(cs), chrom)
	}
	return cands
}
