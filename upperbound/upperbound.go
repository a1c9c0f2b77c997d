package upperbound

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/upperbound/interval"
)

// Input holds the parsed inputs of Build.
type Input struct {
	// Reference lists the chromosomes in output order.
	Reference []Chromosome
	// Candidates are the repeat finder's candidates, and Hits maps
	// RepeatCandidate.Entry() to the candidate's re-alignments.
	Candidates []RepeatCandidate
	Hits       map[interval.Entry][]RepeatHit
	// Uncovered holds the zero-coverage intervals of each chromosome.  Only
	// used in mate-pair mode.
	Uncovered interval.ByRef
	// Joiners holds the joiners of each chromosome.  Chromosomes without an
	// entry keep their regions unmerged.
	Joiners map[string]*JoinerSet
	// InsertWindow is the mate-pair insert-size window, if known.
	InsertWindow InsertWindow
}

// ChromosomeResult is the outcome of construction for one chromosome.
type ChromosomeResult struct {
	Name      string
	Regions   []interval.Interval
	Scaffolds []ScaffoldRange
	Records   []Record
}

// Stats summarizes an upper-bound assembly.
type Stats struct {
	Records  int
	Repeats  int
	TotalLen int64
	N50      int
}

// Result is the upper-bound assembly of a reference.
type Result struct {
	Chromosomes []ChromosomeResult
	// Records lists the records of all chromosomes in reference order, with
	// repeat copies already emitted for an earlier chromosome removed.
	Records []Record
	Stats   Stats
}

// chromParallelism returns the number of workers used for n chromosomes;
// requested <= 0 means runtime.NumCPU().
func chromParallelism(requested, n int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested > n {
		requested = n
	}
	return requested
}

func kindForMode(m Mode) JoinerKind {
	if m == LongRead {
		return LongReadJoiner
	}
	return MatePairJoiner
}

// buildChromosome runs region extraction, pairing, scaffolding and
// reconstruction for one chromosome.  js may be nil.
func buildChromosome(chrom Chromosome, repeats, uncovered []interval.Interval, js *JoinerSet, opts *Opts) ChromosomeResult {
	result := ChromosomeResult{Name: chrom.Name}
	if len(chrom.Seq) == 0 {
		log.Error.Printf("%s: empty sequence, skipping", chrom.Name)
		return result
	}
	result.Regions = ExtractUniqueRegions(chrom.Name, chrom.Len(), repeats, uncovered)
	pairs := SupportedAdjacencies(result.Regions, js, opts.MinOverlap, opts.MinConnections())
	result.Scaffolds = Scaffold(result.Regions, pairs)
	result.Records = Reconstruct(chrom, result.Scaffolds, repeats, uncovered, opts)
	log.Debug.Printf("%s: %d region(s), %d supported adjacency(ies), %d scaffold(s), %d record(s)",
		chrom.Name, len(result.Regions), len(pairs), len(result.Scaffolds), len(result.Records))
	return result
}

// computeStats returns record count, total length and N50 of recs.
func computeStats(recs []Record) Stats {
	s := Stats{Records: len(recs)}
	lens := make([]int, len(recs))
	for i, r := range recs {
		lens[i] = len(r.Seq)
		s.TotalLen += int64(lens[i])
		if r.Repeat {
			s.Repeats++
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lens)))
	var cum int64
	for _, l := range lens {
		cum += int64(l)
		if 2*cum >= s.TotalLen {
			s.N50 = l
			break
		}
	}
	return s
}

// Build constructs the upper-bound assembly of in.Reference.  Chromosomes
// are processed in parallel, at most opts.Parallelism at a time.  The only
// errors are configuration errors, reported before any chromosome is
// processed; anomalies in the inputs of one chromosome are logged and
// skipped.
func Build(in *Input, opts Opts) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	kind := kindForMode(opts.Mode)
	for chrom, js := range in.Joiners {
		if js != nil && js.Kind != kind {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("upperbound: %s joiners for %s in %v mode", js.Kind, chrom, opts.Mode))
		}
		if js != nil && js.Kind == MatePairJoiner && len(js.Joiners) > 0 && js.ReadLength <= 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("upperbound: mate-pair joiners for %s have read length %d", chrom, js.ReadLength))
		}
	}
	uncovered := in.Uncovered
	if opts.Mode == LongRead && len(uncovered) > 0 {
		log.Printf("upperbound: ignoring uncovered intervals in %v mode", opts.Mode)
		uncovered = nil
	}

	threshold := opts.RepeatThreshold(int(in.InsertWindow.Max))
	repeats, err := ValidateRepeats(in.Candidates, in.Hits, threshold, &opts)
	if err != nil {
		return nil, err
	}
	log.Printf("upperbound: repeat threshold %d, %d candidate(s), repeats on %d chromosome(s)",
		threshold, len(in.Candidates), len(repeats))

	known := make(map[string]bool, len(in.Reference))
	for _, c := range in.Reference {
		known[c.Name] = true
	}
	for chrom := range in.Joiners {
		if !known[chrom] {
			log.Error.Printf("upperbound: ignoring joiners for unknown reference %s", chrom)
		}
	}

	n := len(in.Reference)
	result := &Result{Chromosomes: make([]ChromosomeResult, n)}
	if n > 0 {
		parallelism := chromParallelism(opts.Parallelism, n)
		err := traverse.Each(parallelism, func(jobIdx int) error {
			for i := jobIdx; i < n; i += parallelism {
				chrom := in.Reference[i]
				result.Chromosomes[i] = buildChromosome(chrom, repeats[chrom.Name], uncovered[chrom.Name], in.Joiners[chrom.Name], &opts)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[uint64]bool)
	for _, cr := range result.Chromosomes {
		for _, rec := range cr.Records {
			if rec.Repeat {
				if seen[rec.fingerprint] {
					continue
				}
				seen[rec.fingerprint] = true
			}
			result.Records = append(result.Records, rec)
		}
	}
	result.Stats = computeStats(result.Records)
	log.Printf("upperbound: %d record(s) (%d repeat), total length %d, N50 %d",
		result.Stats.Records, result.Stats.Repeats, result.Stats.TotalLen, result.Stats.N50)
	return result, nil
}
