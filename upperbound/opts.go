package upperbound

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/upperbound/interval"
)

// Mode selects the kind of read evidence used to join unique regions.  The
// two kinds are mutually exclusive within one run.
type Mode int

const (
	// ModeUnset is a sentinel; Opts.Validate rejects it.
	ModeUnset Mode = iota
	// MatePair joins regions with read pairs from a mate-pair or paired-end
	// library.  Zero-coverage gaps are excluded from unique regions and
	// re-inserted as runs of GapChar.
	MatePair
	// LongRead joins regions with single long-read alignments.
	LongRead
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case MatePair:
		return "mate-pair"
	case LongRead:
		return "long-read"
	}
	return "unset"
}

// ParseMode parses the String() form of a Mode.  It returns ModeUnset for an
// unknown name.
func ParseMode(name string) Mode {
	switch name {
	case "mate-pair":
		return MatePair
	case "long-read":
		return LongRead
	}
	return ModeUnset
}

// Opts holds the thresholds of upper-bound construction.  Field names double
// as the keys of the YAML parameter file read by bio-upperbound.
type Opts struct {
	Mode Mode `yaml:"-"`

	// MinOverlap is the number of bases a joiner must overlap a unique region
	// by to count as anchored in it.  It guards against reads that barely clip
	// a region edge.
	MinOverlap int `yaml:"min_overlap"`

	// MatePairMinConnections is the number of independent mate-pair joiners
	// required before two adjacent regions are merged.
	MatePairMinConnections int `yaml:"mate_pair_min_connections"`
	// LongReadMinConnections is the same threshold for long reads.
	LongReadMinConnections int `yaml:"long_read_min_connections"`

	// MinContigLength is the length below which reconstructed records are
	// dropped.
	MinContigLength int `yaml:"min_contig_length"`

	// MinRepeatLength is the matched-base count a re-alignment hit must exceed
	// to count as a repeat copy.  0 derives it from the insert-size window
	// (mate-pair mode) or falls back to DefaultRepeatLength.
	MinRepeatLength int `yaml:"min_repeat_length"`
	// RepeatCoverageFraction is the fraction of a candidate's length a merged
	// copy must span to be accepted.
	RepeatCoverageFraction float64 `yaml:"repeat_coverage_fraction"`
	// RepeatHitsZeroBased selects how the query names of re-alignment hits
	// number the candidate's range: 0-based half-open ("chr1:4000-4300") if
	// set, samtools-style 1-based closed ("chr1:4001-4300") otherwise.
	RepeatHitsZeroBased bool `yaml:"repeat_hits_zero_based"`
	// RepeatMergeTolerance is the distance within which long-read mode treats
	// two repeat copies as the same copy.
	RepeatMergeTolerance int `yaml:"repeat_merge_tolerance"`

	// InsertSizeMin and InsertSizeMax bound accepted mate-pair spans.  If both
	// are 0, the window is estimated from the alignments.
	InsertSizeMin int `yaml:"insert_size_min"`
	InsertSizeMax int `yaml:"insert_size_max"`
	// InsertSampleSize is the number of concordant pairs sampled when
	// estimating the insert-size window.
	InsertSampleSize int `yaml:"insert_sample_size"`
	// MinMapQ is the mapping quality below which an alignment is considered
	// not uniquely placed and ignored.
	MinMapQ int `yaml:"min_mapq"`

	// GapChar fills zero-coverage gaps inside scaffolds.
	GapChar byte `yaml:"-"`

	// Parallelism is the maximum number of chromosomes processed at once; 0 =
	// runtime.NumCPU().
	Parallelism int `yaml:"parallelism"`
}

// DefaultRepeatLength is the repeat threshold used when neither
// Opts.MinRepeatLength nor an insert-size window is available.
const DefaultRepeatLength = 500

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	MinOverlap:             10,
	MatePairMinConnections: 2,
	LongReadMinConnections: 1,
	MinContigLength:        500,
	MinRepeatLength:        0,
	RepeatCoverageFraction: 0.9,
	RepeatMergeTolerance:   100,
	InsertSampleSize:       10000,
	MinMapQ:                20,
	GapChar:                'N',
}

// Validate checks opts for configuration errors.  These are the only fatal
// errors of upper-bound construction, and are detected before any chromosome
// is processed.
func (o *Opts) Validate() error {
	switch {
	case o.Mode != MatePair && o.Mode != LongRead:
		return errors.E(errors.Invalid, "upperbound: exactly one of mate-pair or long-read evidence is required")
	case o.MinOverlap < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("upperbound: negative MinOverlap %d", o.MinOverlap))
	case o.MatePairMinConnections < 1 || o.LongReadMinConnections < 1:
		return errors.E(errors.Invalid, "upperbound: min connections must be at least 1")
	case o.MinContigLength < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("upperbound: negative MinContigLength %d", o.MinContigLength))
	case o.MinRepeatLength < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("upperbound: negative MinRepeatLength %d", o.MinRepeatLength))
	case o.RepeatCoverageFraction <= 0 || o.RepeatCoverageFraction > 1:
		return errors.E(errors.Invalid, "upperbound: RepeatCoverageFraction must be in (0, 1]")
	case o.RepeatMergeTolerance < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("upperbound: negative RepeatMergeTolerance %d", o.RepeatMergeTolerance))
	case o.InsertSizeMin < 0 || o.InsertSizeMax < 0 || (o.InsertSizeMax != 0 && o.InsertSizeMin > o.InsertSizeMax):
		return errors.E(errors.Invalid, fmt.Sprintf("upperbound: invalid insert-size window [%d, %d]", o.InsertSizeMin, o.InsertSizeMax))
	case o.GapChar == 0:
		return errors.E(errors.Invalid, "upperbound: GapChar not set")
	}
	return nil
}

// HitConvention returns the numbering of re-alignment query names.
func (o *Opts) HitConvention() interval.Convention {
	if o.RepeatHitsZeroBased {
		return interval.ZeroBased
	}
	return interval.OneBased
}

// MinConnections returns the support threshold for the configured mode.
func (o *Opts) MinConnections() int {
	if o.Mode == LongRead {
		return o.LongReadMinConnections
	}
	return o.MatePairMinConnections
}

// RepeatThreshold returns the matched-base count a repeat copy must exceed,
// given the upper end of the insert-size window (0 if unknown).
func (o *Opts) RepeatThreshold(insertMax int) int {
	if o.MinRepeatLength > 0 {
		return o.MinRepeatLength
	}
	if o.Mode == MatePair && insertMax > 0 {
		return insertMax
	}
	return DefaultRepeatLength
}
