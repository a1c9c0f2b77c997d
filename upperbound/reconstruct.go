package upperbound

import (
	"bytes"
	"strconv"
	"strings"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/log"
	"github.com/grailbio/upperbound/encoding/fasta"
	"github.com/grailbio/upperbound/interval"
)

// Chromosome is one reference sequence.
type Chromosome struct {
	Name string
	Seq  string
}

// Len returns the length of c.
func (c Chromosome) Len() interval.PosType {
	return interval.PosType(len(c.Seq))
}

// Record is one reconstructed sequence.
type Record struct {
	fasta.Record
	// Repeat is true for standalone repeat copies.
	Repeat bool

	// fingerprint identifies a repeat copy up to strand.  0 for scaffolds.
	fingerprint uint64
}

// repeatFingerprint hashes the strand-independent form of seq, so that
// copies of one repeat on either strand share a fingerprint.
func repeatFingerprint(seq string) uint64 {
	fwd := strings.ToUpper(seq)
	rev := fasta.ReverseComplement(fwd)
	if rev < fwd {
		fwd = rev
	}
	return farm.Fingerprint64([]byte(fwd))
}

// trimGaps removes leading and trailing runs of gap from seq.
func trimGaps(seq []byte, gap byte) []byte {
	start, end := 0, len(seq)
	for start < end && seq[start] == gap {
		start++
	}
	for end > start && seq[end-1] == gap {
		end--
	}
	return seq[start:end]
}

// reconstructor accumulates the records of one chromosome.
type reconstructor struct {
	chrom   Chromosome
	opts    *Opts
	records []Record
	seen    map[uint64]bool

	nScaffold, nRepeat int
	nShort, nDupRepeat int
}

func (rc *reconstructor) add(seq []byte, repeat bool, fp uint64) {
	seq = trimGaps(seq, rc.opts.GapChar)
	if len(seq) == 0 || len(seq) < rc.opts.MinContigLength {
		rc.nShort++
		return
	}
	var name string
	if repeat {
		rc.nRepeat++
		name = rc.chrom.Name + "_repeat_" + strconv.Itoa(rc.nRepeat)
	} else {
		rc.nScaffold++
		name = rc.chrom.Name + "_" + strconv.Itoa(rc.nScaffold)
	}
	rc.records = append(rc.records, Record{
		Record:      fasta.Record{Name: name, Seq: string(seq)},
		Repeat:      repeat,
		fingerprint: fp,
	})
}

func (rc *reconstructor) addRepeat(iv interval.Interval) {
	seq := rc.chrom.Seq[iv.Start:iv.End]
	fp := repeatFingerprint(seq)
	if rc.seen[fp] {
		rc.nDupRepeat++
		return
	}
	rc.seen[fp] = true
	rc.add([]byte(seq), true, fp)
}

// addScaffold emits the bases of s with every uncovered interval inside it
// replaced by a gap run of the same length.
func (rc *reconstructor) addScaffold(s ScaffoldRange, uncovered []interval.Interval) {
	seq := []byte(rc.chrom.Seq[s.Start:s.End])
	for _, u := range uncovered {
		if u.End <= s.Start {
			continue
		}
		if u.Start >= s.End {
			break
		}
		start, end := u.Start, u.End
		if start < s.Start {
			start = s.Start
		}
		if end > s.End {
			end = s.End
		}
		copy(seq[start-s.Start:end-s.Start], bytes.Repeat([]byte{rc.opts.GapChar}, int(end-start)))
	}
	rc.add(seq, false, 0)
}

// Reconstruct emits the records of one chromosome: one per scaffold, with
// standalone records for the repeat copies on the chromosome interleaved by
// position.  Each repeat is emitted before the first scaffold starting at or
// after its end; the rest follow the last scaffold.  Repeat copies with the
// same sequence, on either strand, are emitted once.
//
// uncovered must be nil in long-read mode.  If the chromosome has neither
// scaffolds nor uncovered intervals, i.e. it is entirely repeat, the whole
// sequence is emitted as one record.  Records shorter than
// opts.MinContigLength after gap trimming are dropped.
func Reconstruct(chrom Chromosome, scaffolds []ScaffoldRange, repeats, uncovered []interval.Interval, opts *Opts) []Record {
	rc := reconstructor{chrom: chrom, opts: opts, seen: make(map[uint64]bool)}
	length := chrom.Len()
	repeats = inBounds(chrom.Name, length, repeats, "repeat")
	interval.Sort(repeats)
	uncovered = interval.Merge(inBounds(chrom.Name, length, uncovered, "uncovered"), 0)

	if len(scaffolds) == 0 && len(uncovered) == 0 {
		rc.add([]byte(chrom.Seq), false, 0)
		return rc.records
	}
	next := 0
	for _, s := range scaffolds {
		for ; next < len(repeats) && repeats[next].End <= s.Start; next++ {
			rc.addRepeat(repeats[next])
		}
		rc.addScaffold(s, uncovered)
	}
	for ; next < len(repeats); next++ {
		rc.addRepeat(repeats[next])
	}
	if rc.nShort > 0 || rc.nDupRepeat > 0 {
		log.Debug.Printf("%s: dropped %d short record(s) and %d duplicate repeat copy(ies)", chrom.Name, rc.nShort, rc.nDupRepeat)
	}
	return rc.records
}
