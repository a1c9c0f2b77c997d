// Package paf reads pairwise alignment records in the PAF format emitted by
// minimap2 and similar aligners
// (https://github.com/lh3/miniasm/blob/master/PAF.md).  Only the twelve
// mandatory columns are interpreted; optional SAM-style tags are ignored.
package paf

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

const nMandatoryCols = 12

// Record is one alignment.  Coordinates are 0-based half-open, as in the file.
type Record struct {
	QueryName  string
	QueryLen   int
	QueryStart int
	QueryEnd   int
	// Strand is '+' or '-'.
	Strand      byte
	TargetName  string
	TargetLen   int
	TargetStart int
	TargetEnd   int
	// Matches is the number of matching bases in the alignment.
	Matches int
	// AlignLen is the number of bases, including gaps, in the alignment.
	AlignLen int
	MapQ     int
}

// Stats summarizes one Read call.
type Stats struct {
	Lines   int
	Skipped int
}

func parseRecord(cols [][]byte) (rec Record, err error) {
	ints := [...]*int{
		1: &rec.QueryLen, 2: &rec.QueryStart, 3: &rec.QueryEnd,
		6: &rec.TargetLen, 7: &rec.TargetStart, 8: &rec.TargetEnd,
		9: &rec.Matches, 10: &rec.AlignLen, 11: &rec.MapQ,
	}
	for i, dst := range ints {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.Atoi(gunsafe.BytesToString(cols[i])); err != nil {
			return
		}
	}
	if len(cols[4]) != 1 || (cols[4][0] != '+' && cols[4][0] != '-') {
		err = fmt.Errorf("invalid strand %q", cols[4])
		return
	}
	rec.Strand = cols[4][0]
	if rec.QueryStart > rec.QueryEnd || rec.TargetStart > rec.TargetEnd || rec.TargetStart < 0 {
		err = fmt.Errorf("invalid coordinates")
		return
	}
	rec.QueryName = string(cols[0])
	rec.TargetName = string(cols[5])
	return
}

// Read parses every line of r.  Lines that can't be parsed are skipped and
// counted; only read errors are returned.
func Read(r io.Reader) (recs []Record, stats Stats, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 64<<20)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		stats.Lines++
		cols := bytes.SplitN(line, []byte{'\t'}, nMandatoryCols+1)
		if len(cols) < nMandatoryCols {
			log.Debug.Printf("paf.Read: line %d has %d columns, skipping", lineIdx, len(cols))
			stats.Skipped++
			continue
		}
		rec, e := parseRecord(cols)
		if e != nil {
			log.Debug.Printf("paf.Read: line %d: %v, skipping", lineIdx, e)
			stats.Skipped++
			continue
		}
		recs = append(recs, rec)
	}
	err = scanner.Err()
	return
}

// ReadFromPath is a wrapper for Read that takes a path instead of an
// io.Reader.  Gzipped files are decompressed transparently.
func ReadFromPath(ctx context.Context, path string) (recs []Record, err error) {
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	var stats Stats
	if recs, stats, err = Read(reader); err != nil {
		return
	}
	if stats.Skipped > 0 {
		log.Error.Printf("%s: skipped %d of %d malformed PAF line(s)", path, stats.Skipped, stats.Lines)
	}
	log.Printf("%s: loaded %d alignment(s)", path, len(recs))
	return
}

// GroupByQuery buckets records by QueryName, preserving file order within
// each bucket.
func GroupByQuery(recs []Record) map[string][]Record {
	m := make(map[string][]Record)
	for _, rec := range recs {
		m[rec.QueryName] = append(m[rec.QueryName], rec)
	}
	return m
}
