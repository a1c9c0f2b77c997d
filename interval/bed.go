package interval

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops are better than any of the standard library
		// string-split functions for the first three columns of a BED.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// NewBEDOpts defines behavior of this package's BED-loading function(s).
type NewBEDOpts struct {
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).  Repeat finders differ
	// on this, so it is a property of the input rather than an assumption.
	OneBasedInput bool
	// Union merges overlapping and touching intervals of each chromosome.
	// Otherwise every well-formed line is kept as its own interval, in file
	// order.
	Union bool
}

// BEDStats summarizes one BED load.
type BEDStats struct {
	// Lines is the number of non-blank, non-comment lines seen.
	Lines int
	// Skipped is the number of malformed lines that were ignored.
	Skipped int
}

func isCommentLine(tok []byte) bool {
	return tok[0] == '#' ||
		(len(tok) >= 5 && string(tok[:5]) == "track") ||
		(len(tok) >= 7 && string(tok[:7]) == "browser")
}

func scanBED(scanner *bufio.Scanner, opts NewBEDOpts) (result ByRef, stats BEDStats, err error) {
	result = make(ByRef)

	var startSubtract int
	if opts.OneBasedInput {
		startSubtract++
	}

	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 || isCommentLine(tokens[0]) {
			continue
		}
		stats.Lines++
		if nToken != 3 {
			log.Debug.Printf("interval.scanBED: line %d has fewer tokens than expected, skipping", lineIdx)
			stats.Skipped++
			continue
		}
		parsedStart, e1 := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		parsedEnd, e2 := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if e1 != nil || e2 != nil {
			log.Debug.Printf("interval.scanBED: unparseable coordinates on line %d, skipping", lineIdx)
			stats.Skipped++
			continue
		}
		parsedStart -= startSubtract
		if parsedStart < 0 || parsedEnd < parsedStart || parsedEnd >= PosTypeMax {
			log.Debug.Printf("interval.scanBED: invalid coordinate pair [%d, %d) on line %d, skipping", parsedStart, parsedEnd, lineIdx)
			stats.Skipped++
			continue
		}
		if parsedEnd == parsedStart {
			continue
		}
		// The map key must be a heap copy; tokens[0] points into the scanner
		// buffer, which is overwritten by the next Scan().
		chrName := string(tokens[0])
		result[chrName] = append(result[chrName], Interval{PosType(parsedStart), PosType(parsedEnd)})
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if opts.Union {
		for chrName, ivs := range result {
			result[chrName] = Merge(ivs, 0)
		}
	}
	return
}

// NewBED loads the first three columns of every line of a BED file.  Lines
// that can't be parsed are skipped (and counted in the returned BEDStats), so
// a partially corrupt file still yields its good intervals.  Only read errors
// are returned.
func NewBED(reader io.Reader, opts NewBEDOpts) (ByRef, BEDStats, error) {
	scanner := bufio.NewScanner(reader)
	return scanBED(scanner, opts)
}

// NewBEDFromPath is a wrapper for NewBED that takes a path instead of an
// io.Reader.  Gzipped files are decompressed transparently.
func NewBEDFromPath(ctx context.Context, path string, opts NewBEDOpts) (result ByRef, err error) {
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
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	var stats BEDStats
	if result, stats, err = NewBED(reader, opts); err != nil {
		return
	}
	if stats.Skipped > 0 {
		log.Error.Printf("%s: skipped %d of %d malformed BED line(s)", path, stats.Skipped, stats.Lines)
	}
	log.Printf("%s: loaded intervals for %d chromosome(s)", path, len(result))
	return
}
