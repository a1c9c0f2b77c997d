package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// Convention selects how the range of a region string is numbered.
type Convention int

const (
	// OneBased ranges are 1-based and closed, as in samtools:
	// "chr1:4001-4300".
	OneBased Convention = iota
	// ZeroBased ranges are 0-based and half-open, as in BED: "chr1:4000-4300".
	ZeroBased
)

// String implements fmt.Stringer.
func (c Convention) String() string {
	if c == ZeroBased {
		return "zero-based"
	}
	return "one-based"
}

// Entry represents a single interval on a named chromosome, with 0-based
// coordinates.
type Entry struct {
	RefName string
	Start0  PosType
	End     PosType
}

// Interval returns the coordinates of e without the chromosome name.
func (e Entry) Interval() Interval {
	return Interval{e.Start0, e.End}
}

// Format formats e as "[contig ID]:[first pos]-[end pos]" under conv.
func (e Entry) Format(conv Convention) string {
	start := int(e.Start0)
	if conv == OneBased {
		start++
	}
	return e.RefName + ":" + strconv.Itoa(start) + "-" + strconv.Itoa(int(e.End))
}

// RegionString formats e in the samtools-style form accepted by
// ParseRegionString.
func (e Entry) RegionString() string {
	return e.Format(OneBased)
}

func parsePos(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 32)
}

// ParseRegion parses a region string of one of the forms
//   [contig ID]:[first pos]-[end pos]
//   [contig ID]:[pos]
//   [contig ID]
// whose positions are numbered under conv.  The interval
// [0, PosTypeMax - 1] is returned if there is no positional restriction.
//
// The last colon separates the contig ID from the range, so contig IDs
// containing colons (e.g. "HLA-A*01:01:01:01") are handled as long as a range
// is given.
func ParseRegion(region string, conv Convention) (Entry, error) {
	if len(region) == 0 {
		return Entry{}, fmt.Errorf("interval.ParseRegion: empty region string")
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		return Entry{RefName: region, Start0: 0, End: PosTypeMax - 1}, nil
	}
	if colonPos == 0 {
		return Entry{}, fmt.Errorf("interval.ParseRegion: empty contig ID in %q", region)
	}
	rangeStr := region[colonPos+1:]
	firstStr, endStr := rangeStr, ""
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos != -1 {
		firstStr, endStr = rangeStr[:dashPos], rangeStr[dashPos+1:]
	}
	start, err := parsePos(firstStr)
	if err != nil {
		return Entry{}, fmt.Errorf("interval.ParseRegion: %q: %v", region, err)
	}
	if conv == OneBased {
		start--
	}
	if start < 0 {
		return Entry{}, fmt.Errorf("interval.ParseRegion: position %v in %q out of range", firstStr, region)
	}
	end := start + 1
	if dashPos != -1 {
		if end, err = parsePos(endStr); err != nil {
			return Entry{}, fmt.Errorf("interval.ParseRegion: %q: %v", region, err)
		}
	}
	if end <= start || end >= PosTypeMax {
		return Entry{}, fmt.Errorf("interval.ParseRegion: invalid %v range %v", conv, rangeStr)
	}
	return Entry{RefName: region[:colonPos], Start0: PosType(start), End: PosType(end)}, nil
}

// ParseRegionString is ParseRegion for samtools-style (OneBased) region
// strings.
func ParseRegionString(region string) (Entry, error) {
	return ParseRegion(region, OneBased)
}
