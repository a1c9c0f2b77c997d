package interval

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region  string
		chrName string
		start0  PosType
		end     PosType
	}{
		{
			"chr1:1-1000",
			"chr1",
			0,
			1000,
		},
		{
			"chr1:1000",
			"chr1",
			999,
			1000,
		},
		{
			"chr1",
			"chr1",
			0,
			PosTypeMax - 1,
		},
		{
			"HLA-A*01:01:01:01:5-10",
			"HLA-A*01:01:01:01",
			4,
			10,
		},
	}

	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result.RefName, tt.chrName)
		expect.EQ(t, result.Start0, tt.start0)
		expect.EQ(t, result.End, tt.end)
	}
}

func TestParseRegionStringErrors(t *testing.T) {
	for _, region := range []string{"", ":1-10", "chr1:0-10", "chr1:10-5", "chr1:a-b", "chr1:0"} {
		_, err := ParseRegionString(region)
		expect.NotNil(t, err, region)
	}
}

func TestRegionStringRoundTrip(t *testing.T) {
	for _, e := range []Entry{
		{"chr1", 0, 1},
		{"chr7", 4000, 4300},
		{"scaffold:12", 99, 1000},
	} {
		parsed, err := ParseRegionString(e.RegionString())
		expect.NoError(t, err)
		expect.EQ(t, parsed, e)
	}
	expect.EQ(t, Entry{"chr7", 4000, 4300}.RegionString(), "chr7:4001-4300")
}

func TestParseZeroBasedRegion(t *testing.T) {
	tests := []struct {
		region string
		want   Entry
	}{
		{"chr1:4000-4300", Entry{"chr1", 4000, 4300}},
		{"chr1:0-300", Entry{"chr1", 0, 300}},
		{"chr1:1000", Entry{"chr1", 1000, 1001}},
		{"scaffold:12:99-1000", Entry{"scaffold:12", 99, 1000}},
	}
	for _, tt := range tests {
		got, err := ParseRegion(tt.region, ZeroBased)
		expect.NoError(t, err, tt.region)
		expect.EQ(t, got, tt.want)
	}
	for _, region := range []string{"chr1:5-5", "chr1:-1-5", "chr1:10-5", ":0-10"} {
		_, err := ParseRegion(region, ZeroBased)
		expect.NotNil(t, err, region)
	}

	// The same string names different intervals under the two conventions.
	one, err := ParseRegion("chr1:4000-4300", OneBased)
	expect.NoError(t, err)
	expect.EQ(t, one, Entry{"chr1", 3999, 4300})
	expect.EQ(t, Entry{"chr1", 4000, 4300}.Format(ZeroBased), "chr1:4000-4300")
}
