package upperbound

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/upperbound/interval"
	"github.com/stretchr/testify/require"
)

func joiners(kind JoinerKind, readLen interval.PosType, spans ...interval.Interval) *JoinerSet {
	js := NewJoinerSet(kind, spans, readLen, InsertWindow{})
	return &js
}

var threeRegions = []interval.Interval{{Start: 0, End: 100}, {Start: 200, End: 300}, {Start: 400, End: 500}}

func TestMinOverlapBoundary(t *testing.T) {
	regions := threeRegions[:2]
	tests := []struct {
		span interval.Interval
		want []RegionPairing
	}{
		// Reaches 9 bases into the right region.
		{interval.Interval{Start: 50, End: 209}, nil},
		{interval.Interval{Start: 50, End: 210}, []RegionPairing{{0, 1}}},
		// Starts 9 bases before the end of the left region.
		{interval.Interval{Start: 91, End: 250}, nil},
		{interval.Interval{Start: 90, End: 250}, []RegionPairing{{0, 1}}},
	}
	for _, tt := range tests {
		got := SupportedAdjacencies(regions, joiners(LongReadJoiner, 0, tt.span), 10, 1)
		expect.EQ(t, got, tt.want, "joiner %v", tt.span)
	}
}

func TestMinConnections(t *testing.T) {
	span := interval.Interval{Start: 50, End: 250}
	for k := 1; k <= 4; k++ {
		var spans []interval.Interval
		for i := 0; i < k-1; i++ {
			spans = append(spans, span)
		}
		got := SupportedAdjacencies(threeRegions, joiners(MatePairJoiner, 60, spans...), 10, k)
		expect.EQ(t, len(got), 0, "k=%d", k)

		spans = append(spans, span)
		got = SupportedAdjacencies(threeRegions, joiners(MatePairJoiner, 60, spans...), 10, k)
		expect.EQ(t, got, []RegionPairing{{0, 1}}, "k=%d", k)
	}
}

func TestMultiRegionJoiner(t *testing.T) {
	js := joiners(LongReadJoiner, 0, interval.Interval{Start: 50, End: 450})
	expect.EQ(t, SupportedAdjacencies(threeRegions, js, 10, 1), []RegionPairing{{0, 1}, {1, 2}})

	// Partial support from disagreeing joiners accumulates per adjacency.
	js = joiners(LongReadJoiner, 0,
		interval.Interval{Start: 50, End: 450},
		interval.Interval{Start: 250, End: 450},
		interval.Interval{Start: 20, End: 220})
	expect.EQ(t, SupportedAdjacencies(threeRegions, js, 10, 2), []RegionPairing{{0, 1}, {1, 2}})
	expect.EQ(t, SupportedAdjacencies(threeRegions, js, 10, 3), []RegionPairing(nil))
}

func TestMatePairReadChecks(t *testing.T) {
	// The pair starts in the gap before region 1, so its left read misses
	// region 1.  As a long read the same span is fine.
	span := interval.Interval{Start: 150, End: 450}
	expect.EQ(t, SupportedAdjacencies(threeRegions, joiners(LongReadJoiner, 0, span), 10, 1),
		[]RegionPairing{{1, 2}})
	expect.EQ(t, SupportedAdjacencies(threeRegions, joiners(MatePairJoiner, 20, span), 10, 1),
		[]RegionPairing(nil))

	// The right read of this pair lies past region 2.  The forward sweep
	// accepts the pair but the reverse sweep does not, and the pair then
	// supports nothing, not even adjacency (0, 1).
	regions := []interval.Interval{{Start: 0, End: 100}, {Start: 200, End: 300}, {Start: 400, End: 500}, {Start: 600, End: 700}}
	js := joiners(MatePairJoiner, 50, interval.Interval{Start: 50, End: 550})
	starts := forwardPass(regions, js, 10)
	ends := reversePass(regions, js, 10)
	expect.EQ(t, starts, map[int]int{0: 0})
	expect.EQ(t, ends, map[int]int{})
	expect.EQ(t, SupportedAdjacencies(regions, js, 10, 1), []RegionPairing(nil))
}

func TestPairingEdgeCases(t *testing.T) {
	span := interval.Interval{Start: 0, End: 1000}
	expect.EQ(t, len(SupportedAdjacencies(nil, joiners(LongReadJoiner, 0, span), 10, 1)), 0)
	expect.EQ(t, len(SupportedAdjacencies(threeRegions[:1], joiners(LongReadJoiner, 0, span), 10, 1)), 0)
	expect.EQ(t, len(SupportedAdjacencies(threeRegions, joiners(LongReadJoiner, 0), 10, 1)), 0)
	expect.EQ(t, len(SupportedAdjacencies(threeRegions, nil, 10, 1)), 0)
	// Joiners entirely inside one region, or past the last one.
	js := joiners(LongReadJoiner, 0, interval.Interval{Start: 210, End: 290}, interval.Interval{Start: 480, End: 900})
	expect.EQ(t, len(SupportedAdjacencies(threeRegions, js, 10, 1)), 0)
}

func TestPairingDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var regions []interval.Interval
	pos := interval.PosType(0)
	for i := 0; i < 50; i++ {
		pos += interval.PosType(r.Intn(300) + 1)
		end := pos + interval.PosType(r.Intn(2000)+20)
		regions = append(regions, interval.Interval{Start: pos, End: end})
		pos = end
	}
	var spans []interval.Interval
	for i := 0; i < 2000; i++ {
		start := interval.PosType(r.Intn(int(pos)))
		spans = append(spans, interval.Interval{Start: start, End: start + interval.PosType(r.Intn(3000)+1)})
	}
	want := SupportedAdjacencies(regions, joiners(MatePairJoiner, 100, spans...), 10, 2)
	require.NotEmpty(t, want)
	for iter := 0; iter < 5; iter++ {
		r.Shuffle(len(spans), func(i, j int) { spans[i], spans[j] = spans[j], spans[i] })
		got := SupportedAdjacencies(regions, joiners(MatePairJoiner, 100, spans...), 10, 2)
		require.Equal(t, want, got)
	}
	for i := 1; i < len(want); i++ {
		require.True(t, want[i-1].Start < want[i].Start)
		require.Equal(t, want[i].Start+1, want[i].End)
	}
}
