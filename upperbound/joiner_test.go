package upperbound

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/upperbound/interval"
)

func TestEstimateInsertWindow(t *testing.T) {
	var spans []interval.PosType
	for i := 100; i >= 1; i-- {
		spans = append(spans, interval.PosType(i*10))
	}
	w, err := EstimateInsertWindow(spans)
	expect.NoError(t, err)
	expect.EQ(t, w, InsertWindow{Min: 100, Max: 900})
	// The input is left alone.
	expect.EQ(t, spans[0], interval.PosType(1000))

	w, err = EstimateInsertWindow([]interval.PosType{3000})
	expect.NoError(t, err)
	expect.EQ(t, w, InsertWindow{Min: 3000, Max: 3000})

	_, err = EstimateInsertWindow(nil)
	expect.NotNil(t, err)
}

func TestMedianReadLength(t *testing.T) {
	expect.EQ(t, MedianReadLength(nil), interval.PosType(0))
	expect.EQ(t, MedianReadLength([]int{150, 100, 151}), interval.PosType(150))
}

func TestNewJoinerSet(t *testing.T) {
	spans := []interval.Interval{{Start: 500, End: 3500}, {Start: 100, End: 2100}, {Start: 100, End: 200}, {Start: 100, End: 1900}, {Start: 40, End: 40}}
	js := NewJoinerSet(MatePairJoiner, spans, 100, InsertWindow{Min: 1500, Max: 3000})
	expect.EQ(t, js.Joiners, []Joiner{{interval.Interval{Start: 100, End: 1900}}, {interval.Interval{Start: 100, End: 2100}}, {interval.Interval{Start: 500, End: 3500}}})
	expect.EQ(t, js.ReadLength, interval.PosType(100))

	// Long reads ignore the window.
	js = NewJoinerSet(LongReadJoiner, spans, 0, InsertWindow{Min: 1500, Max: 3000})
	expect.EQ(t, len(js.Joiners), 4)
	expect.EQ(t, js.byEndDesc(), []int{3, 2, 1, 0})
}
