package interval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func TestLoadBEDIntervals(t *testing.T) {
	tests := []struct {
		pathname string
		opts     NewBEDOpts
		want     ByRef
	}{
		{"testdata/repeats.bed",
			NewBEDOpts{},
			ByRef{
				"chr1": []Interval{{100, 200}, {150, 300}},
				"chr2": []Interval{{0, 50}, {90, 95}},
			},
		},
		{"testdata/repeats.bed",
			NewBEDOpts{Union: true},
			ByRef{
				"chr1": []Interval{{100, 300}},
				"chr2": []Interval{{0, 50}, {90, 95}},
			},
		},
		{"testdata/repeats.bed",
			NewBEDOpts{OneBasedInput: true},
			ByRef{
				"chr1": []Interval{{99, 200}, {149, 300}},
				"chr2": []Interval{{0, 50}, {79, 80}, {89, 95}},
			},
		},
	}
	ctx := vcontext.Background()
	for _, tt := range tests {
		result, err := NewBEDFromPath(ctx, tt.pathname, tt.opts)
		assert.NoError(t, err)
		expect.EQ(t, result, tt.want, "opts=%+v", tt.opts)
	}
}

func TestBEDSkipsMalformedLines(t *testing.T) {
	in := "chr1\t10\t20\nchr1\t30\nchr1\t-5\t10\nchr1\t50\t40\nchr1\t60\tx\nchr1\t70\t80\n"
	result, stats, err := NewBED(strings.NewReader(in), NewBEDOpts{})
	assert.NoError(t, err)
	expect.EQ(t, stats, BEDStats{Lines: 6, Skipped: 4})
	expect.EQ(t, result, ByRef{"chr1": []Interval{{10, 20}, {70, 80}}})
}

func TestBEDGzip(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tmpDir, "uncovered.bed.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte("chrM\t0\t16569\n"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())

	result, err := NewBEDFromPath(vcontext.Background(), path, NewBEDOpts{})
	assert.NoError(t, err)
	expect.EQ(t, result, ByRef{"chrM": []Interval{{0, 16569}}})
}
