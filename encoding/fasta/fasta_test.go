package fasta_test

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/upperbound/encoding/fasta"
	"github.com/klauspost/compress/gzip"
)

var fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"

func TestGet(t *testing.T) {
	tests := []struct {
		seq   string
		start uint64
		end   uint64
		want  string
		err   error
	}{
		{"seq1", 1, 2, "C", nil},
		{"seq1", 1, 6, "CGTAC", nil},
		{"seq1", 0, 12, "ACGTACGTACGT", nil},
		{"seq1", 10, 12, "GT", nil},
		{"seq2", 0, 8, "ACGTACGT", nil},
		{"seq2", 2, 5, "GTA", nil},
		{"seq0", 0, 1, "", fmt.Errorf("sequence not found: seq0")},
		{"seq1", 10, 13, "", fmt.Errorf("invalid query range")},
		{"seq1", 4, 3, "", fmt.Errorf("start must be less than end")},
	}
	fa, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	for _, tt := range tests {
		got, err := fa.Get(tt.seq, tt.start, tt.end)
		if (err == nil && tt.err != nil) || (err != nil && tt.err == nil) {
			t.Errorf("unexpected error: want %v, got %v", tt.err, err)
		}
		if got != tt.want {
			t.Errorf("unexpected sequence: want %s, got %s", tt.want, got)
		}
	}
}

func TestLength(t *testing.T) {
	fa, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	n, err := fa.Len("seq1")
	assert.NoError(t, err)
	assert.EQ(t, n, uint64(12))
	n, err = fa.Len("seq2")
	assert.NoError(t, err)
	assert.EQ(t, n, uint64(8))
	_, err = fa.Len("seq0")
	assert.NotNil(t, err)
	assert.EQ(t, fa.SeqNames(), []string{"seq1", "seq2"})
}

func TestMalformed(t *testing.T) {
	for _, in := range []string{
		"ACGT\n>seq1\nACGT\n",
		">seq1\nACGT\n>seq1\nACGT\n",
		">\nACGT\n",
	} {
		_, err := fasta.New(strings.NewReader(in))
		assert.NotNil(t, err, in)
	}
}

func TestWriterWrapsAndIndexes(t *testing.T) {
	var out bytes.Buffer
	w := fasta.NewWriter(&out, 4)
	assert.NoError(t, w.Write(fasta.Record{Name: "a", Seq: "ACGTACGTAC"}))
	assert.NoError(t, w.Write(fasta.Record{Name: "b", Seq: "GG"}))
	assert.NoError(t, w.Flush())
	assert.EQ(t, out.String(), ">a\nACGT\nACGT\nAC\n>b\nGG\n")

	var idx bytes.Buffer
	assert.NoError(t, fasta.WriteIndex(&idx, w.Index()))
	assert.EQ(t, idx.String(), "a\t10\t3\t4\t5\nb\t2\t19\t2\t3\n")

	fa, err := fasta.New(bytes.NewReader(out.Bytes()))
	assert.NoError(t, err)
	seq, err := fa.Get("a", 0, 10)
	assert.NoError(t, err)
	assert.EQ(t, seq, "ACGTACGTAC")
}

func TestWriterDefaultWidth(t *testing.T) {
	var out bytes.Buffer
	w := fasta.NewWriter(&out, 0)
	seq := strings.Repeat("ACGTA", 26)
	assert.NoError(t, w.Write(fasta.Record{Name: "chr1_1", Seq: seq}))
	assert.NoError(t, w.Flush())
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.EQ(t, len(lines), 4)
	assert.EQ(t, len(lines[1]), fasta.DefaultLineWidth)
	assert.EQ(t, len(lines[2]), fasta.DefaultLineWidth)
	assert.EQ(t, len(lines[3]), 10)
}

func TestReverseComplement(t *testing.T) {
	assert.EQ(t, fasta.ReverseComplement("AACGTN"), "NACGTT")
	assert.EQ(t, fasta.ReverseComplement("acgR"), "Ncgt")
	assert.EQ(t, fasta.ReverseComplement(""), "")
}

func TestLoadGzip(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tmpDir, "ref.fa.gz")
	f, err := os.Create(path)
	assert.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(fastaData))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, f.Close())

	fa, err := fasta.Load(vcontext.Background(), path)
	assert.NoError(t, err)
	seq, err := fa.Get("seq2", 0, 8)
	assert.NoError(t, err)
	assert.EQ(t, seq, "ACGTACGT")
}

var pathFlag = flag.String("path", "", "FASTA file used by benchmarks")

func BenchmarkLoad(b *testing.B) {
	if *pathFlag == "" {
		b.Skip("--path not set")
	}
	for i := 0; i < b.N; i++ {
		fa, err := fasta.Load(vcontext.Background(), *pathFlag)
		assert.NoError(b, err)
		for _, seq := range fa.SeqNames() {
			n, err := fa.Len(seq)
			assert.NoError(b, err)
			_, err = fa.Get(seq, 0, n)
			assert.NoError(b, err)
		}
	}
}
