package fasta

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// IndexEntry is one line of a samtools faidx index
// (http://www.htslib.org/doc/faidx.html): "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
type IndexEntry struct {
	Name      string
	Length    uint64
	Offset    uint64
	LineBases uint64
	LineWidth uint64
}

// WriteIndex writes entries in .fai format.
func WriteIndex(out io.Writer, entries []IndexEntry) error {
	tsvOut := tsv.NewWriter(out)
	for _, ent := range entries {
		tsvOut.WriteString(ent.Name)
		tsvOut.WriteInt64(int64(ent.Length))
		tsvOut.WriteInt64(int64(ent.Offset))
		tsvOut.WriteInt64(int64(ent.LineBases))
		tsvOut.WriteInt64(int64(ent.LineWidth))
		if err := tsvOut.EndLine(); err != nil {
			return err
		}
	}
	return tsvOut.Flush()
}
