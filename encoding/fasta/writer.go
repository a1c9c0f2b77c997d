package fasta

import (
	"bufio"
	"io"
)

// DefaultLineWidth is the number of bases per line written by Writer, the
// width used by most reference FASTA files.
const DefaultLineWidth = 60

// Record is a single named FASTA sequence.
type Record struct {
	Name string
	Seq  string
}

// Writer writes FASTA records, wrapping sequence lines at a fixed width.  It
// also tracks what a samtools faidx index of the output would contain, so the
// index can be written without re-reading the file.
type Writer struct {
	w         *bufio.Writer
	lineWidth int
	off       int64
	index     []IndexEntry
}

// NewWriter creates a Writer.  lineWidth <= 0 selects DefaultLineWidth.
func NewWriter(w io.Writer, lineWidth int) *Writer {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return &Writer{w: bufio.NewWriter(w), lineWidth: lineWidth}
}

func (w *Writer) writeString(s string) error {
	n, err := w.w.WriteString(s)
	w.off += int64(n)
	return err
}

// Write appends one record.
func (w *Writer) Write(rec Record) error {
	if err := w.writeString(">" + rec.Name + "\n"); err != nil {
		return err
	}
	ent := IndexEntry{
		Name:      rec.Name,
		Length:    uint64(len(rec.Seq)),
		Offset:    uint64(w.off),
		LineBases: uint64(w.lineWidth),
	}
	if len(rec.Seq) < w.lineWidth {
		ent.LineBases = uint64(len(rec.Seq))
	}
	ent.LineWidth = ent.LineBases + 1
	for start := 0; start < len(rec.Seq); start += w.lineWidth {
		end := start + w.lineWidth
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if err := w.writeString(rec.Seq[start:end]); err != nil {
			return err
		}
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}
	w.index = append(w.index, ent)
	return nil
}

// Flush flushes buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Index returns the index entries of the records written so far.
func (w *Writer) Index() []IndexEntry {
	return w.index
}
