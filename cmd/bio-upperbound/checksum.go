package main

import (
	"context"
	"encoding/json"
	"fmt"
	"hash"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/upperbound/encoding/fasta"
)

type recordChecksum struct {
	Name   string
	Length uint64
	Sum    uint64
}

// fastaChecksum summarizes a FASTA file.  Sum depends on the names,
// sequences and order of the records, but not on line wrapping.
type fastaChecksum struct {
	Records []recordChecksum
	Sum     uint64
}

func writeField(h hash.Hash64, s string) {
	h.Write([]byte(s))
	h.Write([]byte{0})
}

func computeChecksum(fa fasta.Fasta) (fastaChecksum, error) {
	var csum fastaChecksum
	total := seahash.New()
	for _, name := range fa.SeqNames() {
		n, err := fa.Len(name)
		if err != nil {
			return csum, err
		}
		var seq string
		if n > 0 {
			if seq, err = fa.Get(name, 0, n); err != nil {
				return csum, err
			}
		}
		csum.Records = append(csum.Records, recordChecksum{Name: name, Length: n, Sum: seahash.Sum64([]byte(seq))})
		writeField(total, name)
		writeField(total, seq)
	}
	csum.Sum = total.Sum64()
	return csum, nil
}

func checksum(ctx context.Context, path string) error {
	fa, err := fasta.Load(ctx, path)
	if err != nil {
		return err
	}
	csum, err := computeChecksum(fa)
	if err != nil {
		return err
	}
	js, err := json.MarshalIndent(csum, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(js))
	return nil
}
