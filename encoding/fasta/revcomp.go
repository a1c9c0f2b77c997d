package fasta

var complementTable = func() (table [256]byte) {
	for i := range table {
		table[i] = 'N'
	}
	for _, pair := range []string{"AT", "CG", "GC", "TA", "at", "cg", "gc", "ta", "NN", "nn"} {
		table[pair[0]] = pair[1]
	}
	return
}()

// ReverseComplement returns the reverse complement of seq.  Case is
// preserved; IUPAC ambiguity codes other than N map to N.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		out[len(seq)-1-i] = complementTable[seq[i]]
	}
	return string(out)
}
