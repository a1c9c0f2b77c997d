/*
bio-upperbound builds the upper-bound assembly of a reference genome: the
best assembly achievable from the reference plus the sequencing evidence that
was actually collected.  It is meant as a ceiling for judging real
assemblies.

Subcommands:

  build        Write the assembly as <out>.fa and <out>.fa.fai.
  regions      Write the unique regions and their scaffold assignment as BED.
  insert-size  Print the insert-size window estimated from a mate-pair BAM.
  checksum     Print per-record and overall checksums of a FASTA file.

Inputs of build and regions:

  -ref          reference FASTA (optionally gzipped)
  -repeats      repeat-finder candidates, BED
  -repeat-hits  re-alignments of the candidates' sequences, PAF; query names
                are the candidates' region strings, e.g. "chr1:4001-4300",
                or "chr1:4000-4300" with -repeat-hits-zero-based
  -uncovered    zero-coverage intervals, BED (mate-pair only)
  -mate-pairs   mate-pair alignments, BAM
  -long-reads   long-read alignments, BAM
  -joiners-bed  joiner spans as BED, instead of a BAM; see -joiners-kind

Exactly one kind of read evidence must be given.  Thresholds default to the
values in upperbound.DefaultOpts, may be overridden by a YAML parameter file
(-config), and then by flags.  Example parameter file:

  min_overlap: 10
  mate_pair_min_connections: 2
  min_contig_length: 1000
  insert_size_min: 2000
  insert_size_max: 5000
*/
package main
