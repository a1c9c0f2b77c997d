/*Package upperbound constructs the "upper bound" assembly of a reference
  genome: the best assembly an assembler could produce given the reference and
  the read evidence that was actually sequenced.  It is used as a ceiling when
  judging real assemblies.

  Construction runs independently for every chromosome:

   1. Repeat candidates reported by a repeat finder are validated against
      their re-alignments to the reference (ValidateRepeats).
   2. Validated repeats, and in mate-pair mode zero-coverage gaps, are
      subtracted from the chromosome, leaving unique regions
      (ExtractUniqueRegions).
   3. Mate pairs or long reads spanning the gap between consecutive unique
      regions ("joiners") vote for joining them (SupportedAdjacencies).
   4. Regions linked by enough votes are merged into scaffolds (Scaffold).
   5. Scaffold sequences, with gaps re-inserted as runs of N, and one copy of
      each repeat are emitted as FASTA records (Reconstruct).

  Build drives the whole thing over all chromosomes in parallel.  Nothing in
  this package runs external programs; callers hand it already-parsed repeat
  candidates, re-alignment hits, coverage gaps and read alignments.
*/
package upperbound
