/*Package interval implements the half-open interval operations used to carve
  a reference genome into repeats, zero-coverage gaps and unique regions, plus
  loaders for the BED files those intervals usually arrive in.

  Every coordinate is 0-based and half-open, and is assumed to fit in a
  PosType, which is int32 since that's what BAM files are limited to.  Merge
  and Subtract are the two primitives everything else is built on; they never
  modify their inputs.
*/
package interval
