// Package engine executes compiled layouts against integer values.
//
// This is the "execute now" half of the library: the gen package renders
// the same layouts as Go source, this package interprets them directly.
// Both consume layout.Layout, so the two modes share one semantics.
//
// All arithmetic runs on 128-bit words (lukechampine.com/uint128), wide
// enough for the largest template. Narrower inputs are widened by the
// callers and results truncated back.
//
// # Key operations
//
//	Extract           - one integer in, named field values out
//	Combine           - named field values in, one integer out
//	Replace           - Combine over a base integer, placeholders preserved
//	SplitThenCombine  - Extract over N inputs, merged, then Combine
//
// Combination and replacement adapt each source value to its slot width
// through an Overflow policy: Truncate (default), Panic, Corrupt, or
// Saturate. Corrupt skips the slot mask entirely; whatever the value's
// high bits hit is deliberately unspecified, bounded only by the
// template's own width.
package engine
