// Package layout builds field layouts from parsed templates.
//
// A Layout records, for every field letter in a template, the ordered bit
// positions the letter occupies, the maximal contiguous runs (segments)
// those positions form, and the derived output type. It also precomputes
// the template-wide literal value, literal mask, and placeholder mask as
// 128-bit words.
//
// The segment list is the minimal shift/mask decomposition of a field:
// one mask-and-shift per segment reconstructs the field value, however
// discontiguous it is. Both the interpreting engine and the source
// generator consume the same Layout, so the two execution modes cannot
// disagree on semantics.
//
// Layout construction is deterministic: identical cell sequences always
// produce identical layouts.
package layout
