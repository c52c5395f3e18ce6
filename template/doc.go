// Package template parses bit-layout template strings.
//
// A template maps each bit position of a fixed-width integer to a field
// letter, a placeholder, or a literal bit:
//
//	"aaab bbcc"  three fields: a (3 bits), b (3 bits), c (2 bits)
//	".aa. bb.."  placeholders mark ignored bits
//	"aa10 01bb"  literal bits are baked into the position
//
// Whitespace is stripped before validation and carries no meaning. In hex
// mode each remaining character expands to four binary cells: uppercase
// 'A'-'F' and '0'-'9' expand to their 4-bit pattern, '.' to four
// placeholders, and any other ASCII letter to four field cells bearing
// that letter. After expansion the cell count must be exactly 8, 16, 32,
// 64, or 128.
//
// Parsing is context-sensitive: literal cells are rejected in split
// contexts (no validation semantics exist for them), placeholder cells are
// rejected in combine contexts (every output bit must be sourced). Replace
// context accepts all three cell kinds. Errors report the exact source
// character position that caused them.
package template
