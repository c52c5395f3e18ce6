// Package bitweave is a bit-layout compiler: it turns textual templates
// describing how the bits of fixed-width integers map to named fields into
// the exact shift/mask/combine arithmetic needed to take them apart and
// put them back together.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bitweave/        Root package with the high-level Split/Combine/Replace API
//	├── template/    Template string lexing, hex expansion, validation
//	├── layout/      Field layouts: positions, segments, output types, masks
//	├── engine/      Interpreter executing layouts against integer values
//	├── gen/         Generator rendering layouts as Go source text
//	├── errors/      Structured error types with template positions
//	└── cmd/         bitweave CLI: one-shot operations, codegen, TUI explorer
//
// The engine and the generator consume the same compiled layouts, so
// interpreting a template and running its generated code always agree.
//
// # Quick Start
//
// Extract named fields from an integer:
//
//	fields, err := bitweave.Split(0b11011101, "aaabbccc")
//	a, _ := fields.Get('a') // a.Uint8() == 0b110
//	b, _ := fields.Get('b') // b.Uint8() == 0b11
//
// Assemble an integer from named values:
//
//	out, err := bitweave.Combine("bbbb bbbb mmmm eeee", bitweave.Args{
//		'b': bitweave.AU8(0b10101010),
//		'm': bitweave.AU8(0b1111),
//		'e': bitweave.AU8(0b0000),
//	})
//
// Overwrite a subset of an integer's bits, preserving the rest:
//
//	out, err := bitweave.Replace(0b10000001, "aaa..bb.", bitweave.Args{
//		'a': bitweave.AU8(0b101),
//		'b': bitweave.AU8(0b01),
//	})
//
// # Templates
//
// One character per bit: letters name fields (case matters), '.' marks a
// bit to ignore or preserve, '0' and '1' bake literal bits in. Whitespace
// is for readability only. Hex templates pack four bits per character.
// Template widths are 8, 16, 32, 64, or 128 bits; the 64-bit entry points
// cover templates up to 64 bits, the 128-bit variants the rest.
//
// # Overflow Policies
//
// When a value is combined into a slot narrower than itself, the policy
// decides: truncate (default) drops high bits, panic rejects, saturate
// clamps to the maximum, corrupt skips the mask and lets high bits spill.
//
// # Execution Modes
//
// Every operation is available in two forms with identical semantics:
// interpreted (this package, the engine) and generated (the gen package,
// which renders a template as a Go function ahead of time). Use the
// interpreter for dynamic templates and the generator where the template
// is fixed and the arithmetic should inline.
package bitweave
