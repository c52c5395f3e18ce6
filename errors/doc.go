// Package errors provides structured error types for the bitweave library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending template, the exact character
// position within it, and a cause chain, so every diagnostic can point at the
// template character that produced it.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidCell).
//		Template("aaab bb1c").
//		Position(7).
//		Detail("literal bits are not allowed in a split template").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidWidth(errors.PhaseParse, tmpl, 12)
//	err := errors.Overflow(errors.PhaseCombine, 'a', "0b110", 2)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
