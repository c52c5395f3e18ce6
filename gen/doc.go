// Package gen renders compiled bit layouts as Go source text.
//
// A YAML manifest names the templates to generate and the operation each
// one performs (split, one, combine, replace). Generate compiles every
// template through the same parser and layout builder the interpreter
// uses and emits one function per entry, so generated code and the
// engine always agree on semantics.
//
// Generated functions work on native integer types, which limits the
// generator to templates of 64 bits and below. Wider templates stay on
// the interpreter.
package gen
