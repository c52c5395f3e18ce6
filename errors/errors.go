package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // template lexing/validation
	PhaseLayout   Phase = "layout"   // field layout construction
	PhaseSplit    Phase = "split"    // field extraction
	PhaseCombine  Phase = "combine"  // integer assembly
	PhaseReplace  Phase = "replace"  // partial overwrite
	PhaseGenerate Phase = "generate" // source code generation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidWidth    Kind = "invalid_width"    // cell count not 8/16/32/64/128
	KindInvalidChar     Kind = "invalid_char"     // character outside the template alphabet
	KindInvalidCell     Kind = "invalid_cell"     // cell illegal for the parse context
	KindWidthMismatch   Kind = "width_mismatch"   // value width does not fit the template
	KindDuplicateField  Kind = "duplicate_field"  // letter reused across input templates
	KindUndefinedField  Kind = "undefined_field"  // output letter with no source field
	KindOverflow        Kind = "overflow"         // value too big for its slot (panic policy)
	KindUnsupported     Kind = "unsupported"      // operation outside the supported surface
	KindInvalidManifest Kind = "invalid_manifest" // malformed generator manifest
)

// Error is the structured error type used throughout bitweave
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Template string
	Field    rune
	Detail   string
	Position int // character index into Template, -1 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != 0 {
		b.WriteString(" field '")
		b.WriteRune(e.Field)
		b.WriteByte('\'')
	}

	if e.Template != "" {
		b.WriteString(" in template \"")
		b.WriteString(e.Template)
		b.WriteByte('"')
		if e.Position >= 0 {
			b.WriteString(" at position ")
			b.WriteString(strconv.Itoa(e.Position))
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Position: -1,
		},
	}
}

// Template sets the template text the error refers to
func (b *Builder) Template(t string) *Builder {
	b.err.Template = t
	return b
}

// Position sets the character index within the template
func (b *Builder) Position(i int) *Builder {
	b.err.Position = i
	return b
}

// Field sets the field letter the error refers to
func (b *Builder) Field(name rune) *Builder {
	b.err.Field = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// InvalidWidth reports a template whose cell count is not a standard width.
func InvalidWidth(phase Phase, template string, got int) *Error {
	return New(phase, KindInvalidWidth).
		Template(template).
		Detail("template must be 8, 16, 32, 64, or 128 bits, but was %d", got).
		Build()
}

// InvalidChar reports a character outside the template alphabet.
func InvalidChar(phase Phase, template string, pos int, c rune) *Error {
	return New(phase, KindInvalidChar).
		Template(template).
		Position(pos).
		Detail("invalid template character %q", c).
		Build()
}

// InvalidCell reports a cell that is illegal in the current parse context.
func InvalidCell(phase Phase, template string, pos int, detail string) *Error {
	return New(phase, KindInvalidCell).
		Template(template).
		Position(pos).
		Detail("%s", detail).
		Build()
}

// DuplicateField reports a field letter produced by more than one input template.
func DuplicateField(phase Phase, name rune) *Error {
	return New(phase, KindDuplicateField).
		Field(name).
		Detail("field is produced by more than one input template").
		Build()
}

// UndefinedField reports an output field letter that no input produced.
func UndefinedField(phase Phase, name rune) *Error {
	return New(phase, KindUndefinedField).
		Field(name).
		Detail("output template references a field no input produced").
		Build()
}

// Overflow reports a value that does not fit its slot under the panic policy.
func Overflow(phase Phase, name rune, value string, slotWidth uint8) *Error {
	return New(phase, KindOverflow).
		Field(name).
		Detail("value %s is too big for its %d-bit slot", value, slotWidth).
		Build()
}
