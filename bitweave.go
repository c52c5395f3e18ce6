package bitweave

import (
	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave/engine"
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
	"github.com/bitweave/bitweave/template"
)

// Type is a field's output type, identified by its bit count.
type Type = layout.Type

const (
	Bool = layout.Bool
	U8   = layout.U8
	U16  = layout.U16
	U32  = layout.U32
	U64  = layout.U64
	U128 = layout.U128
)

// Overflow is the policy for fitting a value into a narrower slot.
type Overflow = engine.Overflow

const (
	Truncate = engine.Truncate
	Panic    = engine.Panic
	Corrupt  = engine.Corrupt
	Saturate = engine.Saturate
)

// Arg is one source value for a combine or replace operation.
type Arg = engine.Arg

// Args maps field letters to their source values.
type Args = engine.Args

// ABool wraps a boolean as a single-bit argument.
func ABool(v bool) Arg {
	var w engine.Word
	if v {
		w = uint128.From64(1)
	}
	return Arg{Value: w, Width: 1}
}

// AU8 wraps an 8-bit argument.
func AU8(v uint8) Arg { return Arg{Value: uint128.From64(uint64(v)), Width: 8} }

// AU16 wraps a 16-bit argument.
func AU16(v uint16) Arg { return Arg{Value: uint128.From64(uint64(v)), Width: 16} }

// AU32 wraps a 32-bit argument.
func AU32(v uint32) Arg { return Arg{Value: uint128.From64(uint64(v)), Width: 32} }

// AU64 wraps a 64-bit argument.
func AU64(v uint64) Arg { return Arg{Value: uint128.From64(v), Width: 64} }

// AU128 wraps a 128-bit argument.
func AU128(v uint128.Uint128) Arg { return Arg{Value: v, Width: 128} }

// settings collects the knobs the Option functions set.
type settings struct {
	policy Overflow
	cfg    layout.Config
}

// Option adjusts how templates are compiled and executed.
type Option func(*settings)

// WithOverflow selects the overflow policy for combine and replace.
func WithOverflow(p Overflow) Option {
	return func(s *settings) { s.policy = p }
}

// WithMin lower-bounds every extracted field's output type.
func WithMin(t Type) Option {
	return func(s *settings) { s.cfg.Min = t }
}

// WithExactWidths keeps each field's own bit count as its type instead
// of rounding up to the next standard width.
func WithExactWidths() Option {
	return func(s *settings) { s.cfg.Precision = layout.Exact }
}

func apply(opts []Option) settings {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Field is one extracted field value.
type Field struct {
	Name  rune
	Width uint8
	Type  Type
	value engine.Word
}

// Bool interprets a single-bit field.
func (f Field) Bool() bool { return !f.value.IsZero() }

// Uint8 returns the field value as a uint8.
func (f Field) Uint8() uint8 { return uint8(f.value.Lo) }

// Uint16 returns the field value as a uint16.
func (f Field) Uint16() uint16 { return uint16(f.value.Lo) }

// Uint32 returns the field value as a uint32.
func (f Field) Uint32() uint32 { return uint32(f.value.Lo) }

// Uint64 returns the field value as a uint64.
func (f Field) Uint64() uint64 { return f.value.Lo }

// Uint128 returns the full field value.
func (f Field) Uint128() uint128.Uint128 { return f.value }

// Arg converts the field back into a combine argument.
func (f Field) Arg() Arg { return Arg{Value: f.value, Width: f.Width} }

// Fields holds extracted fields in first-occurrence order.
type Fields []Field

// Get looks a field up by its letter.
func (fs Fields) Get(name rune) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Split extracts every field of a binary template from value.
func Split(value uint64, tmpl string, opts ...Option) (Fields, error) {
	return split(uint128.From64(value), tmpl, template.Binary, true, opts)
}

// SplitHex is Split with a hex template, four bits per character.
func SplitHex(value uint64, tmpl string, opts ...Option) (Fields, error) {
	return split(uint128.From64(value), tmpl, template.Hex, true, opts)
}

// Split128 extracts fields from a 128-bit value.
func Split128(value uint128.Uint128, tmpl string, opts ...Option) (Fields, error) {
	return split(value, tmpl, template.Binary, false, opts)
}

// SplitHex128 is Split128 with a hex template.
func SplitHex128(value uint128.Uint128, tmpl string, opts ...Option) (Fields, error) {
	return split(value, tmpl, template.Hex, false, opts)
}

// One extracts the single field of a binary template. The template must
// contain exactly one field letter.
func One(value uint64, tmpl string, opts ...Option) (Field, error) {
	return one(uint128.From64(value), tmpl, template.Binary, opts)
}

// OneHex is One with a hex template.
func OneHex(value uint64, tmpl string, opts ...Option) (Field, error) {
	return one(uint128.From64(value), tmpl, template.Hex, opts)
}

// Combine assembles an integer from a binary template's literal bits and
// one argument per field letter.
func Combine(tmpl string, args Args, opts ...Option) (uint64, error) {
	w, err := combine(tmpl, template.Binary, true, args, opts)
	return w.Lo, err
}

// CombineHex is Combine with a hex template.
func CombineHex(tmpl string, args Args, opts ...Option) (uint64, error) {
	w, err := combine(tmpl, template.Hex, true, args, opts)
	return w.Lo, err
}

// Combine128 assembles a 128-bit integer.
func Combine128(tmpl string, args Args, opts ...Option) (uint128.Uint128, error) {
	return combine(tmpl, template.Binary, false, args, opts)
}

// CombineHex128 is Combine128 with a hex template.
func CombineHex128(tmpl string, args Args, opts ...Option) (uint128.Uint128, error) {
	return combine(tmpl, template.Hex, false, args, opts)
}

// Replace overwrites the field and literal positions of base while
// placeholder positions keep base's bits.
func Replace(base uint64, tmpl string, args Args, opts ...Option) (uint64, error) {
	w, err := replace(uint128.From64(base), tmpl, template.Binary, true, args, opts)
	return w.Lo, err
}

// ReplaceHex is Replace with a hex template.
func ReplaceHex(base uint64, tmpl string, args Args, opts ...Option) (uint64, error) {
	w, err := replace(uint128.From64(base), tmpl, template.Hex, true, args, opts)
	return w.Lo, err
}

// Replace128 overwrites fields within a 128-bit base.
func Replace128(base uint128.Uint128, tmpl string, args Args, opts ...Option) (uint128.Uint128, error) {
	return replace(base, tmpl, template.Binary, false, args, opts)
}

// ReplaceHex128 is Replace128 with a hex template.
func ReplaceHex128(base uint128.Uint128, tmpl string, args Args, opts ...Option) (uint128.Uint128, error) {
	return replace(base, tmpl, template.Hex, false, args, opts)
}

// Input pairs a source integer with the template that splits it.
type Input struct {
	Template string
	Value    uint128.Uint128
}

// In builds an Input from a 64-bit value.
func In(value uint64, tmpl string) Input {
	return Input{Template: tmpl, Value: uint128.From64(value)}
}

// In128 builds an Input from a 128-bit value.
func In128(value uint128.Uint128, tmpl string) Input {
	return Input{Template: tmpl, Value: value}
}

// SplitThenCombine splits every input by its binary template, merges the
// extracted fields into one namespace, and assembles the output template
// from them. A letter produced by more than one input is an error, as is
// an output letter no input produced.
func SplitThenCombine(inputs []Input, output string, opts ...Option) (uint64, error) {
	w, err := splitThenCombine(inputs, output, template.Binary, true, opts)
	return w.Lo, err
}

// SplitHexThenCombine is SplitThenCombine with hex templates throughout.
func SplitHexThenCombine(inputs []Input, output string, opts ...Option) (uint64, error) {
	w, err := splitThenCombine(inputs, output, template.Hex, true, opts)
	return w.Lo, err
}

// SplitThenCombine128 is SplitThenCombine over 128-bit values.
func SplitThenCombine128(inputs []Input, output string, opts ...Option) (uint128.Uint128, error) {
	return splitThenCombine(inputs, output, template.Binary, false, opts)
}

// SplitHexThenCombine128 is SplitThenCombine128 with hex templates.
func SplitHexThenCombine128(inputs []Input, output string, opts ...Option) (uint128.Uint128, error) {
	return splitThenCombine(inputs, output, template.Hex, false, opts)
}

func split(value engine.Word, tmpl string, base template.Base, narrow64 bool, opts []Option) (Fields, error) {
	s := apply(opts)
	l, err := compile(tmpl, base, template.Split, s)
	if err != nil {
		return nil, err
	}
	if narrow64 {
		if err := narrow(errors.PhaseSplit, l); err != nil {
			return nil, err
		}
	}
	if err := checkFits(errors.PhaseSplit, l, value); err != nil {
		return nil, err
	}

	extracted := engine.Extract(l, value)
	fields := make(Fields, len(extracted))
	for i, fv := range extracted {
		fields[i] = Field{Name: fv.Name, Width: fv.Width, Type: fv.Type, value: fv.Value}
	}
	return fields, nil
}

func one(value engine.Word, tmpl string, base template.Base, opts []Option) (Field, error) {
	fields, err := split(value, tmpl, base, true, opts)
	if err != nil {
		return Field{}, err
	}
	if len(fields) != 1 {
		return Field{}, errors.New(errors.PhaseSplit, errors.KindUnsupported).
			Template(tmpl).
			Detail("template must contain exactly one field, has %d", len(fields)).
			Build()
	}
	return fields[0], nil
}

func combine(tmpl string, base template.Base, narrow64 bool, args Args, opts []Option) (engine.Word, error) {
	s := apply(opts)
	l, err := compile(tmpl, base, template.Combine, s)
	if err != nil {
		return engine.Word{}, err
	}
	if narrow64 {
		if err := narrow(errors.PhaseCombine, l); err != nil {
			return engine.Word{}, err
		}
	}
	return engine.Combine(l, args, s.policy)
}

func replace(base engine.Word, tmpl string, tb template.Base, narrow64 bool, args Args, opts []Option) (engine.Word, error) {
	s := apply(opts)
	l, err := compile(tmpl, tb, template.Replace, s)
	if err != nil {
		return engine.Word{}, err
	}
	if narrow64 {
		if err := narrow(errors.PhaseReplace, l); err != nil {
			return engine.Word{}, err
		}
	}
	if err := checkFits(errors.PhaseReplace, l, base); err != nil {
		return engine.Word{}, err
	}
	return engine.Replace(l, base, args, s.policy)
}

func splitThenCombine(inputs []Input, output string, base template.Base, narrow64 bool, opts []Option) (engine.Word, error) {
	s := apply(opts)

	compiled := make([]engine.Input, len(inputs))
	for i, in := range inputs {
		l, err := compile(in.Template, base, template.Split, s)
		if err != nil {
			return engine.Word{}, err
		}
		if narrow64 {
			if err := narrow(errors.PhaseSplit, l); err != nil {
				return engine.Word{}, err
			}
		}
		if err := checkFits(errors.PhaseSplit, l, in.Value); err != nil {
			return engine.Word{}, err
		}
		compiled[i] = engine.Input{Layout: l, Value: in.Value}
	}

	out, err := compile(output, base, template.Combine, s)
	if err != nil {
		return engine.Word{}, err
	}
	if narrow64 {
		if err := narrow(errors.PhaseCombine, out); err != nil {
			return engine.Word{}, err
		}
	}
	return engine.SplitThenCombine(compiled, out, s.policy)
}

func compile(text string, base template.Base, ctx template.Context, s settings) (*layout.Layout, error) {
	t, err := template.Parse(text, base, ctx)
	if err != nil {
		return nil, err
	}
	return layout.Build(t, s.cfg), nil
}

// narrow guards the 64-bit entry points against wider templates.
func narrow(phase errors.Phase, l *layout.Layout) error {
	if l.Width > 64 {
		return errors.New(phase, errors.KindWidthMismatch).
			Template(l.Template.Source).
			Detail("template is %d bits wide; use the 128-bit variant", l.Width).
			Build()
	}
	return nil
}

// checkFits rejects source integers with significant bits above the
// template's width.
func checkFits(phase errors.Phase, l *layout.Layout, value engine.Word) error {
	if l.Width < 128 && !value.Rsh(uint(l.Width)).IsZero() {
		return errors.New(phase, errors.KindWidthMismatch).
			Template(l.Template.Source).
			Detail("value 0x%s has bits above the %d-bit template", value.Big().Text(16), l.Width).
			Build()
	}
	return nil
}
