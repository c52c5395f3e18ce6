package engine

import (
	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave/layout"
)

// Word is the engine's numeric type, wide enough for any template.
type Word = uint128.Uint128

// FieldValue is one extracted field.
type FieldValue struct {
	Name  rune
	Width uint8
	Type  layout.Type
	Value Word
}

// Bool interprets a single-bit field.
func (f FieldValue) Bool() bool {
	return !f.Value.IsZero()
}

// Extract computes every field's value from one source integer.
// Fields come back in first-occurrence order. Extraction has no failure
// path: each accumulator holds exactly the field's width in significant
// bits.
func Extract(l *layout.Layout, value Word) []FieldValue {
	fields := make([]FieldValue, 0, len(l.Fields))
	for _, f := range l.Fields {
		fields = append(fields, FieldValue{
			Name:  f.Name,
			Width: f.Width(),
			Type:  f.Type,
			Value: extractField(f, value),
		})
	}
	return fields
}

// extractField reassembles a field from its segments. Segments are
// ordered least significant first, so each lands at the running output
// offset: value bits at [seg.Offset, seg.Offset+seg.Len) move to
// [out, out+seg.Len).
func extractField(f layout.Field, value Word) Word {
	var acc Word
	out := uint(0)
	for _, seg := range f.Segments {
		part := value.Rsh(uint(seg.Offset)).And(layout.WidthMask(seg.Len))
		acc = acc.Or(part.Lsh(out))
		out += uint(seg.Len)
	}
	return acc
}
