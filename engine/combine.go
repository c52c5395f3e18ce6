package engine

import (
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
)

// Arg is one source value for combination: the value plus the caller's
// declared bit-width. Bits above the declared width never reach the
// slot, so the width bounds what the Corrupt policy can spill. A zero
// width leaves the value unbounded.
type Arg struct {
	Value Word
	Width uint8
}

// Args maps field letters to their source values.
type Args map[rune]Arg

// Combine assembles one integer from the layout's literal bits and one
// source value per field. Every field letter in the layout must have an
// argument; extra arguments are ignored. Each value is adapted to its
// slot width under the policy before its bits are distributed.
func Combine(l *layout.Layout, args Args, policy Overflow) (Word, error) {
	return assemble(errors.PhaseCombine, l, args, policy)
}

func assemble(phase errors.Phase, l *layout.Layout, args Args, policy Overflow) (Word, error) {
	out := l.LiteralValue
	for _, f := range l.Fields {
		arg, ok := args[f.Name]
		if !ok {
			return Word{}, errors.UndefinedField(phase, f.Name)
		}

		value := arg.Value
		if arg.Width > 0 {
			value = value.And(layout.WidthMask(arg.Width))
		}

		adapted, err := adapt(phase, f.Name, value, f.Width(), policy)
		if err != nil {
			return Word{}, err
		}

		out = out.Or(placeField(f, adapted, policy))
	}
	return out.And(layout.WidthMask(l.Width)), nil
}

// placeField distributes an adapted value's bits into the field's
// segments: value bits [in, in+seg.Len) land at [seg.Offset, ...).
// Under Corrupt the per-segment mask is skipped, so bits above the
// segment's span spill upward from its offset.
func placeField(f layout.Field, value Word, policy Overflow) Word {
	var out Word
	in := uint(0)
	for _, seg := range f.Segments {
		part := value.Rsh(in)
		if policy != Corrupt {
			part = part.And(layout.WidthMask(seg.Len))
		}
		out = out.Or(part.Lsh(uint(seg.Offset)))
		in += uint(seg.Len)
	}
	return out
}
