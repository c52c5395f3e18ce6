package engine

import (
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
)

// Overflow is the policy for adapting a source value to a narrower slot.
type Overflow int

const (
	// Truncate keeps the low slot-width bits, silently dropping the rest.
	Truncate Overflow = iota
	// Panic fails before producing any output if the value does not fit.
	Panic
	// Corrupt skips the mask: high bits spill into adjacent positions.
	Corrupt
	// Saturate clamps the value to the slot's maximum.
	Saturate
)

func (o Overflow) String() string {
	switch o {
	case Truncate:
		return "truncate"
	case Panic:
		return "panic"
	case Corrupt:
		return "corrupt"
	case Saturate:
		return "saturate"
	}
	return "unknown"
}

// ParseOverflow converts a policy name to an Overflow.
func ParseOverflow(s string) (Overflow, bool) {
	switch s {
	case "truncate", "":
		return Truncate, true
	case "panic":
		return Panic, true
	case "corrupt":
		return Corrupt, true
	case "saturate":
		return Saturate, true
	}
	return Truncate, false
}

// adapt fits value into a slot of the given width under the policy.
// The returned word may exceed the slot width only under Corrupt.
func adapt(phase errors.Phase, name rune, value Word, slot uint8, policy Overflow) (Word, error) {
	max := layout.WidthMask(slot)
	switch policy {
	case Panic:
		if value.Cmp(max) > 0 {
			return Word{}, errors.Overflow(phase, name, "0b"+value.Big().Text(2), slot)
		}
		return value, nil
	case Saturate:
		if value.Cmp(max) > 0 {
			return max, nil
		}
		return value, nil
	case Corrupt:
		return value, nil
	default:
		return value.And(max), nil
	}
}
