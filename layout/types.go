package layout

import "strconv"

// Precision selects how extraction output widths are derived.
type Precision int

const (
	// Standard rounds field widths up to the smallest standard width.
	Standard Precision = iota
	// Exact keeps the field's own bit count as its type.
	Exact
)

// Type is an unsigned integer type identified by its bit count.
// A width of 1 is a boolean.
type Type uint8

const (
	Bool Type = 1
	U8   Type = 8
	U16  Type = 16
	U32  Type = 32
	U64  Type = 64
	U128 Type = 128
)

// standardTypes in ascending order, for rounding up.
var standardTypes = [...]Type{U8, U16, U32, U64, U128}

// ForTemplate returns the type matching a template's cell count.
// The parser guarantees the count is standard.
func ForTemplate(width int) Type {
	return Type(width)
}

// ForField derives the output type for a field of the given bit count.
// Standard precision rounds up to the smallest standard width; Exact keeps
// the count as-is. A single-bit field is a boolean either way. min, when
// larger, lower-bounds the result.
func ForField(width uint8, p Precision, min Type) Type {
	t := Type(width)
	if p == Standard && width > 1 {
		for _, st := range standardTypes {
			if Type(width) <= st {
				t = st
				break
			}
		}
	}
	if min > t {
		t = min
	}
	return t
}

// Bits is the bit count of the type.
func (t Type) Bits() uint8 {
	return uint8(t)
}

// IsBool reports whether the type is a single-bit boolean.
func (t Type) IsBool() bool {
	return t == Bool
}

func (t Type) String() string {
	if t == Bool {
		return "bool"
	}
	return "u" + strconv.Itoa(int(t))
}

// Go returns the narrowest native Go type that holds the value.
// Widths above 64 have no native representation and map to the
// uint128.Uint128 word the engine computes with.
func (t Type) Go() string {
	switch {
	case t == Bool:
		return "bool"
	case t <= U8:
		return "uint8"
	case t <= U16:
		return "uint16"
	case t <= U32:
		return "uint32"
	case t <= U64:
		return "uint64"
	default:
		return "uint128.Uint128"
	}
}
