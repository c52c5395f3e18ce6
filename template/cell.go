package template

// Base is the numeric base a template is written in.
type Base int

const (
	Binary Base = iota
	Hex
)

func (b Base) String() string {
	switch b {
	case Binary:
		return "binary"
	case Hex:
		return "hex"
	}
	return "unknown"
}

// BitsPerDigit is how many cells one template character expands to.
func (b Base) BitsPerDigit() int {
	if b == Hex {
		return 4
	}
	return 1
}

// CellKind tags a single bit position of a template.
type CellKind uint8

const (
	CellField CellKind = iota
	CellPlaceholder
	CellZero
	CellOne
)

// Cell is one bit position of a template after whitespace stripping and
// hex expansion. Pos is the rune index of the originating character in the
// source string, kept for error locality.
type Cell struct {
	Kind CellKind
	Name rune // field letter, zero unless Kind == CellField
	Pos  int
}

// IsLiteral reports whether the cell is a literal '0' or '1'.
func (c Cell) IsLiteral() bool {
	return c.Kind == CellZero || c.Kind == CellOne
}

// Rune renders the cell back to its template character.
func (c Cell) Rune() rune {
	switch c.Kind {
	case CellPlaceholder:
		return '.'
	case CellZero:
		return '0'
	case CellOne:
		return '1'
	default:
		return c.Name
	}
}

// hexDigit returns the value of a hex digit character, or -1.
// Only uppercase 'A'-'F' act as digits so that lowercase letters remain
// available as field names, matching the rest of the template alphabet.
func hexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 0xA
	default:
		return -1
	}
}

// isFieldLetter reports whether c can name a field.
func isFieldLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
