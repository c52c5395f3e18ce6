package template

import (
	"strings"
	"unicode"

	"github.com/bitweave/bitweave/errors"
)

// Context selects which cell kinds are legal for a parse.
//
// Split covers extraction templates and the input templates of a
// split-then-combine; Combine covers combination templates and the output
// template of a split-then-combine; Replace covers replacement templates.
type Context int

const (
	Split Context = iota
	Combine
	Replace
)

func (c Context) String() string {
	switch c {
	case Split:
		return "split"
	case Combine:
		return "combine"
	case Replace:
		return "replace"
	}
	return "unknown"
}

// standardWidths are the legal post-expansion cell counts.
var standardWidths = [...]int{8, 16, 32, 64, 128}

// Template is a validated, whitespace-stripped, hex-expanded cell sequence.
type Template struct {
	Source string
	Cells  []Cell
}

// Parse converts a template string into a validated cell sequence.
func Parse(text string, base Base, ctx Context) (*Template, error) {
	var cells []Cell
	for pos, c := range []rune(text) {
		if unicode.IsSpace(c) {
			continue
		}

		expanded, err := expand(text, pos, c, base)
		if err != nil {
			return nil, err
		}
		cells = append(cells, expanded...)
	}

	for _, cell := range cells {
		if err := checkContext(text, cell, ctx); err != nil {
			return nil, err
		}
	}

	if !isStandardWidth(len(cells)) {
		return nil, errors.InvalidWidth(errors.PhaseParse, text, len(cells))
	}

	return &Template{Source: text, Cells: cells}, nil
}

// expand converts one source character into its binary cells.
func expand(text string, pos int, c rune, base Base) ([]Cell, error) {
	if base == Hex {
		if v := hexDigit(c); v >= 0 {
			cells := make([]Cell, 4)
			for i := range cells {
				kind := CellZero
				if v&(0b1000>>i) != 0 {
					kind = CellOne
				}
				cells[i] = Cell{Kind: kind, Pos: pos}
			}
			return cells, nil
		}
	}

	cell, err := cellFor(text, pos, c, base)
	if err != nil {
		return nil, err
	}

	cells := make([]Cell, base.BitsPerDigit())
	for i := range cells {
		cells[i] = cell
	}
	return cells, nil
}

func cellFor(text string, pos int, c rune, base Base) (Cell, error) {
	switch {
	case c == '.':
		return Cell{Kind: CellPlaceholder, Pos: pos}, nil
	case base == Binary && c == '0':
		return Cell{Kind: CellZero, Pos: pos}, nil
	case base == Binary && c == '1':
		return Cell{Kind: CellOne, Pos: pos}, nil
	case isFieldLetter(c):
		return Cell{Kind: CellField, Name: c, Pos: pos}, nil
	default:
		return Cell{}, errors.InvalidChar(errors.PhaseParse, text, pos, c)
	}
}

func checkContext(text string, cell Cell, ctx Context) error {
	switch ctx {
	case Split:
		if cell.IsLiteral() {
			return errors.InvalidCell(errors.PhaseParse, text, cell.Pos,
				"literal bits are not allowed in a split template")
		}
	case Combine:
		if cell.Kind == CellPlaceholder {
			return errors.InvalidCell(errors.PhaseParse, text, cell.Pos,
				"placeholders are not allowed in a combine template; use literals instead")
		}
	}
	return nil
}

func isStandardWidth(n int) bool {
	for _, w := range standardWidths {
		if n == w {
			return true
		}
	}
	return false
}

// Width is the cell count after expansion.
func (t *Template) Width() int {
	return len(t.Cells)
}

// HasPlaceholders reports whether any cell is a placeholder.
func (t *Template) HasPlaceholders() bool {
	for _, c := range t.Cells {
		if c.Kind == CellPlaceholder {
			return true
		}
	}
	return false
}

// Names returns the unique field letters in first-occurrence order.
func (t *Template) Names() []rune {
	seen := make(map[rune]bool)
	var names []rune
	for _, c := range t.Cells {
		if c.Kind == CellField && !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	return names
}

// String renders the expanded cell sequence, one character per bit.
func (t *Template) String() string {
	var b strings.Builder
	for _, c := range t.Cells {
		b.WriteRune(c.Rune())
	}
	return b.String()
}
