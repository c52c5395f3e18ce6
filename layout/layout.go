package layout

import (
	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave/template"
)

// Segment is a maximal contiguous run of one field's bits.
// Offset counts from bit 0 (the least significant bit of the integer).
type Segment struct {
	Len    uint8
	Offset uint8
}

// Mask is the segment's bit mask within the integer.
func (s Segment) Mask() uint128.Uint128 {
	return WidthMask(s.Len).Lsh(uint(s.Offset))
}

// Field is the layout of one field letter within a template.
type Field struct {
	Name rune
	// Positions are the template indices the letter occupies, in
	// left-to-right template order (index 0 = most significant bit).
	Positions []uint8
	// Segments are the maximal runs those positions form, ordered from
	// the least significant bit upward.
	Segments []Segment
	Type     Type
}

// Width is the field's bit count.
func (f Field) Width() uint8 {
	return uint8(len(f.Positions))
}

// Config controls output type derivation during layout construction.
type Config struct {
	Precision Precision
	Min       Type
}

// Layout is the compiled form of one template: per-field positions and
// segments plus the template-wide literal and placeholder masks.
type Layout struct {
	Template *template.Template
	Width    uint8
	Input    Type
	// Fields in first-occurrence order, which fixes emission order.
	Fields []Field
	byName map[rune]int

	// LiteralValue has the '1' literal bits set, everything else zero.
	LiteralValue uint128.Uint128
	// LiteralMask has every literal position set.
	LiteralMask uint128.Uint128
	// PlaceholderMask has every placeholder position set.
	PlaceholderMask uint128.Uint128
}

// Build compiles a parsed template into a Layout. It cannot fail: the
// parser has already validated the cell sequence.
func Build(t *template.Template, cfg Config) *Layout {
	w := t.Width()
	l := &Layout{
		Template: t,
		Width:    uint8(w),
		Input:    ForTemplate(w),
		byName:   make(map[rune]int),
	}

	positions := make(map[rune][]uint8)
	var order []rune
	for i, cell := range t.Cells {
		bit := uint128.From64(1).Lsh(uint(w - 1 - i))
		switch cell.Kind {
		case template.CellField:
			if _, ok := positions[cell.Name]; !ok {
				order = append(order, cell.Name)
			}
			positions[cell.Name] = append(positions[cell.Name], uint8(i))
		case template.CellZero:
			l.LiteralMask = l.LiteralMask.Or(bit)
		case template.CellOne:
			l.LiteralMask = l.LiteralMask.Or(bit)
			l.LiteralValue = l.LiteralValue.Or(bit)
		case template.CellPlaceholder:
			l.PlaceholderMask = l.PlaceholderMask.Or(bit)
		}
	}

	for _, name := range order {
		pos := positions[name]
		f := Field{
			Name:      name,
			Positions: pos,
			Segments:  segments(t, name),
			Type:      ForField(uint8(len(pos)), cfg.Precision, cfg.Min),
		}
		l.byName[name] = len(l.Fields)
		l.Fields = append(l.Fields, f)
	}

	return l
}

// segments scans the cells from the least significant bit upward and
// collects the maximal runs belonging to name.
func segments(t *template.Template, name rune) []Segment {
	w := t.Width()
	var segs []Segment
	for i := w - 1; i >= 0; i-- {
		cell := t.Cells[i]
		if cell.Kind != template.CellField || cell.Name != name {
			continue
		}
		run := uint8(1)
		for i > 0 {
			prev := t.Cells[i-1]
			if prev.Kind != template.CellField || prev.Name != name {
				break
			}
			run++
			i--
		}
		segs = append(segs, Segment{Len: run, Offset: uint8(w - 1 - i - int(run) + 1)})
	}
	return segs
}

// Field returns the layout for a field letter.
func (l *Layout) Field(name rune) (Field, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Field{}, false
	}
	return l.Fields[i], true
}

// CoverMask has every field and literal position set; its complement
// within the template width is the placeholder mask.
func (l *Layout) CoverMask() uint128.Uint128 {
	m := l.LiteralMask
	for _, f := range l.Fields {
		for _, s := range f.Segments {
			m = m.Or(s.Mask())
		}
	}
	return m
}

// WidthMask is the all-ones mask of the given bit count.
func WidthMask(width uint8) uint128.Uint128 {
	if width >= 128 {
		return uint128.Max
	}
	return uint128.From64(1).Lsh(uint(width)).Sub64(1)
}
