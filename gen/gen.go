package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"go.uber.org/zap"

	"github.com/bitweave/bitweave/engine"
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
)

// Generate renders the manifest as one gofmt-formatted Go source file.
func Generate(m *Manifest) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by bitweave. DO NOT EDIT.\n\npackage %s\n", m.Package)

	for i := range m.Entries {
		e := &m.Entries[i]
		l, policy, err := e.compile()
		if err != nil {
			return nil, err
		}

		b.WriteByte('\n')
		switch e.Op {
		case "split":
			emitSplit(&b, e, l)
		case "one":
			emitOne(&b, e, l)
		case "combine":
			emitCombine(&b, e, l, policy)
		case "replace":
			emitReplace(&b, e, l, policy)
		}
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Cause(err).
			Detail("rendered source does not parse").
			Build()
	}

	Logger().Debug("generated source",
		zap.String("package", m.Package),
		zap.Int("entries", len(m.Entries)),
		zap.Int("bytes", len(src)))
	return src, nil
}

func emitSplit(b *bytes.Buffer, e *Entry, l *layout.Layout) {
	fmt.Fprintf(b, "// %s extracts the fields of %q from a %d-bit value.\n", e.Name, e.Template, l.Width)
	fmt.Fprintf(b, "func %s(value %s) (%s) {\n", e.Name, l.Input.Go(), resultList(l))
	for _, f := range l.Fields {
		fmt.Fprintf(b, "\t%c = %s\n", f.Name, extractExpr(f, "value"))
	}
	fmt.Fprintf(b, "\treturn %s\n}\n", nameList(l))
}

func emitOne(b *bytes.Buffer, e *Entry, l *layout.Layout) {
	f := l.Fields[0]
	fmt.Fprintf(b, "// %s extracts field '%c' of %q from a %d-bit value.\n", e.Name, f.Name, e.Template, l.Width)
	fmt.Fprintf(b, "func %s(value %s) %s {\n", e.Name, l.Input.Go(), f.Type.Go())
	fmt.Fprintf(b, "\treturn %s\n}\n", extractExpr(f, "value"))
}

func emitCombine(b *bytes.Buffer, e *Entry, l *layout.Layout, policy engine.Overflow) {
	fmt.Fprintf(b, "// %s assembles %q from its fields.\n", e.Name, e.Template)
	fmt.Fprintf(b, "func %s(%s) %s {\n", e.Name, paramList(l, ""), l.Input.Go())
	emitBody(b, e, l, policy, "")
	b.WriteString("}\n")
}

func emitReplace(b *bytes.Buffer, e *Entry, l *layout.Layout, policy engine.Overflow) {
	fmt.Fprintf(b, "// %s overwrites the field and literal bits of %q in base.\n", e.Name, e.Template)
	fmt.Fprintf(b, "func %s(%s) %s {\n", e.Name, paramList(l, "base "+l.Input.Go()), l.Input.Go())
	emitBody(b, e, l, policy, "base")
	b.WriteString("}\n")
}

// emitBody writes the overflow guards, bool conversions, and the final
// expression assembling the result. base is the preserved-bits source
// for replace, empty for combine.
func emitBody(b *bytes.Buffer, e *Entry, l *layout.Layout, policy engine.Overflow, base string) {
	for _, f := range l.Fields {
		w := f.Width()
		if f.Type.IsBool() || w >= nativeBits(f.Type) {
			continue
		}
		max := uint64(1)<<w - 1
		switch policy {
		case engine.Panic:
			fmt.Fprintf(b, "\tif %c > %#x {\n\t\tpanic(\"%s: field %c overflows its %d-bit slot\")\n\t}\n",
				f.Name, max, e.Name, f.Name, w)
		case engine.Saturate:
			fmt.Fprintf(b, "\tif %c > %#x {\n\t\t%c = %#x\n\t}\n", f.Name, max, f.Name, max)
		}
	}

	for _, f := range l.Fields {
		if f.Type.IsBool() {
			fmt.Fprintf(b, "\tvar %cv %s\n\tif %c {\n\t\t%cv = 1\n\t}\n",
				f.Name, l.Input.Go(), f.Name, f.Name)
		}
	}

	var parts []string
	if base != "" && !l.PlaceholderMask.IsZero() {
		parts = append(parts, fmt.Sprintf("%s&%#x", base, l.PlaceholderMask.Lo))
	}
	if !l.LiteralValue.IsZero() {
		parts = append(parts, fmt.Sprintf("%#x", l.LiteralValue.Lo))
	}
	for _, f := range l.Fields {
		parts = append(parts, placeExpr(f, l.Input.Go())...)
	}
	if len(parts) == 0 {
		parts = append(parts, "0")
	}
	fmt.Fprintf(b, "\treturn %s\n", strings.Join(parts, " | "))
}

// extractExpr reassembles a field from its segments of the source word.
// Segments come least significant first, each landing at the running
// output offset.
func extractExpr(f layout.Field, src string) string {
	if f.Type.IsBool() {
		seg := f.Segments[0]
		if seg.Offset == 0 {
			return fmt.Sprintf("%s&1 == 1", src)
		}
		return fmt.Sprintf("%s>>%d&1 == 1", src, seg.Offset)
	}

	var parts []string
	out := uint8(0)
	for _, seg := range f.Segments {
		mask := uint64(1)<<seg.Len - 1
		var p string
		if seg.Offset == 0 {
			p = fmt.Sprintf("%s(%s&%#x)", f.Type.Go(), src, mask)
		} else {
			p = fmt.Sprintf("%s(%s>>%d&%#x)", f.Type.Go(), src, seg.Offset, mask)
		}
		if out > 0 {
			p += fmt.Sprintf("<<%d", out)
		}
		parts = append(parts, p)
		out += seg.Len
	}
	return strings.Join(parts, " | ")
}

// placeExpr distributes a field parameter's bits into its segments of
// the output word. Bool parameters read from their converted %cv form.
func placeExpr(f layout.Field, outType string) []string {
	name := string(f.Name)
	if f.Type.IsBool() {
		seg := f.Segments[0]
		if seg.Offset == 0 {
			return []string{name + "v"}
		}
		return []string{fmt.Sprintf("%sv<<%d", name, seg.Offset)}
	}

	var parts []string
	in := uint8(0)
	for _, seg := range f.Segments {
		mask := uint64(1)<<seg.Len - 1
		inner := name
		if in > 0 {
			inner = fmt.Sprintf("%s>>%d", name, in)
		}
		p := fmt.Sprintf("%s(%s&%#x)", outType, inner, mask)
		if seg.Offset > 0 {
			p += fmt.Sprintf("<<%d", seg.Offset)
		}
		parts = append(parts, p)
		in += seg.Len
	}
	return parts
}

// nativeBits is the bit count of the Go type a parameter is passed as,
// which may exceed the layout type's own width under exact precision.
func nativeBits(t layout.Type) uint8 {
	switch {
	case t <= layout.U8:
		return 8
	case t <= layout.U16:
		return 16
	case t <= layout.U32:
		return 32
	default:
		return 64
	}
}

func resultList(l *layout.Layout) string {
	var parts []string
	for _, f := range l.Fields {
		parts = append(parts, fmt.Sprintf("%c %s", f.Name, f.Type.Go()))
	}
	return strings.Join(parts, ", ")
}

func nameList(l *layout.Layout) string {
	var parts []string
	for _, f := range l.Fields {
		parts = append(parts, string(f.Name))
	}
	return strings.Join(parts, ", ")
}

func paramList(l *layout.Layout, first string) string {
	var parts []string
	if first != "" {
		parts = append(parts, first)
	}
	for _, f := range l.Fields {
		parts = append(parts, fmt.Sprintf("%c %s", f.Name, f.Type.Go()))
	}
	return strings.Join(parts, ", ")
}
