package gen

import (
	"os"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/bitweave/bitweave/engine"
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
	"github.com/bitweave/bitweave/template"
)

// Manifest describes a generated source file: the package it belongs to
// and one entry per function to emit.
type Manifest struct {
	Package string  `yaml:"package"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one template to generate a function for.
type Entry struct {
	// Name is the generated function's identifier.
	Name string `yaml:"name"`
	// Op is the operation: split, one, combine, or replace.
	Op string `yaml:"op"`
	// Base is the template's digit base, binary (default) or hex.
	Base string `yaml:"base"`
	// Template is the template text.
	Template string `yaml:"template"`
	// Overflow names the policy for combine and replace; empty means
	// truncate. Corrupt is not generatable and is rejected.
	Overflow string `yaml:"overflow"`
	// Min lower-bounds field output types: u8, u16, u32, or u64.
	Min string `yaml:"min"`
	// Exact keeps each field's own bit count instead of rounding up.
	Exact bool `yaml:"exact"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidManifest).
			Cause(err).
			Detail("read manifest %s", path).
			Build()
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidManifest).
			Cause(err).
			Detail("manifest is not valid YAML").
			Build()
	}

	if !isIdentifier(m.Package) || unicode.IsUpper([]rune(m.Package)[0]) {
		return nil, manifestErr("package %q is not a valid package name", m.Package)
	}
	if len(m.Entries) == 0 {
		return nil, manifestErr("manifest has no entries")
	}

	seen := make(map[string]bool)
	for i := range m.Entries {
		if err := m.Entries[i].validate(); err != nil {
			return nil, err
		}
		if seen[m.Entries[i].Name] {
			return nil, manifestErr("duplicate entry name %q", m.Entries[i].Name)
		}
		seen[m.Entries[i].Name] = true
	}
	return &m, nil
}

func (e *Entry) validate() error {
	if !isIdentifier(e.Name) {
		return manifestErr("entry name %q is not a valid identifier", e.Name)
	}
	switch e.Op {
	case "split", "one", "combine", "replace":
	default:
		return manifestErr("entry %q: op %q is not split, one, combine, or replace", e.Name, e.Op)
	}
	switch e.Base {
	case "", "binary", "hex":
	default:
		return manifestErr("entry %q: base %q is not binary or hex", e.Name, e.Base)
	}
	if e.Template == "" {
		return manifestErr("entry %q has no template", e.Name)
	}
	policy, ok := engine.ParseOverflow(e.Overflow)
	if !ok {
		return manifestErr("entry %q: unknown overflow policy %q", e.Name, e.Overflow)
	}
	if policy == engine.Corrupt {
		return manifestErr("entry %q: the corrupt policy cannot be generated", e.Name)
	}
	if _, ok := parseMin(e.Min); !ok {
		return manifestErr("entry %q: min %q is not u8, u16, u32, or u64", e.Name, e.Min)
	}
	return nil
}

// compile turns a validated entry into a layout plus its policy.
func (e *Entry) compile() (*layout.Layout, engine.Overflow, error) {
	base := template.Binary
	if e.Base == "hex" {
		base = template.Hex
	}
	ctx := template.Split
	switch e.Op {
	case "combine":
		ctx = template.Combine
	case "replace":
		ctx = template.Replace
	}

	t, err := template.Parse(e.Template, base, ctx)
	if err != nil {
		return nil, 0, err
	}

	cfg := layout.Config{}
	if e.Exact {
		cfg.Precision = layout.Exact
	}
	cfg.Min, _ = parseMin(e.Min)

	l := layout.Build(t, cfg)
	if l.Width > 64 {
		return nil, 0, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Template(e.Template).
			Detail("entry %q is %d bits wide; generation covers native widths up to 64", e.Name, l.Width).
			Build()
	}
	if e.Op == "one" && len(l.Fields) != 1 {
		return nil, 0, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Template(e.Template).
			Detail("entry %q: op one needs exactly one field, template has %d", e.Name, len(l.Fields)).
			Build()
	}

	policy, _ := engine.ParseOverflow(e.Overflow)
	return l, policy, nil
}

func parseMin(s string) (layout.Type, bool) {
	switch s {
	case "":
		return 0, true
	case "u8":
		return layout.U8, true
	case "u16":
		return layout.U16, true
	case "u32":
		return layout.U32, true
	case "u64":
		return layout.U64, true
	}
	return 0, false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func manifestErr(msg string, args ...any) *errors.Error {
	return errors.New(errors.PhaseGenerate, errors.KindInvalidManifest).
		Detail(msg, args...).
		Build()
}
