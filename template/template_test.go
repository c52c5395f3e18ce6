package template

import (
	stderrors "errors"
	"testing"

	"github.com/bitweave/bitweave/errors"
)

func TestParseBinary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ctx      Context
		expanded string
	}{
		{"fields_only", "aaabbccc", Split, "aaabbccc"},
		{"whitespace_stripped", " a aa   b bccc  ", Split, "aaabbccc"},
		{"placeholders", ".aa.bb..", Split, ".aa.bb.."},
		{"literals_in_combine", "aa1001bb", Combine, "aa1001bb"},
		{"all_kinds_in_replace", "aaa..bb0", Replace, "aaa..bb0"},
		{"uppercase_distinct", "aaAAbbBB", Split, "aaAAbbBB"},
		{"zero_fields_combine", "10101010", Combine, "10101010"},
		{"sixteen_bits", "aaaa bbbb cccc dddd", Split, "aaaabbbbccccdddd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := Parse(tc.input, Binary, tc.ctx)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := tmpl.String(); got != tc.expanded {
				t.Errorf("expanded: got %q, want %q", got, tc.expanded)
			}
			if tmpl.Width() != len(tc.expanded) {
				t.Errorf("width: got %d, want %d", tmpl.Width(), len(tc.expanded))
			}
		})
	}
}

func TestParseHexExpansion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expanded string
	}{
		{"digits", "F0", "11110000"},
		{"digit_mix", "A5", "10100101"},
		{"field_letter", "ab", "aaaabbbb"},
		{"placeholder", "a.", "aaaa...."},
		{"uppercase_letter_field", "aG", "aaaaGGGG"},
		{"digits_and_fields", "3Fxy", "0011 1111 xxxx yyyy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Replace // accepts every cell kind
			tmpl, err := Parse(tc.input, Hex, ctx)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			want, err := Parse(tc.expanded, Binary, ctx)
			if err != nil {
				t.Fatalf("Parse expansion: %v", err)
			}
			if tmpl.String() != want.String() {
				t.Errorf("expanded: got %q, want %q", tmpl.String(), want.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		base  Base
		ctx   Context
		kind  errors.Kind
		pos   int
	}{
		{"width_too_short", "aaa", Binary, Split, errors.KindInvalidWidth, -1},
		{"width_not_standard", "aaaa aaaa aaaa", Binary, Split, errors.KindInvalidWidth, -1},
		{"width_over_128", "aaaa aaaa aaaa aaaa aaaa aaaa aaaa aaaa a", Hex, Split, errors.KindInvalidWidth, -1},
		{"bad_char", "aa!a aaaa", Binary, Split, errors.KindInvalidChar, 2},
		{"digit_in_binary", "aa2a aaaa", Binary, Split, errors.KindInvalidChar, 2},
		{"literal_in_split", "aaab bb1c", Binary, Split, errors.KindInvalidCell, 7},
		{"placeholder_in_combine", "aaab bb.c", Binary, Combine, errors.KindInvalidCell, 7},
		{"hex_literal_in_split", "aF", Hex, Split, errors.KindInvalidCell, 1},
		{"hex_placeholder_in_combine", "a.", Hex, Combine, errors.KindInvalidCell, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input, tc.base, tc.ctx)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var werr *errors.Error
			if !stderrors.As(err, &werr) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if werr.Kind != tc.kind {
				t.Errorf("kind: got %s, want %s", werr.Kind, tc.kind)
			}
			if werr.Position != tc.pos {
				t.Errorf("position: got %d, want %d", werr.Position, tc.pos)
			}
		})
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ordered", "aaabbccc", "abc"},
		{"first_occurrence", "bdda.cc.", "bdac"},
		{"discontiguous", "abadadda", "abd"},
		{"case_distinct", "aAaA bbBB", "aAbB"},
		{"none", "....0101", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := Parse(tc.input, Binary, Replace)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := string(tmpl.Names())
			if got != tc.want {
				t.Errorf("names: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHasPlaceholders(t *testing.T) {
	with, err := Parse(".aa.bb..", Binary, Split)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !with.HasPlaceholders() {
		t.Error("expected placeholders")
	}

	without, err := Parse("aaabbccc", Binary, Split)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if without.HasPlaceholders() {
		t.Error("expected no placeholders")
	}
}
