package engine

import (
	stderrors "errors"
	"testing"

	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/template"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name     string
		template string
		base     uint64
		args     Args
		policy   Overflow
		want     uint64
	}{
		{
			"placeholders_preserve_base",
			"aaa..bb.", 0b10000001,
			Args{'a': arg64(0b101, 8), 'b': arg64(0b01, 8)},
			Truncate,
			0b10100011,
		},
		{
			"sixteen_bit",
			"aaab bbbb .d.. cccc", 0b1001_1010_1100_1111,
			Args{'a': arg64(0b101, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)},
			Truncate,
			0b1010_0001_1000_0101,
		},
		{
			"with_literals",
			"aaab bbbb 0d11 cccc", 0b1001_1010_1100_1111,
			Args{'a': arg64(0b101, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)},
			Truncate,
			0b1010_0001_0011_0101,
		},
		{
			"segmented_fields",
			"aabb bbab .c.. ccdc", 0b1001_1010_1100_1111,
			Args{'a': arg64(0b101, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(1, 8)},
			Truncate,
			0b1000_0011_1000_1011,
		},
		{
			"oversized_truncate",
			".aab bbbb .d.. cccc", 0b0001_1010_1100_1111,
			Args{'a': arg64(0b110, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)},
			Truncate,
			0b0100_0001_1000_0101,
		},
		{
			"oversized_saturate",
			".aab bbbb .d.. cccc", 0b0001_1010_1100_1111,
			Args{'a': arg64(0b110, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)},
			Saturate,
			0b0110_0001_1000_0101,
		},
		{
			"oversized_corrupt_spills",
			".aab bbbb .d.. cccc", 0b0001_1010_1100_1111,
			Args{'a': arg64(0b1101, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)},
			Corrupt,
			0b1010_0001_1000_0101,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := buildLayout(t, tc.template, template.Binary, template.Replace)
			got, err := Replace(l, uint128.From64(tc.base), tc.args, tc.policy)
			if err != nil {
				t.Fatalf("Replace: %v", err)
			}
			if !got.Equals64(tc.want) {
				t.Errorf("got %#b, want %#b", got.Lo, tc.want)
			}
		})
	}
}

func TestReplacePanicPolicy(t *testing.T) {
	l := buildLayout(t, ".aab bbbb .d.. cccc", template.Binary, template.Replace)
	args := Args{'a': arg64(0b110, 16), 'b': arg64(0b00001, 8), 'c': arg64(0b0101, 16), 'd': arg64(0, 8)}

	_, err := Replace(l, uint128.From64(0b0001_1010_1100_1111), args, Panic)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if werr.Kind != errors.KindOverflow || werr.Phase != errors.PhaseReplace {
		t.Errorf("unexpected error: %v", werr)
	}
	if werr.Field != 'a' {
		t.Errorf("field: got %q, want 'a'", werr.Field)
	}
}

func TestReplaceHex(t *testing.T) {
	// 0a.. cc.b bbbb bb1D over 0xABCD_EF01_2345_6789.
	l := buildLayout(t, "0a.. cc.b bbbb bb1D", template.Hex, template.Replace)
	args := Args{
		'a': arg64(0xE, 4),
		'c': arg64(0x2A, 8),
		'b': arg64(0x90210AB, 28),
	}
	got, err := Replace(l, uint128.From64(0xABCD_EF01_2345_6789), args, Truncate)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !got.Equals64(0x0ECD_2A09_0210_AB1D) {
		t.Errorf("got %#x, want 0x0ECD2A090210AB1D", got.Lo)
	}
}

func TestReplaceAllPlaceholders(t *testing.T) {
	l := buildLayout(t, "........", template.Binary, template.Replace)
	got, err := Replace(l, uint128.From64(0b1100_0011), Args{}, Truncate)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !got.Equals64(0b1100_0011) {
		t.Errorf("got %#b, want base unchanged", got.Lo)
	}
}
