package layout

import "testing"

func TestForField(t *testing.T) {
	tests := []struct {
		name  string
		width uint8
		prec  Precision
		min   Type
		want  Type
	}{
		{"one_bit_bool", 1, Standard, 0, Bool},
		{"round_to_u8", 3, Standard, 0, U8},
		{"exactly_u8", 8, Standard, 0, U8},
		{"round_to_u16", 9, Standard, 0, U16},
		{"round_to_u32", 19, Standard, 0, U32},
		{"round_to_u64", 33, Standard, 0, U64},
		{"round_to_u128", 65, Standard, 0, U128},
		{"full_width", 128, Standard, 0, U128},
		{"exact_keeps_width", 9, Exact, 0, Type(9)},
		{"exact_u19", 19, Exact, 0, Type(19)},
		{"exact_one_bit_bool", 1, Exact, 0, Bool},
		{"min_promotes_bool", 1, Standard, U8, U8},
		{"min_promotes_u8", 3, Standard, U16, U16},
		{"min_below_is_ignored", 9, Standard, U8, U16},
		{"exact_min_u2", 1, Exact, Type(2), Type(2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ForField(tc.width, tc.prec, tc.min); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Bool, "bool"},
		{U8, "u8"},
		{Type(19), "u19"},
		{U128, "u128"},
	}

	for _, tc := range tests {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("%d: got %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestTypeGo(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{Bool, "bool"},
		{Type(5), "uint8"},
		{U8, "uint8"},
		{Type(12), "uint16"},
		{U32, "uint32"},
		{Type(48), "uint64"},
		{Type(100), "uint128.Uint128"},
	}

	for _, tc := range tests {
		if got := tc.t.Go(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestForTemplate(t *testing.T) {
	for _, w := range []int{8, 16, 32, 64, 128} {
		if got := ForTemplate(w); got.Bits() != uint8(w) {
			t.Errorf("%d: got %s", w, got)
		}
	}
}
