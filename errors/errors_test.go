package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"phase_and_kind",
			New(PhaseParse, KindInvalidWidth).Build(),
			"[parse] invalid_width",
		},
		{
			"with_template_and_position",
			New(PhaseParse, KindInvalidCell).Template("aaab bb1c").Position(7).Build(),
			`[parse] invalid_cell in template "aaab bb1c" at position 7`,
		},
		{
			"with_field",
			New(PhaseCombine, KindOverflow).Field('a').Detail("too big").Build(),
			"[combine] overflow field 'a': too big",
		},
		{
			"with_detail_args",
			New(PhaseParse, KindInvalidWidth).Detail("got %d bits", 12).Build(),
			"[parse] invalid_width: got 12 bits",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := New(PhaseParse, KindInvalidWidth).Template("aaaa").Build()

	if !stderrors.Is(err, New(PhaseParse, KindInvalidWidth).Build()) {
		t.Error("expected Is to match on phase+kind")
	}
	if stderrors.Is(err, New(PhaseCombine, KindInvalidWidth).Build()) {
		t.Error("expected Is to reject mismatched phase")
	}
	if stderrors.Is(err, New(PhaseParse, KindOverflow).Build()) {
		t.Error("expected Is to reject mismatched kind")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := New(PhaseGenerate, KindInvalidManifest).Cause(cause).Build()

	if !stderrors.Is(err, cause) {
		t.Error("expected Is to find the cause")
	}
	if !strings.Contains(err.Error(), "caused by: root cause") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("invalid_width", func(t *testing.T) {
		err := InvalidWidth(PhaseParse, "aaaa", 4)
		if err.Kind != KindInvalidWidth || err.Template != "aaaa" {
			t.Errorf("unexpected error: %v", err)
		}
		if !strings.Contains(err.Error(), "was 4") {
			t.Errorf("expected width in message, got %q", err.Error())
		}
	})

	t.Run("invalid_cell", func(t *testing.T) {
		err := InvalidCell(PhaseParse, "aaab bb1c", 7, "literal covers 100% of the cell")
		if err.Kind != KindInvalidCell || err.Position != 7 {
			t.Errorf("unexpected error: %v", err)
		}
		// The detail is caller data, not a format string.
		if !strings.Contains(err.Error(), "100% of the cell") {
			t.Errorf("detail mangled: %q", err.Error())
		}
	})

	t.Run("invalid_char", func(t *testing.T) {
		err := InvalidChar(PhaseParse, "aa!a aaaa", 2, '!')
		if err.Position != 2 {
			t.Errorf("position: got %d, want 2", err.Position)
		}
	})

	t.Run("duplicate_field", func(t *testing.T) {
		err := DuplicateField(PhaseCombine, 'x')
		if err.Field != 'x' || err.Kind != KindDuplicateField {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		err := Overflow(PhaseCombine, 'a', "0b110", 2)
		if !strings.Contains(err.Error(), "2-bit slot") {
			t.Errorf("expected slot width in message, got %q", err.Error())
		}
	})
}
