package engine

import (
	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
)

// Replace assembles an integer like Combine, except placeholder positions
// copy the base integer's bits unchanged. Field and literal positions
// overwrite the base; under Corrupt, spill may overwrite preserved bits
// too.
func Replace(l *layout.Layout, base Word, args Args, policy Overflow) (Word, error) {
	combined, err := assemble(errors.PhaseReplace, l, args, policy)
	if err != nil {
		return Word{}, err
	}
	preserved := base.And(l.PlaceholderMask)
	return preserved.Or(combined).And(layout.WidthMask(l.Width)), nil
}
