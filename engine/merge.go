package engine

import (
	"go.uber.org/zap"

	"github.com/bitweave/bitweave/errors"
	"github.com/bitweave/bitweave/layout"
)

// Input pairs a source integer with the layout that splits it.
type Input struct {
	Layout *layout.Layout
	Value  Word
}

// SplitThenCombine extracts every input's fields, merges them into one
// namespace, and assembles the output layout from the merged set. A field
// letter produced by more than one input is a duplicate_field error; an
// output letter no input produced is an undefined_field error.
func SplitThenCombine(inputs []Input, output *layout.Layout, policy Overflow) (Word, error) {
	merged := make(Args)
	for _, in := range inputs {
		for _, fv := range Extract(in.Layout, in.Value) {
			if _, dup := merged[fv.Name]; dup {
				return Word{}, errors.DuplicateField(errors.PhaseCombine, fv.Name)
			}
			merged[fv.Name] = Arg{Value: fv.Value, Width: fv.Width}
		}
	}

	Logger().Debug("split-then-combine",
		zap.Int("inputs", len(inputs)),
		zap.Int("fields", len(merged)),
		zap.String("output", output.Template.Source))

	return Combine(output, merged, policy)
}
