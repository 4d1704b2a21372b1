package era

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// PreMergeValidator checks a complete pre-merge epoch against the master accumulator.
type PreMergeValidator struct{}

// ValidateEra implements Validator for *PreMergeContext.
func (*PreMergeValidator) ValidateEra(ctx Context) ([32]byte, error) {
	c, ok := ctx.(*PreMergeContext)
	if !ok {
		return [32]byte{}, errors.Wrapf(ErrContextMismatch, "pre-merge validator got %T", ctx)
	}
	if c.Accumulator == nil || c.Epoch == nil {
		return [32]byte{}, errors.Wrap(ErrIncompleteContext, "pre-merge context needs an accumulator and an epoch")
	}
	cfg, err := resolveConfig(c.Config)
	if err != nil {
		return [32]byte{}, err
	}
	index := c.Epoch.Index()
	if index > cfg.FinalPreMergeEpoch {
		return [32]byte{}, errors.Wrapf(ErrEpochPostMerge, "epoch %d, final pre-merge epoch %d", index, cfg.FinalPreMergeEpoch)
	}
	expected, err := c.Accumulator.EpochRoot(index)
	if err != nil {
		return [32]byte{}, err
	}
	actual, err := c.Epoch.Root()
	if err != nil {
		return [32]byte{}, errors.Wrapf(err, "could not compute root of epoch %d", index)
	}
	if actual != expected {
		log.WithFields(logrus.Fields{
			"epoch":    index,
			"expected": fmt.Sprintf("%#x", expected),
			"actual":   fmt.Sprintf("%#x", actual),
		}).Error("Epoch root does not match master accumulator")
		return [32]byte{}, newRootMismatchError(PreMerge, uint64(index), expected, actual)
	}
	return actual, nil
}
