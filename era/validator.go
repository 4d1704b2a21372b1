package era

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/sirupsen/logrus"
)

// Validator checks a context against the trusted roots of its era and returns
// the trusted root the context was checked against.
type Validator interface {
	ValidateEra(ctx Context) ([32]byte, error)
}

var validators = map[Kind]Validator{
	PreMerge:    &PreMergeValidator{},
	PostMerge:   &PostMergeValidator{},
	PostCapella: &PostCapellaValidator{},
	Solana:      &SolanaValidator{},
}

// ValidatorFor returns the strategy of an era.
func ValidatorFor(kind Kind) (Validator, error) {
	v, ok := validators[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedKind, "%d", kind)
	}
	return v, nil
}

// ValidateEra selects the era of an execution block height, checks that ctx
// belongs to it and runs the matching strategy. Solana contexts are dispatched
// on their kind alone since Solana slots do not share the execution numbering.
func ValidateEra(cfg *params.EraConfig, height primitives.BlockNumber, ctx Context) ([32]byte, error) {
	if ctx == nil {
		return [32]byte{}, errors.Wrap(ErrIncompleteContext, "nil context")
	}
	kind := ctx.Kind()
	if kind != Solana {
		resolved, err := resolveConfig(cfg)
		if err != nil {
			return [32]byte{}, err
		}
		kind = SelectByBlockNumber(resolved, height)
		if kind != ctx.Kind() {
			return [32]byte{}, errors.Wrapf(ErrContextMismatch, "height %d is %s, context is %s", height, kind, ctx.Kind())
		}
	}
	v, err := ValidatorFor(kind)
	if err != nil {
		return [32]byte{}, err
	}
	root, err := v.ValidateEra(ctx)
	recordValidation(kind, err)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"kind":   kind,
			"height": height,
		}).Warn("Era validation failed")
		return [32]byte{}, err
	}
	log.WithFields(logrus.Fields{
		"kind": kind,
		"root": fmt.Sprintf("%#x", root),
	}).Debug("Era validated")
	return root, nil
}
