package era

import (
	"fmt"
	"strings"

	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
)

var (
	// ErrUnsupportedKind is returned for an unknown era kind.
	ErrUnsupportedKind = consensus_types.NewError(consensus_types.ErrUnsupportedEra, "unsupported era kind")
	// ErrWrongEra is returned when a block lies outside the era handled by a strategy.
	ErrWrongEra = consensus_types.NewError(consensus_types.ErrUnsupportedEra, "block outside the era of the validator")
	// ErrEpochPostMerge is returned when a pre-merge validation targets an epoch after the merge.
	ErrEpochPostMerge = consensus_types.NewError(consensus_types.ErrUnsupportedEra, "epoch is after the final pre-merge epoch")
	// ErrContextMismatch is returned when a strategy receives a context of another era.
	ErrContextMismatch = consensus_types.NewError(consensus_types.ErrStructural, "context does not match era")
	// ErrMixedEras is returned when the blocks of one call span more than one era.
	ErrMixedEras = consensus_types.NewError(consensus_types.ErrStructural, "blocks span more than one era")
	// ErrNoBlocks is returned when a context carries no blocks.
	ErrNoBlocks = consensus_types.NewError(consensus_types.ErrStructural, "no blocks to validate")
	// ErrIncompleteContext is returned when a context lacks a required field.
	ErrIncompleteContext = consensus_types.NewError(consensus_types.ErrStructural, "incomplete validation context")
	// ErrMalformedBranch is returned when a block branch has the wrong length.
	ErrMalformedBranch = consensus_types.NewError(consensus_types.ErrStructural, "malformed block branch")
	// ErrRootNotFound is returned when no trusted root exists for an era.
	ErrRootNotFound = consensus_types.NewError(consensus_types.ErrLookup, "no trusted root for era")
	// ErrAccumulatorMismatch is returned when an epoch root differs from the accumulator.
	ErrAccumulatorMismatch = consensus_types.NewError(consensus_types.ErrMismatch, "epoch root does not match master accumulator")
	// ErrEraRootMismatch is returned when a complete era does not hash to its trusted root.
	ErrEraRootMismatch = consensus_types.NewError(consensus_types.ErrMismatch, "era root does not match trusted root")
	// ErrBlockNotCommitted is returned when a block does not verify under the root of its era.
	ErrBlockNotCommitted = consensus_types.NewError(consensus_types.ErrMismatch, "block not committed to by era root")
	// ErrBlockVerification is returned when one or more blocks of an era fail verification.
	ErrBlockVerification = consensus_types.NewError(consensus_types.ErrMismatch, "blocks failed verification")
)

// RootMismatchError reports the expected and computed roots of an era.
type RootMismatchError struct {
	Kind     Kind
	Index    uint64
	Expected [32]byte
	Actual   [32]byte
	sentinel error
}

func newRootMismatchError(kind Kind, index uint64, expected, actual [32]byte) *RootMismatchError {
	sentinel := error(ErrEraRootMismatch)
	if kind == PreMerge {
		sentinel = ErrAccumulatorMismatch
	}
	return &RootMismatchError{Kind: kind, Index: index, Expected: expected, Actual: actual, sentinel: sentinel}
}

func (e *RootMismatchError) Error() string {
	return fmt.Sprintf("%s: %s era %d expected %#x, got %#x", e.sentinel.Error(), e.Kind, e.Index, e.Expected, e.Actual)
}

func (e *RootMismatchError) Unwrap() error {
	return e.sentinel
}

// BlockFailure is the verification error of one block of a context.
type BlockFailure struct {
	Index int
	Slot  primitives.Slot
	Err   error
}

// BlockFailuresError collects every failing block of a context.
type BlockFailuresError struct {
	failures []BlockFailure
}

// NewBlockFailuresError returns an error over the given failures.
func NewBlockFailuresError(failures []BlockFailure) *BlockFailuresError {
	return &BlockFailuresError{failures: failures}
}

func (e *BlockFailuresError) Error() string {
	parts := make([]string, len(e.failures))
	for i, f := range e.failures {
		parts[i] = fmt.Sprintf("block %d (slot %d): %v", f.Index, f.Slot, f.Err)
	}
	return fmt.Sprintf("%s: %s", ErrBlockVerification.Error(), strings.Join(parts, "; "))
}

// Failed returns the failures in block order.
func (e *BlockFailuresError) Failed() []BlockFailure {
	return e.failures
}

// FailedIndices returns the positions of the failing blocks.
func (e *BlockFailuresError) FailedIndices() []int {
	indices := make([]int, len(e.failures))
	for i, f := range e.failures {
		indices[i] = f.Index
	}
	return indices
}

func (e *BlockFailuresError) Unwrap() error {
	return ErrBlockVerification
}
