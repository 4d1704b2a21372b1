package proof

import (
	"fmt"
	"strings"

	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
)

var (
	// ErrMalformedProof is returned when a proof does not have the shape its era requires.
	ErrMalformedProof = consensus_types.NewError(consensus_types.ErrStructural, "malformed inclusion proof")
	// ErrLeafIndexOutOfRange is returned when a proof leaf index exceeds its tree.
	ErrLeafIndexOutOfRange = consensus_types.NewError(consensus_types.ErrStructural, "leaf index out of range")
	// ErrMissingReferenceData is returned when the trusted data needed by a proof was not supplied.
	ErrMissingReferenceData = consensus_types.NewError(consensus_types.ErrLookup, "missing reference data")
	// ErrHeaderNotInEpoch is returned when no supplied epoch covers a header.
	ErrHeaderNotInEpoch = consensus_types.NewError(consensus_types.ErrLookup, "header not covered by supplied epochs")
	// ErrEpochMismatch is returned when a header is proven against an epoch not covering it.
	ErrEpochMismatch = consensus_types.NewError(consensus_types.ErrStructural, "header does not belong to epoch")
	// ErrHeaderMismatch is returned when a header differs from the record held by its epoch.
	ErrHeaderMismatch = consensus_types.NewError(consensus_types.ErrMismatch, "header differs from epoch record")
	// ErrProofMismatch is returned when a proof does not fold to its trusted root.
	ErrProofMismatch = consensus_types.NewError(consensus_types.ErrMismatch, "inclusion proof does not match trusted root")
	// ErrBatchVerification is returned when one or more proofs of a batch fail.
	ErrBatchVerification = consensus_types.NewError(consensus_types.ErrMismatch, "inclusion proofs failed verification")
)

// Failure is the verification error of one proof of a batch.
type Failure struct {
	Index int
	Err   error
}

// BatchError collects every failing proof of a batch, in batch order.
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("proof %d: %v", f.Index, f.Err)
	}
	return fmt.Sprintf("%s: %s", ErrBatchVerification.Error(), strings.Join(parts, "; "))
}

// FailedIndices returns the batch positions of the failing proofs.
func (e *BatchError) FailedIndices() []int {
	indices := make([]int, len(e.Failures))
	for i, f := range e.Failures {
		indices[i] = f.Index
	}
	return indices
}

func (e *BatchError) Unwrap() error {
	return ErrBatchVerification
}
