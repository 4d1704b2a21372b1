package accumulator

import (
	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
)

var (
	// ErrNilRecord is returned when a header record is missing from an input slice.
	ErrNilRecord = consensus_types.NewError(consensus_types.ErrStructural, "nil header record")
	// ErrInvalidEpochLength is returned when an epoch is not built from exactly EpochSize records.
	ErrInvalidEpochLength = consensus_types.NewError(consensus_types.ErrStructural, "invalid epoch length")
	// ErrNonContiguous is returned when block numbers do not increase by exactly one.
	ErrNonContiguous = consensus_types.NewError(consensus_types.ErrStructural, "header records are not contiguous")
	// ErrWrongEpochAlignment is returned when the first record does not start an epoch.
	ErrWrongEpochAlignment = consensus_types.NewError(consensus_types.ErrStructural, "first record is not aligned to an epoch boundary")
	// ErrMissingTotalDifficulty is returned when a pre-merge record has no total difficulty.
	ErrMissingTotalDifficulty = consensus_types.NewError(consensus_types.ErrStructural, "header record has no total difficulty")
	// ErrHeaderHashMismatch is returned when a full header does not hash to the record's block hash.
	ErrHeaderHashMismatch = consensus_types.NewError(consensus_types.ErrMismatch, "header does not hash to block hash")
	// ErrEpochRootNotFound is returned when the accumulator holds no root for an epoch.
	ErrEpochRootNotFound = consensus_types.NewError(consensus_types.ErrLookup, "epoch root not found in accumulator")
	// ErrAccumulatorRoot is returned when a loaded accumulator does not match the trusted root.
	ErrAccumulatorRoot = consensus_types.NewError(consensus_types.ErrMismatch, "accumulator root does not match trusted root")
)
