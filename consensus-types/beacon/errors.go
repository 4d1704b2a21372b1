package beacon

import (
	"github.com/pkg/errors"
	consensus_types "github.com/prysmaticlabs/eraauth/consensus-types"
)

var (
	// ErrNoExecutionPayload is returned when a block carries no execution block hash.
	ErrNoExecutionPayload = consensus_types.NewError(consensus_types.ErrStructural, "beacon block has no execution payload")
	// ErrExecutionBranch is returned when an execution block hash does not verify
	// against the beacon block root.
	ErrExecutionBranch = consensus_types.NewError(consensus_types.ErrMismatch, "execution block hash not committed to by beacon block")
	// ErrIncompleteEra is returned when a full era is expected but not supplied.
	ErrIncompleteEra = consensus_types.NewError(consensus_types.ErrStructural, "incomplete era of beacon blocks")
	// ErrSlotMisaligned is returned when a block does not sit at its expected slot.
	ErrSlotMisaligned = consensus_types.NewError(consensus_types.ErrStructural, "beacon block slot misaligned")
)

var errNilElement = func(i int) error {
	return errors.Wrapf(consensus_types.ErrStructural, "nil element at index %d", i)
}
