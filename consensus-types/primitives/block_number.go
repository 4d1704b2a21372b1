package primitives

import (
	"fmt"

	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
)

// BlockNumber is the height of an execution layer block.
type BlockNumber uint64

// EpochIndex is the position of a pre-merge epoch accumulator in the master accumulator.
type EpochIndex uint64

// Epoch returns the index of the epoch accumulator that commits to the block.
func (n BlockNumber) Epoch() EpochIndex {
	return EpochIndex(uint64(n) / fieldparams.EpochSize)
}

// IndexInEpoch returns the position of the block's record inside its epoch accumulator.
func (n BlockNumber) IndexInEpoch() uint64 {
	return uint64(n) % fieldparams.EpochSize
}

// FirstBlock is the first block number committed to by the epoch accumulator.
func (e EpochIndex) FirstBlock() BlockNumber {
	return BlockNumber(uint64(e) * fieldparams.EpochSize)
}

// LastBlock is the last block number committed to by the epoch accumulator.
func (e EpochIndex) LastBlock() BlockNumber {
	return e.FirstBlock() + fieldparams.EpochSize - 1
}

func (e EpochIndex) String() string {
	return fmt.Sprintf("%d [%d..%d]", uint64(e), e.FirstBlock(), e.LastBlock())
}
