package beacon

import (
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
)

// BlockRoots returns the block_roots vector of one era from one entry per slot.
// A nil entry is an empty slot and repeats the root of the latest block before
// it, so the first slot of the era must hold a block.
func BlockRoots(blocks []*BeaconBlock) ([][32]byte, error) {
	if len(blocks) != fieldparams.SlotsPerHistoricalRoot {
		return nil, errors.Wrapf(ErrIncompleteEra, "got %d slots, want %d", len(blocks), fieldparams.SlotsPerHistoricalRoot)
	}
	if blocks[0] == nil {
		return nil, errors.Wrap(ErrIncompleteEra, "first slot of era is empty")
	}
	first := blocks[0].Slot
	if first.IndexInEra() != 0 {
		return nil, errors.Wrapf(ErrSlotMisaligned, "era starts at slot %d", first)
	}
	roots := make([][32]byte, len(blocks))
	for i, b := range blocks {
		if b == nil {
			roots[i] = roots[i-1]
			continue
		}
		if want := first + primitives.Slot(i); b.Slot != want {
			return nil, errors.Wrapf(ErrSlotMisaligned, "block at position %d has slot %d, want %d", i, b.Slot, want)
		}
		root, err := b.HashTreeRoot()
		if err != nil {
			return nil, errors.Wrapf(err, "could not hash block at slot %d", b.Slot)
		}
		roots[i] = root
	}
	return roots, nil
}

// BlockRootsTrie builds the depth 13 tree over the block_roots vector of an era.
// Its root is the hash tree root of the vector.
func BlockRootsTrie(blocks []*BeaconBlock) (*trie.SparseMerkleTrie, error) {
	roots, err := BlockRoots(blocks)
	if err != nil {
		return nil, err
	}
	return trie.GenerateTrieFromItems(roots, fieldparams.BlockRootsTreeDepth)
}
