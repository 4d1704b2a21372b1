package era

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
)

// SolanaValidator checks Solana block hashes against per-epoch roots.
type SolanaValidator struct{}

// ValidateEra implements Validator for *SolanaContext.
func (*SolanaValidator) ValidateEra(ctx Context) ([32]byte, error) {
	c, ok := ctx.(*SolanaContext)
	if !ok {
		return [32]byte{}, errors.Wrapf(ErrContextMismatch, "solana validator got %T", ctx)
	}
	cfg, err := resolveConfig(c.Config)
	if err != nil {
		return [32]byte{}, err
	}
	depth := SolanaDepth(cfg, c.Depth)
	if err := CheckSolanaDepth(cfg, depth); err != nil {
		return [32]byte{}, err
	}
	epoch, err := solanaEpochOf(cfg, c.Blocks)
	if err != nil {
		return [32]byte{}, err
	}
	if epoch >= uint64(len(c.Roots)) {
		return [32]byte{}, errors.Wrapf(ErrRootNotFound, "solana epoch %d, %d roots supplied", epoch, len(c.Roots))
	}
	root := c.Roots[epoch]

	if c.FullEpoch {
		tr, err := SolanaTrie(cfg, c.Blocks, depth)
		if err != nil {
			return [32]byte{}, err
		}
		if actual := tr.Root(); actual != root {
			logRootMismatch(Solana, epoch, root, actual)
			return [32]byte{}, newRootMismatchError(Solana, epoch, root, actual)
		}
		return root, nil
	}

	var failures []BlockFailure
	for i, b := range c.Blocks {
		if err := verifySolanaBlock(cfg, b, root, depth); err != nil {
			var slot primitives.Slot
			if b != nil {
				slot = primitives.Slot(b.Slot)
			}
			failures = append(failures, BlockFailure{Index: i, Slot: slot, Err: err})
		}
	}
	if err := blockFailures(Solana, failures); err != nil {
		return [32]byte{}, err
	}
	return root, nil
}

// SolanaDepth returns depth, or the configured tree depth when depth is zero.
func SolanaDepth(cfg *params.EraConfig, depth uint64) uint64 {
	if depth == 0 {
		return cfg.SolanaTreeDepth
	}
	return depth
}

// CheckSolanaDepth rejects a tree depth too shallow for one Solana epoch, and
// an empty epoch.
func CheckSolanaDepth(cfg *params.EraConfig, depth uint64) error {
	if cfg.SolanaEpochLength == 0 {
		return errors.Wrap(ErrIncompleteContext, "solana epoch length is zero")
	}
	if depth > trie.MaxDepth || uint64(1)<<depth < cfg.SolanaEpochLength {
		return errors.Wrapf(ErrIncompleteContext, "depth %d cannot hold %d slots", depth, cfg.SolanaEpochLength)
	}
	return nil
}

func solanaEpochOf(cfg *params.EraConfig, blocks []*SolanaBlock) (uint64, error) {
	var epoch uint64
	found := false
	for i, b := range blocks {
		if b == nil {
			continue
		}
		e := b.Slot / cfg.SolanaEpochLength
		if !found {
			epoch, found = e, true
			continue
		}
		if e != epoch {
			return 0, errors.Wrapf(ErrMixedEras, "block %d is in solana epoch %d, block 0 in epoch %d", i, e, epoch)
		}
	}
	if !found {
		return 0, ErrNoBlocks
	}
	return epoch, nil
}

// SolanaTrie builds the tree over the block hashes of one complete Solana epoch.
func SolanaTrie(cfg *params.EraConfig, blocks []*SolanaBlock, depth uint64) (*trie.SparseMerkleTrie, error) {
	if err := CheckSolanaDepth(cfg, depth); err != nil {
		return nil, err
	}
	if uint64(len(blocks)) != cfg.SolanaEpochLength {
		return nil, errors.Wrapf(ErrIncompleteContext, "got %d solana slots, want %d", len(blocks), cfg.SolanaEpochLength)
	}
	if blocks[0] == nil || blocks[0].Slot%cfg.SolanaEpochLength != 0 {
		return nil, errors.Wrap(ErrIncompleteContext, "solana epoch does not start at its first slot")
	}
	first := blocks[0].Slot
	leaves := make([][32]byte, len(blocks))
	for i, b := range blocks {
		if b == nil || b.Slot != first+uint64(i) {
			return nil, errors.Wrapf(ErrIncompleteContext, "solana slot %d missing", first+uint64(i))
		}
		leaves[i] = b.BlockHash
	}
	return trie.GenerateTrieFromItems(leaves, depth)
}

func verifySolanaBlock(cfg *params.EraConfig, b *SolanaBlock, root [32]byte, depth uint64) error {
	if b == nil {
		return errors.Wrap(ErrIncompleteContext, "missing block")
	}
	if uint64(len(b.Branch)) != depth {
		return errors.Wrapf(ErrMalformedBranch, "branch of length %d, want %d", len(b.Branch), depth)
	}
	index := b.Slot % cfg.SolanaEpochLength
	if !trie.VerifyMerkleProofWithDepth(root, b.BlockHash, index, b.Branch, depth) {
		return errors.Wrapf(ErrBlockNotCommitted, "solana slot %d hash %#x", b.Slot, b.BlockHash)
	}
	return nil
}
