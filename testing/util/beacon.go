package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/stretchr/testify/require"
)

func slotHash(label string, slot uint64) [32]byte {
	return hash.Hash(append([]byte(label), bytesutil.Bytes8(slot)...))
}

// ExecutionHash returns the synthetic execution block hash carried by the block at slot.
func ExecutionHash(slot primitives.Slot) common.Hash {
	return slotHash("execution", uint64(slot))
}

// ExecutionNumber returns the synthetic execution block number carried by the block at slot.
func ExecutionNumber(cfg *params.EraConfig, slot primitives.Slot) primitives.BlockNumber {
	if slot < cfg.CapellaForkSlot() {
		return cfg.MergeBlockNumber + primitives.BlockNumber(slot-cfg.BellatrixForkSlot())
	}
	return cfg.CapellaBlockNumber + primitives.BlockNumber(slot-cfg.CapellaForkSlot())
}

// StateRootsRoot returns the synthetic state_roots root of an era.
func StateRootsRoot(e primitives.EraIndex) [32]byte {
	return slotHash("state_roots", uint64(e))
}

// NewBeaconBlock returns a block at slot whose body commits to ExecutionHash(slot)
// through a synthetic body branch.
func NewBeaconBlock(t testing.TB, cfg *params.EraConfig, slot primitives.Slot) *beacon.BeaconBlock {
	b := &beacon.BeaconBlock{
		Slot:          slot,
		ProposerIndex: uint64(slot) % 1024,
		ParentRoot:    slotHash("parent", uint64(slot)),
		StateRoot:     slotHash("state", uint64(slot)),
	}
	execHash := ExecutionHash(slot)
	gindex, depth := beacon.ExecutionBlockHashGindex(cfg, slot)
	headerBranch, err := b.HeaderBranch()
	require.NoError(t, err)
	bodyBranch := make([][32]byte, depth-len(headerBranch))
	for i := range bodyBranch {
		bodyBranch[i] = slotHash("body", uint64(slot)*64+uint64(i))
	}
	b.BodyRoot = trie.FoldBranch(execHash, gindex-uint64(1)<<uint(depth), bodyBranch)
	b.ExecutionBlockHash = &execHash
	b.ExecutionBlockNumber = ExecutionNumber(cfg, slot)
	b.ExecutionBranch = append(bodyBranch, headerBranch...)
	require.NoError(t, b.VerifyExecutionBlockHash(cfg))
	return b
}

// NewBeaconEra returns one block per slot of era e.
func NewBeaconEra(t testing.TB, cfg *params.EraConfig, e primitives.EraIndex) []*beacon.BeaconBlock {
	blocks := make([]*beacon.BeaconBlock, fieldparams.SlotsPerHistoricalRoot)
	for i := range blocks {
		blocks[i] = NewBeaconBlock(t, cfg, e.FirstSlot()+primitives.Slot(i))
	}
	return blocks
}

// BlockRootsRoot returns the block_roots root of a complete era.
func BlockRootsRoot(t testing.TB, blocks []*beacon.BeaconBlock) [32]byte {
	tr, err := beacon.BlockRootsTrie(blocks)
	require.NoError(t, err)
	return tr.Root()
}

// NewHistoricalRoots returns historical roots for eras 0 to e where entry e
// commits to the given complete era with StateRootsRoot(e).
func NewHistoricalRoots(t testing.TB, e primitives.EraIndex, blocks []*beacon.BeaconBlock) beacon.HistoricalRoots {
	roots := make(beacon.HistoricalRoots, e+1)
	for i := range roots {
		roots[i] = slotHash("historical_root", uint64(i))
	}
	batchRoot, err := beacon.HistoricalBatchRoot(BlockRootsRoot(t, blocks), StateRootsRoot(e))
	require.NoError(t, err)
	roots[e] = batchRoot
	return roots
}

// NewHistoricalSummaries returns summaries up to the complete era of blocks,
// the last one committing to it.
func NewHistoricalSummaries(t testing.TB, cfg *params.EraConfig, blocks []*beacon.BeaconBlock) beacon.HistoricalSummaries {
	e := blocks[0].Slot.Era()
	last := uint64(e.FirstSlot()-cfg.CapellaForkSlot()) / fieldparams.SlotsPerHistoricalRoot
	summaries := make(beacon.HistoricalSummaries, last+1)
	for i := range summaries {
		summaries[i] = &beacon.HistoricalSummary{
			BlockSummaryRoot: slotHash("block_summary", uint64(i)),
			StateSummaryRoot: slotHash("state_summary", uint64(i)),
		}
	}
	summaries[last].BlockSummaryRoot = BlockRootsRoot(t, blocks)
	return summaries
}

// ProvenBlocks attaches to each block the branch of its root under the era root.
// Post-merge branches end with the state_roots sibling of the HistoricalBatch.
func ProvenBlocks(t testing.TB, kind era.Kind, blocks []*beacon.BeaconBlock) []*era.ProvenBlock {
	tr, err := beacon.BlockRootsTrie(blocks)
	require.NoError(t, err)
	e := blocks[0].Slot.Era()
	proven := make([]*era.ProvenBlock, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		branch, err := tr.MerkleProof(int(b.Slot.IndexInEra()))
		require.NoError(t, err)
		if kind == era.PostMerge {
			branch = append(branch, StateRootsRoot(e))
		}
		proven = append(proven, &era.ProvenBlock{Block: b, Branch: branch})
	}
	return proven
}

// FullEra wraps every slot of a complete era without branches.
func FullEra(blocks []*beacon.BeaconBlock) []*era.ProvenBlock {
	out := make([]*era.ProvenBlock, len(blocks))
	for i, b := range blocks {
		if b != nil {
			out[i] = &era.ProvenBlock{Block: b}
		}
	}
	return out
}
