package util

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/stretchr/testify/require"
)

// SolanaConfig returns the mainnet configuration with a short Solana epoch.
func SolanaConfig(t testing.TB, epochLength, depth uint64) *params.EraConfig {
	cfg := params.MainnetConfig().Copy()
	cfg.SolanaEpochLength = epochLength
	cfg.SolanaTreeDepth = depth
	require.NoError(t, cfg.Validate())
	return cfg
}

// SolanaHash returns the synthetic block hash of a Solana slot.
func SolanaHash(slot uint64) common.Hash {
	return slotHash("solana", slot)
}

// NewSolanaEpoch returns every block of a Solana epoch with its branch, and the
// root of the epoch.
func NewSolanaEpoch(t testing.TB, cfg *params.EraConfig, epoch uint64) ([]*era.SolanaBlock, [32]byte) {
	blocks := make([]*era.SolanaBlock, cfg.SolanaEpochLength)
	first := epoch * cfg.SolanaEpochLength
	for i := range blocks {
		slot := first + uint64(i)
		blocks[i] = &era.SolanaBlock{Slot: slot, BlockHash: SolanaHash(slot)}
	}
	tr, err := era.SolanaTrie(cfg, blocks, cfg.SolanaTreeDepth)
	require.NoError(t, err)
	for i, b := range blocks {
		b.Branch, err = tr.MerkleProof(i)
		require.NoError(t, err)
	}
	return blocks, tr.Root()
}
