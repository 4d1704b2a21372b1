// Package params defines the chain boundaries and trusted roots used to
// authenticate historical headers.
package params

import (
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
)

// EraConfig contains the boundaries separating the consensus eras of a chain
// together with the reference data that anchors the pre-merge era.
type EraConfig struct {
	ConfigName              string                 `yaml:"CONFIG_NAME"`
	MergeBlockNumber        primitives.BlockNumber `yaml:"MERGE_BLOCK_NUMBER"`   // First proof-of-stake execution block.
	CapellaBlockNumber      primitives.BlockNumber `yaml:"CAPELLA_BLOCK_NUMBER"` // First execution block of the Shanghai/Capella fork.
	BellatrixForkEpoch      primitives.Epoch       `yaml:"BELLATRIX_FORK_EPOCH"`
	CapellaForkEpoch        primitives.Epoch       `yaml:"CAPELLA_FORK_EPOCH"`
	DenebForkEpoch          primitives.Epoch       `yaml:"DENEB_FORK_EPOCH"`
	SlotsPerEpoch           primitives.Slot        `yaml:"SLOTS_PER_EPOCH"`
	SlotsPerHistoricalRoot  primitives.Slot        `yaml:"SLOTS_PER_HISTORICAL_ROOT"`
	EpochSize               uint64                 `yaml:"EPOCH_SIZE"`            // Header records per pre-merge epoch accumulator.
	FinalPreMergeEpoch      primitives.EpochIndex  `yaml:"FINAL_PRE_MERGE_EPOCH"` // Last epoch committed to by the master accumulator.
	SolanaEpochLength       uint64                 `yaml:"SOLANA_EPOCH_LENGTH"`
	SolanaTreeDepth         uint64                 `yaml:"SOLANA_TREE_DEPTH"`
	PreMergeAccumulatorRoot []byte                 `yaml:"PRE_MERGE_ACCUMULATOR_ROOT"`
}

// CapellaForkSlot is the first beacon slot covered by historical summaries.
func (c *EraConfig) CapellaForkSlot() primitives.Slot {
	return primitives.Slot(uint64(c.CapellaForkEpoch) * uint64(c.SlotsPerEpoch))
}

// DenebForkSlot is the first beacon slot carrying a Deneb execution payload.
func (c *EraConfig) DenebForkSlot() primitives.Slot {
	return primitives.Slot(uint64(c.DenebForkEpoch) * uint64(c.SlotsPerEpoch))
}

// BellatrixForkSlot is the first beacon slot able to carry an execution payload.
func (c *EraConfig) BellatrixForkSlot() primitives.Slot {
	return primitives.Slot(uint64(c.BellatrixForkEpoch) * uint64(c.SlotsPerEpoch))
}

// AccumulatorRoot returns the trusted pre-merge accumulator root as a fixed array.
func (c *EraConfig) AccumulatorRoot() [fieldparams.RootLength]byte {
	return bytesutil.ToBytes32(c.PreMergeAccumulatorRoot)
}
