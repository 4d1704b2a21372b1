package era

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
)

// Context carries the inputs and trusted reference data of one validation.
type Context interface {
	Kind() Kind
}

// ProvenBlock is a beacon block together with the branch of its root under the
// trusted root of its era, ordered leaf to root.
type ProvenBlock struct {
	Block  *beacon.BeaconBlock
	Branch [][32]byte
}

// SolanaBlock is a Solana block hash, optionally with its branch under the
// root of its epoch.
type SolanaBlock struct {
	Slot      uint64
	BlockHash common.Hash
	Branch    [][32]byte
}

// PreMergeContext validates one complete pre-merge epoch against the master accumulator.
type PreMergeContext struct {
	Accumulator *accumulator.MasterAccumulator
	Epoch       *accumulator.Epoch
	Config      *params.EraConfig
}

// Kind implements Context.
func (*PreMergeContext) Kind() Kind { return PreMerge }

// PostMergeContext validates blocks of one era against historical_roots. With
// StateRootsRoot set the blocks must form the complete era, one entry per slot
// with nil for empty slots, and their branches are ignored.
type PostMergeContext struct {
	HistoricalRoots beacon.HistoricalRoots
	Blocks          []*ProvenBlock
	StateRootsRoot  *common.Hash
	Config          *params.EraConfig
}

// Kind implements Context.
func (*PostMergeContext) Kind() Kind { return PostMerge }

// PostCapellaContext validates blocks of one era against historical_summaries.
// With FullEra set the blocks must form the complete era, one entry per slot
// with nil for empty slots, and their branches are ignored.
type PostCapellaContext struct {
	HistoricalSummaries beacon.HistoricalSummaries
	Blocks              []*ProvenBlock
	FullEra             bool
	Config              *params.EraConfig
}

// Kind implements Context.
func (*PostCapellaContext) Kind() Kind { return PostCapella }

// SolanaContext validates block hashes of one Solana epoch against Roots,
// indexed by epoch. Depth defaults to the configured tree depth. With FullEpoch
// set the blocks must cover every slot of the epoch and their branches are ignored.
type SolanaContext struct {
	Roots     [][32]byte
	Blocks    []*SolanaBlock
	Depth     uint64
	FullEpoch bool
	Config    *params.EraConfig
}

// Kind implements Context.
func (*SolanaContext) Kind() Kind { return Solana }

// resolveConfig returns the active config for a nil cfg. A caller supplied
// config must pass Validate, since the strategies divide by its sizes.
func resolveConfig(cfg *params.EraConfig) (*params.EraConfig, error) {
	if cfg == nil {
		return params.ActiveEraConfig(), nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(ErrIncompleteContext, "invalid era config: %v", err)
	}
	return cfg, nil
}
