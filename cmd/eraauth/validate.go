package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/cmd/eraauth/reference"
	"github.com/prysmaticlabs/eraauth/cmd/flags"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/era"
	"github.com/urfave/cli/v2"
)

var (
	blocksFlag = &cli.StringFlag{
		Name:     "blocks",
		Usage:    "Path to a JSON array of the beacon blocks of one era, null for empty slots",
		Required: true,
	}
	stateRootsRootFlag = &cli.StringFlag{
		Name:  "state-roots-root",
		Usage: "Hash tree root of the era's state_roots vector, required before capella",
	}
)

var validateEpochCmd = &cli.Command{
	Name:  "validate-epoch",
	Usage: "checks one complete pre-merge epoch of header records against the master accumulator",
	Flags: []cli.Flag{
		flags.AccumulatorFlag,
		flags.HeadersFlag,
	},
	Action: validateEpoch,
}

var validateEraCmd = &cli.Command{
	Name:  "validate-era",
	Usage: "checks the complete block list of one beacon era against historical roots or summaries",
	Flags: []cli.Flag{
		blocksFlag,
		stateRootsRootFlag,
		flags.HistoricalRootsFlag,
		flags.HistoricalSummariesFlag,
	},
	Action: validateEra,
}

func validateEpoch(cliCtx *cli.Context) error {
	acc, err := reference.Accumulator(cliCtx)
	if err != nil {
		return err
	}
	records, err := reference.ReadHeaderRecords(cliCtx.String(flags.HeadersFlag.Name))
	if err != nil {
		return err
	}
	epoch, err := accumulator.EpochFromHeaders(records)
	if err != nil {
		return err
	}
	cfg := params.ActiveEraConfig()
	ctx := &era.PreMergeContext{Accumulator: acc, Epoch: epoch, Config: cfg}
	root, err := era.ValidateEra(cfg, records[0].BlockNumber, ctx)
	if err != nil {
		return err
	}
	printf(cliCtx, "epoch %s: %#x\n", epoch.Index(), root)
	return nil
}

func validateEra(cliCtx *cli.Context) error {
	blocks, err := reference.ReadBeaconBlocks(cliCtx.String(blocksFlag.Name))
	if err != nil {
		return err
	}
	first := firstBlock(blocks)
	if first == nil {
		return errors.Wrap(era.ErrIncompleteContext, "no blocks")
	}
	hist, err := reference.HistoricalData(cliCtx)
	if err != nil {
		return err
	}
	cfg := params.ActiveEraConfig()
	proven := make([]*era.ProvenBlock, len(blocks))
	for i, b := range blocks {
		if b != nil {
			proven[i] = &era.ProvenBlock{Block: b}
		}
	}

	var ctx era.Context
	switch kind := era.SelectBySlot(cfg, first.Slot); kind {
	case era.PostMerge:
		hex := cliCtx.String(stateRootsRootFlag.Name)
		if hex == "" {
			return errors.Errorf("--%s is required for %s eras", stateRootsRootFlag.Name, kind)
		}
		stateRoots := common.HexToHash(hex)
		ctx = &era.PostMergeContext{HistoricalRoots: hist.HistoricalRoots, Blocks: proven, StateRootsRoot: &stateRoots, Config: cfg}
	case era.PostCapella:
		ctx = &era.PostCapellaContext{HistoricalSummaries: hist.HistoricalSummaries, Blocks: proven, FullEra: true, Config: cfg}
	default:
		return errors.Wrapf(era.ErrWrongEra, "slot %d is %s", first.Slot, kind)
	}
	root, err := era.ValidateEra(cfg, executionHeight(cfg, blocks), ctx)
	if err != nil {
		return err
	}
	printf(cliCtx, "era %d: %#x\n", first.Slot.Era(), root)
	return nil
}

func firstBlock(blocks []*beacon.BeaconBlock) *beacon.BeaconBlock {
	for _, b := range blocks {
		if b != nil {
			return b
		}
	}
	return nil
}

// executionHeight returns the execution number of the era's first payload, or
// the merge block when no block carries one.
func executionHeight(cfg *params.EraConfig, blocks []*beacon.BeaconBlock) primitives.BlockNumber {
	for _, b := range blocks {
		if b != nil && b.ExecutionBlockHash != nil {
			return b.ExecutionBlockNumber
		}
	}
	return cfg.MergeBlockNumber
}
