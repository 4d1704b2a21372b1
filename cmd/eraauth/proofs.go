package main

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/cmd/eraauth/reference"
	"github.com/prysmaticlabs/eraauth/cmd/flags"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/proof"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var epochHeadersFlag = &cli.StringFlag{
	Name:  "epoch-headers",
	Usage: "Path to a JSON array of the header records of every pre-merge epoch the targets fall in",
}

var proveCmd = &cli.Command{
	Name: "prove",
	Usage: "generates inclusion proofs, for the --headers targets from their pre-merge epochs, " +
		"or for every payload of a beacon era given with --blocks",
	Flags: []cli.Flag{
		flags.HeadersFlag,
		epochHeadersFlag,
		&cli.StringFlag{Name: blocksFlag.Name, Usage: blocksFlag.Usage},
		stateRootsRootFlag,
		flags.OutputFlag,
	},
	Action: prove,
}

var verifyCmd = &cli.Command{
	Name:  "verify",
	Usage: "verifies inclusion proofs of header records against the trusted roots of their eras",
	Flags: []cli.Flag{
		flags.HeadersFlag,
		flags.ProofsFlag,
		flags.AccumulatorFlag,
		flags.HistoricalRootsFlag,
		flags.HistoricalSummariesFlag,
		flags.SolanaRootsFlag,
	},
	Action: verify,
}

func prove(cliCtx *cli.Context) error {
	var proofs []*proof.InclusionProof
	var err error
	switch {
	case cliCtx.String(blocksFlag.Name) != "":
		proofs, err = proveBeacon(cliCtx)
	case cliCtx.String(epochHeadersFlag.Name) != "":
		proofs, err = provePreMerge(cliCtx)
	default:
		return errors.Errorf("one of --%s or --%s is required", epochHeadersFlag.Name, blocksFlag.Name)
	}
	if err != nil {
		return err
	}
	out := cliCtx.String(flags.OutputFlag.Name)
	if err := proof.WriteProofs(out, proofs); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"proofs": len(proofs),
		"path":   out,
	}).Info("Generated inclusion proofs")
	printf(cliCtx, "%d proofs written to %s\n", len(proofs), out)
	return nil
}

func provePreMerge(cliCtx *cli.Context) ([]*proof.InclusionProof, error) {
	records, err := reference.ReadHeaderRecords(cliCtx.String(epochHeadersFlag.Name))
	if err != nil {
		return nil, err
	}
	epochs, err := accumulator.EpochsFromHeaders(records)
	if err != nil {
		return nil, err
	}
	targets, err := reference.ReadHeaderRecords(cliCtx.String(flags.HeadersFlag.Name))
	if err != nil {
		return nil, err
	}
	return proof.GenerateInclusionProofs(epochs, targets)
}

func proveBeacon(cliCtx *cli.Context) ([]*proof.InclusionProof, error) {
	blocks, err := reference.ReadBeaconBlocks(cliCtx.String(blocksFlag.Name))
	if err != nil {
		return nil, err
	}
	var stateRoots *common.Hash
	if hex := cliCtx.String(stateRootsRootFlag.Name); hex != "" {
		h := common.HexToHash(hex)
		stateRoots = &h
	}
	return proof.GenerateBeaconProofs(params.ActiveEraConfig(), blocks, stateRoots)
}

func verify(cliCtx *cli.Context) error {
	headers, err := reference.ReadHeaderRecords(cliCtx.String(flags.HeadersFlag.Name))
	if err != nil {
		return err
	}
	proofs, err := proof.ReadProofs(cliCtx.String(flags.ProofsFlag.Name))
	if err != nil {
		return err
	}
	if len(headers) != len(proofs) {
		return errors.Wrapf(proof.ErrMalformedProof, "%d headers, %d proofs", len(headers), len(proofs))
	}
	var acc *accumulator.MasterAccumulator
	if cliCtx.String(flags.AccumulatorFlag.Name) != "" {
		if acc, err = reference.Accumulator(cliCtx); err != nil {
			return err
		}
	}
	hist, err := reference.HistoricalData(cliCtx)
	if err != nil {
		return err
	}
	batch := make([]proof.HeaderWithProof, len(headers))
	for i := range headers {
		batch[i] = proof.HeaderWithProof{Header: headers[i], Proof: proofs[i]}
	}
	if err := proof.VerifyInclusionProofs(acc, batch, hist); err != nil {
		var batchErr *proof.BatchError
		if errors.As(err, &batchErr) {
			for _, f := range batchErr.Failures {
				printf(cliCtx, "proof %d (block %d): %v\n", f.Index, headers[f.Index].BlockNumber, f.Err)
			}
		}
		return err
	}
	printf(cliCtx, "%d proofs verified\n", len(batch))
	return nil
}
