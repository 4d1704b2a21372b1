package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/prysmaticlabs/eraauth/accumulator"
	"github.com/prysmaticlabs/eraauth/cmd/eraauth/reference"
	"github.com/prysmaticlabs/eraauth/cmd/flags"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var buildAccumulatorCmd = &cli.Command{
	Name:  "build-accumulator",
	Usage: "builds the master accumulator from contiguous header records starting at block 0",
	Flags: []cli.Flag{
		flags.HeadersFlag,
		flags.OutputFlag,
	},
	Action: buildAccumulator,
}

var inspectAccumulatorCmd = &cli.Command{
	Name:  "inspect-accumulator",
	Usage: "prints the size and root of a master accumulator file",
	Flags: []cli.Flag{
		flags.AccumulatorFlag,
	},
	Action: inspectAccumulator,
}

func buildAccumulator(cliCtx *cli.Context) error {
	records, err := reference.ReadHeaderRecords(cliCtx.String(flags.HeadersFlag.Name))
	if err != nil {
		return err
	}
	epochs, err := accumulator.EpochsFromHeaders(records)
	if err != nil {
		return err
	}
	acc, err := accumulator.BuildMasterAccumulator(epochs)
	if err != nil {
		return err
	}
	root, err := acc.HashTreeRoot()
	if err != nil {
		return err
	}
	out := cliCtx.String(flags.OutputFlag.Name)
	if err := accumulator.WriteMasterAccumulator(out, acc); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"epochs": acc.Len(),
		"root":   fmt.Sprintf("%#x", root),
		"path":   out,
	}).Info("Built master accumulator")
	printf(cliCtx, "%#x\n", root)
	return nil
}

func inspectAccumulator(cliCtx *cli.Context) error {
	path := cliCtx.String(flags.AccumulatorFlag.Name)
	acc, err := accumulator.LoadMasterAccumulator(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	root, err := acc.HashTreeRoot()
	if err != nil {
		return err
	}
	cfg := params.ActiveEraConfig()
	printf(cliCtx, "file: %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	printf(cliCtx, "epochs: %s\n", humanize.Comma(int64(acc.Len())))
	printf(cliCtx, "current epoch records: %d\n", len(acc.CurrentEpoch()))
	printf(cliCtx, "root: %#x\n", root)
	printf(cliCtx, "trusted (%s): %t\n", cfg.ConfigName, root == cfg.AccumulatorRoot())
	return nil
}
