// Package main is eraauth, a command line tool that builds the pre-merge master
// accumulator, validates eras against trusted roots, and generates and verifies
// header inclusion proofs.
package main

import (
	"fmt"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prysmaticlabs/eraauth/cmd/flags"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/io/logs"
	"github.com/prysmaticlabs/eraauth/monitoring/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
)

var log = logrus.WithField("prefix", "main")

func newApp() *cli.App {
	app := &cli.App{
		Name:  "eraauth",
		Usage: "authenticates historical block headers against the trusted roots of their era",
		Flags: flags.GlobalFlags,
		Commands: []*cli.Command{
			buildAccumulatorCmd,
			inspectAccumulatorCmd,
			validateEpochCmd,
			validateEraCmd,
			proveCmd,
			verifyCmd,
		},
		Before: before,
		After:  after,
	}
	return app
}

func before(cliCtx *cli.Context) error {
	if err := logs.SetVerbosity(cliCtx.String(flags.VerbosityFlag.Name)); err != nil {
		return err
	}
	logFileName := cliCtx.String(flags.LogFileNameFlag.Name)
	if err := logs.SetFormat(flags.LogFormat, logFileName != ""); err != nil {
		return err
	}
	if logFileName != "" {
		if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
			log.WithError(err).Error("Failed to configuring logging to disk.")
		}
	}
	if path := cliCtx.String(flags.ConfigFileFlag.Name); path != "" {
		if err := params.LoadEraConfigFile(path); err != nil {
			return err
		}
		log.WithField("config", params.ActiveEraConfig().ConfigName).Info("Loaded era config")
	}
	return nil
}

func after(cliCtx *cli.Context) error {
	if path := cliCtx.String(flags.MetricsFileFlag.Name); path != "" {
		return prometheus.WriteMetrics(path, prom.DefaultGatherer)
	}
	return nil
}

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.WithError(err).Warn("Could not set GOMAXPROCS from the container quota")
	}
	logrus.AddHook(prometheus.NewLogrusCollector(prom.DefaultRegisterer))
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// printf writes command output, kept apart from the log stream.
func printf(cliCtx *cli.Context, format string, args ...interface{}) {
	if _, err := fmt.Fprintf(cliCtx.App.Writer, format, args...); err != nil {
		log.WithError(err).Error("Could not write output")
	}
}
