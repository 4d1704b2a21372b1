// Package flags defines the command line flags shared by the eraauth commands.
package flags

import (
	"github.com/prysmaticlabs/eraauth/io/logs"
	"github.com/urfave/cli/v2"
)

// LogFormat receives the value of LogFormatFlag.
var LogFormat string

var (
	// VerbosityFlag defines the logrus configuration.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic)",
		Value: "info",
	}
	// LogFormatFlag specifies the log output format.
	LogFormatFlag = EnumValue{
		Name:        "log-format",
		Usage:       "Specify log formatting",
		Destination: &LogFormat,
		Enum:        logs.Formats,
		Value:       "text",
	}.GenericFlag()
	// LogFileNameFlag specifies the log output file name.
	LogFileNameFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// ConfigFileFlag points to a YAML era config applied on top of mainnet values.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a YAML era configuration overriding the mainnet boundaries and roots",
	}
	// MetricsFileFlag names the file the run's metrics are written to on exit.
	MetricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write prometheus metrics to this file when the command finishes, for the node exporter textfile collector",
	}

	// AccumulatorFlag points to a master accumulator file.
	AccumulatorFlag = &cli.StringFlag{
		Name:  "accumulator",
		Usage: "Path to the pre-merge master accumulator (.ssz or .ssz_snappy)",
	}
	// HeadersFlag points to a JSON array of header records.
	HeadersFlag = &cli.StringFlag{
		Name:  "headers",
		Usage: "Path to a JSON array of header records",
	}
	// ProofsFlag points to an inclusion proof file.
	ProofsFlag = &cli.StringFlag{
		Name:  "proofs",
		Usage: "Path to inclusion proofs (.json, .ssz or .ssz_snappy)",
	}
	// HistoricalRootsFlag points to the beacon state historical_roots.
	HistoricalRootsFlag = &cli.StringFlag{
		Name:  "historical-roots",
		Usage: "Path to the beacon state historical_roots (.json or .ssz)",
	}
	// HistoricalSummariesFlag points to the beacon state historical_summaries.
	HistoricalSummariesFlag = &cli.StringFlag{
		Name:  "historical-summaries",
		Usage: "Path to the beacon state historical_summaries (.json or .ssz)",
	}
	// SolanaRootsFlag points to a JSON array of Solana epoch roots.
	SolanaRootsFlag = &cli.StringFlag{
		Name:  "solana-roots",
		Usage: "Path to a JSON array of Solana epoch roots, indexed by epoch",
	}
	// OutputFlag names the file a command writes.
	OutputFlag = &cli.StringFlag{
		Name:     "out",
		Usage:    "Output path, the extension selects the encoding",
		Required: true,
	}
)

// GlobalFlags are accepted by every command.
var GlobalFlags = []cli.Flag{
	VerbosityFlag,
	LogFormatFlag,
	LogFileNameFlag,
	ConfigFileFlag,
	MetricsFileFlag,
}
