// Package flags defines the command line flags of the slotaudit tool.
package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

var (
	// RPCFlag points at the execution node to audit against.
	RPCFlag = &cli.StringFlag{
		Name:    "rpc",
		Usage:   "HTTP or WebSocket endpoint of the execution node",
		EnvVars: []string{"RPC_URL"},
		Value:   "http://localhost:8545",
	}
	// AddressFlag is the contract whose storage is audited.
	AddressFlag = &cli.StringFlag{
		Name:  "address",
		Usage: "Contract address to inspect",
	}
	// FromBlockFlag is the inclusive start of the audited range.
	FromBlockFlag = &cli.Uint64Flag{
		Name:  "from-block",
		Usage: "Start block (inclusive)",
	}
	// ToBlockFlag is the inclusive end of the audited range.
	ToBlockFlag = &cli.Uint64Flag{
		Name:  "to-block",
		Usage: "End block (inclusive)",
	}
	// StepFlag is the stride between sampled blocks.
	StepFlag = &cli.Uint64Flag{
		Name:  "step",
		Usage: "Stride between sampled blocks",
		Value: 500,
	}
	// SlotFlag selects a storage slot to monitor.
	SlotFlag = &cli.StringSliceFlag{
		Name:  "slot",
		Usage: "Storage slot to monitor, 0xSLOT or label:0xSLOT. This flag may be used multiple times.",
	}
	// ManifestFlag points at a JSON slot manifest.
	ManifestFlag = &cli.StringFlag{
		Name:  "manifest",
		Usage: "Path to a JSON manifest of slots, either a list of 0x-hex slots or a label map",
	}
	// TimeoutFlag bounds each storage read.
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Per-call RPC timeout",
		Value: 30 * time.Second,
	}
	// JSONFlag switches on the machine readable report.
	JSONFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Emit a JSON report to stdout after the text report",
	}
	// SerialFlag disables the per-block concurrent slot fan-out.
	SerialFlag = &cli.BoolFlag{
		Name:  "serial",
		Usage: "Query slots one at a time instead of concurrently per block",
	}
	// NoProgressBarFlag swaps the terminal bar for log lines.
	NoProgressBarFlag = &cli.BoolFlag{
		Name:  "no-progress-bar",
		Usage: "Report progress as log lines instead of a terminal bar",
	}
	// VerbosityFlag defines the logrus configuration.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info=default, warn, error, fatal, panic)",
		Value: "info",
	}
	// LogFormatFlag specifies the log output format.
	LogFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json, fluentd.",
		Value: "text",
	}
	// LogFileFlag specifies the log output file name.
	LogFileFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "Specify log file name, relative or absolute",
	}
	// ConfigFileFlag specifies the filepath to load flag values.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a yaml file with flag values",
	}
)

// WrapFlags so that they can be loaded from alternative sources.
func WrapFlags(flags []cli.Flag) []cli.Flag {
	wrapped := make([]cli.Flag, 0, len(flags))
	for _, f := range flags {
		switch t := f.(type) {
		case *cli.BoolFlag:
			f = altsrc.NewBoolFlag(t)
		case *cli.DurationFlag:
			f = altsrc.NewDurationFlag(t)
		case *cli.StringFlag:
			f = altsrc.NewStringFlag(t)
		case *cli.StringSliceFlag:
			f = altsrc.NewStringSliceFlag(t)
		case *cli.Uint64Flag:
			f = altsrc.NewUint64Flag(t)
		default:
			panic(fmt.Sprintf("cannot convert type %T", f))
		}
		wrapped = append(wrapped, f)
	}
	return wrapped
}
