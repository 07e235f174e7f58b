// Package main defines slotaudit, a command line tool that samples
// contract storage slots over a historical block range and reports
// every sampled block at which a slot's raw value changed. It is used
// to check soundness assumptions in bridges and rollups that expect a
// storage slot to stay constant over a window.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chests-genuine/zk-slot-timeline-soundness/audit"
	"github.com/chests-genuine/zk-slot-timeline-soundness/chain"
	"github.com/chests-genuine/zk-slot-timeline-soundness/cmd/slotaudit/flags"
	"github.com/chests-genuine/zk-slot-timeline-soundness/io/logs"
	"github.com/chests-genuine/zk-slot-timeline-soundness/manifest"
	"github.com/chests-genuine/zk-slot-timeline-soundness/progress"
	"github.com/chests-genuine/zk-slot-timeline-soundness/report"
	"github.com/chests-genuine/zk-slot-timeline-soundness/runtime/version"
	joonix "github.com/joonix/log"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "main")

// Exit codes: 0 sound, 1 bad input or connectivity, 2 changes observed.
// The distinct unsound code lets CI pipelines assert soundness directly.
const (
	inputErrorExitCode      = 1
	changesDetectedExitCode = 2
)

var appFlags = []cli.Flag{
	flags.RPCFlag,
	flags.AddressFlag,
	flags.FromBlockFlag,
	flags.ToBlockFlag,
	flags.StepFlag,
	flags.SlotFlag,
	flags.ManifestFlag,
	flags.TimeoutFlag,
	flags.JSONFlag,
	flags.SerialFlag,
	flags.NoProgressBarFlag,
	flags.VerbosityFlag,
	flags.LogFormatFlag,
	flags.LogFileFlag,
	flags.ConfigFileFlag,
}

func init() {
	appFlags = flags.WrapFlags(appFlags)
}

func main() {
	app := cli.App{}
	app.Name = "slotaudit"
	app.Usage = "sample contract storage slots over a block range and report change points"
	app.Version = version.GetVersion()
	app.Flags = appFlags
	app.Action = run
	app.Before = func(ctx *cli.Context) error {
		// Load any flags from file, if specified.
		if ctx.IsSet(flags.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags,
				altsrc.NewYamlSourceFromFlagFunc(
					flags.ConfigFileFlag.Name))(ctx); err != nil {
				return err
			}
		}

		level, err := logrus.ParseLevel(ctx.String(flags.VerbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)

		format := ctx.String(flags.LogFormatFlag.Name)
		switch format {
		case "text":
			formatter := new(prefixed.TextFormatter)
			formatter.TimestampFormat = "2006-01-02 15:04:05"
			formatter.FullTimestamp = true
			// Log files see ANSI color codes as gibberish, so coloring
			// is disabled when one is configured.
			formatter.DisableColors = ctx.String(flags.LogFileFlag.Name) != ""
			logrus.SetFormatter(formatter)
		case "fluentd":
			logrus.SetFormatter(joonix.NewFormatter())
		case "json":
			logrus.SetFormatter(&logrus.JSONFormatter{})
		default:
			return fmt.Errorf("unknown log format %s", format)
		}

		if logFileName := ctx.String(flags.LogFileFlag.Name); logFileName != "" {
			if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
				log.WithError(err).Error("Failed to configure logging to disk.")
			}
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(inputErrorExitCode)
	}
}

func run(cliCtx *cli.Context) error {
	ctx := context.Background()

	if !cliCtx.IsSet(flags.AddressFlag.Name) {
		return cli.Exit("--address is required", inputErrorExitCode)
	}
	if !cliCtx.IsSet(flags.FromBlockFlag.Name) || !cliCtx.IsSet(flags.ToBlockFlag.Name) {
		return cli.Exit("--from-block and --to-block are required", inputErrorExitCode)
	}
	rng := audit.BlockRange{
		Start:  cliCtx.Uint64(flags.FromBlockFlag.Name),
		End:    cliCtx.Uint64(flags.ToBlockFlag.Name),
		Stride: cliCtx.Uint64(flags.StepFlag.Name),
	}
	if err := rng.Validate(); err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}

	address, err := manifest.NormalizeAddress(cliCtx.String(flags.AddressFlag.Name))
	if err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}
	slots, err := manifest.Resolve(cliCtx.StringSlice(flags.SlotFlag.Name), cliCtx.String(flags.ManifestFlag.Name))
	if err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}

	client, err := chain.Dial(ctx, cliCtx.String(flags.RPCFlag.Name), chain.WithTimeout(cliCtx.Duration(flags.TimeoutFlag.Name)))
	if err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}
	defer client.Close()

	report.Banner(client.Endpoint(), address.Hex(), client.ChainID(), rng, slots)

	var sink audit.ProgressSink
	if cliCtx.Bool(flags.NoProgressBarFlag.Name) {
		sink = progress.Logger{}
	} else {
		sink = progress.NewBar(int(rng.Count()), "Sampling storage slots")
	}
	scanner, err := audit.NewScanner(client,
		audit.WithProgress(sink),
		audit.WithConcurrentSlotReads(!cliCtx.Bool(flags.SerialFlag.Name)),
	)
	if err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}

	started := time.Now()
	result, err := scanner.Scan(ctx, address, slots, rng)
	if err != nil {
		return cli.Exit(err.Error(), inputErrorExitCode)
	}

	changeReport := audit.BuildReport(result)
	audited := &report.Run{
		Endpoint: client.Endpoint(),
		ChainID:  client.ChainID(),
		Address:  address.Hex(),
		Range:    rng,
		Slots:    slots,
		Result:   result,
		Report:   changeReport,
		Elapsed:  time.Since(started),
	}
	report.WriteText(os.Stdout, audited)
	if cliCtx.Bool(flags.JSONFlag.Name) {
		if err := report.WriteJSON(os.Stdout, audited); err != nil {
			return cli.Exit(err.Error(), inputErrorExitCode)
		}
	}

	if !changeReport.Sound {
		return cli.Exit("", changesDetectedExitCode)
	}
	return nil
}
