package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf"
)

var (
	simPIDVarFlag = cli.StringFlag{
		Name:    "simpidvar",
		Aliases: []string{"s"},
		Usage:   "original, simulated PID variable to correct, e.g. <head>_PIDK or <head>_ProbNNk",
		Value:   "PID",
	}
	simVersionFlag = cli.StringFlag{
		Name:    "simversion",
		Aliases: []string{"S"},
		Usage:   "simulation version (\"sim08\" or \"sim09\" for Run1, \"run2\" for Run2)",
		Value:   "sim08",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "pidcorr",
		Usage:     "correct simulated PID responses towards calibration data",
		UsageText: "pidcorr [options]\n\nRun without --input to list the available PID configs.",
		Flags: []cli.Flag{
			&pidperf.InputFlag,
			&pidperf.TreeFlag,
			&pidperf.OutputFlag,
			&pidperf.PIDVarFlag,
			&pidperf.PtVarFlag,
			&pidperf.PVarFlag,
			&pidperf.EtaVarFlag,
			&pidperf.NTrVarFlag,
			&pidperf.LowerPIDFlag,
			&pidperf.ConfigFlag,
			&pidperf.DatasetFlag,
			&pidperf.VariantFlag,
			&simPIDVarFlag,
			&simVersionFlag,
			&pidperf.NTrScaleFlag,
			&pidperf.CalibStatFlag,
			&pidperf.NoCloneFlag,
			&pidperf.OutTreeFlag,
			&pidperf.ProfileFlag,
			&pidperf.LogLevelFlag,
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
