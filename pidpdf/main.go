package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf"
)

var (
	inputsFlag = cli.StringSliceFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "calibration ntuple (repeatable)",
		Required: true,
	}
	outputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output density file",
		Value:   "pdf.root",
	}
	pidVarFlag = cli.StringFlag{
		Name:    "pidvar",
		Aliases: []string{"p"},
		Usage:   "PID branch of the calibration ntuple (default: the config's variable)",
	}
	weightVarFlag = cli.StringFlag{
		Name:    "weightvar",
		Aliases: []string{"w"},
		Usage:   "event weight branch, e.g. sWeights (default: unweighted)",
	}
	binsFlag = cli.IntSliceFlag{
		Name:  "bins",
		Usage: "density bins along PID, log pT, eta and log nTracks (default: the config's)",
	}
	scaleFlag = cli.Float64SliceFlag{
		Name:  "scale",
		Usage: "kernel widths along PID, log pT, eta and log nTracks (default: the config's)",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "pidpdf",
		Usage: "estimate the binned PID density of a calibration sample",
		Flags: []cli.Flag{
			&inputsFlag,
			&pidperf.TreeFlag,
			&outputFlag,
			&pidperf.ConfigFlag,
			&pidperf.DatasetFlag,
			&pidVarFlag,
			&pidperf.PtVarFlag,
			&pidperf.PVarFlag,
			&pidperf.EtaVarFlag,
			&pidperf.NTrVarFlag,
			&weightVarFlag,
			&pidperf.NTrScaleFlag,
			&binsFlag,
			&scaleFlag,
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
