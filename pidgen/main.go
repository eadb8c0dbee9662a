package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf"
)

var seedFlag = cli.Uint64Flag{
	Name:    "seed",
	Aliases: []string{"s"},
	Usage:   "initial random seed (default: time-based)",
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "pidgen",
		Usage:     "generate PID responses from calibration data at each event's kinematics",
		UsageText: "pidgen [options]\n\nRun without --input to list the available PID configs.",
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
			&seedFlag,
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
