package pidperf

import (
	"github.com/urfave/cli/v2"
)

// Flags shared by the resampling tools.
var (
	InputFlag = cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "input file name; without it the available configs are listed",
	}
	TreeFlag = cli.StringFlag{
		Name:    "tree",
		Aliases: []string{"t"},
		Usage:   "input tree name",
		Value:   "tree",
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file name",
		Value:   "output.root",
	}
	PIDVarFlag = cli.StringFlag{
		Name:    "pidvar",
		Aliases: []string{"p"},
		Usage:   "output name for the generated/corrected PID variable",
		Value:   "PID_gen",
	}
	PtVarFlag = cli.StringFlag{
		Name:    "ptvar",
		Aliases: []string{"m"},
		Usage:   "Pt variable",
		Value:   "Pt",
	}
	PVarFlag = cli.StringFlag{
		Name:    "pvar",
		Aliases: []string{"q"},
		Usage:   "P variable",
		Value:   "P",
	}
	EtaVarFlag = cli.StringFlag{
		Name:    "etavar",
		Aliases: []string{"e"},
		Usage:   "eta variable (if not given, calculated from P and Pt)",
	}
	NTrVarFlag = cli.StringFlag{
		Name:    "ntrvar",
		Aliases: []string{"n"},
		Usage:   "nTracks variable",
		Value:   "nTracks",
	}
	LowerPIDFlag = cli.Float64Flag{
		Name:    "lowerpid",
		Aliases: []string{"l"},
		Usage:   "lower PID value to generate (default: the calibration's lower limit)",
	}
	ConfigFlag = cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "PID response to sample; run without --input to list available configs",
		Value:   "p_V3ProbNNp",
	}
	DatasetFlag = cli.StringFlag{
		Name:    "dataset",
		Aliases: []string{"d"},
		Usage:   "dataset (polarity_year)",
		Value:   "MagDown_2011",
	}
	VariantFlag = cli.StringFlag{
		Name:    "var",
		Aliases: []string{"v"},
		Usage:   "variation (default, syst_N, stat_N etc.)",
		Value:   "default",
	}
	NTrScaleFlag = cli.Float64Flag{
		Name:    "ntrscale",
		Aliases: []string{"f"},
		Usage:   "scale factor for the nTracks variable (default: no scaling)",
	}
	CalibStatFlag = cli.BoolFlag{
		Name:    "calibstat",
		Aliases: []string{"a"},
		Usage:   "add calibration statistics branches",
	}
	NoCloneFlag = cli.BoolFlag{
		Name:  "noclone",
		Usage: "don't clone the original tree in the output",
	}
	OutTreeFlag = cli.StringFlag{
		Name:  "outtree",
		Usage: "name of the output tree (default: the input tree name)",
	}
	ProfileFlag = cli.BoolFlag{
		Name:  "profile",
		Usage: "write a CPU profile of the run",
	}
)

// LowerPID returns the --lowerpid value, or nil when it was not given.
func LowerPID(c *cli.Context) *float64 {
	if !c.IsSet(LowerPIDFlag.Name) {
		return nil
	}
	v := c.Float64(LowerPIDFlag.Name)
	return &v
}

// OutTree returns the output tree name, defaulting to the input one.
func OutTree(c *cli.Context) string {
	if name := c.String(OutTreeFlag.Name); name != "" {
		return name
	}
	return c.String(TreeFlag.Name)
}
