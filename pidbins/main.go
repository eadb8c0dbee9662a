package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf/binning"
)

var (
	partFlag = cli.StringFlag{
		Name:  "part",
		Usage: "particle type",
		Value: "K",
	}
	varFlag = cli.StringFlag{
		Name:  "var",
		Usage: "binning variable",
		Value: "P",
	}
	schemeFlag = cli.StringFlag{
		Name:  "scheme",
		Usage: "binning scheme",
		Value: binning.DefaultScheme,
	}
	listFlag = cli.BoolFlag{
		Name:  "list",
		Usage: "list the schemes of the particle type and variable",
	}
	boundaryFlag = cli.Float64SliceFlag{
		Name:  "boundary",
		Usage: "extra bin boundaries, comma-separated or repeated",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "pidbins",
		Usage: "print the stock binning schemes",
		Flags: []cli.Flag{
			&partFlag,
			&varFlag,
			&schemeFlag,
			&listFlag,
			&boundaryFlag,
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	reg := binning.Default()
	part, varName := c.String(partFlag.Name), c.String(varFlag.Name)

	if c.Bool(listFlag.Name) {
		names, err := reg.Schemes(part, varName)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(c.App.Writer, name)
		}
		return nil
	}

	s, err := reg.Get(part, varName, c.String(schemeFlag.Name))
	if err != nil {
		return err
	}
	for _, b := range c.Float64Slice(boundaryFlag.Name) {
		s.AddBoundary(b)
	}
	printScheme(c.App.Writer, part, s)
	return nil
}

func printScheme(w io.Writer, part string, s *binning.Scheme) {
	fmt.Fprintf(w, "%s %s [%g, %g], %d bins\n", part, s.Var, s.Min, s.Max, s.Bins())
	h := s.H1D()
	for i, b := range h.Binning.Bins {
		fmt.Fprintf(w, "  %3d  %g  %g\n", i, b.XMin(), b.XMax())
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
