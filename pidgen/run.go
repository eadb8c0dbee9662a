package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/rand"

	"github.com/decibelcooper/pidperf"
	"github.com/decibelcooper/pidperf/calib"
	"github.com/decibelcooper/pidperf/kde"
	"github.com/decibelcooper/pidperf/ntuple"
	"github.com/decibelcooper/pidperf/resample"
)

func listConfigs(w io.Writer, cat *calib.Catalogue) error {
	fmt.Fprintln(w, "Available PID configs are:")
	for _, run := range []int{1, 2} {
		rc, err := cat.Run(run)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  For Run%d:\n", run)
		for _, name := range rc.List() {
			fmt.Fprintf(w, "    %s\n", name)
		}
	}
	return nil
}

func run(c *cli.Context) error {
	log := pidperf.NewLogger(c.String(pidperf.LogLevelFlag.Name), "pidgen")
	if c.Bool(pidperf.ProfileFlag.Name) {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	cat, err := calib.Default()
	if err != nil {
		return err
	}

	input := c.String(pidperf.InputFlag.Name)
	if input == "" {
		return listConfigs(c.App.Writer, cat)
	}

	config := c.String(pidperf.ConfigFlag.Name)
	ds, err := calib.ParseDataset(c.String(pidperf.DatasetFlag.Name))
	if err != nil {
		return err
	}
	cfg, err := cat.Config(ds, config)
	if err != nil {
		return err
	}
	pdf, err := cat.DataPDF(config, ds, c.String(pidperf.VariantFlag.Name))
	if err != nil {
		return err
	}
	rng := cfg.Range(pidperf.LowerPID(c))
	if err := rng.Validate(); err != nil {
		return err
	}
	log.Infof("config %s, dataset %s (Run%d), density %s", config, ds.Name, ds.Run, pdf)

	density, err := kde.Load("KDEPDF", kde.PIDPhaseSpace(rng.Min, rng.Max), pdf)
	if err != nil {
		return err
	}

	in, err := ntuple.Open(input, c.String(pidperf.TreeFlag.Name))
	if err != nil {
		return err
	}
	defer in.Close()

	vars := pidperf.KinematicVars{
		Pt:      c.String(pidperf.PtVarFlag.Name),
		P:       c.String(pidperf.PVarFlag.Name),
		Eta:     c.String(pidperf.EtaVarFlag.Name),
		NTracks: c.String(pidperf.NTrVarFlag.Name),
	}
	noclone := c.Bool(pidperf.NoCloneFlag.Name)
	if noclone {
		if err := in.Keep(vars.Branches()...); err != nil {
			return err
		}
	}
	kin, err := pidperf.NewKinematicsReader(in, vars)
	if err != nil {
		return err
	}

	var pid, calibStat float64
	pidVar := c.String(pidperf.PIDVarFlag.Name)
	cols := []ntuple.Column{{Name: pidVar, Value: &pid}}
	if c.Bool(pidperf.CalibStatFlag.Name) {
		cols = append(cols, ntuple.Column{Name: pidVar + "_calibstat", Value: &calibStat})
	}
	clone := in
	if noclone {
		clone = nil
	}
	out, err := ntuple.Create(c.String(pidperf.OutputFlag.Name), pidperf.OutTree(c), clone, cols)
	if err != nil {
		return err
	}

	seed := uint64(time.Now().UnixNano())
	if c.IsSet(seedFlag.Name) {
		seed = c.Uint64(seedFlag.Name)
	}
	gen := resample.NewGenerator(density, cfg.Transform(), rng, c.Float64(pidperf.NTrScaleFlag.Name), rand.NewSource(seed))

	nentries := in.Entries()
	err = in.Loop(func(entry int64) error {
		k := kin.Kinematics()
		pid, calibStat = gen.Next(k)
		if err := out.Fill(); err != nil {
			return err
		}
		if entry%pidperf.ProgressEvery == 0 {
			p := gen.Points.Point(k)
			log.Infof("event %d/%d: logPt=%f, eta=%f, logNtr=%f, PIDGen=%f, calibstat=%f",
				entry, nentries, p[1], p[2], p[3], pid, calibStat)
		}
		return nil
	})
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	pidperf.LogSummary(log, gen.Stats, false)
	return nil
}
