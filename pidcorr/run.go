package main

import (
	"fmt"
	"io"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf"
	"github.com/decibelcooper/pidperf/calib"
	"github.com/decibelcooper/pidperf/kde"
	"github.com/decibelcooper/pidperf/ntuple"
	"github.com/decibelcooper/pidperf/resample"
)

var simVersions = []string{"sim08", "sim09", "run2"}

func listConfigs(w io.Writer, cat *calib.Catalogue) error {
	for _, version := range simVersions {
		names, err := cat.SimConfigs(version)
		if err != nil {
			return err
		}
		sc, err := cat.Simulation(version)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Available PID configs for Run%d/%s are:\n", sc.Run, version)
		for _, name := range names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	return nil
}

func run(c *cli.Context) error {
	log := pidperf.NewLogger(c.String(pidperf.LogLevelFlag.Name), "pidcorr")
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
	version := c.String(simVersionFlag.Name)
	variant := c.String(pidperf.VariantFlag.Name)
	ds, err := calib.ParseDataset(c.String(pidperf.DatasetFlag.Name))
	if err != nil {
		return err
	}
	dataPDF, simPDF, err := cat.CorrPDFs(version, config, ds, variant)
	if err != nil {
		return err
	}
	cfg, err := cat.Config(ds, config)
	if err != nil {
		return err
	}
	rng := cfg.Range(pidperf.LowerPID(c))
	if err := rng.Validate(); err != nil {
		return err
	}
	log.Infof("config %s, dataset %s, simulation %s", config, ds.Name, version)
	log.Infof("data density %s", dataPDF)
	log.Infof("simulation density %s", simPDF)

	phsp := kde.PIDPhaseSpace(rng.Min, rng.Max)
	data, err := kde.Load("KDEPDF", phsp, dataPDF)
	if err != nil {
		return err
	}
	sim, err := kde.Load("KDEPDF", phsp, simPDF)
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
	simPIDVar := c.String(simPIDVarFlag.Name)
	noclone := c.Bool(pidperf.NoCloneFlag.Name)
	if noclone {
		if err := in.Keep(append(vars.Branches(), simPIDVar)...); err != nil {
			return err
		}
	}
	kin, err := pidperf.NewKinematicsReader(in, vars)
	if err != nil {
		return err
	}
	simPID, err := in.Float(simPIDVar)
	if err != nil {
		return err
	}

	var pid, calibStat, mcStat float64
	pidVar := c.String(pidperf.PIDVarFlag.Name)
	cols := []ntuple.Column{{Name: pidVar, Value: &pid}}
	if c.Bool(pidperf.CalibStatFlag.Name) {
		cols = append(cols,
			ntuple.Column{Name: pidVar + "_calibstat", Value: &calibStat},
			ntuple.Column{Name: pidVar + "_mcstat", Value: &mcStat})
	}
	clone := in
	if noclone {
		clone = nil
	}
	out, err := ntuple.Create(c.String(pidperf.OutputFlag.Name), pidperf.OutTree(c), clone, cols)
	if err != nil {
		return err
	}

	corr := resample.NewCorrector(data, sim, cfg.Transform(), rng, c.Float64(pidperf.NTrScaleFlag.Name))

	nentries := in.Entries()
	err = in.Loop(func(entry int64) error {
		k := kin.Kinematics()
		old := simPID()
		pid, calibStat, mcStat = corr.Next(k, old)
		if err := out.Fill(); err != nil {
			return err
		}
		if entry%pidperf.ProgressEvery == 0 {
			p := corr.Points.Point(k)
			log.Infof("event %d/%d: logPt=%f, eta=%f, logNtr=%f, oldPID=%f, PIDCorr=%f, calibstat=%f, mcstat=%f",
				entry, nentries, p[1], p[2], p[3], old, pid, calibStat, mcStat)
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

	pidperf.LogSummary(log, corr.Stats, true)
	return nil
}
