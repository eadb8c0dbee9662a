package main

import (
	"github.com/cockroachdb/errors"
	"github.com/op/go-logging"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/decibelcooper/pidperf"
	"github.com/decibelcooper/pidperf/calib"
	"github.com/decibelcooper/pidperf/kde"
	"github.com/decibelcooper/pidperf/ntuple"
	"github.com/decibelcooper/pidperf/resample"
)

// sample is the calibration sample in phase-space coordinates.
type sample struct {
	points  [][]float64
	weights []float64
}

type reader struct {
	tree      string
	pidVar    string
	weightVar string
	vars      pidperf.KinematicVars
	transform resample.Transform
	points    resample.PointMaker
}

func (r *reader) read(log *logging.Logger, path string, s *sample) error {
	in, err := ntuple.Open(path, r.tree)
	if err != nil {
		return err
	}
	defer in.Close()

	branches := append(r.vars.Branches(), r.pidVar)
	if r.weightVar != "" {
		branches = append(branches, r.weightVar)
	}
	if err := in.Keep(branches...); err != nil {
		return err
	}
	kin, err := pidperf.NewKinematicsReader(in, r.vars)
	if err != nil {
		return err
	}
	pid, err := in.Float(r.pidVar)
	if err != nil {
		return err
	}
	weight := func() float64 { return 1 }
	if r.weightVar != "" {
		if weight, err = in.Float(r.weightVar); err != nil {
			return err
		}
	}

	n := len(s.points)
	err = in.Loop(func(int64) error {
		m := r.points
		m.PID = r.transform.Forward(pid())
		s.points = append(s.points, m.Point(kin.Kinematics()))
		s.weights = append(s.weights, weight())
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("%s: %d calibration tracks", path, len(s.points)-n)
	return nil
}

func run(c *cli.Context) error {
	log := pidperf.NewLogger(c.String(pidperf.LogLevelFlag.Name), "pidpdf")
	if c.Bool(pidperf.ProfileFlag.Name) {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	cat, err := calib.Default()
	if err != nil {
		return err
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

	bins := cfg.Bins
	if b := c.IntSlice(binsFlag.Name); len(b) > 0 {
		bins = b
	}
	widths := cfg.Scale
	if scale := c.Float64Slice(scaleFlag.Name); len(scale) > 0 {
		widths = scale
	}
	if len(bins) != 4 || len(widths) != 4 {
		return errors.Newf("need 4 bin counts and 4 kernel widths, got %d and %d", len(bins), len(widths))
	}

	pidVar := c.String(pidVarFlag.Name)
	if pidVar == "" {
		pidVar = cfg.Variable
	}
	r := &reader{
		tree:      c.String(pidperf.TreeFlag.Name),
		pidVar:    pidVar,
		weightVar: c.String(weightVarFlag.Name),
		vars: pidperf.KinematicVars{
			Pt:      c.String(pidperf.PtVarFlag.Name),
			P:       c.String(pidperf.PVarFlag.Name),
			Eta:     c.String(pidperf.EtaVarFlag.Name),
			NTracks: c.String(pidperf.NTrVarFlag.Name),
		},
		transform: cfg.Transform(),
		points:    resample.PointMaker{NTracksScale: c.Float64(pidperf.NTrScaleFlag.Name)},
	}

	var s sample
	for _, path := range c.StringSlice(inputsFlag.Name) {
		if err := r.read(log, path, &s); err != nil {
			return err
		}
	}

	rng := cfg.Range(nil)
	phsp := kde.PIDPhaseSpace(rng.Min, rng.Max)
	d, err := kde.Estimate("KDEPDF", phsp, bins, s.points, s.weights, widths)
	if err != nil {
		return err
	}
	var total float64
	for i, p := range s.points {
		if kde.Within(phsp, p) {
			total += s.weights[i]
		}
	}
	// Express the density in calibration tracks per PID slice, which is
	// what the low statistics counters of the resampling tools compare to.
	d.Scale(total * float64(bins[0]) / (resample.NBins * d.Sum()))

	output := c.String(outputFlag.Name)
	if err := d.Save(output); err != nil {
		return err
	}
	log.Noticef("density of %s (%s) from %d tracks written to %s", config, ds.Name, len(s.points), output)
	return nil
}
