package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/pidperf/calib"
	"github.com/decibelcooper/pidperf/kde"
	"github.com/decibelcooper/pidperf/ntuple"
)

const nevents = 10

// writeDensity stores a density peaked at PID bin peak of ten for every
// kinematic bin.
func writeDensity(t *testing.T, path string, peak int) {
	d, err := kde.NewBinnedDensity("KDEPDF", kde.PIDPhaseSpace(0, 1), []int{10, 4, 4, 4})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				d.Set(100, peak, i, j, k)
			}
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, d.Save(path))
}

// The simulated response 1-0.75^5 sits at the median of the simulation
// density once transformed; odd events carry a missing response.
var simResponse = 1 - math.Pow(0.75, 5)

func writeEvents(t *testing.T, path string) {
	f, err := groot.Create(path)
	require.NoError(t, err)
	var (
		pt, eta, pid float64
		ntr          int32
	)
	w, err := rtree.NewWriter(f, "DecayTree", []rtree.WriteVar{
		{Name: "pi_PT", Value: &pt},
		{Name: "pi_ETA", Value: &eta},
		{Name: "nTracks", Value: &ntr},
		{Name: "pi_ProbNNp", Value: &pid},
	})
	require.NoError(t, err)
	for i := 0; i < nevents; i++ {
		pt, eta, ntr = math.Exp(7), 3, 150
		pid = simResponse
		if i%2 == 1 {
			pid = -1
		}
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestListConfigs(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run([]string{"pidcorr", "--log", "error"}))
	out := buf.String()
	assert.Contains(t, out, "Available PID configs for Run1/sim08 are:")
	assert.Contains(t, out, "Available PID configs for Run2/run2 are:")
	assert.Contains(t, out, "  p_V3ProbNNp\n")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(calib.EnvRootDir, filepath.Join(dir, "data"))
	t.Setenv(calib.EnvSimRootDir, filepath.Join(dir, "mc"))
	writeDensity(t, filepath.Join(dir, "data", "Run1", "p_V3ProbNNp", "MagDown_2011_distrib.root"), 7)
	writeDensity(t, filepath.Join(dir, "mc", "Sim08", "p_V3ProbNNp", "MagDown_2011_distrib.root"), 2)
	inPath := filepath.Join(dir, "in.root")
	writeEvents(t, inPath)
	outPath := filepath.Join(dir, "out.root")

	err := newApp().Run([]string{"pidcorr", "-i", inPath, "-t", "DecayTree", "-o", outPath,
		"-m", "pi_PT", "-e", "pi_ETA", "-s", "pi_ProbNNp", "-p", "pi_ProbNNp_corr",
		"-S", "sim08", "--calibstat", "--log", "error"})
	require.NoError(t, err)

	res, err := ntuple.Open(outPath, "DecayTree")
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, []string{"pi_PT", "pi_ETA", "nTracks", "pi_ProbNNp",
		"pi_ProbNNp_corr", "pi_ProbNNp_corr_calibstat", "pi_ProbNNp_corr_mcstat"}, res.Branches())

	corr, err := res.Float("pi_ProbNNp_corr")
	require.NoError(t, err)
	mc, err := res.Float("pi_ProbNNp_corr_mcstat")
	require.NoError(t, err)
	require.NoError(t, res.Loop(func(entry int64) error {
		if entry%2 == 1 {
			assert.Equal(t, -1.0, corr())
		} else {
			assert.InDelta(t, 1-math.Pow(0.25, 5), corr(), 1e-6)
		}
		assert.InDelta(t, 1000, mc(), 1e-6)
		return nil
	}))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.root")
	writeEvents(t, inPath)

	err := newApp().Run([]string{"pidcorr", "-i", inPath, "-S", "sim07", "--log", "error"})
	assert.True(t, errors.Is(err, calib.ErrUnknownSim))

	err = newApp().Run([]string{"pidcorr", "-i", inPath, "-S", "sim08", "-c", "mu_CombDLLmu", "--log", "error"})
	assert.True(t, errors.Is(err, calib.ErrUnknownConfig))
}
