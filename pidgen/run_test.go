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

const nevents = 20

// writeDensity stores a density peaked at transformed PID 0.75 for every
// kinematic bin.
func writeDensity(t *testing.T, path string) {
	d, err := kde.NewBinnedDensity("KDEPDF", kde.PIDPhaseSpace(0, 1), []int{10, 4, 4, 4})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				d.Set(100, 7, i, j, k)
			}
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, d.Save(path))
}

func writeEvents(t *testing.T, path string) {
	f, err := groot.Create(path)
	require.NoError(t, err)
	var (
		pt, p float64
		ntr   int32
	)
	w, err := rtree.NewWriter(f, "tree", []rtree.WriteVar{
		{Name: "Pt", Value: &pt},
		{Name: "P", Value: &p},
		{Name: "nTracks", Value: &ntr},
	})
	require.NoError(t, err)
	for i := 0; i < nevents; i++ {
		pt = math.Exp(7)
		p = pt * math.Cosh(3)
		ntr = 150
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
	require.NoError(t, app.Run([]string{"pidgen", "--log", "error"}))
	assert.Contains(t, buf.String(), "For Run1:")
	assert.Contains(t, buf.String(), "p_V3ProbNNp")
	assert.Contains(t, buf.String(), "K_MC15TuneV1_ProbNNK_Brunel")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(calib.EnvRootDir, dir)
	writeDensity(t, filepath.Join(dir, "Run1", "p_V3ProbNNp", "MagDown_2011_distrib.root"))
	inPath := filepath.Join(dir, "in.root")
	writeEvents(t, inPath)
	outPath := filepath.Join(dir, "out.root")

	err := newApp().Run([]string{"pidgen", "-i", inPath, "-o", outPath, "-c", "p_V3ProbNNp",
		"-d", "MagDown_2011", "--seed", "5", "--calibstat", "--log", "error"})
	require.NoError(t, err)

	res, err := ntuple.Open(outPath, "tree")
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, []string{"Pt", "P", "nTracks", "PID_gen", "PID_gen_calibstat"}, res.Branches())
	assert.Equal(t, int64(nevents), res.Entries())

	pid, err := res.Float("PID_gen")
	require.NoError(t, err)
	stat, err := res.Float("PID_gen_calibstat")
	require.NoError(t, err)
	lo, hi := 1-math.Pow(0.35, 5), 1-math.Pow(0.15, 5)
	require.NoError(t, res.Loop(func(int64) error {
		assert.True(t, pid() >= lo && pid() <= hi, "PID_gen %g outside [%g, %g]", pid(), lo, hi)
		assert.InDelta(t, 1000, stat(), 1e-6)
		return nil
	}))
}

func TestRunNoClone(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(calib.EnvRootDir, dir)
	writeDensity(t, filepath.Join(dir, "Run1", "p_V3ProbNNp", "MagUp_2012_stat_1.root"))
	inPath := filepath.Join(dir, "in.root")
	writeEvents(t, inPath)
	outPath := filepath.Join(dir, "out.root")

	err := newApp().Run([]string{"pidgen", "-i", inPath, "-o", outPath, "-d", "MagUp_2012", "-v", "stat_1",
		"-p", "proton_PIDp_gen", "--noclone", "--outtree", "pid", "--log", "error"})
	require.NoError(t, err)

	res, err := ntuple.Open(outPath, "pid")
	require.NoError(t, err)
	defer res.Close()
	assert.Equal(t, []string{"proton_PIDp_gen"}, res.Branches())
	assert.Equal(t, int64(nevents), res.Entries())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.root")
	writeEvents(t, inPath)

	err := newApp().Run([]string{"pidgen", "-i", inPath, "-c", "nope", "--log", "error"})
	assert.True(t, errors.Is(err, calib.ErrUnknownConfig))

	err = newApp().Run([]string{"pidgen", "-i", inPath, "-d", "MagDown_2014", "--log", "error"})
	assert.True(t, errors.Is(err, calib.ErrUnknownYear))

	t.Setenv(calib.EnvRootDir, dir)
	err = newApp().Run([]string{"pidgen", "-i", inPath, "--log", "error"})
	assert.Error(t, err, "missing density file")
}
