package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/decibelcooper/pidperf/kde"
)

const ntracks = 200

func writeCalibration(t *testing.T, path string) {
	f, err := groot.Create(path)
	require.NoError(t, err)
	var (
		pt, p, pid, w float64
		ntr           int32
	)
	tw, err := rtree.NewWriter(f, "DecayTree", []rtree.WriteVar{
		{Name: "Pt", Value: &pt},
		{Name: "P", Value: &p},
		{Name: "nTracks", Value: &ntr},
		{Name: "probe_ProbNNp", Value: &pid},
		{Name: "nsig_sw", Value: &w},
	})
	require.NoError(t, err)
	for i := 0; i < ntracks; i++ {
		pt = math.Exp(6 + 3*float64(i)/ntracks)
		p = pt * math.Cosh(3)
		ntr = 150
		pid = (float64(i) + 0.5) / ntracks
		w = 0.5
		_, err := tw.Write()
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, f.Close())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "calib.root")
	writeCalibration(t, inPath)
	outPath := filepath.Join(dir, "pdf.root")

	err := newApp().Run([]string{"pidpdf", "-i", inPath, "-i", inPath, "-t", "DecayTree", "-o", outPath,
		"-c", "p_V3ProbNNp", "-d", "MagDown_2011", "-p", "probe_ProbNNp", "-w", "nsig_sw",
		"--bins", "20,4,4,4", "--scale", "0.05,0.3,0.3,0.3", "--log", "error"})
	require.NoError(t, err)

	d, err := kde.Load("KDEPDF", kde.PIDPhaseSpace(0, 1), outPath)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 4, 4, 4}, d.Bins())
	// two copies of the sample at weight 0.5, spread over 100 PID slices
	// of the 20 PID nodes
	assert.InDelta(t, 2*ntracks*0.5*20.0/100, d.Sum(), 1e-6)
}

func TestRunMissingBranch(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "calib.root")
	writeCalibration(t, inPath)

	err := newApp().Run([]string{"pidpdf", "-i", inPath, "-t", "DecayTree", "-o", filepath.Join(dir, "pdf.root"),
		"-c", "p_V3ProbNNp", "-d", "MagDown_2011", "--log", "error"})
	assert.Error(t, err, "the config's variable V3ProbNNp is not in the ntuple")
}
