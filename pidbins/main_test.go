package main

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/pidperf/binning"
)

func runApp(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"pidbins"}, args...))
	return buf.String(), err
}

func TestPrintScheme(t *testing.T) {
	out, err := runApp(t, "--part", "Mu", "--var", "nTracks")
	require.NoError(t, err)
	assert.Equal(t, "Mu nTracks [0, 500], 4 bins\n"+
		"    0  0  50\n"+
		"    1  50  200\n"+
		"    2  200  300\n"+
		"    3  300  500\n", out)
}

func TestExtraBoundaries(t *testing.T) {
	out, err := runApp(t, "--part", "Mu", "--var", "nTracks", "--boundary", "100,400", "--boundary", "600")
	require.NoError(t, err)
	assert.Contains(t, out, "Mu nTracks [0, 500], 6 bins\n")

	// the stock registry is left untouched
	s, err := binning.Default().Get("Mu", "nTracks", "")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Bins())

	// nor is the next run
	out, err = runApp(t, "--part", "Mu", "--var", "nTracks")
	require.NoError(t, err)
	assert.Contains(t, out, "Mu nTracks [0, 500], 4 bins\n")
}

func TestListSchemes(t *testing.T) {
	out, err := runApp(t, "--part", "Pi", "--var", "P", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "DLLKpi\n")
	assert.Contains(t, out, "PerfPlots_KPi\n")
	assert.Contains(t, out, "default\n")

	_, err = runApp(t, "--part", "Pi", "--var", "P", "--scheme", "nope")
	assert.True(t, errors.Is(err, binning.ErrUnknownScheme))
}
