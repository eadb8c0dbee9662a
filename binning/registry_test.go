package binning

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheme(t *testing.T) {
	s := NewScheme("P", 3000, 100000)
	assert.True(t, s.AddBoundary(9300))
	assert.False(t, s.AddBoundary(9300))
	s.AddUniform(2, 19000, 100000)

	assert.Equal(t, []float64{3000, 9300, 19000, 59500, 100000}, s.Edges())
	assert.Equal(t, 4, s.Bins())

	assert.Equal(t, -1, s.FindBin(2999))
	assert.Equal(t, 0, s.FindBin(3000))
	assert.Equal(t, 1, s.FindBin(9300))
	assert.Equal(t, 3, s.FindBin(100000))
	assert.Equal(t, -1, s.FindBin(100001))

	h := s.H1D()
	assert.Equal(t, 4, h.Len())
}

func TestSchemeEdgesClippedToRange(t *testing.T) {
	s := NewScheme("ETA", 1.5, 5)
	s.AddBoundary(6)
	assert.Equal(t, []float64{1.5, 5}, s.Edges())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add("K", "P", "mine", 0, 10, false))
	err := r.Add("K", "P", "mine", 0, 10, false)
	assert.True(t, errors.Is(err, ErrSchemeExists))
	require.NoError(t, r.Add("K", "P", "mine", 0, 20, true))

	require.NoError(t, r.AddUniformBins("K", "P", "mine", 4, 0, 20))
	require.NoError(t, r.AddBoundary("K", "P", "mine", 7))

	s, err := r.Get("K", "P", "mine")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 7, 10, 15, 20}, s.Edges())

	// Get hands out copies.
	s.AddBoundary(1)
	again, err := r.Get("K", "P", "mine")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Bins())

	_, err = r.Get("K", "P", "")
	assert.True(t, errors.Is(err, ErrUnknownScheme))

	require.NoError(t, r.SetDefault("K", "P", "mine"))
	def, err := r.Get("K", "P", "")
	require.NoError(t, err)
	assert.Equal(t, again.Edges(), def.Edges())

	names, err := r.Schemes("K", "P")
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "mine"}, names)
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()

	err := r.Add("Z", "P", "x", 0, 1, false)
	assert.True(t, errors.Is(err, ErrUnknownPartType))

	err = r.Add("K", "Bogus", "x", 0, 1, false)
	assert.True(t, errors.Is(err, ErrUnknownVariable))

	err = r.AddBoundary("K", "P", "missing", 1)
	assert.True(t, errors.Is(err, ErrUnknownScheme))
	assert.False(t, r.Has("K", "P", "missing"))
}

func TestStockRegistry(t *testing.T) {
	r := Default()

	p, err := r.Get("K", "P", "")
	require.NoError(t, err)
	assert.Equal(t, []float64{3000, 9300, 15600, 19000}, p.Edges()[:4])
	assert.Equal(t, 18, p.Bins())

	ntr, err := r.Get("Mu", "nTracks", "")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 50, 200, 300, 500}, ntr.Edges())

	mom, err := r.Get("Mu", "P", DefaultScheme)
	require.NoError(t, err)
	assert.Equal(t, 13, mom.Bins())

	dlle, err := r.Get("Pi", "DLLe", "PerfPlots_Pi")
	require.NoError(t, err)
	assert.Equal(t, -15.0, dlle.Min)
	assert.Equal(t, 100, dlle.Bins())

	assert.True(t, r.Has("e", "Brunel_ETA", "PerfPlots_ePi"))
	assert.True(t, r.Has("Pi", "MC15TuneV1_ProbNNpi", "PerfPlots_Pi"))
	assert.False(t, r.Has("Pi", "DLLpi", "PerfPlots_Pi"))
	assert.False(t, r.Has("Mu", "RICHThreshold_mu", "PerfPlots_Mu"))
}

func TestRealPartType(t *testing.T) {
	assert.Equal(t, "K", RealPartType("K_MuonUnBiased"))
	assert.Equal(t, "Mu", RealPartType("Mu_nopt"))
	assert.Equal(t, "Pi", RealPartType("Pi"))
}
