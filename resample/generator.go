// Package resample holds the per-event kernels of the PID resampling tools:
// generating a PID response from calibration data (Generator) and
// correcting a simulated response towards data (Corrector).
package resample

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/pidperf/kde"
)

// Generator draws PID responses from the calibration density sliced at each
// event's kinematics.
type Generator struct {
	Density   *kde.BinnedDensity
	Transform Transform
	Range     Range
	Points    PointMaker
	Stats     Stats

	hist *Hist
	unit distuv.Uniform
	flat distuv.Uniform
}

func NewGenerator(density *kde.BinnedDensity, tr Transform, rng Range, ntrScale float64, src rand.Source) *Generator {
	return &Generator{
		Density:   density,
		Transform: tr,
		Range:     rng,
		Points:    PointMaker{PID: rng.Mid(), NTracksScale: ntrScale},
		hist:      NewHist(NBins, rng.Lower, rng.Max),
		unit:      distuv.Uniform{Min: 0, Max: 1, Src: src},
		flat:      distuv.Uniform{Min: rng.Lower, Max: rng.Max, Src: src},
	}
}

// Next generates the PID response of one event. It also returns the
// calibration statistics of the slice; when that is zero the value is drawn
// uniformly over the PID range.
func (g *Generator) Next(k Kinematics) (pid, calibStat float64) {
	point := g.Points.Point(k)

	g.hist.Reset()
	g.Density.Slice(point, 0, g.hist.H1D())
	calibStat = g.hist.Integral()

	var x float64
	if calibStat > 0 {
		x = g.hist.Rand(g.unit.Rand())
	} else {
		x = g.flat.Rand()
	}
	count(calibStat, &g.Stats.NoCalib, &g.Stats.LowCalib)
	g.Stats.Events++

	return g.Transform.Backward(x), calibStat
}
