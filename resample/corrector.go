package resample

import (
	"math"

	"github.com/decibelcooper/pidperf/kde"
)

// Corrector maps simulated PID responses onto data by matching their
// quantiles in the simulation and data densities at each event's
// kinematics.
type Corrector struct {
	Data, Sim *kde.BinnedDensity
	Transform Transform
	Range     Range
	Points    PointMaker
	Stats     Stats

	hdata, hsim *Hist
}

func NewCorrector(data, sim *kde.BinnedDensity, tr Transform, rng Range, ntrScale float64) *Corrector {
	return &Corrector{
		Data:      data,
		Sim:       sim,
		Transform: tr,
		Range:     rng,
		Points:    PointMaker{PID: rng.Mid(), NTracksScale: ntrScale},
		hdata:     NewHist(NBins, rng.Lower, rng.Max),
		hsim:      NewHist(NBins, rng.Lower, rng.Max),
	}
}

// Next corrects the simulated response simPID of one event and returns the
// data and simulation statistics of the slices. Responses outside the
// calibration range, and negative responses under a non-trivial transform
// (flagging a missing value), pass through unchanged.
func (c *Corrector) Next(k Kinematics, simPID float64) (pid, calibStat, mcStat float64) {
	point := c.Points.Point(k)

	c.hdata.Reset()
	c.hsim.Reset()
	c.Data.Slice(point, 0, c.hdata.H1D())
	c.Sim.Slice(point, 0, c.hsim.H1D())

	calibStat = c.hdata.Integral()
	mcStat = c.hsim.Integral()
	count(calibStat, &c.Stats.NoCalib, &c.Stats.LowCalib)
	count(mcStat, &c.Stats.NoMC, &c.Stats.LowMC)
	c.Stats.Events++

	if !c.Transform.Identity() && simPID < 0 {
		return simPID, calibStat, mcStat
	}

	x := c.Transform.Forward(simPID)
	if math.IsNaN(x) {
		return simPID, calibStat, mcStat
	}
	if x >= c.Range.Min && x <= c.Range.Max {
		x = kde.Transform(c.hsim.H1D(), c.hdata.H1D(), x)
	}
	return c.Transform.Backward(x), calibStat, mcStat
}
