package resample

import "math"

// Kinematics are the per-track quantities the calibration is binned in.
// Eta is only used when HasEta is set; otherwise it is derived from P and Pt.
type Kinematics struct {
	Pt, P   float64
	Eta     float64
	HasEta  bool
	NTracks float64
}

// PseudoRapidity computes eta from the total and transverse momenta.
func PseudoRapidity(pt, p float64) float64 {
	return -math.Log(math.Tan(math.Asin(pt/p) / 2))
}

// PointMaker builds phase-space points (PID, log pT, eta, log nTracks).
// NTracksScale multiplies the track multiplicity when non-zero.
type PointMaker struct {
	PID          float64
	NTracksScale float64
}

func (m PointMaker) Point(k Kinematics) []float64 {
	eta := k.Eta
	if !k.HasEta {
		eta = PseudoRapidity(k.Pt, k.P)
	}
	ntr := k.NTracks
	if m.NTracksScale != 0 {
		ntr *= m.NTracksScale
	}
	return []float64{m.PID, math.Log(k.Pt), eta, math.Log(ntr)}
}
