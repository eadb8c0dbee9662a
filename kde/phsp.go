package kde

// PhaseSpace is a rectangular region the densities are defined on.
type PhaseSpace interface {
	Axes() []OneDim
}

// OneDim is a named interval [Min, Max].
type OneDim struct {
	Name     string
	Min, Max float64
}

func (o OneDim) Axes() []OneDim { return []OneDim{o} }

func (o OneDim) Within(x float64) bool { return x >= o.Min && x <= o.Max }

// Combined is the direct product of several phase spaces, with their axes
// flattened in order.
type Combined struct {
	Name string
	axes []OneDim
}

func Combine(name string, spaces ...PhaseSpace) *Combined {
	c := &Combined{Name: name}
	for _, s := range spaces {
		c.axes = append(c.axes, s.Axes()...)
	}
	return c
}

func (c *Combined) Axes() []OneDim { return append([]OneDim(nil), c.axes...) }

func Dim(p PhaseSpace) int { return len(p.Axes()) }

// Within reports whether x lies inside every axis of p.
func Within(p PhaseSpace, x []float64) bool {
	axes := p.Axes()
	if len(x) != len(axes) {
		return false
	}
	for i, a := range axes {
		if !a.Within(x[i]) {
			return false
		}
	}
	return true
}

// Kinematic limits of the PID calibration densities: log(pT/MeV),
// pseudorapidity and log(nTracks).
var (
	LogPtAxis  = OneDim{Name: "MomPhsp", Min: 5.5, Max: 9.5}
	EtaAxis    = OneDim{Name: "EtaPhsp", Min: 1.5, Max: 5.5}
	LogNtrAxis = OneDim{Name: "NtrPhsp", Min: 3.0, Max: 6.5}
)

// PIDPhaseSpace is the 4-D space (PID, log pT, eta, log nTracks) with the
// PID axis spanning [pidMin, pidMax] in transformed units.
func PIDPhaseSpace(pidMin, pidMax float64) *Combined {
	pid := OneDim{Name: "PIDPhsp", Min: pidMin, Max: pidMax}
	return Combine("FullPhsp", Combine("PIDMomEtaPhsp", Combine("PIDMomPhsp", pid, LogPtAxis), EtaAxis), LogNtrAxis)
}
