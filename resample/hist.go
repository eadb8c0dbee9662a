package resample

import (
	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/pidperf/kde"
)

// NBins is the number of bins of the per-event PID slices.
const NBins = 100

// Hist is a reusable 1-D histogram a density is sliced into.
type Hist struct {
	h *hbook.H1D
}

func NewHist(n int, lo, hi float64) *Hist {
	return &Hist{h: hbook.NewH1D(n, lo, hi)}
}

// Reset empties the histogram, keeping its binning.
func (h *Hist) Reset() {
	bng := &h.h.Binning
	for i := range bng.Bins {
		bng.Bins[i].Dist = hbook.Dist1D{}
	}
	bng.Dist = hbook.Dist1D{}
	bng.Outflows = [2]hbook.Dist1D{}
}

func (h *Hist) H1D() *hbook.H1D { return h.h }

func (h *Hist) Integral() float64 { return h.h.Integral() }

// Rand maps a uniform number u in [0, 1) onto the histogram's distribution:
// the bin is chosen from the cumulative content and the value is placed
// linearly inside it.
func (h *Hist) Rand(u float64) float64 { return kde.InverseQuantile(h.h, u) }
