package kde

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrNoSamples = errors.New("no samples inside the phase space")

// Estimate builds a binned kernel density from weighted samples. Samples are
// histogrammed on the grid and smoothed with a Gaussian of the given width
// along each axis (a zero width leaves that axis unsmoothed). The result is
// normalised to unit integral over the phase space. A nil weights slice
// weighs every sample by one.
func Estimate(name string, phsp PhaseSpace, bins []int, samples [][]float64, weights, widths []float64) (*BinnedDensity, error) {
	d, err := NewBinnedDensity(name, phsp, bins)
	if err != nil {
		return nil, err
	}
	if len(widths) != len(bins) {
		return nil, errors.Newf("%d kernel widths for %d dimensions", len(widths), len(bins))
	}
	if weights != nil && len(weights) != len(samples) {
		return nil, errors.Newf("%d weights for %d samples", len(weights), len(samples))
	}

	idx := make([]int, len(bins))
	filled := 0
	for k, x := range samples {
		if !Within(phsp, x) {
			continue
		}
		for i := range bins {
			j := int((x[i] - d.axes[i].Min) / d.width(i))
			if j == bins[i] {
				j--
			}
			idx[i] = j
		}
		w := 1.0
		if weights != nil {
			w = weights[k]
		}
		d.values[d.index(idx)] += w
		filled++
	}
	if filled == 0 {
		return nil, errors.Wrapf(ErrNoSamples, "%d samples", len(samples))
	}

	for dim, sigma := range widths {
		if sigma > 0 {
			d.smooth(dim, sigma)
		}
	}

	volume := 1.0
	for i := range bins {
		volume *= d.width(i)
	}
	total := floats.Sum(d.values) * volume
	if total <= 0 {
		return nil, errors.Wrapf(ErrNoSamples, "non-positive total weight %g", total)
	}
	floats.Scale(1/total, d.values)
	return d, nil
}

// smooth convolves the grid along dim with a Gaussian kernel, truncated at
// five standard deviations.
func (d *BinnedDensity) smooth(dim int, sigma float64) {
	n := d.bins[dim]
	w := d.width(dim)
	reach := int(math.Ceil(5 * sigma / w))
	if reach > n-1 {
		reach = n - 1
	}
	gauss := distuv.Normal{Mu: 0, Sigma: sigma}
	kernel := make([]float64, 2*reach+1)
	for k := -reach; k <= reach; k++ {
		kernel[k+reach] = gauss.Prob(float64(k)*w) * w
	}

	stride := d.strides[dim]
	line := make([]float64, n)
	out := make([]float64, n)
	for base := range d.values {
		// visit each line along dim once, from its first node
		if (base/stride)%n != 0 {
			continue
		}
		for j := 0; j < n; j++ {
			line[j] = d.values[base+j*stride]
		}
		for j := range out {
			out[j] = 0
		}
		for j, v := range line {
			if v == 0 {
				continue
			}
			for k := -reach; k <= reach; k++ {
				if t := j + k; t >= 0 && t < n {
					out[t] += v * kernel[k+reach]
				}
			}
		}
		for j := 0; j < n; j++ {
			d.values[base+j*stride] = out[j]
		}
	}
}
