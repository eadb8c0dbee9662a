// Package kde implements binned kernel densities over rectangular phase
// spaces, the 1-D slices taken from them and the CDF matching between two
// such slices.
package kde

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/floats"
)

var ErrBadBinning = errors.New("invalid density binning")

// BinnedDensity stores density values at the bin centres of a regular grid
// and interpolates multilinearly between them. It is zero outside its
// phase space.
type BinnedDensity struct {
	Name string

	phsp    PhaseSpace
	axes    []OneDim
	bins    []int
	strides []int
	values  []float64
}

func NewBinnedDensity(name string, phsp PhaseSpace, bins []int) (*BinnedDensity, error) {
	axes := phsp.Axes()
	if len(bins) != len(axes) {
		return nil, errors.Wrapf(ErrBadBinning, "%d bin counts for a %d-dimensional phase space", len(bins), len(axes))
	}
	size := 1
	strides := make([]int, len(bins))
	for i := len(bins) - 1; i >= 0; i-- {
		if bins[i] < 1 {
			return nil, errors.Wrapf(ErrBadBinning, "axis %q has %d bins", axes[i].Name, bins[i])
		}
		if axes[i].Max <= axes[i].Min {
			return nil, errors.Wrapf(ErrBadBinning, "axis %q has empty range [%g, %g]", axes[i].Name, axes[i].Min, axes[i].Max)
		}
		strides[i] = size
		size *= bins[i]
	}
	return &BinnedDensity{
		Name:    name,
		phsp:    phsp,
		axes:    axes,
		bins:    append([]int(nil), bins...),
		strides: strides,
		values:  make([]float64, size),
	}, nil
}

func (d *BinnedDensity) PhaseSpace() PhaseSpace { return d.phsp }

func (d *BinnedDensity) Bins() []int { return append([]int(nil), d.bins...) }

func (d *BinnedDensity) index(idx []int) int {
	n := 0
	for i, j := range idx {
		n += j * d.strides[i]
	}
	return n
}

func (d *BinnedDensity) At(idx ...int) float64 { return d.values[d.index(idx)] }

func (d *BinnedDensity) Set(v float64, idx ...int) { d.values[d.index(idx)] = v }

// Sum returns the sum of the grid node values.
func (d *BinnedDensity) Sum() float64 { return floats.Sum(d.values) }

func (d *BinnedDensity) Scale(f float64) { floats.Scale(f, d.values) }

func (d *BinnedDensity) width(dim int) float64 {
	a := d.axes[dim]
	return (a.Max - a.Min) / float64(d.bins[dim])
}

// Centre returns the coordinate of the centre of bin i along dim.
func (d *BinnedDensity) Centre(dim, i int) float64 {
	return d.axes[dim].Min + (float64(i)+0.5)*d.width(dim)
}

// Density evaluates the interpolated density at x.
func (d *BinnedDensity) Density(x []float64) float64 {
	if !Within(d.phsp, x) {
		return 0
	}

	ndim := len(d.bins)
	lo := make([]int, ndim)
	frac := make([]float64, ndim)
	for i := range d.bins {
		t := (x[i]-d.axes[i].Min)/d.width(i) - 0.5
		j := int(math.Floor(t))
		f := t - float64(j)
		switch {
		case j < 0:
			j, f = 0, 0
		case j >= d.bins[i]-1:
			j, f = d.bins[i]-1, 0
		}
		lo[i] = j
		frac[i] = f
	}

	sum := 0.0
	for corner := 0; corner < 1<<uint(ndim); corner++ {
		w := 1.0
		n := 0
		for i := 0; i < ndim; i++ {
			j := lo[i]
			if corner&(1<<uint(i)) != 0 {
				if frac[i] == 0 {
					w = 0
					break
				}
				j++
				w *= frac[i]
			} else {
				w *= 1 - frac[i]
			}
			n += j * d.strides[i]
		}
		if w != 0 {
			sum += w * d.values[n]
		}
	}
	return sum
}

// Slice fills h with the density along dim at point, one value per bin
// centre of h. Negative values are dropped. h is expected to be empty.
func (d *BinnedDensity) Slice(point []float64, dim int, h *hbook.H1D) {
	x := append([]float64(nil), point...)
	for i := range h.Binning.Bins {
		c := h.Binning.Bins[i].XMid()
		x[dim] = c
		if v := d.Density(x); v > 0 {
			h.Fill(c, v)
		}
	}
}

// cumulative returns the bin edges of h and its running integral at each
// edge.
func cumulative(h *hbook.H1D) (edges, cdf []float64) {
	bins := h.Binning.Bins
	edges = make([]float64, len(bins)+1)
	cdf = make([]float64, len(bins)+1)
	for i, b := range bins {
		edges[i] = b.XMin()
		edges[i+1] = b.XMax()
		cdf[i+1] = cdf[i] + b.SumW()
	}
	return edges, cdf
}

// Quantile is the fraction of h's content below x, interpolating linearly
// inside the bin holding x. It is NaN when h is empty.
func Quantile(h *hbook.H1D, x float64) float64 {
	edges, cdf := cumulative(h)
	n := len(edges) - 1
	total := cdf[n]
	if n < 1 || total <= 0 {
		return math.NaN()
	}
	switch {
	case x <= edges[0]:
		return 0
	case x >= edges[n]:
		return 1
	}
	i := sort.SearchFloat64s(edges, x)
	if edges[i] != x {
		i--
	}
	part := cdf[i] + (cdf[i+1]-cdf[i])*(x-edges[i])/(edges[i+1]-edges[i])
	return part / total
}

// InverseQuantile returns the value below which a fraction q of h's
// content lies. It is NaN when h is empty.
func InverseQuantile(h *hbook.H1D, q float64) float64 {
	edges, cdf := cumulative(h)
	n := len(edges) - 1
	total := cdf[n]
	if n < 1 || total <= 0 {
		return math.NaN()
	}
	target := q * total
	if target <= 0 {
		// first edge carrying content
		j := sort.Search(n, func(i int) bool { return cdf[i+1] > 0 })
		return edges[j]
	}
	if target >= total {
		j := sort.SearchFloat64s(cdf, total)
		return edges[j]
	}
	j := sort.SearchFloat64s(cdf, target)
	i := j - 1
	return edges[i] + (target-cdf[i])/(cdf[j]-cdf[i])*(edges[j]-edges[i])
}

// Transform maps x, distributed as src, onto the value with the same
// quantile under dst. x is returned unchanged if either histogram is empty.
func Transform(src, dst *hbook.H1D, x float64) float64 {
	q := Quantile(src, x)
	if math.IsNaN(q) {
		return x
	}
	y := InverseQuantile(dst, q)
	if math.IsNaN(y) {
		return x
	}
	return y
}
