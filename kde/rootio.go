package kde

import (
	"math"

	"github.com/cockroachdb/errors"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Names of the trees a density is stored in. The phase-space tree has one
// entry per axis; the density tree has one entry per grid node in row-major
// order (last axis fastest).
const (
	PhaseSpaceTree = "phsp"
	DensityTree    = "density"
)

var ErrPhaseSpaceMismatch = errors.New("density file does not match phase space")

// Save writes the density to a new ROOT file at path.
func (d *BinnedDensity) Save(path string) error {
	f, err := groot.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create density file %q", path)
	}
	if err := d.writeTrees(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "could not write density to %q", path)
	}
	return errors.Wrapf(f.Close(), "could not close density file %q", path)
}

func (d *BinnedDensity) writeTrees(dir riofs.Directory) error {
	var (
		nbins    int32
		min, max float64
	)
	w, err := rtree.NewWriter(dir, PhaseSpaceTree, []rtree.WriteVar{
		{Name: "nbins", Value: &nbins},
		{Name: "min", Value: &min},
		{Name: "max", Value: &max},
	}, rtree.WithTitle(d.Name))
	if err != nil {
		return err
	}
	for i, a := range d.axes {
		nbins, min, max = int32(d.bins[i]), a.Min, a.Max
		if _, err := w.Write(); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	var value float64
	w, err = rtree.NewWriter(dir, DensityTree, []rtree.WriteVar{
		{Name: "value", Value: &value},
	}, rtree.WithTitle(d.Name))
	if err != nil {
		return err
	}
	for _, v := range d.values {
		value = v
		if _, err := w.Write(); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func openTree(f *riofs.File, name string) (rtree.Tree, error) {
	obj, err := f.Get(name)
	if err != nil {
		return nil, err
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return nil, errors.Newf("object %q is a %s, not a tree", name, obj.Class())
	}
	return tree, nil
}

// Load reads a density stored by Save. The stored axis limits must agree
// with phsp.
func Load(name string, phsp PhaseSpace, path string) (*BinnedDensity, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open density file %q", path)
	}
	defer f.Close()

	tree, err := openTree(f, PhaseSpaceTree)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	var (
		nbins    int32
		min, max float64
		bins     []int
	)
	axes := phsp.Axes()
	r, err := rtree.NewReader(tree, []rtree.ReadVar{
		{Name: "nbins", Value: &nbins},
		{Name: "min", Value: &min},
		{Name: "max", Value: &max},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	err = r.Read(func(ctx rtree.RCtx) error {
		i := len(bins)
		if i >= len(axes) {
			return errors.Wrapf(ErrPhaseSpaceMismatch, "more than %d axes", len(axes))
		}
		if !sameLimit(axes[i].Min, min) || !sameLimit(axes[i].Max, max) {
			return errors.Wrapf(ErrPhaseSpaceMismatch, "axis %q is [%g, %g], file has [%g, %g]",
				axes[i].Name, axes[i].Min, axes[i].Max, min, max)
		}
		bins = append(bins, int(nbins))
		return nil
	})
	r.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	if len(bins) != len(axes) {
		return nil, errors.Wrapf(ErrPhaseSpaceMismatch, "file has %d axes, phase space %d", len(bins), len(axes))
	}

	d, err := NewBinnedDensity(name, phsp, bins)
	if err != nil {
		return nil, err
	}

	tree, err = openTree(f, DensityTree)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	if n := tree.Entries(); n != int64(len(d.values)) {
		return nil, errors.Wrapf(ErrPhaseSpaceMismatch, "%d density values for %d grid nodes", n, len(d.values))
	}
	var value float64
	r, err = rtree.NewReader(tree, []rtree.ReadVar{{Name: "value", Value: &value}})
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	defer r.Close()
	err = r.Read(func(ctx rtree.RCtx) error {
		d.values[ctx.Entry] = value
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return d, nil
}

func sameLimit(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
