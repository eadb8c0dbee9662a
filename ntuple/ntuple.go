// Package ntuple reads the input event trees of the PID tools and writes
// their output trees, optionally cloning every input branch.
package ntuple

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

var (
	ErrNoTree       = errors.New("ntuple not found")
	ErrNoBranch     = errors.New("branch not found")
	ErrNotNumeric   = errors.New("branch is not a numeric scalar")
	ErrBranchExists = errors.New("branch already exists")
)

// Input is an event tree opened for a sequential pass.
type Input struct {
	f     *riofs.File
	tree  rtree.Tree
	vars  []rtree.ReadVar
	index map[string]int
	count map[string]string
	keep  map[string]bool
}

func Open(path, treeName string) (*Input, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open input file %q", path)
	}
	obj, err := f.Get(treeName)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrNoTree, "%q in %q: %v", treeName, path, err)
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, errors.Wrapf(ErrNoTree, "%q in %q is a %s", treeName, path, obj.Class())
	}

	in := &Input{
		f:     f,
		tree:  tree,
		vars:  rtree.NewReadVars(tree),
		index: make(map[string]int),
		count: make(map[string]string),
	}
	for i, v := range in.vars {
		in.index[v.Name] = i
	}
	for _, leaf := range tree.Leaves() {
		if lc := leaf.LeafCount(); lc != nil {
			in.count[leaf.Name()] = lc.Name()
		}
	}
	return in, nil
}

func (in *Input) Tree() rtree.Tree { return in.tree }

func (in *Input) Entries() int64 { return in.tree.Entries() }

func (in *Input) Has(name string) bool {
	_, ok := in.index[name]
	return ok
}

// Branches lists the input branch names in tree order.
func (in *Input) Branches() []string {
	names := make([]string, len(in.vars))
	for i, v := range in.vars {
		names[i] = v.Name
	}
	return names
}

// Keep restricts reading to the named branches, plus the counters of
// variable-size ones. By default every branch is read.
func (in *Input) Keep(names ...string) error {
	keep := make(map[string]bool)
	for _, name := range names {
		if !in.Has(name) {
			return errors.Wrapf(ErrNoBranch, "%q in tree %q", name, in.tree.Name())
		}
		keep[name] = true
		if c := in.count[name]; c != "" {
			keep[c] = true
		}
	}
	in.keep = keep
	return nil
}

func (in *Input) readVars() []rtree.ReadVar {
	if in.keep == nil {
		return in.vars
	}
	var vars []rtree.ReadVar
	for _, v := range in.vars {
		if in.keep[v.Name] {
			vars = append(vars, v)
		}
	}
	return vars
}

// Float returns an accessor to the current value of a scalar numeric
// branch, whatever its stored type.
func (in *Input) Float(name string) (func() float64, error) {
	i, ok := in.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoBranch, "%q in tree %q, available: %v", name, in.tree.Name(), sorted(in.Branches()))
	}
	switch p := in.vars[i].Value.(type) {
	case *float64:
		return func() float64 { return *p }, nil
	case *float32:
		return func() float64 { return float64(*p) }, nil
	case *int64:
		return func() float64 { return float64(*p) }, nil
	case *int32:
		return func() float64 { return float64(*p) }, nil
	case *int16:
		return func() float64 { return float64(*p) }, nil
	case *int8:
		return func() float64 { return float64(*p) }, nil
	case *uint64:
		return func() float64 { return float64(*p) }, nil
	case *uint32:
		return func() float64 { return float64(*p) }, nil
	case *uint16:
		return func() float64 { return float64(*p) }, nil
	case *uint8:
		return func() float64 { return float64(*p) }, nil
	case *bool:
		return func() float64 {
			if *p {
				return 1
			}
			return 0
		}, nil
	}
	return nil, errors.Wrapf(ErrNotNumeric, "%q holds %T", name, in.vars[i].Value)
}

// Loop reads the events in order and calls fn after each one is loaded.
func (in *Input) Loop(fn func(entry int64) error) error {
	r, err := rtree.NewReader(in.tree, in.readVars())
	if err != nil {
		return errors.Wrapf(err, "could not read tree %q", in.tree.Name())
	}
	defer r.Close()
	return r.Read(func(ctx rtree.RCtx) error {
		return fn(ctx.Entry)
	})
}

func (in *Input) Close() error { return in.f.Close() }

// Column is a new float64 output branch.
type Column struct {
	Name  string
	Value *float64
}

// Output is the output tree. Cloned branches share their buffers with the
// input, so each Fill after an input event copies it through.
type Output struct {
	f *riofs.File
	w rtree.Writer
}

// Create writes tree name into a new file. With a nil clone only the new
// columns are written; otherwise every input branch is copied as well,
// except those the new columns replace.
func Create(path, name string, clone *Input, cols []Column) (*Output, error) {
	var wvars []rtree.WriteVar
	seen := make(map[string]bool)
	for _, c := range cols {
		if seen[c.Name] {
			return nil, errors.Wrapf(ErrBranchExists, "%q given twice", c.Name)
		}
		seen[c.Name] = true
	}

	title := name
	if clone != nil {
		title = clone.tree.Title()
		for _, v := range clone.readVars() {
			if seen[v.Name] {
				continue
			}
			wvars = append(wvars, rtree.WriteVar{Name: v.Name, Value: v.Value, Count: clone.count[v.Name]})
		}
	}
	for _, c := range cols {
		wvars = append(wvars, rtree.WriteVar{Name: c.Name, Value: c.Value})
	}

	f, err := groot.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create output file %q", path)
	}
	w, err := rtree.NewWriter(f, name, wvars, rtree.WithTitle(title))
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "could not create output tree %q", name)
	}
	return &Output{f: f, w: w}, nil
}

func (o *Output) Fill() error {
	_, err := o.w.Write()
	return err
}

func (o *Output) Close() error {
	if err := o.w.Close(); err != nil {
		o.f.Close()
		return errors.Wrap(err, "could not close output tree")
	}
	return errors.Wrap(o.f.Close(), "could not close output file")
}

func sorted(names []string) []string {
	names = append([]string(nil), names...)
	sort.Strings(names)
	return names
}
