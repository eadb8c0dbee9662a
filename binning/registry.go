// Package binning holds the named binning schemes used to partition
// calibration samples in kinematic and PID variables.
//
// Schemes are keyed by particle type, variable name and scheme name. The
// registry returned by Default carries the stock schemes; users can add
// their own with Add, AddUniformBins and AddBoundary.
package binning

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go-hep.org/x/hep/hbook"
)

const DefaultScheme = "default"

var (
	ErrUnknownScheme = errors.New("unknown binning scheme")
	ErrSchemeExists  = errors.New("binning scheme already exists")
)

// Scheme is a variable-width binning over [Min, Max]. Boundaries are kept
// sorted and unique and always include Min and Max.
type Scheme struct {
	Var        string
	Min, Max   float64
	boundaries []float64
}

func NewScheme(varName string, min, max float64) *Scheme {
	if max < min {
		min, max = max, min
	}
	s := &Scheme{Var: varName, Min: min, Max: max}
	s.AddBoundary(min)
	s.AddBoundary(max)
	return s
}

// AddBoundary inserts b. It reports false if b was already a boundary.
func (s *Scheme) AddBoundary(b float64) bool {
	i := sort.SearchFloat64s(s.boundaries, b)
	if i < len(s.boundaries) && s.boundaries[i] == b {
		return false
	}
	s.boundaries = append(s.boundaries, 0)
	copy(s.boundaries[i+1:], s.boundaries[i:])
	s.boundaries[i] = b
	return true
}

// AddUniform adds n+1 equidistant boundaries covering [lo, hi].
func (s *Scheme) AddUniform(n int, lo, hi float64) {
	if n <= 0 {
		return
	}
	width := (hi - lo) / float64(n)
	for i := 0; i < n; i++ {
		s.AddBoundary(lo + float64(i)*width)
	}
	s.AddBoundary(hi)
}

// Edges returns the boundaries inside [Min, Max].
func (s *Scheme) Edges() []float64 {
	var edges []float64
	for _, b := range s.boundaries {
		if b >= s.Min && b <= s.Max {
			edges = append(edges, b)
		}
	}
	return edges
}

func (s *Scheme) Bins() int {
	if n := len(s.Edges()); n > 1 {
		return n - 1
	}
	return 0
}

// FindBin returns the index of the bin holding x, or -1 when x is outside
// the scheme. The last bin is closed on the right.
func (s *Scheme) FindBin(x float64) int {
	edges := s.Edges()
	if len(edges) < 2 || x < edges[0] || x > edges[len(edges)-1] {
		return -1
	}
	i := sort.SearchFloat64s(edges, x)
	if i < len(edges) && edges[i] == x {
		if i == len(edges)-1 {
			return i - 1
		}
		return i
	}
	return i - 1
}

// H1D books an empty histogram with the scheme's bin edges.
func (s *Scheme) H1D() *hbook.H1D {
	h := hbook.NewH1DFromEdges(s.Edges())
	h.Annotation()["name"] = s.Var
	return h
}

func (s *Scheme) Copy() *Scheme {
	c := *s
	c.boundaries = append([]float64(nil), s.boundaries...)
	return &c
}

type Registry struct {
	schemes map[string]map[string]map[string]*Scheme
}

func NewRegistry() *Registry {
	return &Registry{schemes: make(map[string]map[string]map[string]*Scheme)}
}

func (r *Registry) names(part, varName string) (map[string]*Scheme, error) {
	if err := CheckPartType(part); err != nil {
		return nil, err
	}
	if err := CheckVarName(varName); err != nil {
		return nil, err
	}
	byVar, ok := r.schemes[part]
	if !ok {
		byVar = make(map[string]map[string]*Scheme)
		r.schemes[part] = byVar
	}
	byName, ok := byVar[varName]
	if !ok {
		byName = make(map[string]*Scheme)
		byVar[varName] = byName
	}
	return byName, nil
}

// Schemes lists the scheme names defined for a particle type and variable.
func (r *Registry) Schemes(part, varName string) ([]string, error) {
	byName, err := r.names(part, varName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) Has(part, varName, scheme string) bool {
	byName, err := r.names(part, varName)
	if err != nil {
		return false
	}
	_, ok := byName[scheme]
	return ok
}

// Check returns an error naming the available schemes when scheme is
// not defined for part and varName.
func (r *Registry) Check(part, varName, scheme string) error {
	names, err := r.Schemes(part, varName)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == scheme {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownScheme, "%q for variable %q, possible schemes are %v", scheme, varName, names)
}

// Add creates an empty scheme over [min, max]. An existing scheme is only
// overwritten when replace is set.
func (r *Registry) Add(part, varName, scheme string, min, max float64, replace bool) error {
	byName, err := r.names(part, varName)
	if err != nil {
		return err
	}
	if _, ok := byName[scheme]; ok && !replace {
		return errors.Wrapf(ErrSchemeExists, "%q for track type %q, variable %q", scheme, part, varName)
	}
	byName[scheme] = NewScheme(varName, min, max)
	return nil
}

func (r *Registry) lookup(part, varName, scheme string) (*Scheme, error) {
	if err := r.Check(part, varName, scheme); err != nil {
		return nil, err
	}
	return r.schemes[part][varName][scheme], nil
}

func (r *Registry) SetDefault(part, varName, scheme string) error {
	s, err := r.lookup(part, varName, scheme)
	if err != nil {
		return err
	}
	r.schemes[part][varName][DefaultScheme] = s.Copy()
	return nil
}

func (r *Registry) AddUniformBins(part, varName, scheme string, n int, lo, hi float64) error {
	s, err := r.lookup(part, varName, scheme)
	if err != nil {
		return err
	}
	s.AddUniform(n, lo, hi)
	return nil
}

func (r *Registry) AddBoundary(part, varName, scheme string, b float64) error {
	s, err := r.lookup(part, varName, scheme)
	if err != nil {
		return err
	}
	s.AddBoundary(b)
	return nil
}

// Get returns a copy of the requested scheme; the empty name selects the
// default scheme.
func (r *Registry) Get(part, varName, scheme string) (*Scheme, error) {
	if scheme == "" {
		scheme = DefaultScheme
	}
	s, err := r.lookup(part, varName, scheme)
	if err != nil {
		return nil, err
	}
	return s.Copy(), nil
}
