// Package calib resolves PID calibration configurations: the catalogue of
// PID responses with their transforms and limits, the calibration and
// simulation density files, and the paths of the calibration samples.
package calib

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/pidperf/resample"
)

const (
	EnvRootDir    = "PIDGENROOTDIR"
	EnvSimRootDir = "PIDGENSIMROOTDIR"
)

var (
	ErrBadDataset    = errors.New("dataset not recognized, should be {MagUp,MagDown}_<year>")
	ErrUnknownYear   = errors.New("data taking year not recognized")
	ErrUnknownConfig = errors.New("unknown PID config")
	ErrUnknownSim    = errors.New("unknown simulation version")
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Config describes one PID response: the calibration sample and variable it
// is taken from, its transform and limits, and the density grid.
type Config struct {
	Name     string    `yaml:"-"`
	Sample   string    `yaml:"sample"`
	Variable string    `yaml:"variable"`
	Gamma    float64   `yaml:"gamma"`
	Limits   []float64 `yaml:"limits"`
	Bins     []int     `yaml:"bins"`
	Scale    []float64 `yaml:"scale"`
}

func (c *Config) Transform() resample.Transform { return resample.Transform{Gamma: c.Gamma} }

// PIDLimits returns the raw PID range, [0, 1] unless the config sets one.
func (c *Config) PIDLimits() (min, max float64) {
	if len(c.Limits) == 2 {
		return c.Limits[0], c.Limits[1]
	}
	return 0, 1
}

// Range returns the transformed PID range with the optional lower PID
// bound clamped to it.
func (c *Config) Range(lower *float64) resample.Range {
	min, max := c.PIDLimits()
	return resample.NewRange(c.Transform(), min, max, lower)
}

func (c *Config) validate() error {
	if len(c.Limits) != 0 && len(c.Limits) != 2 {
		return errors.Newf("config %s: limits need two values, got %d", c.Name, len(c.Limits))
	}
	if min, max := c.PIDLimits(); !(min < max) {
		return errors.Newf("config %s: empty limits [%g, %g]", c.Name, min, max)
	}
	if len(c.Bins) != 4 || len(c.Scale) != 4 {
		return errors.Newf("config %s: need 4 bin counts and 4 kernel widths", c.Name)
	}
	return nil
}

// RunCatalogue holds the data configs of one run period.
type RunCatalogue struct {
	Dir     string             `yaml:"dir"`
	Configs map[string]*Config `yaml:"configs"`

	base string
}

// RootDir is the directory of the run's density files. PIDGENROOTDIR
// replaces the catalogue's base directory.
func (r *RunCatalogue) RootDir() string { return joinDir(envOr(EnvRootDir, r.base), r.Dir) }

// List returns the config names in sorted order.
func (r *RunCatalogue) List() []string {
	names := make([]string, 0, len(r.Configs))
	for name := range r.Configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SimCatalogue lists the configs with simulation densities for one
// simulation version. Run is the data period it corresponds to.
type SimCatalogue struct {
	Dir     string   `yaml:"dir"`
	Run     int      `yaml:"run"`
	Configs []string `yaml:"configs"`

	base string
}

// RootDir is the directory of the simulation density files.
// PIDGENSIMROOTDIR replaces the catalogue's base directory.
func (s *SimCatalogue) RootDir() string { return joinDir(envOr(EnvSimRootDir, s.base), s.Dir) }

func (s *SimCatalogue) Has(config string) bool {
	for _, c := range s.Configs {
		if c == config {
			return true
		}
	}
	return false
}

type Catalogue struct {
	Data struct {
		Base string                `yaml:"base"`
		Runs map[int]*RunCatalogue `yaml:"runs"`
	} `yaml:"data"`
	Sim struct {
		Base     string                   `yaml:"base"`
		Versions map[string]*SimCatalogue `yaml:"versions"`
	} `yaml:"sim"`
}

// Load decodes and checks a catalogue.
func Load(r io.Reader) (*Catalogue, error) {
	c := &Catalogue{}
	if err := yaml.NewDecoder(r).Decode(c); err != nil {
		return nil, errors.Wrap(err, "decoding calibration catalogue")
	}

	for run, rc := range c.Data.Runs {
		if rc == nil {
			return nil, errors.Newf("run %d has no configs", run)
		}
		rc.base = c.Data.Base
		for name, cfg := range rc.Configs {
			if cfg == nil {
				return nil, errors.Newf("config %s is empty", name)
			}
			cfg.Name = name
			if err := cfg.validate(); err != nil {
				return nil, err
			}
		}
	}

	for version, sc := range c.Sim.Versions {
		if sc == nil {
			return nil, errors.Newf("simulation version %s is empty", version)
		}
		sc.base = c.Sim.Base
		rc, ok := c.Data.Runs[sc.Run]
		if !ok {
			return nil, errors.Newf("simulation version %s refers to unknown run %d", version, sc.Run)
		}
		for _, name := range sc.Configs {
			if _, ok := rc.Configs[name]; !ok {
				return nil, errors.Wrapf(ErrUnknownConfig, "%s in simulation version %s", name, version)
			}
		}
	}
	return c, nil
}

var (
	defaultOnce      sync.Once
	defaultCatalogue *Catalogue
	defaultErr       error
)

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	defaultOnce.Do(func() {
		defaultCatalogue, defaultErr = Load(bytes.NewReader(catalogueYAML))
	})
	return defaultCatalogue, defaultErr
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// joinDir keeps URL prefixes such as root://host// intact.
func joinDir(base, dir string) string {
	if dir == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + dir
}

func (c *Catalogue) Run(run int) (*RunCatalogue, error) {
	rc, ok := c.Data.Runs[run]
	if !ok {
		return nil, errors.Newf("no configs for run %d", run)
	}
	return rc, nil
}

// Config looks up a data config for the run period of a dataset.
func (c *Catalogue) Config(ds Dataset, name string) (*Config, error) {
	rc, err := c.Run(ds.Run)
	if err != nil {
		return nil, err
	}
	cfg, ok := rc.Configs[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownConfig, "%q for Run%d, available: %s", name, ds.Run, strings.Join(rc.List(), ", "))
	}
	return cfg, nil
}

func (c *Catalogue) Simulation(version string) (*SimCatalogue, error) {
	sc, ok := c.Sim.Versions[version]
	if !ok {
		names := make([]string, 0, len(c.Sim.Versions))
		for v := range c.Sim.Versions {
			names = append(names, v)
		}
		sort.Strings(names)
		return nil, errors.Wrapf(ErrUnknownSim, "%q, available: %s", version, strings.Join(names, ", "))
	}
	return sc, nil
}

// SimConfigs lists, sorted, the data configs of the simulation version's
// run that have a simulation density.
func (c *Catalogue) SimConfigs(version string) ([]string, error) {
	sc, err := c.Simulation(version)
	if err != nil {
		return nil, err
	}
	rc, err := c.Run(sc.Run)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range rc.List() {
		if sc.Has(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

// DataPDF returns the calibration density file of a config.
func (c *Catalogue) DataPDF(config string, ds Dataset, variant string) (string, error) {
	if _, err := c.Config(ds, config); err != nil {
		return "", err
	}
	rc, err := c.Run(ds.Run)
	if err != nil {
		return "", err
	}
	return pdfPath(rc.RootDir(), config, ds, variant), nil
}

// CorrPDFs returns the data and simulation density files PIDCorr uses for
// a simulation version. The data density comes from the simulation
// version's run period.
func (c *Catalogue) CorrPDFs(version, config string, ds Dataset, variant string) (data, sim string, err error) {
	sc, err := c.Simulation(version)
	if err != nil {
		return "", "", err
	}
	if !sc.Has(config) {
		return "", "", errors.Wrapf(ErrUnknownConfig, "%q has no %s simulation", config, version)
	}
	rc, err := c.Run(sc.Run)
	if err != nil {
		return "", "", err
	}
	return pdfPath(rc.RootDir(), config, ds, variant), pdfPath(sc.RootDir(), config, ds, variant), nil
}

func pdfPath(rootdir, config string, ds Dataset, variant string) string {
	return rootdir + "/" + config + "/" + ds.Name + "_" + Variant(variant) + ".root"
}

// Variant maps the user-facing variation name onto the density file suffix.
func Variant(v string) string {
	if v == "" || v == "default" {
		return "distrib"
	}
	return v
}

// Dataset is a calibration data period such as MagDown_2011.
type Dataset struct {
	Name     string
	Polarity string
	Year     int
	Run      int
}

func ParseDataset(name string) (Dataset, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return Dataset{}, errors.Wrapf(ErrBadDataset, "%q", name)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Dataset{}, errors.Wrapf(ErrUnknownYear, "%q in dataset %q", parts[1], name)
	}
	ds := Dataset{Name: name, Polarity: parts[0], Year: year}
	switch year {
	case 2011, 2012:
		ds.Run = 1
	case 2015, 2016, 2017, 2018:
		ds.Run = 2
	default:
		return Dataset{}, errors.Wrapf(ErrUnknownYear, "%d in dataset %q", year, name)
	}
	return ds, nil
}
