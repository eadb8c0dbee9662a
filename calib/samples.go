package calib

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/decibelcooper/pidperf/binning"
)

const (
	EnvDataStore   = "CALIBDATASTORE"
	EnvURLProtocol = "CALIBDATAURLPROTOCOL"
	EnvDataExtra   = "CALIBDATAEXTRA"
)

var (
	ErrNoDataStore      = errors.New(EnvDataStore + " is not set")
	ErrUnknownStripping = errors.New("unknown stripping version")
	ErrUnknownPolarity  = errors.New("unknown magnet polarity")
)

// Reconstruction versions of the calibration samples by stripping version.
var recoVersions = map[string]int{
	"20":            14,
	"20r1":          14,
	"21":            14,
	"21r1":          14,
	"21_MCTuneV4":   14,
	"21r1_MCTuneV4": 14,
	"22":            15,
	"23":            15,
	"23_MCTuneV1":   15,
	"Turbo15":       15,
	"Turbo16":       16,
	"Turbo17":       17,
	"Turbo18":       18,
	"pATurbo15":     15,
	"pATurbo16":     16,
	"ApTurbo15":     15,
	"ApTurbo16":     16,
	"Electron15":    15,
	"Electron16":    16,
	"Electron17":    17,
	"Electron18":    18,
}

// Tune variants reuse the files of their plain stripping.
var stripAliases = map[string]string{
	"21_MCTuneV4":   "21",
	"21r1_MCTuneV4": "21r1",
	"23_MCTuneV1":   "23",
}

var motherNames = map[string]string{
	"K":  "DSt",
	"Pi": "DSt",
	"P":  "Lam0",
	"Mu": "Jpsi",
	"e":  "Jpsi",
}

func StrippingVersions() []string {
	names := make([]string, 0, len(recoVersions))
	for s := range recoVersions {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

func CheckStripping(strip string) error {
	if _, ok := recoVersions[strip]; !ok {
		return errors.Wrapf(ErrUnknownStripping, "%q, available: %s", strip, strings.Join(StrippingVersions(), ", "))
	}
	return nil
}

func RecoVersion(strip string) (int, error) {
	if err := CheckStripping(strip); err != nil {
		return 0, err
	}
	return recoVersions[strip], nil
}

// StripAlias returns the stripping version the sample files are named after.
func StripAlias(strip string) string {
	if s, ok := stripAliases[strip]; ok {
		return s
	}
	return strip
}

func CheckPolarity(pol string) error {
	if pol != "MagUp" && pol != "MagDown" {
		return errors.Wrapf(ErrUnknownPolarity, "%q, should be MagUp or MagDown", pol)
	}
	return nil
}

// MotherName returns the decay the calibration particle is selected from.
func MotherName(part string) (string, error) {
	if err := binning.CheckPartType(part); err != nil {
		return "", err
	}
	m, ok := motherNames[binning.RealPartType(part)]
	if !ok {
		return "", errors.Wrapf(binning.ErrUnknownPartType, "no mother for %q", part)
	}
	return m, nil
}

// Store locates the calibration samples. Head is the top directory;
// Protocol and Extra are optional URL pieces put in front of it.
type Store struct {
	Head     string
	Protocol string
	Extra    string
}

func StoreFromEnv() (Store, error) {
	s := Store{
		Head:     os.Getenv(EnvDataStore),
		Protocol: os.Getenv(EnvURLProtocol),
		Extra:    os.Getenv(EnvDataExtra),
	}
	if s.Head == "" {
		return Store{}, errors.Wrap(ErrNoDataStore, "cannot locate calibration samples")
	}
	return s, nil
}

// Files returns the paths of the calibration sample files with indices
// minIdx to maxIdx, both included.
func (s Store) Files(strip, pol, part string, minIdx, maxIdx int) ([]string, error) {
	reco, err := RecoVersion(strip)
	if err != nil {
		return nil, err
	}
	if err := CheckPolarity(pol); err != nil {
		return nil, err
	}
	mother, err := MotherName(part)
	if err != nil {
		return nil, err
	}
	if minIdx < 0 || maxIdx < minIdx {
		return nil, errors.Newf("bad file index range [%d, %d]", minIdx, maxIdx)
	}

	species := binning.RealPartType(part)
	files := make([]string, 0, maxIdx-minIdx+1)
	for i := minIdx; i <= maxIdx; i++ {
		files = append(files, fmt.Sprintf("%s//%s//%s/Reco%d_DATA/%s/%s_%s_%s_Strip%s_%d.root",
			s.Protocol, s.Extra, s.Head, reco, pol, mother, species, pol, StripAlias(strip), i))
	}
	return files, nil
}

const electronDir = "root://eoslhcb.cern.ch//eos/lhcb/wg/PID"

// ElectronFiles returns the electron calibration samples of a Run 2 year,
// given as stripping version Electron15 to Electron18.
func ElectronFiles(strip, pol string) ([]string, error) {
	if err := CheckPolarity(pol); err != nil {
		return nil, err
	}
	mag := "MU"
	if pol == "MagDown" {
		mag = "MD"
	}
	switch strip {
	case "Electron15":
		return []string{electronDir + "/PIDCalib_2015_electrons/pidcalib_BJpsiEE_" + mag + ".root"}, nil
	case "Electron16":
		return []string{electronDir + "/PIDCalib_2016_electrons/pidcalib_BJpsiEE_" + mag + "_TAGCUT.root"}, nil
	case "Electron17", "Electron18":
		year := "20" + strings.TrimPrefix(strip, "Electron")
		return []string{electronDir + "/PIDCalib_" + year + "_electrons/Turbo" + year + "_B2KJpsiEE_" + pol + ".root"}, nil
	}
	return nil, errors.Wrapf(ErrUnknownStripping, "%q has no electron samples", strip)
}
