package binning

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownPartType = errors.New("unknown particle type")
	ErrUnknownVariable = errors.New("unknown variable name")
)

var richPartTypes = []string{"K", "Pi", "P", "e"}

var muonPartTypes = []string{"K_MuonUnBiased", "Pi_MuonUnBiased", "Mu", "P_MuonUnBiased", "Mu_nopt"}

var realPartTypes = []string{"K", "Pi", "P", "Mu", "e"}

// RICHPartTypes are the calibration species selected with RICH-based PID.
func RICHPartTypes() []string { return append([]string(nil), richPartTypes...) }

// MuonPartTypes are the calibration species selected without muon-system bias.
func MuonPartTypes() []string { return append([]string(nil), muonPartTypes...) }

func PartTypes() []string {
	return append(RICHPartTypes(), muonPartTypes...)
}

// RealPartType strips the sample qualifier from a particle type, e.g.
// "K_MuonUnBiased" is a kaon.
func RealPartType(part string) string {
	if i := strings.Index(part, "_"); i > 0 {
		return part[:i]
	}
	return part
}

func RealPartTypes() []string { return append([]string(nil), realPartTypes...) }

var pidTunes = []string{"MC12TuneV2", "MC12TuneV3", "MC12TuneV4", "MC15TuneV1", "MC15TuneDNNV1", "MC15TuneFLAT4dV1", "MC15TuneCatBoostV1"}

var variables = buildVariables()

func buildVariables() map[string]bool {
	vars := map[string]bool{
		"runNumber":                 true,
		"nTracks":                   true,
		"nTracks_Brunel":            true,
		"nSPDHits":                  true,
		"nVeloClusters":             true,
		"nRich1Hits":                true,
		"nRich2Hits":                true,
		"Brunel_MC15TuneV1_ProbNNd": true,
	}
	for _, name := range []string{"P", "PT", "ETA", "PHI", "DLLe", "InMuonAcc", "IsMuon", "IsMuonLoose",
		"nShared", "RICHAerogelUsed", "RICH1GasUsed", "RICH2GasUsed", "HasRich", "HasCalo"} {
		vars[name] = true
		vars["Brunel_"+name] = true
	}
	for _, part := range realPartTypes {
		p := strings.ToLower(part)
		if p == "k" {
			p = "K"
		}
		vars["DLL"+p] = true
		for _, tune := range pidTunes {
			vars[tune+"_ProbNN"+p] = true
			vars["Brunel_"+tune+"_ProbNN"+p] = true
		}
		if p != "mu" {
			vars["RICHThreshold_"+p] = true
		}
	}
	return vars
}

// Variables lists the known binning variable names in sorted order.
func Variables() []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CheckPartType(part string) error {
	for _, p := range PartTypes() {
		if p == part {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownPartType, "%q (known: %v)", part, PartTypes())
}

func CheckVarName(name string) error {
	if !variables[name] {
		return errors.Wrapf(ErrUnknownVariable, "%q", name)
	}
	return nil
}
