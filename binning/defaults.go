package binning

import (
	"strings"
	"sync"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with the stock schemes. It is
// built on first use and may be extended by the caller.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewStockRegistry()
	})
	return defaultRegistry
}

type builder struct {
	r *Registry
}

func (b builder) scheme(part, varName, scheme string, min, max float64) {
	b.replace(part, varName, scheme, min, max, false)
}

func (b builder) replace(part, varName, scheme string, min, max float64, replace bool) {
	if err := b.r.Add(part, varName, scheme, min, max, replace); err != nil {
		panic(err)
	}
}

func (b builder) uniform(part, varName, scheme string, n int, lo, hi float64) {
	b.scheme(part, varName, scheme, lo, hi)
	if err := b.r.AddUniformBins(part, varName, scheme, n, lo, hi); err != nil {
		panic(err)
	}
}

func (b builder) boundaries(part, varName, scheme string, bounds ...float64) {
	for _, x := range bounds {
		if err := b.r.AddBoundary(part, varName, scheme, x); err != nil {
			panic(err)
		}
	}
}

func (b builder) setDefault(part, scheme string, vars ...string) {
	for _, v := range vars {
		if err := b.r.SetDefault(part, v, scheme); err != nil {
			panic(err)
		}
	}
}

// both applies fn to a variable and its offline (Brunel) counterpart.
func both(varName string, fn func(string)) {
	fn(varName)
	if varName == "nTracks" {
		fn("nTracks_Brunel")
		return
	}
	fn("Brunel_" + varName)
}

// Kaon Cherenkov thresholds in RICH1 and RICH2 (MeV/c).
const (
	rich1KaonThreshold = 9300
	rich2KaonThreshold = 15600
)

// NewStockRegistry builds a fresh registry holding the stock schemes.
func NewStockRegistry() *Registry {
	b := builder{NewRegistry()}

	for _, part := range PartTypes() {
		both("P", func(v string) {
			b.uniform(part, v, "highres", 500, 3000, 200000)
			b.boundaries(part, v, "highres", rich1KaonThreshold, rich2KaonThreshold)
		})
		both("ETA", func(v string) { b.uniform(part, v, "highres", 500, 1.5, 5) })
		both("nTracks", func(v string) { b.uniform(part, v, "highres", 500, 0, 500) })
		b.uniform(part, "nSPDHits", "highres", 500, 0, 500)
		b.uniform(part, "nVeloClusters", "highres", 500, 0, 10000)
	}

	for _, part := range richPartTypes {
		both("P", func(v string) {
			b.scheme(part, v, "DLLKpi", 3000, 100000)
			b.boundaries(part, v, "DLLKpi", rich1KaonThreshold, rich2KaonThreshold)
			if err := b.r.AddUniformBins(part, v, "DLLKpi", 15, 19000, 100000); err != nil {
				panic(err)
			}
		})
		both("ETA", func(v string) { b.uniform(part, v, "DLLKpi", 4, 1.5, 5) })
		both("nTracks", func(v string) {
			b.scheme(part, v, "DLLKpi", 0, 500)
			b.boundaries(part, v, "DLLKpi", 50, 200, 300)
		})
		b.uniform(part, "nSPDHits", "DLLKpi", 5, 0, 1000)
		b.uniform(part, "nVeloClusters", "DLLKpi", 5, 0, 10000)
	}

	for _, part := range muonPartTypes {
		both("P", func(v string) {
			b.scheme(part, v, "DLLKpi_MuonUnBiased", 3000, 100000)
			b.boundaries(part, v, "DLLKpi_MuonUnBiased",
				6000, 8000, 10000, 12000, 14500, 17500, 21500, 27000, 32000, 40000, 60000, 70000)
		})
		both("ETA", func(v string) { b.uniform(part, v, "DLLKpi_MuonUnBiased", 4, 1.5, 5) })
		both("nTracks", func(v string) {
			b.scheme(part, v, "DLLKpi_MuonUnBiased", 0, 500)
			b.boundaries(part, v, "DLLKpi_MuonUnBiased", 50, 200, 300)
		})
	}

	perfPlots := []struct {
		scheme string
		parts  []string
		pMin   float64
		nP     int
	}{
		{"PerfPlots_KPi", []string{"K", "Pi"}, 2000, 40},
		{"PerfPlots_PPi", []string{"P", "Pi"}, 5000, 38},
		{"PerfPlots_MuK_MuonUnBiased", []string{"Mu", "K_MuonUnBiased"}, 2000, 40},
		{"PerfPlots_MuPi_MuonUnBiased", []string{"Mu", "Pi_MuonUnBiased"}, 2000, 40},
		{"PerfPlots_MuP_MuonUnBiased", []string{"Mu", "P_MuonUnBiased"}, 2000, 40},
		{"PerfPlots_ePi", []string{"e", "Pi"}, 5000, 38},
	}
	for _, pp := range perfPlots {
		for _, part := range pp.parts {
			both("P", func(v string) { b.uniform(part, v, pp.scheme, pp.nP, pp.pMin, 100000) })
			both("ETA", func(v string) { b.uniform(part, v, pp.scheme, 35, 1.5, 5) })
			both("nTracks", func(v string) { b.uniform(part, v, pp.scheme, 50, 0, 500) })
		}
	}

	for _, part := range PartTypes() {
		addPartPerfPlots(b, part)
	}

	for _, part := range richPartTypes {
		b.setDefault(part, "DLLKpi", "P", "Brunel_P", "ETA", "Brunel_ETA",
			"nTracks", "nTracks_Brunel", "nSPDHits", "nVeloClusters")
	}
	for _, part := range muonPartTypes {
		b.setDefault(part, "DLLKpi_MuonUnBiased", "P", "Brunel_P", "ETA", "Brunel_ETA",
			"nTracks", "nTracks_Brunel")
	}

	return b.r
}

func addPartPerfPlots(b builder, part string) {
	scheme := "PerfPlots_" + part

	both("P", func(v string) { b.uniform(part, v, scheme, 20, 0, 100000) })
	both("PT", func(v string) { b.uniform(part, v, scheme, 20, 0, 15000) })
	both("ETA", func(v string) { b.uniform(part, v, scheme, 20, 1.5, 5) })
	both("PHI", func(v string) { b.uniform(part, v, scheme, 20, -3.14159, 3.14159) })
	b.uniform(part, "runNumber", scheme, 100, 87660, 104300)

	for _, species := range realPartTypes {
		p := strings.ToLower(species)
		if p == "k" {
			p = "K"
		}
		if p != "pi" {
			b.uniform(part, "DLL"+p, scheme, 100, -100, 100)
		}
		for _, tune := range pidTunes {
			both(tune+"_ProbNN"+p, func(v string) { b.uniform(part, v, scheme, 20, 0, 1) })
		}
		if p != "mu" {
			b.uniform(part, "RICHThreshold_"+p, scheme, 4, -2, 2)
		}
	}

	b.uniform(part, "Brunel_MC15TuneV1_ProbNNd", scheme, 20, 0, 1)

	// The electron DLL gets a narrower range than the other DLLs.
	both("DLLe", func(v string) {
		b.replace(part, v, scheme, -15, 20, true)
		if err := b.r.AddUniformBins(part, v, scheme, 100, -15, 20); err != nil {
			panic(err)
		}
	})

	for _, flag := range []string{"InMuonAcc", "IsMuon", "IsMuonLoose", "RICHAerogelUsed",
		"RICH1GasUsed", "RICH2GasUsed", "HasRich", "HasCalo"} {
		both(flag, func(v string) { b.uniform(part, v, scheme, 2, 0, 2) })
	}
	both("nShared", func(v string) { b.uniform(part, v, scheme, 50, 0, 200) })

	both("nTracks", func(v string) { b.uniform(part, v, scheme, 20, 0, 500) })
	b.uniform(part, "nSPDHits", scheme, 20, 0, 1000)
	b.uniform(part, "nVeloClusters", scheme, 20, 0, 10000)
	b.uniform(part, "nRich1Hits", scheme, 20, 0, 10000)
	b.uniform(part, "nRich2Hits", scheme, 20, 0, 8000)
}
