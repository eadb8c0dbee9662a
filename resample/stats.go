package resample

// LowStat is the slice integral below which the calibration statistics of
// an event are considered low.
const LowStat = 10

type Stats struct {
	Events   int
	NoCalib  int
	LowCalib int
	NoMC     int
	LowMC    int
}

func count(integral float64, none, low *int) {
	switch {
	case integral == 0:
		*none++
	case integral < LowStat:
		*low++
	}
}
