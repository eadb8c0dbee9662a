package pidperf

import (
	"github.com/op/go-logging"

	"github.com/decibelcooper/pidperf/ntuple"
	"github.com/decibelcooper/pidperf/resample"
)

// ProgressEvery is the event interval of the progress messages.
const ProgressEvery = 1000

// KinematicVars names the input branches the calibration is binned in. An
// empty Eta means eta is computed from P and Pt.
type KinematicVars struct {
	Pt, P, Eta, NTracks string
}

func (v KinematicVars) Branches() []string {
	if v.Eta != "" {
		return []string{v.Pt, v.Eta, v.NTracks}
	}
	return []string{v.Pt, v.P, v.NTracks}
}

// KinematicsReader gives the kinematics of the current input event.
type KinematicsReader struct {
	pt, p, eta, ntr func() float64
}

func NewKinematicsReader(in *ntuple.Input, vars KinematicVars) (*KinematicsReader, error) {
	r := &KinematicsReader{}
	var err error
	if r.pt, err = in.Float(vars.Pt); err != nil {
		return nil, err
	}
	if r.ntr, err = in.Float(vars.NTracks); err != nil {
		return nil, err
	}
	if vars.Eta != "" {
		r.eta, err = in.Float(vars.Eta)
	} else {
		r.p, err = in.Float(vars.P)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *KinematicsReader) Kinematics() resample.Kinematics {
	k := resample.Kinematics{Pt: r.pt(), NTracks: r.ntr()}
	if r.eta != nil {
		k.Eta, k.HasEta = r.eta(), true
	} else {
		k.P = r.p()
	}
	return k
}

// LogSummary reports the counters of a finished resampling run. The
// simulation counters are only reported when withMC is set.
func LogSummary(log *logging.Logger, s resample.Stats, withMC bool) {
	log.Notice("PID resampling finished")
	log.Noticef("  total number of events processed:       %d", s.Events)
	log.Noticef("  events with no calibration:             %d", s.NoCalib)
	log.Noticef("  events with low calib. stats (0<n<%d):  %d", resample.LowStat, s.LowCalib)
	if withMC {
		log.Noticef("  events with no MC:                      %d", s.NoMC)
		log.Noticef("  events with low MC stats (0<n<%d):      %d", resample.LowStat, s.LowMC)
	}
}
