package resample

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Transform is the monotonic change of variable applied to a PID response
// before it is binned. It is parametrised by gamma: negative values stretch
// the region near 1, positive values the region near 0, and 0 or 1 mean no
// transformation.
type Transform struct {
	Gamma float64
}

func (t Transform) Identity() bool { return t.Gamma == 0 || t.Gamma == 1 }

func (t Transform) Forward(x float64) float64 {
	switch {
	case t.Identity():
		return x
	case t.Gamma < 0:
		return 1 - math.Pow(1-x, -t.Gamma)
	default:
		return math.Pow(x, t.Gamma)
	}
}

func (t Transform) Backward(x float64) float64 {
	switch {
	case t.Identity():
		return x
	case t.Gamma < 0:
		return 1 - math.Pow(1-x, -1/t.Gamma)
	default:
		return math.Pow(x, 1/t.Gamma)
	}
}

// Range is the PID interval of a calibration in transformed units. Lower is
// the smallest value generated; it is never below Min.
type Range struct {
	Min, Max, Lower float64
}

// NewRange transforms the raw PID limits of a calibration and the optional
// lower PID bound requested by the user.
func NewRange(t Transform, min, max float64, lower *float64) Range {
	low := min
	if lower != nil && *lower > min {
		low = *lower
	}
	return Range{Min: t.Forward(min), Max: t.Forward(max), Lower: t.Forward(low)}
}

func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Validate rejects empty or inverted ranges, e.g. a lower bound at or above
// the upper PID limit.
func (r Range) Validate() error {
	if !(r.Min < r.Max) || !(r.Lower < r.Max) {
		return errors.Newf("empty PID range: min %g, lower %g, max %g", r.Min, r.Lower, r.Max)
	}
	return nil
}
