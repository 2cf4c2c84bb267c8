package solid

import "math"

// Tolerance controls point welding and intersection classification.
// It is passed explicitly to every operation that needs it; the kernel
// keeps no process-wide tolerance state, so operations stay composable and
// testable in isolation.
//
// If Abs is positive it is used directly. Otherwise the effective epsilon
// is Rel times the diagonal of the geometry's bounding box, so defaults
// behave the same for millimeter-scale and meter-scale models.
type Tolerance struct {
	// Abs is an absolute distance epsilon. Zero means derive from Rel.
	Abs float64

	// Rel is a relative epsilon, scaled by the bounding box diagonal.
	Rel float64
}

// DefaultTolerance returns the tolerance used when the caller has no
// specific requirement: purely relative, 1e-9 of the bounding box diagonal.
func DefaultTolerance() Tolerance {
	return Tolerance{Rel: 1e-9}
}

// WithAbs returns a copy of the Tolerance with a fixed absolute epsilon.
func (t Tolerance) WithAbs(eps float64) Tolerance {
	t.Abs = eps
	return t
}

// WithRel returns a copy of the Tolerance with the given relative epsilon.
func (t Tolerance) WithRel(rel float64) Tolerance {
	t.Rel = rel
	return t
}

// resolve returns the effective epsilon for geometry bounded by b.
// A degenerate (empty or zero-size) box falls back to an absolute 1e-12 so
// the epsilon never collapses to exactly zero.
func (t Tolerance) resolve(b Box) float64 {
	if t.Abs > 0 {
		return t.Abs
	}
	rel := t.Rel
	if rel <= 0 {
		rel = 1e-9
	}
	d := b.Diagonal()
	if d <= 0 {
		return 1e-12
	}
	return rel * d
}

// Resolution controls how finely curved sweeps are sampled.
// The revolution/sweep segment count is not hard-coded; it derives from
// MaxAngle and, when a radius is known, from MaxDeviation.
type Resolution struct {
	// MaxAngle is the largest angular step between consecutive samples,
	// in radians.
	MaxAngle float64

	// MaxDeviation is the largest allowed chord deviation from the true
	// surface. Zero disables the deviation criterion. It only refines the
	// sampling when the operator knows a radius (revolution does, a
	// general sweep does not).
	MaxDeviation float64
}

// DefaultResolution returns the sampling used when the caller has no
// specific requirement: 32 segments per full turn, no deviation bound.
func DefaultResolution() Resolution {
	return Resolution{MaxAngle: 2 * math.Pi / 32}
}

// WithMaxAngle returns a copy of the Resolution with the given angular step.
func (r Resolution) WithMaxAngle(a float64) Resolution {
	r.MaxAngle = a
	return r
}

// WithMaxDeviation returns a copy of the Resolution with the given chord
// deviation bound.
func (r Resolution) WithMaxDeviation(d float64) Resolution {
	r.MaxDeviation = d
	return r
}

// segments returns the number of segments for sweeping through angle
// radians at the given radius. radius <= 0 disables the deviation
// criterion. The result is always at least 1.
func (r Resolution) segments(angle, radius float64) int {
	if angle < 0 {
		angle = -angle
	}
	maxAngle := r.MaxAngle
	if maxAngle <= 0 {
		maxAngle = DefaultResolution().MaxAngle
	}
	if r.MaxDeviation > 0 && radius > r.MaxDeviation {
		// step angle whose chord sagitta stays under MaxDeviation:
		// sagitta = radius * (1 - cos(step/2))
		c := 1 - r.MaxDeviation/radius
		if c > 0 && c < 1 {
			step := 2 * math.Acos(c)
			if step < maxAngle {
				maxAngle = step
			}
		}
	}
	n := int(math.Ceil(angle / maxAngle))
	if n < 1 {
		n = 1
	}
	return n
}
