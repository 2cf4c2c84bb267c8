package solid

import "math"

// RevolveOptions configures Revolve.
type RevolveOptions struct {
	// Res controls the angular sampling of the sweep.
	Res Resolution

	// Cap closes the two cross-sections of a partial revolution of a
	// closed profile.
	Cap bool

	// Tol is the welding/validation tolerance.
	Tol Tolerance
}

// DefaultRevolveOptions returns capped revolution at the default sampling
// and tolerance.
func DefaultRevolveOptions() RevolveOptions {
	return RevolveOptions{Res: DefaultResolution(), Cap: true, Tol: DefaultTolerance()}
}

// Revolve sweeps a profile wire around an axis by the given angle in
// radians, producing the lateral surface of revolution. A full-turn angle
// (2*pi within tolerance) welds the seam by construction: the last ring of
// points is the first ring, so the result has no open seam edges. Points
// lying on the axis collapse into the seam and their degenerate faces are
// stripped.
//
// Partial revolutions of a closed profile get the two cross-section caps
// when opts.Cap is set; otherwise the two rims remain open boundary loops.
// Lateral faces carry group 0, the start cap group 1, the end cap group 2.
func Revolve(profile *Wire, axis Axis, angle float64, opts RevolveOptions) (*Mesh, error) {
	ax := axis.Normalized()
	if ax.Dir.LengthSq() == 0 {
		return nil, &DegenerateProfileError{Op: "revolve", Reason: "zero axis direction"}
	}
	if angle <= 0 {
		return nil, &DegenerateProfileError{Op: "revolve", Reason: "non-positive sweep angle"}
	}
	if err := profile.Check(opts.Tol); err != nil {
		return nil, err
	}
	eps := opts.Tol.resolve(profile.Box())
	if profile.distinctPoints(eps) < 2 {
		return nil, &DegenerateProfileError{Op: "revolve", Reason: "not enough distinct profile points"}
	}

	full := math.Abs(angle-2*math.Pi) <= 1e-9
	if full {
		angle = 2 * math.Pi
	}

	// Largest distance from the axis drives the deviation criterion.
	var radius float64
	for i := 0; i < profile.Len(); i++ {
		if r := distanceToAxis(profile.At(i), ax); r > radius {
			radius = r
		}
	}
	if radius <= eps {
		return nil, &DegenerateProfileError{Op: "revolve", Reason: "profile lies on the axis"}
	}
	segs := opts.Res.segments(angle, radius)
	Logger().Debug("solid: revolve", "segments", segs, "full", full, "radius", radius)

	n := profile.Len()
	rings := segs + 1
	if full {
		rings = segs // ring segs wraps to ring 0
	}

	m := NewMesh()
	for k := 0; k < rings; k++ {
		rot := RotateAround(ax, angle*float64(k)/float64(segs))
		for i := 0; i < n; i++ {
			m.AddPoint(rot.Apply(profile.At(i)))
		}
	}
	ringIndex := func(k, i int) int {
		if full {
			k %= segs
		}
		return k*n + i
	}

	for k := 0; k < segs; k++ {
		for i := 0; i < profile.SegmentCount(); i++ {
			a := i
			b := (i + 1) % n
			// Quad between ring k and k+1 along profile segment a->b.
			m.AddFace(Triangle{ringIndex(k, a), ringIndex(k, b), ringIndex(k+1, b)}, 0)
			m.AddFace(Triangle{ringIndex(k, a), ringIndex(k+1, b), ringIndex(k+1, a)}, 0)
		}
	}

	if !full && opts.Cap && profile.IsClosed() {
		nrm, ok := profile.PlaneNormal()
		if !ok {
			return nil, &DegenerateProfileError{Op: "revolve", Reason: "cannot cap a non-planar profile"}
		}
		u, v := planeBasis(nrm)
		origin := profile.At(0)
		pts2 := make([]Vec2, n)
		for i := 0; i < n; i++ {
			pts2[i] = project2(profile.At(i), origin, u, v)
		}
		tris, err := triangulateLoop(pts2, eps*eps)
		if err != nil {
			return nil, err
		}
		for _, t := range tris {
			m.AddFace(Triangle{ringIndex(0, t[0]), ringIndex(0, t[1]), ringIndex(0, t[2])}, 1)
			m.AddFace(Triangle{ringIndex(segs, t[0]), ringIndex(segs, t[2]), ringIndex(segs, t[1])}, 2)
		}
	}

	return finishOperator("revolve", m, opts.Tol)
}

// distanceToAxis returns the distance from a point to a normalized axis.
func distanceToAxis(p Vec3, ax Axis) float64 {
	d := p.Sub(ax.Origin)
	return d.Sub(ax.Dir.Mul(d.Dot(ax.Dir))).Length()
}
