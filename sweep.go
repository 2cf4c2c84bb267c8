package solid

import "math"

// SweepOptions configures Sweep and Loft.
type SweepOptions struct {
	// Cap closes the two ends of a swept closed profile along an open path.
	Cap bool

	// Tol is the welding/validation tolerance.
	Tol Tolerance
}

// DefaultSweepOptions returns capped sweeping at the default tolerance.
func DefaultSweepOptions() SweepOptions {
	return SweepOptions{Cap: true, Tol: DefaultTolerance()}
}

// Sweep extrudes a planar profile along an arbitrary polyline path.
//
// The profile is expressed in its own plane and re-planted at every path
// point in a parallel-transport (rotation-minimizing) frame: each step
// rotates the previous frame by the minimal rotation taking the previous
// tangent to the next one. Parallel transport keeps the profile
// orientation continuous along the path, so the surface never
// self-intersects from a sudden frame flip the way a fixed-up-vector
// frame does near vertical tangents.
//
// A closed path yields a closed tube. Transporting a frame around a loop
// brings it back rotated about the start tangent (the loop's holonomy);
// that rotation is distributed evenly along the rings so the tube closes
// without a twist step at the seam.
//
// Fails with *SingularFrameError when the path contains a zero-length step
// or a cusp (tangent reversal), where no continuous frame exists, and with
// *DegenerateProfileError for unusable profiles.
func Sweep(path *Wire, profile *Wire, opts SweepOptions) (*Mesh, error) {
	if err := profile.Check(opts.Tol); err != nil {
		return nil, err
	}
	eps := opts.Tol.resolve(path.Box().Union(profile.Box()))
	if path.Len() < 2 {
		return nil, &DegenerateProfileError{Op: "sweep", Reason: "path has fewer than 2 points"}
	}
	if profile.distinctPoints(eps) < 2 {
		return nil, &DegenerateProfileError{Op: "sweep", Reason: "not enough distinct profile points"}
	}
	nrm, ok := profile.PlaneNormal()
	if !ok {
		return nil, &DegenerateProfileError{Op: "sweep", Reason: "profile is not planar"}
	}

	// Profile in 2D coordinates about its centroid.
	pu, pv := planeBasis(nrm)
	var centroid Vec3
	n := profile.Len()
	for i := 0; i < n; i++ {
		centroid = centroid.Add(profile.At(i))
	}
	centroid = centroid.Div(float64(n))
	prof2 := make([]Vec2, n)
	for i := 0; i < n; i++ {
		prof2[i] = project2(profile.At(i), centroid, pu, pv)
	}

	tangents, err := pathTangents(path, eps)
	if err != nil {
		return nil, err
	}

	// Parallel transport of an initial frame (u, v) perpendicular to the
	// first tangent.
	nPath := path.Len()
	us := make([]Vec3, nPath)
	vs := make([]Vec3, nPath)
	us[0] = tangents[0].Perpendicular()
	vs[0] = tangents[0].Cross(us[0])
	for i := 1; i < nPath; i++ {
		us[i], vs[i] = transportFrame(us[i-1], vs[i-1], tangents[i-1], tangents[i])
	}
	if path.IsClosed() {
		// Transport once more across the wrap: the frame returns rotated
		// about the start tangent by the loop's holonomy (zero only for
		// planar loops). Spread the opposite rotation along the rings so
		// the wrap faces meet ring 0 without a twist step.
		uEnd, _ := transportFrame(us[nPath-1], vs[nPath-1], tangents[nPath-1], tangents[0])
		defect := math.Atan2(tangents[0].Dot(us[0].Cross(uEnd)), us[0].Dot(uEnd))
		if defect != 0 {
			for i := 1; i < nPath; i++ {
				rot := RotateAxis(tangents[i], -defect*float64(i)/float64(nPath))
				us[i] = rot.ApplyDir(us[i])
				vs[i] = rot.ApplyDir(vs[i])
			}
		}
	}

	m := NewMesh()
	for i := 0; i < nPath; i++ {
		for k := 0; k < n; k++ {
			m.AddPoint(path.At(i).Add(us[i].Mul(prof2[k].X)).Add(vs[i].Mul(prof2[k].Y)))
		}
	}

	ringCount := nPath
	ringIndex := func(r, k int) int {
		return (r%ringCount)*n + k
	}
	lastRing := nPath - 1
	if path.IsClosed() {
		lastRing = nPath // wraps to ring 0; holonomy-corrected frames meet it
	}
	for r := 0; r < lastRing; r++ {
		for i := 0; i < profile.SegmentCount(); i++ {
			a := i
			b := (i + 1) % n
			m.AddFace(Triangle{ringIndex(r, a), ringIndex(r, b), ringIndex(r+1, b)}, 0)
			m.AddFace(Triangle{ringIndex(r, a), ringIndex(r+1, b), ringIndex(r+1, a)}, 0)
		}
	}

	if opts.Cap && profile.IsClosed() && !path.IsClosed() {
		tris, terr := triangulateLoop(prof2, eps*eps)
		if terr != nil {
			return nil, terr
		}
		for _, t := range tris {
			m.AddFace(Triangle{ringIndex(0, t[0]), ringIndex(0, t[2]), ringIndex(0, t[1])}, 1)
			m.AddFace(Triangle{ringIndex(lastRing, t[0]), ringIndex(lastRing, t[1]), ringIndex(lastRing, t[2])}, 2)
		}
	}

	return finishOperator("sweep", m, opts.Tol)
}

// pathTangents returns a unit tangent per path point: segment directions at
// the open ends, angle-bisecting averages everywhere else. A closed path
// contributes its wrap segment, so the tangents at the seam bisect too.
func pathTangents(path *Wire, eps float64) ([]Vec3, error) {
	nPath := path.Len()
	segs := make([]Vec3, 0, nPath)
	for i := 0; i < nPath-1; i++ {
		d := path.At(i + 1).Sub(path.At(i))
		if d.Length() <= eps {
			return nil, &SingularFrameError{Index: i, Reason: "zero-length path step"}
		}
		segs = append(segs, d.Normalize())
	}
	if path.IsClosed() {
		d := path.At(0).Sub(path.At(nPath - 1))
		if d.Length() <= eps {
			return nil, &SingularFrameError{Index: nPath - 1, Reason: "zero-length path step"}
		}
		segs = append(segs, d.Normalize())
	}
	for i := 1; i < len(segs); i++ {
		if segs[i-1].Dot(segs[i]) < -1+1e-9 {
			return nil, &SingularFrameError{Index: i, Reason: "tangent reversal (cusp)"}
		}
	}
	if path.IsClosed() && segs[len(segs)-1].Dot(segs[0]) < -1+1e-9 {
		return nil, &SingularFrameError{Index: 0, Reason: "tangent reversal (cusp)"}
	}

	tangents := make([]Vec3, nPath)
	if path.IsClosed() {
		for i := 0; i < nPath; i++ {
			t := segs[(i+nPath-1)%nPath].Add(segs[i])
			if t.Length() <= eps {
				return nil, &SingularFrameError{Index: i, Reason: "undefined tangent at cusp"}
			}
			tangents[i] = t.Normalize()
		}
		return tangents, nil
	}
	tangents[0] = segs[0]
	tangents[nPath-1] = segs[len(segs)-1]
	for i := 1; i < nPath-1; i++ {
		t := segs[i-1].Add(segs[i])
		if t.Length() <= eps {
			return nil, &SingularFrameError{Index: i, Reason: "undefined tangent at cusp"}
		}
		tangents[i] = t.Normalize()
	}
	return tangents, nil
}

// transportFrame rotates a frame by the minimal rotation taking one
// tangent to the next.
func transportFrame(u, v, from, to Vec3) (Vec3, Vec3) {
	axis := from.Cross(to)
	angle := from.Angle(to)
	if axis.LengthSq() == 0 || angle == 0 {
		return u, v
	}
	rot := RotateAxis(axis, angle)
	return rot.ApplyDir(u), rot.ApplyDir(v)
}

// Helix returns an open helical wire around an axis: a convenience path
// for Sweep, used by coil springs. turns may be fractional; samples per
// turn follow the resolution.
func Helix(axis Axis, radius, pitch, turns float64, res Resolution) *Wire {
	ax := axis.Normalized()
	total := 2 * math.Pi * turns
	segs := res.segments(total, radius)
	u, v := planeBasis(ax.Dir)
	pts := make([]Vec3, 0, segs+1)
	for i := 0; i <= segs; i++ {
		t := total * float64(i) / float64(segs)
		h := pitch * t / (2 * math.Pi)
		p := ax.Origin.
			Add(u.Mul(radius * math.Cos(t))).
			Add(v.Mul(radius * math.Sin(t))).
			Add(ax.Dir.Mul(h))
		pts = append(pts, p)
	}
	return NewWire(pts...)
}

// Loft connects a sequence of profile rings with lateral faces, producing
// the surface that interpolates them in order. All profiles must traverse
// the same number of points and agree on closedness; caps close the first
// and last closed rings.
//
// Fails with *DegenerateProfileError on fewer than two profiles, mismatched
// point counts, or mixed open/closed profiles.
func Loft(profiles []*Wire, opts SweepOptions) (*Mesh, error) {
	if len(profiles) < 2 {
		return nil, &DegenerateProfileError{Op: "loft", Reason: "needs at least two profiles"}
	}
	n := profiles[0].Len()
	closed := profiles[0].IsClosed()
	box := EmptyBox()
	for _, p := range profiles {
		if p.Len() != n {
			return nil, &DegenerateProfileError{Op: "loft", Reason: "profiles have mismatched point counts"}
		}
		if p.IsClosed() != closed {
			return nil, &DegenerateProfileError{Op: "loft", Reason: "profiles mix open and closed"}
		}
		if err := p.Check(opts.Tol); err != nil {
			return nil, err
		}
		box = box.Union(p.Box())
	}
	eps := opts.Tol.resolve(box)
	if profiles[0].distinctPoints(eps) < 2 {
		return nil, &DegenerateProfileError{Op: "loft", Reason: "not enough distinct profile points"}
	}

	m := NewMesh()
	for _, p := range profiles {
		for i := 0; i < n; i++ {
			m.AddPoint(p.At(i))
		}
	}
	segCount := profiles[0].SegmentCount()
	for r := 0; r < len(profiles)-1; r++ {
		for i := 0; i < segCount; i++ {
			a := i
			b := (i + 1) % n
			m.AddFace(Triangle{r*n + a, r*n + b, (r+1)*n + b}, 0)
			m.AddFace(Triangle{r*n + a, (r+1)*n + b, (r+1)*n + a}, 0)
		}
	}

	if opts.Cap && closed {
		for end, p := range []*Wire{profiles[0], profiles[len(profiles)-1]} {
			nrm, ok := p.PlaneNormal()
			if !ok {
				return nil, &DegenerateProfileError{Op: "loft", Reason: "cannot cap a non-planar profile"}
			}
			u, v := planeBasis(nrm)
			pts2 := make([]Vec2, n)
			for i := 0; i < n; i++ {
				pts2[i] = project2(p.At(i), p.At(0), u, v)
			}
			tris, err := triangulateLoop(pts2, eps*eps)
			if err != nil {
				return nil, err
			}
			off := 0
			group := 1
			if end == 1 {
				off = (len(profiles) - 1) * n
				group = 2
			}
			for _, t := range tris {
				if end == 0 {
					m.AddFace(Triangle{off + t[0], off + t[2], off + t[1]}, group)
				} else {
					m.AddFace(Triangle{off + t[0], off + t[1], off + t[2]}, group)
				}
			}
		}
	}

	return finishOperator("loft", m, opts.Tol)
}
