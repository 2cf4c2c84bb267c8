package solid

// ExtrudeOptions configures Extrude.
type ExtrudeOptions struct {
	// Cap closes the ends of a closed profile with planar caps.
	Cap bool

	// Tol is the welding/validation tolerance.
	Tol Tolerance
}

// DefaultExtrudeOptions returns capped extrusion at the default tolerance.
func DefaultExtrudeOptions() ExtrudeOptions {
	return ExtrudeOptions{Cap: true, Tol: DefaultTolerance()}
}

// Extrude sweeps a profile wire along a straight direction, producing the
// lateral surface plus, for closed profiles with opts.Cap, the two end
// caps. The result is a new mesh with outward-consistent winding; lateral
// faces carry group 0, the start cap group 1, the end cap group 2.
//
// Fails with *DegenerateProfileError when the direction is zero or the
// profile has fewer than 2 distinct points (3 for a capped extrusion).
func Extrude(profile *Wire, dir Vec3, opts ExtrudeOptions) (*Mesh, error) {
	eps := opts.Tol.resolve(profile.Box().Extend(profile.Box().Center().Add(dir)))
	if dir.Length() <= eps {
		return nil, &DegenerateProfileError{Op: "extrude", Reason: "zero extrusion direction"}
	}
	if err := profile.Check(opts.Tol); err != nil {
		return nil, err
	}
	capped := opts.Cap && profile.IsClosed()
	minPts := 2
	if capped {
		minPts = 3
	}
	if profile.distinctPoints(eps) < minPts {
		return nil, &DegenerateProfileError{Op: "extrude", Reason: "not enough distinct profile points"}
	}

	// Orient a closed planar profile counter-clockwise about dir so the
	// lateral winding below faces outward.
	p := profile
	if profile.IsClosed() {
		if nrm, ok := profile.PlaneNormal(); ok && nrm.Dot(dir) < 0 {
			p = profile.Reverse()
		}
	}

	n := p.Len()
	m := NewMesh()
	for i := 0; i < n; i++ {
		m.AddPoint(p.At(i))
	}
	for i := 0; i < n; i++ {
		m.AddPoint(p.At(i).Add(dir))
	}

	// Lateral quads: bottom a->b, top a'->b'. With a CCW profile about dir
	// the pair (a, b, b'), (a, b', a') faces outward.
	for i := 0; i < p.SegmentCount(); i++ {
		a := i
		b := (i + 1) % n
		m.AddFace(Triangle{a, b, n + b}, 0)
		m.AddFace(Triangle{a, n + b, n + a}, 0)
	}

	if capped {
		u, v := planeBasis(dir)
		origin := p.At(0)
		pts2 := make([]Vec2, n)
		for i := 0; i < n; i++ {
			pts2[i] = project2(p.At(i), origin, u, v)
		}
		tris, err := triangulateLoop(pts2, eps*eps)
		if err != nil {
			return nil, err
		}
		for _, t := range tris {
			// CCW in the (u, v, dir) frame means normal along +dir: the
			// top cap keeps it, the bottom cap reverses it.
			m.AddFace(Triangle{t[0], t[2], t[1]}, 1)
			m.AddFace(Triangle{n + t[0], n + t[1], n + t[2]}, 2)
		}
	}

	return finishOperator("extrude", m, opts.Tol)
}

// finishOperator runs the shared operator postlude: cleanup, outward
// orientation for closed results, and the invariant check.
func finishOperator(op string, m *Mesh, tol Tolerance) (*Mesh, error) {
	out := m.Finish(tol).orientConsistent()
	if out.IsClosed() && out.Volume() < 0 {
		out = out.Flip()
	}
	if err := out.check(op, tol); err != nil {
		return nil, err
	}
	return out, nil
}
