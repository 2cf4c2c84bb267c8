package solid

import "math"

// Face re-triangulation: every face crossed by intersection segments is
// split so the intersection curve lies exactly on edges of the result.
// The work happens in the face plane in 2D; pieces are lifted back to 3D
// through the same orthonormal frame, so lifted points are exact for the
// segment endpoints shared with the other mesh up to the weld tolerance.

// splitFaces returns a new mesh in which each face listed in segs has been
// re-triangulated around its intersection segments. Groups carry over to
// every piece.
func splitFaces(m *Mesh, segs map[int][][2]Vec3, eps float64) *Mesh {
	out := &Mesh{Points: append([]Vec3(nil), m.Points...)}
	if m.Groups != nil {
		out.Groups = []int{}
	}

	addFace := func(a, b, c int, group int) {
		out.Faces = append(out.Faces, Triangle{a, b, c})
		if out.Groups != nil {
			out.Groups = append(out.Groups, group)
		}
	}

	for fi, f := range m.Faces {
		cuts := segs[fi]
		if len(cuts) == 0 {
			addFace(f[0], f[1], f[2], m.FaceGroup(fi))
			continue
		}
		a, b, c := m.FacePoints(fi)
		n := b.Sub(a).Cross(c.Sub(a))
		if n.LengthSq() == 0 {
			addFace(f[0], f[1], f[2], m.FaceGroup(fi))
			continue
		}
		u, v := planeBasis(n)
		origin := a
		lift := func(p Vec2) Vec3 {
			return origin.Add(u.Mul(p.X)).Add(v.Mul(p.Y))
		}

		tris := [][3]Vec2{{
			project2(a, origin, u, v),
			project2(b, origin, u, v),
			project2(c, origin, u, v),
		}}
		for _, cut := range cuts {
			q0 := project2(cut[0], origin, u, v)
			q1 := project2(cut[1], origin, u, v)
			var next [][3]Vec2
			for _, t := range tris {
				next = append(next, splitTri2(t, q0, q1, eps)...)
			}
			tris = next
		}

		for _, t := range tris {
			// Drop slivers the cutting produced; welding cannot save a
			// zero-area piece.
			if math.Abs(signedArea2(t[:])) <= eps*eps {
				continue
			}
			i0 := out.AddPoint(lift(t[0]))
			i1 := out.AddPoint(lift(t[1]))
			i2 := out.AddPoint(lift(t[2]))
			addFace(i0, i1, i2, m.FaceGroup(fi))
		}
	}
	return propagateEdgeCuts(out, len(m.Points), eps)
}

// propagateEdgeCuts subdivides every face edge that passes through a cut
// vertex inserted while re-triangulating some other face. Faces are cut
// independently in their own plane, so a vertex placed on a shared edge
// exists on one side only until the neighbor's edge is split at it;
// without this pass the two sides subdivide the edge at different
// parameters and the seam weld cannot close the T-junctions. Points below
// firstCut predate the split and never land inside an edge.
func propagateEdgeCuts(m *Mesh, firstCut int, eps float64) *Mesh {
	for {
		out := &Mesh{Points: m.Points}
		if m.Groups != nil {
			out.Groups = []int{}
		}
		changed := false
		for fi, f := range m.Faces {
			split := false
			for e := 0; e < 3 && !split; e++ {
				i0, i1 := f[e], f[(e+1)%3]
				a, b := m.Points[i0], m.Points[i1]
				ab := b.Sub(a)
				l := ab.Length()
				if l <= eps {
					continue
				}
				for pi := firstCut; pi < len(m.Points) && !split; pi++ {
					if pi == i0 || pi == i1 {
						continue
					}
					p := m.Points[pi]
					tp := p.Sub(a).Dot(ab) / (l * l)
					if tp*l <= eps || (1-tp)*l <= eps {
						continue
					}
					if p.Sub(a.Add(ab.Mul(tp))).Length() > eps {
						continue
					}
					i2 := f[(e+2)%3]
					out.AddFace(Triangle{i0, pi, i2}, m.FaceGroup(fi))
					out.AddFace(Triangle{pi, i1, i2}, m.FaceGroup(fi))
					split = true
					changed = true
				}
			}
			if !split {
				out.AddFace(f, m.FaceGroup(fi))
			}
		}
		if !changed {
			return m
		}
		// A face split once may still carry cut vertices on its other
		// edges; sweep again until nothing moves.
		m = out
	}
}

// clipSegTri2 clips segment q0-q1 against a CCW triangle's three
// half-planes. ok is false when nothing of the segment lies inside.
func clipSegTri2(t [3]Vec2, q0, q1 Vec2, eps float64) (Vec2, Vec2, bool) {
	t0, t1 := 0.0, 1.0
	d := q1.Sub(q0)
	for i := 0; i < 3; i++ {
		a := t[i]
		b := t[(i+1)%3]
		edge := b.Sub(a)
		// Inside is the left side for a CCW triangle.
		num := edge.Cross(q0.Sub(a))
		den := edge.Cross(d)
		if math.Abs(den) <= 1e-15 {
			if num < -eps {
				return Vec2{}, Vec2{}, false // parallel and outside
			}
			continue
		}
		tc := -num / den
		if den > 0 {
			// num + t*den grows into the inside half-plane: entering.
			if tc > t0 {
				t0 = tc
			}
		} else {
			if tc < t1 {
				t1 = tc
			}
		}
		if t0 > t1 {
			return Vec2{}, Vec2{}, false
		}
	}
	p0 := q0.Add(d.Mul(t0))
	p1 := q0.Add(d.Mul(t1))
	if p0.Distance(p1) <= eps {
		return Vec2{}, Vec2{}, false
	}
	return p0, p1, true
}

// splitTri2 splits a single 2D triangle by a segment, returning triangles
// that cover the input exactly, with the clipped segment lying on edges of
// the result. The input triangle may have either winding; pieces keep it.
func splitTri2(t [3]Vec2, q0, q1 Vec2, eps float64) [][3]Vec2 {
	// Work in CCW; restore winding when emitting.
	flipped := false
	if signedArea2(t[:]) < 0 {
		t[1], t[2] = t[2], t[1]
		flipped = true
	}
	emit := func(tris [][3]Vec2) [][3]Vec2 {
		if !flipped {
			return tris
		}
		for i := range tris {
			tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
		}
		return tris
	}

	p0, p1, ok := clipSegTri2(t, q0, q1, eps)
	if !ok {
		return emit([][3]Vec2{t})
	}

	interior := func(p Vec2) bool {
		return pointInTri2(p, t[0], t[1], t[2], eps)
	}
	// An endpoint strictly inside the face: fan it to the corners, then
	// split each fan piece by the remaining segment. Recursion terminates
	// because the endpoint becomes a vertex of every piece.
	if interior(p0) {
		return emit(splitFan(t, p0, p1, eps))
	}
	if interior(p1) {
		return emit(splitFan(t, p1, p0, eps))
	}

	// Both endpoints on the boundary: build the polygon with the endpoints
	// inserted on their edges, cut it along p0-p1, fan both halves.
	poly := insertOnBoundary(t, p0, eps)
	poly = insertOnBoundaryPoly(poly, p1, eps)
	i0 := indexNear(poly, p0, eps)
	i1 := indexNear(poly, p1, eps)
	if i0 < 0 || i1 < 0 || i0 == i1 || adjacent(len(poly), i0, i1) {
		return emit([][3]Vec2{t}) // chord degenerates to an existing edge
	}
	var left, right []Vec2
	for i := i0; ; i = (i + 1) % len(poly) {
		left = append(left, poly[i])
		if i == i1 {
			break
		}
	}
	for i := i1; ; i = (i + 1) % len(poly) {
		right = append(right, poly[i])
		if i == i0 {
			break
		}
	}
	out := fanPoly(left)
	out = append(out, fanPoly(right)...)
	return emit(out)
}

// splitFan fans an interior point to the triangle corners, then recurses
// the segment into each piece.
func splitFan(t [3]Vec2, inside, other Vec2, eps float64) [][3]Vec2 {
	pieces := [][3]Vec2{
		{t[0], t[1], inside},
		{t[1], t[2], inside},
		{t[2], t[0], inside},
	}
	var out [][3]Vec2
	for _, p := range pieces {
		if math.Abs(signedArea2(p[:])) <= eps*eps {
			continue
		}
		out = append(out, splitTri2(p, inside, other, eps)...)
	}
	return out
}

// insertOnBoundary inserts a point lying on one of the triangle's edges
// into its vertex loop, returning the polygon.
func insertOnBoundary(t [3]Vec2, p Vec2, eps float64) []Vec2 {
	return insertOnBoundaryPoly(t[:], p, eps)
}

// insertOnBoundaryPoly inserts p into the polygon edge it lies on. If p
// coincides with an existing vertex, the polygon is returned unchanged.
func insertOnBoundaryPoly(poly []Vec2, p Vec2, eps float64) []Vec2 {
	for _, q := range poly {
		if q.Distance(p) <= eps {
			return poly
		}
	}
	for i := 0; i < len(poly); i++ {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		ab := b.Sub(a)
		l := ab.Length()
		if l == 0 {
			continue
		}
		tpar := p.Sub(a).Dot(ab) / (l * l)
		if tpar <= 0 || tpar >= 1 {
			continue
		}
		if math.Abs(ab.Cross(p.Sub(a)))/l <= eps {
			out := make([]Vec2, 0, len(poly)+1)
			out = append(out, poly[:i+1]...)
			out = append(out, p)
			out = append(out, poly[i+1:]...)
			return out
		}
	}
	return poly
}

// indexNear returns the polygon index of the vertex within eps of p.
func indexNear(poly []Vec2, p Vec2, eps float64) int {
	for i, q := range poly {
		if q.Distance(p) <= eps {
			return i
		}
	}
	return -1
}

// adjacent reports whether two indices are neighbors on a ring of size n.
func adjacent(n, i, j int) bool {
	return (i+1)%n == j || (j+1)%n == i
}

// fanPoly fan-triangulates a convex polygon from its first vertex.
// The polygons produced by chord-cutting a triangle are convex, so a fan
// is exact.
func fanPoly(poly []Vec2) [][3]Vec2 {
	var out [][3]Vec2
	for i := 1; i+1 < len(poly); i++ {
		out = append(out, [3]Vec2{poly[0], poly[i], poly[i+1]})
	}
	return out
}
