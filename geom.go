package solid

import "math"

// Low-level geometric predicates for the boolean engine. All predicates
// take the effective epsilon explicitly; robustness depends on every phase
// of the pipeline using the same one.

// rayHit is the outcome of a ray-triangle test.
type rayHit int

const (
	rayMiss rayHit = iota
	rayCross
	// rayGrazing flags numerically unreliable hits: near-parallel rays,
	// hits near a triangle edge or vertex, or hits at the ray origin.
	// Classification retries with a different direction on any grazing hit.
	rayGrazing
)

// rayTriangle intersects a ray with a triangle (Moller-Trumbore).
// Returns the hit parameter t (distance along dir, which must be unit
// length for t to be a distance) and the hit kind.
func rayTriangle(orig, dir, a, b, c Vec3, eps float64) (float64, rayHit) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)

	scale := e1.Length() * e2.Length()
	if math.Abs(det) <= 1e-12*scale {
		// Ray parallel to the triangle plane. If it is far from the
		// plane it simply misses; close to the plane it grazes.
		n := e1.Cross(e2)
		if n.LengthSq() == 0 {
			return 0, rayMiss // degenerate triangle
		}
		dist := math.Abs(orig.Sub(a).Dot(n.Normalize()))
		if dist <= eps {
			return 0, rayGrazing
		}
		return 0, rayMiss
	}

	inv := 1 / det
	s := orig.Sub(a)
	u := s.Dot(p) * inv
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	t := e2.Dot(q) * inv

	// Barycentric tolerance band around edges. Normalize eps to the
	// triangle scale so the band width is a real distance.
	edgeBand := eps / math.Max(math.Sqrt(scale), eps)
	if u < -edgeBand || v < -edgeBand || u+v > 1+edgeBand {
		return 0, rayMiss
	}
	if t <= eps {
		if t >= -eps {
			return t, rayGrazing // origin on the triangle
		}
		return 0, rayMiss // behind the origin
	}
	if u < edgeBand || v < edgeBand || u+v > 1-edgeBand {
		return t, rayGrazing // too close to an edge to trust parity
	}
	return t, rayCross
}

// triPlaneChord returns the chord where a triangle crosses the plane of
// another triangle, given the signed distances of its vertices to that
// plane. ok is false when the triangle does not properly cross.
func triPlaneChord(a, b, c Vec3, da, db, dc, eps float64) (Vec3, Vec3, bool) {
	pts := [3]Vec3{a, b, c}
	ds := [3]float64{da, db, dc}
	var out []Vec3
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		di, dj := ds[i], ds[j]
		if math.Abs(di) <= eps {
			out = append(out, pts[i])
			continue
		}
		if (di > 0) != (dj > 0) && math.Abs(dj) > eps {
			t := di / (di - dj)
			out = append(out, pts[i].Lerp(pts[j], t))
		}
	}
	// Vertex-on-plane cases can duplicate points; dedupe.
	var uniq []Vec3
	for _, p := range out {
		dup := false
		for _, q := range uniq {
			if p.NearEqual(q, eps) {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 2 {
		return Vec3{}, Vec3{}, false
	}
	return uniq[0], uniq[1], true
}

// triTriIntersect computes the intersection segment of two triangles.
// Returns the segment endpoints and kind: none, a proper segment, or
// coplanar overlap (handled separately by classification, since coplanar
// faces are boundary candidates rather than crossing curves).
type triTriKind int

const (
	triTriNone triTriKind = iota
	triTriSegment
	triTriCoplanar
)

func triTriIntersect(a0, a1, a2, b0, b1, b2 Vec3, eps float64) (Vec3, Vec3, triTriKind) {
	nA := a1.Sub(a0).Cross(a2.Sub(a0))
	nB := b1.Sub(b0).Cross(b2.Sub(b0))
	if nA.LengthSq() == 0 || nB.LengthSq() == 0 {
		return Vec3{}, Vec3{}, triTriNone // degenerate input triangle
	}
	nAu := nA.Normalize()
	nBu := nB.Normalize()

	// Signed distances of B's vertices to plane(A).
	db0 := b0.Sub(a0).Dot(nAu)
	db1 := b1.Sub(a0).Dot(nAu)
	db2 := b2.Sub(a0).Dot(nAu)
	if (db0 > eps && db1 > eps && db2 > eps) || (db0 < -eps && db1 < -eps && db2 < -eps) {
		return Vec3{}, Vec3{}, triTriNone
	}
	if math.Abs(db0) <= eps && math.Abs(db1) <= eps && math.Abs(db2) <= eps {
		// Coplanar; report overlap only if the triangles actually touch.
		if coplanarOverlap(a0, a1, a2, b0, b1, b2, nAu, eps) {
			return Vec3{}, Vec3{}, triTriCoplanar
		}
		return Vec3{}, Vec3{}, triTriNone
	}

	da0 := a0.Sub(b0).Dot(nBu)
	da1 := a1.Sub(b0).Dot(nBu)
	da2 := a2.Sub(b0).Dot(nBu)
	if (da0 > eps && da1 > eps && da2 > eps) || (da0 < -eps && da1 < -eps && da2 < -eps) {
		return Vec3{}, Vec3{}, triTriNone
	}

	// Chords of each triangle across the other's plane both lie on the
	// intersection line of the two planes; the segment is their overlap.
	pa0, pa1, okA := triPlaneChord(a0, a1, a2, da0, da1, da2, eps)
	pb0, pb1, okB := triPlaneChord(b0, b1, b2, db0, db1, db2, eps)
	if !okA || !okB {
		return Vec3{}, Vec3{}, triTriNone
	}

	dir := nAu.Cross(nBu)
	if dir.LengthSq() == 0 {
		return Vec3{}, Vec3{}, triTriNone
	}
	dir = dir.Normalize()

	ta0, ta1 := pa0.Dot(dir), pa1.Dot(dir)
	tb0, tb1 := pb0.Dot(dir), pb1.Dot(dir)
	if ta0 > ta1 {
		ta0, ta1 = ta1, ta0
		pa0, pa1 = pa1, pa0
	}
	if tb0 > tb1 {
		tb0, tb1 = tb1, tb0
		pb0, pb1 = pb1, pb0
	}
	lo, hi := math.Max(ta0, tb0), math.Min(ta1, tb1)
	if hi-lo <= eps {
		return Vec3{}, Vec3{}, triTriNone
	}
	// Endpoints of the overlap, picked from whichever chord bounds it.
	var s0, s1 Vec3
	if ta0 >= tb0 {
		s0 = pa0
	} else {
		s0 = pb0
	}
	if ta1 <= tb1 {
		s1 = pa1
	} else {
		s1 = pb1
	}
	return s0, s1, triTriSegment
}

// coplanarOverlap reports whether two coplanar triangles overlap in their
// shared plane. A conservative test: any vertex of one strictly inside the
// other, or any pair of edges crossing.
func coplanarOverlap(a0, a1, a2, b0, b1, b2, n Vec3, eps float64) bool {
	u, v := planeBasis(n)
	pa := [3]Vec2{project2(a0, a0, u, v), project2(a1, a0, u, v), project2(a2, a0, u, v)}
	pb := [3]Vec2{project2(b0, a0, u, v), project2(b1, a0, u, v), project2(b2, a0, u, v)}
	// Normalize both to CCW so pointInTri2 sign conventions hold.
	if signedArea2(pa[:]) < 0 {
		pa[1], pa[2] = pa[2], pa[1]
	}
	if signedArea2(pb[:]) < 0 {
		pb[1], pb[2] = pb[2], pb[1]
	}
	for _, p := range pb {
		if pointInTri2(p, pa[0], pa[1], pa[2], eps) {
			return true
		}
	}
	for _, p := range pa {
		if pointInTri2(p, pb[0], pb[1], pb[2], eps) {
			return true
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if segmentsCross2(pa[i], pa[(i+1)%3], pb[j], pb[(j+1)%3], eps) {
				return true
			}
		}
	}
	// Identical triangles have no strictly-interior vertices and no
	// properly crossing edges; catch them by centroid containment.
	ca := pa[0].Add(pa[1]).Add(pa[2]).Mul(1.0 / 3)
	return pointInTri2(ca, pb[0], pb[1], pb[2], eps)
}

// segmentsCross2 reports whether two 2D segments properly cross.
func segmentsCross2(a0, a1, b0, b1 Vec2, eps float64) bool {
	d1 := a1.Sub(a0).Cross(b0.Sub(a0))
	d2 := a1.Sub(a0).Cross(b1.Sub(a0))
	d3 := b1.Sub(b0).Cross(a0.Sub(b0))
	d4 := b1.Sub(b0).Cross(a1.Sub(b0))
	return ((d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps)) &&
		((d3 > eps && d4 < -eps) || (d3 < -eps && d4 > eps))
}
