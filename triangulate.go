package solid

// Planar polygon triangulation by ear clipping, used for profile caps and
// for re-triangulating faces crossed by boolean intersection curves.
// Kernel polygons are simple (no self-intersection, no holes), which keeps
// ear clipping sufficient and avoids a full tessellation dependency.

// planeBasis returns two orthonormal vectors spanning the plane with the
// given normal, forming a right-handed (u, v, n) frame.
func planeBasis(n Vec3) (Vec3, Vec3) {
	u := n.Perpendicular()
	v := n.Normalize().Cross(u)
	return u, v
}

// project2 maps a 3D point into the 2D frame (origin, u, v).
func project2(p, origin, u, v Vec3) Vec2 {
	d := p.Sub(origin)
	return Vec2{X: d.Dot(u), Y: d.Dot(v)}
}

// signedArea2 returns the signed area of a 2D polygon, positive when the
// loop runs counter-clockwise.
func signedArea2(pts []Vec2) float64 {
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].Cross(pts[j])
	}
	return area / 2
}

// pointInTri2 reports whether p lies strictly inside triangle abc (CCW).
func pointInTri2(p, a, b, c Vec2, eps float64) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 > eps && d2 > eps && d3 > eps
}

// triangulateLoop triangulates a simple polygon given as an ordered 2D
// loop, returning triangles as index triples into pts. The output triangles
// are counter-clockwise in the 2D frame regardless of the input winding.
// Fails when fewer than three distinct points remain or no ear can be
// clipped (self-intersecting input).
func triangulateLoop(pts []Vec2, eps float64) ([][3]int, error) {
	n := len(pts)
	if n < 3 {
		return nil, &DegenerateProfileError{Op: "triangulate", Reason: "fewer than 3 points"}
	}

	// Work on an index list so output indices refer to the caller's order.
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		idx = append(idx, i)
	}
	// Normalize to CCW traversal.
	if signedArea2(pts) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	out := make([][3]int, 0, n-2)
	guard := 0
	for len(idx) > 3 {
		if guard++; guard > n*n {
			return nil, &DegenerateProfileError{Op: "triangulate", Reason: "no ear found (self-intersecting polygon?)"}
		}
		clipped := false
		for i := 0; i < len(idx); i++ {
			ia := idx[(i+len(idx)-1)%len(idx)]
			ib := idx[i]
			ic := idx[(i+1)%len(idx)]
			a, b, c := pts[ia], pts[ib], pts[ic]

			// Convex corner?
			if b.Sub(a).Cross(c.Sub(b)) <= eps {
				continue
			}
			// No other vertex inside the candidate ear?
			blocked := false
			for _, io := range idx {
				if io == ia || io == ib || io == ic {
					continue
				}
				if pointInTri2(pts[io], a, b, c, -eps) {
					blocked = true
					break
				}
			}
			if blocked {
				continue
			}
			out = append(out, [3]int{ia, ib, ic})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Collinear runs can leave no strictly convex ear; clip the
			// least-bad corner to make progress on valid input.
			best, bestCross := -1, 0.0
			for i := 0; i < len(idx); i++ {
				a := pts[idx[(i+len(idx)-1)%len(idx)]]
				b := pts[idx[i]]
				c := pts[idx[(i+1)%len(idx)]]
				cr := b.Sub(a).Cross(c.Sub(b))
				if best == -1 || cr > bestCross {
					best, bestCross = i, cr
				}
			}
			if best < 0 {
				return nil, &DegenerateProfileError{Op: "triangulate", Reason: "unable to triangulate polygon"}
			}
			ia := idx[(best+len(idx)-1)%len(idx)]
			ib := idx[best]
			ic := idx[(best+1)%len(idx)]
			out = append(out, [3]int{ia, ib, ic})
			idx = append(idx[:best], idx[best+1:]...)
		}
	}
	out = append(out, [3]int{idx[0], idx[1], idx[2]})
	return out, nil
}
