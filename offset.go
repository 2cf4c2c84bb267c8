package solid

// OffsetWire returns a new planar wire displaced sideways by dist within
// its own plane, using mitered corners. Positive distances offset toward
// the side the in-plane segment normals point to (left of travel when the
// wire is counter-clockwise about its plane normal); negate dist for the
// other side.
//
// Fails with *DegenerateProfileError for non-planar wires or wires too
// short to carry a direction.
func OffsetWire(w *Wire, dist float64, tol Tolerance) (*Wire, error) {
	if err := w.Check(tol); err != nil {
		return nil, err
	}
	eps := tol.resolve(w.Box())
	if w.distinctPoints(eps) < 2 {
		return nil, &DegenerateProfileError{Op: "offset", Reason: "not enough distinct points"}
	}
	var nrm Vec3
	if n, ok := w.PlaneNormal(); ok {
		nrm = n
	} else if w.Len() == 2 {
		// A bare segment has no Newell normal; any perpendicular plane works.
		nrm = w.At(1).Sub(w.At(0)).Perpendicular()
	} else {
		return nil, &DegenerateProfileError{Op: "offset", Reason: "wire is not planar"}
	}

	n := w.Len()
	// In-plane left normal of each segment.
	segNormal := func(i int) Vec3 {
		a, b := w.Segment(i)
		return nrm.Cross(b.Sub(a)).Normalize()
	}

	pts := make([]Vec3, n)
	for i := 0; i < n; i++ {
		var prev, next Vec3
		hasPrev := w.IsClosed() || i > 0
		hasNext := w.IsClosed() || i < n-1
		if hasPrev {
			prev = segNormal((i + n - 1) % n)
		}
		if hasNext {
			next = segNormal(i % n)
		}
		var dirN Vec3
		switch {
		case hasPrev && hasNext:
			dirN = prev.Add(next)
			if dirN.Length() <= eps {
				return nil, &DegenerateProfileError{Op: "offset", Reason: "cusp corner cannot be mitered"}
			}
			dirN = dirN.Normalize()
			// Miter scale keeps the offset segment distance equal to dist.
			scale := dirN.Dot(next)
			if scale < 1e-3 {
				scale = 1e-3 // clamp extreme spikes
			}
			dirN = dirN.Mul(1 / scale)
		case hasPrev:
			dirN = prev
		default:
			dirN = next
		}
		pts[i] = w.At(i).Add(dirN.Mul(dist))
	}
	out := NewWire(pts...)
	if w.IsClosed() {
		out.Close()
	}
	return out, nil
}

// Thicken turns an open surface mesh into a closed solid shell by
// offsetting every point along its area-weighted vertex normal and
// stitching the boundary loops of the original and offset layers with
// lateral faces. The original surface keeps its groups, the offset layer
// and the stitched rim are appended as new groups.
func Thicken(m *Mesh, dist float64, tol Tolerance) (*Mesh, error) {
	if err := m.check("thicken", tol); err != nil {
		return nil, err
	}
	eps := tol.resolve(m.Box())
	if dist <= eps {
		return nil, &DegenerateProfileError{Op: "thicken", Reason: "offset distance below tolerance"}
	}

	normals := m.VertexNormals()
	out := m.Clone()
	offsetBase := len(m.Points)
	for i, p := range m.Points {
		out.AddPoint(p.Add(normals[i].Mul(dist)))
	}
	offsetGroup := m.maxGroup() + 1
	// Offset layer mirrors the original with reversed winding so its
	// normals face away from the shell interior.
	for _, f := range m.Faces {
		out.AddFace(Triangle{offsetBase + f[0], offsetBase + f[2], offsetBase + f[1]}, offsetGroup)
	}
	// Stitch each boundary loop with a quad strip.
	rimGroup := offsetGroup + 1
	for _, loop := range m.BoundaryLoops() {
		for i := range loop {
			a := loop[i]
			b := loop[(i+1)%len(loop)]
			out.AddFace(Triangle{a, b, offsetBase + b}, rimGroup)
			out.AddFace(Triangle{a, offsetBase + b, offsetBase + a}, rimGroup)
		}
	}
	return finishOperator("thicken", out, tol)
}

// VertexNormals returns a per-point normal averaged over incident faces,
// weighted by face area. Unreferenced points get a zero normal.
func (m *Mesh) VertexNormals() []Vec3 {
	normals := make([]Vec3, len(m.Points))
	for i := range m.Faces {
		av := m.faceAreaVector(i)
		f := m.Faces[i]
		normals[f[0]] = normals[f[0]].Add(av)
		normals[f[1]] = normals[f[1]].Add(av)
		normals[f[2]] = normals[f[2]].Add(av)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
