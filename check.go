package solid

// Check verifies the mesh invariants required of a closed manifold solid:
//
//   - every face index is in range
//   - no face is degenerate (repeated vertex or negligible area)
//   - every edge is shared by at most two faces
//   - an edge shared by two faces is traversed in opposite directions by
//     them (consistent winding)
//
// It returns a *NonManifoldError describing the first violation found, or
// nil. Open meshes (surfaces with boundary) pass Check; use IsClosed to
// additionally require water-tightness.
func (m *Mesh) Check(tol Tolerance) error {
	return m.check("mesh", tol)
}

// check is Check with a caller-supplied tag naming the mesh in errors.
func (m *Mesh) check(name string, tol Tolerance) error {
	eps := tol.resolve(m.Box())

	for _, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Points) {
				return &NonManifoldError{Mesh: name, Reason: "face index out of range"}
			}
		}
	}
	if m.Groups != nil && len(m.Groups) != len(m.Faces) {
		return &NonManifoldError{Mesh: name, Reason: "group buffer length does not match face buffer"}
	}

	for i, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return &NonManifoldError{Mesh: name, Reason: "face with repeated vertex",
				Edges: []Edge{{f[0], f[1]}}}
		}
		base := m.longestEdge(i)
		if base <= eps || 2*m.FaceArea(i)/base <= eps {
			return &NonManifoldError{Mesh: name, Reason: "degenerate face",
				Edges: []Edge{{f[0], f[1]}}}
		}
	}

	// dir[key] sums traversal directions: +1 for min->max, -1 for max->min.
	// A manifold interior edge ends at count 2 and dir 0.
	count := make(map[Edge]int, len(m.Faces)*3/2)
	dir := make(map[Edge]int, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for k := 0; k < 3; k++ {
			e := Edge{f[k], f[(k+1)%3]}
			key := e.canonical()
			count[key]++
			if e == key {
				dir[key]++
			} else {
				dir[key]--
			}
		}
	}
	var bad []Edge
	for key, n := range count {
		if n > 2 {
			bad = append(bad, key)
			if len(bad) >= 8 {
				break
			}
		}
	}
	if len(bad) > 0 {
		return &NonManifoldError{Mesh: name, Reason: "edge shared by more than two faces", Edges: bad}
	}
	for key, n := range count {
		if n == 2 && dir[key] != 0 {
			bad = append(bad, key)
			if len(bad) >= 8 {
				break
			}
		}
	}
	if len(bad) > 0 {
		return &NonManifoldError{Mesh: name, Reason: "shared edge without opposite winding", Edges: bad}
	}
	return nil
}

// IsManifold reports whether Check passes.
func (m *Mesh) IsManifold(tol Tolerance) bool {
	return m.Check(tol) == nil
}
