package solid

import "math"

// Editing passes over meshes: welding near-duplicate points, stripping
// degenerate faces, and compacting unreferenced points. All return new
// meshes and preserve group ids.

// WeldClose returns a new mesh with points closer than the tolerance merged
// into one representative and faces reindexed accordingly. Faces collapsed
// by the merge are not removed here; StripDegenerate handles them.
func (m *Mesh) WeldClose(tol Tolerance) *Mesh {
	eps := tol.resolve(m.Box())
	return m.weldEps(eps)
}

// weldEps is WeldClose with a resolved absolute epsilon.
func (m *Mesh) weldEps(eps float64) *Mesh {
	if eps <= 0 || len(m.Points) == 0 {
		return m.Clone()
	}

	// Spatial hash with cell size eps: a point's match, if any, lies in
	// one of the 27 neighboring cells.
	type cell struct{ x, y, z int32 }
	cellOf := func(p Vec3) cell {
		return cell{
			x: int32(math.Floor(p.X / eps)),
			y: int32(math.Floor(p.Y / eps)),
			z: int32(math.Floor(p.Z / eps)),
		}
	}
	grid := make(map[cell][]int, len(m.Points))
	remap := make([]int, len(m.Points))
	reps := make([]Vec3, 0, len(m.Points))

	for i, p := range m.Points {
		c := cellOf(p)
		found := -1
	search:
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				for dz := int32(-1); dz <= 1; dz++ {
					for _, r := range grid[cell{c.x + dx, c.y + dy, c.z + dz}] {
						if reps[r].NearEqual(p, eps) {
							found = r
							break search
						}
					}
				}
			}
		}
		if found >= 0 {
			remap[i] = found
			continue
		}
		r := len(reps)
		reps = append(reps, p)
		grid[c] = append(grid[c], r)
		remap[i] = r
	}

	out := &Mesh{
		Points: reps,
		Faces:  make([]Triangle, len(m.Faces)),
	}
	for i, f := range m.Faces {
		out.Faces[i] = Triangle{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	if m.Groups != nil {
		out.Groups = append([]int(nil), m.Groups...)
	}
	return out
}

// StripDegenerate returns a new mesh without degenerate faces: faces with
// a repeated point index, or with area negligible relative to their edge
// length at the tolerance.
func (m *Mesh) StripDegenerate(tol Tolerance) *Mesh {
	eps := tol.resolve(m.Box())
	out := &Mesh{Points: append([]Vec3(nil), m.Points...)}
	if m.Groups != nil {
		out.Groups = make([]int, 0, len(m.Faces))
	}
	for i, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		// A sliver thinner than eps across its longest edge is degenerate:
		// area = base * height / 2, so height = 2*area/base.
		base := m.longestEdge(i)
		if base <= eps || 2*m.FaceArea(i)/base <= eps {
			continue
		}
		out.Faces = append(out.Faces, f)
		if out.Groups != nil {
			out.Groups = append(out.Groups, m.FaceGroup(i))
		}
	}
	return out
}

// Compact returns a new mesh whose point buffer holds only points
// referenced by at least one face, reindexed densely.
func (m *Mesh) Compact() *Mesh {
	used := make([]bool, len(m.Points))
	for _, f := range m.Faces {
		used[f[0]], used[f[1]], used[f[2]] = true, true, true
	}
	remap := make([]int, len(m.Points))
	out := &Mesh{Faces: make([]Triangle, len(m.Faces))}
	for i, p := range m.Points {
		if used[i] {
			remap[i] = len(out.Points)
			out.Points = append(out.Points, p)
		} else {
			remap[i] = -1
		}
	}
	for i, f := range m.Faces {
		out.Faces[i] = Triangle{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	if m.Groups != nil {
		out.Groups = append([]int(nil), m.Groups...)
	}
	return out
}

// Finish runs the standard cleanup pipeline — weld, strip degenerates,
// compact — and returns the cleaned mesh. Construction operators call it
// before returning; callers assembling meshes by hand should too.
func (m *Mesh) Finish(tol Tolerance) *Mesh {
	eps := tol.resolve(m.Box())
	out := m.weldEps(eps).StripDegenerate(Tolerance{Abs: eps}).Compact()
	Logger().Debug("solid: finish",
		"points", len(m.Points), "faces", len(m.Faces),
		"outPoints", len(out.Points), "outFaces", len(out.Faces))
	return out
}
