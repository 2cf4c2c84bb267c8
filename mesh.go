package solid

import "math"

// Mesh is a triangulated surface: an owned point buffer plus faces indexing
// into it, with consistent winding (outward normals for closed meshes).
//
// Groups optionally tags each face with a group id (surface provenance,
// material). When non-nil it is parallel to Faces; every operator that
// adds or removes faces carries group ids along.
//
// A Mesh is exclusively owned by its holder. Operators never mutate their
// inputs; editing methods return new meshes.
type Mesh struct {
	Points []Vec3
	Faces  []Triangle
	Groups []int
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// AddPoint appends a point and returns its index.
func (m *Mesh) AddPoint(p Vec3) int {
	m.Points = append(m.Points, p)
	return len(m.Points) - 1
}

// AddFace appends a face with the given group id.
func (m *Mesh) AddFace(f Triangle, group int) {
	if m.Groups == nil && group != 0 {
		m.Groups = make([]int, len(m.Faces))
	}
	m.Faces = append(m.Faces, f)
	if m.Groups != nil {
		m.Groups = append(m.Groups, group)
	}
}

// FaceGroup returns the group id of face i (0 when the mesh is untagged).
func (m *Mesh) FaceGroup(i int) int {
	if m.Groups == nil {
		return 0
	}
	return m.Groups[i]
}

// FacePoints returns the three corner points of face i.
func (m *Mesh) FacePoints(i int) (Vec3, Vec3, Vec3) {
	f := m.Faces[i]
	return m.Points[f[0]], m.Points[f[1]], m.Points[f[2]]
}

// faceAreaVector returns the face's area-weighted normal (half the cross
// product of its edge vectors). Its length is the triangle area.
func (m *Mesh) faceAreaVector(i int) Vec3 {
	a, b, c := m.FacePoints(i)
	return b.Sub(a).Cross(c.Sub(a)).Mul(0.5)
}

// FaceNormal returns the unit normal of face i, zero for a degenerate face.
func (m *Mesh) FaceNormal(i int) Vec3 {
	return m.faceAreaVector(i).Normalize()
}

// FaceArea returns the area of face i.
func (m *Mesh) FaceArea(i int) float64 {
	return m.faceAreaVector(i).Length()
}

// FaceCentroid returns the centroid of face i.
func (m *Mesh) FaceCentroid(i int) Vec3 {
	a, b, c := m.FacePoints(i)
	return a.Add(b).Add(c).Div(3)
}

// Box returns the bounding box of all points.
func (m *Mesh) Box() Box {
	return BoxOf(m.Points...)
}

// Area returns the total surface area.
func (m *Mesh) Area() float64 {
	var total float64
	for i := range m.Faces {
		total += m.FaceArea(i)
	}
	return total
}

// Volume returns the signed volume enclosed by the mesh, by the divergence
// theorem. Positive for a closed mesh with outward winding; meaningless
// for open meshes.
func (m *Mesh) Volume() float64 {
	var total float64
	for _, f := range m.Faces {
		a, b, c := m.Points[f[0]], m.Points[f[1]], m.Points[f[2]]
		total += a.Dot(b.Cross(c))
	}
	return total / 6
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Points: append([]Vec3(nil), m.Points...),
		Faces:  append([]Triangle(nil), m.Faces...),
	}
	if m.Groups != nil {
		out.Groups = append([]int(nil), m.Groups...)
	}
	return out
}

// Flip returns a new mesh with every face winding reversed, turning
// outward normals inward and vice versa.
func (m *Mesh) Flip() *Mesh {
	out := m.Clone()
	for i, f := range out.Faces {
		out.Faces[i] = Triangle{f[0], f[2], f[1]}
	}
	return out
}

// Transform returns a new mesh with every point transformed by t.
// If t flips orientation (negative determinant), face winding is reversed
// so normals keep pointing outward.
func (m *Mesh) Transform(t Transform) *Mesh {
	out := m.Clone()
	for i, p := range out.Points {
		out.Points[i] = t.Apply(p)
	}
	if t.Det() < 0 {
		for i, f := range out.Faces {
			out.Faces[i] = Triangle{f[0], f[2], f[1]}
		}
	}
	return out
}

// maxGroup returns the largest group id in use, or -1 for an untagged mesh
// with no faces.
func (m *Mesh) maxGroup() int {
	if m.Groups == nil {
		if len(m.Faces) == 0 {
			return -1
		}
		return 0
	}
	max := -1
	for _, g := range m.Groups {
		if g > max {
			max = g
		}
	}
	return max
}

// Merge returns a new mesh containing the faces of both meshes. The other
// mesh's point indices are shifted past this mesh's buffer and its group
// ids are shifted past this mesh's largest group, so provenance of every
// face stays distinguishable after the merge.
func (m *Mesh) Merge(o *Mesh) *Mesh {
	out := &Mesh{
		Points: make([]Vec3, 0, len(m.Points)+len(o.Points)),
		Faces:  make([]Triangle, 0, len(m.Faces)+len(o.Faces)),
	}
	out.Points = append(out.Points, m.Points...)
	out.Points = append(out.Points, o.Points...)
	out.Faces = append(out.Faces, m.Faces...)

	off := len(m.Points)
	for _, f := range o.Faces {
		out.Faces = append(out.Faces, Triangle{f[0] + off, f[1] + off, f[2] + off})
	}

	groupOff := m.maxGroup() + 1
	if m.Groups != nil || o.Groups != nil || groupOff > 0 {
		out.Groups = make([]int, 0, len(out.Faces))
		for i := range m.Faces {
			out.Groups = append(out.Groups, m.FaceGroup(i))
		}
		for i := range o.Faces {
			out.Groups = append(out.Groups, o.FaceGroup(i)+groupOff)
		}
	}
	return out
}

// longestEdge returns the length of the longest edge of face i.
func (m *Mesh) longestEdge(i int) float64 {
	a, b, c := m.FacePoints(i)
	return math.Max(a.Distance(b), math.Max(b.Distance(c), c.Distance(a)))
}
