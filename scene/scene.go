// Package scene is the narrow boundary through which viewers and file
// exporters consume finished kernel meshes: flat, render-ready buffers
// with no mutation path back into the kernel, plus a checked import path
// for adapters constructing meshes from external data.
package scene

import (
	"fmt"

	"github.com/gogpu/solid"
)

// Snapshot is a finalized mesh in the flat layout GPU uploads and file
// exporters want: three floats per vertex position and normal, three
// indices per triangle, one group id per triangle for styling. A Snapshot
// is a copy; editing it never affects the kernel mesh it came from.
type Snapshot struct {
	Positions []float32 // x0,y0,z0, x1,y1,z1, ...
	Normals   []float32 // per vertex, matching Positions
	Indices   []uint32  // i0,i1,i2 per triangle
	Groups    []uint32  // per triangle
}

// VertexCount returns the number of vertices.
func (s *Snapshot) VertexCount() int { return len(s.Positions) / 3 }

// TriangleCount returns the number of triangles.
func (s *Snapshot) TriangleCount() int { return len(s.Indices) / 3 }

// Capture copies a mesh into a Snapshot with smooth shading: one vertex
// per mesh point, normals averaged over incident faces weighted by area.
func Capture(m *solid.Mesh) Snapshot {
	normals := m.VertexNormals()
	s := Snapshot{
		Positions: make([]float32, 0, len(m.Points)*3),
		Normals:   make([]float32, 0, len(m.Points)*3),
		Indices:   make([]uint32, 0, len(m.Faces)*3),
		Groups:    make([]uint32, 0, len(m.Faces)),
	}
	for i, p := range m.Points {
		s.Positions = append(s.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		n := normals[i]
		s.Normals = append(s.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for i, f := range m.Faces {
		s.Indices = append(s.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
		s.Groups = append(s.Groups, uint32(m.FaceGroup(i)))
	}
	return s
}

// CaptureFlat copies a mesh into a Snapshot with faceted shading: three
// dedicated vertices per triangle, each carrying the face normal. Sharp
// mechanical edges render correctly at the cost of a larger buffer.
func CaptureFlat(m *solid.Mesh) Snapshot {
	s := Snapshot{
		Positions: make([]float32, 0, len(m.Faces)*9),
		Normals:   make([]float32, 0, len(m.Faces)*9),
		Indices:   make([]uint32, 0, len(m.Faces)*3),
		Groups:    make([]uint32, 0, len(m.Faces)),
	}
	for i := range m.Faces {
		a, b, c := m.FacePoints(i)
		n := m.FaceNormal(i)
		for _, p := range []solid.Vec3{a, b, c} {
			s.Indices = append(s.Indices, uint32(len(s.Positions)/3))
			s.Positions = append(s.Positions, float32(p.X), float32(p.Y), float32(p.Z))
			s.Normals = append(s.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
		s.Groups = append(s.Groups, uint32(m.FaceGroup(i)))
	}
	return s
}

// FromBuffers builds a kernel mesh from imported flat buffers (an STL/PLY/
// OBJ adapter's parse result). The mesh goes through the same cleanup and
// consistency check the construction operators use, so imported geometry
// is never trusted as already welded or manifold.
func FromBuffers(positions []float32, indices []uint32, tol solid.Tolerance) (*solid.Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("scene: position buffer length %d is not a multiple of 3", len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("scene: index buffer length %d is not a multiple of 3", len(indices))
	}
	m := solid.NewMesh()
	for i := 0; i+2 < len(positions); i += 3 {
		m.AddPoint(solid.V3(float64(positions[i]), float64(positions[i+1]), float64(positions[i+2])))
	}
	np := len(positions) / 3
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= np || b >= np || c >= np {
			return nil, fmt.Errorf("scene: triangle %d references vertex beyond buffer", i/3)
		}
		m.AddFace(solid.Triangle{a, b, c}, 0)
	}
	out := m.Finish(tol)
	if err := out.Check(tol); err != nil {
		return nil, err
	}
	return out, nil
}
