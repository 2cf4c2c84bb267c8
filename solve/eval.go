package solve

import "github.com/gogpu/solid"

// layout maps node coordinates to the global variable vector. Driven
// (fixed) coordinates get index -1 and read from the node itself.
type layout struct {
	vars [][]int // per node: 3 entries (point) or 6 (body pos+rot)
	n    int
}

func (g *Graph) layout() layout {
	lay := layout{vars: make([][]int, len(g.nodes))}
	for i, n := range g.nodes {
		switch n.kind {
		case nodePoint:
			vs := make([]int, 3)
			for k := 0; k < 3; k++ {
				if n.fixed[k] {
					vs[k] = -1
				} else {
					vs[k] = lay.n
					lay.n++
				}
			}
			lay.vars[i] = vs
		case nodeBody:
			vs := make([]int, 6)
			if n.fixed[0] {
				for k := range vs {
					vs[k] = -1
				}
			} else {
				for k := range vs {
					vs[k] = lay.n
					lay.n++
				}
			}
			lay.vars[i] = vs
		}
	}
	return lay
}

// snapshot copies the current free coordinates into a variable vector.
func (lay layout) snapshot(g *Graph) []float64 {
	x := make([]float64, lay.n)
	for i, n := range g.nodes {
		vs := lay.vars[i]
		pos := [3]float64{n.pos.X, n.pos.Y, n.pos.Z}
		for k := 0; k < 3; k++ {
			if vs[k] >= 0 {
				x[vs[k]] = pos[k]
			}
		}
		if n.kind == nodeBody {
			rot := [3]float64{n.rot.X, n.rot.Y, n.rot.Z}
			for k := 0; k < 3; k++ {
				if vs[3+k] >= 0 {
					x[vs[3+k]] = rot[k]
				}
			}
		}
	}
	return x
}

// writeBack stores a solved variable vector into the nodes. Called only
// when a pass ends Converged or Underconstrained, never mid-solve.
func (lay layout) writeBack(g *Graph, x []float64) {
	for i := range g.nodes {
		n := &g.nodes[i]
		vs := lay.vars[i]
		if vs[0] >= 0 {
			n.pos.X = x[vs[0]]
		}
		if vs[1] >= 0 {
			n.pos.Y = x[vs[1]]
		}
		if vs[2] >= 0 {
			n.pos.Z = x[vs[2]]
		}
		if n.kind == nodeBody && vs[3] >= 0 {
			n.rot = solid.Vec3{X: x[vs[3]], Y: x[vs[4]], Z: x[vs[5]]}
		}
	}
}

// point reads a point node's current position from the variable vector,
// falling back to the stored value for driven coordinates.
func (lay layout) point(g *Graph, x []float64, id NodeID) solid.Vec3 {
	n := g.nodes[id]
	vs := lay.vars[id]
	p := n.pos
	if vs[0] >= 0 {
		p.X = x[vs[0]]
	}
	if vs[1] >= 0 {
		p.Y = x[vs[1]]
	}
	if vs[2] >= 0 {
		p.Z = x[vs[2]]
	}
	return p
}

// bodyPose reads a body node's pose from the variable vector.
func (lay layout) bodyPose(g *Graph, x []float64, id NodeID) (solid.Vec3, solid.Vec3) {
	n := g.nodes[id]
	vs := lay.vars[id]
	pos, rot := n.pos, n.rot
	if vs[0] >= 0 {
		pos = solid.Vec3{X: x[vs[0]], Y: x[vs[1]], Z: x[vs[2]]}
		rot = solid.Vec3{X: x[vs[3]], Y: x[vs[4]], Z: x[vs[5]]}
	}
	return pos, rot
}

// evalAll evaluates every constraint's residual rows into out.
func (g *Graph) evalAll(lay layout, x []float64, out []float64) {
	row := 0
	for _, c := range g.constraints {
		g.evalConstraint(lay, x, c, out[row:row+c.ResidualCount()])
		row += c.ResidualCount()
	}
}

// evalConstraint computes one constraint's residual rows. This is the
// single dispatch point over the closed variant set.
func (g *Graph) evalConstraint(lay layout, x []float64, c Constraint, out []float64) {
	switch c := c.(type) {
	case Distance:
		pa := lay.point(g, x, c.A)
		pb := lay.point(g, x, c.B)
		out[0] = pa.Distance(pb) - c.Target

	case Coincident:
		d := lay.point(g, x, c.A).Sub(lay.point(g, x, c.B))
		out[0], out[1], out[2] = d.X, d.Y, d.Z

	case Angle:
		u := lay.point(g, x, c.P1).Sub(lay.point(g, x, c.P0))
		v := lay.point(g, x, c.Q1).Sub(lay.point(g, x, c.Q0))
		out[0] = u.Angle(v) - c.Target

	case Parallel:
		u := lay.point(g, x, c.P1).Sub(lay.point(g, x, c.P0)).Normalize()
		v := lay.point(g, x, c.Q1).Sub(lay.point(g, x, c.Q0)).Normalize()
		out[0] = u.Cross(v).Length()

	case PointOnLine:
		out[0] = distToLine(
			lay.point(g, x, c.P),
			lay.point(g, x, c.L0),
			lay.point(g, x, c.L1))

	case Tangent:
		out[0] = distToLine(
			lay.point(g, x, c.Center),
			lay.point(g, x, c.L0),
			lay.point(g, x, c.L1)) - c.Radius

	case Revolute:
		ta := bodyTransform(lay.bodyPose(g, x, c.A))
		tb := bodyTransform(lay.bodyPose(g, x, c.B))
		d := ta.Apply(c.AnchorA).Sub(tb.Apply(c.AnchorB))
		out[0], out[1], out[2] = d.X, d.Y, d.Z
		cr := ta.ApplyDir(c.AxisA.Normalize()).Cross(tb.ApplyDir(c.AxisB.Normalize()))
		out[3], out[4], out[5] = cr.X, cr.Y, cr.Z

	case Prismatic:
		ta := bodyTransform(lay.bodyPose(g, x, c.A))
		tb := bodyTransform(lay.bodyPose(g, x, c.B))
		axA := ta.ApplyDir(c.AxisA.Normalize())
		axB := tb.ApplyDir(c.AxisB.Normalize())
		cr := axA.Cross(axB)
		out[0], out[1], out[2] = cr.X, cr.Y, cr.Z
		// Anchor offset must stay along the axis: remove the axial
		// component and require the rest to vanish.
		d := tb.Apply(c.AnchorB).Sub(ta.Apply(c.AnchorA))
		perp := d.Sub(axA.Mul(d.Dot(axA)))
		out[3], out[4], out[5] = perp.X, perp.Y, perp.Z

	case Ball:
		ta := bodyTransform(lay.bodyPose(g, x, c.A))
		tb := bodyTransform(lay.bodyPose(g, x, c.B))
		d := ta.Apply(c.AnchorA).Sub(tb.Apply(c.AnchorB))
		out[0], out[1], out[2] = d.X, d.Y, d.Z

	case FixedJoint:
		ta := bodyTransform(lay.bodyPose(g, x, c.A))
		tb := bodyTransform(lay.bodyPose(g, x, c.B))
		d := ta.Apply(c.AnchorA).Sub(tb.Apply(c.AnchorB))
		out[0], out[1], out[2] = d.X, d.Y, d.Z
		dx := ta.ApplyDir(solid.Vec3{X: 1}).Sub(tb.ApplyDir(solid.Vec3{X: 1}))
		out[3], out[4], out[5] = dx.X, dx.Y, dx.Z
		dy := ta.ApplyDir(solid.Vec3{Y: 1}).Sub(tb.ApplyDir(solid.Vec3{Y: 1}))
		out[6], out[7], out[8] = dy.X, dy.Y, dy.Z

	default:
		// Unknown constraint kinds cannot occur: the variant set is
		// closed within this package.
		panic("solve: unknown constraint type")
	}
}
