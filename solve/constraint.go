package solve

import "github.com/gogpu/solid"

// Constraint is one typed relation in the graph. The set of constraint
// kinds is closed: the solver core dispatches over the concrete types in a
// single switch, keeping the hot loop branch-predictable and the variant
// set auditable. Implementations live in this file (sketch constraints)
// and joints.go (mechanism joints).
type Constraint interface {
	// Nodes lists the nodes the constraint couples.
	Nodes() []NodeID

	// ResidualCount is the number of scalar residual rows contributed.
	ResidualCount() int
}

// Distance constrains the distance between two points to Target.
type Distance struct {
	A, B   NodeID
	Target float64
}

func (c Distance) Nodes() []NodeID    { return []NodeID{c.A, c.B} }
func (c Distance) ResidualCount() int { return 1 }

// Coincident constrains two points to the same location.
type Coincident struct {
	A, B NodeID
}

func (c Coincident) Nodes() []NodeID    { return []NodeID{c.A, c.B} }
func (c Coincident) ResidualCount() int { return 3 }

// Angle constrains the angle between segments P0-P1 and Q0-Q1 to Target
// radians (unsigned, in [0, pi]).
type Angle struct {
	P0, P1 NodeID
	Q0, Q1 NodeID
	Target float64
}

func (c Angle) Nodes() []NodeID    { return []NodeID{c.P0, c.P1, c.Q0, c.Q1} }
func (c Angle) ResidualCount() int { return 1 }

// Parallel constrains segments P0-P1 and Q0-Q1 to be parallel
// (either orientation).
type Parallel struct {
	P0, P1 NodeID
	Q0, Q1 NodeID
}

func (c Parallel) Nodes() []NodeID    { return []NodeID{c.P0, c.P1, c.Q0, c.Q1} }
func (c Parallel) ResidualCount() int { return 1 }

// PointOnLine constrains point P to lie on the infinite line through
// L0 and L1.
type PointOnLine struct {
	P      NodeID
	L0, L1 NodeID
}

func (c PointOnLine) Nodes() []NodeID    { return []NodeID{c.P, c.L0, c.L1} }
func (c PointOnLine) ResidualCount() int { return 1 }

// Tangent constrains the line through L0-L1 to be tangent to the circle
// centered at Center with the given radius: the distance from the center
// to the line equals the radius.
type Tangent struct {
	Center NodeID
	Radius float64
	L0, L1 NodeID
}

func (c Tangent) Nodes() []NodeID    { return []NodeID{c.Center, c.L0, c.L1} }
func (c Tangent) ResidualCount() int { return 1 }

// distToLine is the distance from p to the infinite line a-b, zero when
// the line degenerates.
func distToLine(p, a, b solid.Vec3) float64 {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return p.Distance(a)
	}
	return p.Sub(a).Cross(d).Length() / l
}
