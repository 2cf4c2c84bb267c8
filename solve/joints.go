package solve

import "github.com/gogpu/solid"

// Mechanism joints couple two rigid-body poses. Anchors and axes are given
// in each body's local frame; the residuals compare their world images, so
// the same relaxation loop that solves sketches assembles mechanisms.

// Revolute is a hinge: the two local anchors coincide and the two local
// axes align, leaving one rotational degree of freedom about the axis.
type Revolute struct {
	A, B             NodeID
	AnchorA, AnchorB solid.Vec3
	AxisA, AxisB     solid.Vec3
}

func (c Revolute) Nodes() []NodeID { return []NodeID{c.A, c.B} }

// ResidualCount is 6: anchor coincidence (3) plus axis cross product (3).
// The axis rows are rank 2; the least-squares step absorbs the redundancy.
func (c Revolute) ResidualCount() int { return 6 }

// Prismatic is a slider: the two local axes align and the anchor offset
// stays perpendicular-free along the axis, leaving one translational
// degree of freedom.
type Prismatic struct {
	A, B             NodeID
	AnchorA, AnchorB solid.Vec3
	AxisA, AxisB     solid.Vec3
}

func (c Prismatic) Nodes() []NodeID    { return []NodeID{c.A, c.B} }
func (c Prismatic) ResidualCount() int { return 6 }

// Ball is a spherical joint: the two local anchors coincide, leaving all
// three rotational degrees of freedom.
type Ball struct {
	A, B             NodeID
	AnchorA, AnchorB solid.Vec3
}

func (c Ball) Nodes() []NodeID    { return []NodeID{c.A, c.B} }
func (c Ball) ResidualCount() int { return 3 }

// FixedJoint welds two bodies: anchors coincide and two independent local
// directions align, removing all six relative degrees of freedom.
type FixedJoint struct {
	A, B             NodeID
	AnchorA, AnchorB solid.Vec3
}

func (c FixedJoint) Nodes() []NodeID    { return []NodeID{c.A, c.B} }
func (c FixedJoint) ResidualCount() int { return 9 }
