// Package solid provides a boundary-representation (B-Rep) triangle-mesh
// modeling kernel for Go.
//
// # Overview
//
// solid is a pure Go geometric modeling kernel designed to integrate with
// the GoGPU ecosystem. It builds 3D shapes from profiles and primitives,
// combines them with boolean operations, and solves constrained sketches
// and mechanisms, exposing everything as plain index-based buffers that a
// host application can render or export.
//
// # Quick Start
//
//	import "github.com/gogpu/solid"
//
//	// Build a hexagonal prism from a closed profile.
//	profile := solid.NewWire(hexPoints...)
//	profile.Close()
//	prism, err := solid.Extrude(profile, solid.V3(0, 0, 10), solid.DefaultExtrudeOptions())
//
//	// Combine solids.
//	result, err := solid.Boolean(prism, cylinder, solid.Difference, solid.DefaultBoolOptions())
//
// # Architecture
//
// The library is organized into:
//   - Public API: Vec3, Transform, Wire, Web, Mesh, construction operators,
//     the Boolean engine
//   - solve: constraint and kinematics solver for sketches and mechanisms
//   - scene: the read-only export boundary consumed by viewers and exporters
//   - standard: a catalog of ISO standard parts built on the kernel
//   - Internal: bvh (spatial index), geom (robust geometric predicates)
//
// # Tolerances
//
// The kernel never keeps global mutable configuration. Every operation that
// welds points or classifies intersections takes an explicit [Tolerance];
// the solver takes explicit convergence options. Defaults scale with the
// geometry's bounding box, so models keep working across unit systems.
//
// # Concurrency
//
// Operations are synchronous. Parallelism exists only inside an operation
// (pairwise intersection tests, classification) and is never observable by
// the caller. Containers follow single-writer, multiple-reader discipline:
// the kernel never mutates an input, and results are always new containers.
package solid
