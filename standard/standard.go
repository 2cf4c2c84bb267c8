// Package standard generates common ISO mechanical parts — nuts, washers,
// screws, coil springs — as kernel meshes. Every part is built through the
// public construction and boolean operators, so the catalog doubles as the
// kernel's own integration exercise.
//
// Dimensions come from the ISO tables in tables.go; the entry points keyed
// by nominal screw diameter return an error for diameters the tables do
// not carry rather than guessing.
package standard

import (
	"fmt"
	"math"

	"github.com/gogpu/solid"
)

// Head selects a screw head shape.
type Head string

const (
	// HeadHex is a hexagonal head (ISO 4017 style).
	HeadHex Head = "hex"
	// HeadSocket is a cylindrical socket head (ISO 4762 style, socket
	// not modeled).
	HeadSocket Head = "socket"
	// HeadButton is a low-profile button head.
	HeadButton Head = "button"
)

// Nut returns a standard hexagon nut (EN ISO 4032) for the given nominal
// screw diameter, without thread detail.
func Nut(d float64) (*solid.Mesh, error) {
	for _, e := range standardHexnuts {
		if nearDim(e.d, d) {
			return Hexnut(e.d, e.w, e.h)
		}
	}
	return nil, fmt.Errorf("standard: no ISO hexagon nut for diameter %g", d)
}

// Hexnut returns a hexagon nut with custom dimensions: bore diameter d,
// width across flats w, height h.
func Hexnut(d, w, h float64) (*solid.Mesh, error) {
	half := w / 2
	r := 1.01 * half / math.Cos(math.Pi/6)

	// Revolved cross-section: bore wall, chamfered crown, bore wall. The
	// closed profile never touches the axis, so the revolution leaves the
	// bore open through the middle.
	profile := solid.NewWire(
		solid.V3(0.5*d, 0, 0.5*h),
		solid.V3(0.95*half, 0, 0.5*h),
		solid.V3(r, 0, 0.5*h-(r-half)),
		solid.V3(r, 0, -0.5*h+(r-half)),
		solid.V3(0.95*half, 0, -0.5*h),
		solid.V3(0.5*d, 0, -0.5*h),
	).Close()
	base, err := solid.Revolve(profile, solid.AxisZ(), 2*math.Pi, solid.DefaultRevolveOptions())
	if err != nil {
		return nil, err
	}

	hexagon := regularPolygon(half/math.Cos(math.Pi/6), 6, -h)
	ext, err := solid.Extrude(hexagon, solid.V3(0, 0, 2*h), solid.DefaultExtrudeOptions())
	if err != nil {
		return nil, err
	}

	return solid.Boolean(base, ext, solid.Intersection, solid.DefaultBoolOptions())
}

// Washer returns a standard flat washer (ISO 7089) for the given nominal
// screw diameter.
func Washer(d float64) (*solid.Mesh, error) {
	for _, e := range standardWashers {
		if nearDim(e.nominal, d) {
			return WasherCustom(e.interior, e.exterior, e.thickness)
		}
	}
	return nil, fmt.Errorf("standard: no ISO washer for diameter %g", d)
}

// WasherCustom returns a flat washer with interior diameter d, exterior
// diameter e and thickness h.
func WasherCustom(d, e, h float64) (*solid.Mesh, error) {
	if e <= d {
		return nil, fmt.Errorf("standard: washer exterior %g not larger than interior %g", e, d)
	}
	profile := solid.NewWire(
		solid.V3(d/2, 0, 0),
		solid.V3(e/2, 0, 0),
		solid.V3(e/2, 0, h),
		solid.V3(d/2, 0, h),
	).Close()
	return solid.Revolve(profile, solid.AxisZ(), 2*math.Pi, solid.DefaultRevolveOptions())
}

// Screw returns an unthreaded screw model: a cylindrical shank of the
// given diameter and length below z=0 and the chosen head above. Thread
// detail is deliberately not generated; the shank is the nominal cylinder
// the way the default detail level of CAD screw catalogs models it.
func Screw(d, length float64, head Head) (*solid.Mesh, error) {
	if d <= 0 || length <= 0 {
		return nil, fmt.Errorf("standard: screw needs positive diameter and length, got d=%g length=%g", d, length)
	}
	var headMesh *solid.Mesh
	var err error
	var headH float64
	switch head {
	case HeadHex:
		headH = 0.65 * d
		hexagon := regularPolygon(0.95*d/math.Cos(math.Pi/6), 6, 0)
		headMesh, err = solid.Extrude(hexagon, solid.V3(0, 0, headH), solid.DefaultExtrudeOptions())
	case HeadSocket:
		headH = d
		headMesh, err = cylinder(0.75*d, headH, 0)
	case HeadButton:
		headH = 0.5 * d
		headMesh, err = cylinder(0.95*d, headH, 0)
	default:
		return nil, fmt.Errorf("standard: unknown screw head %q", head)
	}
	if err != nil {
		return nil, err
	}

	// The shank reaches halfway into the head so the union cuts a clean
	// crossing curve instead of a coincident-face seam.
	shank, err := cylinder(d/2, length+headH/2, -length)
	if err != nil {
		return nil, err
	}
	return solid.Boolean(headMesh, shank, solid.Union, solid.DefaultBoolOptions())
}

// CoilspringCompression returns a compression coil spring: a circular wire
// section swept along a helix. length is the free length along Z, d the
// coil diameter, thickness the wire diameter. Zero d or thickness pick
// the catalog's usual proportions.
func CoilspringCompression(length, d, thickness float64) (*solid.Mesh, error) {
	if d == 0 {
		d = length * 0.2
	}
	if thickness == 0 {
		thickness = d * 0.1
	}
	turns := math.Max(3, math.Floor(length/(3*thickness)))
	pitch := length / turns

	path := solid.Helix(solid.AxisZ(), d/2, pitch, turns, solid.DefaultResolution())
	profile := circleWire(thickness/2, 12)
	return solid.Sweep(path, profile, solid.DefaultSweepOptions())
}

// cylinder builds a closed cylinder of radius r and height h starting at
// z = z0, by revolving its rectangular cross-section.
func cylinder(r, h, z0 float64) (*solid.Mesh, error) {
	profile := solid.NewWire(
		solid.V3(0, 0, z0),
		solid.V3(r, 0, z0),
		solid.V3(r, 0, z0+h),
		solid.V3(0, 0, z0+h),
	).Close()
	return solid.Revolve(profile, solid.AxisZ(), 2*math.Pi, solid.DefaultRevolveOptions())
}

// regularPolygon returns a closed n-gon of circumradius r in the plane
// z = z0.
func regularPolygon(r float64, n int, z0 float64) *solid.Wire {
	pts := make([]solid.Vec3, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, solid.V3(r*math.Cos(a), r*math.Sin(a), z0))
	}
	return solid.NewWire(pts...).Close()
}

// circleWire returns a closed n-gon approximation of a circle of radius r
// in the XY plane about the origin.
func circleWire(r float64, n int) *solid.Wire {
	return regularPolygon(r, n, 0)
}

// nearDim compares catalog dimensions with a loose relative tolerance.
func nearDim(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(a))
}
