package solid

import "math"

// Transform represents a 3D affine transformation.
// It uses a 3x4 matrix in row-major order:
//
//	| XX  XY  XZ  XW |
//	| YX  YY  YZ  YW |
//	| ZX  ZY  ZZ  ZW |
//
// This represents the transformation:
//
//	x' = XX*x + XY*y + XZ*z + XW
//	y' = YX*x + YY*y + YZ*z + YW
//	z' = ZX*x + ZY*y + ZZ*z + ZW
type Transform struct {
	XX, XY, XZ, XW float64
	YX, YY, YZ, YW float64
	ZX, ZY, ZZ, ZW float64
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{
		XX: 1, YY: 1, ZZ: 1,
	}
}

// Translate creates a translation transform.
func Translate(v Vec3) Transform {
	return Transform{
		XX: 1, XW: v.X,
		YY: 1, YW: v.Y,
		ZZ: 1, ZW: v.Z,
	}
}

// Scale creates a per-axis scaling transform.
func Scale(x, y, z float64) Transform {
	return Transform{XX: x, YY: y, ZZ: z}
}

// ScaleUniform creates a uniform scaling transform.
func ScaleUniform(s float64) Transform {
	return Scale(s, s, s)
}

// RotateAxis creates a rotation of angle radians around an axis through the
// origin, following the right-hand rule. The axis need not be normalized;
// a zero axis yields the identity.
func RotateAxis(axis Vec3, angle float64) Transform {
	u := axis.Normalize()
	if u.LengthSq() == 0 {
		return Identity()
	}
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	return Transform{
		XX: c + u.X*u.X*t, XY: u.X*u.Y*t - u.Z*s, XZ: u.X*u.Z*t + u.Y*s,
		YX: u.Y*u.X*t + u.Z*s, YY: c + u.Y*u.Y*t, YZ: u.Y*u.Z*t - u.X*s,
		ZX: u.Z*u.X*t - u.Y*s, ZY: u.Z*u.Y*t + u.X*s, ZZ: c + u.Z*u.Z*t,
	}
}

// RotateAround creates a rotation of angle radians around an arbitrary axis.
func RotateAround(axis Axis, angle float64) Transform {
	to := Translate(axis.Origin)
	from := Translate(axis.Origin.Neg())
	return to.Mul(RotateAxis(axis.Dir, angle)).Mul(from)
}

// Mul returns the composition t * u (u applied first).
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		XX: t.XX*u.XX + t.XY*u.YX + t.XZ*u.ZX,
		XY: t.XX*u.XY + t.XY*u.YY + t.XZ*u.ZY,
		XZ: t.XX*u.XZ + t.XY*u.YZ + t.XZ*u.ZZ,
		XW: t.XX*u.XW + t.XY*u.YW + t.XZ*u.ZW + t.XW,

		YX: t.YX*u.XX + t.YY*u.YX + t.YZ*u.ZX,
		YY: t.YX*u.XY + t.YY*u.YY + t.YZ*u.ZY,
		YZ: t.YX*u.XZ + t.YY*u.YZ + t.YZ*u.ZZ,
		YW: t.YX*u.XW + t.YY*u.YW + t.YZ*u.ZW + t.YW,

		ZX: t.ZX*u.XX + t.ZY*u.YX + t.ZZ*u.ZX,
		ZY: t.ZX*u.XY + t.ZY*u.YY + t.ZZ*u.ZY,
		ZZ: t.ZX*u.XZ + t.ZY*u.YZ + t.ZZ*u.ZZ,
		ZW: t.ZX*u.XW + t.ZY*u.YW + t.ZZ*u.ZW + t.ZW,
	}
}

// Apply transforms a point (translation applies).
func (t Transform) Apply(v Vec3) Vec3 {
	return Vec3{
		X: t.XX*v.X + t.XY*v.Y + t.XZ*v.Z + t.XW,
		Y: t.YX*v.X + t.YY*v.Y + t.YZ*v.Z + t.YW,
		Z: t.ZX*v.X + t.ZY*v.Y + t.ZZ*v.Z + t.ZW,
	}
}

// ApplyDir transforms a direction (translation does not apply).
func (t Transform) ApplyDir(v Vec3) Vec3 {
	return Vec3{
		X: t.XX*v.X + t.XY*v.Y + t.XZ*v.Z,
		Y: t.YX*v.X + t.YY*v.Y + t.YZ*v.Z,
		Z: t.ZX*v.X + t.ZY*v.Y + t.ZZ*v.Z,
	}
}

// Det returns the determinant of the linear part.
// A negative determinant flips orientation; mesh transforms use this to
// decide whether face winding must be reversed.
func (t Transform) Det() float64 {
	return t.XX*(t.YY*t.ZZ-t.YZ*t.ZY) -
		t.XY*(t.YX*t.ZZ-t.YZ*t.ZX) +
		t.XZ*(t.YX*t.ZY-t.YY*t.ZX)
}

// Inverse returns the inverse transformation.
// Returns the identity and false if the transform is singular.
func (t Transform) Inverse() (Transform, bool) {
	det := t.Det()
	if det == 0 || !isFinite(det) {
		return Identity(), false
	}
	inv := 1 / det
	r := Transform{
		XX: (t.YY*t.ZZ - t.YZ*t.ZY) * inv,
		XY: (t.XZ*t.ZY - t.XY*t.ZZ) * inv,
		XZ: (t.XY*t.YZ - t.XZ*t.YY) * inv,

		YX: (t.YZ*t.ZX - t.YX*t.ZZ) * inv,
		YY: (t.XX*t.ZZ - t.XZ*t.ZX) * inv,
		YZ: (t.XZ*t.YX - t.XX*t.YZ) * inv,

		ZX: (t.YX*t.ZY - t.YY*t.ZX) * inv,
		ZY: (t.XY*t.ZX - t.XX*t.ZY) * inv,
		ZZ: (t.XX*t.YY - t.XY*t.YX) * inv,
	}
	// Inverse translation: -R^-1 * w
	r.XW = -(r.XX*t.XW + r.XY*t.YW + r.XZ*t.ZW)
	r.YW = -(r.YX*t.XW + r.YY*t.YW + r.YZ*t.ZW)
	r.ZW = -(r.ZX*t.XW + r.ZY*t.YW + r.ZZ*t.ZW)
	return r, true
}

// Axis is a line in space given by a point and a direction.
// Revolution sweeps around an Axis; joints constrain motion to one.
type Axis struct {
	Origin Vec3
	Dir    Vec3
}

// AxisZ returns the world Z axis through the origin.
func AxisZ() Axis {
	return Axis{Dir: Vec3{Z: 1}}
}

// Normalized returns the axis with a unit direction.
func (a Axis) Normalized() Axis {
	return Axis{Origin: a.Origin, Dir: a.Dir.Normalize()}
}
