package solid

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", V3(1, 2, 3).Add(V3(4, 5, 6)), V3(5, 7, 9)},
		{"sub", V3(4, 5, 6).Sub(V3(1, 2, 3)), V3(3, 3, 3)},
		{"mul", V3(1, -2, 3).Mul(2), V3(2, -4, 6)},
		{"div", V3(2, 4, 6).Div(2), V3(1, 2, 3)},
		{"neg", V3(1, -2, 3).Neg(), V3(-1, 2, -3)},
		{"cross xy", V3(1, 0, 0).Cross(V3(0, 1, 0)), V3(0, 0, 1)},
		{"cross yx", V3(0, 1, 0).Cross(V3(1, 0, 0)), V3(0, 0, -1)},
		{"lerp mid", V3(0, 0, 0).Lerp(V3(2, 4, 6), 0.5), V3(1, 2, 3)},
		{"lerp end", V3(1, 1, 1).Lerp(V3(2, 2, 2), 1), V3(2, 2, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantVec(t, tt.name, tt.got, tt.want, 1e-15)
		})
	}
}

func TestVec3Dot(t *testing.T) {
	wantFloat(t, "dot", V3(1, 2, 3).Dot(V3(4, -5, 6)), 12, 1e-15)
	wantFloat(t, "dot orthogonal", V3(1, 0, 0).Dot(V3(0, 1, 0)), 0, 1e-15)
}

func TestVec3Length(t *testing.T) {
	v := V3(3, 4, 0)
	wantFloat(t, "length", v.Length(), 5, 1e-15)
	wantFloat(t, "lengthSq", v.LengthSq(), 25, 1e-15)
	wantFloat(t, "distance", V3(1, 1, 1).Distance(V3(4, 5, 1)), 5, 1e-15)
}

func TestVec3Normalize(t *testing.T) {
	wantVec(t, "normalize", V3(0, 3, 4).Normalize(), V3(0, 0.6, 0.8), 1e-15)
	wantVec(t, "normalize zero", Vec3{}.Normalize(), Vec3{}, 0)
}

func TestVec3Angle(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"right angle", V3(1, 0, 0), V3(0, 1, 0), math.Pi / 2},
		{"same direction", V3(1, 2, 3), V3(2, 4, 6), 0},
		{"opposite", V3(1, 0, 0), V3(-1, 0, 0), math.Pi},
		{"zero input", Vec3{}, V3(1, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantFloat(t, "angle", tt.a.Angle(tt.b), tt.want, 1e-12)
		})
	}
}

func TestVec3Perpendicular(t *testing.T) {
	vecs := []Vec3{
		V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1),
		V3(1, 2, 3), V3(-5, 0.1, 2), V3(1e-6, -1e6, 3),
	}
	for _, v := range vecs {
		p := v.Perpendicular()
		wantFloat(t, "perpendicular length", p.Length(), 1, 1e-12)
		wantFloat(t, "perpendicular dot", p.Dot(v.Normalize()), 0, 1e-12)
	}
	wantVec(t, "perpendicular of zero", Vec3{}.Perpendicular(), Vec3{}, 0)
}

func TestVec3NearEqual(t *testing.T) {
	if !V3(1, 1, 1).NearEqual(V3(1, 1, 1+1e-10), 1e-9) {
		t.Error("points within tolerance reported distinct")
	}
	if V3(1, 1, 1).NearEqual(V3(1, 1, 1.1), 1e-9) {
		t.Error("distinct points reported equal")
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if V3(0, math.Inf(1), 0).IsFinite() {
		t.Error("infinite vector reported finite")
	}
}
