package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotatorBasis(t *testing.T) {
	tests := []struct {
		name    string
		rot     Rotator
		forward Vec3
		left    Vec3
		up      Vec3
	}{
		{"identity", Rotator{}, UnitX, UnitY, UnitZ},
		{"yaw 90", Rotator{Yaw: math.Pi / 2}, UnitY, V(-1, 0, 0), UnitZ},
		{"pitch up 90", Rotator{Pitch: math.Pi / 2}, UnitZ, UnitY, V(-1, 0, 0)},
		{"roll 90", Rotator{Roll: math.Pi / 2}, UnitX, V(0, 0, -1), UnitY},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.forward, tt.rot.Forward())
			assertVec(t, tt.left, tt.rot.Left())
			assertVec(t, tt.up, tt.rot.Up())
		})
	}
}

func TestRotatorMatchesClosedForm(t *testing.T) {
	r := Rotator{Pitch: 0.3, Yaw: -1.1, Roll: 0.7}
	cp, sp := math.Cos(r.Pitch), math.Sin(r.Pitch)
	cy, sy := math.Cos(r.Yaw), math.Sin(r.Yaw)
	cr, sr := math.Cos(r.Roll), math.Sin(r.Roll)

	assertVec(t, V(cp*cy, cp*sy, sp), r.Forward())
	assertVec(t, V(cy*sp*sr-cr*sy, sy*sp*sr+cr*cy, -cp*sr), r.Left())
	assertVec(t, V(-cr*cy*sp-sr*sy, -cr*sy*sp+sr*cy, cp*cr), r.Up())
}

func TestEulerRoundTrip(t *testing.T) {
	for _, r := range []Rotator{
		{},
		{Pitch: 0.4, Yaw: 2.5, Roll: -1.2},
		{Pitch: -1.3, Yaw: -0.2, Roll: 3.0},
	} {
		got := r.Frame().Euler()
		assert.InDelta(t, r.Pitch, got.Pitch, 1e-9)
		assert.InDelta(t, r.Yaw, got.Yaw, 1e-9)
		assert.InDelta(t, r.Roll, got.Roll, 1e-9)
	}
}

func TestFaceTowards(t *testing.T) {
	f := FaceTowards(UnitX, UnitZ)
	assertVec(t, UnitX, f.Forward())
	assertVec(t, UnitY, f.Left())
	assertVec(t, UnitZ, f.Up())

	// forward is kept exactly, up bends to stay perpendicular
	s := math.Sqrt2 / 2
	n := FaceTowards(V(1, 0, -1), UnitZ)
	assertVec(t, V(s, 0, -s), n.Forward())
	assertVec(t, UnitY, n.Left())
	assertVec(t, V(s, 0, s), n.Up())

	// degenerate: forward parallel to up still yields an orthonormal frame
	d := FaceTowards(UnitZ, UnitZ)
	assert.InDelta(t, 0.0, d.Forward().Dot(d.Up()), 1e-9)
	assert.InDelta(t, 1.0, d.Forward().Len(), 1e-9)
	assert.InDelta(t, 1.0, d.Left().Len(), 1e-9)
}

func TestFrameLocal(t *testing.T) {
	r := Rotator{Yaw: math.Pi / 2}
	// a point straight ahead of a car facing +y is local +x
	assertVec(t, V(100, 0, 0), LocalTo(V(0, 100, 17), V(0, 0, 17), r))
	assertVec(t, V(0, 50, 0), r.Frame().Local(V(-50, 0, 0)))
	assertVec(t, V(-50, 0, 0), r.Frame().World(V(0, 50, 0)))

	delta := r.Frame().Transpose().Mul(r.Frame())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, delta.At(i, j), 1e-9)
		}
	}
}
