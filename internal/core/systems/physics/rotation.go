package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotator is a body orientation in radians, in the simulator's convention:
// pitch about the lateral axis, yaw about world up, roll about forward.
type Rotator struct {
	Pitch float64 `yaml:"pitch" json:"pitch"`
	Yaw   float64 `yaml:"yaw" json:"yaw"`
	Roll  float64 `yaml:"roll" json:"roll"`
}

// Frame is an orthonormal body basis. Columns are forward, left and up.
type Frame struct {
	m mgl64.Mat3
}

// IdentityFrame is a body facing +x with world up.
var IdentityFrame = Frame{m: mgl64.Ident3()}

// Frame applies roll, then pitch, then yaw to the world axes. The order is
// load-bearing: steering and attitude control depend on its handedness.
func (r Rotator) Frame() Frame {
	m := mgl64.Rotate3DZ(r.Yaw).
		Mul3(mgl64.Rotate3DY(-r.Pitch)).
		Mul3(mgl64.Rotate3DX(-r.Roll))
	return Frame{m: m}
}

func (r Rotator) Forward() Vec3 { return r.Frame().Forward() }
func (r Rotator) Left() Vec3    { return r.Frame().Left() }
func (r Rotator) Up() Vec3      { return r.Frame().Up() }

// NewFrame builds a frame from explicit basis vectors.
func NewFrame(forward, left, up Vec3) Frame {
	return Frame{m: mgl64.Mat3FromCols(toMgl(forward), toMgl(left), toMgl(up))}
}

// FaceTowards builds the frame looking along forward, with up
// re-orthogonalised against it.
func FaceTowards(forward, up Vec3) Frame {
	u := up.Normalize()
	if u.IsZero() {
		u = WorldUp
	}
	f := forward.Normalize()
	if f.IsZero() {
		f = perpendicular(u)
	}
	left := u.Cross(f).Normalize()
	if left.IsZero() {
		// forward is parallel to up; any perpendicular works.
		f = perpendicular(u)
		left = u.Cross(f).Normalize()
	}
	return NewFrame(f, left, f.Cross(left))
}

func perpendicular(u Vec3) Vec3 {
	axis := UnitX
	if math.Abs(u.X) > 0.9 {
		axis = UnitY
	}
	return axis.Sub(u.Scale(axis.Dot(u))).Normalize()
}

func (f Frame) Forward() Vec3 { return fromMgl(f.m.Col(0)) }
func (f Frame) Left() Vec3    { return fromMgl(f.m.Col(1)) }
func (f Frame) Up() Vec3      { return fromMgl(f.m.Col(2)) }

// Local expresses a world direction in body coordinates (x forward, y left, z up).
func (f Frame) Local(v Vec3) Vec3 {
	return fromMgl(f.m.Transpose().Mul3x1(toMgl(v)))
}

// World maps body coordinates back into the world.
func (f Frame) World(v Vec3) Vec3 {
	return fromMgl(f.m.Mul3x1(toMgl(v)))
}

func (f Frame) Transpose() Frame { return Frame{m: f.m.Transpose()} }

func (f Frame) Mul(o Frame) Frame { return Frame{m: f.m.Mul3(o.m)} }

// At returns the matrix element at row, col.
func (f Frame) At(row, col int) float64 { return f.m.At(row, col) }

// Euler recovers the rotator that produces this frame.
func (f Frame) Euler() Rotator {
	fwd, left, up := f.Forward(), f.Left(), f.Up()
	return Rotator{
		Pitch: math.Atan2(fwd.Z, math.Hypot(fwd.X, fwd.Y)),
		Yaw:   math.Atan2(fwd.Y, fwd.X),
		Roll:  math.Atan2(-left.Z, up.Z),
	}
}

// LocalTo returns target relative to origin in the given body frame.
func LocalTo(target, origin Vec3, r Rotator) Vec3 {
	return r.Frame().Local(target.Sub(origin))
}

func toMgl(v Vec3) mgl64.Vec3   { return mgl64.Vec3{v.X, v.Y, v.Z} }
func fromMgl(v mgl64.Vec3) Vec3 { return Vec3{X: v[0], Y: v[1], Z: v[2]} }
