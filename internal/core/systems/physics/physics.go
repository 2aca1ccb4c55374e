package physics

import "math"

// Vec3 is a point or direction in arena coordinates (unreal units).
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

var (
	Zero    = Vec3{}
	UnitX   = Vec3{X: 1}
	UnitY   = Vec3{Y: 1}
	UnitZ   = Vec3{Z: 1}
	WorldUp = UnitZ
)

func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Len() float64         { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Ground() Vec3         { return Vec3{v.X, v.Y, 0} }
func (v Vec3) Dist(o Vec3) float64  { return v.Sub(o).Len() }
func (v Vec3) WithZ(z float64) Vec3 { return Vec3{v.X, v.Y, z} }
func (v Vec3) IsZero() bool         { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector along v. The zero vector normalizes to zero.
func (v Vec3) Normalize() Vec3 {
	n := v.Len()
	if n < 1e-9 {
		return Zero
	}
	return v.Scale(1 / n)
}

// GroundDist is the planar distance between the z-projected points.
func (v Vec3) GroundDist(o Vec3) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// AngleBetween returns the unsigned angle in radians; zero vectors yield π/2.
func (v Vec3) AngleBetween(o Vec3) float64 {
	return math.Acos(Clamp(v.Normalize().Dot(o.Normalize()), -1, 1))
}

// Direction is the unit vector pointing from one point to another.
func Direction(from, to Vec3) Vec3 {
	return to.Sub(from).Normalize()
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// AbsClamp limits n to [-limit, limit].
func AbsClamp(n, limit float64) float64 {
	return Clamp(n, -limit, limit)
}

// Clamp11 limits n to the actuator range [-1, 1].
func Clamp11(n float64) float64 {
	return Clamp(n, -1, 1)
}

// WrapAngle maps an angle onto [-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
