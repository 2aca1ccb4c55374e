// Package arena holds the static geometry of the standard soccar field.
package arena

import (
	"math/rand/v2"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// Size is the half-extent of the playable box.
var Size = physics.V(4096, 5120, 2044)

// Clamp keeps x and y at least margin away from the side and back walls. z is untouched.
func Clamp(p physics.Vec3, margin float64) physics.Vec3 {
	return physics.Vec3{
		X: physics.AbsClamp(p.X, Size.X-margin),
		Y: physics.AbsClamp(p.Y, Size.Y-margin),
		Z: p.Z,
	}
}

// CollisionNormal reports the normal of the first surface p has crossed, checked
// as +x wall, -x wall, ceiling, floor, +y wall, -y wall.
func CollisionNormal(p physics.Vec3) (physics.Vec3, bool) {
	switch {
	case p.X > Size.X:
		return physics.V(1, 0, 0), true
	case p.X < -Size.X:
		return physics.V(-1, 0, 0), true
	case p.Z > Size.Z:
		return physics.V(0, 0, -1), true
	case p.Z < 0:
		return physics.V(0, 0, 1), true
	case p.Y > Size.Y:
		return physics.V(0, -1, 0), true
	case p.Y < -Size.Y:
		return physics.V(0, 1, 0), true
	default:
		return physics.Zero, false
	}
}

// Inside reports whether p lies within the box.
func Inside(p physics.Vec3) bool {
	_, hit := CollisionNormal(p)
	return !hit
}

// RandomPoint samples uniformly inside the box shrunk by margin on every axis.
func RandomPoint(rng *rand.Rand, margin float64) physics.Vec3 {
	between := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	return physics.Vec3{
		X: between(-Size.X+margin, Size.X-margin),
		Y: between(-Size.Y+margin, Size.Y-margin),
		Z: between(margin, Size.Z-margin),
	}
}

// HomeGoal is the goal mouth the team defends. Team 0 (blue) defends -y.
func HomeGoal(team int) physics.Vec3 {
	if team == 0 {
		return physics.V(0, -Size.Y, 0)
	}
	return physics.V(0, Size.Y, 0)
}

// AwayGoal is the goal mouth the team attacks.
func AwayGoal(team int) physics.Vec3 {
	return HomeGoal(1 - clampTeam(team))
}

func clampTeam(team int) int {
	if team == 0 {
		return 0
	}
	return 1
}
