package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const reorientTolerance = 1e-4

// Reorient turns an airborne car until its basis matches the target frame.
// The full angular error is fed straight into the aerial axes every tick.
type Reorient struct {
	Up      physics.Vec3
	Forward physics.Vec3

	err physics.Rotator
}

func NewReorient(up, forward physics.Vec3) *Reorient {
	return &Reorient{Up: up, Forward: forward}
}

// Error is the body-frame rotation still needed, as of the last Step.
func (r *Reorient) Error() physics.Rotator { return r.err }

func (r *Reorient) Step(t *Tick, last Command, _ float64) Result {
	current := t.Car.Rotation.Frame()
	target := physics.FaceTowards(r.Forward, r.Up)
	r.err = current.Transpose().Mul(target).Euler()

	if math.Abs(r.err.Roll) < reorientTolerance &&
		math.Abs(r.err.Pitch) < reorientTolerance &&
		math.Abs(r.err.Yaw) < reorientTolerance {
		return Success()
	}
	if t.Car.HasWheelContact {
		return Failed()
	}

	return InProgress(last.WithAxes(r.err.Roll, r.err.Pitch, r.err.Yaw))
}

func (r *Reorient) Interruptible() bool { return false }
func (r *Reorient) Kickoff() bool       { return false }
func (r *Reorient) Name() string        { return "Reorient" }
func (r *Reorient) Render() []Shape     { return nil }
