package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const dodgeRecoveryTime = 0.4

// AirDodge jumps, waits a beat and presses jump again. With a target the second
// press dodges towards it; without one it is a plain double jump.
type AirDodge struct {
	Target    physics.Vec3
	HasTarget bool

	jump         *Jump
	jumpFinished bool
	controls     Command
	counter      int
	stateTimer   float64
	car          physics.Vec3
}

// NewAirDodge dodges towards target after a jump of the given duration.
func NewAirDodge(duration float64, target physics.Vec3) *AirDodge {
	return &AirDodge{Target: target, HasTarget: true, jump: NewJump(duration)}
}

// NewDoubleJump jumps twice without any directional input.
func NewDoubleJump(duration float64) *AirDodge {
	return &AirDodge{jump: NewJump(duration)}
}

// StateTimer is the time spent since the first jump was released.
func (a *AirDodge) StateTimer() float64 { return a.stateTimer }

func (a *AirDodge) Step(t *Tick, last Command, dt float64) Result {
	car := t.Car
	a.car = car.Location

	if !a.jumpFinished {
		res := a.jump.Step(t, last, dt)
		if res.Status == StatusInProgress {
			a.controls = res.Command
		} else {
			a.jumpFinished = true
			a.controls.Jump = false
		}
		return InProgress(a.controls)
	}

	switch {
	case a.counter == 0:
		a.aim(car)
	case a.counter == 2:
		a.controls.Jump = true
	case a.counter == 3:
		a.controls.Jump = false
	case a.counter >= 4:
		a.controls = a.controls.WithAxes(0, 0, 0)
		a.controls.Jump = false
	}
	a.counter++
	a.stateTimer += dt

	recovery := 0.0
	if a.HasTarget {
		recovery = dodgeRecoveryTime
	}
	if a.stateTimer > recovery && a.counter >= 6 {
		return Success()
	}
	return InProgress(a.controls)
}

// aim sets the dodge direction. Yaw follows the steering convention: positive
// turns towards the car's left.
func (a *AirDodge) aim(car Body) {
	if !a.HasTarget {
		a.controls = a.controls.WithAxes(0, 0, 0)
		return
	}

	local := car.Local(a.Target)
	a.controls.Roll = 0
	a.controls.Pitch = -1
	a.controls.Yaw = physics.Clamp11(math.Atan2(local.Y, local.X))
	a.controls.Boost = false

	if local.X > 0 && car.ForwardSpeed() > 500 {
		a.controls.Pitch *= 0.8
		a.controls.Yaw = physics.Clamp11(a.controls.Yaw * 5)
	}
}

func (a *AirDodge) Interruptible() bool { return false }
func (a *AirDodge) Kickoff() bool       { return false }
func (a *AirDodge) Name() string        { return "AirDodge" }

func (a *AirDodge) Render() []Shape {
	if !a.HasTarget {
		return nil
	}
	return []Shape{Line(a.car, a.Target, Yellow)}
}
