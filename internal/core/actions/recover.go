package actions

import (
	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	recoverStep      = 1.0 / 60
	recoverSteps     = 48
	recoverMinSteps  = 20
	recoverMaxSpeed  = 2300.0
	upsideDownLimit  = -0.95
	landingCrossSize = 100.0
)

var gravity = physics.V(0, 0, -650)

// Recover predicts where an airborne car lands and orients it wheels-first
// towards that surface. The trajectory is re-solved every tick.
type Recover struct {
	JumpWhenUpsideDown bool

	landing    bool
	landingPos physics.Vec3
	trajectory []physics.Vec3
	reorient   *Reorient
}

func NewRecover(jumpWhenUpsideDown bool) *Recover {
	return &Recover{JumpWhenUpsideDown: jumpWhenUpsideDown}
}

// Landing reports whether the last simulated trajectory hit a surface.
func (r *Recover) Landing() (physics.Vec3, bool) { return r.landingPos, r.landing }

func (r *Recover) simulateLanding(car Body) {
	pos, vel := car.Location, car.Velocity
	r.trajectory = append(r.trajectory[:0], pos)
	r.landing = false

	var normal physics.Vec3
	for i := 0; i < recoverSteps; i++ {
		pos = pos.Add(vel.Scale(recoverStep))
		vel = vel.Add(gravity.Scale(recoverStep))
		if vel.Len() > recoverMaxSpeed {
			vel = vel.Normalize().Scale(recoverMaxSpeed)
		}
		r.trajectory = append(r.trajectory, pos)

		if n, hit := arena.CollisionNormal(pos); hit {
			normal = n
			if i > recoverMinSteps {
				r.landing = true
				r.landingPos = pos
				break
			}
		}
	}

	if r.landing {
		up := normal
		// wheels face into the arena, away from the surface we hit
		if up.Dot(r.landingPos) > 0 {
			up = up.Neg()
		}
		forward := vel.Sub(up.Scale(vel.Dot(up))).Normalize()
		r.reorient = NewReorient(up, forward)
		return
	}
	r.reorient = NewReorient(physics.WorldUp, vel.Normalize())
}

func (r *Recover) Step(t *Tick, last Command, dt float64) Result {
	car := t.Car
	r.simulateLanding(car)

	cmd := last
	res := r.reorient.Step(t, last, dt)
	if res.Status == StatusInProgress {
		cmd = res.Command
	} else {
		cmd = cmd.WithAxes(0, 0, 0)
	}
	// full throttle helps if we end up on our roof
	cmd.Throttle = 1

	if r.JumpWhenUpsideDown && car.HasWheelContact && car.Up().Dot(physics.WorldUp) < upsideDownLimit {
		cmd.Jump = true
		r.landing = false
	} else if car.HasWheelContact {
		return Success()
	}
	return InProgress(cmd)
}

func (r *Recover) Interruptible() bool { return false }
func (r *Recover) Kickoff() bool       { return false }
func (r *Recover) Name() string        { return "Recover" }

func (r *Recover) Render() []Shape {
	var shapes []Shape
	for i := 1; i < len(r.trajectory); i++ {
		shapes = append(shapes, Line(r.trajectory[i-1], r.trajectory[i], Blue))
	}
	label := "Pointing Down"
	if r.landing {
		shapes = append(shapes, Cross(r.landingPos.Add(physics.V(0, 0, 50)), landingCrossSize, Yellow)...)
		label = "Landing"
	}
	return append(shapes, Text(physics.V(20, 50, 0), label, Yellow))
}
