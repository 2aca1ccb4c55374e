package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

func groundCar(loc physics.Vec3, yaw, speed float64) Body {
	rot := physics.Rotator{Yaw: yaw}
	return Body{
		Location:        loc,
		Rotation:        rot,
		Velocity:        rot.Forward().Scale(speed),
		HasWheelContact: true,
	}
}

func airCar(loc, vel physics.Vec3, rot physics.Rotator) Body {
	return Body{Location: loc, Rotation: rot, Velocity: vel}
}

func tickFor(car Body) *Tick {
	return &Tick{
		Time: 10,
		Car:  car,
		Ball: Body{Location: physics.V(0, 0, 93)},
	}
}

// run steps a until it terminates or max ticks pass, feeding each command back
// as the next tick's last command. It returns every result.
func run(a Action, t *Tick, last Command, dt float64, max int) []Result {
	var out []Result
	for i := 0; i < max; i++ {
		res := a.Step(t, last, dt)
		out = append(out, res)
		if res.Status.Terminal() {
			break
		}
		last = res.Command
		t.Time += dt
	}
	return out
}

func axesZero(c Command) bool {
	return c.Roll == 0 && c.Pitch == 0 && c.Yaw == 0
}

const halfPi = math.Pi / 2
