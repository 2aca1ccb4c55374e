package replay

import (
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	TickRate = 60

	gravity          = -650.0
	ballRadius       = 92.75
	carRestHeight    = 17.0
	ballRestitution  = 0.6
	spawnMargin      = 300.0
	launchSpeed      = 1200.0
	predictionWindow = 3.0
	predictionStep   = 1.0 / 20
	pcgStream        = 0x9e3779b97f4a7c15
)

// Scenario builds a synthetic recording: the car and ball start at random
// positions with random velocities and fall under gravity. The same name
// always yields the same recording.
//
// Commands are not fed back into the world, so scenarios exercise action
// selection and the airborne maneuvers rather than driving.
func Scenario(name string, ticks int) *Recording {
	seed := xxhash.Sum64String(name)
	rng := rand.New(rand.NewPCG(seed, seed^pcgStream))

	between := func(lo, hi float64) float64 { return lo + rng.Float64()*(hi-lo) }
	randomVelocity := func() physics.Vec3 {
		return physics.V(
			between(-launchSpeed, launchSpeed),
			between(-launchSpeed, launchSpeed),
			between(0, launchSpeed),
		)
	}

	car := physics.Body{
		Location: arena.RandomPoint(rng, spawnMargin),
		Velocity: randomVelocity(),
		Rotation: physics.Rotator{
			Pitch: between(-math.Pi/2, math.Pi/2),
			Yaw:   between(-math.Pi, math.Pi),
			Roll:  between(-math.Pi, math.Pi),
		},
		Boost: rng.IntN(101),
		Name:  name,
	}
	ball := physics.Body{
		Location: arena.RandomPoint(rng, spawnMargin),
		Velocity: randomVelocity(),
	}

	pads := make([]arena.PadStatus, arena.PadCount)
	for i := range pads {
		pads[i].Active = true
	}

	dt := 1.0 / TickRate
	rec := &Recording{Name: name, Ticks: make([]Frame, 0, ticks)}
	for i := 0; i < ticks; i++ {
		now := float64(i) * dt
		rec.Ticks = append(rec.Ticks, Frame{
			Time:        now,
			Car:         car,
			Ball:        ball,
			Predictions: predict(ball, now),
			Pads:        pads,
		})
		car = stepCar(car, dt)
		ball = stepBall(ball, dt)
	}
	return rec
}

func predict(ball physics.Body, now float64) []intercept.Slice {
	n := int(predictionWindow / predictionStep)
	out := make([]intercept.Slice, 0, n)
	for i := 1; i <= n; i++ {
		ball = stepBall(ball, predictionStep)
		out = append(out, intercept.Slice{Time: now + float64(i)*predictionStep, Ball: ball})
	}
	return out
}

func integrate(b physics.Body, dt float64) physics.Body {
	b.Velocity = b.Velocity.Add(physics.V(0, 0, gravity*dt))
	if s := b.Velocity.Len(); s > intercept.MaxCarSpeed {
		b.Velocity = b.Velocity.Scale(intercept.MaxCarSpeed / s)
	}
	b.Location = b.Location.Add(b.Velocity.Scale(dt))
	return b
}

// bounceWalls reflects velocity off the side walls and the ceiling, keeping
// radius clearance.
func bounceWalls(b physics.Body, radius float64) physics.Body {
	limit := func(p, v *float64, lo, hi float64) {
		switch {
		case *p < lo:
			*p, *v = lo, math.Abs(*v)*ballRestitution
		case *p > hi:
			*p, *v = hi, -math.Abs(*v)*ballRestitution
		}
	}
	limit(&b.Location.X, &b.Velocity.X, -arena.Size.X+radius, arena.Size.X-radius)
	limit(&b.Location.Y, &b.Velocity.Y, -arena.Size.Y+radius, arena.Size.Y-radius)
	if b.Location.Z > arena.Size.Z-radius {
		b.Location.Z = arena.Size.Z - radius
		b.Velocity.Z = -math.Abs(b.Velocity.Z) * ballRestitution
	}
	return b
}

func stepBall(b physics.Body, dt float64) physics.Body {
	b = bounceWalls(integrate(b, dt), ballRadius)
	if b.Location.Z < ballRadius {
		b.Location.Z = ballRadius
		b.Velocity.Z = math.Abs(b.Velocity.Z) * ballRestitution
	}
	return b
}

// stepCar lands the car upright on the floor; it never drives.
func stepCar(c physics.Body, dt float64) physics.Body {
	if c.HasWheelContact {
		return c
	}
	c = bounceWalls(integrate(c, dt), carRestHeight)
	if c.Location.Z <= carRestHeight {
		c.Location.Z = carRestHeight
		c.Velocity = c.Velocity.Ground()
		c.Rotation = physics.Rotator{Yaw: c.Rotation.Yaw}
		c.HasWheelContact = true
	}
	return c
}
