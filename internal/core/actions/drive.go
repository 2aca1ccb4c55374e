package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	driveArrivedDist    = 150.0
	driveGiveUpMargin   = 400.0
	driveSteerGain      = 2.5
	powerslideAngle     = 0.9
	powerslideCooldown  = 100
	boostAlignAngle     = 0.3
	boostMinTargetSpeed = 1400.0
	boostMaxSpeed       = 2250.0
	boostMinDeficit     = 50.0
	brakeOverspeed      = 400.0
	coastOverspeed      = 100.0
)

// Drive steers towards a ground point and holds a target speed. Steering is a
// pure bearing servo; speed is a separate governor.
type Drive struct {
	Target       physics.Vec3
	Speed        float64
	DriveOnWalls bool

	startDist     float64
	started       bool
	slideCooldown int

	car physics.Vec3
	aim physics.Vec3
}

func NewDrive(target physics.Vec3, speed float64, driveOnWalls bool) *Drive {
	return &Drive{Target: target, Speed: speed, DriveOnWalls: driveOnWalls}
}

func (d *Drive) Step(t *Tick, _ Command, _ float64) Result {
	car := t.Car
	loc := car.Location
	d.car = loc

	dist := loc.GroundDist(d.Target)
	if !d.started {
		d.startDist = dist
		d.started = true
	}
	if dist < driveArrivedDist {
		return Success()
	}
	if dist > d.startDist+driveGiveUpMargin {
		return Failed()
	}

	d.aim = d.steerTarget(loc)

	bearing := math.Atan2(d.aim.Y-loc.Y, d.aim.X-loc.X)
	steerErr := physics.WrapAngle(bearing - car.Rotation.Yaw)

	cmd := Command{
		Steer:    driveSteerGain * steerErr,
		Throttle: 1,
	}

	if math.Abs(steerErr) > powerslideAngle && d.slideCooldown == 0 {
		cmd.Handbrake = true
		d.slideCooldown = powerslideCooldown
	} else if d.slideCooldown > 0 {
		d.slideCooldown--
	}

	speed := car.ForwardSpeed()
	switch over := speed - d.Speed; {
	case over < 0:
		cmd.Boost = d.Speed > boostMinTargetSpeed && speed < boostMaxSpeed && -over > boostMinDeficit
	case over > brakeOverspeed:
		cmd.Throttle = -1
	case over > coastOverspeed:
		cmd.Throttle = 0.01
		if car.Up().Z > 0.85 {
			cmd.Throttle = 0
		}
	}

	if math.Abs(steerErr) > boostAlignAngle {
		cmd.Boost = false
	}

	return InProgress(cmd)
}

// steerTarget keeps the aim point off the walls and out of the goal nets.
func (d *Drive) steerTarget(loc physics.Vec3) physics.Vec3 {
	target := arena.Clamp(d.Target, 100)

	if math.Abs(loc.Y) > arena.Size.Y-50 && math.Abs(loc.X) < 1000 {
		target = arena.Clamp(target, 200)
		target.X = physics.AbsClamp(target.X, 700)
	}

	if !d.DriveOnWalls {
		seam := 200.0
		if math.Abs(loc.Y) > arena.Size.Y-100 {
			seam = 100
		}
		if loc.Z > seam {
			target = target.Ground()
		}
	}
	return target
}

func (d *Drive) Interruptible() bool { return true }
func (d *Drive) Kickoff() bool       { return false }
func (d *Drive) Name() string        { return "Drive" }

func (d *Drive) Render() []Shape {
	if !d.started {
		return nil
	}
	return append([]Shape{Line(d.car, d.aim, Yellow)}, Cross(d.aim, 100, Yellow)...)
}
