package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	gotoLerp          = 0.56
	gotoMaxSpeed      = 2300.0
	gotoCreepSpeed    = 800.0
	gotoCreepDistance = 1000.0
	gotoAlignedAngle  = 0.1
)

// Goto drives to Target so that it arrives at ArrivalTime, optionally heading
// along Direction. The aim point is pulled back against the direction so the
// approach curves into the requested heading.
type Goto struct {
	Target          physics.Vec3
	Direction       physics.Vec3
	HasDirection    bool
	ArrivalTime     float64
	AdditionalShift float64

	drive   *Drive
	shifted physics.Vec3
}

func NewGoto(target physics.Vec3, arrivalTime float64) *Goto {
	return &Goto{
		Target:      target,
		ArrivalTime: arrivalTime,
		drive:       NewDrive(target, 0, false),
	}
}

// WithDirection sets the heading the car should arrive with.
func (g *Goto) WithDirection(dir physics.Vec3) *Goto {
	g.Direction = dir
	g.HasDirection = true
	return g
}

// TargetSpeed is the speed requested from the drive on the last Step.
func (g *Goto) TargetSpeed() float64 { return g.drive.Speed }

// ShiftedTarget is the point actually driven at on the last Step.
func (g *Goto) ShiftedTarget() physics.Vec3 { return g.shifted }

func (g *Goto) Step(t *Tick, last Command, dt float64) Result {
	car := t.Car
	speed := car.Speed()

	shifted := g.Target
	arrival := g.ArrivalTime
	if g.HasDirection {
		dir := g.Direction.Normalize()
		shift := physics.Clamp(car.Location.GroundDist(g.Target)*gotoLerp, 0, physics.Clamp(speed, 1500, 2300)*1.6)

		// too close to bend the approach: aim at the target itself
		if shift-g.AdditionalShift*0.5 < intercept.TurnRadius(physics.Clamp(speed, 500, 2300))*1.1 {
			shift = 0
		} else {
			shift += g.AdditionalShift
		}
		shifted = g.Target.Sub(dir.Scale(shift))
		arrival -= shifted.GroundDist(g.Target) / physics.Clamp(speed, 500, 2300) * 1.2
	}
	g.shifted = shifted

	dist := car.Location.GroundDist(shifted)
	targetSpeed := gotoMaxSpeed
	if g.ArrivalTime > 0 {
		timeLeft := math.Max(arrival-t.Time, 1e-6)
		targetSpeed = physics.Clamp(dist/timeLeft, 0, gotoMaxSpeed)
	}
	if targetSpeed < gotoCreepSpeed && dist > gotoCreepDistance &&
		car.Forward().AngleBetween(physics.Direction(car.Location, shifted)) < gotoAlignedAngle {
		targetSpeed = 0
	}

	g.drive.Target = shifted
	g.drive.Speed = targetSpeed
	return g.drive.Step(t, last, dt)
}

func (g *Goto) Interruptible() bool { return true }
func (g *Goto) Kickoff() bool       { return false }
func (g *Goto) Name() string        { return "Goto" }

func (g *Goto) Render() []Shape {
	shapes := g.drive.Render()
	if g.HasDirection {
		shapes = append(shapes, Line(g.Target, g.Target.Add(g.Direction.Normalize().Scale(200)), Green))
	}
	return shapes
}
