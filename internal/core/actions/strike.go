package actions

import (
	"fmt"

	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	strikeUpdateInterval  = 0.2
	strikeStopUpdating    = 0.1
	strikeMaxAdditional   = 0.4
	strikeAirborneTimeout = 1.0
	strikeCrawlSpeed      = 300.0
	shotApproachOffset    = 105.0
	shotDirectionWeight   = 4000.0
	driveShotMaxBallZ     = 200.0
)

// AimKind selects how a strike lines up with the intercept.
type AimKind uint8

const (
	// AimDirect drives at the intercept point.
	AimDirect AimKind = iota
	// AimShot approaches from the side opposite Aim.Target so the touch sends
	// the ball towards it.
	AimShot
)

type Aim struct {
	Kind   AimKind
	Target physics.Vec3
}

// Strike repeatedly re-solves the ball intercept and drives through it.
type Strike struct {
	Aim Aim
	// LowBallsOnly restricts intercepts to balls the car can reach without jumping.
	LowBallsOnly bool

	approach    *Goto
	intercept   intercept.Intercept
	planned     bool
	finished    bool
	initialTime float64
	lastUpdate  float64
	now         float64
	car         physics.Vec3
}

func NewStrike() *Strike {
	return &Strike{Aim: Aim{Kind: AimDirect}}
}

// NewDriveShot hits a grounded ball towards target.
func NewDriveShot(target physics.Vec3) *Strike {
	return &Strike{Aim: Aim{Kind: AimShot, Target: target}, LowBallsOnly: true}
}

// Intercept is the plan as of the last update.
func (s *Strike) Intercept() intercept.Intercept { return s.intercept }

func (s *Strike) Step(t *Tick, last Command, dt float64) Result {
	s.now = t.Time
	s.car = t.Car.Location

	if !s.planned {
		s.update(t)
	} else if s.lastUpdate+strikeUpdateInterval < t.Time &&
		t.Time < s.intercept.Time-strikeStopUpdating &&
		t.Car.HasWheelContact &&
		!last.Jump {
		s.update(t)
	}

	if s.intercept.Time-t.Time > strikeAirborneTimeout && s.Interruptible() && !t.Car.HasWheelContact {
		s.finished = true
	}

	cmd := last
	res := s.approach.Step(t, last, dt)
	if res.Status == StatusInProgress {
		cmd = res.Command
		// crawling into position: don't nudge the ball early
		if s.approach.TargetSpeed() < strikeCrawlSpeed {
			cmd.Throttle = 0
		}
	} else {
		s.finished = true
	}

	if s.finished {
		return Success()
	}
	return InProgress(cmd, res.Shapes...)
}

func (s *Strike) update(t *Tick) {
	if !s.planned {
		s.approach = NewGoto(t.Ball.Location, t.Time)
	}

	opts := intercept.Options{}
	if s.LowBallsOnly {
		opts.Predicate = func(sl intercept.Slice) bool { return sl.Ball.Location.Z < driveShotMaxBallZ }
	}
	ic := intercept.Solve(t.Car, t.Time, t.Predictions, t.Ball, opts)
	s.configure(ic)

	if !s.planned {
		s.initialTime = ic.Time
		s.planned = true
	}
	s.lastUpdate = t.Time

	if !ic.Viable || ic.Time > s.initialTime+strikeMaxAdditional {
		s.finished = true
	}
}

func (s *Strike) configure(ic intercept.Intercept) {
	s.intercept = ic
	s.approach.ArrivalTime = ic.Time

	switch s.Aim.Kind {
	case AimShot:
		ballPos := ic.Location.Ground()
		targetDir := physics.Direction(ballPos, s.Aim.Target.Ground())
		hitDir := targetDir.Scale(shotDirectionWeight).Sub(ic.Target.Velocity.Ground()).Normalize()
		s.approach.Target = ballPos.Sub(hitDir.Scale(shotApproachOffset))
		s.approach.WithDirection(hitDir)
	default:
		s.approach.Target = ic.Location
	}
}

// Interruptible turns false once the car is committed to the touch.
func (s *Strike) Interruptible() bool {
	if s.planned && s.now > s.intercept.Time-strikeStopUpdating {
		return false
	}
	return true
}

func (s *Strike) Kickoff() bool { return false }

func (s *Strike) Name() string {
	if s.Aim.Kind == AimShot {
		if s.planned {
			return fmt.Sprintf("DriveShot (t=%.2f)", s.intercept.Time)
		}
		return "DriveShot"
	}
	return "Strike"
}

func (s *Strike) Render() []Shape {
	if !s.planned {
		return nil
	}
	shapes := []Shape{Line(s.car, s.intercept.Location, Red)}
	shapes = append(shapes, Cross(s.intercept.Location, 120, Red)...)
	return append(shapes, s.approach.Render()...)
}
