package strategy

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	DefaultDriveSpeed = 1300.0

	lowBoost          = 10
	safeBallDistance  = 3000.0
	shotAlignment     = 0.5
	padSearchRadius   = 4000.0
	padSideTolerance  = 6000.0
	recoverFromTurtle = true
)

// Solo plays a single car without teammates.
type Solo struct{}

func NewSolo() *Solo { return &Solo{} }

func (s *Solo) Choose(t *actions.Tick) actions.Action {
	car := t.Car
	if t.Kickoff {
		return actions.NewBasicKickoff()
	}
	if !car.HasWheelContact {
		return actions.NewRecover(recoverFromTurtle)
	}

	myGoal := arena.HomeGoal(car.Team)
	theirGoal := arena.AwayGoal(car.Team)
	mine := intercept.Solve(car, t.Time, t.Predictions, t.Ball, intercept.Options{})

	if car.Boost < lowBoost && mine.Location.GroundDist(myGoal) > safeBallDistance {
		pad, ok := arena.ChooseBoostPad(t.BoostPads, car.Location, t.Ball.Location, myGoal,
			func(target physics.Vec3) float64 { return intercept.EstimateArrivalTime(car, target) },
			badPad(car.Location, mine.Location, theirGoal),
		)
		if ok {
			return actions.NewGoto(pad.Location, 0)
		}
	}

	if mine.Viable && Alignment(car.Location, mine.Location, theirGoal) > shotAlignment {
		return actions.NewDriveShot(theirGoal)
	}

	return actions.NewDrive(t.Ball.Location, DefaultDriveSpeed, false)
}

// Alignment is the cosine between the car-to-ball and ball-to-target
// directions: 1 when the car is lined up behind the ball.
func Alignment(car, ball, target physics.Vec3) float64 {
	return physics.Direction(car.Ground(), ball.Ground()).Dot(physics.Direction(ball.Ground(), target.Ground()))
}

// badPad rejects nearby pads that would pull the car up the field past the
// ball, or across to the far side.
func badPad(car, ball, theirGoal physics.Vec3) func(arena.PadState) bool {
	return func(pad arena.PadState) bool {
		if car.GroundDist(pad.Location) >= padSearchRadius {
			return false
		}
		upfield := math.Abs(pad.Location.Y-theirGoal.Y) < math.Abs(ball.Y-theirGoal.Y)
		wide := math.Abs(pad.Location.X-car.X) > padSideTolerance
		return upfield || wide
	}
}
