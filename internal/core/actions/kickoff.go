package actions

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	kickoffDodgeDuration    = 0.1
	kickoffCenterSpeed      = 1550.0
	kickoffDiagonalSpeed    = 1400.0
	kickoffCenterWidth      = 100.0
	kickoffBoostWindow      = 0.1
	kickoffSecondDodgeScale = 0.3
)

var kickoffBallRest = physics.V(0, 0, 93)

type kickoffPhase uint8

// Phase 1 is the instant the speed threshold is crossed; it hands over to the
// dodge within the same tick.
const (
	kickoffApproach   kickoffPhase = 0
	kickoffDodging    kickoffPhase = 2
	kickoffClosing    kickoffPhase = 3
	kickoffFinalDodge kickoffPhase = 4
)

// BasicKickoff speed-flips towards the ball: drive, dodge along the velocity,
// drive again and dodge into the ball. Exactly one child runs at a time.
type BasicKickoff struct {
	phase     kickoffPhase
	drive     *Drive
	dodge     *AirDodge
	dodgeDone bool
	// time since the first dodge started, jump included
	dodgeTime float64
}

func NewBasicKickoff() *BasicKickoff {
	return &BasicKickoff{}
}

// Phase is the current stage.
func (k *BasicKickoff) Phase() int { return int(k.phase) }

func (k *BasicKickoff) Step(t *Tick, last Command, dt float64) Result {
	car := t.Car

	switch k.phase {
	case kickoffApproach:
		threshold := kickoffDiagonalSpeed
		if math.Abs(car.Location.X) < kickoffCenterWidth {
			threshold = kickoffCenterSpeed
		}
		if car.Speed() > threshold {
			k.drive = nil
			k.dodge = NewAirDodge(kickoffDodgeDuration, car.Location.Add(car.Velocity))
			k.dodgeTime = 0
			k.phase = kickoffDodging
			return k.Step(t, last, dt)
		}
		res := k.driveAtBall(t, last, dt)
		if res.Status == StatusInProgress {
			res.Command.Boost = true
		}
		return res

	case kickoffDodging:
		if !k.dodgeDone {
			res := k.dodge.Step(t, last, dt)
			if res.Status == StatusInProgress {
				res.Command.Boost = k.dodgeTime < kickoffBoostWindow
				k.dodgeTime += dt
				return res
			}
			k.dodgeDone = true
		}
		if !car.HasWheelContact {
			// dodge is done but we have not landed yet
			return InProgress(Command{Throttle: 1})
		}
		k.dodge = nil
		k.phase = kickoffClosing
		return k.Step(t, last, dt)

	case kickoffClosing:
		if car.Location.Dist(kickoffBallRest) < car.Speed()*kickoffSecondDodgeScale {
			k.startFinalDodge(t)
			return k.Step(t, last, dt)
		}
		return k.driveAtBall(t, last, dt)

	case kickoffFinalDodge:
		res := k.dodge.Step(t, last, dt)
		if res.Status != StatusInProgress {
			return Success()
		}
		return res
	}

	return Failed()
}

// driveAtBall steps the drive child towards the live ball. Arriving starts
// the final dodge.
func (k *BasicKickoff) driveAtBall(t *Tick, last Command, dt float64) Result {
	if k.drive == nil {
		k.drive = NewDrive(t.Ball.Location, gotoMaxSpeed, false)
	}
	k.drive.Target = t.Ball.Location

	res := k.drive.Step(t, last, dt)
	switch res.Status {
	case StatusFailed:
		return Failed()
	case StatusSuccess:
		k.startFinalDodge(t)
		return k.Step(t, last, dt)
	}
	return res
}

func (k *BasicKickoff) startFinalDodge(t *Tick) {
	k.drive = nil
	k.dodge = NewAirDodge(kickoffDodgeDuration, t.Ball.Location)
	k.dodgeDone = false
	k.phase = kickoffFinalDodge
}

func (k *BasicKickoff) Interruptible() bool { return false }
func (k *BasicKickoff) Kickoff() bool       { return true }
func (k *BasicKickoff) Name() string        { return "BasicKickoff" }

func (k *BasicKickoff) Render() []Shape {
	switch {
	case k.drive != nil:
		return k.drive.Render()
	case k.dodge != nil:
		return k.dodge.Render()
	}
	return nil
}
