package actions

import (
	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// Status is the outcome of one Step.
type Status int

const (
	StatusInProgress Status = iota
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailed:
		return "Failed"
	default:
		return "InProgress"
	}
}

// Terminal reports whether the action is done and must not be stepped again.
func (s Status) Terminal() bool { return s != StatusInProgress }

// Body is the per-tick rigid-body snapshot of a car or the ball.
type Body = physics.Body

// Touch is the most recent ball contact reported by the simulator.
type Touch struct {
	Time   float64 `yaml:"time" json:"time"`
	Player string  `yaml:"player" json:"player"`
}

// Tick is the world as seen on one simulation step.
type Tick struct {
	Time        float64
	Car         Body
	Ball        Body
	Opponents   []Body
	Predictions []intercept.Slice
	Kickoff     bool
	BoostPads   []arena.PadState
	LatestTouch *Touch
}

// Result is what an action hands back for one tick. Command and Shapes are
// only meaningful while the action is in progress.
type Result struct {
	Status  Status
	Command Command
	Shapes  []Shape
}

// Action is a stateful maneuver stepped once per tick until it reports a
// terminal status. Implementations own their children exclusively.
type Action interface {
	// Step advances the maneuver. last is the command applied on the previous tick.
	Step(t *Tick, last Command, dt float64) Result
	// Interruptible may change with the maneuver phase and is queried every tick.
	Interruptible() bool
	// Kickoff marks maneuvers that survive a kickoff pause.
	Kickoff() bool
	Name() string
	// Render returns debug shapes describing the maneuver's plan.
	Render() []Shape
}

// InProgress wraps a clamped command.
func InProgress(cmd Command, shapes ...Shape) Result {
	return Result{Status: StatusInProgress, Command: cmd.Clamp(), Shapes: shapes}
}

func Success() Result { return Result{Status: StatusSuccess} }

func Failed() Result { return Result{Status: StatusFailed} }
