package agent

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/events/bus"
	"github.com/zeusync/rocketbot/internal/core/observability/log"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// Lifecycle events published on the agent's bus. Data is a Record.
const (
	EventActionStarted  = "action.started"
	EventActionFinished = "action.finished"
	EventActionDropped  = "action.dropped"
)

const (
	DefaultWarmupTicks = 20

	basisScale = 150.0
	// dt for the first stepped tick when no earlier tick was seen
	nominalDt = 1.0 / 60
)

var nameTextAt = physics.V(20, 20, 0)

// Config tunes an Agent.
type Config struct {
	CarIndex       int  `yaml:"car_index" json:"car_index"`
	WarmupTicks    int  `yaml:"warmup_ticks" json:"warmup_ticks"`
	DebugRendering bool `yaml:"debug_rendering" json:"debug_rendering"`
}

// Strategy picks the next action when the agent is idle. It may return nil,
// in which case the agent keeps its previous command.
type Strategy interface {
	Choose(t *actions.Tick) actions.Action
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(t *actions.Tick) actions.Action

func (f StrategyFunc) Choose(t *actions.Tick) actions.Action { return f(t) }

// Output is the agent's answer for one tick.
type Output struct {
	Command actions.Command
	Shapes  []actions.Shape
}

// Agent owns at most one action at a time and steps it every tick.
// It is not safe for concurrent use; run one Agent per car.
type Agent struct {
	cfg      Config
	strategy Strategy
	events   bus.EventBus
	history  History
	logger   log.Log
	source   string

	ticks    int
	lastTime float64
	timed    bool

	lastTouch float64
	seenTouch bool

	current actions.Action
	run     Record
	last    actions.Command
}

// New builds an Agent. A nil bus or logger gets a private bus or a no-op logger.
func New(cfg Config, strategy Strategy, events bus.EventBus, logger log.Log) *Agent {
	if cfg.WarmupTicks < 0 {
		cfg.WarmupTicks = 0
	}
	if events == nil {
		events = bus.New()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	source := fmt.Sprintf("car-%d", cfg.CarIndex)
	return &Agent{
		cfg:      cfg,
		strategy: strategy,
		events:   events,
		history:  NewHistory(),
		logger:   logger.Named("agent").With(log.Int("car_index", cfg.CarIndex)),
		source:   source,
	}
}

func (a *Agent) Events() bus.EventBus    { return a.events }
func (a *Agent) History() History        { return a.history }
func (a *Agent) Current() actions.Action { return a.current }
func (a *Agent) Config() Config          { return a.cfg }

// Step consumes one tick and returns the command to apply.
func (a *Agent) Step(t *actions.Tick) Output {
	if a.ticks < a.cfg.WarmupTicks {
		a.ticks++
		a.lastTime, a.timed = t.Time, true
		if a.ticks == a.cfg.WarmupTicks {
			a.logger.Debug("warm-up finished", log.Float64("time", t.Time))
		}
		return Output{}
	}

	dt := nominalDt
	if a.timed {
		dt = t.Time - a.lastTime
	}
	a.lastTime, a.timed = t.Time, true

	if a.current != nil && t.Kickoff && !a.current.Kickoff() {
		a.drop(t, "kickoff")
	}
	a.checkTouch(t)

	if a.current == nil && a.strategy != nil {
		if next := a.strategy.Choose(t); next != nil {
			a.start(t, next)
		}
	}

	car := t.Car
	frame := car.Rotation.Frame()
	shapes := []actions.Shape{
		actions.Line(car.Location, car.Location.Add(frame.Forward().Scale(basisScale)), actions.Green),
		actions.Line(car.Location, car.Location.Add(frame.Left().Scale(basisScale)), actions.Blue),
		actions.Line(car.Location, car.Location.Add(frame.Up().Scale(basisScale)), actions.Red),
	}

	if a.current != nil {
		res := a.current.Step(t, a.last, dt)
		if res.Status == actions.StatusInProgress {
			a.last = res.Command.Clamp()
			shapes = append(shapes, res.Shapes...)
			if a.cfg.DebugRendering {
				shapes = append(shapes, a.current.Render()...)
				shapes = append(shapes, actions.Text(nameTextAt, a.current.Name(), actions.Yellow))
			}
		} else {
			a.finish(t, res.Status)
		}
	}

	return Output{Command: a.last, Shapes: shapes}
}

// checkTouch drops an interruptible action when another player touched the
// ball since the last touch the agent saw.
func (a *Agent) checkTouch(t *actions.Tick) {
	touch := t.LatestTouch
	if touch == nil {
		return
	}
	if !a.seenTouch {
		a.seenTouch = true
		a.lastTouch = touch.Time
		return
	}
	if touch.Time <= a.lastTouch {
		return
	}
	a.lastTouch = touch.Time
	if touch.Player == t.Car.Name {
		return
	}
	if a.current != nil && a.current.Interruptible() {
		a.drop(t, "touch")
	}
}

func (a *Agent) start(t *actions.Tick, next actions.Action) {
	a.current = next
	a.run = Record{RunID: uuid.NewString(), Action: next.Name(), Started: t.Time}
	a.logger.Info("action chosen",
		log.String("action", a.run.Action),
		log.String("run_id", a.run.RunID),
		log.Float64("time", t.Time),
	)
	a.publish(EventActionStarted, t.Time, a.run)
}

func (a *Agent) finish(t *actions.Tick, status actions.Status) {
	rec := a.run
	rec.Finished = t.Time
	rec.Status = status
	a.current = nil

	a.history.Append(rec)
	a.logger.Debug("action finished",
		log.String("action", rec.Action),
		log.String("run_id", rec.RunID),
		log.String("status", status.String()),
		log.Float64("duration", rec.Finished-rec.Started),
	)
	a.publish(EventActionFinished, t.Time, rec)
}

func (a *Agent) drop(t *actions.Tick, reason string) {
	rec := a.run
	rec.Finished = t.Time
	rec.Status = actions.StatusInProgress
	rec.Dropped = reason
	a.current = nil

	a.history.Append(rec)
	a.logger.Debug("action dropped",
		log.String("action", rec.Action),
		log.String("run_id", rec.RunID),
		log.String("reason", reason),
	)
	a.publish(EventActionDropped, t.Time, rec)
}

func (a *Agent) publish(typ string, at float64, rec Record) {
	if err := a.events.Publish(bus.NewEvent(typ, a.source, at, rec)); err != nil {
		a.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}
