package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/events/bus"
	"github.com/zeusync/rocketbot/internal/core/observability/log"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// scripted returns InProgress with Throttle set to its step count until it
// has run for steps ticks.
type scripted struct {
	name          string
	steps         int
	interruptible bool
	kickoff       bool

	calls int
	dts   []float64
	lasts []actions.Command
}

func (s *scripted) Step(_ *actions.Tick, last actions.Command, dt float64) actions.Result {
	s.calls++
	s.dts = append(s.dts, dt)
	s.lasts = append(s.lasts, last)
	if s.calls > s.steps {
		return actions.Success()
	}
	return actions.InProgress(actions.Command{Throttle: float64(s.calls) / 10, Steer: 3},
		actions.Line(physics.Zero, physics.UnitX, actions.Red))
}

func (s *scripted) Interruptible() bool     { return s.interruptible }
func (s *scripted) Kickoff() bool           { return s.kickoff }
func (s *scripted) Name() string            { return s.name }
func (s *scripted) Render() []actions.Shape { return []actions.Shape{actions.Text(physics.Zero, "plan", actions.Blue)} }

type queue struct {
	next  []actions.Action
	calls int
}

func (q *queue) Choose(*actions.Tick) actions.Action {
	q.calls++
	if len(q.next) == 0 {
		return nil
	}
	a := q.next[0]
	q.next = q.next[1:]
	return a
}

func tickAt(time float64) *actions.Tick {
	return &actions.Tick{
		Time: time,
		Car: actions.Body{
			Location:        physics.V(0, 0, 17),
			HasWheelContact: true,
			Name:            "me",
		},
		Ball: actions.Body{Location: physics.V(0, 0, 93)},
	}
}

func TestWarmupEmitsNeutralCommands(t *testing.T) {
	act := &scripted{name: "Drive", steps: 100}
	a := New(Config{WarmupTicks: 3}, &queue{next: []actions.Action{act}}, nil, nil)

	for i := 0; i < 3; i++ {
		out := a.Step(tickAt(float64(i) * 0.1))
		assert.Equal(t, actions.Command{}, out.Command)
		assert.Empty(t, out.Shapes)
	}
	assert.Zero(t, act.calls)

	out := a.Step(tickAt(0.3))
	require.Equal(t, 1, act.calls)
	assert.InDelta(t, 0.1, act.dts[0], 1e-9, "dt measured from the last warm-up tick")
	assert.Equal(t, 0.1, out.Command.Throttle)
	assert.Equal(t, 1.0, out.Command.Steer, "agent clamps")
	// three basis lines plus the action's own shape
	assert.Len(t, out.Shapes, 4)
}

func TestFeedsLastCommandBack(t *testing.T) {
	act := &scripted{name: "Drive", steps: 100}
	a := New(Config{}, &queue{next: []actions.Action{act}}, nil, nil)

	a.Step(tickAt(1))
	a.Step(tickAt(1.5))
	require.Len(t, act.lasts, 2)
	assert.Equal(t, actions.Command{}, act.lasts[0])
	assert.Equal(t, 0.1, act.lasts[1].Throttle)
	assert.Equal(t, 1.0, act.lasts[1].Steer)
	assert.InDelta(t, 0.5, act.dts[1], 1e-9)
}

func TestFirstTickWithoutWarmupUsesNominalDt(t *testing.T) {
	act := &scripted{name: "Jump", steps: 100}
	a := New(Config{WarmupTicks: 0}, &queue{next: []actions.Action{act}}, nil, nil)

	a.Step(tickAt(300))
	a.Step(tickAt(300 + 1.0/60))
	require.Len(t, act.dts, 2)
	assert.InDelta(t, 1.0/60, act.dts[0], 1e-9)
	assert.InDelta(t, 1.0/60, act.dts[1], 1e-9)
}

func TestTerminalResultKeepsPreviousCommand(t *testing.T) {
	first := &scripted{name: "Jump", steps: 1}
	second := &scripted{name: "Drive", steps: 100}
	q := &queue{next: []actions.Action{first, second}}
	a := New(Config{}, q, nil, nil)

	assert.Equal(t, 0.1, a.Step(tickAt(1)).Command.Throttle)
	out := a.Step(tickAt(1.1))
	assert.Equal(t, 0.1, out.Command.Throttle)
	assert.Nil(t, a.Current())

	// the next tick asks the strategy again
	out = a.Step(tickAt(1.2))
	assert.Same(t, second, a.Current())
	assert.Equal(t, 0.1, out.Command.Throttle)
	assert.Equal(t, 2, q.calls)

	recs := a.History().Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "Jump", recs[0].Action)
	assert.Equal(t, actions.StatusSuccess, recs[0].Status)
	assert.Equal(t, 1.0, recs[0].Started)
	assert.Equal(t, 1.1, recs[0].Finished)
	assert.NotEmpty(t, recs[0].RunID)
}

func TestKickoffDropsOrdinaryActions(t *testing.T) {
	drive := &scripted{name: "Drive", steps: 100, interruptible: true}
	kick := &scripted{name: "BasicKickoff", steps: 100, kickoff: true}
	a := New(Config{}, &queue{next: []actions.Action{drive, kick}}, nil, nil)

	a.Step(tickAt(1))
	k := tickAt(2)
	k.Kickoff = true
	a.Step(k)
	assert.Same(t, kick, a.Current())
	assert.Equal(t, 1, drive.calls)

	// a kickoff action survives the pause
	a.Step(k)
	assert.Same(t, kick, a.Current())

	recs := a.History().Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "kickoff", recs[0].Dropped)
}

func TestOpponentTouchResetsInterruptibleAction(t *testing.T) {
	drive := &scripted{name: "Drive", steps: 100, interruptible: true}
	next := &scripted{name: "Strike", steps: 100}
	a := New(Config{}, &queue{next: []actions.Action{drive, next}}, nil, nil)

	tick := tickAt(1)
	tick.LatestTouch = &actions.Touch{Time: 0.5, Player: "them"}
	a.Step(tick)
	assert.Same(t, drive, a.Current(), "first touch seen only sets the baseline")

	tick = tickAt(1.1)
	tick.LatestTouch = &actions.Touch{Time: 1.05, Player: "me"}
	a.Step(tick)
	assert.Same(t, drive, a.Current(), "own touches never reset")

	tick = tickAt(1.2)
	tick.LatestTouch = &actions.Touch{Time: 1.15, Player: "them"}
	a.Step(tick)
	assert.Same(t, next, a.Current())

	// Strike here is not interruptible
	tick = tickAt(1.3)
	tick.LatestTouch = &actions.Touch{Time: 1.25, Player: "them"}
	a.Step(tick)
	assert.Same(t, next, a.Current())
}

func TestDebugRenderingAddsPlanAndName(t *testing.T) {
	act := &scripted{name: "Drive", steps: 100}
	a := New(Config{DebugRendering: true}, &queue{next: []actions.Action{act}}, nil, nil)

	out := a.Step(tickAt(1))
	require.Len(t, out.Shapes, 6)

	basis := out.Shapes[:3]
	assert.Equal(t, actions.Green, basis[0].Color)
	assert.InDelta(t, 150.0, basis[0].End.X, 1e-9)
	assert.Equal(t, actions.Blue, basis[1].Color)
	assert.InDelta(t, 150.0, basis[1].End.Y, 1e-9)
	assert.Equal(t, actions.Red, basis[2].Color)
	assert.InDelta(t, 167.0, basis[2].End.Z, 1e-9)

	name := out.Shapes[5]
	assert.Equal(t, actions.ShapeText, name.Kind)
	assert.Equal(t, "Drive", name.Text)
	assert.Equal(t, actions.Yellow, name.Color)
}

func TestLifecycleEventsAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	events := bus.New()

	var seen []string
	var records []Record
	_, err := events.Subscribe(bus.Wildcard, func(e bus.Event) error {
		seen = append(seen, e.Type())
		records = append(records, e.Data().(Record))
		return nil
	})
	require.NoError(t, err)

	act := &scripted{name: "Jump", steps: 1}
	a := New(Config{CarIndex: 2}, &queue{next: []actions.Action{act}}, events, log.NewFromZap(zap.New(core)))
	a.Step(tickAt(4))
	a.Step(tickAt(4.5))

	assert.Equal(t, []string{EventActionStarted, EventActionFinished}, seen)
	assert.Equal(t, records[0].RunID, records[1].RunID)
	assert.Equal(t, actions.StatusSuccess, records[1].Status)

	chosen := logs.FilterMessage("action chosen").All()
	require.Len(t, chosen, 1)
	assert.Equal(t, "Jump", chosen[0].ContextMap()["action"])
	assert.Equal(t, int64(2), chosen[0].ContextMap()["car_index"])
	assert.Equal(t, 1, logs.FilterMessage("action finished").Len())
}

func TestHandlerErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	events := bus.New()
	_, err := events.Subscribe(EventActionStarted, func(bus.Event) error { return errors.New("sink down") })
	require.NoError(t, err)

	a := New(Config{}, &queue{next: []actions.Action{&scripted{name: "Drive", steps: 10}}}, events, log.NewFromZap(zap.New(core)))
	out := a.Step(tickAt(1))

	assert.Equal(t, 0.1, out.Command.Throttle, "handler failures never block control")
	warn := logs.FilterMessage("event handler failed").All()
	require.Len(t, warn, 1)
	assert.Equal(t, "sink down", warn[0].ContextMap()["error"])
}

func TestIdleStrategyKeepsNeutral(t *testing.T) {
	a := New(Config{}, StrategyFunc(func(*actions.Tick) actions.Action { return nil }), nil, nil)
	out := a.Step(tickAt(1))
	assert.Equal(t, actions.Command{}, out.Command)
	assert.Len(t, out.Shapes, 3)
	assert.Nil(t, a.Current())
}
