package replay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/agent"
)

// Result is the outcome of replaying one recording.
type Result struct {
	Name     string            `yaml:"name" json:"name"`
	Commands []actions.Command `yaml:"commands" json:"commands"`
	Actions  []agent.Record    `yaml:"actions" json:"actions"`
}

// Summary counts finished action runs by status.
func (r *Result) Summary() map[string]int {
	out := make(map[string]int)
	for _, rec := range r.Actions {
		key := rec.Status.String()
		if rec.Dropped != "" {
			key = "dropped"
		}
		out[key]++
	}
	return out
}

// Run feeds every tick of rec to a and collects one command per tick.
func Run(ctx context.Context, a *agent.Agent, rec *Recording) (*Result, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Name: rec.Name, Commands: make([]actions.Command, 0, len(rec.Ticks))}
	for i := range rec.Ticks {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay %q stopped at tick %d: %w", rec.Name, i, err)
		}
		out := a.Step(rec.Ticks[i].Tick())
		res.Commands = append(res.Commands, out.Command)
	}
	res.Actions = a.History().Records()
	return res, nil
}

// AgentFactory builds a fresh agent for one recording.
type AgentFactory func(rec *Recording) (*agent.Agent, error)

// RunAll replays recordings concurrently with at most workers in flight. Each
// recording gets its own agent. Results keep the input order.
func RunAll(ctx context.Context, newAgent AgentFactory, recs []*Recording, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*Result, len(recs))
	for i, rec := range recs {
		g.Go(func() error {
			a, err := newAgent(rec)
			if err != nil {
				return fmt.Errorf("agent for %q: %w", rec.Name, err)
			}
			res, err := Run(groupCtx, a, rec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
