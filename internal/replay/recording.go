package replay

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/systems/arena"
	"github.com/zeusync/rocketbot/internal/core/systems/intercept"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

var (
	ErrEmptyRecording = errors.New("recording has no ticks")
	ErrTimeReversed   = errors.New("tick times must not decrease")
)

// Recording is a captured or generated stream of simulator ticks for one car.
type Recording struct {
	Name     string  `yaml:"name" json:"name"`
	CarIndex int     `yaml:"car_index" json:"car_index"`
	Ticks    []Frame `yaml:"ticks" json:"ticks"`
}

// Frame is one tick of a Recording.
type Frame struct {
	Time        float64           `yaml:"time" json:"time"`
	Kickoff     bool              `yaml:"kickoff,omitempty" json:"kickoff,omitempty"`
	Car         physics.Body      `yaml:"car" json:"car"`
	Ball        physics.Body      `yaml:"ball" json:"ball"`
	Opponents   []physics.Body    `yaml:"opponents,omitempty" json:"opponents,omitempty"`
	Predictions []intercept.Slice `yaml:"predictions,omitempty" json:"predictions,omitempty"`
	Pads        []arena.PadStatus `yaml:"pads,omitempty" json:"pads,omitempty"`
	Touch       *actions.Touch    `yaml:"touch,omitempty" json:"touch,omitempty"`
}

// Tick converts the frame into the controller's view of the world.
func (f *Frame) Tick() *actions.Tick {
	return &actions.Tick{
		Time:        f.Time,
		Car:         f.Car,
		Ball:        f.Ball,
		Opponents:   f.Opponents,
		Predictions: f.Predictions,
		Kickoff:     f.Kickoff,
		BoostPads:   arena.PadStates(f.Pads),
		LatestTouch: f.Touch,
	}
}

// Validate checks that the recording can be replayed.
func (r *Recording) Validate() error {
	if len(r.Ticks) == 0 {
		return fmt.Errorf("%q: %w", r.Name, ErrEmptyRecording)
	}
	for i := 1; i < len(r.Ticks); i++ {
		if r.Ticks[i].Time < r.Ticks[i-1].Time {
			return fmt.Errorf("%q: tick %d: %w", r.Name, i, ErrTimeReversed)
		}
	}
	return nil
}

// Load decodes a YAML recording.
func Load(r io.Reader) (*Recording, error) {
	var rec Recording
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save encodes rec as YAML.
func Save(w io.Writer, rec *Recording) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return enc.Close()
}
