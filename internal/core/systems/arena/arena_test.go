package arena

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

func TestClamp(t *testing.T) {
	got := Clamp(physics.V(5000, -6000, 300), 100)
	assert.Equal(t, physics.V(3996, -5020, 300), got)

	inside := physics.V(10, 20, 30)
	assert.Equal(t, inside, Clamp(inside, 100))
}

func TestCollisionNormal(t *testing.T) {
	tests := []struct {
		name string
		p    physics.Vec3
		want physics.Vec3
		hit  bool
	}{
		{"positive x wall", physics.V(Size.X+1, 0, 0), physics.V(1, 0, 0), true},
		{"negative x wall", physics.V(-Size.X-1, 0, 100), physics.V(-1, 0, 0), true},
		{"ceiling", physics.V(0, 0, Size.Z+1), physics.V(0, 0, -1), true},
		{"floor", physics.V(0, 0, -1), physics.V(0, 0, 1), true},
		{"positive y wall", physics.V(0, Size.Y+1, 100), physics.V(0, -1, 0), true},
		{"negative y wall", physics.V(0, -Size.Y-1, 100), physics.V(0, 1, 0), true},
		{"x wins over floor", physics.V(Size.X+1, 0, -5), physics.V(1, 0, 0), true},
		{"inside", physics.V(100, -200, 500), physics.Zero, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := CollisionNormal(tt.p)
			assert.Equal(t, tt.hit, hit)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, Inside(physics.V(0, 0, 17)))
}

func TestRandomPoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		p := RandomPoint(rng, 300)
		assert.LessOrEqual(t, p.X, Size.X-300)
		assert.GreaterOrEqual(t, p.X, -Size.X+300)
		assert.LessOrEqual(t, p.Y, Size.Y-300)
		assert.GreaterOrEqual(t, p.Y, -Size.Y+300)
		assert.GreaterOrEqual(t, p.Z, 300.0)
		assert.LessOrEqual(t, p.Z, Size.Z-300)
	}
}

func TestGoals(t *testing.T) {
	assert.Equal(t, physics.V(0, -5120, 0), HomeGoal(0))
	assert.Equal(t, physics.V(0, 5120, 0), AwayGoal(0))
	assert.Equal(t, physics.V(0, 5120, 0), HomeGoal(1))
	assert.Equal(t, physics.V(0, -5120, 0), AwayGoal(1))
}

func TestPadStates(t *testing.T) {
	statuses := make([]PadStatus, PadCount+3)
	statuses[4] = PadStatus{Active: true}
	pads := PadStates(statuses)
	require.Len(t, pads, PadCount)
	assert.Equal(t, physics.V(3072, -4096, 73), pads[4].Location)
	assert.True(t, pads[4].Active)

	_, ok := PadLocation(PadCount)
	assert.False(t, ok)
}

func TestChooseBoostPad(t *testing.T) {
	car := physics.V(0, -1000, 17)
	ball := physics.V(0, 0, 93)
	goal := HomeGoal(0)
	eta := func(target physics.Vec3) float64 { return car.Dist(target) / 1000 }

	pads := []PadState{
		{Index: 0, Location: physics.V(0, -2816, 70), Active: true},
		{Index: 1, Location: physics.V(0, -1024, 70), Active: false, Timer: 9},
		{Index: 2, Location: physics.V(3584, 0, 73), Active: true},
	}

	// anchor = (ball + 2car + 2goal)/5 = (0, -2448, ~) so pad 0 is the closest usable pad
	best, ok := ChooseBoostPad(pads, car, ball, goal, eta, nil)
	require.True(t, ok)
	assert.Equal(t, 0, best.Index)

	// a respawning pad we cannot beat back is skipped, exclusions are honored
	best, ok = ChooseBoostPad(pads, car, ball, goal, eta, func(p PadState) bool { return p.Index == 0 })
	require.True(t, ok)
	assert.Equal(t, 2, best.Index)

	// a respawning pad that will be back before we arrive is usable
	pads[1].Timer = 0.001
	best, ok = ChooseBoostPad(pads, car, ball, goal, eta, func(p PadState) bool { return p.Index == 0 })
	require.True(t, ok)
	assert.Equal(t, 1, best.Index)

	_, ok = ChooseBoostPad(nil, car, ball, goal, eta, nil)
	assert.False(t, ok)
}
