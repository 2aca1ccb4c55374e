package arena

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// padLocations are the 34 standard pads in the order the simulator reports them.
var padLocations = [...]physics.Vec3{
	{X: 0, Y: -4240, Z: 70},
	{X: -1792, Y: -4184, Z: 70},
	{X: 1792, Y: -4184, Z: 70},
	{X: -3072, Y: -4096, Z: 73},
	{X: 3072, Y: -4096, Z: 73},
	{X: -940, Y: -3308, Z: 70},
	{X: 940, Y: -3308, Z: 70},
	{X: 0, Y: -2816, Z: 70},
	{X: -3584, Y: -2484, Z: 70},
	{X: 3584, Y: -2484, Z: 70},
	{X: -1788, Y: -2300, Z: 70},
	{X: 1788, Y: -2300, Z: 70},
	{X: -2048, Y: -1036, Z: 70},
	{X: 0, Y: -1024, Z: 70},
	{X: 2048, Y: -1036, Z: 70},
	{X: -3584, Y: 0, Z: 73},
	{X: -1024, Y: 0, Z: 70},
	{X: 1024, Y: 0, Z: 70},
	{X: 3584, Y: 0, Z: 73},
	{X: -2048, Y: 1036, Z: 70},
	{X: 0, Y: 1024, Z: 70},
	{X: 2048, Y: 1036, Z: 70},
	{X: -1788, Y: 2300, Z: 70},
	{X: 1788, Y: 2300, Z: 70},
	{X: -3584, Y: 2484, Z: 70},
	{X: 3584, Y: 2484, Z: 70},
	{X: 0, Y: 2816, Z: 70},
	{X: -940, Y: 3310, Z: 70},
	{X: 940, Y: 3308, Z: 70},
	{X: -3072, Y: 4096, Z: 73},
	{X: 3072, Y: 4096, Z: 73},
	{X: -1792, Y: 4184, Z: 70},
	{X: 1792, Y: 4184, Z: 70},
	{X: 0, Y: 4240, Z: 70},
}

// PadCount is the number of pads on a standard field.
const PadCount = len(padLocations)

// PadLocation returns the fixed location of pad i.
func PadLocation(i int) (physics.Vec3, bool) {
	if i < 0 || i >= PadCount {
		return physics.Zero, false
	}
	return padLocations[i], true
}

// PadStatus is the per-tick state the simulator reports for one pad.
type PadStatus struct {
	Active bool    `yaml:"active" json:"active"`
	Timer  float64 `yaml:"timer" json:"timer"`
}

// PadState is a pad with its location resolved.
type PadState struct {
	Index    int
	Location physics.Vec3
	Active   bool
	Timer    float64
}

// PadStates joins reported statuses with the location table. Entries past the
// table are dropped.
func PadStates(statuses []PadStatus) []PadState {
	n := min(len(statuses), PadCount)
	out := make([]PadState, n)
	for i := 0; i < n; i++ {
		out[i] = PadState{
			Index:    i,
			Location: padLocations[i],
			Active:   statuses[i].Active,
			Timer:    statuses[i].Timer,
		}
	}
	return out
}

// ArrivalEstimator returns the seconds needed to reach target.
type ArrivalEstimator func(target physics.Vec3) float64

// ChooseBoostPad picks the usable pad nearest to the point weighted towards the
// car and our own goal. A pad is usable when it is active or will respawn
// before we could get there. Pads for which skip returns true are ignored.
func ChooseBoostPad(
	pads []PadState,
	car, ball, ownGoal physics.Vec3,
	eta ArrivalEstimator,
	skip func(PadState) bool,
) (PadState, bool) {
	anchor := ball.Add(car.Scale(2)).Add(ownGoal.Scale(2)).Scale(0.2)

	var (
		best     PadState
		found    bool
		bestDist = math.Inf(1)
	)
	for _, pad := range pads {
		if !pad.Active && eta(pad.Location)*0.7 <= pad.Timer {
			continue
		}
		if skip != nil && skip(pad) {
			continue
		}
		if d := pad.Location.Dist(anchor); d < bestDist {
			best, bestDist, found = pad, d, true
		}
	}
	return best, found
}
