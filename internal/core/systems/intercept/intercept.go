package intercept

import (
	"math"

	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

const (
	// MaxCarSpeed is the hard velocity cap of a car.
	MaxCarSpeed = 2300.0
	// ThrottleSpeed is the speed reachable without boost.
	ThrottleSpeed = 1410.0

	boostAccel       = 991.666
	boostPerSecond   = 33.33
	arrivalSlop      = 200.0
	turnPenaltyFloor = 0.5
	safetyMargin     = 1.05
)

// Slice is one predicted ball state at an absolute game time.
type Slice struct {
	Time float64      `yaml:"time" json:"time"`
	Ball physics.Body `yaml:"ball" json:"ball"`
}

// Intercept is where and when a car can first meet the ball. It is only valid
// for the tick it was solved on.
type Intercept struct {
	Target   physics.Body
	Time     float64
	Location physics.Vec3
	Viable   bool
}

// Options tune Solve.
type Options struct {
	// SkipFeasibility accepts the first slice without checking arrival time.
	SkipFeasibility bool
	// Predicate, when set, must also hold for the chosen slice.
	Predicate func(Slice) bool
}

// EstimateArrivalTime estimates the seconds car needs to reach the stationary
// point target, assuming it drives forwards: a turning penalty plus straight
// line travel with a boost phase.
func EstimateArrivalTime(car physics.Body, target physics.Vec3) float64 {
	forward := car.Forward()

	turning := forward.AngleBetween(physics.Direction(car.Location, target)) *
		TurnRadius(math.Min(car.Speed(), MaxCarSpeed)) / 1800
	if turning < turnPenaltyFloor {
		turning = 0
	}

	dist := car.Location.GroundDist(target) - arrivalSlop
	if dist <= 0 {
		return turning
	}

	speed := car.Velocity.Dot(forward)
	travel := 0.0

	if car.Boost > 0 {
		boostTime := float64(car.Boost) / boostPerSecond
		if speed*boostTime+0.5*boostAccel*boostTime*boostTime > dist {
			boostTime = (math.Sqrt(2*boostAccel*dist+speed*speed) - speed) / boostAccel
		}
		covered := math.Min(speed*boostTime+0.5*boostAccel*boostTime*boostTime, dist)
		speed = math.Min(speed+boostAccel*boostTime, MaxCarSpeed)
		dist -= covered
		travel += boostTime
	}

	if dist > 0 {
		if speed < ThrottleSpeed {
			// throttle keeps accelerating towards its cap; average the two speeds
			travel += dist / ((math.Max(speed, 0) + ThrottleSpeed) / 2)
		} else {
			travel += dist / speed
		}
	}

	return turning + safetyMargin*travel
}

// Solve scans the predicted slices in time order and returns the first one the
// car can reach before the ball does. When none qualifies the last slice, or
// the live ball when there are no predictions, is returned as non-viable.
func Solve(car physics.Body, now float64, slices []Slice, ball physics.Body, opts Options) Intercept {
	for _, s := range slices {
		if opts.Predicate != nil && !opts.Predicate(s) {
			continue
		}
		if opts.SkipFeasibility || EstimateArrivalTime(car, s.Ball.Location) < s.Time-now {
			return Intercept{Target: s.Ball, Time: s.Time, Location: s.Ball.Location, Viable: true}
		}
	}

	if n := len(slices); n > 0 {
		last := slices[n-1]
		return Intercept{Target: last.Ball, Time: last.Time, Location: last.Ball.Location}
	}
	return Intercept{Target: ball, Time: now, Location: ball.Location}
}
