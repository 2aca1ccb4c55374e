// Package intercept estimates when a car can reach a point and picks the first
// predicted ball position it can get to in time.
package intercept

import "math"

// Curvature is the inverse turn radius at forward speed v, fitted in five bands.
// Speeds outside [0, 2500) drive straight.
func Curvature(v float64) float64 {
	switch {
	case 0 <= v && v < 500:
		return 0.006900 - 5.84e-6*v
	case 500 <= v && v < 1000:
		return 0.005610 - 3.26e-6*v
	case 1000 <= v && v < 1500:
		return 0.004300 - 1.95e-6*v
	case 1500 <= v && v < 1750:
		return 0.003025 - 1.1e-6*v
	case 1750 <= v && v < 2500:
		return 0.001800 - 4e-7*v
	default:
		return 0
	}
}

// TurnRadius is the tightest radius reachable at speed v. A stationary car
// turns in place (0); where curvature vanishes the radius is infinite.
func TurnRadius(v float64) float64 {
	if v == 0 {
		return 0
	}
	c := Curvature(v)
	if c == 0 {
		return math.Inf(1)
	}
	return 1 / c
}
