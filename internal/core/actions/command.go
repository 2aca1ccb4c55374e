package actions

import "github.com/zeusync/rocketbot/internal/core/systems/physics"

// Command is the controller state sent to the simulator. Analog axes live in [-1, 1].
type Command struct {
	Steer     float64 `yaml:"steer" json:"steer"`
	Throttle  float64 `yaml:"throttle" json:"throttle"`
	Pitch     float64 `yaml:"pitch" json:"pitch"`
	Yaw       float64 `yaml:"yaw" json:"yaw"`
	Roll      float64 `yaml:"roll" json:"roll"`
	Jump      bool    `yaml:"jump" json:"jump"`
	Boost     bool    `yaml:"boost" json:"boost"`
	Handbrake bool    `yaml:"handbrake" json:"handbrake"`
}

// Clamp limits every axis to its range. NaN axes become neutral.
func (c Command) Clamp() Command {
	c.Steer = clampAxis(c.Steer)
	c.Throttle = clampAxis(c.Throttle)
	c.Pitch = clampAxis(c.Pitch)
	c.Yaw = clampAxis(c.Yaw)
	c.Roll = clampAxis(c.Roll)
	return c
}

// WithAxes returns c with its aerial axes replaced.
func (c Command) WithAxes(roll, pitch, yaw float64) Command {
	c.Roll, c.Pitch, c.Yaw = roll, pitch, yaw
	return c
}

func clampAxis(v float64) float64 {
	if v != v {
		return 0
	}
	return physics.Clamp11(v)
}
