package strategy

import (
	"github.com/zeusync/rocketbot/internal/core/actions"
	"github.com/zeusync/rocketbot/internal/core/systems/physics"
)

// wallRun is far outside the arena so the drive never arrives and keeps
// climbing the side wall.
var wallRun = physics.V(-40000, 0, 0)

// Practice exercises driving on walls and aerial recovery: it drives at a
// wall while grounded and recovers while airborne.
type Practice struct{}

func NewPractice() *Practice { return &Practice{} }

func (p *Practice) Choose(t *actions.Tick) actions.Action {
	if t.Car.HasWheelContact {
		return actions.NewDrive(wallRun, 2300, true)
	}
	return actions.NewRecover(false)
}
