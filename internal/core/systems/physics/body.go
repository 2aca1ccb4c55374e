package physics

// Body is the rigid-body snapshot the simulator reports for a car or the ball.
// It is replaced every tick and never mutated by the controller.
type Body struct {
	Location        Vec3    `yaml:"location" json:"location"`
	Rotation        Rotator `yaml:"rotation" json:"rotation"`
	Velocity        Vec3    `yaml:"velocity" json:"velocity"`
	HasWheelContact bool    `yaml:"wheel_contact" json:"wheel_contact"`
	Boost           int     `yaml:"boost" json:"boost"`
	Team            int     `yaml:"team" json:"team"`
	Name            string  `yaml:"name" json:"name"`
}

func (b Body) Forward() Vec3 { return b.Rotation.Forward() }
func (b Body) Up() Vec3      { return b.Rotation.Up() }

// Speed is the magnitude of the velocity.
func (b Body) Speed() float64 { return b.Velocity.Len() }

// ForwardSpeed is the velocity component along the nose of the body.
func (b Body) ForwardSpeed() float64 { return b.Velocity.Dot(b.Forward()) }

// Local expresses target relative to the body in its own frame.
func (b Body) Local(target Vec3) Vec3 { return LocalTo(target, b.Location, b.Rotation) }
