package actions

// Jump holds the jump button for Duration seconds, then needs two released
// ticks before the input counts as finished.
type Jump struct {
	Duration float64

	timer    float64
	released int
}

func NewJump(duration float64) *Jump {
	return &Jump{Duration: duration}
}

func (j *Jump) Step(_ *Tick, last Command, dt float64) Result {
	held := j.timer < j.Duration
	if !held {
		j.released++
	}
	j.timer += dt

	if j.released >= 2 {
		return Success()
	}

	cmd := last
	cmd.Jump = held
	return InProgress(cmd)
}

func (j *Jump) Interruptible() bool { return false }
func (j *Jump) Kickoff() bool       { return false }
func (j *Jump) Name() string        { return "Jump" }
func (j *Jump) Render() []Shape     { return nil }
