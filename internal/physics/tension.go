package physics

// Defaults match the conventional "default" animation spring.
const (
	DefaultTension  = 40.0
	DefaultFriction = 7.0
)

// TensionSpring pulls a value toward Target with a force proportional to the
// remaining distance and a drag proportional to velocity. Zero or negative
// coefficients are accepted and simply produce flat or unusual motion.
type TensionSpring struct {
	Tension  float64
	Friction float64
	Target   float64
}

func NewTensionSpring(tension, friction, target float64) TensionSpring {
	return TensionSpring{Tension: tension, Friction: friction, Target: target}
}

// Acceleration returns tension*(target-x) - friction*v.
func (s TensionSpring) Acceleration(x, v float64) float64 {
	return s.Tension*(s.Target-x) - s.Friction*v
}

// Active reports whether the spring exerts any pull at all.
func (s TensionSpring) Active() bool {
	return s.Tension != 0
}

// Energy is the kinetic plus potential energy per unit mass relative to the
// target.
func (s TensionSpring) Energy(x, v float64) float64 {
	d := s.Target - x
	return 0.5*v*v + 0.5*s.Tension*d*d
}
