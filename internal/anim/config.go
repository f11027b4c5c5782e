package anim

import (
	"fmt"

	"github.com/san-kum/springsim/internal/physics"
)

// Infinite makes an animation loop until stopped.
const Infinite = -1

const (
	DefaultRestDisplacementThreshold = 0.001
	DefaultRestSpeedThreshold        = 0.001
	DefaultIterations                = 1
)

// ModelKind is the spring model an animation resolved to.
type ModelKind int

const (
	ModelRK4 ModelKind = iota
	ModelDHO
)

func (k ModelKind) String() string {
	switch k {
	case ModelRK4:
		return "rk4"
	case ModelDHO:
		return "dho"
	default:
		return fmt.Sprintf("model(%d)", int(k))
	}
}

// Config is the construction input of an Animation. Model parameters are
// pointers because their presence, not their value, selects the model.
// Iterations is taken literally: 0 means the animation is finished before
// it starts, so start from DefaultConfig.
type Config struct {
	ToValue                   float64
	InitialVelocity           float64
	OvershootClamping         bool
	RestDisplacementThreshold float64
	RestSpeedThreshold        float64
	Iterations                int

	Tension  *float64
	Friction *float64

	Stiffness *float64
	Damping   *float64
	Mass      *float64

	// ClassicRK4 takes the fourth RK4 sample at the full step instead of
	// the historical half step. It changes the trajectory.
	ClassicRK4 bool
}

func DefaultConfig() Config {
	return Config{
		RestDisplacementThreshold: DefaultRestDisplacementThreshold,
		RestSpeedThreshold:        DefaultRestSpeedThreshold,
		Iterations:                DefaultIterations,
	}
}

// Float returns a pointer to v, for filling the optional model fields.
func Float(v float64) *float64 {
	return &v
}

// Kind reports the model the config resolves to. A config with neither
// tension nor stiffness resolves to an inert RK4 spring.
func (c Config) Kind() ModelKind {
	if c.Tension != nil {
		return ModelRK4
	}
	if c.Stiffness != nil {
		return ModelDHO
	}
	return ModelRK4
}

// Validate reports the precondition failures New would panic on.
func (c Config) Validate() error {
	if c.Kind() != ModelDHO {
		return nil
	}
	return physics.CheckOscillator(deref(c.Stiffness), deref(c.Damping), deref(c.Mass))
}

// Params is the immutable, fully resolved configuration of one animation.
type Params struct {
	Kind                      ModelKind
	FromValue                 float64
	ToValue                   float64
	InitialVelocity           float64
	OvershootClamping         bool
	RestDisplacementThreshold float64
	RestSpeedThreshold        float64
	Iterations                int

	Tension  float64
	Friction float64

	Stiffness float64
	Damping   float64
	Mass      float64
}

// Resolve fixes the start value and flattens the model parameters.
func (c Config) Resolve(from float64) (Params, error) {
	if err := c.Validate(); err != nil {
		return Params{}, err
	}
	p := Params{
		Kind:                      c.Kind(),
		FromValue:                 from,
		ToValue:                   c.ToValue,
		InitialVelocity:           c.InitialVelocity,
		OvershootClamping:         c.OvershootClamping,
		RestDisplacementThreshold: c.RestDisplacementThreshold,
		RestSpeedThreshold:        c.RestSpeedThreshold,
		Iterations:                c.Iterations,
	}
	switch p.Kind {
	case ModelDHO:
		p.Stiffness = deref(c.Stiffness)
		p.Damping = deref(c.Damping)
		p.Mass = deref(c.Mass)
	default:
		p.Tension = deref(c.Tension)
		p.Friction = deref(c.Friction)
	}
	return p, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
