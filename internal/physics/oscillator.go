package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Regime selects which closed form describes the oscillator.
type Regime int

const (
	// Underdamped oscillates around the target with a decaying envelope.
	Underdamped Regime = iota
	// CriticallyDamped covers zeta >= 1; over-damped springs share the
	// critically damped form.
	CriticallyDamped
)

func (r Regime) String() string {
	switch r {
	case Underdamped:
		return "underdamped"
	case CriticallyDamped:
		return "critically-damped"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// Oscillator is a damped harmonic oscillator described by stiffness, damping
// and mass. The derived quantities are computed once at construction.
type Oscillator struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	Zeta   float64
	Omega0 float64
	Omega1 float64
	Regime Regime
}

// NewOscillator returns an error wrapping dynamo.ErrParameterBounds unless
// stiffness, damping and mass are all strictly positive.
func NewOscillator(stiffness, damping, mass float64) (*Oscillator, error) {
	if err := CheckOscillator(stiffness, damping, mass); err != nil {
		return nil, err
	}

	zeta := damping / (2 * math.Sqrt(stiffness*mass))
	omega0 := math.Sqrt(stiffness / mass)
	o := &Oscillator{
		Stiffness: stiffness,
		Damping:   damping,
		Mass:      mass,
		Zeta:      zeta,
		Omega0:    omega0,
		Regime:    CriticallyDamped,
	}
	if zeta < 1 {
		o.Regime = Underdamped
		o.Omega1 = omega0 * math.Sqrt(1-zeta*zeta)
	}
	return o, nil
}

// CheckOscillator validates oscillator parameters without building one.
func CheckOscillator(stiffness, damping, mass float64) error {
	params := []struct {
		name  string
		value float64
	}{
		{"mass", mass},
		{"stiffness", stiffness},
		{"damping", damping},
	}
	for _, p := range params {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %g", dynamo.ErrParameterBounds, p.name, p.value)
		}
	}
	return nil
}

// Displacement returns the remaining displacement at time t for a unit
// initial displacement and initial velocity v0. It starts at 1 and decays
// toward 0.
func (o *Oscillator) Displacement(t, v0 float64) float64 {
	const x0 = 1.0

	switch o.Regime {
	case Underdamped:
		return o.Envelope(t) *
			(((v0+o.Zeta*o.Omega0*x0)/o.Omega1)*math.Sin(o.Omega1*t) + x0*math.Cos(o.Omega1*t))
	default:
		return math.Exp(-o.Omega0*t) * (x0 + (v0+o.Omega0*x0)*t)
	}
}

// Envelope is the exponential decay bounding the underdamped oscillation.
func (o *Oscillator) Envelope(t float64) float64 {
	if o.Regime == Underdamped {
		return math.Exp(-o.Zeta * o.Omega0 * t)
	}
	return math.Exp(-o.Omega0 * t)
}

// Active reports whether the oscillator exerts any pull.
func (o *Oscillator) Active() bool {
	return o.Stiffness != 0
}
