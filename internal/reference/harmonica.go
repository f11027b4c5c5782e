// Package reference replays spring configurations through an independent
// spring implementation, charmbracelet/harmonica, so trajectories produced
// by package anim can be checked against it.
package reference

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/dynamo"
)

// Spring is a harmonica spring described by its natural angular frequency
// and damping ratio, advanced at a fixed frame rate.
type Spring struct {
	FPS    int
	Omega0 float64
	Zeta   float64

	from, to, velocity float64
}

// FromParams maps resolved animation parameters onto a harmonica spring.
// Tension springs are treated as unit-mass oscillators.
func FromParams(p anim.Params, fps int) (*Spring, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", fps)
	}

	s := &Spring{FPS: fps, from: p.FromValue, to: p.ToValue}
	switch p.Kind {
	case anim.ModelDHO:
		s.Omega0 = math.Sqrt(p.Stiffness / p.Mass)
		s.Zeta = p.Damping / (2 * math.Sqrt(p.Stiffness*p.Mass))
		// the oscillator's initial velocity is in units of remaining
		// displacement per second
		s.velocity = -p.InitialVelocity * (p.ToValue - p.FromValue)
	default:
		if p.Tension <= 0 {
			return nil, fmt.Errorf("%w: tension must be > 0 for a reference spring, got %g", dynamo.ErrParameterBounds, p.Tension)
		}
		s.Omega0 = math.Sqrt(p.Tension)
		s.Zeta = p.Friction / (2 * s.Omega0)
		s.velocity = p.InitialVelocity
	}
	return s, nil
}

// Trajectory returns frames+1 positions, starting at the start value.
func (s *Spring) Trajectory(frames int) []float64 {
	spring := harmonica.NewSpring(1.0/float64(s.FPS), s.Omega0, s.Zeta)

	out := make([]float64, 0, frames+1)
	pos, vel := s.from, s.velocity
	out = append(out, pos)
	for i := 0; i < frames; i++ {
		pos, vel = spring.Update(pos, vel, s.to)
		out = append(out, pos)
	}
	return out
}

// MaxDeviation is the largest absolute difference over the common prefix
// of a and b.
func MaxDeviation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	worst := 0.0
	for i := 0; i < n; i++ {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}
