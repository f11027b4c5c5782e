package anim

import (
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/physics"
)

// runState is everything an animation mutates while running.
type runState struct {
	lastPosition float64
	lastVelocity float64

	// elapsed is the oscillator time since the current loop began.
	elapsed float64

	// started is false until the first frame of a timing window.
	started     bool
	startTime   float64
	currentTime float64

	currentLoop int
	hasBegun    bool
	hasFinished bool
}

// advanceTension integrates the tension spring up to now. It returns false
// when nothing moved: the first frame only anchors the clock, and frames
// shorter than one fixed step are dropped.
func advanceTension(s *runState, rk4 *integrators.RK4, spring physics.TensionSpring, now float64) (float64, float64, bool) {
	if !s.started {
		s.started = true
		s.startTime = now
		s.currentTime = now
		return 0, 0, false
	}

	n := integrators.Steps(now - s.currentTime)
	s.currentTime = now
	if n == 0 {
		return 0, 0, false
	}

	pos, vel := rk4.Advance(spring, s.lastPosition, s.lastVelocity, n)
	s.lastPosition = pos
	s.lastVelocity = vel
	return pos, vel, true
}

// advanceOscillator evaluates the oscillator at the loop time reached at
// now. Velocity is a finite difference against the previous frame and is
// zero on the first frame of a loop.
func advanceOscillator(s *runState, osc *physics.Oscillator, p *Params, now float64) (float64, float64) {
	var dt float64
	if !s.started {
		s.started = true
		s.elapsed = 0
		s.startTime = now
	} else {
		dt = now - s.currentTime
		s.elapsed += dt
	}
	s.currentTime = now

	fraction := 1 - osc.Displacement(s.elapsed, p.InitialVelocity)
	pos := p.FromValue + fraction*(p.ToValue-p.FromValue)

	var vel float64
	if dt != 0 {
		vel = (pos - s.lastPosition) / dt
	}
	s.lastVelocity = vel
	return pos, vel
}
