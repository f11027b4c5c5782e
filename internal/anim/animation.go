package anim

import (
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/physics"
)

type Animation struct {
	params Params
	sink   dynamo.Sink

	spring physics.TensionSpring
	rk4    *integrators.RK4
	osc    *physics.Oscillator

	onComplete func(finished bool)
	run        runState
}

// Snapshot is a read-only view of an animation's run state.
type Snapshot struct {
	Kind     ModelKind
	Position float64
	Velocity float64
	Elapsed  float64
	Loop     int
	Begun    bool
	Finished bool
	Attached bool
}

// New builds an animation starting from the sink's current value. It panics
// with an error wrapping dynamo.ErrParameterBounds if the config selects an
// oscillator with a non-positive stiffness, damping or mass; use
// Config.Validate to check untrusted input first.
func New(cfg Config, sink dynamo.Sink) *Animation {
	params, err := cfg.Resolve(sink.Value())
	if err != nil {
		panic(err)
	}

	a := &Animation{
		params: params,
		sink:   sink,
		run: runState{
			lastPosition: params.FromValue,
			lastVelocity: params.InitialVelocity,
			currentLoop:  1,
			hasFinished:  params.Iterations == 0,
		},
	}

	switch params.Kind {
	case ModelDHO:
		a.osc, err = physics.NewOscillator(params.Stiffness, params.Damping, params.Mass)
		if err != nil {
			panic(err)
		}
	default:
		a.spring = physics.NewTensionSpring(params.Tension, params.Friction, params.ToValue)
		a.rk4 = integrators.NewRK4()
		if cfg.ClassicRK4 {
			a.rk4 = integrators.NewClassicRK4()
		}
	}

	return a
}

// OnComplete registers fn to run once, from Stop, with whether the
// animation reached its natural end. A later registration replaces an
// earlier one.
func (a *Animation) OnComplete(fn func(finished bool)) {
	a.onComplete = fn
}

// Start begins, or restarts, the timing window. The next Step only anchors
// the clock.
func (a *Animation) Start() {
	a.run.started = false
	a.run.hasBegun = true
}

// Step advances the animation to now, in seconds. Timestamps must increase
// from call to call.
func (a *Animation) Step(now float64) {
	if !a.run.hasBegun || a.run.hasFinished {
		return
	}

	switch a.params.Kind {
	case ModelDHO:
		a.stepOscillator(now)
	default:
		a.stepTension(now)
	}
}

// Stop detaches the sink and fires the completion callback. The callback
// runs at most once however often Stop is called.
func (a *Animation) Stop() {
	a.sink = nil
	if a.onComplete == nil {
		return
	}
	fn := a.onComplete
	a.onComplete = nil
	fn(a.run.hasFinished)
}

func (a *Animation) Params() Params {
	return a.params
}

func (a *Animation) Finished() bool {
	return a.run.hasFinished
}

func (a *Animation) State() Snapshot {
	return Snapshot{
		Kind:     a.params.Kind,
		Position: a.run.lastPosition,
		Velocity: a.run.lastVelocity,
		Elapsed:  a.run.elapsed,
		Loop:     a.run.currentLoop,
		Begun:    a.run.hasBegun,
		Finished: a.run.hasFinished,
		Attached: a.sink != nil,
	}
}

func (a *Animation) stepTension(now float64) {
	pos, vel, moved := advanceTension(&a.run, a.rk4, a.spring, now)
	if !moved {
		return
	}
	a.write(pos)
	if a.run.hasFinished {
		return
	}
	a.settle(pos, vel, a.spring.Active())
}

func (a *Animation) stepOscillator(now float64) {
	pos, vel := advanceOscillator(&a.run, a.osc, &a.params, now)
	a.write(pos)
	a.settle(pos, vel, a.osc.Active())
	a.run.lastPosition = pos
}

// settle snaps to the target and hands over to the loop controller once
// the motion is at rest.
func (a *Animation) settle(pos, vel float64, active bool) {
	if !atRest(&a.params, pos, vel, active) {
		return
	}
	if active && !a.run.hasFinished {
		a.run.lastPosition = a.params.ToValue
		a.run.lastVelocity = 0
		a.write(a.params.ToValue)
	}
	if nextLoop(&a.run, &a.params) {
		a.write(a.params.FromValue)
	}
}

func (a *Animation) write(v float64) {
	if a.sink == nil {
		return
	}
	a.sink.SetValue(v)
	a.sink.MarkDirty()
}
