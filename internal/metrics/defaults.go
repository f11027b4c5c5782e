package metrics

import (
	"github.com/san-kum/springsim/internal/anim"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
)

// StabilityBand is the distance from the target counted as "in place".
const StabilityBand = 0.01

// Default returns the standard metric set for an animation. Oscillators are
// measured with the equivalent unit-mass tension spring.
func Default(p anim.Params) []dynamo.Metric {
	spring := physics.NewTensionSpring(p.Tension, p.Friction, p.ToValue)
	if p.Kind == anim.ModelDHO {
		spring = physics.NewTensionSpring(p.Stiffness/p.Mass, p.Damping/p.Mass, p.ToValue)
	}

	return []dynamo.Metric{
		NewSettleTime(),
		NewPeakOvershoot(p.FromValue, p.ToValue),
		NewLoopResets(),
		NewStability(p.ToValue, StabilityBand),
		NewResidualEnergy(spring),
		NewFrameInterval(),
		NewOscillationFrequency(p.ToValue),
	}
}
