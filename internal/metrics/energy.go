package metrics

import (
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
)

// ResidualEnergy is the spring energy per unit mass left at the last
// observed frame.
type ResidualEnergy struct {
	name    string
	spring  physics.TensionSpring
	last    float64
	samples int
}

func NewResidualEnergy(spring physics.TensionSpring) *ResidualEnergy {
	return &ResidualEnergy{name: "residual_energy", spring: spring}
}

func (e *ResidualEnergy) Name() string { return e.name }

func (e *ResidualEnergy) Observe(s dynamo.Sample) {
	e.last = e.spring.Energy(s.Value, s.Velocity)
	e.samples++
}

func (e *ResidualEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.last
}

func (e *ResidualEnergy) Reset() {
	e.last = 0
	e.samples = 0
}
