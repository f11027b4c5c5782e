package metrics

import (
	"math"

	"github.com/san-kum/springsim/internal/dynamo"
)

// PeakOvershoot is the largest excursion past the target in the direction
// of travel, as a fraction of the travel distance.
type PeakOvershoot struct {
	name     string
	from, to float64
	peak     float64
}

func NewPeakOvershoot(from, to float64) *PeakOvershoot {
	return &PeakOvershoot{name: "peak_overshoot", from: from, to: to}
}

func (p *PeakOvershoot) Name() string { return p.name }

func (p *PeakOvershoot) Observe(s dynamo.Sample) {
	span := p.to - p.from
	if span == 0 {
		return
	}
	past := (s.Value - p.to) / span
	if past > p.peak {
		p.peak = past
	}
}

func (p *PeakOvershoot) Value() float64 { return p.peak }

func (p *PeakOvershoot) Reset() { p.peak = 0 }

// Stability is the share of frames spent within band of the target.
type Stability struct {
	name       string
	target     float64
	band       float64
	violations int
	samples    int
}

func NewStability(target, band float64) *Stability {
	return &Stability{
		name:   "stability",
		target: target,
		band:   band,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sample dynamo.Sample) {
	s.samples++
	if math.Abs(sample.Value-s.target) > s.band {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
