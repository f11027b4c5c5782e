package sim

import "github.com/san-kum/springsim/internal/anim"

// Animation is what a Runner drives once per frame.
type Animation interface {
	Start()
	Step(now float64)
	Stop()
	State() anim.Snapshot
}

type Config struct {
	FPS      int
	Duration float64
	// Epoch is the clock value of frame 0. Animations only ever see
	// differences, so any value works.
	Epoch         float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		FPS:           60,
		Duration:      10.0,
		ValidateState: true,
	}
}

// FrameInterval is the time between two frames in seconds.
func (c Config) FrameInterval() float64 {
	return 1.0 / float64(c.FPS)
}
