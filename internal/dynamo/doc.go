// Package dynamo provides the shared primitives for spring animation runs.
//
// The package defines the contracts that the stepper, the frame runner and
// the tooling around them agree on:
//
//   - [Sink]: the mutable output cell an animation writes into
//   - [Sample]: one recorded frame (time, value, velocity, loop)
//   - [Result]: everything a finished run produced
//   - [Metric] and [Observer]: per-frame consumers of samples
//
// # Example
//
//	cfg := anim.DefaultConfig()
//	cfg.ToValue = 1
//	cfg.Tension, cfg.Friction = anim.Float(230), anim.Float(22)
//
//	n := node.New(0)
//	r := sim.New(anim.New(cfg, n), n)
//	result, err := r.Run(ctx, sim.DefaultConfig())
//
// # Thread Safety
//
// Animations are NOT thread-safe; a single goroutine must call Start, Step
// and Stop. Sinks may be read from other goroutines.
package dynamo
