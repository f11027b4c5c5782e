// Package physics provides the two spring models an animation can follow.
//
//   - [TensionSpring]: tension/friction acceleration law, integrated numerically
//   - [Oscillator]: damped harmonic oscillator with a closed-form solution
//
// Both models work on a single scalar. [TensionSpring] is meant to be
// advanced by the fixed-step integrator in package integrators, while
// [Oscillator] is evaluated directly at the elapsed time of the current loop.
//
//	osc, err := physics.NewOscillator(100, 10, 1)
//	if err != nil {
//	    return err
//	}
//	fraction := 1 - osc.Displacement(t, v0)
package physics
