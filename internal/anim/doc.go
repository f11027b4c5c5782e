// Package anim drives a single animated scalar toward a target with a spring.
//
// An [Animation] is built from a [Config] and a [dynamo.Sink]. The sink's
// current value becomes the starting point. The spring model is picked from
// which parameters the config carries:
//
//   - Tension set: tension/friction spring, integrated with fixed 1 ms RK4 steps
//   - Stiffness set: damped harmonic oscillator, evaluated in closed form
//   - Neither: an inert tension spring that never moves
//
// The owner calls [Animation.Start] once, then [Animation.Step] once per
// display frame with a monotonic timestamp in seconds, and finally
// [Animation.Stop], which detaches the sink and reports whether the run
// reached its natural end.
//
// Lifecycle:
//
//	Created --Start--> Running --settle on last loop--> Finished
//
// Steps are ignored before Start and after the run finished.
package anim
