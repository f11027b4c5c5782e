package anim

// nextLoop either rewinds s for another loop and returns true, or marks the
// run finished and returns false.
func nextLoop(s *runState, p *Params) bool {
	if p.Iterations == Infinite || s.currentLoop < p.Iterations {
		s.lastPosition = p.FromValue
		s.lastVelocity = p.InitialVelocity
		if p.Kind == ModelDHO {
			s.started = false
		}
		s.currentLoop++
		return true
	}
	s.hasFinished = true
	return false
}
