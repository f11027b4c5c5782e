package anim

import "math"

// overshooting reports whether pos has crossed the target in the direction
// of travel. Only meaningful when clamping is on and the model is active.
func overshooting(p *Params, pos float64, active bool) bool {
	if !p.OvershootClamping || !active {
		return false
	}
	if p.FromValue < p.ToValue {
		return pos > p.ToValue
	}
	return pos < p.ToValue
}

// atRest decides whether the current loop has settled. An inactive model
// ignores displacement and settles as soon as it stops moving.
func atRest(p *Params, pos, vel float64, active bool) bool {
	if overshooting(p, pos, active) {
		return true
	}
	isVelocity := math.Abs(vel) <= p.RestSpeedThreshold
	isDisplacement := !active || math.Abs(p.ToValue-pos) <= p.RestDisplacementThreshold
	return isVelocity && isDisplacement
}
