package anim

import "testing"

func TestAtRest(t *testing.T) {
	base := Params{
		FromValue:                 0,
		ToValue:                   1,
		RestDisplacementThreshold: 0.01,
		RestSpeedThreshold:        0.01,
	}
	clamped := base
	clamped.OvershootClamping = true
	falling := clamped
	falling.FromValue = 2

	tests := []struct {
		name     string
		p        Params
		pos, vel float64
		active   bool
		expected bool
	}{
		{"moving", base, 0.5, 1, true, false},
		{"near and slow", base, 0.995, 0.005, true, true},
		{"near but fast", base, 0.995, 0.5, true, false},
		{"slow but far", base, 0.5, 0, true, false},
		{"overshoot ignored without clamp", base, 1.2, 3, true, false},
		{"overshoot clamped", clamped, 1.2, 3, true, true},
		{"clamp needs active model", clamped, 1.2, 3, false, false},
		{"falling overshoot", falling, 0.8, -3, true, true},
		{"falling before target", falling, 1.2, -3, true, false},
		{"inactive ignores displacement", base, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			if got := atRest(&p, tt.pos, tt.vel, tt.active); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNextLoop(t *testing.T) {
	p := Params{Kind: ModelDHO, FromValue: 3, InitialVelocity: 1.5, Iterations: 2}
	s := runState{lastPosition: 9, lastVelocity: 0, currentLoop: 1, started: true}

	if !nextLoop(&s, &p) {
		t.Fatal("expected a second loop")
	}
	if s.currentLoop != 2 || s.lastPosition != 3 || s.lastVelocity != 1.5 {
		t.Errorf("unexpected reset state %+v", s)
	}
	if s.started {
		t.Error("oscillator loops must restart their clock")
	}

	if nextLoop(&s, &p) {
		t.Fatal("expected the run to finish after the last loop")
	}
	if !s.hasFinished || s.currentLoop != 2 {
		t.Errorf("unexpected final state %+v", s)
	}

	rk := Params{Kind: ModelRK4, Iterations: Infinite}
	s = runState{currentLoop: 41, started: true}
	if !nextLoop(&s, &rk) || s.currentLoop != 42 {
		t.Errorf("infinite loops must keep counting, got %d", s.currentLoop)
	}
	if !s.started {
		t.Error("rk4 loops keep their clock")
	}
}
