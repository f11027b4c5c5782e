package anim

import (
	"errors"
	"testing"

	"github.com/san-kum/springsim/internal/dynamo"
)

type recordingSink struct {
	value  float64
	writes []float64
	dirty  int
}

func (s *recordingSink) Value() float64 { return s.value }
func (s *recordingSink) SetValue(v float64) {
	s.value = v
	s.writes = append(s.writes, v)
}
func (s *recordingSink) MarkDirty() { s.dirty++ }

// snapBacks counts loop restarts: a write of from immediately after a
// write of exactly to.
func (s *recordingSink) snapBacks(from, to float64) int {
	n := 0
	for i := 1; i < len(s.writes); i++ {
		if s.writes[i] == from && s.writes[i-1] == to {
			n++
		}
	}
	return n
}

func tensionConfig(tension, friction float64) Config {
	cfg := DefaultConfig()
	cfg.ToValue = 1
	cfg.Tension = Float(tension)
	cfg.Friction = Float(friction)
	return cfg
}

func oscillatorConfig(stiffness, damping, mass float64) Config {
	cfg := DefaultConfig()
	cfg.ToValue = 1
	cfg.Stiffness = Float(stiffness)
	cfg.Damping = Float(damping)
	cfg.Mass = Float(mass)
	return cfg
}

func runFrames(a *Animation, frameDt, duration float64) {
	a.Start()
	for i := 0; float64(i)*frameDt <= duration; i++ {
		a.Step(float64(i) * frameDt)
	}
}

func TestTensionSettlesOnTarget(t *testing.T) {
	for _, classic := range []bool{false, true} {
		sink := &recordingSink{}
		cfg := tensionConfig(230, 22)
		cfg.ClassicRK4 = classic
		a := New(cfg, sink)

		runFrames(a, 0.016, 2)

		if !a.Finished() {
			t.Fatalf("classic=%v: expected animation to settle within 2s", classic)
		}
		if sink.value != 1.0 {
			t.Errorf("classic=%v: expected exact terminal value 1.0, got %.17f", classic, sink.value)
		}
		if sink.dirty != len(sink.writes) {
			t.Errorf("every write must mark the sink dirty: %d writes, %d dirty", len(sink.writes), sink.dirty)
		}
	}
}

func TestTensionFirstStepAnchorsClock(t *testing.T) {
	sink := &recordingSink{}
	a := New(tensionConfig(230, 22), sink)
	a.Start()

	a.Step(10)
	if len(sink.writes) != 0 {
		t.Fatalf("first step must not integrate, got %d writes", len(sink.writes))
	}

	a.Step(10.0005)
	if len(sink.writes) != 0 {
		t.Fatalf("sub-step frame must not write, got %d writes", len(sink.writes))
	}

	a.Step(10.016)
	if len(sink.writes) != 1 {
		t.Fatalf("expected one write, got %d", len(sink.writes))
	}
	if sink.value <= 0 || sink.value >= 1 {
		t.Errorf("expected partial progress, got %f", sink.value)
	}
}

func TestStartReanchorsClock(t *testing.T) {
	sink := &recordingSink{}
	a := New(tensionConfig(230, 22), sink)
	a.Start()
	a.Step(0)
	a.Step(0.016)
	writes := len(sink.writes)

	a.Start()
	a.Step(5)
	if len(sink.writes) != writes {
		t.Error("step after restart must only anchor the clock")
	}
	if a.State().Loop != 1 {
		t.Errorf("restart must not change the loop, got %d", a.State().Loop)
	}
}

func TestStepBeforeStartIsNoop(t *testing.T) {
	sink := &recordingSink{}
	a := New(tensionConfig(230, 22), sink)

	a.Step(0)
	a.Step(0.016)
	a.Step(0.032)

	if len(sink.writes) != 0 {
		t.Errorf("expected no writes before start, got %d", len(sink.writes))
	}
	if a.State().Begun {
		t.Error("animation should not have begun")
	}
}

func TestIterationsZeroFinishedAtConstruction(t *testing.T) {
	sink := &recordingSink{value: 0.3}
	cfg := tensionConfig(230, 22)
	cfg.Iterations = 0
	a := New(cfg, sink)

	if !a.Finished() {
		t.Fatal("iterations=0 must be finished immediately")
	}

	runFrames(a, 0.016, 1)
	if len(sink.writes) != 0 {
		t.Errorf("finished animation wrote %d values", len(sink.writes))
	}
	if sink.value != 0.3 {
		t.Errorf("sink changed: %f", sink.value)
	}
}

func TestIterationsBounded(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"rk4", tensionConfig(230, 22)},
		{"dho", oscillatorConfig(100, 10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			cfg := tt.cfg
			cfg.Iterations = 3
			a := New(cfg, sink)

			runFrames(a, 0.016, 12)

			if !a.Finished() {
				t.Fatal("expected run to finish on the third loop")
			}
			if got := a.State().Loop; got != 3 {
				t.Errorf("expected loop 3, got %d", got)
			}
			if got := sink.snapBacks(0, 1); got != 2 {
				t.Errorf("expected 2 snap-backs, got %d", got)
			}
			if sink.value != 1 {
				t.Errorf("expected terminal value 1, got %f", sink.value)
			}
		})
	}
}

func TestIterationsInfinite(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"rk4", tensionConfig(230, 22)},
		{"dho", oscillatorConfig(100, 10, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			cfg := tt.cfg
			cfg.Iterations = Infinite
			a := New(cfg, sink)

			runFrames(a, 0.016, 10)

			if a.Finished() {
				t.Fatal("infinite animation must never finish on its own")
			}
			if loop := a.State().Loop; loop <= 3 {
				t.Errorf("expected several loops in 10s, got %d", loop)
			}
			if got := sink.snapBacks(0, 1); got != a.State().Loop-1 {
				t.Errorf("expected %d snap-backs, got %d", a.State().Loop-1, got)
			}
		})
	}
}

func TestOvershootClamping(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		from, to float64
	}{
		{"rk4 rising", tensionConfig(230, 5), 0, 1},
		{"rk4 falling", tensionConfig(230, 5), 1, 0},
		{"dho rising", oscillatorConfig(100, 10, 1), 0, 1},
		{"dho falling", oscillatorConfig(100, 10, 1), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ToValue = tt.to

			free := New(cfg, &recordingSink{value: tt.from})
			runFrames(free, 0.016, 0.3)
			if free.Finished() {
				t.Fatal("underdamped spring should still be moving at 0.3s")
			}

			cfg.OvershootClamping = true
			sink := &recordingSink{value: tt.from}
			a := New(cfg, sink)
			runFrames(a, 0.016, 0.3)

			if !a.Finished() {
				t.Fatal("clamped spring should stop once it crosses the target")
			}
			if sink.value != tt.to {
				t.Errorf("expected snap to %f, got %f", tt.to, sink.value)
			}

			crossings := 0
			for _, w := range sink.writes[:len(sink.writes)-1] {
				if (tt.to > tt.from && w > tt.to) || (tt.to < tt.from && w < tt.to) {
					crossings++
				}
			}
			if crossings != 1 {
				t.Errorf("expected exactly the first crossing frame before the snap, got %d", crossings)
			}
		})
	}
}

func TestStopFiresCompletionOnce(t *testing.T) {
	tests := []struct {
		name     string
		run      bool
		finished bool
	}{
		{"created", false, false},
		{"finished", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			var got bool
			sink := &recordingSink{}
			a := New(tensionConfig(230, 22), sink)
			a.OnComplete(func(finished bool) {
				calls++
				got = finished
			})

			if tt.run {
				runFrames(a, 0.016, 2)
			}

			a.Stop()
			a.Stop()

			if calls != 1 {
				t.Errorf("expected 1 completion call, got %d", calls)
			}
			if got != tt.finished {
				t.Errorf("expected finished=%v, got %v", tt.finished, got)
			}
			if a.State().Attached {
				t.Error("sink should be detached after stop")
			}
		})
	}
}

func TestStopDetachesSink(t *testing.T) {
	sink := &recordingSink{}
	a := New(tensionConfig(230, 22), sink)
	a.Start()
	a.Step(0)
	a.Step(0.016)
	a.Stop()

	writes := len(sink.writes)
	a.Step(0.032)
	a.Step(0.048)
	if len(sink.writes) != writes {
		t.Errorf("detached animation wrote %d more values", len(sink.writes)-writes)
	}
}

func TestInertConfigResolvesToRK4(t *testing.T) {
	sink := &recordingSink{value: 0.25}
	cfg := DefaultConfig()
	cfg.ToValue = 1
	a := New(cfg, sink)

	if a.Params().Kind != ModelRK4 {
		t.Fatalf("expected rk4, got %s", a.Params().Kind)
	}

	runFrames(a, 0.016, 0.1)

	if !a.Finished() {
		t.Error("inert spring should settle as soon as it is sampled")
	}
	if sink.value != 0.25 {
		t.Errorf("inert spring moved to %f", sink.value)
	}
}

func TestOscillatorSettlesOnTarget(t *testing.T) {
	sink := &recordingSink{}
	a := New(oscillatorConfig(100, 10, 1), sink)

	a.Start()
	a.Step(0)
	if len(sink.writes) != 1 || sink.writes[0] != 0 {
		t.Fatalf("first oscillator frame should write the start value, got %v", sink.writes)
	}
	if v := a.State().Velocity; v != 0 {
		t.Errorf("first frame velocity must be 0, got %f", v)
	}

	for i := 1; float64(i)*0.016 <= 4; i++ {
		a.Step(float64(i) * 0.016)
	}

	if !a.Finished() {
		t.Fatal("expected oscillator to settle within 4s")
	}
	if sink.value != 1.0 {
		t.Errorf("expected exact terminal value, got %.17f", sink.value)
	}
}

func TestOscillatorLoopResetsClock(t *testing.T) {
	sink := &recordingSink{}
	cfg := oscillatorConfig(100, 10, 1)
	cfg.Iterations = 2
	a := New(cfg, sink)
	a.Start()

	now := 0.0
	for a.State().Loop == 1 && now < 5 {
		a.Step(now)
		now += 0.016
	}
	if a.State().Loop != 2 {
		t.Fatal("expected the first loop to settle")
	}

	a.Step(now)
	if e := a.State().Elapsed; e != 0 {
		t.Errorf("expected loop clock to restart at 0, got %f", e)
	}
	if sink.value != 0 {
		t.Errorf("expected restart at the start value, got %f", sink.value)
	}
}

func TestOscillatorBoundsPanic(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for non-positive mass")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic value, got %T", r)
		}
		if !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("expected ErrParameterBounds, got %v", err)
		}
	}()

	New(oscillatorConfig(100, 10, 0), &recordingSink{})
}
