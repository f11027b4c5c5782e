package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Runner is the frame scheduler: it starts an animation, steps it once per
// frame with a monotonic timestamp, records what the sink shows and stops
// the animation when it settles, the duration runs out or ctx is canceled.
type Runner struct {
	anim      Animation
	sink      dynamo.Sink
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(a Animation, sink dynamo.Sink) *Runner {
	return &Runner{
		anim:      a,
		sink:      sink,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run drives the animation on a synthetic clock, as fast as possible.
func (r *Runner) Run(ctx context.Context, cfg Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration * float64(cfg.FPS))
	result := r.begin(frames)
	dt := cfg.FrameInterval()

	for i := 0; i <= frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		elapsed := float64(i) * dt
		if !r.frame(result, cfg, i, cfg.Epoch+elapsed, elapsed) {
			break
		}
	}

	r.finish(result)
	return result, nil
}

// RunRealtime drives the animation from a wall-clock ticker at cfg.FPS.
func (r *Runner) RunRealtime(ctx context.Context, cfg Config) (*dynamo.Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := r.begin(int(cfg.Duration * float64(cfg.FPS)))
	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	start := time.Now()
	for i := 0; ; i++ {
		elapsed := time.Since(start).Seconds()
		if elapsed > cfg.Duration {
			break
		}
		if !r.frame(result, cfg, i, cfg.Epoch+elapsed, elapsed) {
			break
		}

		select {
		case <-ctx.Done():
			r.finish(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		case <-ticker.C:
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) begin(frames int) *dynamo.Result {
	for _, m := range r.metrics {
		m.Reset()
	}
	r.anim.Start()
	return &dynamo.Result{
		Samples: make([]dynamo.Sample, 0, frames+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
}

// frame steps once and records the sample. It reports whether the run
// should continue.
func (r *Runner) frame(result *dynamo.Result, cfg Config, i int, now, elapsed float64) bool {
	r.anim.Step(now)
	st := r.anim.State()

	s := dynamo.Sample{
		Frame:    i,
		Time:     elapsed,
		Value:    r.sink.Value(),
		Velocity: st.Velocity,
		Loop:     st.Loop,
		Finished: st.Finished,
	}

	if cfg.ValidateState && !s.IsValid() {
		result.Errors = append(result.Errors, &dynamo.SimulationError{
			Frame:   i,
			Time:    elapsed,
			Wrapped: dynamo.ErrInvalidState,
		})
		return false
	}

	for _, m := range r.metrics {
		m.Observe(s)
	}
	for _, obs := range r.observers {
		obs.OnFrame(s)
	}

	result.Samples = append(result.Samples, s)
	result.Frames++
	return !st.Finished
}

func (r *Runner) finish(result *dynamo.Result) {
	r.anim.Stop()
	st := r.anim.State()
	result.Finished = st.Finished
	result.Loops = st.Loop
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
