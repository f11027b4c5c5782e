package sim

import (
	"context"
	"sync"

	"github.com/san-kum/springsim/internal/dynamo"
)

// Job builds one independent run. Each job gets its own animation, sink
// and metrics, so jobs share no state.
type Job struct {
	Name    string
	Build   func() (Animation, dynamo.Sink)
	Metrics func() []dynamo.Metric
}

type Ensemble struct {
	jobs []Job
}

func NewEnsemble(jobs ...Job) *Ensemble {
	return &Ensemble{jobs: jobs}
}

// Run executes every job concurrently on the synthetic clock. Results are
// in job order.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(e.jobs))
	errs := make([]error, len(e.jobs))

	var wg sync.WaitGroup
	for i, job := range e.jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()

			a, sink := job.Build()
			r := New(a, sink)
			if job.Metrics != nil {
				for _, m := range job.Metrics() {
					r.AddMetric(m)
				}
			}

			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, job)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
