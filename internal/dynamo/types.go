package dynamo

import "math"

// Sink is the external value cell an animation writes into. The animation
// only ever sets the value and then marks it dirty; when the dirty flag is
// consumed is up to the owner of the sink.
type Sink interface {
	Value() float64
	SetValue(v float64)
	MarkDirty()
}

// Sample is one frame of an animation run.
type Sample struct {
	Frame    int
	Time     float64
	Value    float64
	Velocity float64
	Loop     int
	Finished bool
}

func (s Sample) IsValid() bool {
	return !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0) &&
		!math.IsNaN(s.Velocity) && !math.IsInf(s.Velocity, 0)
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s Sample)
}

type Result struct {
	Samples  []Sample
	Finished bool
	Loops    int
	Frames   int
	Metrics  map[string]float64
	Errors   []error
}

// Values returns the sink value of every recorded frame.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Value
	}
	return out
}

// Times returns the elapsed run time of every recorded frame.
func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

// Last returns the final sample, or the zero sample for an empty run.
func (r *Result) Last() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}
