package metrics

import (
	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/san-kum/springsim/internal/dynamo"
)

// FrameInterval tracks the spacing of frame timestamps. On a synthetic
// clock every interval is 1/fps; realtime runs show the scheduler jitter.
// Value is the 99th percentile interval in milliseconds.
type FrameInterval struct {
	name string
	hist *hdrhistogram.Histogram
	last float64
	seen bool
}

func NewFrameInterval() *FrameInterval {
	// 1µs to 10s with 3 significant figures.
	return &FrameInterval{
		name: "frame_interval_p99_ms",
		hist: hdrhistogram.New(1, 10_000_000, 3),
	}
}

func (f *FrameInterval) Name() string { return f.name }

func (f *FrameInterval) Observe(s dynamo.Sample) {
	if f.seen {
		us := int64((s.Time - f.last) * 1e6)
		us = max(f.hist.LowestTrackableValue(), min(us, f.hist.HighestTrackableValue()))
		_ = f.hist.RecordValue(us) // clamped, cannot fail
	}
	f.last = s.Time
	f.seen = true
}

func (f *FrameInterval) Value() float64 {
	if f.hist.TotalCount() == 0 {
		return 0
	}
	return float64(f.hist.ValueAtQuantile(99)) / 1000
}

func (f *FrameInterval) Reset() {
	f.hist.Reset()
	f.last = 0
	f.seen = false
}
