package metrics

import "github.com/san-kum/springsim/internal/dynamo"

// SettleTime is the run time at which the animation finished, or -1 if it
// never did.
type SettleTime struct {
	name string
	at   float64
	seen bool
}

func NewSettleTime() *SettleTime {
	return &SettleTime{name: "settle_time"}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(sample dynamo.Sample) {
	if sample.Finished && !s.seen {
		s.at = sample.Time
		s.seen = true
	}
}

func (s *SettleTime) Value() float64 {
	if !s.seen {
		return -1
	}
	return s.at
}

func (s *SettleTime) Reset() {
	s.at = 0
	s.seen = false
}

// LoopResets counts how often the animation snapped back for another loop.
type LoopResets struct {
	name   string
	loop   int
	resets int
}

func NewLoopResets() *LoopResets {
	return &LoopResets{name: "loop_resets"}
}

func (l *LoopResets) Name() string { return l.name }

func (l *LoopResets) Observe(sample dynamo.Sample) {
	if l.loop != 0 && sample.Loop > l.loop {
		l.resets += sample.Loop - l.loop
	}
	l.loop = sample.Loop
}

func (l *LoopResets) Value() float64 { return float64(l.resets) }

func (l *LoopResets) Reset() {
	l.loop = 0
	l.resets = 0
}
