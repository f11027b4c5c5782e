package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/springsim/internal/dynamo"
)

const minSpectrumSize = 4096

// OscillationFrequency is the dominant frequency, in Hz, of the
// displacement from the target over the first loop. Runs that cross the
// target fewer than twice do not oscillate and report 0.
type OscillationFrequency struct {
	name   string
	target float64
	loop   int
	times  []float64
	disp   []float64
}

func NewOscillationFrequency(target float64) *OscillationFrequency {
	return &OscillationFrequency{name: "oscillation_hz", target: target}
}

func (o *OscillationFrequency) Name() string { return o.name }

func (o *OscillationFrequency) Observe(s dynamo.Sample) {
	if o.loop == 0 {
		o.loop = s.Loop
	}
	if s.Loop != o.loop {
		return
	}
	o.times = append(o.times, s.Time)
	o.disp = append(o.disp, s.Value-o.target)
}

func (o *OscillationFrequency) Value() float64 {
	n := len(o.disp)
	if n < 8 || crossings(o.disp) < 2 {
		return 0
	}
	span := o.times[n-1] - o.times[0]
	if span <= 0 {
		return 0
	}
	rate := float64(n-1) / span

	mean := 0.0
	for _, d := range o.disp {
		mean += d
	}
	mean /= float64(n)

	// zero padding only refines the bin spacing
	size := minSpectrumSize
	for size < 8*n {
		size <<= 1
	}
	buf := make([]float64, size)
	for i, d := range o.disp {
		buf[i] = d - mean
	}
	spectrum := fft.FFTReal(buf)

	peak := 1
	for k := 2; k < size/2; k++ {
		if cmplx.Abs(spectrum[k]) > cmplx.Abs(spectrum[peak]) {
			peak = k
		}
	}

	// parabolic interpolation between neighbouring bins
	offset := 0.0
	if peak > 1 && peak < size/2-1 {
		a := cmplx.Abs(spectrum[peak-1])
		b := cmplx.Abs(spectrum[peak])
		c := cmplx.Abs(spectrum[peak+1])
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(peak) + offset) * rate / float64(size)
}

func (o *OscillationFrequency) Reset() {
	o.loop = 0
	o.times = o.times[:0]
	o.disp = o.disp[:0]
}

// crossings counts sign changes, skipping exact zeros.
func crossings(xs []float64) int {
	count := 0
	prev := 0.0
	for _, x := range xs {
		if x == 0 {
			continue
		}
		if prev != 0 && (x > 0) != (prev > 0) {
			count++
		}
		prev = x
	}
	return count
}
