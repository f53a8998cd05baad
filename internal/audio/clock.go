// Package audio connects the synth engine to sound devices and files. It
// owns the sample clock that both the render and the input side read.
package audio

import "sync/atomic"

// Renderer produces one mono sample for time t in seconds.
type Renderer interface {
	RenderSample(t float64) float64
}

// Clock counts rendered samples. Time only moves when audio is pulled, so
// note events stamped with Now line up with what the device is playing.
type Clock struct {
	rate    int
	samples atomic.Uint64
}

// NewClock returns a clock at zero.
func NewClock(sampleRate int) *Clock {
	return &Clock{rate: sampleRate}
}

// SampleRate returns the rate the clock counts at.
func (c *Clock) SampleRate() int { return c.rate }

// Now returns the time of the next sample to be rendered.
func (c *Clock) Now() float64 {
	return float64(c.samples.Load()) / float64(c.rate)
}

// Tick claims the next sample and returns its time.
func (c *Clock) Tick() float64 {
	n := c.samples.Add(1) - 1
	return float64(n) / float64(c.rate)
}
