// Package synth holds the synthesis and voice-management core: oscillators,
// envelopes, the shared instrument and the polyphonic channel pool.
package synth

import (
	"fmt"
	"math"
	"math/rand"
)

// Waveform selects the shape an Oscillator produces.
type Waveform int

const (
	Sine Waveform = iota
	AnalogSquare
	DigitalSquare
	Triangle
	AnalogSaw
	DigitalSaw
	Noise

	waveformCount
)

// harmonics is the truncation of the additive (analog) waveforms.
const harmonics = 49

var waveformNames = [...]string{
	Sine:          "Sine",
	AnalogSquare:  "Square (analog)",
	DigitalSquare: "Square (digital)",
	Triangle:      "Triangle",
	AnalogSaw:     "Saw (analog)",
	DigitalSaw:    "Saw (digital)",
	Noise:         "Noise",
}

// Valid reports whether w is one of the defined waveforms.
func (w Waveform) Valid() bool { return w >= 0 && w < waveformCount }

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// Next returns the following waveform, wrapping around after Noise.
func (w Waveform) Next() Waveform {
	return (w + 1) % waveformCount
}

// ParseWaveform converts a stored integer into a Waveform.
func ParseWaveform(n int) (Waveform, error) {
	w := Waveform(n)
	if !w.Valid() {
		return 0, fmt.Errorf("unknown waveform %d", n)
	}
	return w, nil
}

func angular(hz float64) float64 { return hz * 2 * math.Pi }

// Oscillator is a stateless waveform generator.
type Oscillator struct {
	Waveform Waveform
}

// Sample returns the amplitude at time t (seconds) for the given frequency
// and phase offset (radians).
func (o Oscillator) Sample(t, freq, phase float64) float64 {
	x := angular(freq) * t
	switch o.Waveform {
	case Sine:
		return math.Sin(x + phase)
	case AnalogSquare:
		var out float64
		for k := 0; k < harmonics; k++ {
			n := float64(2*k + 1)
			out += math.Sin(n*x+phase) / n
		}
		return out * 4 / math.Pi
	case DigitalSquare:
		if math.Sin(x+phase) > 0 {
			return 1
		}
		return -1
	case Triangle:
		return math.Asin(math.Sin(x+phase)) * 2 / math.Pi
	case AnalogSaw:
		var out float64
		for n := 1; n <= harmonics; n++ {
			out -= math.Sin(float64(n)*x+phase) / float64(n)
		}
		return out * 2 / math.Pi
	case DigitalSaw:
		cycles := freq*t + phase/(2*math.Pi)
		return 2*(cycles-math.Floor(cycles)) - 1
	case Noise:
		return 2*rand.Float64() - 1
	}
	return 0
}

// Modulator is anything that can feed the FM input: LFOs and envelopes.
type Modulator interface {
	Sample(t float64) float64
}

// LFO is an oscillator running at its own fixed rate, used for modulation.
type LFO struct {
	Osc       Oscillator
	Frequency float64
}

// NewLFO returns a sine LFO at 1 Hz.
func NewLFO() LFO {
	return LFO{Osc: Oscillator{Waveform: Sine}, Frequency: 1}
}

// Sample returns the LFO output at time t with zero phase.
func (l LFO) Sample(t float64) float64 {
	return l.Osc.Sample(t, l.Frequency, 0)
}
