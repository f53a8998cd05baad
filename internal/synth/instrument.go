package synth

import (
	"fmt"
	"math"
)

// ModSource selects what drives the FM input of the carriers.
type ModSource int

const (
	SourceLFO1 ModSource = iota
	SourceLFO2
	SourceEnv1
	SourceEnv2
	// SourceOsc1 and SourceOsc2 are reserved and resolve to zero.
	SourceOsc1
	SourceOsc2

	sourceCount
)

var sourceNames = [...]string{
	SourceLFO1: "LFO 1",
	SourceLFO2: "LFO 2",
	SourceEnv1: "Env 1",
	SourceEnv2: "Env 2",
	SourceOsc1: "Osc 1",
	SourceOsc2: "Osc 2",
}

// Valid reports whether s is one of the defined sources.
func (s ModSource) Valid() bool { return s >= 0 && s < sourceCount }

func (s ModSource) String() string {
	if !s.Valid() {
		return fmt.Sprintf("ModSource(%d)", int(s))
	}
	return sourceNames[s]
}

// ParseModSource converts a stored integer into a ModSource.
func ParseModSource(n int) (ModSource, error) {
	s := ModSource(n)
	if !s.Valid() {
		return 0, fmt.Errorf("unknown modulation source %d", n)
	}
	return s, nil
}

// Instrument is the patch shared by every voice.
type Instrument struct {
	Osc1       Oscillator
	Osc1Amp    float64
	Osc2       Oscillator
	Osc2Amp    float64
	Osc2Detune float64 // semitones

	LFO1 LFO
	LFO2 LFO

	// Env1 shapes the amplitude of every note. Env2 only drives FM.
	Env1 EnvelopeTemplate
	Env2 EnvelopeTemplate

	FMSource ModSource
	FMDepth  float64

	Tune float64 // semitones, applied to both carriers
}

// NewInstrument returns the power-on patch: a plain sine on oscillator 1.
func NewInstrument() Instrument {
	return Instrument{
		Osc1:     Oscillator{Waveform: Sine},
		Osc1Amp:  1,
		Osc2:     Oscillator{Waveform: Sine},
		LFO1:     NewLFO(),
		LFO2:     NewLFO(),
		Env1:     DefaultEnvelope(),
		Env2:     DefaultEnvelope(),
		FMSource: SourceLFO1,
	}
}

// Modulation resolves src at time t. The envelope sources read the live
// envelopes of the note being rendered.
func (in *Instrument) Modulation(src ModSource, t float64, env1, env2 Modulator) float64 {
	switch src {
	case SourceLFO1:
		return in.LFO1.Sample(t)
	case SourceLFO2:
		return in.LFO2.Sample(t)
	case SourceEnv1:
		return env1.Sample(t)
	case SourceEnv2:
		return env2.Sample(t)
	}
	return 0
}

// FM returns the phase offset fed into both carriers at time t.
func (in *Instrument) FM(t float64, env1, env2 Modulator) float64 {
	if in.FMDepth == 0 {
		return 0
	}
	return in.FMDepth * in.Modulation(in.FMSource, t, env1, env2)
}

// Transpose shifts base by semitones.
func Transpose(base, semitones float64) float64 {
	return base * math.Pow(2, semitones/12)
}

// Output returns the carrier mix for a note at base Hz with the given FM
// phase offset. Envelope and mix gain are applied by the caller.
func (in *Instrument) Output(t, base, fm float64) float64 {
	out := in.Osc1Amp * in.Osc1.Sample(t, Transpose(base, in.Tune), fm)
	if in.Osc2Amp != 0 {
		out += in.Osc2Amp * in.Osc2.Sample(t, Transpose(base, in.Osc2Detune+in.Tune), fm)
	}
	return out
}
