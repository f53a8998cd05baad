package patch

import "github.com/SirSobhan0/lsdsynth/internal/synth"

// Preset is a named built-in instrument.
type Preset struct {
	Name       string
	Instrument synth.Instrument
}

func env(a, d, s, r float64) synth.EnvelopeTemplate {
	return synth.EnvelopeTemplate{Attack: a, Decay: d, Sustain: s, Release: r}
}

func osc(w synth.Waveform) synth.Oscillator { return synth.Oscillator{Waveform: w} }

// Presets returns the built-in instruments in display order.
func Presets() []Preset {
	piano := synth.NewInstrument()
	piano.Osc2 = osc(synth.Triangle)
	piano.Osc2Amp = 0.3
	piano.Osc2Detune = 12
	piano.Env1 = env(0.005, 0.4, 0.4, 0.5)

	square := synth.NewInstrument()
	square.Osc1 = osc(synth.DigitalSquare)
	square.Osc1Amp = 0.5
	square.Env1 = env(0.001, 0.05, 0.7, 0.05)

	saw := synth.NewInstrument()
	saw.Osc1 = osc(synth.AnalogSaw)
	saw.Osc1Amp = 0.7
	saw.Osc2 = osc(synth.DigitalSaw)
	saw.Osc2Amp = 0.3
	saw.Osc2Detune = 0.1
	saw.Env1 = env(0.02, 0.2, 0.7, 0.3)

	flute := synth.NewInstrument()
	flute.Osc1 = osc(synth.Triangle)
	flute.LFO1.Frequency = 5
	flute.FMSource = synth.SourceLFO1
	flute.FMDepth = 0.15
	flute.Env1 = env(0.08, 0.1, 0.8, 0.2)

	organ := synth.NewInstrument()
	organ.Osc1Amp = 0.7
	organ.Osc2Amp = 0.35
	organ.Osc2Detune = 12
	organ.Env1 = env(0.05, 0.01, 1, 0.3)

	pulse := synth.NewInstrument()
	pulse.Osc1 = osc(synth.DigitalSquare)
	pulse.Osc1Amp = 0.4
	pulse.Osc2 = osc(synth.AnalogSquare)
	pulse.Osc2Amp = 0.2
	pulse.Osc2Detune = -12
	pulse.Env1 = env(0.001, 0.1, 0.5, 0.1)

	scifi := synth.NewInstrument()
	scifi.Osc2 = osc(synth.Noise)
	scifi.Osc2Amp = 0.15
	scifi.Env2 = env(0, 0.5, 0, 0.1)
	scifi.FMSource = synth.SourceEnv2
	scifi.FMDepth = 3
	scifi.Env1 = env(0.01, 0.3, 0.6, 0.4)

	lsd := synth.NewInstrument()
	lsd.Osc2 = osc(synth.Noise)
	lsd.Osc2Amp = 0.01
	lsd.Osc2Detune = -12
	lsd.Tune = -12
	lsd.Env1 = env(0.10, 0.01, 1, 0.9)
	lsd.FMDepth = 0.3
	lsd.LFO1.Frequency = 5

	return []Preset{
		{"Pure Sine", synth.NewInstrument()},
		{"Electric Piano", piano},
		{"8-Bit Square", square},
		{"Synth Saw", saw},
		{"Soft Flute", flute},
		{"Church Organ", organ},
		{"Gameboy Pulse", pulse},
		{"Sci-Fi Noise", scifi},
		{"LSD Lead", lsd},
	}
}
