package synth

import "math"

// EnvelopeTemplate is the shape of an ADSR envelope. Times are in seconds,
// Sustain is a level in [0,1].
type EnvelopeTemplate struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultEnvelope is the template every instrument starts with.
func DefaultEnvelope() EnvelopeTemplate {
	return EnvelopeTemplate{Attack: 0.01, Decay: 0.01, Sustain: 0.8, Release: 0.01}
}

// EnvelopeState is one note's live envelope: a copy of the template taken
// when the note started plus the note's timing. The phase is never stored;
// Amplitude derives it from the times on every call.
type EnvelopeState struct {
	EnvelopeTemplate
	NoteOn  float64
	NoteOff float64
	Held    bool
}

// idleEnvelope never sounds and is released infinitely long ago, so a
// channel holding it is free from time zero on.
func idleEnvelope(tmpl EnvelopeTemplate) EnvelopeState {
	return EnvelopeState{
		EnvelopeTemplate: tmpl,
		NoteOn:           math.Inf(-1),
		NoteOff:          math.Inf(-1),
	}
}

// NoteOnAt restarts the attack at t. Any release in progress is abandoned.
func (e *EnvelopeState) NoteOnAt(t float64) {
	e.NoteOn = t
	e.Held = true
}

// NoteOffAt starts the release at t.
func (e *EnvelopeState) NoteOffAt(t float64) {
	e.NoteOff = t
	e.Held = false
}

// Amplitude returns the envelope level at time t.
func (e *EnvelopeState) Amplitude(t float64) float64 {
	life := t - e.NoteOn
	if life < 0 {
		return 0
	}

	if life < e.Attack {
		return life / e.Attack
	}
	if life < e.Attack+e.Decay {
		return 1 + (e.Sustain-1)*(life-e.Attack)/e.Decay
	}
	if e.Held {
		return e.Sustain
	}

	released := t - e.NoteOff
	if released < e.Release {
		return e.Sustain * (1 - released/e.Release)
	}
	return 0
}

// Sample makes a live envelope usable as an FM source.
func (e *EnvelopeState) Sample(t float64) float64 { return e.Amplitude(t) }

// Silent reports whether the release that started at NoteOff has run its
// full length by time t.
func (e *EnvelopeState) Silent(t float64) bool {
	return !e.Held && t-e.NoteOff > e.Release
}
