// Package keys maps the computer keyboard onto notes and turns the
// terminal's key-repeat stream into press and release transitions.
package keys

import (
	"math"
	"strings"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// BaseFrequency is the pitch of the lowest key.
const BaseFrequency = 440.0

// Note is one playable key.
type Note struct {
	Key   string // what the terminal reports
	Name  string
	Black bool
}

// Layout runs chromatically from A upwards: the bottom letter row holds the
// white keys and the row above it the black ones.
var Layout = []Note{
	{"z", "A", false}, {"s", "A#", true}, {"x", "B", false}, {"c", "C", false},
	{"f", "C#", true}, {"v", "D", false}, {"g", "D#", true}, {"b", "E", false},
	{"n", "F", false}, {"j", "F#", true}, {"m", "G", false}, {"k", "G#", true},
	{",", "A", false}, {"l", "A#", true}, {".", "B", false}, {"/", "C", false},
}

var byKey = func() map[string]synth.Key {
	m := make(map[string]synth.Key, len(Layout))
	for i, n := range Layout {
		m[n.Key] = synth.Key(i)
	}
	return m
}()

// Lookup returns the key for a terminal key string. Upper-case letters map
// to the same key so caps lock does not mute the keyboard.
func Lookup(s string) (synth.Key, bool) {
	k, ok := byKey[strings.ToLower(s)]
	return k, ok
}

// Frequency returns the pitch of k: base·2^(k/12).
func Frequency(k synth.Key, base float64) float64 {
	return base * math.Pow(2, float64(k)/12)
}

// Name returns the note name of k, or "?" for keys outside the layout.
func Name(k synth.Key) string {
	if k < 0 || int(k) >= len(Layout) {
		return "?"
	}
	return Layout[k].Name
}
