package patch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

func sample() synth.Instrument {
	in := synth.NewInstrument()
	in.Osc1 = synth.Oscillator{Waveform: synth.Triangle}
	in.Osc1Amp = 0.75
	in.Osc2 = synth.Oscillator{Waveform: synth.Noise}
	in.Osc2Amp = 0.01
	in.Osc2Detune = -12
	in.LFO1 = synth.LFO{Osc: synth.Oscillator{Waveform: synth.AnalogSaw}, Frequency: 5}
	in.LFO2 = synth.LFO{Osc: synth.Oscillator{Waveform: synth.DigitalSquare}, Frequency: 0.25}
	in.Env1 = synth.EnvelopeTemplate{Attack: 0.1, Decay: 0.01, Sustain: 1, Release: 0.9}
	in.Env2 = synth.EnvelopeTemplate{Attack: 0.2, Decay: 0.3, Sustain: 0.4, Release: 0.5}
	in.FMSource = synth.SourceEnv2
	in.FMDepth = 0.3
	in.Tune = -7.5
	return in
}

func TestEncodeOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	want := `osc1-wave 3
osc1-amp 0.75
osc2-wave 6
osc2-amp 0.01
osc2-tune -12
lfo1-wave 4
lfo1-freq 5
lfo2-wave 2
lfo2-freq 0.25
env1-atk 0.1
env1-dec 0.01
env1-sus 1
env1-rel 0.9
env2-atk 0.2
env2-dec 0.3
env2-sus 0.4
env2-rel 0.5
fm-src 3
fm-amp 0.3
tune -7.5
`
	if got := buf.String(); got != want {
		t.Errorf("Encode =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := sample()
	if err := Encode(&buf, in); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestDecodeWithoutTune(t *testing.T) {
	// Files from before the global tune was persisted end at fm-amp.
	src := "osc1-wave 0\nosc1-amp 1\nfm-src 0\nfm-amp 0.3\n"
	in, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if in.Tune != 0 || in.FMDepth != 0.3 || in.Env1 != synth.DefaultEnvelope() {
		t.Errorf("decoded %+v", in)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown label", "osc3-wave 1\n", "unknown label"},
		{"bad number", "osc1-amp loud\n", "line 1: osc1-amp"},
		{"bad waveform", "osc1-wave 9\n", "unknown waveform 9"},
		{"bad source", "osc1-amp 1\nfm-src 8\n", "line 2: fm-src"},
		{"missing value", "osc1-amp\n", "want \"label value\""},
		{"duplicate", "tune 1\ntune 2\n", "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestStoreSaveLoad(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	in := sample()

	if err := s.Save("lead", in); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, "lead.inst")); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	got, err := s.Load("lead")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Load = %+v", got)
	}

	if err := s.Save("lead.inst", synth.NewInstrument()); !errors.Is(err, ErrExists) {
		t.Errorf("second Save = %v, want ErrExists", err)
	}
	got, _ = s.Load("lead")
	if !reflect.DeepEqual(got, in) {
		t.Error("existing patch was overwritten")
	}
}

func TestStoreNames(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	for _, name := range []string{"", "  ", "../up", `a\b`, ".."} {
		if err := s.Save(name, synth.NewInstrument()); !errors.Is(err, ErrName) {
			t.Errorf("Save(%q) = %v, want ErrName", name, err)
		}
	}
	if _, err := s.Load("missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v", err)
	}
}

func TestStoreList(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	for _, name := range []string{"pad", "bass"} {
		if err := s.Save(name, synth.NewInstrument()); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"bass", "pad"}) {
		t.Errorf("List = %v", names)
	}
}

func TestPresetsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Presets() {
		if seen[p.Name] {
			t.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true

		in := p.Instrument
		for _, w := range []synth.Waveform{in.Osc1.Waveform, in.Osc2.Waveform, in.LFO1.Osc.Waveform, in.LFO2.Osc.Waveform} {
			if !w.Valid() {
				t.Errorf("%s: invalid waveform %v", p.Name, w)
			}
		}
		if !in.FMSource.Valid() {
			t.Errorf("%s: invalid FM source", p.Name)
		}
		for _, e := range []synth.EnvelopeTemplate{in.Env1, in.Env2} {
			if e.Sustain < 0 || e.Sustain > 1 || e.Attack < 0 || e.Decay < 0 || e.Release < 0 {
				t.Errorf("%s: bad envelope %+v", p.Name, e)
			}
		}

		var buf bytes.Buffer
		if err := Encode(&buf, in); err != nil {
			t.Fatal(err)
		}
		if _, err := Decode(&buf); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
}
