// Package patch reads and writes instruments in the .inst text format and
// provides the built-in presets.
//
// A patch file holds one "label value" pair per line. Waveforms and the FM
// source are stored as integers, everything else as a decimal number:
//
//	osc1-wave 0
//	osc1-amp 1
//	...
//	fm-amp 0.3
//	tune -12
package patch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// field binds one label to the instrument value it persists.
type field struct {
	label string
	get   func(*synth.Instrument) string
	set   func(*synth.Instrument, string) error
}

func number(label string, ptr func(*synth.Instrument) *float64) field {
	return field{
		label: label,
		get: func(in *synth.Instrument) string {
			return strconv.FormatFloat(*ptr(in), 'g', -1, 64)
		},
		set: func(in *synth.Instrument, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*ptr(in) = v
			return nil
		},
	}
}

func waveform(label string, ptr func(*synth.Instrument) *synth.Waveform) field {
	return field{
		label: label,
		get: func(in *synth.Instrument) string {
			return strconv.Itoa(int(*ptr(in)))
		},
		set: func(in *synth.Instrument, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			w, err := synth.ParseWaveform(n)
			if err != nil {
				return err
			}
			*ptr(in) = w
			return nil
		},
	}
}

// fields lists every persisted value in file order.
var fields = []field{
	waveform("osc1-wave", func(in *synth.Instrument) *synth.Waveform { return &in.Osc1.Waveform }),
	number("osc1-amp", func(in *synth.Instrument) *float64 { return &in.Osc1Amp }),
	waveform("osc2-wave", func(in *synth.Instrument) *synth.Waveform { return &in.Osc2.Waveform }),
	number("osc2-amp", func(in *synth.Instrument) *float64 { return &in.Osc2Amp }),
	number("osc2-tune", func(in *synth.Instrument) *float64 { return &in.Osc2Detune }),
	waveform("lfo1-wave", func(in *synth.Instrument) *synth.Waveform { return &in.LFO1.Osc.Waveform }),
	number("lfo1-freq", func(in *synth.Instrument) *float64 { return &in.LFO1.Frequency }),
	waveform("lfo2-wave", func(in *synth.Instrument) *synth.Waveform { return &in.LFO2.Osc.Waveform }),
	number("lfo2-freq", func(in *synth.Instrument) *float64 { return &in.LFO2.Frequency }),
	number("env1-atk", func(in *synth.Instrument) *float64 { return &in.Env1.Attack }),
	number("env1-dec", func(in *synth.Instrument) *float64 { return &in.Env1.Decay }),
	number("env1-sus", func(in *synth.Instrument) *float64 { return &in.Env1.Sustain }),
	number("env1-rel", func(in *synth.Instrument) *float64 { return &in.Env1.Release }),
	number("env2-atk", func(in *synth.Instrument) *float64 { return &in.Env2.Attack }),
	number("env2-dec", func(in *synth.Instrument) *float64 { return &in.Env2.Decay }),
	number("env2-sus", func(in *synth.Instrument) *float64 { return &in.Env2.Sustain }),
	number("env2-rel", func(in *synth.Instrument) *float64 { return &in.Env2.Release }),
	{
		label: "fm-src",
		get:   func(in *synth.Instrument) string { return strconv.Itoa(int(in.FMSource)) },
		set: func(in *synth.Instrument, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			src, err := synth.ParseModSource(n)
			if err != nil {
				return err
			}
			in.FMSource = src
			return nil
		},
	},
	number("fm-amp", func(in *synth.Instrument) *float64 { return &in.FMDepth }),
	number("tune", func(in *synth.Instrument) *float64 { return &in.Tune }),
}

var byLabel = func() map[string]field {
	m := make(map[string]field, len(fields))
	for _, f := range fields {
		m[f.label] = f
	}
	return m
}()

// Encode writes in to w in .inst format.
func Encode(w io.Writer, in synth.Instrument) error {
	bw := bufio.NewWriter(w)
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s %s\n", f.label, f.get(&in)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads an instrument. Values missing from the input keep their
// power-on defaults, so files written before "tune" existed still load.
func Decode(r io.Reader) (synth.Instrument, error) {
	in := synth.NewInstrument()
	seen := make(map[string]bool, len(fields))

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Fields(text)
		if len(parts) != 2 {
			return synth.Instrument{}, fmt.Errorf("line %d: want \"label value\", got %q", line, text)
		}
		label, value := parts[0], parts[1]

		f, ok := byLabel[label]
		if !ok {
			return synth.Instrument{}, fmt.Errorf("line %d: unknown label %q", line, label)
		}
		if seen[label] {
			return synth.Instrument{}, fmt.Errorf("line %d: duplicate label %q", line, label)
		}
		seen[label] = true

		if err := f.set(&in, value); err != nil {
			return synth.Instrument{}, fmt.Errorf("line %d: %s: %w", line, label, err)
		}
	}
	if err := sc.Err(); err != nil {
		return synth.Instrument{}, err
	}
	return in, nil
}
