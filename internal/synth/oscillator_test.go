package synth

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestOscillatorBounded(t *testing.T) {
	bounded := []Waveform{Sine, DigitalSquare, Triangle, DigitalSaw}
	freqs := []float64{0, 0.5, 55, 440, 1234.5, 20000}
	phases := []float64{0, 0.3, -1.7, math.Pi, 12}

	for _, w := range bounded {
		osc := Oscillator{Waveform: w}
		for _, f := range freqs {
			for _, p := range phases {
				for i := 0; i < 500; i++ {
					tm := float64(i) * 0.000713
					if v := osc.Sample(tm, f, p); math.Abs(v) > 1+eps {
						t.Fatalf("%v: |Sample(%g, %g, %g)| = %g > 1", w, tm, f, p, v)
					}
				}
			}
		}
	}
}

func TestOscillatorShapes(t *testing.T) {
	tests := []struct {
		name  string
		w     Waveform
		t     float64
		freq  float64
		phase float64
		want  float64
	}{
		{"sine quarter period", Sine, 0.25, 1, 0, 1},
		{"sine with phase", Sine, 0, 1, math.Pi / 2, 1},
		{"digital square high", DigitalSquare, 0.25, 1, 0, 1},
		{"digital square low", DigitalSquare, 0.75, 1, 0, -1},
		{"triangle peak", Triangle, 0.25, 1, 0, 1},
		{"triangle trough", Triangle, 0.75, 1, 0, -1},
		{"triangle midpoint", Triangle, 0.125, 1, 0, 0.5},
		{"digital saw start", DigitalSaw, 0, 1, 0, -1},
		{"digital saw middle", DigitalSaw, 0.5, 1, 0, 0},
		{"digital saw phase", DigitalSaw, 0, 1, math.Pi, 0},
		{"digital saw 100Hz", DigitalSaw, 0.005, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Oscillator{Waveform: tt.w}.Sample(tt.t, tt.freq, tt.phase)
			if !approx(got, tt.want, 1e-6) {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestAnalogWaveformsApproximateDigital(t *testing.T) {
	// Away from the discontinuities the truncated series track the ideal shape.
	sq := Oscillator{Waveform: AnalogSquare}
	if v := sq.Sample(0.25, 1, 0); !approx(v, 1, 0.05) {
		t.Errorf("analog square at quarter period = %g, want ~1", v)
	}
	if v := sq.Sample(0.75, 1, 0); !approx(v, -1, 0.05) {
		t.Errorf("analog square at three quarters = %g, want ~-1", v)
	}

	saw := Oscillator{Waveform: AnalogSaw}
	dig := Oscillator{Waveform: DigitalSaw}
	for _, tm := range []float64{0.25, 0.4, 0.6, 0.75} {
		a, d := saw.Sample(tm, 1, 0), dig.Sample(tm, 1, 0)
		if !approx(a, d, 0.05) {
			t.Errorf("analog saw at %g = %g, digital = %g", tm, a, d)
		}
	}
}

func TestNoiseRange(t *testing.T) {
	osc := Oscillator{Waveform: Noise}
	distinct := map[float64]bool{}
	for i := 0; i < 1000; i++ {
		v := osc.Sample(0, 440, 0)
		if v < -1 || v > 1 {
			t.Fatalf("noise sample %g out of range", v)
		}
		distinct[v] = true
	}
	if len(distinct) < 10 {
		t.Errorf("noise produced only %d distinct values", len(distinct))
	}
}

func TestUnknownWaveformIsSilent(t *testing.T) {
	for _, w := range []Waveform{-1, waveformCount, 42} {
		if v := (Oscillator{Waveform: w}).Sample(0.1, 440, 0); v != 0 {
			t.Errorf("%v: got %g, want 0", w, v)
		}
	}
}

func TestParseWaveform(t *testing.T) {
	for n := 0; n < int(waveformCount); n++ {
		w, err := ParseWaveform(n)
		if err != nil || int(w) != n {
			t.Errorf("ParseWaveform(%d) = %v, %v", n, w, err)
		}
	}
	if _, err := ParseWaveform(7); err == nil {
		t.Error("ParseWaveform(7) succeeded")
	}
	if _, err := ParseWaveform(-1); err == nil {
		t.Error("ParseWaveform(-1) succeeded")
	}
	if Noise.Next() != Sine {
		t.Errorf("Noise.Next() = %v", Noise.Next())
	}
}

func TestLFOUsesOwnFrequency(t *testing.T) {
	lfo := LFO{Osc: Oscillator{Waveform: Sine}, Frequency: 5}
	for _, tm := range []float64{0, 0.01, 0.05, 0.3} {
		want := Oscillator{Waveform: Sine}.Sample(tm, 5, 0)
		if got := lfo.Sample(tm); got != want {
			t.Errorf("Sample(%g) = %g, want %g", tm, got, want)
		}
	}

	def := NewLFO()
	if def.Frequency != 1 || def.Osc.Waveform != Sine {
		t.Errorf("NewLFO() = %+v", def)
	}
}
