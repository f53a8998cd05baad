package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum band limits in Hz.
const (
	SpectrumLow  = 100.0
	SpectrumHigh = 4000.0
)

// Spectrum estimates the magnitude spectrum of samples and folds it into
// len(bars) logarithmic bands between SpectrumLow and SpectrumHigh. Each
// band holds the peak sinusoid amplitude found in it.
func Spectrum(samples []float64, sampleRate int, bars []float64) {
	for i := range bars {
		bars[i] = 0
	}
	n := len(samples)
	if n < 2 || len(bars) == 0 {
		return
	}

	// Hann window against leakage from the buffer edges.
	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}

	X := fft.FFTReal(windowed)
	span := math.Log(SpectrumHigh / SpectrumLow)
	for i := 1; i <= n/2; i++ {
		f := float64(i) * float64(sampleRate) / float64(n)
		if f < SpectrumLow || f > SpectrumHigh {
			continue
		}
		b := int(math.Log(f/SpectrumLow) / span * float64(len(bars)))
		if b >= len(bars) {
			b = len(bars) - 1
		}
		// A Hann window halves the coherent gain.
		amp := 4 * cmplx.Abs(X[i]) / float64(n)
		if amp > bars[b] {
			bars[b] = amp
		}
	}
}
