package audio

import (
	"fmt"
	"log"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// Output is a running sound device.
type Output interface {
	// AdjustVolume changes the master volume by delta (in powers of two)
	// and returns the new setting.
	AdjustVolume(delta float64) float64
	Close() error
}

// Streamer pulls samples from a Renderer one frame at a time and plays them
// on both channels.
type Streamer struct {
	r     Renderer
	clock *Clock
	tap   *Tap
}

// NewStreamer returns a beep.Streamer over r. tap may be nil.
func NewStreamer(r Renderer, clock *Clock, tap *Tap) *Streamer {
	return &Streamer{r: r, clock: clock, tap: tap}
}

// Stream implements beep.Streamer. It never ends.
func (s *Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := s.r.RenderSample(s.clock.Tick())
		samples[i][0] = v
		samples[i][1] = v
		if s.tap != nil {
			s.tap.Write(v)
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error { return nil }

// Speaker plays a Streamer on the default device through beep's speaker.
type Speaker struct {
	vol *effects.Volume
}

// NewSpeaker initialises the speaker with a buffer of the given length and
// starts playing s.
func NewSpeaker(s beep.Streamer, sampleRate int, buffer time.Duration) (*Speaker, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	vol := &effects.Volume{Streamer: s, Base: 2}
	speaker.Play(vol)
	log.Printf("audio: speaker started at %d Hz, %v buffer", sampleRate, buffer)
	return &Speaker{vol: vol}, nil
}

// AdjustVolume implements Output.
func (s *Speaker) AdjustVolume(delta float64) float64 {
	speaker.Lock()
	defer speaker.Unlock()
	s.vol.Volume += delta
	return s.vol.Volume
}

// Close implements Output.
func (s *Speaker) Close() error {
	speaker.Clear()
	speaker.Close()
	log.Printf("audio: speaker closed")
	return nil
}
