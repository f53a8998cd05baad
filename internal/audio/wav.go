package audio

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
	wav "github.com/youpy/go-wav"
)

// Sequencer is a Renderer that also accepts key events.
type Sequencer interface {
	Renderer
	Apply(ev synth.Event)
}

const wavChunk = 4096

// WriteWAV renders duration of audio from s into w as 16-bit mono PCM.
// Each event in script is applied just before the first sample at or
// after its time. Samples are clipped to [-1, 1].
func WriteWAV(w io.Writer, s Sequencer, sampleRate int, duration time.Duration, script []synth.Event) error {
	total := int(duration.Seconds() * float64(sampleRate))
	if total < 0 {
		return fmt.Errorf("negative duration %v", duration)
	}

	events := append([]synth.Event(nil), script...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })

	ww := wav.NewWriter(w, uint32(total), 1, uint32(sampleRate), 16)
	clock := NewClock(sampleRate)
	buf := make([]wav.Sample, 0, wavChunk)
	next := 0

	for i := 0; i < total; i++ {
		t := clock.Tick()
		for next < len(events) && events[next].Time <= t {
			s.Apply(events[next])
			next++
		}
		v := math.Max(-1, math.Min(1, s.RenderSample(t)))
		buf = append(buf, wav.Sample{Values: [2]int{int(math.Round(v * math.MaxInt16))}})

		if len(buf) == cap(buf) {
			if err := ww.WriteSamples(buf); err != nil {
				return fmt.Errorf("write wav: %w", err)
			}
			buf = buf[:0]
		}
	}
	if len(buf) > 0 {
		if err := ww.WriteSamples(buf); err != nil {
			return fmt.Errorf("write wav: %w", err)
		}
	}
	return nil
}
