package audio

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer drives the device through oto directly, as mono float32.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	r      Renderer
	clock  *Clock
	tap    *Tap
	volume atomic.Uint64 // float64 bits, powers of two

	mu     sync.Mutex // guards closed
	closed bool
}

// NewOtoPlayer opens the default device and starts pulling from r.
func NewOtoPlayer(r Renderer, clock *Clock, tap *Tap, buffer time.Duration) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   clock.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	p := &OtoPlayer{ctx: ctx, r: r, clock: clock, tap: tap}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	log.Printf("audio: oto player started at %d Hz, %v buffer", clock.SampleRate(), buffer)
	return p, nil
}

// Read renders len(b)/4 samples. oto calls it from its own goroutine.
func (p *OtoPlayer) Read(b []byte) (int, error) {
	gain := math.Pow(2, math.Float64frombits(p.volume.Load()))
	n := len(b) / 4
	for i := 0; i < n; i++ {
		v := p.r.RenderSample(p.clock.Tick())
		if p.tap != nil {
			p.tap.Write(v)
		}
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(v*gain)))
	}
	return n * 4, nil
}

// AdjustVolume implements Output.
func (p *OtoPlayer) AdjustVolume(delta float64) float64 {
	for {
		old := p.volume.Load()
		v := math.Float64frombits(old) + delta
		if p.volume.CompareAndSwap(old, math.Float64bits(v)) {
			return v
		}
	}
}

// Close implements Output.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	log.Printf("audio: oto player closed")
	return p.player.Close()
}
