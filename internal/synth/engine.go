package synth

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// DefaultMixGain scales every channel before summing.
const DefaultMixGain = 0.5

// EventKind tells a key press from a key release.
type EventKind int

const (
	Press EventKind = iota
	Release
	// Silence returns every channel to idle. Key is ignored.
	Silence
)

func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Silence:
		return "silence"
	}
	return "unknown"
}

// Event is a key transition observed by the input side at Time seconds.
// Frequency is only used by presses.
type Event struct {
	Key       Key
	Kind      EventKind
	Frequency float64
	Time      float64
}

// frame is an immutable copy of everything the render path reads.
type frame struct {
	inst Instrument
	pool Pool
	gain float64
}

// Engine owns the shared instrument and the channel pool.
//
// All mutations go through the methods below, which serialize on mu and
// then publish a fresh frame. RenderSample only loads the latest frame, so
// the audio callback never blocks on the input side.
type Engine struct {
	mu   sync.Mutex
	inst Instrument
	pool Pool
	gain float64

	frame atomic.Pointer[frame]
}

// Option configures an Engine.
type Option func(*Engine)

// WithInstrument sets the patch loaded at start.
func WithInstrument(in Instrument) Option {
	return func(e *Engine) { e.inst = in }
}

// WithMixGain overrides DefaultMixGain.
func WithMixGain(g float64) Option {
	return func(e *Engine) { e.gain = g }
}

// NewEngine returns an engine with every channel idle.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		inst: NewInstrument(),
		gain: DefaultMixGain,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetPool()
	e.publish()
	return e
}

// RenderSample mixes every channel at time t. It is safe to call from the
// audio callback concurrently with any other method.
func (e *Engine) RenderSample(t float64) float64 {
	f := e.frame.Load()
	var out float64
	for i := range f.pool {
		ch := &f.pool[i]
		amp := ch.Env.Amplitude(t)
		if amp == 0 {
			continue
		}
		fm := f.inst.FM(t, &ch.Env, &ch.ModEnv)
		out += f.inst.Output(t, ch.Frequency, fm) * amp * f.gain
	}
	return out
}

// Apply feeds one key transition to the allocator.
func (e *Engine) Apply(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.apply(ev) {
		e.publish()
	}
}

// ApplyAll feeds a batch of transitions and publishes once.
func (e *Engine) ApplyAll(evs []Event) {
	if len(evs) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := false
	for _, ev := range evs {
		if e.apply(ev) {
			changed = true
		}
	}
	if changed {
		e.publish()
	}
}

func (e *Engine) apply(ev Event) bool {
	switch ev.Kind {
	case Press:
		if _, ok := e.pool.Lookup(ev.Key); ok {
			return false
		}
		i, ok := e.pool.FindAvailableChannel(ev.Time)
		if !ok {
			log.Printf("synth: no free channel for key %d, dropped", ev.Key)
			return false
		}
		e.pool[i].start(ev.Key, ev.Frequency, &e.inst, ev.Time)
		return true

	case Release:
		i, ok := e.pool.Lookup(ev.Key)
		if !ok {
			return false
		}
		e.pool[i].stop(ev.Time)
		return true

	case Silence:
		e.resetPool()
		return true
	}
	return false
}

// Run applies events from ch until it is closed or ctx is done. Events
// already waiting in ch are applied together and published once.
func (e *Engine) Run(ctx context.Context, ch <-chan Event) error {
	batch := make([]Event, 0, 16)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			batch = append(batch[:0], ev)
			closed := false
		drain:
			for {
				select {
				case ev, ok := <-ch:
					if !ok {
						closed = true
						break drain
					}
					batch = append(batch, ev)
				default:
					break drain
				}
			}
			e.ApplyAll(batch)
			if closed {
				return nil
			}
		}
	}
}

// FindAvailableChannel reports which channel a key pressed at t would get.
func (e *Engine) FindAvailableChannel(t float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool.FindAvailableChannel(t)
}

// Channels returns a copy of the pool.
func (e *Engine) Channels() Pool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pool
}

// Instrument returns a copy of the current patch.
func (e *Engine) Instrument() Instrument {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inst
}

// SetInstrument swaps the patch. Notes already sounding keep the envelopes
// they copied when they started.
func (e *Engine) SetInstrument(in Instrument) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inst = in
	e.publish()
}

// UpdateInstrument edits the patch in place.
func (e *Engine) UpdateInstrument(fn func(*Instrument)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.inst)
	e.publish()
}

// MixGain returns the per-channel output gain.
func (e *Engine) MixGain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gain
}

func (e *Engine) resetPool() {
	for i := range e.pool {
		e.pool[i] = idleChannel(&e.inst)
	}
}

func (e *Engine) publish() {
	e.frame.Store(&frame{inst: e.inst, pool: e.pool, gain: e.gain})
}
