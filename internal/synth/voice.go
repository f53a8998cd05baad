package synth

// Polyphony is the fixed number of channels in the pool.
const Polyphony = 8

// Key identifies a physical key. Keys are small non-negative integers
// handed out by the keyboard layout.
type Key int

// Channel is one slot of polyphony.
type Channel struct {
	Key       Key
	Assigned  bool
	Held      bool
	Frequency float64

	// Env is the amplitude envelope copied from the instrument's Env1 when
	// the note started; ModEnv is the matching copy of Env2.
	Env    EnvelopeState
	ModEnv EnvelopeState
}

func idleChannel(in *Instrument) Channel {
	return Channel{
		Env:    idleEnvelope(in.Env1),
		ModEnv: idleEnvelope(in.Env2),
	}
}

// available reports whether the channel may take a new key at time t:
// it holds no key and its release has fully elapsed. A note released
// during its attack may still be audible when the channel is reused.
func (c *Channel) available(t float64) bool {
	return !c.Assigned && c.Env.Silent(t)
}

func (c *Channel) start(key Key, freq float64, in *Instrument, t float64) {
	c.Key = key
	c.Assigned = true
	c.Held = true
	c.Frequency = freq
	c.Env.EnvelopeTemplate = in.Env1
	c.Env.NoteOnAt(t)
	c.ModEnv.EnvelopeTemplate = in.Env2
	c.ModEnv.NoteOnAt(t)
}

func (c *Channel) stop(t float64) {
	c.Assigned = false
	c.Held = false
	c.Env.NoteOffAt(t)
	c.ModEnv.NoteOffAt(t)
}

// Pool is the fixed set of channels.
type Pool [Polyphony]Channel

// FindAvailableChannel returns the lowest-index channel free at time t.
// It only reads the pool.
func (p *Pool) FindAvailableChannel(t float64) (int, bool) {
	for i := range p {
		if p[i].available(t) {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the index of the channel holding key.
func (p *Pool) Lookup(key Key) (int, bool) {
	for i := range p {
		if p[i].Assigned && p[i].Key == key {
			return i, true
		}
	}
	return -1, false
}
