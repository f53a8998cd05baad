package keys

import (
	"sort"
	"time"

	"github.com/SirSobhan0/lsdsynth/internal/synth"
)

// DefaultHold is how long a key counts as held after its last repeat.
const DefaultHold = 600 * time.Millisecond

// Tracker infers held keys from key-down messages. A terminal sends a
// message when a key goes down and then auto-repeats while it stays down;
// it never reports the key coming up, so a key that stops repeating for
// longer than the hold time is treated as released.
type Tracker struct {
	hold     time.Duration
	lastSeen map[synth.Key]time.Time
}

// NewTracker returns a tracker; hold <= 0 selects DefaultHold.
func NewTracker(hold time.Duration) *Tracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Tracker{
		hold:     hold,
		lastSeen: make(map[synth.Key]time.Time),
	}
}

// Touch records a key-down for k at now and reports whether k was not
// already held, i.e. whether this is a new press.
func (t *Tracker) Touch(k synth.Key, now time.Time) bool {
	_, held := t.lastSeen[k]
	t.lastSeen[k] = now
	return !held
}

// Expire forgets every key not seen within the hold time and returns them
// in ascending order.
func (t *Tracker) Expire(now time.Time) []synth.Key {
	var released []synth.Key
	for k, seen := range t.lastSeen {
		if now.Sub(seen) > t.hold {
			released = append(released, k)
			delete(t.lastSeen, k)
		}
	}
	sort.Slice(released, func(i, j int) bool { return released[i] < released[j] })
	return released
}

// Held returns the keys currently considered down, ascending.
func (t *Tracker) Held() []synth.Key {
	held := make([]synth.Key, 0, len(t.lastSeen))
	for k := range t.lastSeen {
		held = append(held, k)
	}
	sort.Slice(held, func(i, j int) bool { return held[i] < held[j] })
	return held
}

// IsHeld reports whether k is currently down.
func (t *Tracker) IsHeld(k synth.Key) bool {
	_, ok := t.lastSeen[k]
	return ok
}

// Clear releases every key without reporting it.
func (t *Tracker) Clear() {
	t.lastSeen = make(map[synth.Key]time.Time)
}
