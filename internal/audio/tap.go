package audio

import (
	"math"
	"sync/atomic"
)

// TapSize is how many recent samples a Tap keeps.
const TapSize = 2048

// Tap remembers the most recent output for display. The render side writes
// without locking; readers may see a sample or two from the next buffer,
// which does not matter for a scope.
type Tap struct {
	buf [TapSize]atomic.Uint64
	pos atomic.Uint64
}

// Write appends one sample.
func (t *Tap) Write(v float64) {
	i := t.pos.Add(1) - 1
	t.buf[i%TapSize].Store(math.Float64bits(v))
}

// Snapshot fills dst with the most recent samples, oldest first, and
// returns how many it wrote.
func (t *Tap) Snapshot(dst []float64) int {
	n := len(dst)
	if n > TapSize {
		n = TapSize
	}
	end := t.pos.Load()
	if uint64(n) > end {
		n = int(end)
	}
	start := end - uint64(n)
	for i := 0; i < n; i++ {
		dst[i] = math.Float64frombits(t.buf[(start+uint64(i))%TapSize].Load())
	}
	return n
}
