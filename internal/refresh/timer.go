// Package refresh schedules a callback at an absolute point in time.
//
// Runtime timers take a relative duration, and very distant deadlines
// risk overflow on platforms that count timer ticks in 32-bit
// milliseconds. The timer here waits in bounded chunks and re-arms
// until the target instant passes.
package refresh

import (
	"math"
	"sync"
	"time"
)

// maxChunk is the longest single wait, just under the 32-bit
// millisecond ceiling.
const maxChunk = time.Duration(math.MaxInt32) * time.Millisecond

// Timer fires a callback once at an absolute time. At most one
// deadline is armed at a time; scheduling again replaces the previous
// one.
type Timer struct {
	mu    sync.Mutex
	inner *time.Timer
	gen   int
}

// NewTimer returns an unarmed timer.
func NewTimer() *Timer {
	return &Timer{}
}

// RunAt arms the timer to call fn at the given instant, replacing any
// pending deadline. A target in the past fires immediately. fn runs on
// a timer goroutine.
func (t *Timer) RunAt(at time.Time, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	t.stopLocked()
	t.armLocked(t.gen, at, fn)
}

// Stop cancels the pending deadline, if any.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if t.inner != nil {
		t.inner.Stop()
		t.inner = nil
	}
}

func (t *Timer) armLocked(gen int, at time.Time, fn func()) {
	wait := time.Until(at)
	if wait > maxChunk {
		wait = maxChunk
	}
	if wait < 0 {
		wait = 0
	}

	t.inner = time.AfterFunc(wait, func() {
		t.mu.Lock()
		if gen != t.gen {
			// Replaced or stopped while this chunk was waiting.
			t.mu.Unlock()
			return
		}
		if remaining := time.Until(at); remaining > 0 {
			t.armLocked(gen, at, fn)
			t.mu.Unlock()
			return
		}
		t.inner = nil
		t.mu.Unlock()
		fn()
	})
}
