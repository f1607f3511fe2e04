// Package debounce delays a function call until a quiet period has
// elapsed, so bursts of calls collapse into the trailing one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules at most one pending invocation. Each Call
// cancels any previously scheduled function, so within a burst only
// the last call's function runs, once, after the delay.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer with the given delay.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the delay, replacing any pending
// invocation.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending invocation, if any. Safe to call multiple
// times; later Calls schedule normally again.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
