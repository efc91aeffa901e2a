package debounce

import (
	"sync"
	"time"
)

const DefaultInterval = 300 * time.Millisecond

// Debouncer collapses a rapid sequence of inputs into one callback
// invocation per quiescence window. At most one timer is pending at a time;
// scheduling a newer input cancels the older one.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	fn       func(string)
	timer    *time.Timer
	stopped  bool
}

// New returns a Debouncer firing fn after interval of quiescence. A
// non-positive interval falls back to DefaultInterval.
func New(interval time.Duration, fn func(string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Schedule arms the timer for input, superseding any pending input.
func (d *Debouncer) Schedule(input string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		d.fn(input)
	})
}

// Stop cancels any pending invocation. No callback fires after Stop
// returns. Stop is idempotent.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
