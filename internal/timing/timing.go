// Package timing coalesces bursts of UI events.
package timing

import (
	"sync"
	"time"
)

// Debouncer runs only the last function triggered within a quiet window.
type Debouncer struct {
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger schedules fn, replacing anything still pending.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Stop drops the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = nil
}

// fire ignores timers superseded by a later Trigger.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Throttler runs at most one function per interval. The first call in a
// window runs at once; later calls in the same window collapse into one
// trailing run of the most recent function when the window closes.
type Throttler struct {
	interval time.Duration

	mu      sync.Mutex
	open    bool
	pending func()
}

// NewThrottler creates a throttler with the given interval.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

// Do runs or defers fn.
func (t *Throttler) Do(fn func()) {
	t.mu.Lock()
	if t.open {
		t.pending = fn
		t.mu.Unlock()
		return
	}
	t.open = true
	t.mu.Unlock()

	fn()
	time.AfterFunc(t.interval, t.closeWindow)
}

func (t *Throttler) closeWindow() {
	t.mu.Lock()
	fn := t.pending
	t.pending = nil
	if fn == nil {
		t.open = false
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	fn()
	time.AfterFunc(t.interval, t.closeWindow)
}
