package filter

import (
	"sync"
	"time"
)

// debouncer coalesces rapid triggers into one callback after a quiescence
// window. A new trigger inside the window cancels the pending callback and
// restarts the window.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	pending func()
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

// trigger schedules fn, replacing any pending callback.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		fn := d.pending
		d.pending = nil
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// flush runs the pending callback immediately, if any.
func (d *debouncer) flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// cancel drops the pending callback without running it.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
}
