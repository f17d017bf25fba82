package watch

import (
	"slices"
	"sync"
	"time"
)

// Debouncer batches keys that arrive in quick succession and hands them to a
// callback once no new key has arrived for the interval.
type Debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	callback func([]string)
	stopped  bool
}

// NewDebouncer creates a debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]struct{}),
	}
}

// Add records key and restarts the quiet period. The most recent callback
// wins.
func (d *Debouncer) Add(key string, callback func([]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[key] = struct{}{}
	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}
	clear(d.pending)
	cb := d.callback
	d.mu.Unlock()

	slices.Sort(keys)
	if cb != nil {
		cb(keys)
	}
}

// Stop cancels any pending batch. Further keys are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
	d.callback = nil
}
