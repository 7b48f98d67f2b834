package catalog

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is how long search input must stay quiet before a
// query is dispatched.
const DefaultSearchDebounce = 500 * time.Millisecond

// Debouncer coalesces a burst of calls into one: each Do resets the timer,
// and only the function passed to the final call in a burst runs.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, cancelling any previously
// scheduled call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
