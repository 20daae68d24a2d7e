package storage

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of persistence triggers into a single flush.
// In-memory state stays authoritative between flushes; the flush itself is
// background, best-effort work.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	flush  func()
	timer  *time.Timer
}

// NewDebouncer returns a debouncer invoking flush at most once per window of
// consecutive triggers.
func NewDebouncer(window time.Duration, flush func()) *Debouncer {
	return &Debouncer{window: window, flush: flush}
}

// Trigger schedules a flush after the debounce window, restarting the window
// if one is already pending.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		d.flush()
	})
}

// Flush cancels any pending timer and runs the flush synchronously. Callers
// use it on shutdown so coalesced writes are not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.flush()
}
