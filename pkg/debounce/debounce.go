// Package debounce coalesces bursts of events into one delayed call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the settle time used for resize events.
const DefaultDelay = 180 * time.Millisecond

// Timer is the subset of *time.Timer a Debouncer needs.
type Timer interface {
	Stop() bool
}

// Debouncer runs fn once the events passed to Trigger have been quiet for
// the configured delay. It holds a single pending slot: every Trigger cancels
// the pending run and re-arms it. A Debouncer is safe for concurrent use.
type Debouncer struct {
	delay     time.Duration
	fn        func()
	afterFunc func(time.Duration, func()) Timer

	mu      sync.Mutex
	pending Timer
	gen     uint64
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(f func(time.Duration, func()) Timer) Option {
	return func(d *Debouncer) { d.afterFunc = f }
}

// New returns a Debouncer that calls fn after delay of quiet.
func New(delay time.Duration, fn func(), opts ...Option) *Debouncer {
	d := &Debouncer{
		delay: delay,
		fn:    fn,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger records an event and (re)starts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.afterFunc(d.delay, func() { d.fire(gen) })
}

// fire runs fn unless a later Trigger or Stop superseded this timer. The
// generation check covers timers whose Stop lost the race with expiry.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()
	d.fn()
}

// Stop cancels a pending run. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.pending == nil {
		return false
	}
	d.pending.Stop()
	d.pending = nil
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
