package service

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules callbacks on the runtime timer
var RealClock Clock = realClock{}

// Debouncer coalesces bursts of queries so that only the last query of a
// burst is evaluated, once the interval has passed without another trigger.
type Debouncer struct {
	mu       sync.Mutex
	fireMu   sync.Mutex
	interval time.Duration
	clock    Clock
	timer    Timer
	seq      uint64
	pending  string
	fire     func(query string)
	coalesce func()
}

// NewDebouncer calls fire with the surviving query of each burst. coalesce,
// when non-nil, is called for every query that was superseded.
func NewDebouncer(interval time.Duration, clock Clock, fire func(query string), coalesce func()) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer{
		interval: interval,
		clock:    clock,
		fire:     fire,
		coalesce: coalesce,
	}
}

// Trigger schedules query, replacing any query still waiting
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancelLocked() && d.coalesce != nil {
		d.coalesce()
	}
	d.seq++
	seq := d.seq
	d.pending = query
	d.timer = d.clock.AfterFunc(d.interval, func() { d.expire(seq) })
}

// Submit cancels any waiting query and evaluates query at once
func (d *Debouncer) Submit(query string) {
	d.mu.Lock()
	d.cancelLocked()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	d.run(seq, query)
}

// Cancel drops the waiting query, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.seq++
}

// Pending reports the query waiting to fire
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.timer != nil
}

func (d *Debouncer) expire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.timer == nil {
		// superseded after the timer had already started running
		d.mu.Unlock()
		return
	}
	query := d.pending
	d.timer = nil
	d.pending = ""
	d.mu.Unlock()

	d.run(seq, query)
}

// run evaluates one query at a time and skips a query that a later
// Trigger, Submit or Cancel has superseded while it waited.
func (d *Debouncer) run(seq uint64, query string) {
	d.fireMu.Lock()
	defer d.fireMu.Unlock()

	d.mu.Lock()
	current := seq == d.seq
	d.mu.Unlock()
	if !current {
		return
	}
	d.fire(query)
}

func (d *Debouncer) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.pending = ""
	return true
}
