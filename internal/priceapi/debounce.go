package priceapi

import (
	"context"
	"sync"
	"time"
)

// DefaultQuiet is the minimum quiet period before a burst of selection
// changes turns into one request.
const DefaultQuiet = 500 * time.Millisecond

// ApplyFunc receives the result of a dispatched quote. It is called
// outside the debouncer's lock and must not call back into the
// Debouncer; the receiver re-checks the fingerprint against its own
// current state before applying.
type ApplyFunc func(fingerprint string, quote *Quote, err error)

// Debouncer collapses bursts of quote requests into one call per quiet
// period, skips requests whose fingerprint already completed, and drops
// responses whose fingerprint has been superseded. Close abandons any
// in-flight effect.
type Debouncer struct {
	mu      sync.Mutex
	calc    Calculator
	quiet   time.Duration
	apply   ApplyFunc
	timer   *time.Timer
	pending QuoteRequest
	current string // fingerprint the caller wants right now
	done    string // fingerprint of the last delivered result
	closed  bool
	cancel  context.CancelFunc
}

func NewDebouncer(calc Calculator, quiet time.Duration, apply ApplyFunc) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{calc: calc, quiet: quiet, apply: apply}
}

// Request schedules a quote after the quiet period, replacing any
// not-yet-dispatched request from the same burst.
func (d *Debouncer) Request(req QuoteRequest) {
	fp := req.Fingerprint()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.current = fp

	// Identical to what we already delivered: nothing to do.
	if fp == d.done {
		if d.timer != nil {
			d.timer.Stop()
			d.timer = nil
		}
		return
	}

	d.pending = req

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	req := d.pending
	fp := req.Fingerprint()
	if fp != d.current {
		// Superseded while waiting for the timer goroutine.
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	quote, err := d.calc.Quote(ctx, req)

	d.mu.Lock()
	if d.closed || fp != d.current {
		d.mu.Unlock()
		return // stale response, discard
	}
	if err == nil {
		d.done = fp
	}
	apply := d.apply
	d.mu.Unlock()

	apply(fp, quote, err)
}

// Close abandons any scheduled or in-flight request. A dispatch that
// already passed its staleness check may still invoke apply; receivers
// guard by re-checking their own open state and fingerprint.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
	}
}
