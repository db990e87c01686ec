package priceapi

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeCalc records every dispatched request. When gated, Quote blocks
// until release is signalled so tests can interleave a supersede.
type fakeCalc struct {
	mu      sync.Mutex
	calls   []QuoteRequest
	started chan string
	release chan struct{}
}

func (f *fakeCalc) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if f.started != nil {
		f.started <- req.Fingerprint()
		<-f.release
	}
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	return &Quote{BasePrice: 16.00, FinalPrice: 18.00}, nil
}

func (f *fakeCalc) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type applyRecorder struct {
	mu    sync.Mutex
	fps   []string
	calls chan string
}

func newApplyRecorder() *applyRecorder {
	return &applyRecorder{calls: make(chan string, 16)}
}

func (a *applyRecorder) apply(fp string, quote *Quote, err error) {
	a.mu.Lock()
	a.fps = append(a.fps, fp)
	a.mu.Unlock()
	a.calls <- fp
}

func (a *applyRecorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case fp := <-a.calls:
		return fp
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for apply")
		return ""
	}
}

func (a *applyRecorder) assertNoMore(t *testing.T, window time.Duration) {
	t.Helper()
	select {
	case fp := <-a.calls:
		t.Fatalf("unexpected apply for %q", fp)
	case <-time.After(window):
	}
}

func reqFor(sizeCode string) QuoteRequest {
	return QuoteRequest{MenuItemID: "item-works", SizeCode: sizeCode, CrustCode: "thin"}
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	calc := &fakeCalc{}
	rec := newApplyRecorder()
	d := NewDebouncer(calc, 20*time.Millisecond, rec.apply)
	defer d.Close()

	d.Request(reqFor("small"))
	d.Request(reqFor("medium"))
	d.Request(reqFor("large"))

	fp := rec.wait(t)
	if fp != reqFor("large").Fingerprint() {
		t.Fatalf("expected the last request of the burst, got %q", fp)
	}
	if calc.callCount() != 1 {
		t.Fatalf("burst must collapse to one dispatch, got %d", calc.callCount())
	}
}

func TestDebouncer_SkipsDeliveredFingerprint(t *testing.T) {
	calc := &fakeCalc{}
	rec := newApplyRecorder()
	d := NewDebouncer(calc, 20*time.Millisecond, rec.apply)
	defer d.Close()

	d.Request(reqFor("medium"))
	rec.wait(t)

	// The same fingerprint again: already delivered, no second dispatch.
	d.Request(reqFor("medium"))
	rec.assertNoMore(t, 100*time.Millisecond)
	if calc.callCount() != 1 {
		t.Fatalf("expected 1 dispatch, got %d", calc.callCount())
	}
}

func TestDebouncer_DropsStaleResponse(t *testing.T) {
	calc := &fakeCalc{
		started: make(chan string, 2),
		release: make(chan struct{}),
	}
	rec := newApplyRecorder()
	d := NewDebouncer(calc, 10*time.Millisecond, rec.apply)
	defer d.Close()

	d.Request(reqFor("medium"))
	<-calc.started // medium is in flight

	// Supersede while the first quote is still pending.
	d.Request(reqFor("large"))
	calc.release <- struct{}{} // medium returns, must be discarded

	<-calc.started // large dispatches after its own quiet period
	calc.release <- struct{}{}

	fp := rec.wait(t)
	if fp != reqFor("large").Fingerprint() {
		t.Fatalf("stale medium response leaked through: got %q", fp)
	}
	rec.assertNoMore(t, 100*time.Millisecond)
}

func TestDebouncer_CloseAbandonsScheduled(t *testing.T) {
	calc := &fakeCalc{}
	rec := newApplyRecorder()
	d := NewDebouncer(calc, 50*time.Millisecond, rec.apply)

	d.Request(reqFor("medium"))
	d.Close()

	rec.assertNoMore(t, 150*time.Millisecond)
	if calc.callCount() != 0 {
		t.Fatalf("closed debouncer must not dispatch, got %d calls", calc.callCount())
	}

	// Requests after Close are ignored.
	d.Request(reqFor("large"))
	rec.assertNoMore(t, 100*time.Millisecond)
}

func TestFingerprint_OrderInsensitive(t *testing.T) {
	a := QuoteRequest{
		MenuItemID: "item-works", SizeCode: "medium", CrustCode: "thin",
		Selections: []Selection{
			{CustomizationID: "top-sausage", Amount: "extra"},
			{CustomizationID: "top-onion", Amount: "normal"},
		},
	}
	b := QuoteRequest{
		MenuItemID: "item-works", SizeCode: "medium", CrustCode: "thin",
		Selections: []Selection{
			{CustomizationID: "top-onion", Amount: "normal"},
			{CustomizationID: "top-sausage", Amount: "extra"},
		},
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("selection order must not change the fingerprint")
	}

	c := a
	c.Selections = []Selection{{CustomizationID: "top-onion", Amount: "extra"}}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal("different selections must change the fingerprint")
	}
}
