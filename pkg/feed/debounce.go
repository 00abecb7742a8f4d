package feed

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the settle window used by NewDebouncer for wait <= 0.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs only the last of a burst of actions. Scheduling a new
// action cancels the pending one, or the context of one already running.
type Debouncer struct {
	wait time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDebouncer returns a Debouncer with the given settle window.
func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait}
}

// Do schedules fn to run after the settle window unless another call
// arrives first or ctx is cancelled.
func (d *Debouncer) Do(ctx context.Context, fn func(context.Context)) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()

		t := time.NewTimer(d.wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	}()
}

// Stop cancels any pending action and waits for running ones to return.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}
