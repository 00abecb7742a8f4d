package feed

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsLast(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var last atomic.Int64
	var runs atomic.Int64
	done := make(chan struct{})
	for i := int64(1); i <= 5; i++ {
		d.Do(context.Background(), func(context.Context) {
			last.Store(i)
			if runs.Add(1) == 1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced action never ran")
	}
	d.Stop()

	if got := last.Load(); got != 5 {
		t.Errorf("last action = %d, want 5", got)
	}
	if got := runs.Load(); got != 1 {
		t.Errorf("actions run = %d, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(time.Hour)

	var ran atomic.Bool
	d.Do(context.Background(), func(context.Context) { ran.Store(true) })
	d.Stop()

	if ran.Load() {
		t.Error("action ran after Stop")
	}
}

func TestDebouncerParentContext(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Bool
	d.Do(ctx, func(context.Context) { ran.Store(true) })
	cancel()
	d.Stop()

	if ran.Load() {
		t.Error("action ran after parent cancel")
	}
}

func TestDebouncerCancelsRunning(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	d.Do(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})
	<-started

	d.Do(context.Background(), func(context.Context) {})

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("running action was not cancelled")
	}
}

func TestNewDebouncerDefault(t *testing.T) {
	if d := NewDebouncer(0); d.wait != DefaultDebounce {
		t.Errorf("wait = %v, want %v", d.wait, DefaultDebounce)
	}
}
