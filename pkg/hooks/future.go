package hooks

import (
	"context"
	"sync"
)

// Future is a single-assignment result for handlers that complete
// asynchronously. A handler returns a pending future and resolves it from
// another goroutine; Trigger waits for it, TriggerSync does not.
type Future struct {
	once sync.Once
	done chan struct{}
	val  any
	err  error
}

// NewFuture returns an unresolved future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve completes the future with a value. Subsequent calls to Resolve or
// Reject are no-ops.
func (f *Future) Resolve(val any) {
	f.once.Do(func() {
		f.val = val
		close(f.done)
	})
}

// Reject completes the future with an error.
func (f *Future) Reject(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed once the future has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Pending reports whether the future has not settled yet.
func (f *Future) Pending() bool {
	select {
	case <-f.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the future settles or the context is cancelled.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
