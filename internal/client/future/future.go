// Package future wraps a blocking call into a value with an attached deadline.
// The losing side of a race is cancelled explicitly and its result dropped.
package future

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDeadlineExceeded is returned by Await when the call did not finish in time.
var ErrDeadlineExceeded = errors.New("deadline exceeded")

type result[T any] struct {
	err   error
	value T
}

// Future is a call running in the background.
type Future[T any] struct {
	done   chan result[T]
	cancel context.CancelFunc
}

// Go starts fn in a goroutine with a cancellable child of ctx.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	callCtx, cancel := context.WithCancel(ctx)
	f := &Future[T]{
		// Буфер 1: поздний результат не блокирует горутину
		done:   make(chan result[T], 1),
		cancel: cancel,
	}

	go func() {
		defer cancel()

		var r result[T]
		defer func() {
			if p := recover(); p != nil {
				r = result[T]{err: fmt.Errorf("call panicked: %v", p)}
			}
			f.done <- r
		}()
		r.value, r.err = fn(callCtx)
	}()

	return f
}

// Await waits up to timeout for the result. On timeout the call is cancelled
// and ErrDeadlineExceeded is returned; whatever the call returns later is ignored.
func (f *Future[T]) Await(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-f.done:
		return r.value, r.err
	case <-timer.C:
		f.cancel()
		var zero T
		return zero, ErrDeadlineExceeded
	}
}

// Cancel aborts the underlying call.
func (f *Future[T]) Cancel() {
	f.cancel()
}
