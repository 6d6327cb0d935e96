package async

import (
	"context"
	"time"
)

// Future represents the result of a computation running on another
// goroutine.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout is Await with an upper bound; ErrTimeout is returned
// if the deadline passes first. The computation itself keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports completion without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) on a new goroutine and returns a Future for
// its result. A context canceled before the goroutine starts resolves
// the future with ctx.Err() without invoking fn.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll awaits every future in order and returns all results plus the
// first error encountered.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}
