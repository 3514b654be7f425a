// Package asyncx holds the small set of generic concurrency helpers the
// service uses around slow external calls.
package asyncx

import (
	"context"
	"sync"
	"time"
)

// Result is the settled outcome of one call.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

// Future is a value computed in the background.
type Future[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Run starts fn immediately and returns its Future.
func Run[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.res.Value, f.res.Err = fn()
	}()
	return f
}

// Await blocks until the Future settles. It may be called more than once.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.res.Value, f.res.Err
}

// AllSettled runs every fn concurrently and returns one Result per fn, in order.
func AllSettled[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	out := make([]Result[T], len(fns))

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for i, fn := range fns {
		go func() {
			defer wg.Done()
			v, err := fn(ctx)
			out[i] = Result[T]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return out
}

// WithTimeout runs fn with a deadline of d. If fn ignores its context the
// call still returns ctx.Err() once the deadline passes.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	ch := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()

	select {
	case r := <-ch:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// RetryWithBackoff calls fn up to attempts times, doubling delay between tries.
func RetryWithBackoff[T any](ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		var v T
		if v, err = fn(ctx); err == nil {
			return v, nil
		}

		if i < attempts-1 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return zero, ctx.Err()
			case <-t.C:
			}
			delay *= 2
		}
	}
	return zero, err
}
