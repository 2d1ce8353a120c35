// Package latency wraps synchronous calculations in an artificial delay,
// standing in for the network round trip a demo front end pretends to make.
package latency

import (
	"context"
	"time"
)

// Outcome is what Go delivers on its channel.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Do waits d, then runs fn. It returns ctx.Err() without calling fn if ctx
// ends first. A non-positive d runs fn immediately.
func Do[T any](ctx context.Context, d time.Duration, fn func() (T, error)) (T, error) {
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return fn()
}

// Go runs Do in its own goroutine. The returned channel receives exactly one
// Outcome and is then closed.
func Go[T any](ctx context.Context, d time.Duration, fn func() (T, error)) <-chan Outcome[T] {
	ch := make(chan Outcome[T], 1)
	go func() {
		defer close(ch)
		v, err := Do(ctx, d, fn)
		ch <- Outcome[T]{Value: v, Err: err}
	}()
	return ch
}
