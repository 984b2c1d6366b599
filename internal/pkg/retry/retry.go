// Package retry is a bounded-retry helper for calls against slow upstreams.
// It replaces ad hoc retry-via-recursion in sign-in style flows with an
// explicit attempt budget, per-attempt timeout and fixed backoff.
package retry

import (
	"context"
	"errors"
	"time"
)

var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

type Policy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	Backoff        time.Duration
}

// Do runs fn until it succeeds, the attempt budget runs out, or ctx is
// cancelled. Each attempt gets its own timeout-bounded context. The last
// attempt error is joined with ErrAttemptsExhausted on failure.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if p.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
		}
		err := fn(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < p.MaxAttempts && p.Backoff > 0 {
			select {
			case <-time.After(p.Backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return errors.Join(ErrAttemptsExhausted, lastErr)
}
