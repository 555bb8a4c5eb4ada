// Package retry runs a unit of work again when the store reports a transient
// condition such as lock-wait timeout.
package retry

import (
	"context"
	"time"
)

// Classifier reports whether err is worth another attempt.
type Classifier func(err error) bool

// Backoff returns how long to wait before the given retry (1 for the first retry).
type Backoff func(retry int) time.Duration

// Policy bounds how a unit of work is retried.
type Policy struct {
	MaxAttempts int
	Backoff     Backoff
	IsTransient Classifier
}

// Constant waits the same delay before every retry.
func Constant(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

// Once retries a transient failure exactly one time after delay.
func Once(delay time.Duration, isTransient Classifier) Policy {
	return Policy{MaxAttempts: 2, Backoff: Constant(delay), IsTransient: isTransient}
}

// Do runs fn until it succeeds, fails with a non-transient error, or the
// policy runs out of attempts. The last error is returned as is.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts || p.IsTransient == nil || !p.IsTransient(err) {
			return err
		}

		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		}
	}
	return err
}
