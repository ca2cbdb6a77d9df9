// Package retry applies a bounded exponential-backoff policy around fallible
// operations. Browser interactions fail for timing reasons more often than
// structural ones, so every interaction in the scraper runs under a policy
// that re-attempts only errors classified as retryable.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default policy values.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
)

// Policy describes how an operation is retried. The zero value retries
// nothing; use Default for the standard scraping policy.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the delay before the first retry; subsequent delays
	// double up to MaxDelay. No delay follows the final attempt.
	BaseDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
	// RetryIf classifies errors as retryable. A nil predicate retries
	// every error.
	RetryIf func(error) bool
}

// Default returns the standard scraping retry policy: three attempts with
// exponential backoff from one second, capped at ten.
func Default(retryIf func(error) bool) Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		RetryIf:     retryIf,
	}
}

// Do runs op under the policy. A non-retryable error propagates immediately;
// a retryable error is re-attempted up to MaxAttempts times, and the final
// error is returned unchanged on exhaustion.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	var result T

	attempt := func() error {
		value, err := op()
		if err != nil {
			if p.RetryIf != nil && !p.RetryIf(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = value
		return nil
	}

	if err := backoff.Retry(attempt, p.backOff(ctx)); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// backOff builds the backoff schedule for one Do call. Schedules are
// stateful, so a fresh one is created per call.
func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.BaseDelay
	expo.MaxInterval = p.MaxDelay
	expo.Multiplier = 2
	expo.RandomizationFactor = 0
	expo.MaxElapsedTime = 0

	retries := uint64(0)
	if p.MaxAttempts > 1 {
		retries = uint64(p.MaxAttempts - 1)
	}
	return backoff.WithContext(backoff.WithMaxRetries(expo, retries), ctx)
}
