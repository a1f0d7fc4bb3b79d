// Package retry runs an operation with capped attempts and exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy configures Do. The wait before retry n (n starting at 0) is
// BaseDelay * 2^n, capped at MaxDelay when it is set.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable decides whether a failed attempt may be retried. Nil retries every error.
	Retryable func(error) bool
}

// Notify is called before each wait with the 1-based number of the failed attempt.
type Notify func(attempt int, err error, wait time.Duration)

// Do calls op until it succeeds, returns a non-retryable error, the attempts
// are exhausted, or ctx is done. It returns the last error of op or ctx.Err().
func Do(ctx context.Context, policy Policy, op func(context.Context) error, notify Notify) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = policy.BaseDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	if policy.MaxDelay > 0 {
		exp.MaxInterval = policy.MaxDelay
	} else {
		exp.MaxInterval = time.Duration(1<<62 - 1)
	}

	attempt := 0
	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if policy.Retryable != nil && !policy.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
	return backoff.RetryNotify(operation, b, onRetry)
}
