package vectorize

import (
	"context"
	"time"
)

// RetryPolicy configures exponential backoff retry behavior.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first
	BaseDelay   time.Duration // delay before the second attempt
	MaxDelay    time.Duration // backoff cap
	Multiplier  float64       // backoff growth factor
}

// DefaultRetryPolicy matches the store upload contract: three attempts with
// exponential backoff from 4s capped at 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   4 * time.Second,
		MaxDelay:    10 * time.Second,
		Multiplier:  2,
	}
}

// retryWithBackoff executes fn until it succeeds or the policy's attempts
// are exhausted, sleeping with exponential backoff between attempts. Retry
// is skipped on context cancellation.
func retryWithBackoff(ctx context.Context, policy RetryPolicy, sleep func(time.Duration), fn func() error) error {
	var lastErr error
	backoff := policy.BaseDelay

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt < policy.MaxAttempts-1 {
			sleep(backoff)
			backoff = time.Duration(float64(backoff) * policy.Multiplier)
			if backoff > policy.MaxDelay {
				backoff = policy.MaxDelay
			}
		}
	}

	return lastErr
}
