package provider

import (
	"time"

	apperrors "therm_hub/internal/errors"
)

// Default weather retry policy.
const (
	DefaultAttempts = 5
	DefaultDelay    = 2 * time.Second
)

// RetryPolicy runs an operation up to Attempts times, sleeping a fixed Delay between attempts.
// Only errors classified as retryable (transport, decode) trigger another attempt.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration

	sleep func(time.Duration)
}

// NewRetryPolicy returns a policy with the given bounds. Non-positive attempts fall back to one.
func NewRetryPolicy(attempts int, delay time.Duration) RetryPolicy {
	if attempts < 1 {
		attempts = 1
	}
	if delay < 0 {
		delay = 0
	}
	return RetryPolicy{Attempts: attempts, Delay: delay, sleep: time.Sleep}
}

// NoRetry runs the operation exactly once.
func NoRetry() RetryPolicy {
	return NewRetryPolicy(1, 0)
}

// Do calls op until it succeeds, returns a non-retryable error or the attempts run out.
// The attempt number passed to op starts at 1. The last error is returned.
func (p RetryPolicy) Do(op func(attempt int) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(attempt); err == nil {
			return nil
		}
		if !apperrors.Retryable(err) || attempt == attempts {
			break
		}
		if p.Delay > 0 {
			sleep(p.Delay)
		}
	}
	return err
}
