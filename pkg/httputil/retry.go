package httputil

import (
	"context"
	"errors"
	"time"
)

// Backoff describes how often and how patiently a fetch is retried.
// The wait doubles after every failed attempt and never exceeds Max.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	Max      time.Duration // 0 = uncapped
}

// DefaultBackoff tries three times, waiting 1s and then 2s.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second, Max: 10 * time.Second}

// RetryableError marks a transient failure. After, when set, is the wait the
// server asked for (Retry-After) and replaces the computed delay.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Retry runs fn until it succeeds, fails with an error not marked by
// [Retryable], attempts run out, or ctx is done. The last error is returned.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) || attempt >= b.Attempts {
			return err
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if b.Max > 0 {
			wait = min(wait, b.Max)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}
