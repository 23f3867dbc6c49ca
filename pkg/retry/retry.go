// Package retry wraps remote table reads and writes with bounded retries
// and incremental backoff. The backing store is reached over a flaky
// network API; a transient failure only becomes terminal once the policy
// is exhausted.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 1 * time.Second
	DefaultMaxInterval     = 2 * time.Second
	DefaultMultiplier      = 1.5
)

// PermanentError marks failures that must not be retried. Errors that
// implement it with Permanent() == true abort the policy immediately.
type PermanentError interface {
	error
	Permanent() bool
}

// StoreUnavailableError is the terminal failure returned once every attempt
// at a remote operation has failed. Callers must treat the operation as
// not-applied.
type StoreUnavailableError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Policy runs an operation up to MaxAttempts times, sleeping an interval
// that grows by Multiplier between attempts and caps at MaxInterval.
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// NewPolicy returns a policy with the defaults: 3 attempts, backoff growing
// from 1s toward a 2s cap.
func NewPolicy() *Policy {
	return &Policy{
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
		Multiplier:      DefaultMultiplier,
	}
}

// Do executes fn until it succeeds, a permanent error surfaces, the context
// is done, or the attempts are exhausted. Exhaustion is reported as a
// *StoreUnavailableError wrapping the last failure.
func (p *Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		var perm PermanentError
		if errors.As(lastErr, &perm) && perm.Permanent() {
			return lastErr
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}

		if attempt < attempts {
			backoff := p.backoff(attempt)
			log.Printf("[store][retry] %s attempt %d/%d failed, retrying in %s err=%v", op, attempt, attempts, backoff, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return &StoreUnavailableError{Op: op, Attempts: attempts, Err: lastErr}
}

func (p *Policy) backoff(attempt int) time.Duration {
	interval := p.InitialInterval
	if interval <= 0 {
		interval = DefaultInitialInterval
	}
	multiplier := p.Multiplier
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	maxInterval := p.MaxInterval
	if maxInterval <= 0 {
		maxInterval = DefaultMaxInterval
	}

	for i := 1; i < attempt; i++ {
		interval = time.Duration(float64(interval) * multiplier)
		if interval > maxInterval {
			return maxInterval
		}
	}
	if interval > maxInterval {
		return maxInterval
	}
	return interval
}
