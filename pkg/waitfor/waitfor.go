// Package waitfor polls a fallible check until it succeeds.
//
// It is the engine behind `wait_for_db`, but knows nothing about
// databases: callers bring a Check probing whatever they wait for and a
// predicate deciding which failures are worth another try.
package waitfor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pantrylab/cookbookd/pkg/utils/retry"
)

// DefaultInterval is the delay between attempts unless overridden.
const DefaultInterval = 1 * time.Second

// ErrNotReady is returned (wrapped) when attempts are exhausted
// before the check succeeds.
var ErrNotReady = errors.New("not ready")

// Check probes the readiness of something.
//
// # Returns
//
// - error: nil when ready. Otherwise, the cause of unreadiness.
type Check func(context.Context) error

type config struct {
	backoff     retry.Backoff
	maxAttempts uint
	notify      func(attempts int, cause error)
}

type Option func(*config) *config

// WithBackoff sets the delay taken between attempts.
//
// Default is retry.StaticBackoff(DefaultInterval).
func WithBackoff(b retry.Backoff) Option {
	return func(c *config) *config {
		c.backoff = b
		return c
	}
}

// WithInterval is shorthand for WithBackoff(retry.StaticBackoff(interval)).
func WithInterval(interval time.Duration) Option {
	return WithBackoff(retry.StaticBackoff(interval))
}

// WithMaxAttempts bounds the number of attempts.
//
// n = 0 means unbounded, which is the default:
// Ready keeps trying until the check succeeds, a failure is not
// retryable, or the context is done.
func WithMaxAttempts(n uint) Option {
	return func(c *config) *config {
		c.maxAttempts = n
		return c
	}
}

// WithNotify sets a callback invoked after each failed attempt
// which will be retried.
//
// It is NOT invoked for the final attempt, whether that attempt
// succeeds, fails non-retryably, or exhausts WithMaxAttempts.
//
// # Args of the callback
//
// - attempts: count of attempts made so far (1 for the first).
//
// - cause: what the check returned.
func WithNotify(f func(attempts int, cause error)) Option {
	return func(c *config) *config {
		c.notify = f
		return c
	}
}

// Ready calls check repeatedly until it succeeds.
//
// After each failure which `retryable` answers true for, it waits one
// backoff step and tries again. A failure answered false propagates
// at once, without another attempt or delay.
//
// Each call starts from a fresh state. Calling Ready again after it
// returned behaves as if it were the first call.
//
// # Args
//
// - ctx: when done, Ready stops and returns ctx.Err().
// If ctx is already done, it returns before the first attempt.
//
// - check: the probe.
//
// - retryable: decides whether a failure of check is transient.
//
// - options: WithInterval, WithBackoff, WithMaxAttempts, WithNotify.
//
// # Returns
//
// - int: number of attempts made.
//
// - error: nil when the check succeeded. A non-retryable failure is
// returned as is. When WithMaxAttempts is exhausted, the error matches
// both ErrNotReady and the last failure in errors.Is.
func Ready(ctx context.Context, check Check, retryable func(error) bool, options ...Option) (int, error) {
	conf := &config{
		backoff: retry.StaticBackoff(DefaultInterval),
	}
	for _, opt := range options {
		conf = opt(conf)
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	attempts := 0
	for {
		attempts += 1

		err := check(ctx)
		if err == nil {
			return attempts, nil
		}
		if !retryable(err) {
			return attempts, err
		}
		if conf.maxAttempts != 0 && uint(attempts) >= conf.maxAttempts {
			return attempts, fmt.Errorf("%w after %d attempts: %w", ErrNotReady, attempts, err)
		}

		if conf.notify != nil {
			conf.notify(attempts, err)
		}
		if err := conf.backoff(ctx); err != nil {
			return attempts, err
		}
	}
}
