package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Default retry parameters.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Retrier runs an operation up to a fixed number of attempts, waiting
// baseDelay*2^(attempt-1) between attempts. There is no jitter.
// A Retrier holds only configuration and may be shared; the attempt log of
// each execution belongs to that execution.
type Retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	sleep       SleepFunc
	logger      *slog.Logger
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

// WithSleeper overrides how backoff waits are performed (useful for tests).
func WithSleeper(sleep SleepFunc) RetrierOption {
	return func(r *Retrier) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRetrier creates a Retrier. Non-positive values fall back to the defaults.
func NewRetrier(maxAttempts int, baseDelay time.Duration, logger *slog.Logger, opts ...RetrierOption) *Retrier {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAttempts <= 0 {
		logger.Warn("invalid max attempts value, using default",
			"max_attempts", maxAttempts,
			"default", DefaultMaxAttempts)
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay < 0 {
		baseDelay = DefaultBaseDelay
	}
	r := &Retrier{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		sleep:       contextSleep,
		logger:      logger.With("component", "retry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxAttempts returns the configured attempt budget.
func (r *Retrier) MaxAttempts() int { return r.maxAttempts }

// BaseDelay returns the configured base delay.
func (r *Retrier) BaseDelay() time.Duration { return r.baseDelay }

// Backoff returns the wait after the given failed attempt (1-based).
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<uint(attempt-1))
}

// RetryReport describes a finished execution.
type RetryReport struct {
	Attempts int
	Errors   []AttemptError
}

// ExecuteWithRetry runs op until it succeeds or the attempt budget is spent.
// On success it returns the value and the log of the attempts that failed
// before it. When every attempt fails it returns an *ExhaustedRetriesError;
// an ErrProviderNotConfigured failure ends the loop after that attempt.
// Context cancellation stops the loop and returns the context error.
func ExecuteWithRetry[T any](
	ctx context.Context,
	r *Retrier,
	operation string,
	op func(ctx context.Context) (T, error),
) (T, RetryReport, error) {
	var zero T
	report := RetryReport{}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, report, fmt.Errorf("%s: %w", operation, err)
		}

		report.Attempts = attempt
		value, err := op(ctx)
		if err == nil {
			r.logger.InfoContext(ctx, "attempt succeeded",
				"operation", operation,
				"attempt", attempt,
				"max_attempts", r.maxAttempts)
			return value, report, nil
		}

		lastErr = err
		report.Errors = append(report.Errors, AttemptError{Attempt: attempt, Message: err.Error()})
		r.logger.ErrorContext(ctx, "attempt failed",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"error", err)

		// A missing credential will not appear between attempts.
		if errors.Is(err, ErrProviderNotConfigured) {
			break
		}

		if attempt < r.maxAttempts {
			delay := Backoff(r.baseDelay, attempt)
			r.logger.DebugContext(ctx, "waiting before next attempt",
				"operation", operation,
				"delay", delay)
			if err := r.sleep(ctx, delay); err != nil {
				return zero, report, fmt.Errorf("%s: %w", operation, err)
			}
		}
	}

	return zero, report, &ExhaustedRetriesError{
		Operation: operation,
		Attempts:  report.Attempts,
		Log:       report.Errors,
		Last:      lastErr,
	}
}

func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
