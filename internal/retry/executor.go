package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/dshills/patternkit/internal/logging"
)

// Operation is a unit of work that may be retried.
type Operation func(ctx context.Context) error

// RetryHook is called after a failed attempt, before waiting delay.
type RetryHook func(attempt int, err error, delay time.Duration)

// Executor runs operations under a retry policy.
// An Executor holds no per-call state and may be shared.
type Executor struct {
	policy  Policy
	clock   Clock
	logger  *slog.Logger
	onRetry RetryHook
}

// Option configures an Executor.
type Option func(*Executor)

// WithClock sets the clock used for delays.
func WithClock(c Clock) Option {
	return func(e *Executor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithOnRetry sets a hook called before each retry wait.
func WithOnRetry(fn RetryHook) Option {
	return func(e *Executor) {
		e.onRetry = fn
	}
}

// New creates an executor for policy. A nil policy never retries.
func New(policy Policy, opts ...Option) *Executor {
	if policy == nil {
		policy = Never()
	}
	e := &Executor{
		policy: policy,
		clock:  SystemClock{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the executor's policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// Do runs op until it succeeds, the policy gives up, or ctx is done.
//
// When the policy gives up, the error from the last attempt is returned
// unchanged. When ctx is done, a *CancelledError is returned.
func (e *Executor) Do(ctx context.Context, op Operation) error {
	var lastErr error
	start := e.clock.Now()

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return e.cancelled(ctx, attempt, lastErr)
		}

		err := op(ctx)
		if err == nil {
			if attempt > 0 {
				e.logger.Debug("operation succeeded after retry", "attempts", attempt+1, "elapsed", e.clock.Now().Sub(start))
			}
			return nil
		}
		lastErr = err

		if !e.policy.ShouldRetry(attempt, err) {
			e.logger.Debug("giving up", "attempts", attempt+1, "elapsed", e.clock.Now().Sub(start), "error", err)
			return err
		}

		delay := e.policy.Delay(attempt)
		e.logger.Debug("attempt failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		if !e.wait(ctx, delay) {
			return e.cancelled(ctx, attempt+1, lastErr)
		}
	}
}

// wait blocks for d or until ctx is done. Returns false if ctx ended first.
func (e *Executor) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := e.clock.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return false
	case <-timer.C():
		return ctx.Err() == nil
	}
}

func (e *Executor) cancelled(ctx context.Context, attempts int, lastErr error) error {
	e.logger.Debug("retry cancelled", "attempts", attempts)
	return &CancelledError{
		Attempts: attempts,
		LastErr:  lastErr,
		Cause:    context.Cause(ctx),
	}
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := e.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Do runs op under policy with a default executor.
func Do(ctx context.Context, policy Policy, op Operation) error {
	return New(policy).Do(ctx, op)
}
