package retry

import (
	"fmt"
	"math"
	"time"
)

// Policy decides whether to retry a failed attempt and how long to wait.
//
// attempt is the zero-based index of the attempt that just failed.
// Implementations must be safe to share between executions; per-call state
// lives in the Executor.
type Policy interface {
	ShouldRetry(attempt int, err error) bool
	Delay(attempt int) time.Duration
}

// PolicyOption configures Fixed and Exponential policies.
type PolicyOption func(*policyOptions)

type policyOptions struct {
	retryIf  func(error) bool
	maxDelay time.Duration
}

// WithRetryIf restricts retries to errors for which fn returns true.
func WithRetryIf(fn func(error) bool) PolicyOption {
	return func(o *policyOptions) {
		o.retryIf = fn
	}
}

// WithMaxDelay caps the delay computed by Exponential. Ignored by Fixed.
func WithMaxDelay(d time.Duration) PolicyOption {
	return func(o *policyOptions) {
		o.maxDelay = d
	}
}

// limit is the attempt budget shared by Fixed and Exponential.
type limit struct {
	maxAttempts int
	retryIf     func(error) bool
}

func newLimit(maxAttempts int, o policyOptions) limit {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return limit{maxAttempts: maxAttempts, retryIf: o.retryIf}
}

// MaxAttempts returns the total attempt budget.
func (l limit) MaxAttempts() int {
	return l.maxAttempts
}

func (l limit) shouldRetry(attempt int, err error) bool {
	if attempt+1 >= l.maxAttempts {
		return false
	}
	if l.retryIf != nil && !l.retryIf(err) {
		return false
	}
	return true
}

func applyOptions(opts []PolicyOption) policyOptions {
	var o policyOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NeverPolicy never retries.
type NeverPolicy struct{}

// Never returns a policy that never retries.
func Never() NeverPolicy {
	return NeverPolicy{}
}

// ShouldRetry always returns false.
func (NeverPolicy) ShouldRetry(int, error) bool { return false }

// Delay always returns zero.
func (NeverPolicy) Delay(int) time.Duration { return 0 }

func (NeverPolicy) String() string { return "never" }

// FixedPolicy retries up to a fixed number of attempts with a constant delay.
type FixedPolicy struct {
	limit
	delay time.Duration
}

// Fixed returns a policy making at most maxAttempts attempts, waiting delay
// between them. maxAttempts <= 0 is treated as 1.
func Fixed(maxAttempts int, delay time.Duration, opts ...PolicyOption) *FixedPolicy {
	if delay < 0 {
		delay = 0
	}
	return &FixedPolicy{
		limit: newLimit(maxAttempts, applyOptions(opts)),
		delay: delay,
	}
}

// ShouldRetry reports whether another attempt is allowed.
func (p *FixedPolicy) ShouldRetry(attempt int, err error) bool {
	return p.shouldRetry(attempt, err)
}

// Delay returns the constant delay.
func (p *FixedPolicy) Delay(int) time.Duration {
	return p.delay
}

func (p *FixedPolicy) String() string {
	return fmt.Sprintf("fixed(attempts=%d, delay=%s)", p.maxAttempts, p.delay)
}

// ExponentialPolicy retries up to a fixed number of attempts with a delay of
// base * 2^attempt.
type ExponentialPolicy struct {
	limit
	base     time.Duration
	maxDelay time.Duration
}

// Exponential returns a policy making at most maxAttempts attempts, waiting
// base * 2^attempt after failed attempt number attempt (zero-based).
// maxAttempts <= 0 is treated as 1.
func Exponential(maxAttempts int, base time.Duration, opts ...PolicyOption) *ExponentialPolicy {
	o := applyOptions(opts)
	if base < 0 {
		base = 0
	}
	if o.maxDelay < 0 {
		o.maxDelay = 0
	}
	return &ExponentialPolicy{
		limit:    newLimit(maxAttempts, o),
		base:     base,
		maxDelay: o.maxDelay,
	}
}

// ShouldRetry reports whether another attempt is allowed.
func (p *ExponentialPolicy) ShouldRetry(attempt int, err error) bool {
	return p.shouldRetry(attempt, err)
}

// Delay returns base * 2^attempt, saturating at the configured cap (or
// the largest representable duration when uncapped).
func (p *ExponentialPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	ceiling := time.Duration(math.MaxInt64)
	if p.maxDelay > 0 {
		ceiling = p.maxDelay
	}

	if p.base == 0 {
		return 0
	}
	if attempt >= 63 || p.base > ceiling>>uint(attempt) {
		return ceiling
	}
	return p.base << uint(attempt)
}

func (p *ExponentialPolicy) String() string {
	if p.maxDelay > 0 {
		return fmt.Sprintf("exponential(attempts=%d, base=%s, max=%s)", p.maxAttempts, p.base, p.maxDelay)
	}
	return fmt.Sprintf("exponential(attempts=%d, base=%s)", p.maxAttempts, p.base)
}
