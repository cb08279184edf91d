package retry

import (
	"fmt"
	"strings"

	"github.com/dshills/patternkit/internal/config"
)

// FromConfig builds the policy described by cfg.
func FromConfig(cfg config.RetryConfig) (Policy, error) {
	switch strings.ToLower(cfg.Policy) {
	case config.PolicyNever:
		return Never(), nil
	case config.PolicyFixed:
		return Fixed(cfg.MaxAttempts, cfg.BaseDelay.Std()), nil
	case config.PolicyExponential:
		return Exponential(cfg.MaxAttempts, cfg.BaseDelay.Std(), WithMaxDelay(cfg.MaxDelay.Std())), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, cfg.Policy)
	}
}
