package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/patternkit/internal/logging"
)

// Retry policy kinds.
const (
	PolicyNever       = "never"
	PolicyFixed       = "fixed"
	PolicyExponential = "exponential"
)

// Config is the complete patternkit configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	History HistoryConfig `toml:"history"`
	Retry   RetryConfig   `toml:"retry"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level   string `toml:"level"`
	NoColor bool   `toml:"no_color"`
}

// HistoryConfig configures the history manager.
type HistoryConfig struct {
	// MaxEntries bounds the undo stack.
	MaxEntries int `toml:"max_entries"`
}

// RetryConfig selects and parameterizes a retry policy.
type RetryConfig struct {
	// Policy is one of "never", "fixed" or "exponential".
	Policy string `toml:"policy"`
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int `toml:"max_attempts"`
	// BaseDelay is the fixed delay, or the exponential base.
	BaseDelay Duration `toml:"base_delay"`
	// MaxDelay caps exponential delays. Zero means no cap.
	MaxDelay Duration `toml:"max_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Retry: RetryConfig{
			Policy:      PolicyExponential,
			MaxAttempts: 3,
			BaseDelay:   Duration(100 * time.Millisecond),
			MaxDelay:    Duration(5 * time.Second),
		},
	}
}

// Validate checks the configuration for invalid values.
// The first problem found is returned as a *ValidationError.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLogLevel(c.Logging.Level); !ok {
		return &ValidationError{Path: "logging.level", Message: "must be one of debug, info, warn, error", Value: c.Logging.Level}
	}

	if c.History.MaxEntries <= 0 {
		return &ValidationError{Path: "history.max_entries", Message: "must be positive", Value: c.History.MaxEntries}
	}

	return c.Retry.Validate()
}

// Validate checks the retry settings.
func (r RetryConfig) Validate() error {
	switch strings.ToLower(r.Policy) {
	case PolicyNever:
		return nil
	case PolicyFixed, PolicyExponential:
	default:
		return &ValidationError{
			Path:    "retry.policy",
			Message: fmt.Sprintf("must be one of %s, %s, %s", PolicyNever, PolicyFixed, PolicyExponential),
			Value:   r.Policy,
		}
	}

	if r.MaxAttempts <= 0 {
		return &ValidationError{Path: "retry.max_attempts", Message: "must be positive", Value: r.MaxAttempts}
	}
	if r.BaseDelay < 0 {
		return &ValidationError{Path: "retry.base_delay", Message: "must not be negative", Value: r.BaseDelay}
	}
	if r.MaxDelay < 0 {
		return &ValidationError{Path: "retry.max_delay", Message: "must not be negative", Value: r.MaxDelay}
	}
	if r.MaxDelay > 0 && r.MaxDelay < r.BaseDelay {
		return &ValidationError{Path: "retry.max_delay", Message: "must not be less than base_delay", Value: r.MaxDelay}
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLogLevel(c.Logging.Level)
	return level
}
