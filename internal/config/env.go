package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix for environment overrides.
const DefaultEnvPrefix = "PATTERNKIT_"

// EnvLoader applies environment variable overrides to a Config.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader reading the process environment.
// The prefix should include the trailing underscore (e.g., "PATTERNKIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		lookup: os.LookupEnv,
	}
}

// NewEnvLoaderWithLookup creates a loader with a custom lookup function.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{
		prefix: prefix,
		lookup: lookup,
	}
}

// envSetter applies one variable's value.
type envSetter func(cfg *Config, value string) error

// envMapping maps variable names (without prefix) to setters.
var envMapping = map[string]envSetter{
	"LOG_LEVEL": func(cfg *Config, v string) error {
		cfg.Logging.Level = v
		return nil
	},
	// Set but empty means true, following the NO_COLOR convention.
	"NO_COLOR": func(cfg *Config, v string) error {
		if v == "" {
			cfg.Logging.NoColor = true
			return nil
		}
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		cfg.Logging.NoColor = b
		return nil
	},
	"HISTORY_MAX_ENTRIES": func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.History.MaxEntries = n
		return nil
	},
	"RETRY_POLICY": func(cfg *Config, v string) error {
		cfg.Retry.Policy = strings.ToLower(v)
		return nil
	},
	"RETRY_MAX_ATTEMPTS": func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.Retry.MaxAttempts = n
		return nil
	},
	"RETRY_BASE_DELAY": func(cfg *Config, v string) error {
		d, err := ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.Retry.BaseDelay = Duration(d)
		return nil
	},
	"RETRY_MAX_DELAY": func(cfg *Config, v string) error {
		d, err := ParseDuration(v)
		if err != nil {
			return err
		}
		cfg.Retry.MaxDelay = Duration(d)
		return nil
	},
}

// Apply overrides cfg fields from the environment.
// Variables are applied in name order, so the first invalid one reported is
// always the same.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Apply(cfg *Config) error {
	for _, name := range envNames() {
		env := l.prefix + name
		val, ok := l.lookup(env)
		if !ok {
			continue
		}
		if err := envMapping[name](cfg, val); err != nil {
			return fmt.Errorf("environment variable %s: %w", env, err)
		}
	}
	return nil
}

// Variables returns the recognized variable names with prefix applied, sorted.
func (l *EnvLoader) Variables() []string {
	names := envNames()
	for i, name := range names {
		names[i] = l.prefix + name
	}
	return names
}

func envNames() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseBool accepts the common yes/no spellings.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
