package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patternkit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, PolicyExponential, cfg.Retry.Policy)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.BaseDelay.Std())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"

[history]
max_entries = 25

[retry]
policy = "fixed"
max_attempts = 4
base_delay = "PT0.5S"
`)

	cfg := Default()
	require.NoError(t, LoadFile(path, cfg))

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 25, cfg.History.MaxEntries)
	assert.Equal(t, PolicyFixed, cfg.Retry.Policy)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay.Std())
	// Not in file: keeps default.
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxDelay.Std())
}

func TestLoadFileNotFound(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"), Default())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestLoadFileSyntaxError(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = = 3\n")

	err := LoadFile(path, Default())
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
	assert.Equal(t, 2, perr.Line)
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entrys = 3\n")

	err := LoadFile(path, Default())
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Message, "history.max_entrys")
}

func TestLoadReader(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadReader(strings.NewReader(`retry = { policy = "never" }`), cfg))
	assert.Equal(t, PolicyNever, cfg.Retry.Policy)
}

func TestEncodeRoundTrip(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Encode(&sb, Default()))
	assert.Contains(t, sb.String(), "base_delay")
	assert.Contains(t, sb.String(), "100ms")

	cfg := &Config{}
	require.NoError(t, LoadReader(strings.NewReader(sb.String()), cfg))
	assert.Equal(t, Default(), cfg)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"250ms", 250 * time.Millisecond, false},
		{"1m30s", 90 * time.Second, false},
		{"PT2S", 2 * time.Second, false},
		{"PT1M", time.Minute, false},
		{"PT0.25S", 250 * time.Millisecond, false},
		{"", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDuration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		path   string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"zero entries", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
		{"unknown policy", func(c *Config) { c.Retry.Policy = "sometimes" }, "retry.policy"},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, "retry.max_attempts"},
		{"negative base", func(c *Config) { c.Retry.BaseDelay = Duration(-time.Second) }, "retry.base_delay"},
		{"cap below base", func(c *Config) { c.Retry.MaxDelay = Duration(time.Millisecond) }, "retry.max_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
			assert.True(t, errors.Is(err, ErrValidationFailed))
		})
	}
}

func TestValidateNeverIgnoresAttempts(t *testing.T) {
	cfg := Default()
	cfg.Retry.Policy = PolicyNever
	cfg.Retry.MaxAttempts = 0
	assert.NoError(t, cfg.Validate())
}

func TestEnvLoaderApply(t *testing.T) {
	env := map[string]string{
		"PATTERNKIT_LOG_LEVEL":           "warn",
		"PATTERNKIT_NO_COLOR":            "yes",
		"PATTERNKIT_HISTORY_MAX_ENTRIES": "7",
		"PATTERNKIT_RETRY_POLICY":        "FIXED",
		"PATTERNKIT_RETRY_MAX_ATTEMPTS":  "9",
		"PATTERNKIT_RETRY_BASE_DELAY":    "PT1S",
		"PATTERNKIT_RETRY_MAX_DELAY":     "10s",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, NewEnvLoaderWithLookup(DefaultEnvPrefix, lookup).Apply(cfg))

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.NoColor)
	assert.Equal(t, 7, cfg.History.MaxEntries)
	assert.Equal(t, PolicyFixed, cfg.Retry.Policy)
	assert.Equal(t, 9, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay.Std())
	assert.Equal(t, 10*time.Second, cfg.Retry.MaxDelay.Std())
}

func TestEnvLoaderInvalidValue(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "PATTERNKIT_RETRY_MAX_ATTEMPTS" {
			return "many", true
		}
		return "", false
	}

	err := NewEnvLoaderWithLookup(DefaultEnvPrefix, lookup).Apply(Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PATTERNKIT_RETRY_MAX_ATTEMPTS")
}

func TestEnvLoaderReportsFirstInvalidByName(t *testing.T) {
	env := map[string]string{
		"PATTERNKIT_RETRY_MAX_ATTEMPTS":  "many",
		"PATTERNKIT_HISTORY_MAX_ENTRIES": "lots",
		"PATTERNKIT_RETRY_MAX_DELAY":     "soon",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	for i := 0; i < 20; i++ {
		err := NewEnvLoaderWithLookup(DefaultEnvPrefix, lookup).Apply(Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PATTERNKIT_HISTORY_MAX_ENTRIES")
	}
}

func TestEnvLoaderNoColor(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    bool
		wantErr bool
	}{
		{"empty", "", true, false},
		{"one", "1", true, false},
		{"false", "false", false, false},
		{"off", "OFF", false, false},
		{"garbage", "maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == "PATTERNKIT_NO_COLOR" {
					return tt.value, true
				}
				return "", false
			}

			cfg := Default()
			err := NewEnvLoaderWithLookup(DefaultEnvPrefix, lookup).Apply(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Logging.NoColor)
		})
	}
}

func TestEnvLoaderVariables(t *testing.T) {
	vars := NewEnvLoader("PK_").Variables()
	assert.Contains(t, vars, "PK_RETRY_POLICY")
	assert.IsIncreasing(t, vars)
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, "[history]\nmax_entries = 10\n[retry]\npolicy = \"fixed\"\n")
	t.Setenv("PATTERNKIT_HISTORY_MAX_ENTRIES", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.History.MaxEntries)
	assert.Equal(t, PolicyFixed, cfg.Retry.Policy)
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "[retry]\nmax_attempts = -1\n")

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrValidationFailed))
}
