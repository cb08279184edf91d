// Package config loads patternkit settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file (LoadFile)
//  3. PATTERNKIT_* environment variables (EnvLoader)
//
// Example file:
//
//	[logging]
//	level = "debug"
//
//	[history]
//	max_entries = 200
//
//	[retry]
//	policy = "exponential"
//	max_attempts = 5
//	base_delay = "100ms"   # or ISO-8601: "PT0.1S"
//	max_delay = "PT5S"
//
// Load runs all three layers and validates the result.
package config
