// Package config loads runtime configuration for the GlucoTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-d string   path to the local session database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "database_path": "glucotrack.db",
//	  "request_timeout": "10s",
//	  "error_clear_delay": "5s"
//	}
//
// Primary API
//
//   - type Config                     — holds BaseURL, DatabasePath and the timing knobs
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
