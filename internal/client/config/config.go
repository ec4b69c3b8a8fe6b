package config

import "time"

// Config holds runtime settings for the GlucoTrack CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - RequestTimeout: fixed per-request ceiling applied by the HTTP pipeline.
//   - ErrorClearDelay: how long session status messages stay visible before
//     clearing automatically.
//   - DatabasePath: path of the local SQLite file holding session data.
//
// Units: RequestTimeout and ErrorClearDelay are time.Durations
// (e.g., 10*time.Second).
type Config struct {
	BaseURL         string
	DatabasePath    string
	RequestTimeout  time.Duration
	ErrorClearDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.DatabasePath = "glucotrack.db"
	c.RequestTimeout = 10 * time.Second
	c.ErrorClearDelay = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
