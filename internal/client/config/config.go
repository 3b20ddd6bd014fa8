// Package config assembles the runtime settings of the paprikasync CLI from
// defaults, environment variables, an optional JSON file, and command-line
// flags, in that order. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the paprikasync CLI.
type Config struct {
	// ServerBaseURL is the service root, without a trailing slash.
	ServerBaseURL string `env:"PAPRIKASYNC_SERVER_URL"`

	// DatabasePath is the local sqlite file holding persisted client state.
	DatabasePath string `env:"PAPRIKASYNC_DB_PATH"`

	// RequestTimeout bounds every remote call.
	RequestTimeout time.Duration `env:"PAPRIKASYNC_REQUEST_TIMEOUT"`

	// Verbose enables debug logging.
	Verbose bool `env:"PAPRIKASYNC_VERBOSE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.DatabasePath = "paprikasync.db"
	c.RequestTimeout = 15 * time.Second
}

// Load constructs a Config: defaults, then environment, then an optional
// JSON file (path from -c/-config), then flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
