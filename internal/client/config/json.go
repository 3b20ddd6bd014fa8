package config

import (
	"encoding/json"
	"os"
	"time"

	"paprikasync/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Every field
// is optional; only fields present in the file overlay the Config.
type jsonConfig struct {
	ServerBaseURL         *string `json:"server_base_url"`
	DatabasePath          *string `json:"database_path"`
	RequestTimeoutSeconds *int    `json:"request_timeout_seconds"`
	Verbose               *bool   `json:"verbose"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. No flag means no file and no overlay. Read and parse
// errors panic; a config file that exists but cannot be used is a setup
// problem, not a runtime condition.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeoutSeconds) * time.Second
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
