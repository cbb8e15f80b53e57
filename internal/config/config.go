// Package config loads client settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the client configuration.
// Environment variables are parsed from the ASSISTANT_ prefix.
type Config struct {
	// ServiceURL is the backend base URL.
	ServiceURL string `envconfig:"SERVICE_URL" default:"http://localhost:8000"`

	// HTTPTimeout bounds every request at the gateway so a stalled
	// backend cannot leave a controller pending forever.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// SessionFile is where the credential and identity persist across
	// restarts. Empty resolves to ~/.knowledge-assistant/session.json.
	SessionFile string `envconfig:"SESSION_FILE" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load parses the environment and resolves derived defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("assistant", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".knowledge-assistant", "session.json")
	}
	return &cfg, nil
}
