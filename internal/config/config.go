// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string `env:"SHOPLITE_DB_PATH" envDefault:"./data/shoplite.db"`
	SessionPath string `env:"SHOPLITE_SESSION_PATH" envDefault:"./data/session.json"`
	Env         string `env:"SHOPLITE_ENV" envDefault:"development"`
	LogLevel    string `env:"SHOPLITE_LOG_LEVEL" envDefault:"info"`

	// EventLog controls whether WARN and ERROR logs are also written to the
	// events table.
	EventLog bool `env:"SHOPLITE_EVENT_LOG" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DataDir returns the directory holding the database file.
func (c Config) DataDir() string {
	return filepath.Dir(c.DBPath)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("SHOPLITE_DB_PATH must not be empty")
	}
	if cfg.SessionPath == "" {
		return nil, fmt.Errorf("SHOPLITE_SESSION_PATH must not be empty")
	}

	return cfg, nil
}
