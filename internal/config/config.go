// Package config loads lifeos settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings.
type Config struct {
	Home           string `env:"LIFEOS_HOME"`
	Profile        string `env:"LIFEOS_PROFILE" envDefault:"default"`
	LogLevel       string `env:"LIFEOS_LOG_LEVEL" envDefault:"warn"`
	LogFormat      string `env:"LIFEOS_LOG_FORMAT" envDefault:"text"`
	Sound          bool   `env:"LIFEOS_SOUND" envDefault:"true"`
	DefaultMinutes int    `env:"LIFEOS_DEFAULT_MINUTES" envDefault:"25"`
}

// Load parses the environment and fills in derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.Home = filepath.Join(home, ".lifeos")
	}
	if cfg.DefaultMinutes <= 0 {
		cfg.DefaultMinutes = 25
	}
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	return cfg, nil
}

// DatabasePath is the sqlite file holding profiles, events, tasks and habits.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Home, "lifeos.db")
}

// TimerPath is the bbolt file holding device-local timer state.
func (c Config) TimerPath() string {
	return filepath.Join(c.Home, "timer.db")
}
