// Package settings reads process settings from the environment.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Settings holds the environment driven configuration of the game binary.
type Settings struct {
	ConfigDir     string        `env:"CONFIG_DIR" envDefault:"configs"`
	SessionsDir   string        `env:"SESSIONS_DIR" envDefault:"sessions"`
	SessionStore  string        `env:"SESSION_STORE" envDefault:"file"`
	SessionsDB    string        `env:"SESSIONS_DB" envDefault:"sessions.db"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into Settings and validates the result.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	s.SessionStore = strings.ToLower(strings.TrimSpace(s.SessionStore))
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks values env.Parse cannot.
func (s Settings) Validate() error {
	switch s.SessionStore {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown session store %q (want file, sqlite or memory)", s.SessionStore)
	}
	if s.SessionMaxAge < 0 {
		return fmt.Errorf("session max age must not be negative: %s", s.SessionMaxAge)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", s.LogFormat)
	}
	return nil
}
