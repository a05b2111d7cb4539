// Package config handles the freightdesk configuration file plus
// environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the flat freightdesk configuration. File values come from
// ~/.freightdesk/config.json; FREIGHTDESK_* environment variables
// override them.
type Config struct {
	// Home is the freightdesk data directory.
	Home string `json:"home,omitempty" env:"FREIGHTDESK_HOME"`
	// DBPath overrides the database location.
	DBPath string `json:"db_path,omitempty" env:"FREIGHTDESK_DB_PATH"`
	// DefaultCommissionRate is the fallback flat percentage used when
	// a salesperson has no explicit commission rule. The settings
	// table value, when present, wins over this.
	DefaultCommissionRate string `json:"default_commission_rate,omitempty" env:"FREIGHTDESK_DEFAULT_COMMISSION_RATE"`
	// SessionTTLHours bounds login session lifetime. Zero means the
	// default of 72 hours.
	SessionTTLHours int `json:"session_ttl_hours,omitempty" env:"FREIGHTDESK_SESSION_TTL_HOURS"`
}

// DefaultHome returns ~/.freightdesk.
func DefaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".freightdesk"), nil
}

// Load reads config.json from the freightdesk home directory and
// applies environment overrides. A missing file is not an error; the
// zero config with env overrides is returned.
func Load() (*Config, error) {
	defaultHome, err := DefaultHome()
	if err != nil {
		return nil, err
	}

	// FREIGHTDESK_HOME relocates the config file itself, so it is
	// consulted before the file is read.
	dir := defaultHome
	if v := os.Getenv("FREIGHTDESK_HOME"); v != "" {
		dir = v
	}

	var cfg Config
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if cfg.Home == "" {
		cfg.Home = defaultHome
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.Home, "freightdesk.db")
	}
	if cfg.SessionTTLHours == 0 {
		cfg.SessionTTLHours = 72
	}
	return &cfg, nil
}

// Save writes config.json to the config's home directory.
func Save(cfg *Config) error {
	if cfg.Home == "" {
		return fmt.Errorf("config home must be set")
	}
	if err := os.MkdirAll(cfg.Home, 0755); err != nil {
		return fmt.Errorf("failed to create freightdesk dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfg.Home, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
