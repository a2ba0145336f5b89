// Package config loads and saves the smarket app configuration. User
// preferences that drive the core (currency, heads-up days, budget) live
// in the database instead; this file only holds machine-level knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all smarket configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Daemon  DaemonConfig  `toml:"daemon"`
	Notify  NotifyConfig  `toml:"notify"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath      string `toml:"db_path,omitempty"`
	Timezone    string `toml:"timezone,omitempty"` // IANA name; empty means system local
	DueSoonDays int    `toml:"due_soon_days"`      // shopping list window
}

// DaemonConfig holds daemon runtime settings.
type DaemonConfig struct {
	Addr     string   `toml:"addr"`
	Interval Duration `toml:"interval"`
}

// NotifyConfig holds notification delivery settings.
type NotifyConfig struct {
	// Command argv for delivering a notification; {id}, {title} and
	// {body} are substituted. Empty means log-only delivery.
	Command []string `toml:"command,omitempty"`
}

// Duration wraps time.Duration for TOML round-tripping as a string.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// PollInterval returns the poll interval as a time.Duration.
func (c DaemonConfig) PollInterval() time.Duration {
	return time.Duration(c.Interval)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DueSoonDays: 2,
		},
		Daemon: DaemonConfig{
			Addr:     "127.0.0.1:8997",
			Interval: Duration(time.Hour),
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "smarket")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "smarket")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Location resolves the configured time zone, falling back to the system
// local zone on an empty or invalid name.
func (c Config) Location() *time.Location {
	if c.General.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.General.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
