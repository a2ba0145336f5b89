package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.DueSoonDays != 2 {
		t.Fatalf("DueSoonDays = %d, want 2", cfg.General.DueSoonDays)
	}
	if cfg.Daemon.PollInterval() != time.Hour {
		t.Fatalf("PollInterval = %v, want 1h", cfg.Daemon.PollInterval())
	}
	if cfg.Daemon.Addr == "" {
		t.Fatal("default daemon addr is empty")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Timezone = "America/Bogota"
	cfg.General.DueSoonDays = 5
	cfg.Daemon.Interval = Duration(15 * time.Minute)
	cfg.Notify.Command = []string{"notify-send", "{title}", "{body}"}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("config file should exist after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Timezone != "America/Bogota" || got.General.DueSoonDays != 5 {
		t.Fatalf("general round trip = %+v", got.General)
	}
	if got.Daemon.PollInterval() != 15*time.Minute {
		t.Fatalf("interval round trip = %v", got.Daemon.PollInterval())
	}
	if len(got.Notify.Command) != 3 || got.Notify.Command[0] != "notify-send" {
		t.Fatalf("notify command round trip = %v", got.Notify.Command)
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Location() != time.Local {
		t.Fatal("empty timezone should resolve to time.Local")
	}

	cfg.General.Timezone = "Not/AZone"
	if cfg.Location() != time.Local {
		t.Fatal("invalid timezone should fall back to time.Local")
	}
}
