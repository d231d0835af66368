package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Game.Layout != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[game]
layout = "trq"
reward = 20
penalty-interval = 15
sound = false

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Layout == nil || *cfg.Game.Layout != "trq" {
		t.Fatalf("unexpected layout: %v", cfg.Game.Layout)
	}
	if cfg.Game.Reward == nil || *cfg.Game.Reward != 20 {
		t.Fatalf("unexpected reward: %v", cfg.Game.Reward)
	}
	if cfg.Game.PenaltyInterval == nil || *cfg.Game.PenaltyInterval != 15 {
		t.Fatalf("unexpected penalty interval: %v", cfg.Game.PenaltyInterval)
	}
	if cfg.Game.Sound == nil || *cfg.Game.Sound {
		t.Fatalf("expected sound=false")
	}
	if cfg.Game.MismatchPenalty != nil {
		t.Fatalf("expected unset mismatch penalty")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nrewrad = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "tusavi", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLayoutDir(); got != filepath.Join("/tmp/cfg", "tusavi", "layouts") {
		t.Fatalf("unexpected layout dir %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "tusavi", "tusavi.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/tmp/state", "tusavi", "tusavi.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
