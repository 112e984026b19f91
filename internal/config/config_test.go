package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"liftlog/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WeekStart != "monday" {
		t.Errorf("week start = %q, want monday default", cfg.WeekStart)
	}
	if cfg.DBPath == "" || cfg.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "db_path = \"/tmp/x.db\"\nweek_start = \"Sunday\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.WeekStart != "sunday" {
		t.Errorf("week start = %q, want normalized sunday", cfg.WeekStart)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoad_EnvWins(t *testing.T) {
	t.Setenv("LIFTLOG_WEEK_START", "sunday")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WeekStart != "sunday" {
		t.Errorf("week start = %q, want env override", cfg.WeekStart)
	}
}

func TestLoad_UnknownWeekStartFallsBack(t *testing.T) {
	t.Setenv("LIFTLOG_WEEK_START", "caturday")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WeekStart != "monday" {
		t.Errorf("week start = %q, want monday fallback", cfg.WeekStart)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}
