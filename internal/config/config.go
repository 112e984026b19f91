package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the client settings. Everything has a sensible default;
// the config file and LIFTLOG_* environment variables are both optional,
// with the environment winning.
type Config struct {
	// DBPath locates the SQLite database holding the document slots.
	DBPath string `toml:"db_path"`
	// WeekStart fixes the week-to-date convention: "monday" (default)
	// or "sunday".
	WeekStart string `toml:"week_start"`
	// Theme is the display theme preference ("light" or "dark"). It is
	// persisted here alongside the data, not inside the document.
	Theme string `toml:"theme"`
	// logging
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings, rooted in the user's home
// directory.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DBPath:    filepath.Join(home, ".liftlog", "liftlog.db"),
		WeekStart: "monday",
		Theme:     "light",
		LogLevel:  "info",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".liftlog", "config.toml")
}

// Load reads the TOML config at path, layering it over the defaults and
// then applying environment overrides. A missing file is not an error;
// a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	cfg.WeekStart = strings.ToLower(strings.TrimSpace(cfg.WeekStart))
	if cfg.WeekStart != "sunday" {
		cfg.WeekStart = "monday"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DBPath = envOrDefault("LIFTLOG_DB_PATH", cfg.DBPath)
	cfg.WeekStart = envOrDefault("LIFTLOG_WEEK_START", cfg.WeekStart)
	cfg.Theme = envOrDefault("LIFTLOG_THEME", cfg.Theme)
	cfg.LogLevel = envOrDefault("LIFTLOG_LOG_LEVEL", cfg.LogLevel)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
