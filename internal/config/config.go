package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: $XDG_CONFIG_HOME/lyricsync/config.toml, ~/.config/lyricsync/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file that Load would read, or "" if none exists.
func Path() string {
	return findConfigFile()
}

func findConfigFile() string {
	var paths []string

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "lyricsync", "config.toml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lyricsync", "config.toml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func applyEnvOverrides(cfg *Config) {
	// lyrics
	if v := os.Getenv("LYRICSYNC_LRCLIB_URL"); v != "" {
		cfg.Lyrics.BaseURL = v
	}

	// http
	if v := os.Getenv("LYRICSYNC_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Timeout = Duration{d}
		}
	}

	// sync
	if v := os.Getenv("LYRICSYNC_TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sync.TickInterval = Duration{d}
		}
	}
	if v := os.Getenv("LYRICSYNC_RECONCILE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sync.ReconcileInterval = Duration{d}
		}
	}
	if v := os.Getenv("LYRICSYNC_SEEK_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sync.SeekThreshold = f
		}
	}

	// player
	if v := os.Getenv("LYRICSYNC_BRIDGE"); v != "" {
		cfg.Player.Bridge = v
	}

	// serve
	if v := os.Getenv("LYRICSYNC_SERVE_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("LYRICSYNC_ALLOWED_ORIGINS"); v != "" {
		cfg.Serve.AllowedOrigins = strings.Split(v, ",")
	}

	// log
	if v := os.Getenv("LYRICSYNC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LYRICSYNC_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
