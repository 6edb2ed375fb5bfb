package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Lyrics  LyricsConfig  `toml:"lyrics"`
	Artwork ArtworkConfig `toml:"artwork"`
	HTTP    HTTPConfig    `toml:"http"`
	Sync    SyncConfig    `toml:"sync"`
	Player  PlayerConfig  `toml:"player"`
	Serve   ServeConfig   `toml:"serve"`
	Log     LogConfig     `toml:"log"`
}

// LyricsConfig holds lrclib API settings.
type LyricsConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

// ArtworkConfig holds the artwork provider endpoints, tried in order.
type ArtworkConfig struct {
	ITunesURL string `toml:"itunes_url"`
	DeezerURL string `toml:"deezer_url"`
}

// HTTPConfig holds settings shared by every outbound HTTP client.
type HTTPConfig struct {
	Timeout Duration `toml:"timeout"`
}

// SyncConfig holds the lyrics synchronization policy.
type SyncConfig struct {
	TickInterval      Duration `toml:"tick_interval"`
	ReconcileInterval Duration `toml:"reconcile_interval"`
	SeekThreshold     float64  `toml:"seek_threshold"`
}

// PlayerConfig selects and tunes the OS now-playing bridge.
type PlayerConfig struct {
	Bridge  string   `toml:"bridge"`
	Timeout Duration `toml:"timeout"`
}

// ServeConfig holds settings for the broadcast server.
type ServeConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration is a time.Duration that decodes from a Go duration string ("1s", "250ms").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
