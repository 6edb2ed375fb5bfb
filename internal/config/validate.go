package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Lyrics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("lyrics: %w", err))
	}
	if err := c.Artwork.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("artwork: %w", err))
	}
	if err := c.HTTP.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("http: %w", err))
	}
	if err := c.Sync.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("sync: %w", err))
	}
	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks LyricsConfig for errors.
func (c *LyricsConfig) Validate() error {
	return validateHTTPURL("base_url", c.BaseURL)
}

// Validate checks ArtworkConfig for errors.
func (c *ArtworkConfig) Validate() error {
	return errors.Join(
		validateHTTPURL("itunes_url", c.ITunesURL),
		validateHTTPURL("deezer_url", c.DeezerURL),
	)
}

// Validate checks HTTPConfig for errors.
func (c *HTTPConfig) Validate() error {
	if c.Timeout.Duration < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks SyncConfig for errors.
func (c *SyncConfig) Validate() error {
	if c.TickInterval.Duration < 0 {
		return errors.New("tick_interval must be non-negative")
	}
	if c.ReconcileInterval.Duration < 0 {
		return errors.New("reconcile_interval must be non-negative")
	}
	if c.SeekThreshold < 0 {
		return errors.New("seek_threshold must be non-negative")
	}
	return nil
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	switch c.Bridge {
	case "", "auto", "applescript", "mediasession":
		// valid
	default:
		return fmt.Errorf("invalid bridge: %s (must be auto, applescript, or mediasession)", c.Bridge)
	}
	if c.Timeout.Duration < 0 {
		return errors.New("timeout must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error", "disabled":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, error, or disabled)", c.Level)
	}
	return nil
}

func validateHTTPURL(field string, raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", field)
	}
	return nil
}
