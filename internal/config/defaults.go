package config

import "time"

const (
	DefaultLrclibURL         = "https://lrclib.net/api"
	DefaultUserAgent         = "lyricsync/1.0"
	DefaultITunesURL         = "https://itunes.apple.com/search"
	DefaultDeezerURL         = "https://api.deezer.com/search/track"
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultTickInterval      = 1 * time.Second
	DefaultReconcileInterval = 2 * time.Second
	DefaultSeekThreshold     = 6.0
	DefaultBridge            = "auto"
	DefaultPlayerTimeout     = 10 * time.Second
	DefaultServeAddr         = "127.0.0.1:7879"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Lyrics: LyricsConfig{
			BaseURL:   DefaultLrclibURL,
			UserAgent: DefaultUserAgent,
		},
		Artwork: ArtworkConfig{
			ITunesURL: DefaultITunesURL,
			DeezerURL: DefaultDeezerURL,
		},
		HTTP: HTTPConfig{
			Timeout: Duration{DefaultHTTPTimeout},
		},
		Sync: SyncConfig{
			TickInterval:      Duration{DefaultTickInterval},
			ReconcileInterval: Duration{DefaultReconcileInterval},
			SeekThreshold:     DefaultSeekThreshold,
		},
		Player: PlayerConfig{
			Bridge:  DefaultBridge,
			Timeout: Duration{DefaultPlayerTimeout},
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.Lyrics.BaseURL == "" {
		c.Lyrics.BaseURL = d.Lyrics.BaseURL
	}
	if c.Lyrics.UserAgent == "" {
		c.Lyrics.UserAgent = d.Lyrics.UserAgent
	}

	if c.Artwork.ITunesURL == "" {
		c.Artwork.ITunesURL = d.Artwork.ITunesURL
	}
	if c.Artwork.DeezerURL == "" {
		c.Artwork.DeezerURL = d.Artwork.DeezerURL
	}

	if c.HTTP.Timeout.Duration == 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}

	if c.Sync.TickInterval.Duration == 0 {
		c.Sync.TickInterval = d.Sync.TickInterval
	}
	if c.Sync.ReconcileInterval.Duration == 0 {
		c.Sync.ReconcileInterval = d.Sync.ReconcileInterval
	}
	if c.Sync.SeekThreshold == 0 {
		c.Sync.SeekThreshold = d.Sync.SeekThreshold
	}

	if c.Player.Bridge == "" {
		c.Player.Bridge = d.Player.Bridge
	}
	if c.Player.Timeout.Duration == 0 {
		c.Player.Timeout = d.Player.Timeout
	}

	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
