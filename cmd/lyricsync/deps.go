package main

import (
	"net/http"
	"runtime"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/engine"
	"karolbroda.com/lyricsync/internal/httpclient"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/player"
	"karolbroda.com/lyricsync/internal/track"
)

// clients built from the loaded config
type deps struct {
	http    *http.Client
	lyrics  *lyrics.Client
	artwork *artwork.Client
}

func newDeps() *deps {
	hc := httpclient.New(cfg.HTTP.Timeout.Duration)
	return &deps{
		http:   hc,
		lyrics: lyrics.NewClient(cfg.Lyrics.BaseURL, cfg.Lyrics.UserAgent, hc),
		artwork: artwork.NewClient(
			&artwork.ITunes{BaseURL: cfg.Artwork.ITunesURL, Client: hc},
			&artwork.Deezer{BaseURL: cfg.Artwork.DeezerURL, Client: hc},
		),
	}
}

func newTrackSource() (track.Source, error) {
	return player.New(runtime.GOOS, cfg.Player.Bridge, player.ExecRunner{Timeout: cfg.Player.Timeout.Duration})
}

func engineSettings() engine.Settings {
	return engine.Settings{
		TickInterval:  cfg.Sync.TickInterval.Duration,
		SeekThreshold: cfg.Sync.SeekThreshold,
	}
}
