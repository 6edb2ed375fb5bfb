package artwork

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/track"
)

// Client tries each provider in order and returns the first hit.
// every call goes to the network; nothing is remembered between calls.
type Client struct {
	providers []Provider
	log       zerolog.Logger
}

func NewClient(providers ...Provider) *Client {
	return &Client{
		providers: providers,
		log:       logging.Component("artwork"),
	}
}

// Lookup returns "" when every provider misses or fails.
func (c *Client) Lookup(ctx context.Context, term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}

	for _, p := range c.providers {
		u, err := p.Lookup(ctx, term)
		if err == nil && u != "" {
			c.log.Debug().Str("provider", p.Name()).Str("term", term).Msg("artwork found")
			return u
		}
		if err != nil && !errors.Is(err, ErrNoArtwork) {
			c.log.Warn().Err(err).Str("provider", p.Name()).Str("term", term).Msg("artwork lookup failed")
		}
	}
	return ""
}

// ForSnapshot prefers the url reported by the player and otherwise searches by artist and album.
func (c *Client) ForSnapshot(ctx context.Context, snap *track.Snapshot) string {
	if snap == nil {
		return ""
	}
	if snap.ArtworkURL != "" {
		return snap.ArtworkURL
	}
	return c.Lookup(ctx, snap.ArtworkTerm())
}
