package artwork

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ITunes searches the iTunes store for an album cover.
type ITunes struct {
	BaseURL string
	Client  *http.Client
}

type itunesResponse struct {
	Results []struct {
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

func (p *ITunes) Name() string { return "itunes" }

func (p *ITunes) Lookup(ctx context.Context, term string) (string, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("media", "music")
	query.Set("entity", "album")
	query.Set("limit", "1")

	var resp itunesResponse
	if err := getJSON(ctx, clientOrDefault(p.Client), p.BaseURL, query, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 || resp.Results[0].ArtworkURL100 == "" {
		return "", ErrNoArtwork
	}

	// the store serves larger renditions under the same path
	return strings.Replace(resp.Results[0].ArtworkURL100, "100x100", "600x600", 1), nil
}

func clientOrDefault(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
