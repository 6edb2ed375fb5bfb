package artwork

import (
	"context"
	"net/http"
	"net/url"
)

// Deezer searches deezer tracks and returns the album's extra-large cover.
type Deezer struct {
	BaseURL string
	Client  *http.Client
}

type deezerResponse struct {
	Data []struct {
		Album struct {
			CoverXL string `json:"cover_xl"`
		} `json:"album"`
	} `json:"data"`
}

func (p *Deezer) Name() string { return "deezer" }

func (p *Deezer) Lookup(ctx context.Context, term string) (string, error) {
	query := url.Values{}
	query.Set("q", term)
	query.Set("limit", "1")

	var resp deezerResponse
	if err := getJSON(ctx, clientOrDefault(p.Client), p.BaseURL, query, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].Album.CoverXL == "" {
		return "", ErrNoArtwork
	}
	return resp.Data[0].Album.CoverXL, nil
}
