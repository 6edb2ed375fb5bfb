package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/logging"
)

var (
	// ErrNotFound means lrclib has no record for the requested track.
	ErrNotFound = errors.New("lyrics not found")
	// ErrLookupFailed covers transport errors, unexpected statuses and bad payloads.
	ErrLookupFailed = errors.New("lyrics lookup failed")
)

type TrackParams struct {
	Title    string
	Artist   string
	Album    string
	Duration float64
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       zerolog.Logger
}

func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      httpClient,
		log:       logging.Component("lrclib"),
	}
}

// Get looks up lyrics by track metadata. a 404 is reported as ErrNotFound.
func (c *Client) Get(ctx context.Context, track TrackParams) (*Document, error) {
	if track.Title == "" || track.Artist == "" {
		return nil, fmt.Errorf("%w: track title or artist is empty", ErrLookupFailed)
	}

	query := url.Values{}
	query.Set("track_name", track.Title)
	query.Set("artist_name", track.Artist)
	if track.Album != "" {
		query.Set("album_name", track.Album)
	}
	if track.Duration > 0 {
		query.Set("duration", strconv.Itoa(int(math.Round(track.Duration))))
	}

	var payload wireDocument
	if err := c.doRequest(ctx, "/get", query, &payload); err != nil {
		return nil, err
	}

	doc := payload.document()
	c.log.Debug().
		Int64("id", doc.ID).
		Bool("synced", doc.HasSynced()).
		Bool("instrumental", doc.Instrumental).
		Msg("lyrics fetched")
	return &doc, nil
}

// Search runs a free-text query. results keep the server's order.
func (c *Client) Search(ctx context.Context, q string) ([]Document, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Document{}, nil
	}

	query := url.Values{}
	query.Set("q", q)

	var payload []wireDocument
	if err := c.doRequest(ctx, "/search", query, &payload); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
		}
		return nil, err
	}

	docs := make([]Document, 0, len(payload))
	for _, w := range payload {
		docs = append(docs, w.document())
	}
	c.log.Debug().Str("query", q).Int("results", len(docs)).Msg("lyrics search")
	return docs, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values, out any) error {
	requestURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrLookupFailed, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: lrclib returned status %d: %s", ErrLookupFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrLookupFailed, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode lrclib json: %w", ErrLookupFailed, err)
	}

	return nil
}
