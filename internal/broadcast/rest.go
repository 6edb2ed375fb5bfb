package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"karolbroda.com/lyricsync/internal/lyrics"
)

// Searcher runs a lyrics search for /api/search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]lyrics.Document, error)
}

type SearchResult struct {
	ID           int64   `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName,omitempty"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	Synced       bool    `json:"synced"`
	Lyrics       string  `json:"lyrics"`
}

type SearchResponse struct {
	OK      bool           `json:"ok"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

func RespondWithJSON(m any, statusCode int, w http.ResponseWriter) {
	payload, _ := json.Marshal(m)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(payload)
}

func RespondWithError(reason string, statusCode int, w http.ResponseWriter) {
	RespondWithJSON(map[string]any{
		"ok":     false,
		"reason": reason,
	}, statusCode, w)
}

func getNow(h *Hub, w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(h.Latest(), http.StatusOK, w)
}

func search(s Searcher, w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		RespondWithError("Missing query parameter q.", http.StatusBadRequest, w)
		return
	}
	if s == nil {
		RespondWithError("Search is not available.", http.StatusServiceUnavailable, w)
		return
	}

	docs, err := s.Search(r.Context(), q)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		RespondWithError("Lyrics search failed.", status, w)
		return
	}

	rsp := SearchResponse{OK: true, Query: q, Results: make([]SearchResult, 0, len(docs))}
	for i := range docs {
		d := &docs[i]
		rsp.Results = append(rsp.Results, SearchResult{
			ID:           d.ID,
			TrackName:    d.TrackName,
			ArtistName:   d.ArtistName,
			AlbumName:    d.AlbumName,
			Duration:     d.Duration,
			Instrumental: d.Instrumental,
			Synced:       d.HasSynced(),
			Lyrics:       d.DisplayText(),
		})
	}
	RespondWithJSON(rsp, http.StatusOK, w)
}

// NewRouter makes the API and websocket routes for the now-playing broadcast.
func NewRouter(hub *Hub, searcher Searcher, allowedOrigins []string) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/now", func(w http.ResponseWriter, r *http.Request) {
		getNow(hub, w, r)
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		search(searcher, w, r)
	}).Methods(http.MethodGet)
	router.HandleFunc("/ws", hub.ServeWS(NewUpgrader(allowedOrigins)))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondWithError("Not found.", http.StatusNotFound, w)
	})
	return router
}

// NewHandler wraps the router with CORS. no origins allows any origin.
func NewHandler(hub *Hub, searcher Searcher, allowedOrigins []string) http.Handler {
	router := NewRouter(hub, searcher, allowedOrigins)
	if len(allowedOrigins) == 0 {
		return cors.Default().Handler(router)
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(router)
}

func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  wsReadBufferSize,
		WriteBufferSize: wsWriteBufferSize,
		CheckOrigin:     originChecker(allowedOrigins),
	}
}

// originChecker accepts every origin when none are configured. requests
// without an Origin header are always accepted.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}
