package main

import (
	"errors"
	"fmt"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/player"
	"karolbroda.com/lyricsync/internal/track"
	"karolbroda.com/lyricsync/internal/ui"
)

// cliError carries a hint printed under the error message.
type cliError struct {
	err        error
	suggestion string
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func withSuggestion(err error, suggestion string) error {
	if err == nil || suggestion == "" {
		return err
	}
	return &cliError{err: err, suggestion: suggestion}
}

func suggestionFor(err error) string {
	var ce *cliError
	if errors.As(err, &ce) && ce.suggestion != "" {
		return ce.suggestion
	}

	switch {
	case errors.Is(err, player.ErrUnsupported):
		return "set [player] bridge to applescript or mediasession, or pass --bridge"
	case errors.Is(err, track.ErrNoTrack):
		return "start playback in Spotify or Music and try again"
	case errors.Is(err, lyrics.ErrNotFound):
		return "try 'lyricsync search' with fewer words, or drop --album and --duration"
	case errors.Is(err, lyrics.ErrLookupFailed):
		return "check your connection, or point --lrclib-url at a reachable server"
	case errors.Is(err, artwork.ErrNoArtwork):
		return "try a shorter term, such as the album name alone"
	case errors.Is(err, ui.ErrNoResults):
		return "try a different query"
	}
	return ""
}

func formatError(err error) string {
	msg := "error: " + err.Error()
	if s := suggestionFor(err); s != "" {
		msg += fmt.Sprintf("\n\nsuggestion: %s", s)
	}
	return msg
}
