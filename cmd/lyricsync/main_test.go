package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/nowplaying"
	"karolbroda.com/lyricsync/internal/player"
	"karolbroda.com/lyricsync/internal/track"
)

func TestSuggestionFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unsupported", fmt.Errorf("%w: plan9", player.ErrUnsupported), "--bridge"},
		{"no track", track.ErrNoTrack, "start playback"},
		{"not found", fmt.Errorf("a - b: %w", lyrics.ErrNotFound), "lyricsync search"},
		{"lookup failed", fmt.Errorf("%w: status 500", lyrics.ErrLookupFailed), "--lrclib-url"},
		{"no artwork", artwork.ErrNoArtwork, "shorter term"},
		{"explicit", withSuggestion(errors.New("bad"), "do this"), "do this"},
		{"unknown", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestionFor(tt.err)
			if tt.want == "" && got != "" {
				t.Errorf("suggestionFor() = %q, want none", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("suggestionFor() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	got := formatError(withSuggestion(errors.New("invalid config"), "check ~/.config/lyricsync/config.toml"))
	want := "error: invalid config\n\nsuggestion: check ~/.config/lyricsync/config.toml"
	if got != want {
		t.Errorf("formatError() = %q, want %q", got, want)
	}

	if got := formatError(errors.New("boom")); got != "error: boom" {
		t.Errorf("formatError() = %q", got)
	}
}

func TestWithSuggestionKeepsChain(t *testing.T) {
	err := withSuggestion(fmt.Errorf("load: %w", lyrics.ErrNotFound), "x")
	if !errors.Is(err, lyrics.ErrNotFound) {
		t.Error("withSuggestion() hides the wrapped error")
	}
	if withSuggestion(nil, "x") != nil {
		t.Error("withSuggestion(nil) != nil")
	}
}

func TestFormatTimed(t *testing.T) {
	got := formatTimed([]lyrics.Line{
		{Offset: 5.07, Text: "first"},
		{Offset: 72.5, Text: "second"},
		{Offset: 600, Text: ""},
	})
	want := "[0:05.07] first\n[1:12.50] second\n[10:00.00] \n"
	if got != want {
		t.Errorf("formatTimed() = %q, want %q", got, want)
	}
}

func TestWriteDocument(t *testing.T) {
	doc := &lyrics.Document{
		TrackName:    "Song",
		ArtistName:   "Artist",
		Duration:     125,
		SyncedLyrics: "[00:01.00] one\n[00:02.50] two",
	}

	var plain bytes.Buffer
	if err := writeDocument(&plain, doc, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plain.String(), "Song - Artist\n") || !strings.Contains(plain.String(), "length: 2:05") {
		t.Errorf("header missing:\n%s", plain.String())
	}
	if !strings.HasSuffix(plain.String(), "one\n\ntwo\n") {
		t.Errorf("plain output = %q", plain.String())
	}

	var timed bytes.Buffer
	writeDocument(&timed, doc, true)
	if !strings.HasSuffix(timed.String(), "[0:01.00] one\n[0:02.50] two\n") {
		t.Errorf("timed output = %q", timed.String())
	}
}

func syncedFrame(gen, current string) nowplaying.Frame {
	return nowplaying.Frame{
		Generation: gen,
		Status:     nowplaying.StatusSynced,
		Track:      &track.Snapshot{Name: "Song", Artist: "Artist"},
		Current:    current,
	}
}

func TestFrameLine(t *testing.T) {
	tests := []struct {
		name  string
		frame nowplaying.Frame
		want  string
	}{
		{"synced", syncedFrame("g", "hello"), "hello"},
		{"placeholder", syncedFrame("g", nowplaying.Placeholder), "..."},
		{"plain", nowplaying.Frame{Status: nowplaying.StatusPlain, Track: &track.Snapshot{Name: "Song", Artist: "Artist"}}, "Song - Artist"},
		{"no track", nowplaying.Frame{Status: nowplaying.StatusNoTrack}, "No music playing"},
		{"loading", nowplaying.Frame{Status: nowplaying.StatusLoading}, "Loading lyrics..."},
		{"instrumental", nowplaying.Frame{Status: nowplaying.StatusInstrumental}, "Instrumental"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameLine(tt.frame); got != tt.want {
				t.Errorf("frameLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinePrinterPrintsChanges(t *testing.T) {
	var out bytes.Buffer
	p := newLinePrinter(&out, false)

	p.print(syncedFrame("g1", "one"))
	p.print(syncedFrame("g1", "one"))
	p.print(syncedFrame("g1", "two"))
	p.print(syncedFrame("g2", "two"))

	if got := out.String(); got != "one\ntwo\ntwo\n" {
		t.Errorf("output = %q, want one line per change", got)
	}
}

func TestLinePrinterJSON(t *testing.T) {
	var out bytes.Buffer
	p := newLinePrinter(&out, true)
	p.print(syncedFrame("g1", "one"))

	var f nowplaying.Frame
	if err := json.Unmarshal(out.Bytes(), &f); err != nil {
		t.Fatalf("output is not a JSON frame: %v\n%s", err, out.String())
	}
	if f.Current != "one" || f.Generation != "g1" {
		t.Errorf("frame = %+v", f)
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("broken pipe")
}

func TestLinePrinterStopsOnWriteError(t *testing.T) {
	for _, asJSON := range []bool{false, true} {
		out := &failingWriter{}
		stops := 0
		p := newLinePrinter(out, asJSON)
		p.stop = func() { stops++ }

		p.print(syncedFrame("g1", "one"))
		p.print(syncedFrame("g1", "two"))

		if p.err == nil || !strings.Contains(p.err.Error(), "broken pipe") {
			t.Errorf("json=%v: err = %v, want the write error", asJSON, p.err)
		}
		if stops != 1 {
			t.Errorf("json=%v: stop called %d times, want 1", asJSON, stops)
		}
		if out.writes != 1 {
			t.Errorf("json=%v: writes = %d, want 1", asJSON, out.writes)
		}
	}
}
