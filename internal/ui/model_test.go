package ui

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/nowplaying"
	"karolbroda.com/lyricsync/internal/track"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

type fakeSource struct {
	snap *track.Snapshot
}

func (f *fakeSource) Current(ctx context.Context) (*track.Snapshot, error) {
	if f.snap == nil {
		return nil, track.ErrNoTrack
	}
	s := *f.snap
	return &s, nil
}

type fakeLyrics struct {
	doc *lyrics.Document
	err error
}

func (f *fakeLyrics) Get(ctx context.Context, params lyrics.TrackParams) (*lyrics.Document, error) {
	return f.doc, f.err
}

type fakeArtwork struct {
	url string
}

func (f *fakeArtwork) ForSnapshot(ctx context.Context, snap *track.Snapshot) string {
	return f.url
}

// collect runs cmd and flattens batches. it must not be given tick commands.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func playing(name string, position float64) *track.Snapshot {
	return &track.Snapshot{
		Name:     name,
		Artist:   "Artist",
		Album:    "Album",
		Duration: 200,
		Position: position,
		State:    track.StatePlaying,
		App:      track.AppSpotify,
	}
}

var syncedDoc = &lyrics.Document{
	TrackName:    "Song",
	ArtistName:   "Artist",
	Duration:     200,
	SyncedLyrics: "[00:05.00] first\n[00:12.50] second\n[00:30.00] third",
}

func newTestModel(doc *lyrics.Document, err error) Model {
	return NewModel(ModelConfig{
		Source:  &fakeSource{},
		Lyrics:  &fakeLyrics{doc: doc, err: err},
		Artwork: &fakeArtwork{},
	})
}

func TestSnapshotLoadsLyrics(t *testing.T) {
	m := newTestModel(syncedDoc, nil)

	m, cmd := update(t, m, snapshotMsg{snap: playing("Song", 15)})
	if got := m.Frame().Status; got != nowplaying.StatusLoading {
		t.Fatalf("Status = %q, want loading", got)
	}
	if cmd == nil {
		t.Fatal("track change did not start a fetch")
	}

	for _, msg := range collect(cmd) {
		m, _ = update(t, m, msg)
	}

	f := m.Frame()
	if f.Status != nowplaying.StatusSynced {
		t.Fatalf("Status = %q, want synced", f.Status)
	}
	if f.Current != "second" {
		t.Errorf("Current = %q, want second", f.Current)
	}
	if !strings.Contains(plain(m.View()), "second") {
		t.Error("View() does not show the current line")
	}
}

func TestStaleFetchIgnored(t *testing.T) {
	m := newTestModel(syncedDoc, nil)

	m, first := update(t, m, snapshotMsg{snap: playing("Song", 15)})
	stale := collect(first)

	m, _ = update(t, m, snapshotMsg{snap: playing("Other", 0)})
	for _, msg := range stale {
		m, _ = update(t, m, msg)
	}

	if got := m.Frame().Status; got != nowplaying.StatusLoading {
		t.Errorf("Status = %q, want loading after stale results", got)
	}
}

func TestTickAdvancesPosition(t *testing.T) {
	m := newTestModel(syncedDoc, nil)
	m, _ = update(t, m, snapshotMsg{snap: playing("Song", 10)})

	m, cmd := update(t, m, tickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if got := m.Frame().Position; got != 11 {
		t.Errorf("Position = %v, want 11", got)
	}
}

func TestRefreshKey(t *testing.T) {
	m := newTestModel(syncedDoc, nil)
	m.cfg.Source = &fakeSource{snap: playing("Song", 20)}

	m, _ = update(t, m, snapshotMsg{snap: playing("Song", 20)})
	before := m.Session().Generation()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("refresh produced %d messages, want 1", len(msgs))
	}
	snap, ok := msgs[0].(snapshotMsg)
	if !ok || !snap.refresh {
		t.Fatalf("refresh produced %#v", msgs[0])
	}

	m, cmd = update(t, m, snap)
	if m.Session().Generation() == before {
		t.Error("refresh kept the old generation")
	}
	if cmd == nil {
		t.Error("refresh did not refetch lyrics")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(nil, nil)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() not empty after quitting")
	}
}

func TestViewMessages(t *testing.T) {
	tests := []struct {
		name string
		doc  *lyrics.Document
		err  error
		want string
	}{
		{"not found", nil, lyrics.ErrNotFound, "Lyrics not found"},
		{"failed", nil, lyrics.ErrLookupFailed, "Lyrics lookup failed"},
		{"instrumental", &lyrics.Document{Instrumental: true}, nil, "Instrumental"},
		{"plain", &lyrics.Document{PlainLyrics: "just words"}, nil, "just words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(tt.doc, tt.err)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
			m, cmd := update(t, m, snapshotMsg{snap: playing("Song", 0)})
			for _, msg := range collect(cmd) {
				m, _ = update(t, m, msg)
			}

			view := plain(m.View())
			if !strings.Contains(view, tt.want) {
				t.Errorf("View() does not contain %q:\n%s", tt.want, view)
			}
			if !strings.Contains(view, "Song") {
				t.Error("View() does not show the track name")
			}
		})
	}
}

func TestViewNoTrack(t *testing.T) {
	m := newTestModel(nil, nil)
	m, _ = update(t, m, snapshotMsg{})

	if got := m.Frame().Status; got != nowplaying.StatusNoTrack {
		t.Errorf("Status = %q, want no_track", got)
	}
	if !strings.Contains(plain(m.View()), "No music playing") {
		t.Error("View() does not show the no-track message")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 8, "much to…"},
		{"日本語テキスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
