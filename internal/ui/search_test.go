package ui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"karolbroda.com/lyricsync/internal/lyrics"
)

type fakeSearcher struct {
	calls   atomic.Int32
	queries []string
	results []lyrics.Document
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]lyrics.Document, error) {
	f.calls.Add(1)
	f.queries = append(f.queries, query)
	return f.results, nil
}

var searchDocs = []lyrics.Document{
	{ID: 1, TrackName: "One", ArtistName: "A", AlbumName: "X", Duration: 61, PlainLyrics: "first words"},
	{ID: 2, TrackName: "Two", ArtistName: "B", Duration: 90, SyncedLyrics: "[00:01.00] hello\n[00:02.00] there"},
}

func updateSearch(t *testing.T, m SearchModel, msg tea.Msg) (SearchModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(SearchModel), cmd
}

func typeText(t *testing.T, m SearchModel, s string) SearchModel {
	t.Helper()
	m, _ = updateSearch(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestSearchDebounce(t *testing.T) {
	searcher := &fakeSearcher{results: searchDocs}
	m := NewSearchModel(SearchConfig{Lyrics: searcher})

	m = typeText(t, m, "ab")
	m = typeText(t, m, "c")

	// a debounce fired for an older value does nothing
	m, cmd := updateSearch(t, m, debounceMsg{query: "ab"})
	if cmd != nil {
		t.Error("stale debounce started a search")
	}

	m, cmd = updateSearch(t, m, debounceMsg{query: "abc"})
	if cmd == nil {
		t.Fatal("debounce for the current value did not search")
	}
	m, _ = updateSearch(t, m, cmd())

	if searcher.calls.Load() != 1 || searcher.queries[0] != "abc" {
		t.Errorf("searches = %v, want [abc]", searcher.queries)
	}
	view := plain(m.View())
	if !strings.Contains(view, "One - A (X) [plain]") || !strings.Contains(view, "Two - B [synced]") {
		t.Errorf("View() missing results:\n%s", view)
	}

	// the same value again does not repeat the request
	if _, cmd = updateSearch(t, m, debounceMsg{query: "abc"}); cmd != nil {
		t.Error("repeated debounce searched again")
	}
}

func TestSearchIgnoresOlderResults(t *testing.T) {
	m := NewSearchModel(SearchConfig{Lyrics: &fakeSearcher{}})
	m = typeText(t, m, "new")
	m, _ = updateSearch(t, m, debounceMsg{query: "new"})

	m, _ = updateSearch(t, m, searchResultsMsg{query: "ne", results: searchDocs})
	if len(m.results) != 0 {
		t.Errorf("results = %d, want older results dropped", len(m.results))
	}
}

func TestSearchInitialQuery(t *testing.T) {
	searcher := &fakeSearcher{results: searchDocs}
	m := NewSearchModel(SearchConfig{Lyrics: searcher, Query: "hello"})

	var debounced bool
	for _, msg := range collect(m.Init()) {
		if d, ok := msg.(debounceMsg); ok && d.query == "hello" {
			debounced = true
		}
	}
	if !debounced {
		t.Error("Init() did not schedule a search for the initial query")
	}
}

func TestSearchDetail(t *testing.T) {
	m := NewSearchModel(SearchConfig{Lyrics: &fakeSearcher{}})
	m = typeText(t, m, "one")
	m, _ = updateSearch(t, m, debounceMsg{query: "one"})
	m, _ = updateSearch(t, m, searchResultsMsg{query: "one", results: searchDocs})

	m, _ = updateSearch(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSearch(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil || sel.ID != 2 {
		t.Fatalf("Selected() = %+v, want result 2", sel)
	}
	view := plain(m.View())
	if !strings.Contains(view, "hello") || strings.Contains(view, "[00:01.00]") {
		t.Errorf("detail view does not show stripped lyrics:\n%s", view)
	}
	if !strings.Contains(view, "1:30") {
		t.Errorf("detail view missing duration:\n%s", view)
	}

	m, _ = updateSearch(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Selected() != nil {
		t.Error("esc did not close the detail view")
	}
	if !strings.Contains(plain(m.View()), "Two - B") {
		t.Error("list not shown after closing the detail view")
	}
}

func TestSearchEscQuits(t *testing.T) {
	m := NewSearchModel(SearchConfig{})
	_, cmd := updateSearch(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc in the list did not quit")
	}
}

func TestResultLabel(t *testing.T) {
	tests := []struct {
		doc  lyrics.Document
		want string
	}{
		{lyrics.Document{TrackName: "T", ArtistName: "A", AlbumName: "B", PlainLyrics: "x"}, "T - A (B) [plain]"},
		{lyrics.Document{TrackName: "T", ArtistName: "A", Instrumental: true}, "T - A [instrumental]"},
		{lyrics.Document{TrackName: "T", ArtistName: "A"}, "T - A [no lyrics]"},
	}

	for _, tt := range tests {
		if got := ResultLabel(tt.doc); got != tt.want {
			t.Errorf("ResultLabel() = %q, want %q", got, tt.want)
		}
	}
}

func TestPickEmpty(t *testing.T) {
	if _, err := Pick(nil); err != ErrNoResults {
		t.Errorf("Pick(nil) error = %v, want ErrNoResults", err)
	}
}
