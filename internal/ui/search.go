package ui

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/track"
)

const searchDebounce = 300 * time.Millisecond

// Searcher runs a free-text lyrics search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]lyrics.Document, error)
}

// ArtworkLookup resolves a cover url for a search term.
type ArtworkLookup interface {
	Lookup(ctx context.Context, term string) string
}

type SearchConfig struct {
	Context    context.Context
	Lyrics     Searcher
	Artwork    ArtworkLookup
	HTTPClient *http.Client
	Query      string
}

// SearchModel is the search-as-you-type list with a detail view for the
// selected result.
type SearchModel struct {
	cfg SearchConfig

	input     textinput.Model
	results   []lyrics.Document
	cursor    int
	err       error
	debounce  time.Duration
	lastQuery string
	searching bool
	width     int
	height    int

	detail *detailView
}

type detailView struct {
	doc     lyrics.Document
	image   image.Image
	palette *artwork.Palette
	scroll  int
}

type debounceMsg struct {
	query string
}

type searchResultsMsg struct {
	query   string
	results []lyrics.Document
	err     error
}

type detailArtMsg struct {
	id      int64
	img     image.Image
	palette *artwork.Palette
}

var (
	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#8BA4E8"))

	searchResultStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	searchSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	searchSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))

	searchErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B"))
)

func NewSearchModel(cfg SearchConfig) SearchModel {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	ti := textinput.New()
	ti.Placeholder = "Search by title, artist or lyrics..."
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 50
	ti.SetValue(cfg.Query)

	return SearchModel{
		cfg:      cfg,
		input:    ti,
		debounce: searchDebounce,
		width:    80,
		height:   24,
	}
}

func (m SearchModel) Init() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return debounceMsg{query: m.input.Value()}
	})
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case detailArtMsg:
		if m.detail != nil && m.detail.doc.ID == msg.id {
			m.detail.image = msg.img
			if msg.palette != nil {
				m.detail.palette = msg.palette
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
	}

	return m.updateList(msg)
}

func (m SearchModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.results) {
				return m.openDetail(m.results[m.cursor])
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		}

	case debounceMsg:
		if msg.query == m.input.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = strings.TrimSpace(msg.query) != ""
			return m, m.doSearch(msg.query)
		}
		return m, nil

	case searchResultsMsg:
		// a slower, older search must not replace newer results
		if msg.query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.cursor = 0
		return m, nil
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	if value := m.input.Value(); value != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{query: value}
		}))
	}

	return m, tea.Batch(cmds...)
}

func (m SearchModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		m.detail = nil
	case "up", "k":
		if m.detail.scroll > 0 {
			m.detail.scroll--
		}
	case "down", "j":
		m.detail.scroll++
	case "pgdown", " ":
		m.detail.scroll += 10
	case "pgup":
		m.detail.scroll = max(m.detail.scroll-10, 0)
	}
	return m, nil
}

func (m SearchModel) openDetail(doc lyrics.Document) (tea.Model, tea.Cmd) {
	m.detail = &detailView{doc: doc, palette: artwork.DefaultPalette()}
	return m, m.fetchDetailArt(doc)
}

func (m SearchModel) doSearch(query string) tea.Cmd {
	searcher := m.cfg.Lyrics
	ctx := m.cfg.Context
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" || searcher == nil {
			return searchResultsMsg{query: query}
		}
		results, err := searcher.Search(ctx, query)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

func (m SearchModel) fetchDetailArt(doc lyrics.Document) tea.Cmd {
	finder := m.cfg.Artwork
	if finder == nil {
		return nil
	}
	ctx := m.cfg.Context
	client := m.cfg.HTTPClient
	return func() tea.Msg {
		msg := detailArtMsg{id: doc.ID}
		u := finder.Lookup(ctx, documentSnapshot(doc).ArtworkTerm())
		if u == "" {
			return msg
		}
		img, err := artwork.FetchImage(ctx, client, u)
		if err != nil {
			return msg
		}
		msg.img = img
		msg.palette = artwork.ExtractPalette(img)
		return msg
	}
}

func (m SearchModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}

	var b strings.Builder

	b.WriteString(searchTitleStyle.Render("♪ lyrics search"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(searchErrorStyle.Render("Error: " + m.err.Error()))
	case m.searching:
		b.WriteString("Searching...")
	case len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "":
		b.WriteString("No results found")
	default:
		maxResults := max(m.height-8, 5)
		start := 0
		if m.cursor >= maxResults {
			start = m.cursor - maxResults + 1
		}
		for i := start; i < len(m.results) && i < start+maxResults; i++ {
			line := truncate(ResultLabel(m.results[i]), max(m.width-6, 20))
			if i == m.cursor {
				b.WriteString(searchSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(searchResultStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if rest := len(m.results) - start - maxResults; rest > 0 {
			b.WriteString(searchSubtitleStyle.Render(fmt.Sprintf("  ...and %d more", rest)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(searchSubtitleStyle.Render("↑/↓ navigate • enter open • esc quit"))

	return b.String()
}

func (m SearchModel) viewDetail() string {
	d := m.detail
	width, height := m.width, m.height

	header := renderHeader(headerParams{
		palette: d.palette,
		snap:    documentSnapshot(d.doc),
		image:   d.image,
		width:   width,
		height:  height,
	})
	meta := documentTags(d.doc)
	if d.doc.Duration > 0 {
		meta = colors.FormatTime(d.doc.Duration) + " · " + meta
	}
	header = append(header, searchSubtitleStyle.Render("  "+meta), "")

	footer := searchSubtitleStyle.Render("  ↑/↓ scroll • esc back")
	body := renderStaticText(d.palette, d.doc.DisplayText(), d.scroll, max(height-len(header)-2, 1), width)

	lines := append(header, body...)
	lines = append(lines, "", footer)
	return fitHeight(lines, max(height, len(header)+2))
}

// documentSnapshot adapts a search result to the header renderer.
func documentSnapshot(doc lyrics.Document) *track.Snapshot {
	return &track.Snapshot{
		Name:     doc.TrackName,
		Artist:   doc.ArtistName,
		Album:    doc.AlbumName,
		Duration: doc.Duration,
	}
}

// ResultLabel is the one-line description of a search result.
func ResultLabel(doc lyrics.Document) string {
	label := doc.TrackName + " - " + doc.ArtistName
	if doc.AlbumName != "" {
		label += " (" + doc.AlbumName + ")"
	}
	return label + " [" + documentTags(doc) + "]"
}

func documentTags(doc lyrics.Document) string {
	switch {
	case doc.Instrumental:
		return "instrumental"
	case doc.HasSynced():
		return "synced"
	case doc.PlainLyrics != "":
		return "plain"
	}
	return "no lyrics"
}

// Selected returns the result whose detail view is open.
func (m SearchModel) Selected() *lyrics.Document {
	if m.detail == nil {
		return nil
	}
	doc := m.detail.doc
	return &doc
}
