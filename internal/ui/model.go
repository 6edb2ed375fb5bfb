package ui

import (
	"context"
	"image"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/engine"
	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/nowplaying"
	"karolbroda.com/lyricsync/internal/terminal"
	"karolbroda.com/lyricsync/internal/track"
)

type tickMsg time.Time

type reconcileMsg time.Time

type snapshotMsg struct {
	snap    *track.Snapshot
	refresh bool
}

type lyricsMsg struct {
	gen string
	doc *lyrics.Document
	err error
}

type artworkMsg struct {
	gen     string
	url     string
	img     image.Image
	palette *artwork.Palette
}

type ModelConfig struct {
	Context           context.Context
	Source            track.Source
	Lyrics            nowplaying.LyricsGetter
	Artwork           nowplaying.ArtworkFinder
	HTTPClient        *http.Client
	Settings          engine.Settings
	ReconcileInterval time.Duration
	Caps              *terminal.Capabilities
}

// Model is the now-playing view. the session is only touched from Update.
type Model struct {
	cfg     ModelConfig
	session *nowplaying.Session
	frame   nowplaying.Frame

	image   image.Image
	palette *artwork.Palette

	tickCount int
	quitting  bool
	width     int
	height    int

	log zerolog.Logger
}

func NewModel(cfg ModelConfig) Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Settings.TickInterval <= 0 {
		cfg.Settings.TickInterval = engine.DefaultTickInterval
	}
	if cfg.Settings.SeekThreshold <= 0 {
		cfg.Settings.SeekThreshold = engine.DefaultSeekThreshold
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = 2 * time.Second
	}
	if cfg.Caps == nil {
		cfg.Caps = &terminal.Capabilities{}
	}

	session := nowplaying.NewSession(cfg.Settings)
	return Model{
		cfg:     cfg,
		session: session,
		frame:   session.Frame(),
		palette: artwork.DefaultPalette(),
		log:     logging.Component("ui"),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pollCmd(false),
		tickCmd(m.cfg.Settings.TickInterval),
		reconcileCmd(m.cfg.ReconcileInterval),
	)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func reconcileCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return reconcileMsg(t)
	})
}

// pollCmd reads the player off the update loop.
func (m Model) pollCmd(refresh bool) tea.Cmd {
	src := m.cfg.Source
	ctx := m.cfg.Context
	logger := m.log
	return func() tea.Msg {
		return snapshotMsg{
			snap:    nowplaying.CurrentOrNil(ctx, src, logger),
			refresh: refresh,
		}
	}
}

func (m Model) fetchLyricsCmd(gen string, snap *track.Snapshot) tea.Cmd {
	getter := m.cfg.Lyrics
	if getter == nil {
		return nil
	}
	ctx := m.cfg.Context
	return func() tea.Msg {
		doc, err := getter.Get(ctx, nowplaying.ParamsFor(snap))
		return lyricsMsg{gen: gen, doc: doc, err: err}
	}
}

func (m Model) fetchArtworkCmd(gen string, snap *track.Snapshot) tea.Cmd {
	finder := m.cfg.Artwork
	if finder == nil {
		return nil
	}
	ctx := m.cfg.Context
	client := m.cfg.HTTPClient
	logger := m.log
	return func() tea.Msg {
		msg := artworkMsg{gen: gen, url: finder.ForSnapshot(ctx, snap)}
		if msg.url == "" {
			return msg
		}

		img, err := artwork.FetchImage(ctx, client, msg.url)
		if err != nil {
			logger.Debug().Err(err).Str("url", msg.url).Msg("artwork image unavailable")
			return msg
		}
		msg.img = img
		msg.palette = artwork.ExtractPalette(img)
		return msg
	}
}

func (m *Model) resetForNewTrack() {
	m.image = nil
	m.palette = artwork.DefaultPalette()
}

func (m Model) Frame() nowplaying.Frame { return m.frame }
func (m Model) Palette() *artwork.Palette { return m.palette }
func (m Model) Image() image.Image { return m.image }
func (m Model) IsQuitting() bool { return m.quitting }
func (m Model) Session() *nowplaying.Session { return m.session }
