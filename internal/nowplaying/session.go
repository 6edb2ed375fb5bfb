package nowplaying

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/engine"
	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/track"
)

type Status string

const (
	StatusNoTrack      Status = "no_track"
	StatusLoading      Status = "loading"
	StatusNotFound     Status = "not_found"
	StatusFailed       Status = "failed"
	StatusInstrumental Status = "instrumental"
	StatusSynced       Status = "synced"
	StatusPlain        Status = "plain"
)

// Placeholder stands in for the current line before the first timestamp
// and during instrumental beats.
const Placeholder = "..."

// Change describes what an observation did to the session.
type Change struct {
	TrackChanged bool
	Seeked       bool
	// Generation identifies the track view that fetch results must target.
	Generation string
}

// NeedsFetch reports whether lyrics and artwork should be requested.
func (c Change) NeedsFetch() bool {
	return c.TrackChanged && c.Generation != ""
}

// Session owns everything shown for the current track. only one goroutine
// may call its methods.
type Session struct {
	settings engine.Settings

	snap       *track.Snapshot
	generation string
	status     Status
	doc        *lyrics.Document
	engine     *engine.Engine
	artworkURL string
	lastErr    error

	newID func() string
	log   zerolog.Logger
}

func NewSession(settings engine.Settings) *Session {
	return &Session{
		settings: settings,
		status:   StatusNoTrack,
		newID:    uuid.NewString,
		log:      logging.Component("session"),
	}
}

// Observe applies a fresh snapshot. a different (name, artist) pair starts a
// new generation; the same track is reconciled against the local estimate.
func (s *Session) Observe(snap *track.Snapshot) Change {
	if snap == nil {
		return s.clear()
	}
	if s.snap == nil || !s.snap.IsSameTrack(snap) {
		return s.start(snap)
	}

	s.snap = snap
	s.engine.SetPlaying(snap.IsPlaying())
	seeked := s.engine.Reconcile(snap.Position)
	if seeked {
		s.log.Debug().Float64("position", snap.Position).Msg("seek detected")
	}
	return Change{Seeked: seeked, Generation: s.generation}
}

// Refresh restarts the view for snap even when the track did not change.
func (s *Session) Refresh(snap *track.Snapshot) Change {
	if snap == nil {
		return s.clear()
	}
	return s.start(snap)
}

func (s *Session) start(snap *track.Snapshot) Change {
	s.snap = snap
	s.generation = s.newID()
	s.status = StatusLoading
	s.doc = nil
	s.artworkURL = snap.ArtworkURL
	s.lastErr = nil

	s.engine = engine.New(nil, snap.Duration, s.settings)
	s.engine.Initialize(snap.Position)
	s.engine.SetPlaying(snap.IsPlaying())

	s.log.Info().
		Str("track", snap.Name).
		Str("artist", snap.Artist).
		Str("app", string(snap.App)).
		Str("generation", s.generation).
		Msg("track changed")
	return Change{TrackChanged: true, Generation: s.generation}
}

func (s *Session) clear() Change {
	had := s.snap != nil
	s.snap = nil
	s.generation = ""
	s.status = StatusNoTrack
	s.doc = nil
	s.engine = nil
	s.artworkURL = ""
	s.lastErr = nil
	return Change{TrackChanged: had}
}

// AttachLyrics installs a fetch result. results for an older generation are
// dropped and AttachLyrics returns false.
func (s *Session) AttachLyrics(gen string, doc *lyrics.Document, err error) bool {
	if gen == "" || gen != s.generation {
		s.log.Debug().Str("generation", gen).Msg("dropping stale lyrics")
		return false
	}

	s.doc = doc
	s.lastErr = err

	switch {
	case errors.Is(err, lyrics.ErrNotFound):
		s.status = StatusNotFound
	case err != nil:
		s.log.Warn().Err(err).Str("track", s.snap.Name).Msg("lyrics lookup failed")
		s.status = StatusFailed
	case doc == nil:
		s.status = StatusNotFound
	case doc.Instrumental:
		s.status = StatusInstrumental
	case doc.HasSynced():
		s.attachSynced(doc)
	case doc.PlainLyrics != "":
		s.status = StatusPlain
	default:
		s.status = StatusNotFound
	}
	return true
}

func (s *Session) attachSynced(doc *lyrics.Document) {
	duration := s.snap.Duration
	if duration <= 0 {
		duration = doc.Duration
	}

	lines := doc.Lines()
	if len(lines) == 0 || duration <= 0 {
		s.status = StatusPlain
		return
	}

	s.engine = s.engine.WithLines(lines, duration)
	s.status = StatusSynced
}

func (s *Session) AttachArtwork(gen string, url string) bool {
	if gen == "" || gen != s.generation {
		return false
	}
	if url != "" {
		s.artworkURL = url
	}
	return true
}

// Tick advances the local position estimate.
func (s *Session) Tick() {
	if s.engine != nil {
		s.engine.Tick()
	}
}

func (s *Session) Generation() string {
	return s.generation
}

func (s *Session) Snapshot() *track.Snapshot {
	return s.snap
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) Document() *lyrics.Document {
	return s.doc
}
