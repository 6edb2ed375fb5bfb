package nowplaying

import (
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/track"
)

// Frame is a presentation snapshot of the session.
type Frame struct {
	Generation string          `json:"generation,omitempty"`
	Status     Status          `json:"status"`
	Track      *track.Snapshot `json:"track,omitempty"`
	Position   float64         `json:"position"`
	Duration   float64         `json:"duration"`
	Playing    bool            `json:"playing"`
	ArtworkURL string          `json:"artworkUrl,omitempty"`

	// synced lyrics
	LineIndex int           `json:"lineIndex"`
	Prev      *lyrics.Line  `json:"prev,omitempty"`
	Current   string        `json:"current,omitempty"`
	Next      *lyrics.Line  `json:"next,omitempty"`
	Lines     []lyrics.Line `json:"-"`

	// static lyrics for plain documents
	Text string `json:"text,omitempty"`
}

// Frame renders the current state. it resolves the line at the present
// estimate and so belongs on the same goroutine as Tick.
func (s *Session) Frame() Frame {
	f := Frame{
		Generation: s.generation,
		Status:     s.status,
		Track:      s.snap,
		ArtworkURL: s.artworkURL,
		LineIndex:  -1,
	}
	if s.snap == nil {
		return f
	}

	f.Duration = s.snap.Duration
	f.Position = s.snap.Position
	if s.engine != nil {
		f.Position = s.engine.Position()
		f.Playing = s.engine.Playing()
	}

	switch s.status {
	case StatusSynced:
		w, ok := s.engine.Current()
		if !ok {
			break
		}
		f.LineIndex = w.Index
		f.Lines = s.engine.Lines()
		f.Current = Placeholder
		if w.Current != nil && w.Current.Text != "" {
			f.Current = w.Current.Text
		}
		if w.Prev != nil {
			prev := *w.Prev
			f.Prev = &prev
		}
		if w.Next != nil {
			next := *w.Next
			f.Next = &next
		}
	case StatusPlain:
		f.Text = s.doc.DisplayText()
	case StatusInstrumental:
		f.Text = lyrics.InstrumentalText
	}
	return f
}

// Message is the static line shown when there is nothing to synchronize.
func (f Frame) Message() string {
	switch f.Status {
	case StatusNoTrack:
		return "No music playing"
	case StatusLoading:
		return "Loading lyrics..."
	case StatusNotFound:
		return "Lyrics not found"
	case StatusFailed:
		return "Lyrics lookup failed"
	case StatusInstrumental:
		return lyrics.InstrumentalText
	}
	return ""
}
