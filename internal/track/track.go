package track

import (
	"context"
	"errors"
)

// ErrNoTrack is returned by a Source when no supported app has a track loaded.
var ErrNoTrack = errors.New("no track playing")

type State string

const (
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateStopped State = "stopped"
)

type App string

const (
	AppSpotify App = "spotify"
	AppMusic   App = "music"
)

// Snapshot is a one-shot read of playback state. it is replaced, never mutated.
type Snapshot struct {
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	Album      string  `json:"album"`
	Duration   float64 `json:"duration"`
	Position   float64 `json:"position"`
	State      State   `json:"state"`
	App        App     `json:"app"`
	ArtworkURL string  `json:"artworkUrl,omitempty"`
}

// Source reports what the desktop player is doing right now.
type Source interface {
	Current(ctx context.Context) (*Snapshot, error)
}

func (s *Snapshot) IsValid() bool {
	if s == nil {
		return false
	}
	return s.Name != "" && s.Artist != "" && s.Duration >= 0 && s.Position >= 0
}

func (s *Snapshot) IsPlaying() bool {
	return s != nil && s.State == StatePlaying
}

func (s *Snapshot) IsSameTrack(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Name == other.Name && s.Artist == other.Artist
}

// ArtworkTerm is the free-text query used to look up album art.
func (s *Snapshot) ArtworkTerm() string {
	if s == nil {
		return ""
	}
	if s.Album == "" {
		return s.Artist
	}
	return s.Artist + " " + s.Album
}

func ParseState(s string) State {
	switch s {
	case "playing", "Playing":
		return StatePlaying
	case "paused", "Paused":
		return StatePaused
	}
	return StateStopped
}
