package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/track"
)

// field separator in script output (ASCII unit separator)
const fieldSep = "\x1f"

const spotifyScript = `
set sep to ASCII character 31
if application "Spotify" is running then
	tell application "Spotify"
		set playerState to player state as string
		if playerState is "playing" or playerState is "paused" then
			set t to current track
			return playerState & sep & (name of t) & sep & (artist of t) & sep & (album of t) & sep & ((duration of t) as string) & sep & ((player position) as string) & sep & (artwork url of t)
		end if
	end tell
end if
return ""
`

const musicScript = `
set sep to ASCII character 31
if application "Music" is running then
	tell application "Music"
		set playerState to player state as string
		if playerState is "playing" or playerState is "paused" then
			set t to current track
			return playerState & sep & (name of t) & sep & (artist of t) & sep & (album of t) & sep & ((duration of t) as string) & sep & ((player position) as string)
		end if
	end tell
end if
return ""
`

// AppleScript reads Spotify and Music through osascript.
type AppleScript struct {
	runner Runner
	log    zerolog.Logger
}

func NewAppleScript(runner Runner) *AppleScript {
	return &AppleScript{
		runner: runner,
		log:    logging.Component("applescript"),
	}
}

// Current prefers whichever app is playing, Spotify first. with neither
// playing it falls back to a paused track, again Spotify first.
func (a *AppleScript) Current(ctx context.Context) (*track.Snapshot, error) {
	spotify := a.query(ctx, track.AppSpotify, spotifyScript)
	if spotify.IsPlaying() {
		return spotify, nil
	}

	music := a.query(ctx, track.AppMusic, musicScript)
	if music.IsPlaying() {
		return music, nil
	}

	if spotify != nil {
		return spotify, nil
	}
	if music != nil {
		return music, nil
	}
	return nil, track.ErrNoTrack
}

// query returns nil when the app is closed, idle, or the bridge fails.
func (a *AppleScript) query(ctx context.Context, app track.App, script string) *track.Snapshot {
	out, err := a.runner.Run(ctx, "osascript", "-e", script)
	if err != nil {
		a.log.Debug().Err(err).Str("app", string(app)).Msg("bridge unavailable")
		return nil
	}

	snap, err := parseRecord(string(out), app)
	if err != nil {
		a.log.Debug().Err(err).Str("app", string(app)).Msg("unreadable bridge output")
		return nil
	}
	return snap
}

// parseRecord decodes "state␟name␟artist␟album␟duration␟position[␟artwork]".
// an empty record means the app has nothing loaded.
func parseRecord(raw string, app track.App) (*track.Snapshot, error) {
	raw = strings.TrimRight(raw, "\r\n")
	if raw == "" {
		return nil, nil
	}

	fields := strings.Split(raw, fieldSep)
	if len(fields) < 6 || len(fields) > 7 {
		return nil, fmt.Errorf("expected 6 or 7 fields, got %d", len(fields))
	}

	duration, err := parseNumber(fields[4])
	if err != nil {
		return nil, fmt.Errorf("duration: %w", err)
	}
	position, err := parseNumber(fields[5])
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}

	// spotify reports duration in milliseconds
	if app == track.AppSpotify {
		duration /= 1000
	}

	snap := &track.Snapshot{
		Name:     fields[1],
		Artist:   fields[2],
		Album:    fields[3],
		Duration: duration,
		Position: position,
		State:    track.ParseState(fields[0]),
		App:      app,
	}
	if len(fields) == 7 {
		snap.ArtworkURL = strings.TrimSpace(fields[6])
	}

	if !snap.IsValid() {
		return nil, fmt.Errorf("incomplete track record")
	}
	return snap, nil
}

// parseNumber accepts a comma decimal separator, which osascript emits under some locales.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || s == "missing value" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
