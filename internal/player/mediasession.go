package player

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"

	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/track"
)

const mediaSessionScript = `
Add-Type -AssemblyName System.Runtime.WindowsRuntime

$asTaskGeneric = ([System.WindowsRuntimeSystemExtensions].GetMethods() | Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -eq 'IAsyncOperation` + "`" + `1' })[0]
Function Await($WinRtTask, $ResultType) {
    $asTask = $asTaskGeneric.MakeGenericMethod($ResultType)
    $netTask = $asTask.Invoke($null, @($WinRtTask))
    $netTask.Wait(-1) | Out-Null
    $netTask.Result
}

[Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager,Windows.Media.Control,ContentType=WindowsRuntime] | Out-Null

$manager = Await ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager]::RequestAsync()) ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager])
$session = $manager.GetCurrentSession()

if ($session) {
    $info = Await ($session.TryGetMediaPropertiesAsync()) ([Windows.Media.Control.GlobalSystemMediaTransportControlsSessionMediaProperties])
    $timeline = $session.GetTimelineProperties()
    $playback = $session.GetPlaybackInfo()

    @{
        name = $info.Title
        artist = $info.Artist
        album = $info.AlbumTitle
        duration = $timeline.EndTime.TotalSeconds
        position = $timeline.Position.TotalSeconds
        state = $playback.PlaybackStatus.ToString().ToLower()
        app = $session.SourceAppUserModelId
    } | ConvertTo-Json -Compress
}
`

// MediaSession reads the Windows global media session through PowerShell.
type MediaSession struct {
	runner  Runner
	command string
	log     zerolog.Logger
}

func NewMediaSession(runner Runner) *MediaSession {
	return &MediaSession{
		runner:  runner,
		command: mediaSessionScript,
		log:     logging.Component("mediasession"),
	}
}

type sessionPayload struct {
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
	Position float64 `json:"position"`
	State    string  `json:"state"`
	App      string  `json:"app"`
}

func (m *MediaSession) Current(ctx context.Context) (*track.Snapshot, error) {
	encoded, err := encodeCommand(m.command)
	if err != nil {
		return nil, fmt.Errorf("encode script: %w", err)
	}

	out, err := m.runner.Run(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-EncodedCommand", encoded)
	if err != nil {
		m.log.Debug().Err(err).Msg("bridge unavailable")
		return nil, track.ErrNoTrack
	}

	snap, err := parseSessionPayload(out)
	if err != nil {
		m.log.Debug().Err(err).Msg("unreadable bridge output")
		return nil, track.ErrNoTrack
	}
	if snap == nil {
		return nil, track.ErrNoTrack
	}
	return snap, nil
}

func parseSessionPayload(out []byte) (*track.Snapshot, error) {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}

	var p sessionPayload
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, fmt.Errorf("decode session json: %w", err)
	}

	state := track.StatePaused
	if p.State == "playing" {
		state = track.StatePlaying
	}

	snap := &track.Snapshot{
		Name:     p.Name,
		Artist:   p.Artist,
		Album:    p.Album,
		Duration: p.Duration,
		Position: p.Position,
		State:    state,
		App:      appFromID(p.App),
	}
	if !snap.IsValid() {
		return nil, fmt.Errorf("incomplete session record")
	}
	return snap, nil
}

func appFromID(id string) track.App {
	if strings.Contains(id, "Music") || strings.Contains(id, "iTunes") {
		return track.AppMusic
	}
	return track.AppSpotify
}

// encodeCommand produces the base64 UTF-16LE form expected by -EncodedCommand.
func encodeCommand(script string) (string, error) {
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := utf16.String(script)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(encoded)), nil
}
