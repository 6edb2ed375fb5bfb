package player

import (
	"errors"
	"fmt"

	"karolbroda.com/lyricsync/internal/track"
)

// ErrUnsupported is returned when no bridge exists for the host.
var ErrUnsupported = errors.New("no now-playing bridge for this platform")

const (
	BridgeAuto         = "auto"
	BridgeAppleScript  = "applescript"
	BridgeMediaSession = "mediasession"
)

// New picks the track source once at startup. bridge "auto" (or empty)
// selects by goos.
func New(goos, bridge string, runner Runner) (track.Source, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	switch bridge {
	case "", BridgeAuto:
		switch goos {
		case "darwin":
			return NewAppleScript(runner), nil
		case "windows":
			return NewMediaSession(runner), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	case BridgeAppleScript:
		return NewAppleScript(runner), nil
	case BridgeMediaSession:
		return NewMediaSession(runner), nil
	}
	return nil, fmt.Errorf("%w: unknown bridge %q", ErrUnsupported, bridge)
}
