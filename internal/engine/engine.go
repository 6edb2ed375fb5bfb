package engine

import (
	"math"
	"time"

	"karolbroda.com/lyricsync/internal/lyrics"
)

const (
	DefaultTickInterval  = time.Second
	DefaultSeekThreshold = 6.0
)

type Settings struct {
	// TickInterval is how far one Tick advances the position while playing.
	TickInterval time.Duration
	// SeekThreshold is the observed jump, in seconds, treated as a user seek.
	SeekThreshold float64
}

func DefaultSettings() Settings {
	return Settings{
		TickInterval:  DefaultTickInterval,
		SeekThreshold: DefaultSeekThreshold,
	}
}

// SyncState is the engine's estimate of the playback position.
type SyncState struct {
	Current      float64
	LastObserved float64
	LastSyncedAt time.Time
}

// Engine tracks the playback position for one track and resolves the active line.
// it is not safe for concurrent use; a single owner drives Tick and Reconcile.
type Engine struct {
	lines    []lyrics.Line
	duration float64
	settings Settings
	state    SyncState
	playing  bool

	// index of the last resolved line, used as a starting point while the
	// position moves forward. -1 with cursorOK set means before the first line.
	cursor   int
	cursorOK bool

	now func() time.Time
}

func New(lines []lyrics.Line, duration float64, settings Settings) *Engine {
	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}
	if settings.SeekThreshold <= 0 {
		settings.SeekThreshold = DefaultSeekThreshold
	}
	return &Engine{
		lines:    lines,
		duration: duration,
		settings: settings,
		now:      time.Now,
	}
}

// Initialize resets the estimate to position.
func (e *Engine) Initialize(position float64) {
	e.state = SyncState{
		Current:      position,
		LastObserved: position,
		LastSyncedAt: e.now(),
	}
	e.cursorOK = false
}

func (e *Engine) SetPlaying(playing bool) {
	e.playing = playing
}

func (e *Engine) Playing() bool {
	return e.playing
}

// Tick advances the position by one tick interval while playing.
func (e *Engine) Tick() {
	if !e.playing {
		return
	}
	e.state.Current += e.settings.TickInterval.Seconds()
}

// Reconcile compares an observed position with the previous observation.
// a jump larger than the seek threshold replaces the local estimate and
// Reconcile reports true; smaller drift leaves the ticked position alone.
func (e *Engine) Reconcile(observed float64) bool {
	delta := math.Abs(observed - e.state.LastObserved)
	seeked := delta > e.settings.SeekThreshold
	if seeked {
		e.state.Current = observed
		e.cursorOK = false
	}
	e.state.LastObserved = observed
	e.state.LastSyncedAt = e.now()
	return seeked
}

func (e *Engine) Position() float64 {
	return e.state.Current
}

func (e *Engine) Duration() float64 {
	return e.duration
}

func (e *Engine) State() SyncState {
	return e.state
}

func (e *Engine) Lines() []lyrics.Line {
	return e.lines
}

// HasLines reports whether there is anything to synchronize.
func (e *Engine) HasLines() bool {
	return len(e.lines) > 0 && e.duration > 0
}

// Current resolves the line at the current position. ok is false when the
// track has no duration or no timed lines.
func (e *Engine) Current() (w Window, ok bool) {
	if !e.HasLines() {
		return Window{Index: -1}, false
	}

	pos := e.state.Current
	idx, hit := e.advanceCursor(pos)
	if !hit {
		idx = searchIndex(e.lines, pos)
	}
	e.cursor = idx
	e.cursorOK = true

	return windowAt(e.lines, idx), true
}

// advanceCursor walks forward from the last resolved index. it gives up when
// the position moved backwards past the cursor.
func (e *Engine) advanceCursor(pos float64) (int, bool) {
	if !e.cursorOK {
		return 0, false
	}
	idx := e.cursor
	if idx >= 0 && e.lines[idx].Offset > pos {
		return 0, false
	}
	for idx+1 < len(e.lines) && e.lines[idx+1].Offset <= pos {
		idx++
	}
	return idx, true
}

// WithLines returns an engine for lines that continues from e's position and play state.
func (e *Engine) WithLines(lines []lyrics.Line, duration float64) *Engine {
	next := New(lines, duration, e.settings)
	next.state = e.state
	next.playing = e.playing
	next.now = e.now
	return next
}
