package nowplaying

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/engine"
	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/track"
)

// LyricsGetter fetches the lyrics document for a track.
type LyricsGetter interface {
	Get(ctx context.Context, params lyrics.TrackParams) (*lyrics.Document, error)
}

// ArtworkFinder resolves a cover URL for a snapshot; "" when none is found.
type ArtworkFinder interface {
	ForSnapshot(ctx context.Context, snap *track.Snapshot) string
}

type WatcherConfig struct {
	Source            track.Source
	Lyrics            LyricsGetter
	Artwork           ArtworkFinder
	Settings          engine.Settings
	ReconcileInterval time.Duration
	// OnFrame is called from the watcher goroutine after every state change.
	OnFrame func(Frame)
}

// Watcher drives a Session from a single goroutine: a fast tick advances the
// estimate, a slower poll re-reads the player, and fetch results come back
// over a channel so the session is never touched concurrently.
type Watcher struct {
	cfg     WatcherConfig
	session *Session
	refresh chan struct{}
	log     zerolog.Logger
}

func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Settings.TickInterval <= 0 {
		cfg.Settings.TickInterval = engine.DefaultTickInterval
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = 2 * time.Second
	}
	if cfg.OnFrame == nil {
		cfg.OnFrame = func(Frame) {}
	}
	return &Watcher{
		cfg:     cfg,
		session: NewSession(cfg.Settings),
		refresh: make(chan struct{}, 1),
		log:     logging.Component("watcher"),
	}
}

// Refresh asks the loop to re-read the player and restart the current view.
func (w *Watcher) Refresh() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// polled is one source read, delivered back to the loop goroutine.
type polled struct {
	snap    *track.Snapshot
	refresh bool
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	results := make(chan func(*Session), 4)
	polls := make(chan polled, 1)

	// at most one source read is in flight; a refresh asked for meanwhile
	// runs as soon as that read lands.
	var polling, refreshPending bool
	startPoll := func(refresh bool) {
		if polling {
			refreshPending = refreshPending || refresh
			return
		}
		polling = true
		go func() {
			snap := CurrentOrNil(ctx, w.cfg.Source, w.log)
			select {
			case polls <- polled{snap: snap, refresh: refresh}:
			case <-ctx.Done():
			}
		}()
	}

	startPoll(false)

	tick := time.NewTicker(w.cfg.Settings.TickInterval)
	defer tick.Stop()
	reconcile := time.NewTicker(w.cfg.ReconcileInterval)
	defer reconcile.Stop()

	w.log.Debug().
		Dur("tick", w.cfg.Settings.TickInterval).
		Dur("reconcile", w.cfg.ReconcileInterval).
		Msg("watcher started")

	for {
		select {
		case <-ctx.Done():
			w.log.Debug().Msg("watcher stopped")
			return nil
		case <-tick.C:
			w.session.Tick()
		case <-reconcile.C:
			startPoll(false)
		case <-w.refresh:
			startPoll(true)
		case p := <-polls:
			polling = false
			w.observe(ctx, p, results)
			if refreshPending {
				refreshPending = false
				startPoll(true)
			}
		case apply := <-results:
			apply(w.session)
		}
		w.cfg.OnFrame(w.session.Frame())
	}
}

// observe applies a source read to the session and starts the fetches a new
// generation needs.
func (w *Watcher) observe(ctx context.Context, p polled, results chan<- func(*Session)) {
	var change Change
	if p.refresh {
		change = w.session.Refresh(p.snap)
	} else {
		change = w.session.Observe(p.snap)
	}

	if change.NeedsFetch() {
		w.fetch(ctx, change.Generation, p.snap, results)
	}
}

// fetch starts one lyrics request and one artwork lookup for gen.
func (w *Watcher) fetch(ctx context.Context, gen string, snap *track.Snapshot, results chan<- func(*Session)) {
	deliver := func(apply func(*Session)) {
		select {
		case results <- apply:
		case <-ctx.Done():
		}
	}

	if w.cfg.Lyrics != nil {
		go func() {
			doc, err := w.cfg.Lyrics.Get(ctx, ParamsFor(snap))
			deliver(func(s *Session) { s.AttachLyrics(gen, doc, err) })
		}()
	}

	if w.cfg.Artwork != nil {
		go func() {
			url := w.cfg.Artwork.ForSnapshot(ctx, snap)
			deliver(func(s *Session) { s.AttachArtwork(gen, url) })
		}()
	}
}

// ParamsFor builds the lyrics query for a snapshot.
func ParamsFor(snap *track.Snapshot) lyrics.TrackParams {
	return lyrics.TrackParams{
		Title:    snap.Name,
		Artist:   snap.Artist,
		Album:    snap.Album,
		Duration: snap.Duration,
	}
}

// CurrentOrNil reads the source, folding every failure into "no track".
func CurrentOrNil(ctx context.Context, src track.Source, logger zerolog.Logger) *track.Snapshot {
	if src == nil {
		return nil
	}
	snap, err := src.Current(ctx)
	if err != nil {
		if !errors.Is(err, track.ErrNoTrack) {
			logger.Debug().Err(err).Msg("track source unavailable")
		}
		return nil
	}
	return snap
}
