package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/nowplaying"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "print the current lyric line as it changes",
	Long: `follow the player and print one line each time the displayed lyric changes,
for status bars and scripts. with --json each change is a JSON frame.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := newTrackSource()
		if err != nil {
			return err
		}
		d := newDeps()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		printer := newLinePrinter(os.Stdout, jsonOut)
		printer.stop = cancel
		watcher := nowplaying.NewWatcher(nowplaying.WatcherConfig{
			Source:            source,
			Lyrics:            d.lyrics,
			Artwork:           d.artwork,
			Settings:          engineSettings(),
			ReconcileInterval: cfg.Sync.ReconcileInterval.Duration,
			OnFrame:           printer.print,
		})
		if err := watcher.Run(ctx); err != nil {
			return err
		}
		return printer.err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// linePrinter writes a frame only when its displayed text changes. the first
// write error is kept and stop is called, after which nothing more is written.
type linePrinter struct {
	out  io.Writer
	json bool
	last string
	err  error
	stop func()
}

func newLinePrinter(out io.Writer, json bool) *linePrinter {
	return &linePrinter{out: out, json: json}
}

func (p *linePrinter) print(f nowplaying.Frame) {
	if p.err != nil {
		return
	}
	line := frameLine(f)
	key := f.Generation + "\x00" + string(f.Status) + "\x00" + line
	if key == p.last {
		return
	}
	p.last = key

	var err error
	if p.json {
		err = writeJSON(p.out, f)
	} else {
		_, err = fmt.Fprintln(p.out, line)
	}
	if err != nil {
		log.Debug().Err(err).Msg("write frame")
		p.err = fmt.Errorf("write output: %w", err)
		if p.stop != nil {
			p.stop()
		}
	}
}

// frameLine is the single line shown for a frame.
func frameLine(f nowplaying.Frame) string {
	switch f.Status {
	case nowplaying.StatusSynced:
		return f.Current
	case nowplaying.StatusPlain:
		if f.Track != nil {
			return f.Track.Name + " - " + f.Track.Artist
		}
	}
	return f.Message()
}
