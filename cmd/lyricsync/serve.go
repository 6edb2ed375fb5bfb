package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"karolbroda.com/lyricsync/internal/broadcast"
	"karolbroda.com/lyricsync/internal/nowplaying"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the now-playing state over http and websocket",
	Long: `follow the player and publish every frame.

  GET /api/now         latest frame as JSON
  GET /api/search?q=   lrclib search
  GET /ws              websocket stream of frames`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := newTrackSource()
		if err != nil {
			return err
		}
		d := newDeps()

		addr := cfg.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		hub := broadcast.NewHub()
		defer hub.Close()

		watcher := nowplaying.NewWatcher(nowplaying.WatcherConfig{
			Source:            source,
			Lyrics:            d.lyrics,
			Artwork:           d.artwork,
			Settings:          engineSettings(),
			ReconcileInterval: cfg.Sync.ReconcileInterval.Duration,
			OnFrame:           hub.Publish,
		})
		handler := broadcast.NewHandler(hub, d.lyrics, cfg.Serve.AllowedOrigins)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return watcher.Run(ctx) })
		g.Go(func() error { return broadcast.ListenAndServe(ctx, addr, handler) })

		log.Info().Str("addr", addr).Msg("serving now-playing frames")
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
