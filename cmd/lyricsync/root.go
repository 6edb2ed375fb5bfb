package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/config"
	"karolbroda.com/lyricsync/internal/logging"
)

// commands annotated with tuiAnnotation own the terminal, so logs go to
// the configured file or nowhere.
const tuiAnnotation = "tui"

var (
	cfgFile   string
	jsonOut   bool
	verbose   bool
	lrclibURL string
	bridge    string

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "lyricsync",
	Short: "synchronized lyrics for the track playing on this machine",
	Long: `lyricsync shows time-synchronized lyrics for whatever Spotify or Apple Music
is playing, fetched from lrclib.net, with album artwork and a color theme
taken from the cover.

when run without a subcommand, it starts the interactive viewer.`,
	Version:     "1.0.0",
	Annotations: map[string]string{tuiAnnotation: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		return initLogging(cmd)
	},
	RunE:          runViewer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/lyricsync/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&lrclibURL, "lrclib-url", "", "custom lrclib api url")
	rootCmd.PersistentFlags().StringVar(&bridge, "bridge", "", "now-playing bridge: auto, applescript or mediasession")
}

func initConfig(cmd *cobra.Command) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return withSuggestion(fmt.Errorf("failed to load config: %w", err), configSuggestion())
	}

	if cmd.Flags().Changed("lrclib-url") {
		cfg.Lyrics.BaseURL = lrclibURL
	}
	if cmd.Flags().Changed("bridge") {
		cfg.Player.Bridge = bridge
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return withSuggestion(fmt.Errorf("invalid config: %w", err), configSuggestion())
	}
	return nil
}

func initLogging(cmd *cobra.Command) error {
	closer, err := logging.Setup(cfg.Log, ownsTerminal(cmd))
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logCloser = closer
	return nil
}

// ownsTerminal reports whether cmd runs a full-screen view.
func ownsTerminal(cmd *cobra.Command) bool {
	if cmd.Annotations[tuiAnnotation] != "true" {
		return false
	}
	if cmd == searchCmd {
		return searchInteractive()
	}
	return true
}

func configSuggestion() string {
	if path := cfgFile; path != "" {
		return "check " + path
	}
	if path := config.Path(); path != "" {
		return "check " + path
	}
	return ""
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}
