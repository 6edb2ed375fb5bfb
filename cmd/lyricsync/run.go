package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/terminal"
	"karolbroda.com/lyricsync/internal/ui"
)

var runCmd = &cobra.Command{
	Use:         "run",
	Short:       "start the interactive lyrics viewer",
	Long:        `starts the now-playing view: artwork, track info, progress and the current lyric line. press r to refresh, q to quit.`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runViewer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runViewer(cmd *cobra.Command, args []string) error {
	source, err := newTrackSource()
	if err != nil {
		return err
	}
	d := newDeps()

	ctx := cmd.Context()
	defer terminal.Reset(os.Stdout)

	model := ui.NewModel(ui.ModelConfig{
		Context:           ctx,
		Source:            source,
		Lyrics:            d.lyrics,
		Artwork:           d.artwork,
		HTTPClient:        d.http,
		Settings:          engineSettings(),
		ReconcileInterval: cfg.Sync.ReconcileInterval.Duration,
		Caps:              terminal.Detect(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running bubble tea: %w", err)
	}
	return nil
}
