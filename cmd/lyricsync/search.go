package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/lyrics"
	"karolbroda.com/lyricsync/internal/terminal"
	"karolbroda.com/lyricsync/internal/ui"
)

var (
	searchList bool
	searchPick bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "search lrclib for lyrics",
	Long: `search lrclib.net by title, artist or lyric text.

without flags an interactive list opens and updates as you type; enter shows
the lyrics and artwork for the selected result. --list prints the results,
--pick asks for one and prints its lyrics.`,
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		d := newDeps()

		if searchInteractive() {
			return runSearchTUI(cmd.Context(), d, query)
		}

		if query == "" {
			return withSuggestion(fmt.Errorf("a query is required with --list, --pick or --json"), "lyricsync search <query> --list")
		}

		docs, err := d.lyrics.Search(cmd.Context(), query)
		if err != nil {
			return err
		}

		if searchPick {
			doc, err := ui.Pick(docs)
			if err != nil {
				return err
			}
			return printDocument(doc, false)
		}

		if jsonOut {
			return printJSON(docs)
		}
		printSearchTable(docs)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVarP(&searchList, "list", "l", false, "print results as a table")
	searchCmd.Flags().BoolVarP(&searchPick, "pick", "p", false, "choose a result and print its lyrics")
	rootCmd.AddCommand(searchCmd)
}

// searchInteractive reports whether search opens the full-screen list.
func searchInteractive() bool {
	return !searchList && !searchPick && !jsonOut && terminal.Detect().Interactive
}

func runSearchTUI(ctx context.Context, d *deps, query string) error {
	model := ui.NewSearchModel(ui.SearchConfig{
		Context:    ctx,
		Lyrics:     d.lyrics,
		Artwork:    d.artwork,
		HTTPClient: d.http,
		Query:      query,
	})

	defer terminal.Reset(os.Stdout)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running bubble tea: %w", err)
	}
	return nil
}

func printSearchTable(docs []lyrics.Document) {
	if len(docs) == 0 {
		fmt.Println("no results")
		return
	}

	t := newTable(os.Stdout, "ID", "TRACK", "ARTIST", "ALBUM", "LENGTH", "LYRICS")
	for _, d := range docs {
		t.row(
			fmt.Sprint(d.ID),
			d.TrackName,
			d.ArtistName,
			d.AlbumName,
			colors.FormatTime(d.Duration),
			lyricsKind(&d),
		)
	}
	t.flush()
}

func lyricsKind(d *lyrics.Document) string {
	switch {
	case d.Instrumental:
		return "instrumental"
	case d.HasSynced():
		return "synced"
	case d.PlainLyrics != "":
		return "plain"
	}
	return "-"
}
