package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/lyrics"
)

var (
	getAlbum    string
	getDuration float64
	getTimed    bool
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics",
	Short: "fetch lyrics from lrclib",
	Long:  `look up lyrics on lrclib.net without a running player.`,
}

var lyricsGetCmd = &cobra.Command{
	Use:   "get <artist> <title>",
	Short: "fetch the lyrics for one track",
	Long: `fetch the lyrics for one track from lrclib.net.

album and duration narrow the match; --timed prints each synced line with its
timestamp instead of the plain text.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := lyrics.TrackParams{
			Artist:   args[0],
			Title:    args[1],
			Album:    getAlbum,
			Duration: getDuration,
		}

		doc, err := newDeps().lyrics.Get(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("%s - %s: %w", params.Artist, params.Title, err)
		}

		if jsonOut {
			return printJSON(doc)
		}
		return printDocument(doc, getTimed)
	},
}

func init() {
	lyricsGetCmd.Flags().StringVar(&getAlbum, "album", "", "album name")
	lyricsGetCmd.Flags().Float64Var(&getDuration, "duration", 0, "track length in seconds")
	lyricsGetCmd.Flags().BoolVar(&getTimed, "timed", false, "print synced lines with timestamps")

	lyricsCmd.AddCommand(lyricsGetCmd)
	rootCmd.AddCommand(lyricsCmd)
}

func printDocument(doc *lyrics.Document, timed bool) error {
	return writeDocument(os.Stdout, doc, timed)
}

func writeDocument(w io.Writer, doc *lyrics.Document, timed bool) error {
	fmt.Fprintf(w, "%s - %s\n", doc.TrackName, doc.ArtistName)
	if doc.AlbumName != "" {
		fmt.Fprintf(w, "album:  %s\n", doc.AlbumName)
	}
	if doc.Duration > 0 {
		fmt.Fprintf(w, "length: %s\n", colors.FormatTime(doc.Duration))
	}
	fmt.Fprintf(w, "lyrics: %s\n\n", lyricsKind(doc))

	if timed && doc.HasSynced() {
		fmt.Fprint(w, formatTimed(doc.Lines()))
		return nil
	}

	_, err := fmt.Fprintln(w, doc.DisplayText())
	return err
}

// formatTimed renders lines as "[m:ss.cc] text".
func formatTimed(lines []lyrics.Line) string {
	var b strings.Builder
	for _, l := range lines {
		total := int(math.Round(l.Offset * 100))
		fmt.Fprintf(&b, "[%d:%02d.%02d] %s\n", total/6000, total/100%60, total%100, l.Text)
	}
	return b.String()
}
