package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/artwork"
)

var artworkShow bool

var artworkCmd = &cobra.Command{
	Use:   "artwork <term...>",
	Short: "find album artwork",
	Long: `search iTunes, then Deezer, for a cover matching the term (usually
"artist album") and print its url. --show also draws it in the terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")
		d := newDeps()

		url := d.artwork.Lookup(cmd.Context(), term)
		if jsonOut {
			return printJSON(map[string]any{"term": term, "url": url, "found": url != ""})
		}
		if url == "" {
			return fmt.Errorf("%w for %q", artwork.ErrNoArtwork, term)
		}
		fmt.Println(url)

		if !artworkShow {
			return nil
		}
		img, err := artwork.FetchImage(cmd.Context(), d.http, url)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, row := range artwork.RenderHalfBlock(img, 32, 16) {
			fmt.Println(row)
		}
		return nil
	},
}

func init() {
	artworkCmd.Flags().BoolVarP(&artworkShow, "show", "s", false, "render the cover in the terminal")
	rootCmd.AddCommand(artworkCmd)
}
