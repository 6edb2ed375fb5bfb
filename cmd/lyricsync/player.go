package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/track"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "now-playing bridge utilities",
	Long:  `inspect what the operating system reports as playing.`,
}

var playerCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "show the current track",
	Long:  `query Spotify and Music through the platform bridge and print the track that would be shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := newTrackSource()
		if err != nil {
			return err
		}

		snap, err := source.Current(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(snap)
		}
		printSnapshot(snap)
		return nil
	},
}

func init() {
	playerCmd.AddCommand(playerCurrentCmd)
	rootCmd.AddCommand(playerCmd)
}

func printSnapshot(snap *track.Snapshot) {
	fmt.Printf("  title:    %s\n", snap.Name)
	fmt.Printf("  artist:   %s\n", snap.Artist)
	if snap.Album != "" {
		fmt.Printf("  album:    %s\n", snap.Album)
	}
	fmt.Printf("  position: %s / %s\n", colors.FormatTime(snap.Position), colors.FormatTime(snap.Duration))
	fmt.Printf("  state:    %s\n", snap.State)
	fmt.Printf("  app:      %s\n", snap.App)
	if snap.ArtworkURL != "" {
		fmt.Printf("  artwork:  %s\n", snap.ArtworkURL)
	}
}
