package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"karolbroda.com/lyricsync/internal/lyrics"
)

var ErrNoResults = errors.New("no results to choose from")

// Pick asks the user to choose one of docs.
func Pick(docs []lyrics.Document) (*lyrics.Document, error) {
	if len(docs) == 0 {
		return nil, ErrNoResults
	}

	options := make([]huh.Option[int], 0, len(docs))
	for i, doc := range docs {
		options = append(options, huh.NewOption(ResultLabel(doc), i))
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select lyrics").
				Description("The chosen lyrics are printed as plain text").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &docs[selected], nil
}
