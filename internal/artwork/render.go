package artwork

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"karolbroda.com/lyricsync/internal/colors"
)

// RenderHalfBlock draws img as width x height terminal cells, two pixels per
// cell using the upper half block with separate fore and background colors.
func RenderHalfBlock(img image.Image, width, height int) []string {
	if img == nil || width < 4 || height < 2 {
		return nil
	}

	scaled := resize.Resize(uint(width), uint(height*2), img, resize.Lanczos3)
	b := scaled.Bounds()

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		top := b.Min.Y + y*2
		bottom := top + 1
		if bottom >= b.Max.Y {
			bottom = top
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb, ta := scaled.At(x, top).RGBA()
			br, bg, bb, ba := scaled.At(x, bottom).RGBA()

			if ta>>8 < 128 && ba>>8 < 128 {
				row.WriteByte(' ')
				continue
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(colors.RGBToHex(int(tr>>8), int(tg>>8), int(tb>>8)))).
				Background(lipgloss.Color(colors.RGBToHex(int(br>>8), int(bg>>8), int(bb>>8))))
			row.WriteString(style.Render("▀"))
		}
		rows[y] = row.String()
	}
	return rows
}
