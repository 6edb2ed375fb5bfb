package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"

	"karolbroda.com/lyricsync/internal/artwork"
	"karolbroda.com/lyricsync/internal/colors"
	"karolbroda.com/lyricsync/internal/nowplaying"
	"karolbroda.com/lyricsync/internal/terminal"
	"karolbroda.com/lyricsync/internal/track"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.width, m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	palette := m.palette
	if palette == nil {
		palette = artwork.DefaultPalette()
	}

	if m.frame.Track == nil {
		return renderWaitingScreen(palette, m.frame.Message(), m.tickCount, width, height)
	}

	return m.renderMainScreen(palette, width, height)
}

func renderWaitingScreen(palette *artwork.Palette, message string, tick int, width, height int) string {
	var block []string
	if height >= 12 && width >= 50 {
		for _, row := range banner() {
			block = append(block, colors.RenderGradientText(row, palette.Gradient, true))
		}
		block = append(block, "")
	}

	msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Italic(true)
	block = append(block, msgStyle.Render(message))

	pulse := []string{"·", "•", "●", "•"}
	pulseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Secondary))
	block = append(block, pulseStyle.Render(pulse[tick%len(pulse)]))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, block...))
}

func banner() []string {
	rows := figure.NewFigure("lyricsync", "standard", true).Slicify()
	out := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(row) != "" {
			out = append(out, row)
		}
	}
	return out
}

func (m Model) renderMainScreen(palette *artwork.Palette, width, height int) string {
	header := renderHeader(headerParams{
		palette:  palette,
		snap:     m.frame.Track,
		image:    m.image,
		kitty:    m.cfg.Caps.KittyGraphics,
		position: m.frame.Position,
		duration: m.frame.Duration,
		width:    width,
		height:   height,
	})
	lines := append([]string{}, header...)
	bodyHeight := max(height-len(header), 1)

	switch m.frame.Status {
	case nowplaying.StatusSynced:
		lines = append(lines, renderSyncedLyrics(palette, m.frame, bodyHeight, width)...)
	case nowplaying.StatusPlain:
		lines = append(lines, renderStaticText(palette, m.frame.Text, 0, bodyHeight, width)...)
	case nowplaying.StatusLoading:
		spin := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Secondary)).Render(spinnerFrames[m.tickCount%len(spinnerFrames)])
		text := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Render(" " + m.frame.Message())
		lines = append(lines, renderCentered(spin+text, bodyHeight, width)...)
	case nowplaying.StatusFailed:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
		lines = append(lines, renderCentered(style.Render(m.frame.Message()), bodyHeight, width)...)
	default:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Italic(true)
		lines = append(lines, renderCentered(style.Render(m.frame.Message()), bodyHeight, width)...)
	}

	return fitHeight(lines, height)
}

type headerParams struct {
	palette  *artwork.Palette
	snap     *track.Snapshot
	image    image.Image
	kitty    bool
	position float64
	duration float64
	width    int
	height   int
}

// renderHeader draws the cover beside the track info, then the progress bar.
func renderHeader(p headerParams) []string {
	lines := []string{""}

	artWidth, artHeight := 12, 6
	if p.width < 80 {
		artWidth, artHeight = 8, 4
	}
	if p.width < 50 || p.height < 25 || p.image == nil {
		artWidth, artHeight = 0, 0
	}

	info := renderTrackInfo(p.palette, p.snap, p.width)

	if kitty := kittyArt(p, artWidth, artHeight); kitty != "" {
		lines = append(lines, "  "+kitty)
		for i := 0; i < artHeight-1; i++ {
			lines = append(lines, "  ")
		}
		for _, row := range info {
			lines = append(lines, "  "+row)
		}
	} else {
		art := artwork.RenderHalfBlock(p.image, artWidth, artHeight)
		if len(art) == 0 {
			artWidth = 0
		}
		rows := max(len(art), len(info))
		for i := 0; i < rows; i++ {
			var line strings.Builder
			switch {
			case i < len(art):
				line.WriteString("  " + art[i] + "  ")
			case artWidth > 0:
				line.WriteString(strings.Repeat(" ", artWidth+4))
			default:
				line.WriteString("  ")
			}
			if i < len(info) {
				line.WriteString(info[i])
			}
			lines = append(lines, line.String())
		}
	}

	lines = append(lines, "")
	if p.duration > 0 {
		lines = append(lines, renderProgress(p.palette, p.position, p.duration, p.width), "")
	}
	return lines
}

func kittyArt(p headerParams, cols, rows int) string {
	if !p.kitty || cols == 0 {
		return ""
	}
	return terminal.EncodeKitty(p.image, cols, rows)
}

func renderTrackInfo(palette *artwork.Palette, snap *track.Snapshot, width int) []string {
	if snap == nil {
		return nil
	}

	maxWidth := max(width-20, 20)

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Primary)).Bold(true)
	artistStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Secondary))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim))

	lines := []string{
		titleStyle.Render(truncate(snap.Name, maxWidth)),
		artistStyle.Render(truncate(snap.Artist, maxWidth)),
	}
	if snap.Album != "" {
		lines = append(lines, dimStyle.Render(truncate(snap.Album, maxWidth)))
	}

	if snap.State == "" {
		return lines
	}

	state := "▶ playing"
	if !snap.IsPlaying() {
		state = "❚❚ paused"
	}
	if snap.App != "" {
		state += " · " + string(snap.App)
	}
	return append(lines, dimStyle.Faint(true).Render(state))
}

func renderProgress(palette *artwork.Palette, position, duration float64, width int) string {
	barWidth := max(width-20, 20)

	progress := min(max(position/duration, 0), 1)
	filled := int(float64(barWidth) * progress)

	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Primary))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim)).Faint(true)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Dim))

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			bar.WriteString(filledStyle.Render("━"))
		case i == filled:
			bar.WriteString(filledStyle.Render("●"))
		default:
			bar.WriteString(emptyStyle.Render("─"))
		}
	}

	return fmt.Sprintf("  %s  %s  %s",
		timeStyle.Render(colors.FormatTime(min(position, duration))),
		bar.String(),
		timeStyle.Render(colors.FormatTime(duration)))
}

// renderSyncedLyrics centres the current line with fading neighbours above
// and below it.
func renderSyncedLyrics(palette *artwork.Palette, f nowplaying.Frame, height, width int) []string {
	around := 2
	if height < 12 {
		around = 1
	}

	var block []string
	for offset := -around; offset <= around; offset++ {
		if offset == 0 {
			block = append(block, colors.RenderGradientText(truncate(f.Current, width-4), palette.Gradient, true))
			continue
		}

		idx := f.LineIndex + offset
		text := ""
		if idx >= 0 && idx < len(f.Lines) {
			text = f.Lines[idx].Text
			if text == "" {
				text = "···"
			}
		}

		fade := 0.55
		if offset < -1 || offset > 1 {
			fade = 0.3
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Blend("#000000", palette.Secondary, fade)))
		if offset < 0 {
			style = style.Faint(true)
		}
		block = append(block, style.Render(truncate(text, width-4)))
	}

	spaced := make([]string, 0, len(block)*2)
	for i, row := range block {
		if i > 0 {
			spaced = append(spaced, "")
		}
		spaced = append(spaced, lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
	}
	return padVertical(spaced, height)
}

// renderStaticText wraps text to the screen and shows it from line offset.
func renderStaticText(palette *artwork.Palette, text string, offset, height, width int) []string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Secondary)).
		Width(max(width-4, 10)).
		PaddingLeft(2)

	rows := strings.Split(style.Render(text), "\n")
	offset = min(max(offset, 0), max(len(rows)-1, 0))
	rows = rows[offset:]
	if len(rows) > height {
		rows = rows[:height]
	}
	return rows
}

func renderCentered(text string, height, width int) []string {
	return padVertical([]string{lipgloss.PlaceHorizontal(width, lipgloss.Center, text)}, height)
}

func padVertical(block []string, height int) []string {
	top := max((height-len(block))/2, 0)
	out := make([]string, 0, height)
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	return append(out, block...)
}

func fitHeight(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, maxWidth int) string {
	if maxWidth <= 1 || lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > maxWidth-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
