package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"karolbroda.com/lyricsync/internal/nowplaying"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.tickCount++
		m.session.Tick()
		cmd = tickCmd(m.cfg.Settings.TickInterval)

	case reconcileMsg:
		cmd = tea.Batch(m.pollCmd(false), reconcileCmd(m.cfg.ReconcileInterval))

	case snapshotMsg:
		cmd = m.handleSnapshot(msg)

	case lyricsMsg:
		m.session.AttachLyrics(msg.gen, msg.doc, msg.err)

	case artworkMsg:
		m.handleArtwork(msg)

	default:
		return m, nil
	}

	m.frame = m.session.Frame()
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m, m.pollCmd(true)
	}

	return m, nil
}

func (m *Model) handleSnapshot(msg snapshotMsg) tea.Cmd {
	var change nowplaying.Change
	if msg.refresh {
		change = m.session.Refresh(msg.snap)
	} else {
		change = m.session.Observe(msg.snap)
	}

	if change.TrackChanged {
		m.resetForNewTrack()
	}
	if !change.NeedsFetch() {
		return nil
	}

	return tea.Batch(
		m.fetchLyricsCmd(change.Generation, msg.snap),
		m.fetchArtworkCmd(change.Generation, msg.snap),
	)
}

func (m *Model) handleArtwork(msg artworkMsg) {
	if !m.session.AttachArtwork(msg.gen, msg.url) {
		return
	}
	if msg.img != nil {
		m.image = msg.img
	}
	if msg.palette != nil {
		m.palette = msg.palette
	}
}
