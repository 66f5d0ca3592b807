// Package playlistpanel renders the playlist sidebar.
package playlistpanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/ui"
)

// Model represents the playlist panel state. It holds a copy of the
// playlist taken from the last QueueChange.
type Model struct {
	ui.Base
	tracks  []playback.Track
	playing int
	cursor  int
	offset  int
}

// New creates an empty playlist panel.
func New() Model {
	return Model{playing: -1}
}

// SetTracks replaces the displayed playlist.
func (m *Model) SetTracks(tracks []playback.Track, playing int) {
	m.tracks = tracks
	m.playing = playing
	if m.cursor >= len(tracks) {
		m.cursor = max(len(tracks)-1, 0)
	}
	m.ensureCursorVisible()
}

// SetPlaying marks the track at index as playing and moves the cursor to it.
func (m *Model) SetPlaying(index int) {
	m.playing = index
	if index >= 0 && index < len(m.tracks) {
		m.cursor = index
		m.ensureCursorVisible()
	}
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

// Len returns the number of displayed tracks.
func (m Model) Len() int {
	return len(m.tracks)
}

// Update handles messages for the playlist panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
		m.offset = 0
	case "G", "end":
		m.moveCursor(len(m.tracks))
	case "ctrl+d", "pgdown":
		m.moveCursor(m.listHeight() / 2)
	case "ctrl+u", "pgup":
		m.moveCursor(-m.listHeight() / 2)
	case "enter":
		if m.cursor < len(m.tracks) {
			index := m.cursor
			return m, func() tea.Msg {
				return ActionMsg(PlayTrack{Index: index})
			}
		}
	}

	return m, nil
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

func (m *Model) moveCursor(delta int) {
	if len(m.tracks) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.tracks)-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls so the cursor keeps ScrollMargin rows of
// context when the list allows it.
func (m *Model) ensureCursorVisible() {
	height := m.listHeight()
	if height <= 0 {
		return
	}
	margin := min(ui.ScrollMargin, (height-1)/2)

	if m.cursor < m.offset+margin {
		m.offset = m.cursor - margin
	}
	if m.cursor >= m.offset+height-margin {
		m.offset = m.cursor - height + margin + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.tracks)-height, 0))
}
