package app

import (
	"github.com/llehouerou/deck/internal/ui"
	"github.com/llehouerou/deck/internal/ui/playerbar"
)

const statusLineHeight = 1

// sidebarWidth is the playlist width: a third of the screen, but never so
// narrow that names become unreadable nor wider than the screen.
func (m Model) sidebarWidth() int {
	w := max(m.Width/ui.SidebarWidthDivisor, ui.MinSidebarWidth)
	return min(w, m.Width)
}

// bodyHeight is the height left above the player bar and status line.
func (m Model) bodyHeight() int {
	return max(m.Height-playerbar.Height(m.Bar.DisplayMode)-statusLineHeight, 0)
}

// resize propagates the terminal size to the components.
func (m *Model) resize() {
	m.Playlist.SetSize(m.sidebarWidth(), m.bodyHeight())
	if m.ShowAddFiles {
		m.AddFiles.SetSize(popupWidth-6, popupRows)
	}
}
