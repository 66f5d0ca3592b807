package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/deck/internal/ui"
	"github.com/llehouerou/deck/internal/ui/playerbar"
	"github.com/llehouerou/deck/internal/ui/popup"
	"github.com/llehouerou/deck/internal/ui/render"
	"github.com/llehouerou/deck/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	body := m.Playlist.View()
	if mainWidth := m.Width - m.sidebarWidth(); mainWidth > ui.BorderHeight {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderNowPlaying(mainWidth, m.bodyHeight()))
	}

	view := body + "\n" +
		playerbar.Render(m.Bar, m.Width) + "\n" +
		m.renderStatusLine()

	if m.ShowAddFiles {
		overlay := popup.RenderBordered(m.AddFiles.View(), popupWidth, m.Width, m.Height)
		view = popup.Compose(view, overlay, m.Width)
	}
	return view
}

// renderNowPlaying renders the panel next to the playlist: the current
// track and the key map.
func (m Model) renderNowPlaying(width, height int) string {
	if height <= ui.BorderHeight {
		return ""
	}
	innerWidth := width - ui.BorderHeight
	innerHeight := height - ui.BorderHeight
	st := styles.T().S()

	var lines []string
	lines = append(lines,
		styles.ApplyBoldGradient("Now playing", styles.T().Accent, styles.T().AccentEnd),
		render.Separator(innerWidth),
	)
	if m.Bar.Name == "" {
		lines = append(lines, st.Subtle.Render(render.TruncateAndPad("Nothing playing", innerWidth)))
	} else {
		lines = append(lines,
			render.TruncateAndPad(m.Bar.Cover+" "+m.Bar.Name, innerWidth),
			st.Muted.Render(render.TruncateAndPad(m.Bar.Artist, innerWidth)),
			st.Muted.Render(render.TruncateAndPad(m.Bar.Album, innerWidth)),
			render.TruncateAndPad(fmt.Sprintf("%s  %d/%d", m.Bar.Status, m.Bar.Index+1, m.Bar.Total), innerWidth),
		)
	}
	repeat := "off"
	if m.Bar.Repeat {
		repeat = "on"
	}
	lines = append(lines,
		render.Row(playerbar.RenderVolume(m.Bar.Volume), "repeat "+repeat, innerWidth),
		"",
		st.Title.Render(render.TruncateAndPad("Keys", innerWidth)),
		render.Separator(innerWidth),
	)
	for _, h := range m.Keys.Help("playback", "global") {
		lines = append(lines, render.Row(st.Muted.Render(h.Description), h.Keys, innerWidth))
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, innerWidth, "")
	}

	return styles.PanelStyle(m.Focus == FocusPlayer).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}
