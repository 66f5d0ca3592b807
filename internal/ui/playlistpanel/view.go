package playlistpanel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/ui"
	"github.com/llehouerou/deck/internal/ui/render"
	"github.com/llehouerou/deck/internal/ui/styles"
)

const playingSymbol = "▶"

// View renders the playlist panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.listHeight()

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders "Playlist (2/5)"; the position is 0 before play.
func (m Model) renderHeader(innerWidth int) string {
	text := fmt.Sprintf("Playlist (%d/%d)", max(m.playing+1, 0), len(m.tracks))
	return styles.T().S().Title.Render(render.TruncateAndPad(text, innerWidth))
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	if len(m.tracks) == 0 {
		lines := make([]string, listHeight)
		for i := range lines {
			lines[i] = render.EmptyLine(innerWidth)
		}
		if listHeight > 0 {
			lines[0] = styles.T().S().Subtle.Render(render.TruncateAndPad("  No tracks. Press a to add.", innerWidth))
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.tracks) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.tracks[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders "▶ name            FLAC".
func (m Model) renderTrackLine(track playback.Track, idx, width int) string {
	prefix := "  "
	if idx == m.playing {
		prefix = playingSymbol + " "
	}

	format := formatLabel(track)
	nameWidth := max(width-2-len(format)-1, 0)
	line := prefix + render.TruncateAndPad(track.Name, nameWidth) + " " + format

	return m.trackStyle(idx).Render(render.TruncateAndPad(line, width))
}

func (m Model) trackStyle(idx int) lipgloss.Style {
	st := styles.T().S()
	isCursor := idx == m.cursor && m.IsFocused()
	isPlaying := idx == m.playing

	switch {
	case isCursor && isPlaying:
		return st.Cursor.Inherit(st.Playing)
	case isCursor:
		return st.Cursor
	case isPlaying:
		return st.Playing
	default:
		return st.Base
	}
}

// formatLabel is the short upper-case format shown next to a track, taken
// from the file extension.
func formatLabel(t playback.Track) string {
	ext := strings.TrimPrefix(filepath.Ext(t.Name), ".")
	if ext == "" || len(ext) > 4 {
		return "    "
	}
	return fmt.Sprintf("%-4s", strings.ToUpper(ext))
}
