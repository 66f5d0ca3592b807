package playerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/deck/internal/ui/render"
	"github.com/llehouerou/deck/internal/ui/styles"
)

const (
	coverCols        = 11
	contentRows      = 5 // Must match Height(ModeExpanded) - 2 for borders
	minExpandedInner = 40
)

// renderExpanded draws a cover box on the left and metadata on the right:
//
//	╭─────────╮  Artist
//	│         │  Album
//	│    ♫    │  03/12  track.flac
//	│         │
//	╰─────────╯  ▶  1:23  ━━━━━──────  4:56   🔁  ♪ 80%
func renderExpanded(s State, width int) string {
	innerWidth := max(width-2, 0)
	metaWidth := innerWidth - coverCols - 2
	st := styles.T().S()

	name := s.Name
	if name == "" {
		name = "Nothing playing"
	}
	position := ""
	if s.Index >= 0 {
		position = fmt.Sprintf("%02d/%02d  ", s.Index+1, s.Total)
	}

	tail := RenderVolume(s.Volume)
	if s.Repeat {
		tail = repeatSymbol + "  " + tail
	}
	progressWidth := max(metaWidth-lipgloss.Width(tail)-3, 0)

	meta := []string{
		st.Muted.Render(render.TruncateAndPad(s.Artist, metaWidth)),
		st.Muted.Render(render.TruncateAndPad(s.Album, metaWidth)),
		st.Title.Render(render.TruncateAndPad(position+name, metaWidth)),
		"",
		RenderTimeline(s.Status, s.Position, s.Duration, progressWidth) + "   " + st.Muted.Render(tail),
	}

	cover := renderCover(s.Cover)
	lines := make([]string, contentRows)
	for i := range contentRows {
		lines[i] = cover[i] + "  " + meta[i]
	}

	return styles.PanelStyle(false).Width(innerWidth).Render(strings.Join(lines, "\n"))
}

// renderCover draws the placeholder cover glyph centered in a small box.
func renderCover(glyph string) []string {
	inner := coverCols - 2
	border := lipgloss.NewStyle().Foreground(styles.T().Border)
	glyph = render.Truncate(glyph, inner)
	left := (inner - lipgloss.Width(glyph)) / 2
	middle := strings.Repeat(" ", left) + glyph
	middle = render.Pad(middle, inner)

	blank := strings.Repeat(" ", inner)
	return []string{
		border.Render("╭" + strings.Repeat("─", inner) + "╮"),
		border.Render("│") + blank + border.Render("│"),
		border.Render("│") + styles.T().S().Playing.Render(middle) + border.Render("│"),
		border.Render("│") + blank + border.Render("│"),
		border.Render("╰" + strings.Repeat("─", inner) + "╯"),
	}
}
