package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/ui/render"
	"github.com/llehouerou/deck/internal/ui/styles"
)

// MinBarWidth is the narrowest progress bar worth drawing.
const MinBarWidth = 5

const (
	filledCell = "━"
	emptyCell  = "─"
)

// RenderProgressBar draws a bar of width cells filled to position/duration.
// The filled part fades from the accent color across the whole bar, so a
// cell keeps its color as playback advances.
func RenderProgressBar(position, duration time.Duration, width int) string {
	width = max(width, 0)
	filled := filledCells(position, duration, width)
	t := styles.T()

	var b strings.Builder
	for _, c := range styles.Blend(width, t.Accent, t.AccentEnd)[:filled] {
		b.WriteString(t.S().ProgressFilled.Foreground(c).Render(filledCell))
	}
	b.WriteString(t.S().ProgressEmpty.Render(strings.Repeat(emptyCell, width-filled)))
	return b.String()
}

func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || width <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(max(int(float64(width)*ratio), 0), width)
}

// RenderTimeline renders "▶  1:23  ━━━───  4:56" in width cells. Below the
// minimum bar width only the times are shown.
func RenderTimeline(status playback.State, position, duration time.Duration, width int) string {
	symbol := statusSymbol(status)
	pos := render.Duration(position)
	dur := render.Duration(duration)

	fixed := lipgloss.Width(symbol) + 2 + lipgloss.Width(pos) + 2 + 2 + lipgloss.Width(dur)
	barWidth := width - fixed
	if barWidth < MinBarWidth {
		return symbol + "  " + pos + " / " + dur
	}
	return symbol + "  " + pos + "  " + RenderProgressBar(position, duration, barWidth) + "  " + dur
}

// SeekFraction maps a cell clicked or selected on a bar of width cells to a
// track fraction in [0, 1].
func SeekFraction(cell, width int) float64 {
	if width <= 1 {
		return 0
	}
	return min(max(float64(cell)/float64(width-1), 0), 1)
}
