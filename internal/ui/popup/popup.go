package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/deck/internal/ui/styles"
)

// RenderBordered wraps content in a rounded border of the given width and
// centers it on a screenW x screenH canvas.
func RenderBordered(content string, width, screenW, screenH int) string {
	width = min(width, screenW-4)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(1, 2).
		Width(max(width-2, 0)).
		Render(content)
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}

// Compose draws the visible part of overlay on top of base. Cells where the
// overlay line is blank keep the base content. Both are ANSI-aware.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(plain) - len(trimmed) // leading spaces are one cell each
		end := start + ansi.StringWidth(strings.TrimRight(trimmed, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}
		baseLines[i] = ansi.Cut(under, 0, start) +
			ansi.Cut(line, start, end) +
			ansi.Cut(under, end, width)
	}
	return strings.Join(baseLines, "\n")
}
