package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the color palette and the styles derived from it.
type Theme struct {
	Accent    lipgloss.Color // playing track, progress, focused borders
	AccentEnd lipgloss.Color // far end of the progress gradient

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Base           lipgloss.Style
	Muted          lipgloss.Style
	Subtle         lipgloss.Style
	Title          lipgloss.Style
	Playing        lipgloss.Style
	Cursor         lipgloss.Style
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	Success        lipgloss.Style
	Error          lipgloss.Style
}

var defaultTheme = Theme{
	Accent:    lipgloss.Color("#5fafd7"),
	AccentEnd: lipgloss.Color("#af87d7"),

	FgBase:   lipgloss.Color("#c6c6c6"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#5fafd7"),

	Success: lipgloss.Color("#5faf5f"),
	Error:   lipgloss.Color("#d75f5f"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	accent := lipgloss.NewStyle().Foreground(t.Accent)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: accent.Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		ProgressFilled: accent,
		ProgressEmpty:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Success:        lipgloss.NewStyle().Foreground(t.Success),
		Error:          lipgloss.NewStyle().Foreground(t.Error),
	}
}
