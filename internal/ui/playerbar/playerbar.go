package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/ui/render"
	"github.com/llehouerou/deck/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Cover placeholder and metadata
)

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	stopSymbol   = "■"
	repeatSymbol = "🔁"
)

// State holds everything needed to render the player bar.
type State struct {
	Status      playback.State
	Index       int // 0-based, -1 when nothing was played
	Total       int
	Name        string
	Artist      string
	Album       string
	Cover       string
	Position    time.Duration
	Duration    time.Duration
	Volume      float64
	Repeat      bool
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 7 // 5 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// NewState snapshots the controller for rendering.
func NewState(svc playback.Service, mode DisplayMode) State {
	s := State{
		Status:      svc.State(),
		Index:       -1,
		Total:       svc.Len(),
		Volume:      svc.Volume(),
		Repeat:      svc.Repeat(),
		DisplayMode: mode,
	}
	if np, ok := svc.NowPlaying(); ok {
		s.ApplyNowPlaying(np)
	}
	pos := svc.Position()
	s.Position, s.Duration = pos.Elapsed, pos.Duration
	return s
}

// ApplyNowPlaying copies the now-playing metadata into s.
func (s *State) ApplyNowPlaying(np playback.NowPlaying) {
	s.Index = np.Index
	s.Name = np.Track.Name
	s.Artist = np.Artist
	s.Album = np.Album
	s.Cover = np.Cover
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	if s.DisplayMode == ModeExpanded && width-2 >= minExpandedInner {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func statusSymbol(st playback.State) string {
	switch st {
	case playback.StatePlaying:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	default:
		return stopSymbol
	}
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0) // border and padding
	st := styles.T().S()

	if s.Name == "" {
		hint := st.Subtle.Render("Nothing playing. Press a to add files.")
		return styles.PanelStyle(false).Padding(0, 2).Width(max(width-2, 0)).Render(hint)
	}

	right := fmt.Sprintf("%s / %s   %s", render.Duration(s.Position), render.Duration(s.Duration), RenderVolume(s.Volume))
	if s.Repeat {
		right = repeatSymbol + "  " + right
	}
	rightWidth := lipgloss.Width(right)

	info := strings.Join([]string{s.Artist, s.Album}, " · ")
	status := statusSymbol(s.Status) + "  "

	// Title gets up to half the leftover space; the bar takes the rest
	avail := innerWidth - lipgloss.Width(status) - rightWidth - 6
	titleWidth := min(lipgloss.Width(s.Name), max(avail/2, 8))
	title := render.Truncate(s.Name, titleWidth)
	infoWidth := min(lipgloss.Width(info), max(avail-titleWidth-MinBarWidth-3, 0))

	var line strings.Builder
	line.WriteString(status)
	line.WriteString(st.Title.Render(title))
	if infoWidth > 1 {
		line.WriteString("   ")
		line.WriteString(st.Muted.Render(render.Truncate(info, infoWidth)))
	}
	line.WriteString("   ")

	barWidth := max(innerWidth-lipgloss.Width(line.String())-rightWidth-3, MinBarWidth)
	line.WriteString(RenderProgressBar(s.Position, s.Duration, barWidth))
	line.WriteString("   ")
	line.WriteString(st.Muted.Render(right))

	// Never wrap: on narrow terminals the tail is cut
	content := ansi.Truncate(line.String(), innerWidth, "")
	return styles.PanelStyle(false).Padding(0, 2).Width(max(width-2, 0)).Render(content)
}
