// Package addfiles provides the popup where the user picks audio files to
// append to the playlist.
package addfiles

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/deck/internal/ui"
	"github.com/llehouerou/deck/internal/ui/popup"
	"github.com/llehouerou/deck/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Accent)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Model is the add-files popup. The input accepts a file, a directory or a
// glob pattern, relative to the start folder.
type Model struct {
	ui.Base
	input textinput.Model
	dir   string
}

// New creates the popup.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "~/Music/album or *.flac"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	return Model{input: ti}
}

// Start resets the input and sets the folder relative paths resolve from.
// An empty dir means the working directory.
func (m *Model) Start(dir string, width, height int) {
	m.dir = dir
	m.input.Reset()
	m.input.Focus()
	m.SetSize(width, height)
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = max(width-4, 10)
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.input.Blur()
			return m, func() tea.Msg {
				return ActionMsg(Result{Canceled: true})
			}
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			paths := Expand(m.dir, text)
			m.input.Blur()
			return m, func() tea.Msg {
				return ActionMsg(Result{Paths: paths})
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	dir := m.dir
	if dir == "" {
		dir = "."
	}
	return titleStyle().Render("Add files") + "\n" +
		hintStyle().Render("from "+dir) + "\n\n" +
		m.input.View() + "\n\n" +
		hintStyle().Render("Enter: add, Esc: cancel")
}

// Expand resolves text against dir. A leading ~ is the home directory; a
// glob pattern expands to its sorted matches. Text that matches nothing is
// returned as a single path so the caller can report it.
func Expand(dir, text string) []string {
	path := text
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}

	if strings.ContainsAny(path, "*?[") {
		if matches, err := filepath.Glob(path); err == nil && len(matches) > 0 {
			return matches
		}
	}
	return []string{path}
}
