package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/errmsg"
	"github.com/llehouerou/deck/internal/ui/action"
	"github.com/llehouerou/deck/internal/ui/addfiles"
	"github.com/llehouerou/deck/internal/ui/playlistpanel"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if pm, ok := msg.(PlaybackMessage); ok {
		return m.handlePlaybackMsg(pm)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case action.Msg:
		return m.handleAction(msg)

	case FilesLoadedMsg:
		return m.handleFilesLoaded(msg)

	case StderrMsg:
		cmd := m.setStatus(msg.Line, true)
		return m, tea.Batch(cmd, m.WatchStderr())

	case NotifiedMsg:
		m.notifyID = msg.ID
		return m, nil

	case StatusTimeoutMsg:
		if msg.Version == m.Status.Version {
			m.Status = Status{Version: m.Status.Version}
		}
		return m, nil
	}

	// Cursor blink and other component messages.
	if m.ShowAddFiles {
		_, cmd := m.AddFiles.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case playlistpanel.PlayTrack:
		cmd := m.reportErr(errmsg.OpPlaybackStart, m.Playback.PlayAt(a.Index))
		return m, cmd

	case addfiles.Result:
		m.ShowAddFiles = false
		if a.Canceled || len(a.Paths) == 0 {
			return m, nil
		}
		return m, LoadFilesCmd(a.Paths)
	}
	return m, nil
}

func (m Model) handleFilesLoaded(msg FilesLoadedMsg) (tea.Model, tea.Cmd) {
	res := m.Playback.AddTracks(msg.Entries...)

	var bytes int64
	for _, e := range msg.Entries {
		bytes += e.Size
	}
	for _, e := range res.Skipped {
		bytes -= e.Size
	}

	var cmd tea.Cmd
	if len(msg.Errors) > 0 && len(res.Added) == 0 {
		cmd = m.setStatus(errmsg.Format(errmsg.OpFileLoad, msg.Errors[0]), true)
	} else {
		summary := addfiles.Summary(len(res.Added), bytes, len(res.Skipped), len(msg.Errors))
		cmd = m.setStatus(summary, false)
	}
	return m, cmd
}

// setStatus shows text on the status line and schedules its removal.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.Status = Status{
		Text:    text,
		IsError: isError,
		Version: m.Status.Version + 1,
	}
	return StatusTimeoutCmd(m.Status.Version)
}
