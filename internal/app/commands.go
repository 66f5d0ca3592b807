package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/notify"
	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/upload"
)

const statusTimeout = 4 * time.Second

// WatchServiceEvents returns a command that waits for the next controller
// event and converts it to a tea.Msg.
func (m Model) WatchServiceEvents() tea.Cmd {
	sub := m.playbackSub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}

// WatchStderr returns a command that waits for the next captured stderr
// line. It returns nil when nothing is captured.
func (m Model) WatchStderr() tea.Cmd {
	lines := m.StderrLines
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	}
}

// LoadFilesCmd reads the given paths off the UI goroutine.
func LoadFilesCmd(paths []string) tea.Cmd {
	return func() tea.Msg {
		entries, errs := upload.FromPaths(paths...)
		return FilesLoadedMsg{Entries: entries, Errors: errs}
	}
}

// StatusTimeoutCmd returns a command that sends StatusTimeoutMsg after
// statusTimeout.
func StatusTimeoutCmd(version int) tea.Cmd {
	return tea.Tick(statusTimeout, func(_ time.Time) tea.Msg {
		return StatusTimeoutMsg{Version: version}
	})
}

const notifyTimeout = 5000 // ms

// notifyTrackCmd announces np on the desktop, replacing the previous
// announcement. Failures are ignored.
func (m Model) notifyTrackCmd(np playback.NowPlaying) tea.Cmd {
	if m.Notifier == nil {
		return nil
	}
	n := notify.Notification{
		Title:      np.Track.Name,
		Body:       np.Artist + " · " + np.Album,
		Icon:       "audio-x-generic",
		Timeout:    notifyTimeout,
		ReplacesID: m.notifyID,
		Urgency:    notify.UrgencyLow,
	}
	notifier := m.Notifier
	return func() tea.Msg {
		id, err := notifier.Notify(n)
		if err != nil || id == 0 {
			return nil
		}
		return NotifiedMsg{ID: id}
	}
}
