// Package app wires the playback controller to the terminal UI.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/upload"
)

// PlaybackMessage is implemented by messages carrying controller events.
// Every handler for one re-arms the event watcher.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// ServiceStateChangedMsg is sent when playback state changes.
type ServiceStateChangedMsg playback.StateChange

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg is sent when a session starts on a track.
type ServiceTrackChangedMsg playback.TrackChange

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServiceQueueChangedMsg is sent when tracks are added or shuffled.
type ServiceQueueChangedMsg playback.QueueChange

func (ServiceQueueChangedMsg) playbackMessage() {}

// ServiceModeChangedMsg is sent when volume or repeat changes.
type ServiceModeChangedMsg playback.ModeChange

func (ServiceModeChangedMsg) playbackMessage() {}

// ServicePositionMsg carries a position update from the reporter.
type ServicePositionMsg playback.PositionChange

func (ServicePositionMsg) playbackMessage() {}

// ServiceErrorMsg is sent when the controller reports an error.
type ServiceErrorMsg playback.ErrorEvent

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the controller subscription is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}

// FilesLoadedMsg carries the entries read from the paths the user picked.
type FilesLoadedMsg struct {
	Entries []upload.FileEntry
	Errors  []error
}

// StatusTimeoutMsg clears the status line. Version ignores timeouts for
// messages that were already replaced.
type StatusTimeoutMsg struct {
	Version int
}

// NotifiedMsg carries the ID of the last desktop notification so the next
// one replaces it.
type NotifiedMsg struct {
	ID uint32
}

// StderrMsg carries a line a native library wrote to stderr.
type StderrMsg struct {
	Line string
}
