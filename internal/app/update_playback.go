package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/errmsg"
	"github.com/llehouerou/deck/internal/playback"
)

// handlePlaybackMsg applies a controller event and re-arms the watcher.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case ServiceStateChangedMsg:
		m.Bar.Status = msg.Current
		if msg.Current == playback.StateStopped {
			pos := m.Playback.Position()
			m.Bar.Position, m.Bar.Duration = pos.Elapsed, pos.Duration
		}

	case ServiceTrackChangedMsg:
		m.Bar.ApplyNowPlaying(msg.Current)
		pos := m.Playback.Position()
		m.Bar.Position, m.Bar.Duration = pos.Elapsed, pos.Duration
		m.Playlist.SetPlaying(msg.Index)
		cmd = m.notifyTrackCmd(msg.Current)

	case ServiceQueueChangedMsg:
		m.Playlist.SetTracks(msg.Tracks, msg.Index)
		m.Bar.Total = len(msg.Tracks)
		if msg.Index >= 0 {
			m.Bar.Index = msg.Index
		}

	case ServiceModeChangedMsg:
		m.Bar.Volume = msg.Volume
		m.Bar.Repeat = msg.Repeat
		m.savePreferences()

	case ServicePositionMsg:
		m.Bar.Position, m.Bar.Duration = msg.Elapsed, msg.Duration

	case ServiceErrorMsg:
		cmd = m.setStatus(formatServiceError(playback.ErrorEvent(msg)), true)

	case ServiceClosedMsg:
		m.playbackSub = nil
		return m, tea.Quit
	}

	return m, tea.Batch(cmd, m.WatchServiceEvents())
}

// formatServiceError maps a controller error event to a status message.
func formatServiceError(e playback.ErrorEvent) string {
	var op errmsg.Op
	switch e.Operation {
	case playback.OpAdd:
		op = errmsg.OpTrackAdd
	case playback.OpPlay:
		op = errmsg.OpPlaybackStart
	case playback.OpDecode:
		op = errmsg.OpPlaybackDecode
	case playback.OpSeek:
		op = errmsg.OpPlaybackSeek
	default:
		op = errmsg.Op(e.Operation)
	}
	if e.Track != nil {
		return errmsg.FormatWith(op, e.Track.Name, e.Err)
	}
	return errmsg.Format(op, e.Err)
}
