package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/errmsg"
	"github.com/llehouerou/deck/internal/keymap"
	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/ui/playerbar"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 5 // slider units out of playerbar.SliderMax
	popupWidth = 60
	popupRows  = 8
)

// keyHandler reports whether it handled the action.
type keyHandler func(act keymap.Action, msg tea.KeyMsg) (bool, tea.Cmd)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowAddFiles {
		_, cmd := m.AddFiles.Update(msg)
		return m, cmd
	}

	act := m.Keys.Resolve(msg.String())
	if act == keymap.ActionQuit {
		return m, tea.Quit
	}

	for _, h := range []keyHandler{
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handleFocusedKeys,
	} {
		if ok, cmd := h(act, msg); ok {
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) handleGlobalKeys(act keymap.Action, _ tea.KeyMsg) (bool, tea.Cmd) {
	switch act { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionSwitchFocus:
		if m.Focus == FocusPlaylist {
			m.Focus = FocusPlayer
		} else {
			m.Focus = FocusPlaylist
		}
		m.Playlist.SetFocused(m.Focus == FocusPlaylist)
		return true, nil

	case keymap.ActionAddFiles:
		m.ShowAddFiles = true
		m.AddFiles.Start(m.StartDir, popupWidth-6, popupRows)
		return true, m.AddFiles.Init()

	case keymap.ActionTogglePlayerSize:
		if m.Bar.DisplayMode == playerbar.ModeCompact {
			m.Bar.DisplayMode = playerbar.ModeExpanded
		} else {
			m.Bar.DisplayMode = playerbar.ModeCompact
		}
		m.resize()
		return true, nil

	case keymap.ActionDismissStatusLine:
		m.Status = Status{Version: m.Status.Version + 1}
		return true, nil
	}
	return false, nil
}

func (m *Model) handlePlaybackKeys(act keymap.Action, _ tea.KeyMsg) (bool, tea.Cmd) {
	svc := m.Playback
	switch act { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionPlayPause:
		return true, m.togglePause()
	case keymap.ActionNextTrack:
		return true, m.reportErr(errmsg.OpTrackChange, svc.Next())
	case keymap.ActionPrevTrack:
		return true, m.reportErr(errmsg.OpTrackChange, svc.Previous())
	case keymap.ActionSeekForward:
		return true, m.seekBy(seekStep)
	case keymap.ActionSeekBack:
		return true, m.seekBy(-seekStep)
	case keymap.ActionVolumeUp:
		svc.SetVolume(playerbar.StepVolume(svc.Volume(), volumeStep))
		return true, nil
	case keymap.ActionVolumeDown:
		svc.SetVolume(playerbar.StepVolume(svc.Volume(), -volumeStep))
		return true, nil
	case keymap.ActionToggleRepeat:
		svc.ToggleRepeat()
		return true, nil
	case keymap.ActionShuffle:
		return true, m.reportErr(errmsg.OpShuffle, svc.Shuffle())
	}
	return false, nil
}

// handleFocusedKeys routes list navigation to the playlist, or turns
// up/down into volume steps while the player bar has focus.
func (m *Model) handleFocusedKeys(act keymap.Action, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch act { //nolint:exhaustive // only list navigation is routed here
	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionJumpStart,
		keymap.ActionJumpEnd, keymap.ActionPageUp, keymap.ActionPageDown, keymap.ActionSelect:
	default:
		return false, nil
	}

	if m.Focus == FocusPlayer {
		switch act { //nolint:exhaustive // see above
		case keymap.ActionMoveUp:
			return m.handlePlaybackKeys(keymap.ActionVolumeUp, msg)
		case keymap.ActionMoveDown:
			return m.handlePlaybackKeys(keymap.ActionVolumeDown, msg)
		case keymap.ActionSelect:
			return true, m.togglePause()
		}
		return false, nil
	}

	var cmd tea.Cmd
	m.Playlist, cmd = m.Playlist.Update(msg)
	return true, cmd
}

// togglePause pauses or resumes. With nothing loaded it starts the track
// under the playlist cursor.
func (m *Model) togglePause() tea.Cmd {
	err := m.Playback.TogglePause()
	if errors.Is(err, playback.ErrNoActiveSession) && m.Playlist.Len() > 0 {
		return m.reportErr(errmsg.OpPlaybackStart, m.Playback.PlayAt(m.Playlist.Cursor()))
	}
	return m.reportErr(errmsg.OpPlaybackPause, err)
}

// seekBy moves the playhead by delta, converted to the fraction Seek takes.
func (m *Model) seekBy(delta time.Duration) tea.Cmd {
	pos := m.Playback.Position()
	var fraction float64
	if pos.Duration > 0 {
		fraction = float64(pos.Elapsed+delta) / float64(pos.Duration)
	}
	return m.reportErr(errmsg.OpPlaybackSeek, m.Playback.Seek(fraction))
}

// reportErr shows err on the status line. Decode failures are skipped here
// because the controller also publishes them as error events.
func (m *Model) reportErr(op errmsg.Op, err error) tea.Cmd {
	if err == nil || errors.Is(err, playback.ErrDecodeFailure) {
		return nil
	}
	return m.setStatus(errmsg.Format(op, err), true)
}
