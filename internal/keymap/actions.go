// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit              Action = "quit"
	ActionSwitchFocus       Action = "switch_focus"
	ActionAddFiles          Action = "add_files"
	ActionTogglePlayerSize  Action = "toggle_player_display"
	ActionDismissStatusLine Action = "dismiss_status"

	// Playback actions
	ActionPlayPause    Action = "play_pause"
	ActionNextTrack    Action = "next_track"
	ActionPrevTrack    Action = "prev_track"
	ActionSeekForward  Action = "seek_forward"
	ActionSeekBack     Action = "seek_back"
	ActionVolumeUp     Action = "volume_up"
	ActionVolumeDown   Action = "volume_down"
	ActionToggleRepeat Action = "toggle_repeat"
	ActionShuffle      Action = "shuffle"

	// Playlist panel actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionSelect    Action = "select" // enter - play highlighted track
)
