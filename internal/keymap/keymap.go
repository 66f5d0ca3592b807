package keymap

// Binding maps keys to an action, with a description for the help panel.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "playlist"
}

// Bindings is the full key map.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionAddFiles, []string{"a"}, "Add files", "global"},
	{ActionTogglePlayerSize, []string{"v"}, "Toggle player display", "global"},
	{ActionDismissStatusLine, []string{"esc"}, "Dismiss message", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleRepeat, []string{"r"}, "Toggle repeat", "playback"},
	{ActionShuffle, []string{"s"}, "Shuffle playlist", "playback"},

	// Playlist
	{ActionMoveUp, []string{"k", "up"}, "Move up", "playlist"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "playlist"},
	{ActionJumpStart, []string{"g", "home"}, "First track", "playlist"},
	{ActionJumpEnd, []string{"G", "end"}, "Last track", "playlist"},
	{ActionPageUp, []string{"ctrl+u"}, "Half page up", "playlist"},
	{ActionPageDown, []string{"ctrl+d"}, "Half page down", "playlist"},
	{ActionSelect, []string{"enter"}, "Play track", "playlist"},
}
