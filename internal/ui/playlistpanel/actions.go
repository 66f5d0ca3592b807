package playlistpanel

import "github.com/llehouerou/deck/internal/ui/action"

// PlayTrack requests playback of the track at Index.
type PlayTrack struct {
	Index int
}

// ActionType implements action.Action.
func (a PlayTrack) ActionType() string { return "playlist.play_track" }

// ActionMsg creates an action.Msg for a playlist panel action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "playlist", Action: a}
}
