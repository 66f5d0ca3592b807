package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/deck/internal/keymap"
	"github.com/llehouerou/deck/internal/notify"
	"github.com/llehouerou/deck/internal/playback"
	"github.com/llehouerou/deck/internal/state"
	"github.com/llehouerou/deck/internal/ui/addfiles"
	"github.com/llehouerou/deck/internal/ui/playerbar"
	"github.com/llehouerou/deck/internal/ui/playlistpanel"
)

// Focus identifies the component receiving navigation keys.
type Focus int

const (
	FocusPlaylist Focus = iota
	FocusPlayer
)

// Status is the one-line message under the player bar.
type Status struct {
	Text    string
	IsError bool
	Version int
}

// Model is the root bubbletea model.
type Model struct {
	Playback     playback.Service
	StateMgr     state.Interface // nil disables preference saving
	Notifier     notify.Notifier // nil disables track notifications
	StderrLines  <-chan string   // captured native library output, may be nil
	Keys         *keymap.Resolver
	Playlist     playlistpanel.Model
	Bar          playerbar.State
	AddFiles     addfiles.Model
	ShowAddFiles bool
	Focus        Focus
	StartDir     string
	Status       Status
	Width        int
	Height       int
	playbackSub  *playback.Subscription
	notifyID     uint32 // replaced by the next track notification
}

// New creates the model and subscribes to svc. startDir is where relative
// paths typed in the add-files popup resolve from.
func New(svc playback.Service, stateMgr state.Interface, startDir string) Model {
	pl := playlistpanel.New()
	pl.SetTracks(svc.Tracks(), svc.CurrentIndex())
	pl.SetFocused(true)

	return Model{
		Playback:    svc,
		StateMgr:    stateMgr,
		Keys:        keymap.NewResolver(keymap.Bindings),
		Playlist:    pl,
		Bar:         playerbar.NewState(svc, playerbar.ModeCompact),
		AddFiles:    addfiles.New(),
		Focus:       FocusPlaylist,
		StartDir:    startDir,
		playbackSub: svc.Subscribe(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), m.WatchStderr())
}
