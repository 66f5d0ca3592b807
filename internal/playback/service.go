package playback

import "github.com/llehouerou/deck/internal/upload"

// Service defines the playback controller contract consumed by
// presentation layers.
type Service interface {
	// Playlist
	AddTracks(entries ...upload.FileEntry) AddResult
	Tracks() []Track
	Len() int

	// Transport
	PlayAt(index int) error
	TogglePause() error
	Next() error
	Previous() error
	Seek(fraction float64) error
	SetVolume(level float64)
	Shuffle() error
	ToggleRepeat() bool
	SetRepeat(enabled bool)

	// State queries
	State() State
	CurrentIndex() int
	CurrentTrack() *Track
	NowPlaying() (NowPlaying, bool)
	Position() PositionChange
	Volume() float64
	Repeat() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Verify Controller implements Service at compile time.
var _ Service = (*Controller)(nil)
