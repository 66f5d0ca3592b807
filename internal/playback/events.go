package playback

import "time"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a session starts on a track.
//
// Emitted by PlayAt, Next, Previous and by automatic advance when a track
// ends. Also emitted when the same track is played again, since a new
// session starts from the beginning.
type TrackChange struct {
	Previous      *Track
	Current       NowPlaying
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the playlist contents or order change.
// It carries the whole playlist so views can re-render from it alone.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ModeChange is emitted when repeat or volume changes.
type ModeChange struct {
	Repeat bool
	Volume float64
}

// PositionChange reports the playback position of the active session.
// Fraction is Elapsed/Duration, or 0 while the duration is unknown.
type PositionChange struct {
	Elapsed  time.Duration
	Duration time.Duration
	Fraction float64
}

// Operations reported in ErrorEvent.
const (
	OpAdd    = "add"
	OpPlay   = "play"
	OpDecode = "decode"
	OpSeek   = "seek"
)

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string
	Track     *Track
	Err       error
}

func newPosition(elapsed, duration time.Duration) PositionChange {
	p := PositionChange{Elapsed: elapsed, Duration: duration}
	if duration > 0 {
		p.Fraction = min(max(float64(elapsed)/float64(duration), 0), 1)
	}
	return p
}
