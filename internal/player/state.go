// internal/player/state.go
package player

// State represents the session state machine.
//
//	┌──────────┐      start      ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                          │    ▲
//	     │ end / close        pause │    │ resume
//	     │                          ▼    │
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	              close          └──────────┘
//
// A freshly opened session is Paused until Start. A session that reached the
// end of its media, or was closed, is Stopped and never leaves that state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if the session still produces or can produce audio.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
