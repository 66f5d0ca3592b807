// internal/player/interface.go
package player

import (
	"io"
	"time"
)

// Source is an opaque handle to decodable audio bytes.
// Every call to Open returns an independent reader positioned at the start.
type Source interface {
	Open() (io.ReadSeekCloser, error)
}

// EndFunc is invoked once when a session reaches the end of its media.
// err is non-nil when decoding stopped on an error rather than at EOF.
type EndFunc func(err error)

// Backend opens playback sessions on the platform audio output.
type Backend interface {
	// Open decodes src and prepares a paused session. mediaType selects the
	// decoder; an empty or unknown type falls back to content sniffing.
	// onEnded is never called after the session is closed.
	Open(src Source, mediaType string, onEnded EndFunc) (Session, error)
}

// Session is the live decode/output binding to exactly one source.
type Session interface {
	Start()
	Pause()
	Resume()
	State() State
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration) error
	SetVolume(level float64)
	SetLoop(enabled bool)
	Ended() bool
	Close() error
}

// Verify implementations at compile time.
var (
	_ Backend = (*Speaker)(nil)
	_ Session = (*session)(nil)
	_ Backend = (*MockBackend)(nil)
	_ Session = (*MockSession)(nil)
)
