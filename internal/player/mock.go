// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// MockBackend is a test double for Backend. Sessions it opens never touch
// the audio device; tests drive them with the MockSession helpers.
type MockBackend struct {
	mu       sync.Mutex
	sessions []*MockSession
	openErr  map[Source]error
	duration time.Duration
}

// NewMock creates a mock backend whose sessions report the given duration.
func NewMock(duration time.Duration) *MockBackend {
	return &MockBackend{
		openErr:  make(map[Source]error),
		duration: duration,
	}
}

// Open implements Backend.
func (b *MockBackend) Open(src Source, mediaType string, onEnded EndFunc) (Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.openErr[src]; err != nil {
		return nil, err
	}
	s := &MockSession{
		Source:    src,
		MediaType: mediaType,
		state:     Paused,
		duration:  b.duration,
		volume:    1,
		onEnded:   onEnded,
		rawEnd:    onEnded,
	}
	b.sessions = append(b.sessions, s)
	return s, nil
}

// Test helpers

// FailOpen makes every Open on src return err.
func (b *MockBackend) FailOpen(src Source, err error) {
	b.mu.Lock()
	b.openErr[src] = err
	b.mu.Unlock()
}

// Sessions returns every session opened so far, oldest first.
func (b *MockBackend) Sessions() []*MockSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*MockSession, len(b.sessions))
	copy(out, b.sessions)
	return out
}

// Last returns the most recently opened session, or nil.
func (b *MockBackend) Last() *MockSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sessions) == 0 {
		return nil
	}
	return b.sessions[len(b.sessions)-1]
}

// Active returns the sessions that have not been closed.
func (b *MockBackend) Active() []*MockSession {
	var open []*MockSession
	for _, s := range b.Sessions() {
		if !s.Closed() {
			open = append(open, s)
		}
	}
	return open
}

// MockSession is a test double for Session.
type MockSession struct {
	Source    Source
	MediaType string

	mu       sync.Mutex
	state    State
	position time.Duration
	duration time.Duration
	volume   float64
	loop     bool
	ended    bool
	closed   bool
	onEnded  EndFunc
	rawEnd   EndFunc
	seeks    []time.Duration
}

// Start implements Session.
func (m *MockSession) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused && !m.closed && !m.ended {
		m.state = Playing
	}
}

// Pause implements Session.
func (m *MockSession) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

// Resume implements Session.
func (m *MockSession) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused && !m.closed && !m.ended {
		m.state = Playing
	}
}

// State implements Session.
func (m *MockSession) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Position implements Session.
func (m *MockSession) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Duration implements Session. It reports the backend's duration unless
// SetDuration overrides it.
func (m *MockSession) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

// SeekTo implements Session and records pos for Seeks.
func (m *MockSession) SeekTo(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeks = append(m.seeks, pos)
	m.position = pos
	return nil
}

// SetVolume implements Session.
func (m *MockSession) SetVolume(level float64) {
	m.mu.Lock()
	m.volume = ClampLevel(level)
	m.mu.Unlock()
}

// SetLoop implements Session.
func (m *MockSession) SetLoop(enabled bool) {
	m.mu.Lock()
	m.loop = enabled
	m.mu.Unlock()
}

// Ended implements Session.
func (m *MockSession) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

// Close implements Session. A closed session never fires its end callback.
func (m *MockSession) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.onEnded = nil
	m.state = Stopped
	return nil
}

// Test helpers

// Closed reports whether Close was called.
func (m *MockSession) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Volume returns the last level set, clamped.
func (m *MockSession) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Loop reports whether looping is enabled.
func (m *MockSession) Loop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loop
}

// Seeks returns every SeekTo target, oldest first.
func (m *MockSession) Seeks() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.seeks))
	copy(out, m.seeks)
	return out
}

// SetPosition moves the reported playback position.
func (m *MockSession) SetPosition(d time.Duration) {
	m.mu.Lock()
	m.position = d
	m.mu.Unlock()
}

// SetDuration overrides the reported media length.
func (m *MockSession) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// SimulateEnd plays the media to its end. A looping session rewinds
// instead, like the real loop streamer. Returns true if the end callback ran.
// The callback runs synchronously so tests can assert on its effects.
func (m *MockSession) SimulateEnd(err error) bool {
	m.mu.Lock()
	if m.closed || m.ended {
		m.mu.Unlock()
		return false
	}
	if m.loop && err == nil {
		m.position = 0
		m.mu.Unlock()
		return false
	}
	m.ended = true
	m.state = Stopped
	m.position = m.duration
	fn := m.onEnded
	m.onEnded = nil
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(err)
	return true
}

// FireStaleEnd invokes the end callback captured at Open time even if the
// session has been closed, simulating a late notification from the platform.
func (m *MockSession) FireStaleEnd() {
	m.mu.Lock()
	fn := m.rawEnd
	m.mu.Unlock()
	if fn != nil {
		fn(nil)
	}
}
