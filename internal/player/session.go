package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// session plays one decoded stream through the shared speaker.
//
// Fields read by the audio goroutine (ctrl.Paused, loop.loop, volume.*) are
// only written under speaker.Lock. The end callback runs on its own goroutine
// because beep invokes Callback streamers with the speaker lock held.
type session struct {
	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	loop     *loopStreamer
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	onEnded  EndFunc
	started  bool
	closed   bool

	ended atomic.Bool
}

func newSession(streamer beep.StreamSeekCloser, format beep.Format, outRate beep.SampleRate, onEnded EndFunc) *session {
	loop := &loopStreamer{src: streamer}

	var out beep.Streamer = loop
	if format.SampleRate != outRate {
		out = beep.Resample(4, format.SampleRate, outRate, loop)
	}
	ctrl := &beep.Ctrl{Streamer: out, Paused: true}

	return &session{
		streamer: streamer,
		format:   format,
		loop:     loop,
		ctrl:     ctrl,
		volume:   &effects.Volume{Streamer: ctrl, Base: 2},
		onEnded:  onEnded,
	}
}

// Start begins output. Calling it twice has no effect.
func (s *session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.ended.Store(true)
		go s.finish()
	})))
}

func (s *session) finish() {
	s.mu.Lock()
	fn := s.onEnded
	closed := s.closed
	s.onEnded = nil
	var err error
	if !closed {
		speaker.Lock()
		err = s.loop.Err()
		speaker.Unlock()
	}
	s.mu.Unlock()

	if closed || fn == nil {
		return
	}
	fn(err)
}

func (s *session) Pause() {
	s.setPaused(true)
}

func (s *session) Resume() {
	s.setPaused(false)
}

func (s *session) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.started || s.ended.Load() {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ended.Load() {
		return Stopped
	}
	if !s.started {
		return Paused
	}
	speaker.Lock()
	paused := s.ctrl.Paused
	speaker.Unlock()
	if paused {
		return Paused
	}
	return Playing
}

func (s *session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(pos)
}

func (s *session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// SeekTo moves playback to pos, clamped to the stream length.
func (s *session) SeekTo(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ended.Load() {
		return nil
	}
	n := max(0, min(s.format.SampleRate.N(pos), s.streamer.Len()))

	speaker.Lock()
	defer speaker.Unlock()
	return s.streamer.Seek(n)
}

func (s *session) SetVolume(level float64) {
	vol, silent := levelToVolume(level)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.volume.Volume = vol
	s.volume.Silent = silent
	speaker.Unlock()
}

func (s *session) SetLoop(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.loop.loop = enabled
	speaker.Unlock()
}

func (s *session) Ended() bool {
	return s.ended.Load()
}

// Close stops output, detaches the end callback and releases the decoder.
func (s *session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.onEnded = nil

	// Only one session plays at a time, so clearing the speaker removes
	// exactly this session's streamer without firing its callback.
	speaker.Clear()
	return s.streamer.Close()
}
