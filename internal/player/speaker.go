package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Default output settings.
const (
	DefaultSampleRate = beep.SampleRate(44100)
	DefaultBuffer     = 100 * time.Millisecond
)

// Speaker is the beep-backed Backend. The speaker device is initialized
// lazily on the first Open and shared by every session.
type Speaker struct {
	mu          sync.Mutex
	sampleRate  beep.SampleRate
	buffer      time.Duration
	initialized bool
}

// NewSpeaker creates a backend that plays through the default audio device.
// Zero values select DefaultSampleRate and DefaultBuffer.
func NewSpeaker(sampleRate int, buffer time.Duration) *Speaker {
	sr := beep.SampleRate(sampleRate)
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Speaker{sampleRate: sr, buffer: buffer}
}

func (s *Speaker) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(s.buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// Open implements Backend.
func (s *Speaker) Open(src Source, mediaType string, onEnded EndFunc) (Session, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}

	streamer, format, err := decode(rc, mediaType)
	if err != nil {
		rc.Close()
		return nil, err
	}

	if err := s.init(); err != nil {
		streamer.Close()
		return nil, err
	}

	return newSession(streamer, format, s.sampleRate, onEnded), nil
}

// Close stops all output and releases the audio device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
