package player

import (
	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*loopStreamer)(nil)

// loopStreamer rewinds its source when drained while looping is enabled.
// The loop flag is only touched under the speaker lock.
type loopStreamer struct {
	src  beep.StreamSeeker
	loop bool
	err  error
}

// Stream implements beep.Streamer.
func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.src.Stream(samples[n:])
		n += sn
		if sok {
			if sn == 0 {
				break
			}
			continue
		}

		// Source drained
		if !l.loop || l.src.Len() == 0 || l.src.Err() != nil {
			return n, n > 0
		}
		if err := l.src.Seek(0); err != nil {
			l.err = err
			return n, n > 0
		}
	}
	return n, true
}

// Err implements beep.Streamer.
func (l *loopStreamer) Err() error {
	if l.err != nil {
		return l.err
	}
	return l.src.Err()
}
