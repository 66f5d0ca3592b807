package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// bytesPerFrame is one stereo 16-bit sample pair as produced by go-mp3.
const bytesPerFrame = 4

// mp3Streamer adapts llehouerou/go-mp3 to beep.StreamSeekCloser.
// Unlike beep's own mp3 package it seeks by sample without re-decoding.
type mp3Streamer struct {
	dec    *mp3.Decoder
	closer io.Closer
	err    error
	buf    []byte
}

func decodeMP3(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	rate := dec.SampleRate()
	if rate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Streamer{dec: dec, closer: rc, buf: make([]byte, 8192)}, format, nil
}

// Stream implements beep.Streamer.
func (m *mp3Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if m.err != nil {
		return 0, false
	}

	want := len(samples) * bytesPerFrame
	if len(m.buf) < want {
		m.buf = make([]byte, want)
	}
	read, err := io.ReadFull(m.dec, m.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		m.err = err
		return 0, false
	}

	frames := read / bytesPerFrame
	for i := range frames {
		off := i * bytesPerFrame
		left := int16(binary.LittleEndian.Uint16(m.buf[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(m.buf[off+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}
	return frames, frames > 0
}

// Err implements beep.Streamer.
func (m *mp3Streamer) Err() error { return m.err }

// Len returns the total number of samples.
func (m *mp3Streamer) Len() int {
	if c := m.dec.SampleCount(); c > 0 {
		return int(c)
	}
	return 0
}

// Position returns the current sample position.
func (m *mp3Streamer) Position() int {
	return int(m.dec.SamplePosition())
}

// Seek moves to sample p, clamped to the stream bounds.
func (m *mp3Streamer) Seek(p int) error {
	p = max(0, min(p, m.Len()))
	if err := m.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	m.err = nil
	return nil
}

// Close closes the underlying source.
func (m *mp3Streamer) Close() error {
	return m.closer.Close()
}
