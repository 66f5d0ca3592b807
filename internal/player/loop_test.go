package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStreamer produces a fixed number of samples, numbered from 1, and
// supports seeking.
type fakeStreamer struct {
	samples int
	pos     int
	err     error
	seekErr error
}

func (f *fakeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := f.samples - f.pos
	if remaining <= 0 {
		return 0, false
	}
	toWrite := min(len(samples), remaining)
	for i := range toWrite {
		v := float64(f.pos + i + 1)
		samples[i] = [2]float64{v, v}
	}
	f.pos += toWrite
	return toWrite, true
}

func (f *fakeStreamer) Err() error    { return f.err }
func (f *fakeStreamer) Len() int      { return f.samples }
func (f *fakeStreamer) Position() int { return f.pos }

func (f *fakeStreamer) Seek(p int) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.pos = p
	return nil
}

func TestLoopStreamer_NoLoopDrains(t *testing.T) {
	l := &loopStreamer{src: &fakeStreamer{samples: 5}}

	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = l.Stream(buf)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestLoopStreamer_LoopRewinds(t *testing.T) {
	l := &loopStreamer{src: &fakeStreamer{samples: 4}, loop: true}

	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 10, n)

	want := []float64{1, 2, 3, 4, 1, 2, 3, 4, 1, 2}
	for i, v := range want {
		assert.Equal(t, v, buf[i][0], "sample %d", i)
	}
}

func TestLoopStreamer_DisableLoopMidway(t *testing.T) {
	src := &fakeStreamer{samples: 6}
	l := &loopStreamer{src: src, loop: true}

	buf := make([][2]float64, 4)
	n, ok := l.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 4, n)

	l.loop = false
	n, ok = l.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = l.Stream(buf)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestLoopStreamer_EmptySourceDoesNotSpin(t *testing.T) {
	l := &loopStreamer{src: &fakeStreamer{samples: 0}, loop: true}

	n, ok := l.Stream(make([][2]float64, 8))
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestLoopStreamer_SeekErrorStops(t *testing.T) {
	seekErr := errors.New("seek failed")
	l := &loopStreamer{src: &fakeStreamer{samples: 3, seekErr: seekErr}, loop: true}

	n, ok := l.Stream(make([][2]float64, 8))
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, l.Err(), seekErr)
}

func TestLoopStreamer_SourceErrorStopsLooping(t *testing.T) {
	srcErr := errors.New("corrupt frame")
	l := &loopStreamer{src: &fakeStreamer{samples: 3, err: srcErr}, loop: true}

	n, ok := l.Stream(make([][2]float64, 8))
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, l.Err(), srcErr)
}
