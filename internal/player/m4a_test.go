package player

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCM16Frames(t *testing.T) {
	stereo := pcm16Frames([]int16{16384, -16384, 0, 32767}, 2)
	require.Len(t, stereo, 2)
	assert.Equal(t, [2]float64{0.5, -0.5}, stereo[0])
	assert.InDelta(t, 1.0, stereo[1][1], 1e-4)

	mono := pcm16Frames([]int16{-32768, 8192}, 1)
	assert.Equal(t, [][2]float64{{-1, -1}, {0.25, 0.25}}, mono)

	// only the first two of six channels are kept
	surround := pcm16Frames([]int16{16384, 8192, 1, 1, 1, 1}, 6)
	assert.Equal(t, [][2]float64{{0.5, 0.25}}, surround)
}

func TestALACFrames(t *testing.T) {
	t.Run("16-bit stereo", func(t *testing.T) {
		// 0x4000 = 0.5, 0xC000 = -0.5
		got := alacFrames([]byte{0x00, 0x40, 0x00, 0xC0}, 2, 16)
		assert.Equal(t, [][2]float64{{0.5, -0.5}}, got)
	})

	t.Run("24-bit mono sign extends", func(t *testing.T) {
		// 0x400000 = 0.5, 0xC00000 = -0.5
		got := alacFrames([]byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}, 1, 24)
		assert.Equal(t, [][2]float64{{0.5, 0.5}, {-0.5, -0.5}}, got)
	})

	t.Run("partial frame dropped", func(t *testing.T) {
		got := alacFrames([]byte{0x00, 0x40, 0x00}, 2, 16)
		assert.Empty(t, got)
	})
}

func TestDecodeM4A_NotAContainer(t *testing.T) {
	rc := nopSeekCloser{bytes.NewReader([]byte("definitely not an mp4 container, just text"))}
	_, _, err := decodeM4A(rc)
	assert.Error(t, err)
}
