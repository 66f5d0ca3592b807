package player

import (
	"bytes"
	"testing"

	"github.com/llehouerou/go-faad2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adtsHeader returns a 7-byte AAC-LC, 44.1kHz stereo ADTS header for a frame
// of length bytes carrying blocks+1 raw data blocks.
func adtsHeader(length int, blocks byte) []byte {
	const (
		profileLC = 1
		rate44100 = 4
		stereo    = 2
	)
	return []byte{
		0xFF,
		0xF1,
		profileLC<<6 | rate44100<<2 | stereo>>2,
		byte(stereo&0x03)<<6 | byte(length>>11)&0x03,
		byte(length >> 3),
		byte(length&0x07)<<5 | 0x1F,
		0xFC | blocks&0x03,
	}
}

func adtsFrameBytes(length int, blocks byte) []byte {
	return append(adtsHeader(length, blocks), make([]byte, length-7)...)
}

func TestIndexADTS(t *testing.T) {
	var data []byte
	data = append(data, adtsFrameBytes(20, 0)...)
	data = append(data, adtsFrameBytes(30, 0)...)
	data = append(data, adtsFrameBytes(25, 1)...)

	frames, total, err := indexADTS(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []adtsFrame{
		{offset: 0, start: 0},
		{offset: 20, start: 1024},
		{offset: 50, start: 3072},
	}, frames)
	assert.Equal(t, 3072, total)
}

func TestIndexADTS_SkipsID3AndTrailingJunk(t *testing.T) {
	data := []byte("ID3\x04\x00\x00\x00\x00\x00\x04tags")
	data = append(data, adtsFrameBytes(16, 0)...)
	data = append(data, adtsFrameBytes(16, 0)...)
	data = append(data, "junk at the end"...)

	frames, total, err := indexADTS(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, frames, 2)
	assert.Equal(t, int64(14), frames[0].offset)
	assert.Equal(t, int64(30), frames[1].offset)
	assert.Equal(t, 1024, total)
}

func TestIndexADTS_NoFrames(t *testing.T) {
	_, _, err := indexADTS(bytes.NewReader([]byte("not aac at all, just text")))
	assert.ErrorIs(t, err, faad2.ErrADTSSyncNotFound)
}
