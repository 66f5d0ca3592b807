package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the default ALAC frames per packet.
const alacFrameSize = 4096

var errM4ACodec = errors.New("m4a: unsupported codec")

// m4aStreamer plays the audio track of an MP4 container. AAC samples go
// through go-faad2, Apple Lossless through alac.
type m4aStreamer struct {
	box      *m4a.Reader
	rc       io.Closer
	codec    m4a.CodecType
	rate     int
	channels int
	depth    int
	total    int

	aac      *faad2.Decoder
	lossless *alac.Alac

	next   int
	frames [][2]float64
	offset int
	err    error
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}
	box, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	s := &m4aStreamer{
		box:      box,
		rc:       rc,
		codec:    box.Codec(),
		rate:     int(box.SampleRate()),
		channels: int(box.Channels()),
		depth:    int(box.SampleSize()),
	}
	if s.rate <= 0 || s.channels <= 0 {
		return nil, beep.Format{}, fmt.Errorf("m4a: invalid stream (%d Hz, %d channels)", s.rate, s.channels)
	}
	s.total = int(box.Duration().Seconds() * float64(s.rate))

	precision := 2
	switch s.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, box.CodecConfig()); err != nil {
			_ = dec.Close(ctx)
			return nil, beep.Format{}, err
		}
		s.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  s.rate,
			SampleSize:  s.depth,
			NumChannels: s.channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		s.lossless = dec
		if s.depth == 24 {
			precision = 3
		}
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", errM4ACodec, s.codec)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(s.rate),
		NumChannels: 2,
		Precision:   precision,
	}
	return s, format, nil
}

// Stream implements beep.Streamer.
func (s *m4aStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if s.offset < len(s.frames) {
			c := copy(samples[n:], s.frames[s.offset:])
			s.offset += c
			n += c
			continue
		}
		if s.next >= s.box.SampleCount() {
			break
		}
		if err := s.decodeNext(); err != nil {
			s.err = err
			break
		}
	}
	return n, n > 0
}

func (s *m4aStreamer) decodeNext() error {
	data, err := s.box.ReadSample(s.next)
	if err != nil {
		return err
	}
	s.next++
	s.offset = 0

	if s.aac != nil {
		pcm, err := s.aac.Decode(context.Background(), data)
		if err != nil {
			return err
		}
		s.frames = pcm16Frames(pcm, s.channels)
		return nil
	}
	s.frames = alacFrames(s.lossless.Decode(data), s.channels, s.depth)
	return nil
}

// pcm16Frames converts interleaved samples to stereo frames. Mono is
// duplicated; channels past the second are dropped.
func pcm16Frames(pcm []int16, channels int) [][2]float64 {
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// alacFrames converts little-endian 16 or 24-bit ALAC output to frames.
func alacFrames(data []byte, channels, depth int) [][2]float64 {
	width := 2
	scale := float64(1 << 15)
	if depth == 24 {
		width = 3
		scale = 1 << 23
	}
	sample := func(b []byte) float64 {
		if width == 2 {
			return float64(int16(uint16(b[0])|uint16(b[1])<<8)) / scale //nolint:gosec // sign reinterpretation
		}
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return float64(v) / scale
	}

	stride := width * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		at := data[i*stride:]
		l := sample(at)
		r := l
		if channels > 1 {
			r = sample(at[width:])
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func (s *m4aStreamer) Err() error { return s.err }

func (s *m4aStreamer) Len() int { return s.total }

func (s *m4aStreamer) Position() int {
	at := s.box.SampleTime(s.next).Seconds() * float64(s.rate)
	// frames decoded but not yet handed out are still ahead
	return max(int(at)-(len(s.frames)-s.offset), 0)
}

func (s *m4aStreamer) Seek(p int) error {
	p = min(max(p, 0), s.total)
	at := time.Duration(float64(p) / float64(s.rate) * float64(time.Second))
	s.next = s.box.SeekToTime(at)
	s.frames = nil
	s.offset = 0
	s.err = nil
	return nil
}

func (s *m4aStreamer) Close() error {
	if s.aac != nil {
		_ = s.aac.Close(context.Background())
	}
	return s.rc.Close()
}
