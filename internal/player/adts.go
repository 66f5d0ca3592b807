package player

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-faad2"
)

// samples per channel in one AAC raw data block
const aacBlockSamples = 1024

// adtsStreamer plays raw AAC in ADTS framing. ADTS carries no index, so
// frame offsets are collected up front and a seek reopens the decoder at
// the frame holding the target.
type adtsStreamer struct {
	rc       io.ReadSeekCloser
	dec      *faad2.ADTSReader
	channels int
	frames   []adtsFrame
	total    int

	buf     []int16
	pos     int
	discard int
	err     error
}

type adtsFrame struct {
	offset int64
	start  int // first sample of the frame
}

func decodeADTS(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	frames, total, err := indexADTS(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if _, err := rc.Seek(frames[0].offset, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}
	dec, err := faad2.OpenADTS(context.Background(), rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	channels := int(dec.Channels())
	if channels == 0 {
		_ = dec.Close(context.Background())
		return nil, beep.Format{}, fmt.Errorf("%w: channel layout not in header", faad2.ErrInvalidADTS)
	}

	s := &adtsStreamer{
		rc:       rc,
		dec:      dec,
		channels: channels,
		frames:   frames,
		total:    total,
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return s, format, nil
}

// indexADTS walks the frame headers of r, skipping a leading ID3v2 tag.
// The decoder swallows the frame it opens on while priming, so a frame's
// start is the first sample heard when decoding resumes there.
func indexADTS(r io.ReadSeeker) ([]adtsFrame, int, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}
	if err := skipID3v2(r); err != nil {
		return nil, 0, err
	}
	off, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, err
	}

	var frames []adtsFrame
	var hdr [7]byte
	start := 0
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			break
		}
		_, _, length, err := faad2.ParseADTSHeader(hdr[:])
		if err != nil || length < uint16(len(hdr)) {
			break
		}
		if len(frames) > 0 {
			start += aacBlockSamples * (int(hdr[6]&0x03) + 1)
		}
		frames = append(frames, adtsFrame{offset: off, start: start})
		off += int64(length)
		if _, err := r.Seek(off, io.SeekStart); err != nil {
			return nil, 0, err
		}
	}
	if len(frames) == 0 {
		return nil, 0, faad2.ErrADTSSyncNotFound
	}
	return frames, start, nil
}

// Stream implements beep.Streamer.
func (s *adtsStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		want := (len(samples) - n) * s.channels
		if cap(s.buf) < want {
			s.buf = make([]int16, want)
		}
		got, err := s.dec.Read(context.Background(), s.buf[:want])
		for _, f := range pcm16Frames(s.buf[:got-got%s.channels], s.channels) {
			if s.discard > 0 {
				s.discard--
				continue
			}
			samples[n] = f
			n++
			s.pos++
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			break
		}
		if got == 0 {
			break
		}
	}
	return n, n > 0
}

func (s *adtsStreamer) Err() error { return s.err }

func (s *adtsStreamer) Len() int { return s.total }

func (s *adtsStreamer) Position() int { return s.pos }

func (s *adtsStreamer) Seek(p int) error {
	p = min(max(p, 0), s.total)
	k := 0
	for i, f := range s.frames {
		if f.start > p {
			break
		}
		k = i
	}
	if _, err := s.rc.Seek(s.frames[k].offset, io.SeekStart); err != nil {
		return err
	}

	ctx := context.Background()
	_ = s.dec.Close(ctx)
	dec, err := faad2.OpenADTS(ctx, s.rc)
	if err != nil {
		s.err = err
		return err
	}
	s.dec = dec
	s.pos = p
	s.discard = p - s.frames[k].start
	s.err = nil
	return nil
}

func (s *adtsStreamer) Close() error {
	_ = s.dec.Close(context.Background())
	return s.rc.Close()
}
