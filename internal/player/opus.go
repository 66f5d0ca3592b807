package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/jj11hh/opus"
)

const (
	opusRate = 48000
	// 120ms, the longest Opus frame
	opusMaxFrame = 5760
	// samples decoded ahead of a seek target so the decoder converges (RFC 7845)
	opusPreroll = 3840
)

var errOpusHead = errors.New("opus: invalid identification header")

type opusHead struct {
	channels int
	preSkip  int64
}

func parseOpusHead(p []byte) (opusHead, error) {
	if len(p) < 19 || string(p[:8]) != "OpusHead" || p[8]>>4 != 0 {
		return opusHead{}, errOpusHead
	}
	ch := int(p[9])
	if ch != 1 && ch != 2 {
		return opusHead{}, fmt.Errorf("%w: %d channels", errOpusHead, ch)
	}
	return opusHead{
		channels: ch,
		preSkip:  int64(binary.LittleEndian.Uint16(p[10:12])),
	}, nil
}

// opusStreamer decodes an Ogg Opus stream with jj11hh/opus. Positions
// count 48kHz samples after the pre-skip.
type opusStreamer struct {
	rc        io.ReadSeekCloser
	pages     *oggPacketReader
	dec       *opus.Decoder
	head      opusHead
	dataStart int64
	total     int64

	pcm     []float32
	pcmPos  int
	pos     int64
	discard int64
	err     error
}

func decodeOpus(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	if _, err := rc.Seek(0, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}
	pages := newOggPacketReader(rc)
	first, err := pages.next()
	if err != nil {
		return nil, beep.Format{}, err
	}
	head, err := parseOpusHead(first)
	if err != nil {
		return nil, beep.Format{}, err
	}
	// The comment header ends its own page; audio starts on the next one
	if _, err := pages.next(); err != nil {
		return nil, beep.Format{}, fmt.Errorf("opus: missing comment header: %w", err)
	}
	dataStart, err := rc.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, beep.Format{}, err
	}

	last, err := lastOggGranule(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if _, err := rc.Seek(dataStart, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}

	dec, err := opus.NewDecoder(opusRate, head.channels)
	if err != nil {
		return nil, beep.Format{}, err
	}
	pages.reset()

	s := &opusStreamer{
		rc:        rc,
		pages:     pages,
		dec:       dec,
		head:      head,
		dataStart: dataStart,
		total:     max(last-head.preSkip, 0),
		pcm:       make([]float32, 0, opusMaxFrame*head.channels),
		discard:   head.preSkip,
	}
	format := beep.Format{
		SampleRate:  opusRate,
		NumChannels: head.channels,
		Precision:   2,
	}
	return s, format, nil
}

// Stream implements beep.Streamer.
func (s *opusStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	ch := s.head.channels
	for n < len(samples) && s.pos < s.total {
		if s.pcmPos >= len(s.pcm) {
			if !s.refill() {
				break
			}
			continue
		}
		left := float64(s.pcm[s.pcmPos])
		right := left
		if ch == 2 {
			right = float64(s.pcm[s.pcmPos+1])
		}
		s.pcmPos += ch
		if s.discard > 0 {
			s.discard--
			continue
		}
		samples[n] = [2]float64{left, right}
		n++
		s.pos++
	}
	return n, n > 0
}

func (s *opusStreamer) refill() bool {
	for {
		pkt, err := s.pages.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return false
		}
		buf := s.pcm[:cap(s.pcm)]
		frames, err := s.dec.DecodeFloat32(pkt, buf)
		if err != nil {
			// corrupt packets are skipped
			continue
		}
		s.pcm = buf[:frames*s.head.channels]
		s.pcmPos = 0
		return true
	}
}

func (s *opusStreamer) Err() error { return s.err }

func (s *opusStreamer) Len() int { return int(s.total) }

func (s *opusStreamer) Position() int { return int(s.pos) }

// Seek resumes decoding from the last page that ends before the pre-roll
// window of p, then drops samples up to p.
func (s *opusStreamer) Seek(p int) error {
	target := min(max(int64(p), 0), s.total)
	off, start, err := s.resumePoint(max(target+s.head.preSkip-opusPreroll, 0))
	if err != nil {
		return err
	}
	if _, err := s.rc.Seek(off, io.SeekStart); err != nil {
		return err
	}
	dec, err := opus.NewDecoder(opusRate, s.head.channels)
	if err != nil {
		return err
	}

	s.dec = dec
	s.pages.reset()
	s.pcm = s.pcm[:0]
	s.pcmPos = 0
	s.discard = target + s.head.preSkip - start
	s.pos = target
	s.err = nil
	return nil
}

// resumePoint scans page headers from the first audio page and returns the
// offset just after the last complete page at or before granule, along
// with that page's granule position.
func (s *opusStreamer) resumePoint(granule int64) (offset, start int64, err error) {
	offset = s.dataStart
	pos := s.dataStart
	if _, err := s.rc.Seek(pos, io.SeekStart); err != nil {
		return 0, 0, err
	}
	for {
		hdr, err := readOggPageHeader(s.rc)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return offset, start, nil
			}
			return 0, 0, err
		}
		if hdr.GranulePos > granule {
			return offset, start, nil
		}
		next := pos + oggHeaderSize + int64(len(hdr.Segments)) + int64(hdr.bodySize())
		if hdr.GranulePos >= 0 && hdr.endsPacket() {
			offset, start = next, hdr.GranulePos
		}
		if _, err := s.rc.Seek(next, io.SeekStart); err != nil {
			return 0, 0, err
		}
		pos = next
	}
}

func (s *opusStreamer) Close() error {
	return s.rc.Close()
}
